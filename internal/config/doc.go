// Package config loads and validates seasonfix configuration.
//
// Configuration is optional: every field has a usable default, and a
// missing config file is not an error. When present, the file is TOML,
// resolved from an explicit --config path, then
// ~/.config/seasonfix/config.toml, then ./seasonfix.toml.
package config
