// Package logging constructs the application's slog loggers and hosts the
// shared attribute helpers so call sites stay terse and field names stay
// consistent across components.
package logging
