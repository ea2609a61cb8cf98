// Package tvdb fetches season listings from an episode metadata service
// and turns them into specification text the core parser already
// understands. The core never sees the network: the listing is reduced to
// the same "season | start-end" lines a local spec file would contain.
package tvdb
