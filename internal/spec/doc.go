// Package spec parses season/episode-range specification text and resolves
// flat episode numbers against the resulting table.
//
// A specification is line oriented: '#' comments and blank lines are
// ignored, every other line declares a season and the inclusive range of
// flat episode numbers it covers ("2 | 13-24", or "4 | 40" for a single
// episode). Parsing is all-or-nothing; the resulting table is sorted by
// range start and rejects any overlap between ranges instead of picking a
// first match.
//
// The Source interface abstracts where specification text comes from so a
// local file and a remote episode listing feed the parser identically.
package spec
