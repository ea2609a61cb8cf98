// Package plan turns a directory listing into a rename plan: one entry per
// file that both extracts and resolves, plus a skip list explaining every
// file that did not. Building a plan never touches the filesystem, so the
// plan itself doubles as the dry-run report.
package plan
