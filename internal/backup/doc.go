// Package backup persists the rename record that makes an apply run
// reversible. Every run writes its full new-name to original-name mapping
// to a SQLite database inside the target directory's state dir before any
// file is touched; restore consumes that record and prunes it once every
// entry is back under its original name.
//
// Filenames round-trip byte-exact, including arbitrary Unicode and
// whitespace, because they are stored as opaque TEXT values.
package backup
