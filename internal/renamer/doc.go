// Package renamer executes and reverses rename plans against a single
// directory. The directory is locked for the duration of a run, the full
// rename mapping is persisted before the first filesystem mutation, and
// renames happen strictly in plan order so a mid-run failure reports a
// deterministic done/remaining split. There is no automatic rollback of a
// partially applied run; the persisted record keeps the applied subset
// restorable instead.
package renamer
