package renamer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"seasonfix/internal/backup"
	"seasonfix/internal/logging"
	"seasonfix/internal/plan"
)

// ErrLocked indicates another run currently holds the directory lock.
var ErrLocked = errors.New("directory is locked by another run")

// Reasons a restore entry can be skipped without failing the run.
var (
	ErrSourceMissing = errors.New("file not found")
	ErrTargetExists  = errors.New("a different file already has the original name")
)

// Runner applies and restores rename plans for one directory.
type Runner struct {
	dir    string
	store  *backup.Store
	logger *slog.Logger
	lock   *flock.Flock
}

// New constructs a runner. lockPath is the flock file guarding the
// directory, normally inside its state dir.
func New(dir, lockPath string, store *backup.Store, logger *slog.Logger) *Runner {
	return &Runner{
		dir:    dir,
		store:  store,
		logger: logging.NewComponentLogger(logger, "renamer"),
		lock:   flock.New(lockPath),
	}
}

// Result summarizes a fully applied run.
type Result struct {
	RunID   string
	Renamed []plan.Entry
}

// ApplyError reports a run that stopped partway. The backup record for the
// whole plan stays in place, so everything in Done remains restorable.
type ApplyError struct {
	RunID     string
	Done      []plan.Entry
	Failed    plan.Entry
	Remaining []plan.Entry
	Err       error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("rename %q -> %q failed after %d of %d renames: %v",
		e.Failed.Original, e.Failed.Target,
		len(e.Done), len(e.Done)+1+len(e.Remaining), e.Err)
}

func (e *ApplyError) Unwrap() error { return e.Err }

// Apply persists the plan's mapping and then renames each entry in plan
// order. The first failing rename stops the run and returns an ApplyError
// carrying the done/remaining split.
func (r *Runner) Apply(ctx context.Context, p *plan.Plan) (*Result, error) {
	if len(p.Entries) == 0 {
		return &Result{}, nil
	}

	unlock, err := r.acquireLock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	mappings := make([]backup.Mapping, 0, len(p.Entries))
	for _, entry := range p.Entries {
		mappings = append(mappings, backup.Mapping{
			NewName:      entry.Target,
			OriginalName: entry.Original,
		})
	}
	runID, err := r.store.SaveRun(ctx, r.dir, mappings)
	if err != nil {
		return nil, fmt.Errorf("persist backup record: %w", err)
	}
	r.logger.Info("backup record persisted",
		logging.String("run_id", runID),
		logging.Int("entries", len(p.Entries)))

	done := make([]plan.Entry, 0, len(p.Entries))
	for i, entry := range p.Entries {
		if err := r.renameEntry(entry); err != nil {
			r.logger.Error("apply stopped",
				logging.String("run_id", runID),
				logging.String("file", entry.Original),
				logging.Error(err))
			return nil, &ApplyError{
				RunID:     runID,
				Done:      done,
				Failed:    entry,
				Remaining: append([]plan.Entry(nil), p.Entries[i+1:]...),
				Err:       err,
			}
		}
		done = append(done, entry)
		r.logger.Debug("renamed",
			logging.String("from", entry.Original),
			logging.String("to", entry.Target))
	}

	return &Result{RunID: runID, Renamed: done}, nil
}

func (r *Runner) renameEntry(entry plan.Entry) error {
	oldPath := filepath.Join(r.dir, entry.Original)
	newPath := filepath.Join(r.dir, entry.Target)

	// os.Rename overwrites silently on most platforms, so an unexpected
	// occupant of the target name must fail the entry instead.
	if _, err := os.Lstat(newPath); err == nil {
		return fmt.Errorf("target %q already exists", entry.Target)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("inspect target: %w", err)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return err
	}
	return nil
}

// RestoreResult summarizes a restore run.
type RestoreResult struct {
	Restored []backup.Mapping
	Skipped  []RestoreSkip
	// Pruned reports whether the backup record was removed because every
	// entry restored cleanly.
	Pruned bool
}

// RestoreSkip records a backup entry that could not be restored.
type RestoreSkip struct {
	Mapping backup.Mapping
	Reason  error
}

// Restore renames every active backup entry back to its original name.
// Missing files and occupied original names are skipped and reported, not
// fatal. A restore with no skips prunes the backup record.
func (r *Runner) Restore(ctx context.Context) (*RestoreResult, error) {
	unlock, err := r.acquireLock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	mappings, err := r.store.ActiveMappings(ctx)
	if err != nil {
		return nil, err
	}
	if len(mappings) == 0 {
		return nil, backup.ErrNoBackup
	}

	result := &RestoreResult{}
	for _, m := range mappings {
		if m.NewName == m.OriginalName {
			// Degenerate record; nothing to move.
			if err := r.store.MarkRestored(ctx, m.NewName); err != nil {
				return nil, err
			}
			result.Restored = append(result.Restored, m)
			continue
		}

		currentPath := filepath.Join(r.dir, m.NewName)
		originalPath := filepath.Join(r.dir, m.OriginalName)

		if _, err := os.Lstat(currentPath); errors.Is(err, os.ErrNotExist) {
			result.Skipped = append(result.Skipped, RestoreSkip{Mapping: m, Reason: ErrSourceMissing})
			continue
		}
		if _, err := os.Lstat(originalPath); err == nil {
			result.Skipped = append(result.Skipped, RestoreSkip{Mapping: m, Reason: ErrTargetExists})
			continue
		}

		if err := os.Rename(currentPath, originalPath); err != nil {
			r.logger.Warn("restore entry failed",
				logging.String("file", m.NewName),
				logging.Error(err))
			result.Skipped = append(result.Skipped, RestoreSkip{Mapping: m, Reason: err})
			continue
		}
		if err := r.store.MarkRestored(ctx, m.NewName); err != nil {
			return nil, err
		}
		result.Restored = append(result.Restored, m)
	}

	if len(result.Skipped) == 0 {
		if err := r.store.Prune(ctx); err != nil {
			return nil, err
		}
		result.Pruned = true
	}
	return result, nil
}

func (r *Runner) acquireLock() (func(), error) {
	ok, err := r.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire directory lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, r.lock.Path())
	}
	return func() {
		if err := r.lock.Unlock(); err != nil {
			r.logger.Warn("release directory lock", logging.Error(err))
		}
	}, nil
}
