package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"seasonfix/internal/backup"
	"seasonfix/internal/renamer"
)

func newRestoreCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Rename files back to their original names using the backup record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			dir, err := ctx.workingDir()
			if err != nil {
				return err
			}

			stateDir, lockPath := ctx.statePaths(dir, cfg)
			if _, err := os.Stat(stateDir); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%w for %s (files can only be restored after a seasonfix rename)", backup.ErrNoBackup, dir)
			}

			store, err := backup.Open(stateDir)
			if err != nil {
				return err
			}
			defer store.Close()

			runner := renamer.New(dir, lockPath, store, logger)
			result, err := runner.Restore(cmd.Context())
			if err != nil {
				if errors.Is(err, backup.ErrNoBackup) {
					return fmt.Errorf("%w for %s (files can only be restored after a seasonfix rename)", backup.ErrNoBackup, dir)
				}
				return err
			}

			out := cmd.OutOrStdout()
			for _, m := range result.Restored {
				fmt.Fprintf(out, "Restored: %s -> %s\n", m.NewName, m.OriginalName)
			}
			for _, skip := range result.Skipped {
				fmt.Fprintf(out, "Skipped %s: %v\n", skip.Mapping.NewName, skip.Reason)
			}
			fmt.Fprintf(out, "Restored %d file(s), skipped %d.\n", len(result.Restored), len(result.Skipped))
			if result.Pruned {
				fmt.Fprintln(out, "Backup record removed.")
			}
			return nil
		},
	}
}
