package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"seasonfix/internal/backup"
	"seasonfix/internal/fileutil"
	"seasonfix/internal/plan"
	"seasonfix/internal/renamer"
	"seasonfix/internal/spec"
	"seasonfix/internal/tvdb"
)

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var specFlag string
	var seriesFlag int64
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename flat \"Episode N\" files to SxxExx form using a season spec",
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

			var source spec.Source
			if seriesFlag > 0 {
				client, err := ctx.metadataClient(cfg)
				if err != nil {
					return err
				}
				source = tvdb.NewSpecSource(client, seriesFlag)
			} else {
				source, err = spec.FindFile(dir, specFlag, cfg.Rename.SpecFileNames)
				if err != nil {
					return err
				}
			}

			table, err := spec.Load(cmd.Context(), source)
			if err != nil {
				return err
			}

			files, err := fileutil.ListVideos(dir, fileutil.NormalizeExtensions(cfg.Rename.VideoExtensions))
			if err != nil {
				return err
			}

			p, err := plan.Build(files, table)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Using %s\n", source.Origin())
			printPlan(out, p, dryRun)
			if dryRun {
				return nil
			}
			if len(p.Entries) == 0 {
				fmt.Fprintln(out, "Nothing to rename.")
				return nil
			}

			stateDir, lockPath := ctx.statePaths(dir, cfg)
			store, err := backup.Open(stateDir)
			if err != nil {
				return err
			}
			defer store.Close()

			runner := renamer.New(dir, lockPath, store, logger)
			result, err := runner.Apply(cmd.Context(), p)
			if err != nil {
				var applyErr *renamer.ApplyError
				if errors.As(err, &applyErr) {
					printPartialApply(out, applyErr)
				}
				return err
			}

			for _, entry := range result.Renamed {
				fmt.Fprintf(out, "Renamed: %s -> %s\n", entry.Original, entry.Target)
			}
			fmt.Fprintf(out, "Renamed %d file(s), skipped %d.\n", len(result.Renamed), len(p.Skips))
			return nil
		},
	}

	cmd.Flags().StringVarP(&specFlag, "spec", "s", "", "Path to the season spec file")
	cmd.Flags().Int64Var(&seriesFlag, "series", 0, "Build the spec from the metadata service for this series ID")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the plan without renaming anything")
	return cmd
}
