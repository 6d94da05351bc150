package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/permasync"
)

var (
	dryRun bool
	commit bool
	stats  bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [dir]",
	Short: "Sync the current change-set once",
	Long: `Sync the change-set between the baseline and HEAD once.
Failures on individual files are skipped; the command always completes.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		opts := append(syncOptions(cmd), permasync.WithDryRun(dryRun))
		syncer, err := permasync.New(dir, opts...)
		if err != nil {
			fatal("Failed to configure sync", err)
		}

		ctx := cmd.Context()
		report := syncer.Run(ctx)

		for _, c := range report.Conflicts {
			fmt.Fprintf(os.Stderr, "Conflict: %s was renamed but its permalink was set to %q (file name says %q)\n",
				c.Change.Path, c.Field, c.Name)
		}

		if commit {
			if err := syncer.Commit(ctx, report); err != nil {
				fmt.Fprintf(os.Stderr, "Error: commit failed: %v\n", err)
			}
		}

		if stats {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			_ = enc.Encode(syncer.Engine.State())
		}
	},
}

func init() {
	runCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Report actions without touching files")
	runCmd.Flags().BoolVar(&commit, "commit", false, "Commit the synced files")
	runCmd.Flags().BoolVar(&stats, "stats", false, "Print engine state as JSON")
	rootCmd.AddCommand(runCmd)
}
