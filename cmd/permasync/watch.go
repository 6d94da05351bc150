package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/permasync"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Sync after every commit until interrupted",
	Long: `Watch the repository and sync the last commit (HEAD~1..HEAD) every time HEAD moves.
Useful as a local companion while editing content.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		opts := append(syncOptions(cmd), permasync.WithBaseline("HEAD~1"))
		syncer, err := permasync.New(dir, opts...)
		if err != nil {
			fatal("Failed to configure sync", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err = syncer.Watch(ctx, func(report permasync.Report) {
			for _, c := range report.Conflicts {
				fmt.Fprintf(os.Stderr, "Conflict: %s was renamed but its permalink was set to %q\n", c.Change.Path, c.Field)
			}
		})
		if err != nil {
			fatal("Watch failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
