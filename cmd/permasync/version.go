package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/permasync"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of permasync",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("permasync version %s\n", strings.TrimSpace(permasync.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
