package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/permasync"
)

var (
	verbose    bool
	configFile string
	backend    string
	contentDir string
	extension  string
	key        string
	baseline   string
	baseRef    string
	remote     string
	conflict   string
	include    []string
	exclude    []string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "permasync",
	Short: "Keep content file names and permalink fields in sync",
	Long: `permasync compares HEAD with a baseline revision and brings content files
back in line: a renamed file gets its permalink rewritten, and a file whose
permalink was edited is renamed to match it.

In a pull request the baseline is origin/$GITHUB_BASE_REF; on a push it is HEAD~1.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// syncOptions maps the flags that were set on cmd to options, so unset flags
// leave config file values alone.
func syncOptions(cmd *cobra.Command) []permasync.Option {
	opts := []permasync.Option{
		permasync.WithLogger(slog.Default()),
		permasync.WithOutput(cmd.OutOrStdout()),
		permasync.WithBaseRef(baseRef),
	}

	flags := cmd.Flags()
	if flags.Changed("config") {
		opts = append(opts, permasync.WithConfigFile(configFile))
	}
	if flags.Changed("backend") {
		opts = append(opts, permasync.WithBackend(backend))
	}
	if flags.Changed("dir") {
		opts = append(opts, permasync.WithContentDir(contentDir))
	}
	if flags.Changed("ext") {
		opts = append(opts, permasync.WithExtension(extension))
	}
	if flags.Changed("key") {
		opts = append(opts, permasync.WithKey(key))
	}
	if flags.Changed("baseline") {
		opts = append(opts, permasync.WithBaseline(baseline))
	}
	if flags.Changed("remote") {
		opts = append(opts, permasync.WithRemote(remote))
	}
	if flags.Changed("conflict") {
		opts = append(opts, permasync.WithConflictPolicy(conflict))
	}
	if flags.Changed("include") {
		opts = append(opts, permasync.WithInclude(include...))
	}
	if flags.Changed("exclude") {
		opts = append(opts, permasync.WithExclude(exclude...))
	}
	return opts
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	pf.StringVarP(&configFile, "config", "c", "", "Config file (default <repo>/.permasync.yml)")
	pf.StringVar(&backend, "backend", permasync.BackendGit, "Change-set reader: git or gogit")
	pf.StringVar(&contentDir, "dir", "src/content/pages", "Repository-relative content directory")
	pf.StringVar(&extension, "ext", ".yaml", "Document file extension")
	pf.StringVar(&key, "key", "permalink", "Permalink field name")
	pf.StringVar(&baseline, "baseline", "", "Baseline revision (overrides --base-ref)")
	pf.StringVar(&baseRef, "base-ref", os.Getenv("GITHUB_BASE_REF"), "Pull request base branch")
	pf.StringVar(&remote, "remote", "origin", "Remote holding the base branch")
	pf.StringVar(&conflict, "conflict", "flag", "Rename+edit conflicts: flag or filename")
	pf.StringSliceVar(&include, "include", nil, "Only sync paths matching these globs")
	pf.StringSliceVar(&exclude, "exclude", nil, "Skip paths matching these globs")
}
