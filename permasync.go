package permasync

import (
	"context"
	_ "embed"
	"io"
	"log/slog"

	"github.com/aretw0/permasync/internal/platform"
	"github.com/aretw0/permasync/pkg/core"
	"github.com/aretw0/permasync/pkg/engine"
)

// Version exposes the version of the library.
//
//go:embed VERSION
var Version string

// --- Types ---

// Report is the outcome of one synchronization run.
type Report = engine.Report

// Syncer is a configured synchronizer for one repository.
type Syncer = platform.Syncer

// --- Configuration ---

// Option defines a functional option for configuring a run.
type Option = platform.Option

// Backend names.
const (
	BackendGit   = platform.BackendGit
	BackendGoGit = platform.BackendGoGit
)

// WithBackend selects the change-set reader ("git" or "gogit").
func WithBackend(name string) Option {
	return platform.WithBackend(name)
}

// WithChangeSource allows injecting a custom change-set reader.
func WithChangeSource(src core.ChangeSource) Option {
	return platform.WithChangeSource(src)
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithOutput sets where success notices are printed.
func WithOutput(w io.Writer) Option {
	return platform.WithOutput(w)
}

// WithConfigFile sets the YAML configuration file.
func WithConfigFile(path string) Option {
	return platform.WithConfigFile(path)
}

// WithBaseline sets the baseline revision explicitly.
func WithBaseline(rev string) Option {
	return platform.WithBaseline(rev)
}

// WithBaseRef sets the pull-request target branch.
func WithBaseRef(ref string) Option {
	return platform.WithBaseRef(ref)
}

// WithRemote sets the remote used with WithBaseRef.
func WithRemote(name string) Option {
	return platform.WithRemote(name)
}

// WithContentDir sets the content directory.
func WithContentDir(dir string) Option {
	return platform.WithContentDir(dir)
}

// WithExtension sets the document extension.
func WithExtension(ext string) Option {
	return platform.WithExtension(ext)
}

// WithInclude narrows the scope with doublestar globs.
func WithInclude(patterns ...string) Option {
	return platform.WithInclude(patterns...)
}

// WithExclude drops paths matching doublestar globs.
func WithExclude(patterns ...string) Option {
	return platform.WithExclude(patterns...)
}

// WithKey sets the permalink field name.
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithConflictPolicy sets the conflict policy ("flag" or "filename").
func WithConflictPolicy(policy string) Option {
	return platform.WithConflictPolicy(policy)
}

// WithDryRun reports planned actions without touching files.
func WithDryRun(enabled bool) Option {
	return platform.WithDryRun(enabled)
}

// --- Factory ---

// New creates a Syncer for the repository containing dir.
func New(dir string, opts ...Option) (*Syncer, error) {
	return platform.New(dir, opts...)
}

// --- Operations ---

// Run performs one synchronization pass for the repository containing dir.
func Run(ctx context.Context, dir string, opts ...Option) (Report, error) {
	s, err := platform.New(dir, opts...)
	if err != nil {
		return Report{}, err
	}
	return s.Run(ctx), nil
}

// Watch runs a pass for the repository containing dir every time HEAD moves,
// until ctx is done. onReport, if set, receives every report.
func Watch(ctx context.Context, dir string, onReport func(Report), opts ...Option) error {
	s, err := platform.New(dir, opts...)
	if err != nil {
		return err
	}
	return s.Watch(ctx, onReport)
}

// ResolveBaseline picks the baseline revision from an explicit value or a pull-request base branch.
func ResolveBaseline(explicit, baseRef, remote string) string {
	return platform.ResolveBaseline(explicit, baseRef, remote)
}
