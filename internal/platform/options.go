package platform

import (
	"io"
	"log/slog"

	"github.com/aretw0/permasync/pkg/core"
	"github.com/aretw0/permasync/pkg/engine"
)

// Backend names accepted by WithBackend.
const (
	BackendGit   = "git"
	BackendGoGit = "gogit"
)

// DefaultConfigFile is looked up at the repository root when no file is given.
const DefaultConfigFile = ".permasync.yml"

// options holds the internal configuration for a sync run.
type options struct {
	backend    string
	source     core.ChangeSource
	logger     *slog.Logger
	out        io.Writer
	configFile string

	// Baseline selection.
	baseline string
	baseRef  string
	remote   string

	scope    engine.Scope
	key      string
	conflict string
	dryRun   bool
}

// Option defines a functional option for configuring a sync run.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		backend: BackendGit,
		remote:  "origin",
		scope:   engine.DefaultScope(),
	}
}

func (o *options) apply(opts []Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// WithBackend selects the change-set reader: "git" (CLI, default) or "gogit" (in-process).
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithChangeSource allows injecting a custom change-set reader.
// If provided, the backend setting is ignored.
func WithChangeSource(src core.ChangeSource) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithLogger sets the logger for the run.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithOutput sets where one-line success notices are printed.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithConfigFile sets the YAML configuration file.
// Relative paths are resolved against the repository root.
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configFile = path
	}
}

// WithBaseline sets the baseline revision explicitly, bypassing BaseRef selection.
func WithBaseline(rev string) Option {
	return func(o *options) {
		o.baseline = rev
	}
}

// WithBaseRef sets the pull-request target branch. When set, the baseline is
// <remote>/<ref>; otherwise it is HEAD~1.
func WithBaseRef(ref string) Option {
	return func(o *options) {
		o.baseRef = ref
	}
}

// WithRemote sets the remote used to build the baseline from BaseRef.
// Defaults to "origin".
func WithRemote(name string) Option {
	return func(o *options) {
		o.remote = name
	}
}

// WithContentDir sets the repository-relative content directory.
func WithContentDir(dir string) Option {
	return func(o *options) {
		o.scope.Dir = dir
	}
}

// WithExtension sets the document extension, including the dot.
func WithExtension(ext string) Option {
	return func(o *options) {
		o.scope.Ext = ext
	}
}

// WithInclude narrows the scope to paths matching any of the doublestar globs.
func WithInclude(patterns ...string) Option {
	return func(o *options) {
		o.scope.Include = append([]string(nil), patterns...)
	}
}

// WithExclude drops paths matching any of the doublestar globs.
func WithExclude(patterns ...string) Option {
	return func(o *options) {
		o.scope.Exclude = append([]string(nil), patterns...)
	}
}

// WithKey sets the permalink field name.
func WithKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithConflictPolicy sets how renames with an edited permalink are handled ("flag" or "filename").
func WithConflictPolicy(policy string) Option {
	return func(o *options) {
		o.conflict = policy
	}
}

// WithDryRun reports planned actions without touching files.
func WithDryRun(enabled bool) Option {
	return func(o *options) {
		o.dryRun = enabled
	}
}
