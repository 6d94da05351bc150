package platform

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/permasync/pkg/adapters/fs"
	"github.com/aretw0/permasync/pkg/adapters/gogit"
	"github.com/aretw0/permasync/pkg/core"
	"github.com/aretw0/permasync/pkg/engine"
	"github.com/aretw0/permasync/pkg/git"
)

// Syncer wires a change-set reader, the workspace and the engine for one repository.
type Syncer struct {
	Root   string
	Engine *engine.Engine

	git       *git.Client
	gitDir    string
	commonDir string
	logger    *slog.Logger
}

// New locates the repository containing dir, loads its configuration and
// builds a Syncer. Configuration precedence: options, then the config file,
// then defaults.
func New(dir string, opts ...Option) (*Syncer, error) {
	probe := defaultOptions()
	probe.apply(opts)

	root, err := FindRoot(dir)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	path, required := probe.configPath(root)
	fc, err := LoadConfig(path, required)
	if err != nil {
		return nil, err
	}
	o.applyFile(fc)
	o.apply(opts)

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := o.scope.Validate(); err != nil {
		return nil, err
	}
	policy, err := engine.ParseConflictPolicy(o.conflict)
	if err != nil {
		return nil, err
	}

	gitDir, commonDir, err := git.ResolveGitDir(root)
	if err != nil {
		return nil, err
	}
	client := git.NewClient(root, logger)
	client.GitDir = gitDir
	source, err := o.changeSource(root, client, logger)
	if err != nil {
		return nil, err
	}

	baseline := ResolveBaseline(o.baseline, o.baseRef, o.remote)
	logger.Debug("sync configured", "root", root, "baseline", baseline, "backend", o.backend,
		"dir", o.scope.Dir, "ext", o.scope.Ext)

	eng := engine.New(source, fs.NewWorkspace(root, logger), engine.Config{
		Scope:    o.scope,
		Key:      o.key,
		Baseline: baseline,
		Conflict: policy,
		DryRun:   o.dryRun,
		Logger:   logger,
		Out:      o.out,
	})

	return &Syncer{
		Root:      root,
		Engine:    eng,
		git:       client,
		gitDir:    gitDir,
		commonDir: commonDir,
		logger:    logger,
	}, nil
}

func (o *options) changeSource(root string, client *git.Client, logger *slog.Logger) (core.ChangeSource, error) {
	if o.source != nil {
		return o.source, nil
	}
	switch o.backend {
	case BackendGit, "":
		return client, nil
	case BackendGoGit:
		return gogit.Open(root, logger)
	default:
		return nil, fmt.Errorf("unknown backend: %s", o.backend)
	}
}

// Run performs one synchronization pass.
func (s *Syncer) Run(ctx context.Context) engine.Report {
	return s.Engine.Run(ctx)
}

// Commit stages and commits the paths touched by report.
// It is a no-op for dry runs and runs without applied actions.
func (s *Syncer) Commit(ctx context.Context, report engine.Report) error {
	paths := report.Touched()
	if report.DryRun || len(paths) == 0 {
		return nil
	}

	unlock, err := s.git.Lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.git.Add(ctx, paths...); err != nil {
		return fmt.Errorf("stage changes: %w", err)
	}
	if err := s.git.Commit(ctx, git.SyncCommitMessage(paths)); err != nil {
		return fmt.Errorf("commit changes: %w", err)
	}
	s.logger.Info("committed sync", "files", len(paths))
	return nil
}

// Watch runs a pass every time HEAD moves until ctx is done.
// onReport, if set, receives every report.
func (s *Syncer) Watch(ctx context.Context, onReport func(engine.Report)) error {
	moves, err := fs.NewGitDirWatcher(s.gitDir, s.commonDir, s.logger).Watch(ctx)
	if err != nil {
		return err
	}
	s.logger.Info("watching for commits", "root", s.Root)

	for range moves {
		if ctx.Err() != nil {
			break
		}
		report := s.Run(ctx)
		if onReport != nil {
			onReport(report)
		}
	}
	return nil
}
