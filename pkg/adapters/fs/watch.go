package fs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for git to settle after HEAD moves.
const DefaultDebounce = 250 * time.Millisecond

// HeadWatcher reports every time HEAD moves in a git work tree.
// It observes HEAD (checkout), logs/HEAD (commit, reset, merge) and the
// branch refs, which tools without a reflog update directly.
type HeadWatcher struct {
	GitDir string
	// RefsDir holds the branch refs. For linked worktrees it lives in the common dir.
	RefsDir  string
	Debounce time.Duration
	Logger   *slog.Logger
}

// NewHeadWatcher creates a watcher for the repository at root, assuming a
// plain <root>/.git directory.
func NewHeadWatcher(root string, logger *slog.Logger) *HeadWatcher {
	gitDir := filepath.Join(root, ".git")
	return NewGitDirWatcher(gitDir, gitDir, logger)
}

// NewGitDirWatcher creates a watcher for an already resolved git directory
// and its common directory.
func NewGitDirWatcher(gitDir, commonDir string, logger *slog.Logger) *HeadWatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &HeadWatcher{
		GitDir:   filepath.Clean(gitDir),
		RefsDir:  filepath.Join(commonDir, "refs", "heads"),
		Debounce: DefaultDebounce,
		Logger:   logger,
	}
}

// Watch starts observing and returns a channel that receives one value per
// settled HEAD move. The channel is closed when ctx is done or the watcher fails.
func (h *HeadWatcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(h.GitDir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", h.GitDir, err)
	}
	// logs/ only exists after the first commit.
	if err := watcher.Add(filepath.Join(h.GitDir, "logs")); err != nil {
		h.Logger.Debug("reflog directory not watched", "error", err)
	}
	if h.RefsDir != "" {
		if err := watcher.Add(h.RefsDir); err != nil {
			h.Logger.Debug("refs directory not watched", "error", err)
		}
	}

	out := make(chan struct{}, 1)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		defer watcher.Close()
		return h.loop(ctx, watcher, out)
	}, lifecycle.WithErrorHandler(func(err error) {
		h.Logger.Error("head watcher stopped", "error", err)
	}))
	return out, nil
}

func (h *HeadWatcher) loop(ctx context.Context, watcher *fsnotify.Watcher, out chan<- struct{}) error {
	timer := time.NewTimer(h.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if !h.isHeadMove(event) {
				continue
			}
			h.Logger.Debug("head moved", "event", event.String())
			timer.Reset(h.Debounce)

		case <-timer.C:
			select {
			case out <- struct{}{}:
			default:
				// A run is already pending.
			}

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			h.Logger.Error("fsnotify error", "error", wErr)
		}
	}
}

func (h *HeadWatcher) isHeadMove(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	name := filepath.Clean(event.Name)
	if name == filepath.Join(h.GitDir, "HEAD") || name == filepath.Join(h.GitDir, "logs", "HEAD") {
		return true
	}
	// Git writes <ref>.lock and renames it into place.
	return h.RefsDir != "" && filepath.Dir(name) == filepath.Clean(h.RefsDir) && filepath.Ext(name) != ".lock"
}
