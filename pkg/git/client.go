package git

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/permasync/pkg/core"
)

// Client wraps git command execution with a file-based lock for process safety.
// It implements core.ChangeSource on top of the git CLI.
type Client struct {
	WorkDir string
	// GitDir holds the lock file. Defaults to <WorkDir>/.git.
	GitDir   string
	Logger   *slog.Logger
	lockPath string
}

// NewClient creates a new git client for the given working directory.
func NewClient(workDir string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		WorkDir:  workDir,
		GitDir:   filepath.Join(workDir, ".git"),
		Logger:   logger,
		lockPath: ".permasync.lock",
	}
}

var _ core.ChangeSource = (*Client)(nil)

// Lock acquires a file-based lock inside the git directory. It blocks until
// the lock is acquired or ctx is done.
func (c *Client) Lock(ctx context.Context) (func(), error) {
	fullLockPath := filepath.Join(c.GitDir, c.lockPath)

	for {
		f, err := os.OpenFile(fullLockPath, os.O_CREATE|os.O_EXCL, 0666)
		if err == nil {
			f.Close()
			return func() {
				os.Remove(fullLockPath)
			}, nil
		}

		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// Run executes a raw git command in the working directory and returns its
// trimmed standard output.
// NOTE: It does NOT acquire the lock automatically.
func (c *Client) Run(ctx context.Context, args ...string) (string, error) {
	out, err := c.run(ctx, args...)
	return strings.TrimSpace(string(out)), err
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	c.Logger.Debug("executing git", "args", args, "dir", c.WorkDir)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.WorkDir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), fmt.Errorf("git %s failed: %w\nOutput: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// Init initializes a new git repository if one doesn't exist.
func (c *Client) Init(ctx context.Context) error {
	_, err := c.Run(ctx, "init")
	return err
}

// TopLevel returns the absolute path of the work tree root.
func (c *Client) TopLevel(ctx context.Context) (string, error) {
	return c.Run(ctx, "rev-parse", "--show-toplevel")
}

// ListChanges runs `git diff --name-status --find-renames <baseline>` and keeps
// renames and modifications. Rename detection is forced so diff.renames=false
// in the user's config cannot hide renames.
func (c *Client) ListChanges(ctx context.Context, baseline string) ([]core.Change, error) {
	if baseline == "" {
		return nil, core.ErrNoBaseline
	}
	out, err := c.run(ctx, "diff", "--name-status", "--find-renames", baseline)
	if err != nil {
		return nil, err
	}
	return ParseNameStatus(string(out)), nil
}

// ReadAtRevision runs `git show <revision>:<path>`.
func (c *Client) ReadAtRevision(ctx context.Context, revision, path string) ([]byte, error) {
	out, err := c.run(ctx, "show", revision+":"+path)
	if err != nil {
		return nil, fmt.Errorf("read %s at %s: %w", path, revision, err)
	}
	return out, nil
}

// Add adds files to the stage, including deletions left behind by renames.
func (c *Client) Add(ctx context.Context, files ...string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"add", "-A", "--"}, files...)
	_, err := c.Run(ctx, args...)
	return err
}

// Commit records staged changes to the repository.
func (c *Client) Commit(ctx context.Context, msg string) error {
	_, err := c.Run(ctx, "commit", "-m", msg)
	return err
}
