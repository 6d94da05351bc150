// Package fs holds the filesystem side of permasync: the workspace the sync
// engine mutates and the HEAD watcher used by watch mode.
package fs

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/permasync/pkg/core"
)

// Workspace implements core.Workspace over a directory tree, usually the git work tree root.
type Workspace struct {
	Root   string
	Logger *slog.Logger
}

// NewWorkspace creates a workspace rooted at root.
func NewWorkspace(root string, logger *slog.Logger) *Workspace {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Workspace{Root: root, Logger: logger}
}

var _ core.Workspace = (*Workspace)(nil)

// resolve maps a repository-relative slash path to an OS path under Root.
func (w *Workspace) resolve(rel string) (string, error) {
	local, err := filepath.Localize(rel)
	if err != nil {
		return "", fmt.Errorf("%s: %w", rel, core.ErrOutOfScope)
	}
	return filepath.Join(w.Root, local), nil
}

func (w *Workspace) ReadFile(rel string) ([]byte, error) {
	full, err := w.resolve(rel)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", rel, core.ErrNotFound)
	}
	return data, err
}

// WriteFile replaces the file atomically, keeping its permission bits.
func (w *Workspace) WriteFile(rel string, data []byte) error {
	full, err := w.resolve(rel)
	if err != nil {
		return err
	}
	perm := os.FileMode(0o644)
	if info, err := os.Stat(full); err == nil {
		perm = info.Mode().Perm()
	}
	w.Logger.Debug("writing file", "path", rel, "bytes", len(data))
	return writeFileAtomic(full, data, perm)
}

// Rename moves a file within the workspace and never overwrites the target.
func (w *Workspace) Rename(from, to string) error {
	src, err := w.resolve(from)
	if err != nil {
		return err
	}
	dst, err := w.resolve(to)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", to, err)
	}
	w.Logger.Debug("renaming file", "from", from, "to", to)
	return renameNoReplace(src, dst)
}

func (w *Workspace) Exists(rel string) bool {
	full, err := w.resolve(rel)
	if err != nil {
		return false
	}
	_, err = os.Lstat(full)
	return err == nil
}
