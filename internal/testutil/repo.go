// Package testutil builds throwaway git repositories for tests using go-git,
// so no git binary is required.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repo is a temporary git work tree.
type Repo struct {
	t    *testing.T
	Root string
	Git  *git.Repository
}

// NewRepo initializes an empty repository in a temp directory.
func NewRepo(t *testing.T) *Repo {
	t.Helper()
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	if err != nil {
		t.Fatalf("init repo: %v", err)
	}
	return &Repo{t: t, Root: root, Git: repo}
}

// Write creates or replaces a file at a slash-separated relative path.
func (r *Repo) Write(rel, content string) {
	r.t.Helper()
	full := filepath.Join(r.Root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		r.t.Fatalf("write %s: %v", rel, err)
	}
}

// Move renames a file in the work tree.
func (r *Repo) Move(from, to string) {
	r.t.Helper()
	dst := filepath.Join(r.Root, filepath.FromSlash(to))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		r.t.Fatalf("mkdir: %v", err)
	}
	if err := os.Rename(filepath.Join(r.Root, filepath.FromSlash(from)), dst); err != nil {
		r.t.Fatalf("move %s: %v", from, err)
	}
}

// Remove deletes a file from the work tree.
func (r *Repo) Remove(rel string) {
	r.t.Helper()
	if err := os.Remove(filepath.Join(r.Root, filepath.FromSlash(rel))); err != nil {
		r.t.Fatalf("remove %s: %v", rel, err)
	}
}

// Read returns the work tree content of rel.
func (r *Repo) Read(rel string) string {
	r.t.Helper()
	data, err := os.ReadFile(filepath.Join(r.Root, filepath.FromSlash(rel)))
	if err != nil {
		r.t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

// Exists reports whether rel exists in the work tree.
func (r *Repo) Exists(rel string) bool {
	_, err := os.Stat(filepath.Join(r.Root, filepath.FromSlash(rel)))
	return err == nil
}

// Commit stages everything, deletions included, and commits it.
func (r *Repo) Commit(msg string) {
	r.t.Helper()
	wt, err := r.Git.Worktree()
	if err != nil {
		r.t.Fatalf("worktree: %v", err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		r.t.Fatalf("add: %v", err)
	}
	_, err = wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  time.Unix(1700000000, 0),
		},
	})
	if err != nil {
		r.t.Fatalf("commit: %v", err)
	}
}
