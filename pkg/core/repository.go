package core

import "context"

// ChangeSource defines the contract for reading a change-set out of version control.
// Implementations exist for the git CLI (pkg/git) and go-git (pkg/adapters/gogit).
type ChangeSource interface {
	// ListChanges returns renames and in-place modifications between baseline and HEAD,
	// in the order reported by the version control system.
	ListChanges(ctx context.Context, baseline string) ([]Change, error)

	// ReadAtRevision returns the content of path as it exists at revision.
	ReadAtRevision(ctx context.Context, revision, path string) ([]byte, error)
}

// Workspace is the filesystem boundary the engine mutates.
// All paths are repository-relative.
type Workspace interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	// Rename moves from to to and must never overwrite an existing file.
	Rename(from, to string) error
	Exists(path string) bool
}
