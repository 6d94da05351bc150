// Change is the central entity of the domain.
package core

import "fmt"

// ChangeKind classifies a file-level difference between two revisions.
type ChangeKind string

const (
	ChangeRename ChangeKind = "RENAME"
	ChangeModify ChangeKind = "MODIFY"
)

// Change represents one row of a change-set.
// Paths are repository-relative and always use forward slashes.
type Change struct {
	Kind ChangeKind
	// OldPath is only set for renames.
	OldPath string
	Path    string
}

// Rename builds a rename record.
func Rename(oldPath, newPath string) Change {
	return Change{Kind: ChangeRename, OldPath: oldPath, Path: newPath}
}

// Modify builds an in-place modification record.
func Modify(path string) Change {
	return Change{Kind: ChangeModify, Path: path}
}

func (c Change) String() string {
	if c.Kind == ChangeRename {
		return fmt.Sprintf("%s %s -> %s", c.Kind, c.OldPath, c.Path)
	}
	return fmt.Sprintf("%s %s", c.Kind, c.Path)
}

// HeadRevision is the revision the working tree is compared from.
const HeadRevision = "HEAD"
