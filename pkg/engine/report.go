package engine

import (
	"sort"

	"github.com/aretw0/permasync/pkg/core"
)

// ActionKind tells which side of the pair was brought in line.
type ActionKind string

const (
	// ActionRewrite rewrote the permalink field after a file rename.
	ActionRewrite ActionKind = "rewrite"
	// ActionRename renamed the file after a permalink edit.
	ActionRename ActionKind = "rename"
)

// Action is one applied (or, in dry-run mode, planned) mutation.
type Action struct {
	Kind       ActionKind
	Path       string
	NewPath    string // rename only
	Identifier string
}

// SkipReason explains why a qualifying change produced no mutation.
type SkipReason string

const (
	SkipInSync       SkipReason = "already in sync"
	SkipUnchanged    SkipReason = "permalink unchanged"
	SkipNoIdentifier SkipReason = "no permalink at HEAD"
	SkipInvalidName  SkipReason = "invalid file name"
	SkipCollision    SkipReason = "target exists"
	SkipReadFailed   SkipReason = "read failed"
	SkipWriteFailed  SkipReason = "write failed"
	SkipConflict     SkipReason = "conflict"
)

// Skip records a change that was left alone.
type Skip struct {
	Change core.Change
	Reason SkipReason
	Err    error
}

// Conflict is a rename whose permalink was also edited to a value that
// disagrees with the new file name.
type Conflict struct {
	Change core.Change
	// Field is the permalink value at HEAD.
	Field string
	// Name is the permalink the new file name maps to.
	Name string
}

// Report is the outcome of one run. It is never an error: failures are skips.
type Report struct {
	Baseline   string
	Considered int
	Applied    []Action
	Skipped    []Skip
	Conflicts  []Conflict
	DryRun     bool
}

// Touched returns the sorted set of paths mutated by the run, including the
// old side of renames so a commit can stage the deletion.
func (r Report) Touched() []string {
	seen := make(map[string]struct{})
	for _, a := range r.Applied {
		seen[a.Path] = struct{}{}
		if a.NewPath != "" {
			seen[a.NewPath] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (r *Report) skip(c core.Change, reason SkipReason, err error) {
	r.Skipped = append(r.Skipped, Skip{Change: c, Reason: reason, Err: err})
}
