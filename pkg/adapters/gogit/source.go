// Package gogit is an in-process change-set reader built on go-git.
// It needs no git binary, which makes it usable in minimal CI images.
package gogit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/aretw0/permasync/pkg/core"
)

// Source implements core.ChangeSource over a go-git repository.
type Source struct {
	repo   *git.Repository
	logger *slog.Logger
}

// Open opens the repository containing dir.
func Open(dir string, logger *slog.Logger) (*Source, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repo: %w", err)
	}
	return New(repo, logger), nil
}

// New wraps an already opened repository.
func New(repo *git.Repository, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Source{repo: repo, logger: logger}
}

var _ core.ChangeSource = (*Source)(nil)

func (s *Source) commit(revision string) (*object.Commit, error) {
	hash, err := s.repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", revision, err)
	}
	commitObj, err := s.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("read commit %s: %w", revision, err)
	}
	return commitObj, nil
}

// ListChanges diffs the baseline tree against the HEAD tree with rename detection.
func (s *Source) ListChanges(ctx context.Context, baseline string) ([]core.Change, error) {
	if baseline == "" {
		return nil, core.ErrNoBaseline
	}
	from, err := s.commit(baseline)
	if err != nil {
		return nil, err
	}
	to, err := s.commit(core.HeadRevision)
	if err != nil {
		return nil, err
	}

	fromTree, err := from.Tree()
	if err != nil {
		return nil, fmt.Errorf("load tree %s: %w", baseline, err)
	}
	toTree, err := to.Tree()
	if err != nil {
		return nil, fmt.Errorf("load tree HEAD: %w", err)
	}

	opts := *object.DefaultDiffTreeOptions
	opts.DetectRenames = true
	diff, err := object.DiffTreeWithOptions(ctx, fromTree, toTree, &opts)
	if err != nil {
		return nil, fmt.Errorf("diff trees: %w", err)
	}

	var changes []core.Change
	for _, ch := range diff {
		fromName, toName := ch.From.Name, ch.To.Name
		switch {
		case fromName == "" || toName == "":
			// Insert or delete.
			continue
		case fromName != toName:
			changes = append(changes, core.Rename(fromName, toName))
		case ch.From.TreeEntry.Hash != ch.To.TreeEntry.Hash:
			if !ch.From.TreeEntry.Mode.IsFile() || !ch.To.TreeEntry.Mode.IsFile() {
				// Type change. Mode bits between regular files still count as a modification.
				continue
			}
			changes = append(changes, core.Modify(toName))
		}
	}
	s.logger.Debug("listed changes", "baseline", baseline, "count", len(changes))
	return changes, nil
}

// ReadAtRevision returns the blob content of path in the tree of revision.
func (s *Source) ReadAtRevision(ctx context.Context, revision, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	commitObj, err := s.commit(revision)
	if err != nil {
		return nil, err
	}
	file, err := commitObj.File(path)
	if errors.Is(err, object.ErrFileNotFound) {
		return nil, fmt.Errorf("%s at %s: %w", path, revision, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s at %s: %w", path, revision, err)
	}
	contents, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("read %s at %s: %w", path, revision, err)
	}
	return []byte(contents), nil
}
