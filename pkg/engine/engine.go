// Package engine keeps content file names and their permalink fields in sync
// for one change-set.
//
// A run has two passes over the change-set, in diff order:
//
//   - Pass A: a renamed file gets its permalink rewritten from the new name.
//   - Pass B: a file whose permalink was edited is renamed after it.
//
// Every failure is absorbed into the run Report; Run never returns an error.
package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"sync"

	"github.com/aretw0/permasync/pkg/core"
	"github.com/aretw0/permasync/pkg/permalink"
)

// ConflictPolicy decides what a rename whose permalink was also edited does.
type ConflictPolicy string

const (
	// ConflictFlag reports the conflict and leaves the file untouched.
	ConflictFlag ConflictPolicy = "flag"
	// ConflictFilename lets the new file name win, overwriting the edited field.
	ConflictFilename ConflictPolicy = "filename"
)

// ParseConflictPolicy validates a policy name. Empty selects ConflictFlag.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch ConflictPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", ConflictFlag:
		return ConflictFlag, nil
	case ConflictFilename:
		return ConflictFilename, nil
	}
	return "", fmt.Errorf("unknown conflict policy %q (want %q or %q)", s, ConflictFlag, ConflictFilename)
}

// Config holds the engine settings.
type Config struct {
	Scope Scope
	// Key is the permalink field name. Empty means permalink.DefaultKey.
	Key string
	// Baseline is the revision HEAD is compared against.
	Baseline string
	Conflict ConflictPolicy
	// DryRun plans actions without touching the workspace.
	DryRun bool
	Logger *slog.Logger
	// Out receives one-line notices. Nil discards them.
	Out io.Writer
}

// Engine runs the synchronization passes.
type Engine struct {
	source core.ChangeSource
	ws     core.Workspace
	codec  *permalink.Codec
	config Config

	mu    sync.RWMutex
	stats Stats
}

// New creates an engine reading changes from source and mutating ws.
func New(source core.ChangeSource, ws core.Workspace, config Config) *Engine {
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.Out == nil {
		config.Out = io.Discard
	}
	if config.Scope.Ext == "" {
		config.Scope.Ext = DefaultExt
	}
	if config.Conflict == "" {
		config.Conflict = ConflictFlag
	}
	return &Engine{
		source: source,
		ws:     ws,
		codec:  permalink.NewCodec(config.Key),
		config: config,
	}
}

// Run lists the change-set and applies both passes.
func (e *Engine) Run(ctx context.Context) Report {
	report := Report{Baseline: e.config.Baseline, DryRun: e.config.DryRun}
	log := e.config.Logger.With("baseline", e.config.Baseline)

	changes, err := e.source.ListChanges(ctx, e.config.Baseline)
	if err != nil {
		log.Warn("cannot list changes, nothing to do", "error", err)
		e.record(report)
		return report
	}

	var renames, modifies []core.Change
	for _, c := range changes {
		if !e.config.Scope.Match(c.Path) {
			log.Debug("out of scope", "change", c.String())
			continue
		}
		switch c.Kind {
		case core.ChangeRename:
			renames = append(renames, c)
		case core.ChangeModify:
			modifies = append(modifies, c)
		}
	}
	report.Considered = len(renames) + len(modifies)
	log.Debug("change-set classified", "total", len(changes), "renames", len(renames), "modifies", len(modifies))

	for _, c := range renames {
		if ctx.Err() != nil {
			break
		}
		e.syncFromName(ctx, c, &report)
	}
	for _, c := range modifies {
		if ctx.Err() != nil {
			break
		}
		e.syncFromField(ctx, c, &report)
	}

	e.record(report)
	return report
}

// syncFromName rewrites the permalink of a renamed file (Pass A).
func (e *Engine) syncFromName(ctx context.Context, c core.Change, report *Report) {
	log := e.config.Logger.With("path", c.Path)

	candidate := permalink.FromPath(c.Path)
	if candidate == "" {
		report.skip(c, SkipInvalidName, core.ErrInvalidName)
		return
	}

	data, err := e.ws.ReadFile(c.Path)
	if err != nil {
		log.Debug("skipping renamed file", "error", err)
		report.skip(c, SkipReadFailed, err)
		return
	}

	updated := e.codec.Parse(data).SetIdentifier(candidate).Bytes()
	if bytes.Equal(updated, data) {
		report.skip(c, SkipInSync, nil)
		return
	}

	if e.config.Conflict == ConflictFlag {
		if conflict, ok := e.detectConflict(ctx, c, candidate); ok {
			log.Warn("permalink edited and file renamed in the same change, leaving it alone",
				"old_path", c.OldPath, "field", conflict.Field, "name", conflict.Name)
			report.Conflicts = append(report.Conflicts, conflict)
			report.skip(c, SkipConflict, nil)
			return
		}
	}

	if !e.config.DryRun {
		if err := e.ws.WriteFile(c.Path, updated); err != nil {
			log.Debug("write failed", "error", err)
			report.skip(c, SkipWriteFailed, err)
			return
		}
	}

	report.Applied = append(report.Applied, Action{Kind: ActionRewrite, Path: c.Path, Identifier: candidate})
	e.notice("Updated permalink from filename: %s → %s", c.Path, candidate)
}

// detectConflict reports a rename whose permalink was edited in the same
// change-set to a value the new file name does not map to. Unreadable
// revisions mean no conflict is known.
func (e *Engine) detectConflict(ctx context.Context, c core.Change, candidate string) (Conflict, bool) {
	head, err := e.source.ReadAtRevision(ctx, core.HeadRevision, c.Path)
	if err != nil {
		return Conflict{}, false
	}
	base, err := e.source.ReadAtRevision(ctx, e.config.Baseline, c.OldPath)
	if err != nil {
		return Conflict{}, false
	}

	headID, ok := e.codec.Parse(head).Identifier()
	if !ok {
		return Conflict{}, false
	}
	baseID, hadBase := e.codec.Parse(base).Identifier()
	if hadBase && baseID == headID {
		return Conflict{}, false
	}
	if permalink.FromName(headID) == candidate {
		return Conflict{}, false
	}
	return Conflict{Change: c, Field: headID, Name: candidate}, true
}

// syncFromField renames a file whose permalink was edited (Pass B).
func (e *Engine) syncFromField(ctx context.Context, c core.Change, report *Report) {
	log := e.config.Logger.With("path", c.Path)

	head, err := e.source.ReadAtRevision(ctx, core.HeadRevision, c.Path)
	if err != nil {
		log.Debug("cannot read HEAD revision", "error", err)
		report.skip(c, SkipReadFailed, err)
		return
	}
	base, err := e.source.ReadAtRevision(ctx, e.config.Baseline, c.Path)
	if err != nil {
		log.Debug("cannot read baseline revision", "error", err)
		report.skip(c, SkipReadFailed, err)
		return
	}

	newID, ok := e.codec.Parse(head).Identifier()
	if !ok {
		report.skip(c, SkipNoIdentifier, nil)
		return
	}
	if oldID, had := e.codec.Parse(base).Identifier(); had && oldID == newID {
		report.skip(c, SkipUnchanged, nil)
		return
	}

	name := permalink.FileName(newID, e.config.Scope.Ext)
	if err := validFileName(name, e.config.Scope.Ext); err != nil {
		log.Warn("permalink cannot be used as a file name", "permalink", newID)
		report.skip(c, SkipInvalidName, err)
		return
	}
	if path.Base(c.Path) == name {
		report.skip(c, SkipInSync, nil)
		return
	}

	target := path.Join(path.Dir(c.Path), name)
	if e.ws.Exists(target) {
		log.Info("not renaming, target already exists", "target", target)
		report.skip(c, SkipCollision, fmt.Errorf("%s: %w", target, core.ErrCollision))
		return
	}

	if !e.config.DryRun {
		if err := e.ws.Rename(c.Path, target); err != nil {
			reason := SkipWriteFailed
			if errors.Is(err, core.ErrCollision) {
				reason = SkipCollision
			}
			log.Debug("rename failed", "target", target, "error", err)
			report.skip(c, reason, err)
			return
		}
	}

	report.Applied = append(report.Applied, Action{Kind: ActionRename, Path: c.Path, NewPath: target, Identifier: newID})
	e.notice("Renamed from permalink: %s → %s", c.Path, target)
}

// validFileName rejects names that would leave the directory or have no stem.
func validFileName(name, ext string) error {
	stem := strings.TrimSuffix(name, ext)
	if stem == "" || stem == "." || stem == ".." || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%q: %w", name, core.ErrInvalidName)
	}
	return nil
}

func (e *Engine) notice(format string, args ...any) {
	if e.config.DryRun {
		format = "(dry run) " + format
	}
	fmt.Fprintf(e.config.Out, format+"\n", args...)
}
