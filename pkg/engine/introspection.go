package engine

import (
	"github.com/aretw0/introspection"
)

// Stats accumulates outcomes over every run of an engine.
type Stats struct {
	Runs      int `json:"runs"`
	Rewrites  int `json:"rewrites"`
	Renames   int `json:"renames"`
	Skipped   int `json:"skipped"`
	Conflicts int `json:"conflicts"`
}

// EngineState exposes internal state for observability.
type EngineState struct {
	Baseline string         `json:"baseline"`
	Dir      string         `json:"dir"`
	Ext      string         `json:"ext"`
	Key      string         `json:"key"`
	Conflict ConflictPolicy `json:"conflict_policy"`
	DryRun   bool           `json:"dry_run"`
	Stats    Stats          `json:"stats"`
}

func (e *Engine) record(r Report) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stats.Runs++
	for _, a := range r.Applied {
		switch a.Kind {
		case ActionRewrite:
			e.stats.Rewrites++
		case ActionRename:
			e.stats.Renames++
		}
	}
	e.stats.Skipped += len(r.Skipped)
	e.stats.Conflicts += len(r.Conflicts)
}

// State implements introspection.Introspectable.
func (e *Engine) State() any {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return EngineState{
		Baseline: e.config.Baseline,
		Dir:      e.config.Scope.Dir,
		Ext:      e.config.Scope.Ext,
		Key:      e.codec.Key(),
		Conflict: e.config.Conflict,
		DryRun:   e.config.DryRun,
		Stats:    e.stats,
	}
}

// ComponentType implements introspection.Component.
func (e *Engine) ComponentType() string {
	return "engine"
}

var _ introspection.Introspectable = (*Engine)(nil)
var _ introspection.Component = (*Engine)(nil)
