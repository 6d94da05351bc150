package engine

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	// DefaultDir is the content directory used when none is configured.
	DefaultDir = "src/content/pages"
	// DefaultExt is the document extension used when none is configured.
	DefaultExt = ".yaml"
)

// Scope decides which repository paths the engine may touch.
// A path qualifies when it lies under Dir, ends with Ext, matches at least one
// Include glob (if any) and no Exclude glob. Globs use doublestar syntax.
type Scope struct {
	Dir     string
	Ext     string
	Include []string
	Exclude []string
}

// DefaultScope returns the scope for src/content/pages/*.yaml.
func DefaultScope() Scope {
	return Scope{Dir: DefaultDir, Ext: DefaultExt}
}

// Validate reports malformed globs.
func (s Scope) Validate() error {
	for _, p := range append(append([]string{}, s.Include...), s.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	if s.Ext != "" && !strings.HasPrefix(s.Ext, ".") {
		return fmt.Errorf("extension %q must start with a dot", s.Ext)
	}
	return nil
}

// Match reports whether p, a slash-separated repository-relative path, is in scope.
func (s Scope) Match(p string) bool {
	p = path.Clean(p)
	if dir := strings.Trim(path.Clean(s.Dir), "/"); dir != "" && dir != "." {
		if !strings.HasPrefix(p, dir+"/") {
			return false
		}
	}
	if s.Ext != "" && path.Ext(p) != s.Ext {
		return false
	}
	if len(s.Include) > 0 && !matchAny(s.Include, p) {
		return false
	}
	return !matchAny(s.Exclude, p)
}

func matchAny(patterns []string, p string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
	}
	return false
}
