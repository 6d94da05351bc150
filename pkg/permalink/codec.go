// Package permalink maps content file names to permalink identifiers and
// reads or rewrites the permalink field of a line-oriented key/value document.
package permalink

import (
	"path"
	"regexp"
	"strings"
)

// DefaultKey is the field name used when none is configured.
const DefaultKey = "permalink"

var whitespaceRun = regexp.MustCompile(`\s+`)

// FromName canonicalizes free-form text into an identifier.
// Surrounding whitespace is trimmed and every inner whitespace run becomes a single hyphen.
// It is idempotent and never fails; distinct names may map to the same identifier.
func FromName(name string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(name), "-")
}

// FromPath derives the identifier for a repository-relative file path,
// using its base name without the extension.
func FromPath(p string) string {
	base := path.Base(p)
	return FromName(strings.TrimSuffix(base, path.Ext(base)))
}

// FileName returns the file name an identifier maps to for the given extension.
func FileName(identifier, ext string) string {
	return FromName(identifier) + ext
}

// Unquote strips surrounding whitespace and one matching pair of single or double quotes.
func Unquote(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if first == last && (first == '"' || first == '\'') {
			v = v[1 : len(v)-1]
		}
	}
	return v
}
