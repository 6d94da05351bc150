package git

import (
	"strconv"
	"strings"

	"github.com/aretw0/permasync/pkg/core"
)

// ParseNameStatus converts `git diff --name-status` output into change records.
// Rename rows (R, optionally with a similarity score such as R100) and bare M rows
// are kept; added, deleted, copied and type-changed rows are dropped.
func ParseNameStatus(out string) []core.Change {
	var changes []core.Change
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		parts := strings.Split(line, "\t")
		status := parts[0]

		switch {
		case strings.HasPrefix(status, "R") && len(parts) >= 3:
			changes = append(changes, core.Rename(unquotePath(parts[1]), unquotePath(parts[2])))
		case status == "M" && len(parts) >= 2:
			changes = append(changes, core.Modify(unquotePath(parts[1])))
		}
	}
	return changes
}

// unquotePath undoes git's C-style quoting of unusual paths (core.quotePath).
func unquotePath(p string) string {
	if len(p) >= 2 && p[0] == '"' && p[len(p)-1] == '"' {
		if s, err := strconv.Unquote(p); err == nil {
			return s
		}
	}
	return p
}
