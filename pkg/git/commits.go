package git

import (
	"fmt"
	"strings"
)

// CommitType constants for semantic commits
const (
	CommitTypeFix   = "fix"
	CommitTypeChore = "chore"
)

// Footer marks commits created by permasync.
const Footer = "Powered-by: permasync"

// FormatCommitMessage builds a Conventional Commit message.
//
//	<type>(<scope>): <subject>
//
//	<body>
//
//	Powered-by: permasync
func FormatCommitMessage(ctype, scope, subject, body string) string {
	var sb strings.Builder

	if ctype == "" {
		ctype = CommitTypeChore
	}
	sb.WriteString(ctype)

	if scope != "" {
		sb.WriteString("(")
		sb.WriteString(scope)
		sb.WriteString(")")
	}

	sb.WriteString(": ")
	sb.WriteString(subject)

	if body != "" {
		sb.WriteString("\n\n")
		sb.WriteString(strings.TrimSpace(body))
	}

	sb.WriteString("\n\n")
	sb.WriteString(Footer)

	return sb.String()
}

// SyncCommitMessage describes a sync run that touched the given paths.
func SyncCommitMessage(paths []string) string {
	noun := "files"
	if len(paths) == 1 {
		noun = "file"
	}
	subject := fmt.Sprintf("sync %d content %s", len(paths), noun)
	return FormatCommitMessage(CommitTypeFix, "permalinks", subject, strings.Join(paths, "\n"))
}
