package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveGitDir returns the git directory of the work tree at workDir and the
// common directory shared by linked worktrees. A .git file ("gitdir: <path>",
// as written for worktrees and submodules) is followed; otherwise both are
// <workDir>/.git.
func ResolveGitDir(workDir string) (gitDir, commonDir string, err error) {
	dotGit := filepath.Join(workDir, ".git")
	info, err := os.Stat(dotGit)
	if err != nil {
		return "", "", fmt.Errorf("no git directory: %w", err)
	}

	gitDir = dotGit
	if !info.IsDir() {
		data, err := os.ReadFile(dotGit)
		if err != nil {
			return "", "", fmt.Errorf("read %s: %w", dotGit, err)
		}
		rest, ok := strings.CutPrefix(strings.TrimSpace(string(data)), "gitdir:")
		if !ok {
			return "", "", fmt.Errorf("invalid .git file %s", dotGit)
		}
		gitDir = resolveFrom(workDir, strings.TrimSpace(rest))
	}

	commonDir = gitDir
	if data, err := os.ReadFile(filepath.Join(gitDir, "commondir")); err == nil {
		commonDir = resolveFrom(gitDir, strings.TrimSpace(string(data)))
	}
	return filepath.Clean(gitDir), commonDir, nil
}

func resolveFrom(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
