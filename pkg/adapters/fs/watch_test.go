package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHeadWatcher_SignalsOnHeadMove(t *testing.T) {
	root := t.TempDir()
	gitDir := filepath.Join(root, ".git")
	require.NoError(t, os.MkdirAll(filepath.Join(gitDir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "HEAD"), []byte("ref: refs/heads/main\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewHeadWatcher(root, nil)
	w.Debounce = 20 * time.Millisecond
	moves, err := w.Watch(ctx)
	require.NoError(t, err)

	// Unrelated files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "index"), []byte("x"), 0o644))
	select {
	case <-moves:
		t.Fatal("unexpected signal for index write")
	case <-time.After(100 * time.Millisecond):
	}

	f, err := os.OpenFile(filepath.Join(gitDir, "logs", "HEAD"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("0000 1111 Test <t@example.com> 0 +0000\tcommit: x\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	select {
	case <-moves:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for head move")
	}

	cancel()
	select {
	case _, ok := <-moves:
		require.False(t, ok, "channel should close after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestHeadWatcher_SignalsOnBranchRefUpdate(t *testing.T) {
	base := t.TempDir()
	commonDir := filepath.Join(base, "main.git")
	gitDir := filepath.Join(commonDir, "worktrees", "feature")
	refsDir := filepath.Join(commonDir, "refs", "heads")
	require.NoError(t, os.MkdirAll(gitDir, 0o755))
	require.NoError(t, os.MkdirAll(refsDir, 0o755))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewGitDirWatcher(gitDir, commonDir, nil)
	w.Debounce = 20 * time.Millisecond
	moves, err := w.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(refsDir, "feature.lock"), []byte("abc\n"), 0o644))
	select {
	case <-moves:
		t.Fatal("unexpected signal for lock file")
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, os.Rename(filepath.Join(refsDir, "feature.lock"), filepath.Join(refsDir, "feature")))
	select {
	case <-moves:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ref update")
	}
}

func TestHeadWatcher_MissingGitDir(t *testing.T) {
	w := NewHeadWatcher(t.TempDir(), nil)
	_, err := w.Watch(context.Background())
	require.Error(t, err)
}
