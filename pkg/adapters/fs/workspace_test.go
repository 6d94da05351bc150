package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/permasync/pkg/core"
)

func TestWorkspace_ReadWrite(t *testing.T) {
	root := t.TempDir()
	ws := NewWorkspace(root, nil)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "pages"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pages", "a.yaml"), []byte("x"), 0o600))

	data, err := ws.ReadFile("pages/a.yaml")
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))

	require.NoError(t, ws.WriteFile("pages/a.yaml", []byte("y")))
	data, err = os.ReadFile(filepath.Join(root, "pages", "a.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "y", string(data))

	info, err := os.Stat(filepath.Join(root, "pages", "a.yaml"))
	require.NoError(t, err)
	if os.PathSeparator == '/' {
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestWorkspace_ReadMissing(t *testing.T) {
	ws := NewWorkspace(t.TempDir(), nil)
	_, err := ws.ReadFile("pages/missing.yaml")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestWorkspace_RejectsEscapingPaths(t *testing.T) {
	ws := NewWorkspace(t.TempDir(), nil)

	_, err := ws.ReadFile("../outside.yaml")
	assert.ErrorIs(t, err, core.ErrOutOfScope)
	assert.ErrorIs(t, ws.WriteFile("/abs.yaml", nil), core.ErrOutOfScope)
	assert.ErrorIs(t, ws.Rename("a.yaml", "../b.yaml"), core.ErrOutOfScope)
	assert.False(t, ws.Exists("../"))
}

func TestWorkspace_Rename(t *testing.T) {
	root := t.TempDir()
	ws := NewWorkspace(root, nil)
	require.NoError(t, os.WriteFile(filepath.Join(root, "intro.yaml"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "taken.yaml"), []byte("b"), 0o644))

	assert.ErrorIs(t, ws.Rename("intro.yaml", "taken.yaml"), core.ErrCollision)
	assert.True(t, ws.Exists("intro.yaml"))

	require.NoError(t, ws.Rename("intro.yaml", "getting-started.yaml"))
	assert.False(t, ws.Exists("intro.yaml"))
	assert.True(t, ws.Exists("getting-started.yaml"))
}
