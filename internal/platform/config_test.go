package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBaseline(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		baseRef  string
		remote   string
		want     string
	}{
		{"push", "", "", "origin", "HEAD~1"},
		{"pull request", "", "main", "origin", "origin/main"},
		{"custom remote", "", "develop", "upstream", "upstream/develop"},
		{"no remote", "", "main", "", "main"},
		{"explicit wins", "v1.2.0", "main", "origin", "v1.2.0"},
		{"blank base ref", "", "  ", "origin", "HEAD~1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveBaseline(tt.explicit, tt.baseRef, tt.remote))
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(`
backend: gogit
content_dir: content/docs
extension: .yml
key: slug
conflict: filename
include:
  - "content/docs/**"
exclude:
  - "**/_*.yml"
`), 0o644))

	fc, err := LoadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, FileConfig{
		Backend:    "gogit",
		ContentDir: "content/docs",
		Extension:  ".yml",
		Key:        "slug",
		Conflict:   "filename",
		Include:    []string{"content/docs/**"},
		Exclude:    []string{"**/_*.yml"},
	}, fc)
}

func TestLoadConfig_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yml")

	fc, err := LoadConfig(path, false)
	require.NoError(t, err)
	assert.Equal(t, FileConfig{}, fc)

	_, err = LoadConfig(path, true)
	assert.Error(t, err)
}

func TestLoadConfig_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	fc, err := LoadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, FileConfig{}, fc)
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("contentdir: x\n"), 0o644))

	_, err := LoadConfig(path, true)
	assert.Error(t, err)
}

func TestOptions_Precedence(t *testing.T) {
	o := defaultOptions()
	o.applyFile(FileConfig{ContentDir: "from-file", Key: "slug", Remote: "upstream"})
	o.apply([]Option{WithContentDir("from-flag")})

	assert.Equal(t, "from-flag", o.scope.Dir)
	assert.Equal(t, "slug", o.key)
	assert.Equal(t, "upstream", o.remote)
	assert.Equal(t, ".yaml", o.scope.Ext)
	assert.Equal(t, BackendGit, o.backend)
}
