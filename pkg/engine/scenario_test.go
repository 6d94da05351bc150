package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/permasync/internal/testutil"
	"github.com/aretw0/permasync/pkg/adapters/fs"
	"github.com/aretw0/permasync/pkg/adapters/gogit"
	"github.com/aretw0/permasync/pkg/engine"
)

func run(t *testing.T, repo *testutil.Repo, dir string) engine.Report {
	t.Helper()
	src, err := gogit.Open(repo.Root, nil)
	require.NoError(t, err)
	e := engine.New(src, fs.NewWorkspace(repo.Root, nil), engine.Config{
		Scope:    engine.Scope{Dir: dir, Ext: ".yaml"},
		Baseline: "HEAD~1",
	})
	return e.Run(context.Background())
}

func TestScenario_RenameRewritesField(t *testing.T) {
	repo := testutil.NewRepo(t)
	repo.Write("docs/Old Title.yaml", "title: Old\npermalink: Old-Title\nbody: |\n  long enough to be detected as the same file\n")
	repo.Commit("base")
	repo.Move("docs/Old Title.yaml", "docs/pages/New Title.yaml")
	repo.Commit("move")

	report := run(t, repo, "docs/pages")

	require.Len(t, report.Applied, 1)
	assert.Contains(t, repo.Read("docs/pages/New Title.yaml"), "permalink: New-Title\n")
}

func TestScenario_FieldEditRenamesFile(t *testing.T) {
	repo := testutil.NewRepo(t)
	repo.Write("pages/intro.yaml", "title: Intro\npermalink: intro\n")
	repo.Commit("base")
	repo.Write("pages/intro.yaml", "title: Intro\npermalink: getting started\n")
	repo.Commit("edit")

	report := run(t, repo, "pages")

	require.Len(t, report.Applied, 1)
	assert.False(t, repo.Exists("pages/intro.yaml"))
	assert.Equal(t, "title: Intro\npermalink: getting started\n", repo.Read("pages/getting-started.yaml"))
}

func TestScenario_FieldEditCollision(t *testing.T) {
	repo := testutil.NewRepo(t)
	repo.Write("pages/intro.yaml", "title: Intro\npermalink: intro\n")
	repo.Write("pages/getting-started.yaml", "title: Other\npermalink: getting-started\n")
	repo.Commit("base")
	repo.Write("pages/intro.yaml", "title: Intro\npermalink: getting started\n")
	repo.Commit("edit")

	report := run(t, repo, "pages")

	assert.Empty(t, report.Applied)
	assert.True(t, repo.Exists("pages/intro.yaml"))
	assert.Equal(t, "title: Other\npermalink: getting-started\n", repo.Read("pages/getting-started.yaml"))
}

func TestScenario_OutOfScopeUntouched(t *testing.T) {
	repo := testutil.NewRepo(t)
	repo.Write("blog/intro.yaml", "permalink: intro\n")
	repo.Write("pages/notes.md", "permalink: notes\n")
	repo.Commit("base")
	repo.Write("blog/intro.yaml", "permalink: changed\n")
	repo.Write("pages/notes.md", "permalink: changed\n")
	repo.Commit("edit")

	report := run(t, repo, "pages")

	assert.Zero(t, report.Considered)
	assert.True(t, repo.Exists("blog/intro.yaml"))
	assert.True(t, repo.Exists("pages/notes.md"))
}

func TestScenario_NoParentCommitIsNoOp(t *testing.T) {
	repo := testutil.NewRepo(t)
	repo.Write("pages/intro.yaml", "permalink: other\n")
	repo.Commit("root")

	report := run(t, repo, "pages")

	assert.Zero(t, report.Considered)
	assert.Equal(t, "permalink: other\n", repo.Read("pages/intro.yaml"))
}
