package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/permasync/internal/testutil"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		dryRun, commit, stats = false, false, false
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestRunCommand(t *testing.T) {
	repo := testutil.NewRepo(t)
	repo.Write("pages/intro.yaml", "title: Intro\npermalink: intro\n")
	repo.Commit("base")
	repo.Write("pages/intro.yaml", "title: Intro\npermalink: getting started\n")
	repo.Commit("edit")

	out := execute(t, "run", "--backend", "gogit", "--dir", "pages", "--base-ref", "", repo.Root)

	assert.Contains(t, out, "Renamed from permalink: pages/intro.yaml → pages/getting-started.yaml")
	assert.True(t, repo.Exists("pages/getting-started.yaml"))
}

func TestRunCommand_DryRunStats(t *testing.T) {
	repo := testutil.NewRepo(t)
	repo.Write("pages/intro.yaml", "permalink: intro\n")
	repo.Commit("base")
	repo.Write("pages/intro.yaml", "permalink: next\n")
	repo.Commit("edit")

	out := execute(t, "run", "--backend", "gogit", "--dir", "pages", "--base-ref", "", "--dry-run", "--stats", repo.Root)

	assert.True(t, repo.Exists("pages/intro.yaml"))
	assert.False(t, repo.Exists("pages/next.yaml"))

	start := bytes.IndexByte([]byte(out), '{')
	require.GreaterOrEqual(t, start, 0, "no JSON in output: %s", out)
	var state struct {
		Baseline string `json:"baseline"`
		DryRun   bool   `json:"dry_run"`
		Stats    struct {
			Renames int `json:"renames"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(out[start:]), &state))
	assert.Equal(t, "HEAD~1", state.Baseline)
	assert.True(t, state.DryRun)
	assert.Equal(t, 1, state.Stats.Renames)
}
