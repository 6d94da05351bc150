package git

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/permasync/pkg/core"
)

func TestParseNameStatus(t *testing.T) {
	out := "M\tsrc/content/pages/intro.yaml\n" +
		"R100\tdocs/Old Title.yaml\tdocs/pages/New Title.yaml\n" +
		"R087\ta.yaml\tb.yaml\n" +
		"A\tnew.yaml\n" +
		"D\tgone.yaml\n" +
		"C075\tx.yaml\ty.yaml\n" +
		"T\tlink.yaml\n" +
		"\n" +
		"MM\tweird.yaml\n"

	got := ParseNameStatus(out)
	assert.Equal(t, []core.Change{
		core.Modify("src/content/pages/intro.yaml"),
		core.Rename("docs/Old Title.yaml", "docs/pages/New Title.yaml"),
		core.Rename("a.yaml", "b.yaml"),
	}, got)
}

func TestParseNameStatus_QuotedPaths(t *testing.T) {
	out := "M\t\"pages/caf\\303\\251.yaml\"\r\nR100\t\"a\\tb.yaml\"\tplain.yaml\n"
	got := ParseNameStatus(out)
	assert.Equal(t, []core.Change{
		core.Modify("pages/café.yaml"),
		core.Rename("a\tb.yaml", "plain.yaml"),
	}, got)
}

func TestParseNameStatus_MalformedRows(t *testing.T) {
	assert.Empty(t, ParseNameStatus("R100\tonly-old.yaml\nM\n"))
	assert.Empty(t, ParseNameStatus(""))
}
