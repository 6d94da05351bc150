package git

import "testing"

func TestFormatCommitMessage(t *testing.T) {
	tests := []struct {
		name    string
		ctype   string
		scope   string
		subject string
		body    string
		want    string
	}{
		{
			name:    "simple",
			ctype:   "fix",
			subject: "sync files",
			want:    "fix: sync files\n\nPowered-by: permasync",
		},
		{
			name:    "with scope",
			ctype:   "fix",
			scope:   "permalinks",
			subject: "sync files",
			want:    "fix(permalinks): sync files\n\nPowered-by: permasync",
		},
		{
			name:    "default type and body",
			subject: "tidy",
			body:    "  a.yaml\n",
			want:    "chore: tidy\n\na.yaml\n\nPowered-by: permasync",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatCommitMessage(tt.ctype, tt.scope, tt.subject, tt.body)
			if got != tt.want {
				t.Errorf("FormatCommitMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSyncCommitMessage(t *testing.T) {
	got := SyncCommitMessage([]string{"pages/a.yaml"})
	want := "fix(permalinks): sync 1 content file\n\npages/a.yaml\n\nPowered-by: permasync"
	if got != want {
		t.Errorf("SyncCommitMessage() = %q, want %q", got, want)
	}
}
