package notes

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaths(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	abs := filepath.Join(t.TempDir(), "notes.md")

	tests := map[string]struct {
		changelog     string
		output        string
		wantChangelog string
		wantOutput    string
	}{
		"defaults": {
			wantChangelog: filepath.Join(root, "CHANGELOG.md"),
			wantOutput:    filepath.Join(root, "changelog-temp.md"),
		},
		"relative names": {
			changelog:     "docs/CHANGES.md",
			output:        "dist/notes.md",
			wantChangelog: filepath.Join(root, "docs", "CHANGES.md"),
			wantOutput:    filepath.Join(root, "docs", "dist", "notes.md"),
		},
		"output defaults next to a nested changelog": {
			changelog:     "docs/CHANGES.md",
			wantChangelog: filepath.Join(root, "docs", "CHANGES.md"),
			wantOutput:    filepath.Join(root, "docs", "changelog-temp.md"),
		},
		"absolute changelog": {
			changelog:     filepath.Join(filepath.Dir(abs), "CHANGELOG.md"),
			wantChangelog: filepath.Join(filepath.Dir(abs), "CHANGELOG.md"),
			wantOutput:    filepath.Join(filepath.Dir(abs), "changelog-temp.md"),
		},
		"absolute output": {
			output:        abs,
			wantChangelog: filepath.Join(root, "CHANGELOG.md"),
			wantOutput:    abs,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			paths, err := ResolvePaths(root, tt.changelog, tt.output)
			require.NoError(t, err)
			assert.Equal(t, root, paths.Root)
			assert.Equal(t, tt.wantChangelog, paths.Changelog)
			assert.Equal(t, tt.wantOutput, paths.Output)
		})
	}
}

func TestResolvePaths_EmptyRoot(t *testing.T) {
	t.Parallel()

	_, err := ResolvePaths("", "", "")
	assert.Error(t, err)
}
