package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCmd_WritesFirstSection(t *testing.T) {
	isolateEnv(t)
	dir := writeProject(t, sampleChangelog)

	stdout, stderr, err := executeCommand(t, "extract", "--root", dir)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "changelog-temp.md"))
	require.NoError(t, err)
	assert.Equal(t, sampleBody, string(got))
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Extracted 1.2.0 (5 lines)")
}

func TestExtractCmd_Scenarios(t *testing.T) {
	tests := map[string]struct {
		changelog string
		args      []string
		wantFile  string
	}{
		"single section takes rest of file": {
			changelog: "# Changelog\n\n## 1.0.0\n\n- Only\n\ntrailing text\n",
			wantFile:  "- Only\n\ntrailing text",
		},
		"deeper headings stay in body": {
			changelog: "## 2.0.0\n### Added\n- x\n## 1.0.0\n- y\n",
			wantFile:  "### Added\n- x",
		},
		"explicit version": {
			changelog: sampleChangelog,
			args:      []string{"--version", "v1.1.0"},
			wantFile:  "- Initial list command",
		},
		"skip unreleased flag": {
			changelog: "## [Unreleased]\n\n- wip\n\n## [1.0.0] - 2024-01-01\n\n- done\n",
			args:      []string{"--skip-unreleased"},
			wantFile:  "- done",
		},
		"unreleased kept by default": {
			changelog: "## [Unreleased]\n\n- wip\n\n## [1.0.0] - 2024-01-01\n\n- done\n",
			wantFile:  "- wip",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			isolateEnv(t)
			dir := writeProject(t, tt.changelog)

			args := append([]string{"extract", "--root", dir}, tt.args...)
			_, _, err := executeCommand(t, args...)
			require.NoError(t, err)

			got, err := os.ReadFile(filepath.Join(dir, "changelog-temp.md"))
			require.NoError(t, err)
			assert.Equal(t, tt.wantFile, string(got))
		})
	}
}

func TestExtractCmd_OverwritesExistingOutput(t *testing.T) {
	isolateEnv(t)
	dir := writeProject(t, sampleChangelog)
	out := filepath.Join(dir, "changelog-temp.md")
	require.NoError(t, os.WriteFile(out, []byte("stale notes that are much longer than the new ones "+sampleBody), 0o644))

	_, _, err := executeCommand(t, "extract", "--root", dir)
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, sampleBody, string(got))
}

func TestExtractCmd_Stdout(t *testing.T) {
	isolateEnv(t)
	dir := writeProject(t, sampleChangelog)

	stdout, _, err := executeCommand(t, "extract", "--root", dir, "--stdout")
	require.NoError(t, err)
	assert.Equal(t, sampleBody, stdout)

	_, err = os.Stat(filepath.Join(dir, "changelog-temp.md"))
	assert.ErrorIs(t, err, os.ErrNotExist, "--stdout must not write the output file")
}

func TestExtractCmd_CustomPaths(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "HISTORY.md"), []byte(sampleChangelog), 0o644))

	_, _, err := executeCommand(t, "extract", "--root", dir,
		"--changelog", "docs/HISTORY.md", "-o", "RELEASE.md")
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "docs", "RELEASE.md"))
	require.NoError(t, err)
	assert.Equal(t, sampleBody, string(got))
}

func TestExtractCmd_ProjectConfig(t *testing.T) {
	isolateEnv(t)
	dir := writeProject(t, "# 2.0.0\n\nlevel one notes\n\n# 1.0.0\n\nold\n")
	cfgPath := filepath.Join(t.TempDir(), "relnotes.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("heading_level: 1\noutput_file: NOTES.md\n"), 0o644))

	_, _, err := executeCommand(t, "extract", "--root", dir, "--config", cfgPath)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "NOTES.md"))
	require.NoError(t, err)
	assert.Equal(t, "level one notes", string(got))
}

func TestExtractCmd_EnvOverridesSkipUnreleased(t *testing.T) {
	isolateEnv(t)
	t.Setenv("RELNOTES_SKIP_UNRELEASED", "true")
	dir := writeProject(t, "## Unreleased\n\n- wip\n\n## 1.0.0\n\n- done\n")

	_, _, err := executeCommand(t, "extract", "--root", dir)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "changelog-temp.md"))
	require.NoError(t, err)
	assert.Equal(t, "- done", string(got))
}

func TestExtractCmd_EmptyBodyWarns(t *testing.T) {
	isolateEnv(t)
	dir := writeProject(t, "## 1.0.1\n\n## 1.0.0\n\n- done\n")

	_, stderr, err := executeCommand(t, "extract", "--root", dir)
	require.NoError(t, err)
	assert.Contains(t, stderr, "empty body")

	got, err := os.ReadFile(filepath.Join(dir, "changelog-temp.md"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExtractCmd_Failures(t *testing.T) {
	tests := map[string]struct {
		changelog *string
		args      []string
		wantCode  int
		wantMsg   string
	}{
		"missing changelog": {
			changelog: nil,
			wantCode:  ExitMissingChangelog,
			wantMsg:   "changelog not found",
		},
		"no version sections": {
			changelog: ptr("# Changelog\n\nNothing yet.\n"),
			wantCode:  ExitFailure,
			wantMsg:   "no version sections",
		},
		"only deeper headings": {
			changelog: ptr("### 1.0.0\n- x\n"),
			wantCode:  ExitFailure,
			wantMsg:   "no version sections",
		},
		"unknown version": {
			changelog: ptr(sampleChangelog),
			args:      []string{"--version", "9.9.9"},
			wantCode:  ExitInvalidArguments,
			wantMsg:   `version "9.9.9" not found`,
		},
		"stdout and watch are exclusive": {
			changelog: ptr(sampleChangelog),
			args:      []string{"--stdout", "--watch"},
			wantCode:  ExitFailure,
			wantMsg:   "none of the others can be",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			isolateEnv(t)
			dir := t.TempDir()
			if tt.changelog != nil {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "CHANGELOG.md"), []byte(*tt.changelog), 0o644))
			}

			args := append([]string{"extract", "--root", dir}, tt.args...)
			_, _, err := executeCommand(t, args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, ExitCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)

			_, statErr := os.Stat(filepath.Join(dir, "changelog-temp.md"))
			assert.ErrorIs(t, statErr, os.ErrNotExist, "no output file on failure")
		})
	}
}

func TestExtractCmd_InvalidConfig(t *testing.T) {
	isolateEnv(t)
	dir := writeProject(t, sampleChangelog)
	cfgPath := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("heading_level: 9\n"), 0o644))

	_, _, err := executeCommand(t, "extract", "--root", dir, "--config", cfgPath)
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, ExitCode(err))
}

func TestWritePayload_NonTerminalIsExact(t *testing.T) {
	t.Parallel()

	var buf stringWriter
	require.NoError(t, writePayload(&buf, "notes"))
	assert.Equal(t, "notes", buf.s)
}

type stringWriter struct{ s string }

func (w *stringWriter) Write(p []byte) (int, error) {
	w.s += string(p)
	return len(p), nil
}

func ptr(s string) *string { return &s }

func TestNewWatchSpinner_NonTerminal(t *testing.T) {
	t.Parallel()

	sp := newWatchSpinner(&stringWriter{}, "CHANGELOG.md")
	assert.Nil(t, sp)
	assert.NotPanics(t, func() {
		sp.resume()
		sp.pause()
	})
}

func TestExtractCmd_MissingOutputDirIsNotMissingChangelog(t *testing.T) {
	isolateEnv(t)
	dir := writeProject(t, sampleChangelog)

	_, _, err := executeCommand(t, "extract", "--root", dir, "-o", "no/such/dir/notes.md")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Contains(t, err.Error(), "writing release notes")
}

func TestExtractCmd_OutputSameAsChangelog(t *testing.T) {
	isolateEnv(t)
	dir := writeProject(t, sampleChangelog)

	_, _, err := executeCommand(t, "extract", "--root", dir, "-o", "CHANGELOG.md")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))

	got, err := os.ReadFile(filepath.Join(dir, "CHANGELOG.md"))
	require.NoError(t, err)
	assert.Equal(t, sampleChangelog, string(got))
}
