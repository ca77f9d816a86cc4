package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateYAMLSyntax(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := map[string]struct {
		content  *string
		wantErr  bool
		wantLine int
	}{
		"missing file": {},
		"empty file": {
			content: strPtr("   \n"),
		},
		"valid": {
			content: strPtr("heading_level: 2\noutput_file: notes.md\n"),
		},
		"mapping value in wrong context": {
			content:  strPtr("heading_level: 2\noutput_file: a: b\n"),
			wantErr:  true,
			wantLine: 2,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(dir, name+".yml")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o644))
			}

			err := ValidateYAMLSyntax(path)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, path, ve.FilePath)
			assert.Equal(t, tt.wantLine, ve.Line)
		})
	}
}

func TestValidateYAMLSyntaxFromBytes(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateYAMLSyntaxFromBytes([]byte(""), "x.yml"))
	assert.NoError(t, ValidateYAMLSyntaxFromBytes([]byte("a: 1\n"), "x.yml"))
	assert.Error(t, ValidateYAMLSyntaxFromBytes([]byte("a: b: c\n"), "x.yml"))
}

func TestValidateConfigValues(t *testing.T) {
	t.Parallel()

	valid := Configuration{ChangelogFile: "CHANGELOG.md", OutputFile: "out.md", HeadingLevel: 2}

	tests := map[string]struct {
		mutate    func(c *Configuration)
		wantField string
	}{
		"valid":              {mutate: func(c *Configuration) {}},
		"missing changelog":  {mutate: func(c *Configuration) { c.ChangelogFile = "" }, wantField: "changelog_file"},
		"missing output":     {mutate: func(c *Configuration) { c.OutputFile = "" }, wantField: "output_file"},
		"heading level zero": {mutate: func(c *Configuration) { c.HeadingLevel = 0 }, wantField: "heading_level"},
		"negative debounce":  {mutate: func(c *Configuration) { c.WatchDebounce = -1 }, wantField: "watch_debounce"},
		"level above six":    {mutate: func(c *Configuration) { c.HeadingLevel = 7 }, wantField: "heading_level"},
		"output overwrites changelog": {
			mutate:    func(c *Configuration) { c.OutputFile = c.ChangelogFile },
			wantField: "output_file",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			tt.mutate(&cfg)

			err := ValidateConfigValues(&cfg, "config.yml")
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Contains(t, ve.Error(), tt.wantField)
		})
	}
}

func TestValidationError_Messages(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  *ValidationError
		want string
	}{
		"positioned": {
			err:  &ValidationError{FilePath: "c.yml", Line: 3, Column: 7, Message: "bad indent"},
			want: "c.yml:3:7: bad indent",
		},
		"field": {
			err:  &ValidationError{FilePath: "c.yml", Field: "heading_level", Message: "must be at most 6"},
			want: "c.yml: heading_level must be at most 6",
		},
		"bare": {
			err:  &ValidationError{FilePath: "c.yml", Message: "permission denied"},
			want: "c.yml: permission denied",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestValidateConfigValues_NefieldMessage(t *testing.T) {
	t.Parallel()

	cfg := Configuration{ChangelogFile: "CHANGELOG.md", OutputFile: "CHANGELOG.md", HeadingLevel: 2}
	err := ValidateConfigValues(&cfg, "config.yml")
	require.Error(t, err)
	assert.Equal(t, "config.yml: output_file must differ from changelog_file", err.Error())
}

func TestCleanYAMLError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "mapping values are not allowed in this context",
		cleanYAMLError("yaml: line 2: mapping values are not allowed in this context"))
	assert.Equal(t, "plain failure", cleanYAMLError("plain failure"))
}

func strPtr(s string) *string {
	return &s
}
