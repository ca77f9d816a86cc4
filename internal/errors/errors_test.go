package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		category ErrorCategory
		want     string
	}{
		"argument":      {category: Argument, want: "Argument Error"},
		"configuration": {category: Configuration, want: "Configuration Error"},
		"prerequisite":  {category: Prerequisite, want: "Prerequisite Error"},
		"runtime":       {category: Runtime, want: "Runtime Error"},
		"unknown":       {category: ErrorCategory(99), want: "Error"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Wrap(nil, Runtime))
	assert.Nil(t, WrapWithMessage(nil, Runtime, "ignored"))

	base := errors.New("disk full")
	wrapped := WrapWithMessage(base, Runtime, "writing notes", "Free some space")
	assert.Equal(t, "writing notes: disk full", wrapped.Error())
	assert.Equal(t, []string{"Free some space"}, wrapped.Remediation)
	assert.Equal(t, Runtime, wrapped.Category)
}

func TestAsCLIError(t *testing.T) {
	t.Parallel()

	cliErr := NewRuntimeError("boom")
	wrapped := fmt.Errorf("running: %w", cliErr)

	assert.True(t, IsCLIError(cliErr))
	assert.True(t, IsCLIError(wrapped))
	assert.Same(t, cliErr, AsCLIError(wrapped))

	assert.False(t, IsCLIError(errors.New("plain")))
	assert.Nil(t, AsCLIError(errors.New("plain")))
}

func TestMessages(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err          *CLIError
		wantCategory ErrorCategory
		wantMessage  string
		wantUsage    bool
	}{
		"changelog not found": {
			err:          ChangelogNotFound("/p/CHANGELOG.md"),
			wantCategory: Prerequisite,
			wantMessage:  "changelog not found: /p/CHANGELOG.md",
		},
		"no version sections": {
			err:          NoVersionSections("/p/CHANGELOG.md", 2),
			wantCategory: Runtime,
			wantMessage:  "no version sections found in /p/CHANGELOG.md",
		},
		"version not found": {
			err:          VersionNotFound("9.9.9", []string{"1.0.0"}),
			wantCategory: Argument,
			wantMessage:  `version "9.9.9" not found in changelog`,
			wantUsage:    true,
		},
		"invalid config": {
			err:          InvalidConfig(errors.New("bad key")),
			wantCategory: Configuration,
			wantMessage:  "loading configuration: bad key",
		},
		"out of sync": {
			err:          OutputOutOfSync("/p/changelog-temp.md", false),
			wantCategory: Runtime,
			wantMessage:  "/p/changelog-temp.md is out of date with the changelog",
		},
		"output missing": {
			err:          OutputOutOfSync("/p/changelog-temp.md", true),
			wantCategory: Runtime,
			wantMessage:  "/p/changelog-temp.md does not exist",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			require.NotNil(t, tt.err)
			assert.Equal(t, tt.wantCategory, tt.err.Category)
			assert.Equal(t, tt.wantMessage, tt.err.Message)
			assert.NotEmpty(t, tt.err.Remediation)
			assert.Equal(t, tt.wantUsage, tt.err.Usage != "")
		})
	}
}

func TestNoVersionSections_UsesHeadingLevel(t *testing.T) {
	t.Parallel()

	err := NoVersionSections("CHANGELOG.md", 3)
	assert.Contains(t, err.Remediation[0], "'### 1.2.0")
}

func TestWrap_KeepsCause(t *testing.T) {
	t.Parallel()

	base := errors.New("permission denied")
	wrapped := Wrap(base, Configuration)
	assert.Equal(t, "permission denied", wrapped.Error())
	assert.ErrorIs(t, wrapped, base)
	assert.ErrorIs(t, WrapWithMessage(base, Runtime, "writing"), base)
	assert.NoError(t, NewRuntimeError("no cause").Unwrap())
}
