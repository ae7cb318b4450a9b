package ui_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/modlog/pkg/errors"
	"github.com/arthur-debert/modlog/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorModeString(t *testing.T) {
	assert.Equal(t, "auto", ui.ColorAuto.String())
	assert.Equal(t, "always", ui.ColorAlways.String())
	assert.Equal(t, "never", ui.ColorNever.String())
	assert.Equal(t, "unknown", ui.ColorMode(99).String())
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		input    string
		expected ui.ColorMode
	}{
		{"auto", ui.ColorAuto},
		{"", ui.ColorAuto},
		{"always", ui.ColorAlways},
		{"Always", ui.ColorAlways},
		{"force", ui.ColorAlways},
		{"never", ui.ColorNever},
		{"NO", ui.ColorNever},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ui.ParseColorMode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}

	_, err := ui.ParseColorMode("sometimes")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestColorModeEnabled(t *testing.T) {
	// A regular file is never a terminal
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.True(t, ui.ColorAlways.Enabled(f))
	assert.False(t, ui.ColorNever.Enabled(f))
	assert.False(t, ui.ColorAuto.Enabled(f))
	assert.False(t, ui.DetectColor(nil))
}

func TestDetectColor_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ui.DetectColor(os.Stdout))
}
