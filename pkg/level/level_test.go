package level_test

import (
	"testing"

	"github.com/arthur-debert/modlog/pkg/errors"
	"github.com/arthur-debert/modlog/pkg/level"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdering(t *testing.T) {
	for i := 1; i < len(level.All); i++ {
		assert.Less(t, level.All[i-1], level.All[i])
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want level.Level
	}{
		{"trace", level.Trace},
		{"DEBUG", level.Debug},
		{" Info ", level.Info},
		{"warn", level.Warn},
		{"warning", level.Warn},
		{"Error", level.Error},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := level.Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := level.Parse("verbose")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidLevel))
		assert.Equal(t, "verbose", errors.GetErrorDetails(err)["level"])
	})
}

func TestTextRoundTrip(t *testing.T) {
	var l level.Level
	require.NoError(t, l.UnmarshalText([]byte("warn")))
	assert.Equal(t, level.Warn, l)

	text, err := l.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "warn", string(text))

	_, err = level.Level(42).MarshalText()
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidLevel))

	assert.True(t, errors.IsErrorCode(l.UnmarshalText([]byte("loud")), errors.ErrInvalidLevel))
	assert.Equal(t, level.Warn, l)
}

func TestString(t *testing.T) {
	assert.Equal(t, "TRACE", level.Trace.String())
	assert.Equal(t, "ERROR", level.Error.String())
	assert.Equal(t, "LEVEL(9)", level.Level(9).String())
}

func TestZerologMapping(t *testing.T) {
	for _, l := range level.All {
		assert.Equal(t, l, level.FromZerolog(l.Zerolog()), l.String())
	}
	assert.Equal(t, level.Error, level.FromZerolog(zerolog.FatalLevel))
	assert.Equal(t, level.Info, level.FromZerolog(zerolog.NoLevel))
}
