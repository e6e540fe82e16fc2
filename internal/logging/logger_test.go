package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"DEBUG", zerolog.DebugLevel, false},
		{"warn", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"verbose", zerolog.NoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_WritesToWriterAtLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "warn", Writer: &buf, NoColor: true})
	require.NoError(t, err)

	log.Info().Msg("hidden")
	log.Warn().Str("type", "user").Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "type=user")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "logger_test.go:")
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qahub.log")
	log, err := New(Options{Level: "debug", File: path})
	require.NoError(t, err)

	log.Debug().Msg("to file")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestShortCaller(t *testing.T) {
	assert.Equal(t, "controller.go:42", shortCaller("/src/internal/workflow/controller.go:42"))
	assert.Equal(t, "plain", shortCaller("plain"))
}
