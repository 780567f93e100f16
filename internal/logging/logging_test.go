package logging

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{9, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levelFor(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestSetupWithWriter_FiltersBelowWarn(t *testing.T) {
	var buf bytes.Buffer
	SetupWithWriter(&buf, 0)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	logger := GetLogger("test")
	logger.Info().Msg("hidden message")
	logger.Warn().Msg("visible message")

	out := buf.String()
	assert.NotContains(t, out, "hidden message")
	assert.Contains(t, out, "visible message")
	assert.Contains(t, out, "component=test")
}

func TestLogDuration_Debug(t *testing.T) {
	var buf bytes.Buffer
	SetupWithWriter(&buf, 2)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	LogDuration(GetLogger("test"), time.Now(), "resolve")

	assert.Contains(t, buf.String(), "operation=resolve")
}
