package log

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, level Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(level)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(LevelInfo)
	})
	return &buf
}

func TestInfoWritesKeyValues(t *testing.T) {
	buf := capture(t, LevelInfo)

	Info("tracker started", "id", "1", "elapsed", 42)

	require.Contains(t, buf.String(), "[INFO] tracker started id=1 elapsed=42")
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t, LevelWarn)

	Debug("hidden")
	Info("hidden too")
	Warn("shown", "k", "v")
	Error("failed", errors.New("boom"))

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "[WARN] shown k=v")
	require.Contains(t, out, "[ERROR] failed err=boom")
}

func TestFormatKVsDropsDanglingKey(t *testing.T) {
	require.Equal(t, " a=1", formatKVs("a", 1, "b"))
	require.Equal(t, " c=x", formatKVs(3, "skipped", "c", "x"))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{" WARNING ", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
