package simplefs_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/simplefs/pkg/simplefs"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := simplefs.NewLogger(&buf, zerolog.InfoLevel)

	logger.Info().Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected log output to contain 'test message', got: %s", output)
	}
	if !strings.HasSuffix(strings.TrimSpace(output), "lib=simplefs") {
		t.Errorf("Expected log output to end with 'lib=simplefs', got: %s", output)
	}
}

func TestNewTestLogger(t *testing.T) {
	testCases := []struct {
		verbose int
		want    zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{9, zerolog.TraceLevel},
	}

	for _, tc := range testCases {
		var buf bytes.Buffer
		logger := simplefs.NewTestLogger(&buf, tc.verbose)
		if logger.GetLevel() != tc.want {
			t.Errorf("verbose %d: expected level %s, got %s", tc.verbose, tc.want, logger.GetLevel())
		}
	}
}

func TestLogLevelFromString(t *testing.T) {
	testCases := []struct {
		levelStr string
		expected zerolog.Level
		wantErr  bool
	}{
		{"trace", zerolog.TraceLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{"INFO", zerolog.InfoLevel, false},
		{"warn", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"invalid", zerolog.NoLevel, true},
	}

	for _, tc := range testCases {
		t.Run(tc.levelStr, func(t *testing.T) {
			level, err := simplefs.LogLevelFromString(tc.levelStr)

			if tc.wantErr {
				if err == nil {
					t.Errorf("Expected error for invalid level %q", tc.levelStr)
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			if level != tc.expected {
				t.Errorf("Expected level %v, got %v", tc.expected, level)
			}
		})
	}
}

func TestLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := simplefs.NewLogger(&buf, zerolog.TraceLevel)
	adapter := simplefs.NewLoggerAdapter(&logger)

	adapter.Trace().
		Str("path", "/a/").
		Int("count", 2).
		Int64("size", 42).
		Bool("dir", true).
		Msg("adapted event")

	output := buf.String()
	for _, want := range []string{"adapted event", "path=/a/", "count=2", "size=42", "dir=true"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got: %s", want, output)
		}
	}

	buf.Reset()
	quiet := simplefs.NewLogger(&buf, zerolog.WarnLevel)
	simplefs.NewLoggerAdapter(&quiet).Debug().Str("k", "v").Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected debug event to be filtered, got: %s", buf.String())
	}
}
