package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLoggerWithWriter_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{"text", []string{"msg=\"descriptor parsed\"", "language=nextflow"}},
		{"TEXT", []string{"msg=\"descriptor parsed\""}},
		{"", []string{"language=nextflow"}},
		{"json", []string{`"msg":"descriptor parsed"`, `"language":"nextflow"`}},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		NewLoggerWithWriter(slog.LevelInfo, tt.format, &buf).Info("descriptor parsed", "language", "nextflow")
		for _, w := range tt.want {
			if !strings.Contains(buf.String(), w) {
				t.Errorf("format %q: missing %s in %s", tt.format, w, buf.String())
			}
		}
	}
}

func TestNewLoggerWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(slog.LevelWarn, "text", &buf)

	logger.Info("cache hit")
	logger.Warn("remove checkout")

	output := buf.String()
	if strings.Contains(output, "cache hit") {
		t.Errorf("INFO message should be filtered at WARN level, got: %s", output)
	}
	if !strings.Contains(output, "remove checkout") {
		t.Errorf("WARN message should appear at WARN level, got: %s", output)
	}
}

func TestNewLoggerWithWriter_DebugAddsSource(t *testing.T) {
	var debugBuf, infoBuf bytes.Buffer
	NewLoggerWithWriter(slog.LevelDebug, "text", &debugBuf).Debug("evaluator finished")
	NewLoggerWithWriter(slog.LevelInfo, "text", &infoBuf).Info("evaluator finished")

	if !strings.Contains(debugBuf.String(), "source=") {
		t.Errorf("debug logger should record source, got: %s", debugBuf.String())
	}
	if strings.Contains(infoBuf.String(), "source=") {
		t.Errorf("info logger should not record source, got: %s", infoBuf.String())
	}
}

func TestNewLoggerWithWriter_ChildLogger(t *testing.T) {
	var buf bytes.Buffer
	child := NewLoggerWithWriter(slog.LevelInfo, "text", &buf).With("component", "config-extractor")

	child.Info("evaluated", "cache", "miss")

	output := buf.String()
	if !strings.Contains(output, "component=config-extractor") || !strings.Contains(output, "cache=miss") {
		t.Errorf("expected component and cache attrs, got: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" DEBUG ", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"trace", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
