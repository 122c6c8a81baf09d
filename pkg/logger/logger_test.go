package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
		{name: "info", level: "info", want: zerolog.InfoLevel},
		{name: "warn", level: "warn", want: zerolog.WarnLevel},
		{name: "warning alias", level: "warning", want: zerolog.WarnLevel},
		{name: "error", level: "error", want: zerolog.ErrorLevel},
		{name: "mixed case", level: "InFo", want: zerolog.InfoLevel},
		{name: "unknown falls back to info", level: "whatever", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLogLevel(tt.level); got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf)

	log.WithFields(map[string]interface{}{
		"rows_in":  30,
		"rows_out": 12,
	}).Info("Filtering completed")

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("Failed to parse log output: %v", err)
	}

	if record["message"] != "Filtering completed" {
		t.Errorf("message = %v, want 'Filtering completed'", record["message"])
	}
	if record["rows_in"] != float64(30) {
		t.Errorf("rows_in = %v, want 30", record["rows_in"])
	}
	if record["rows_out"] != float64(12) {
		t.Errorf("rows_out = %v, want 12", record["rows_out"])
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf)

	log.WithError(errors.New("boom")).Error("Scoring failed")

	out := buf.String()
	if !strings.Contains(out, `"error":"boom"`) {
		t.Errorf("expected error field in output, got %s", out)
	}
}

func TestNopDiscards(t *testing.T) {
	// Must not panic and must not write anywhere
	log := Nop()
	log.Info("ignored")
	log.WithField("k", "v").Warn("ignored")
}
