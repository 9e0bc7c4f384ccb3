package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// decodeEntry parses a single JSON log line into a generic map
func decodeEntry(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("Failed to parse JSON output %q: %v", data, err)
	}
	return entry
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LevelNone, "NONE"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"none", LevelNone},
		{"off", LevelNone},
		{"invalid", LevelInfo}, // Default to Info
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("json") != FormatJSON {
		t.Error("json should parse to FormatJSON")
	}
	if ParseFormat(" JSON ") != FormatJSON {
		t.Error("format parsing should ignore case and spaces")
	}
	if ParseFormat("text") != FormatText {
		t.Error("text should parse to FormatText")
	}
	if ParseFormat("yaml") != FormatText {
		t.Error("unknown formats should fall back to FormatText")
	}
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{
		Level:  LevelDebug,
		Format: FormatText,
		Output: &buf,
	})

	logger.Info("test message", Fields{"key": "value"})

	output := buf.String()
	if !strings.Contains(output, "INFO") {
		t.Error("Expected output to contain 'INFO'")
	}
	if !strings.Contains(output, "test message") {
		t.Error("Expected output to contain 'test message'")
	}
	if !strings.Contains(output, "key") || !strings.Contains(output, "value") {
		t.Errorf("Expected output to contain the field, got %q", output)
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{
		Level:  LevelDebug,
		Format: FormatJSON,
		Output: &buf,
	})

	logger.Info("test message", Fields{"key": "value"})

	entry := decodeEntry(t, buf.Bytes())
	if entry["level"] != "INFO" {
		t.Errorf("level = %v, want %q", entry["level"], "INFO")
	}
	if entry["message"] != "test message" {
		t.Errorf("message = %v, want %q", entry["message"], "test message")
	}
	if entry["key"] != "value" {
		t.Errorf("key = %v, want %q", entry["key"], "value")
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("Expected a timestamp")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{
		Level:  LevelWarn,
		Format: FormatText,
		Output: &buf,
	})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message", nil)

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Error("Debug message should be filtered out")
	}
	if strings.Contains(output, "info message") {
		t.Error("Info message should be filtered out")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("Warn message should be present")
	}
	if !strings.Contains(output, "error message") {
		t.Error("Error message should be present")
	}
}

func TestLogger_ErrorLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{
		Level:  LevelDebug,
		Format: FormatJSON,
		Output: &buf,
	})

	logger.Error("something went wrong", errors.New("test error"))

	entry := decodeEntry(t, buf.Bytes())
	if entry["error"] != "test error" {
		t.Errorf("error = %v, want %q", entry["error"], "test error")
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{
		Level:  LevelError,
		Format: FormatText,
		Output: &buf,
	})

	logger.Info("should not appear")
	if buf.Len() > 0 {
		t.Error("Info should be filtered at Error level")
	}

	logger.SetLevel(LevelInfo)
	logger.Info("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Error("Info should appear after level change")
	}
	if logger.GetLevel() != LevelInfo {
		t.Errorf("GetLevel() = %v, want %v", logger.GetLevel(), LevelInfo)
	}
}

func TestLogger_SetOutputAndFormat(t *testing.T) {
	var first, second bytes.Buffer
	logger := New(Options{Level: LevelDebug, Format: FormatText, Output: &first})

	logger.SetOutput(&second)
	logger.SetFormat(FormatJSON)
	logger.Info("moved")

	if first.Len() > 0 {
		t.Error("Nothing should be written to the old output")
	}
	entry := decodeEntry(t, second.Bytes())
	if entry["message"] != "moved" {
		t.Errorf("message = %v, want %q", entry["message"], "moved")
	}
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{
		Level:  LevelDebug,
		Format: FormatJSON,
		Output: &buf,
	})

	fieldLogger := logger.WithFields(Fields{"component": "test"})
	fieldLogger.Info("message", Fields{"extra": "field"})

	entry := decodeEntry(t, buf.Bytes())
	if entry["component"] != "test" {
		t.Error("Expected preset field 'component'")
	}
	if entry["extra"] != "field" {
		t.Error("Expected additional field 'extra'")
	}
}

func TestLogger_MultipleFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{
		Level:  LevelDebug,
		Format: FormatJSON,
		Output: &buf,
	})

	logger.Info("message",
		Fields{"a": 1},
		Fields{"b": 2},
		Fields{"a": 3},
	)

	entry := decodeEntry(t, buf.Bytes())
	if entry["a"] != float64(3) {
		t.Errorf("a = %v, later fields should win", entry["a"])
	}
	if entry["b"] != float64(2) {
		t.Error("Expected field 'b'")
	}
}

func TestLogger_NoneLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{
		Level:  LevelNone,
		Format: FormatText,
		Output: &buf,
	})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error", nil)

	if buf.Len() > 0 {
		t.Error("No messages should be logged at None level")
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Error("ignored", errors.New("boom"))
	if logger.GetLevel() != LevelNone {
		t.Errorf("Nop level = %v, want %v", logger.GetLevel(), LevelNone)
	}
}
