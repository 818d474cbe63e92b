package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func newBufferLogger(t *testing.T, level string) (Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, err := New(Config{Level: level, Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return l, &buf
}

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		wantJSON bool
	}{
		{"json", "json", true},
		{"text", "text", false},
		{"console alias", "console", false},
		{"unknown falls back to json", "xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := New(Config{Level: "info", Format: tt.format, Output: &buf})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			l.Info("hello", "component", "test")

			isJSON := json.Valid(bytes.TrimSpace(buf.Bytes()))
			if isJSON != tt.wantJSON {
				t.Errorf("json output = %v, want %v (%q)", isJSON, tt.wantJSON, buf.String())
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(t, "warn")

	l.Debug("debug message")
	l.Info("info message")
	if buf.Len() != 0 {
		t.Errorf("debug/info should be filtered at warn level, got %q", buf.String())
	}

	l.Warn("warn message")
	if !strings.Contains(buf.String(), "warn message") {
		t.Errorf("warn message missing: %q", buf.String())
	}
}

func TestSetLevel(t *testing.T) {
	l, buf := newBufferLogger(t, "error")
	defer SetLevel("info")

	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at error level")
	}

	SetLevel("debug")
	if GetLevel() != "debug" {
		t.Errorf("GetLevel() = %q, want debug", GetLevel())
	}
	l.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("debug message missing after SetLevel: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "debug",
		"INFO":    "info",
		"warning": "warn",
		"error":   "error",
		"bogus":   "info",
	}
	for in, want := range tests {
		SetLevel(in)
		if got := GetLevel(); got != want {
			t.Errorf("SetLevel(%q) -> GetLevel() = %q, want %q", in, got, want)
		}
	}
	SetLevel("info")
}

func TestLogger_With(t *testing.T) {
	l, buf := newBufferLogger(t, "info")

	l.With("component", "apiclient").Info("request failed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("parse log: %v", err)
	}
	if entry["component"] != "apiclient" {
		t.Errorf("component = %v, want apiclient", entry["component"])
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	if l.With("a", 1) == nil {
		t.Error("With() on nop logger returned nil")
	}
}

func TestSetDefault(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	l, buf := newBufferLogger(t, "info")
	SetDefault(l)
	Default().Info("through default")

	if !strings.Contains(buf.String(), "through default") {
		t.Errorf("default logger not replaced: %q", buf.String())
	}

	SetDefault(nil)
	if Default() == nil {
		t.Error("SetDefault(nil) must keep the previous logger")
	}
}
