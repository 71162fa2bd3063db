// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package logutil

import (
	"bytes"
	"strings"
	"testing"
)

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
		{"bogus", LevelInfo},
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

func TestSetupLoggerDebugFromEnv(t *testing.T) {
	t.Setenv(EnvDebug, "true")
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)
	defer SetupLogger(false, false)

	if GetLevel() != LevelDebug {
		t.Fatal("expected debug enabled via env var")
	}
	Debug("visible debug", "pid", 42)
	if !strings.Contains(buf.String(), "visible debug") {
		t.Errorf("expected debug output, got: %s", buf.String())
	}
}

func TestDebugWhenDisabled(t *testing.T) {
	t.Setenv(EnvDebug, "")
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)

	Debug("hidden debug")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got: %s", buf.String())
	}
}

func TestLogOutputText(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)

	Logger().Info("query completed", "pid", 4242)
	output := buf.String()
	if !strings.Contains(output, "level=INFO") || !strings.Contains(output, "pid=4242") {
		t.Errorf("unexpected text output: %s", output)
	}
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, true)

	Logger().Warn("process not accessible", "pid", 7)
	output := buf.String()
	if !strings.Contains(output, `"level":"WARN"`) || !strings.Contains(output, `"pid":7`) {
		t.Errorf("unexpected JSON output: %s", output)
	}
}

func TestSetLevelError(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)
	SetLevel(LevelError)
	defer SetLevel(LevelInfo)

	Logger().Warn("suppressed")
	Logger().Error("shown")
	output := buf.String()
	if strings.Contains(output, "suppressed") {
		t.Errorf("warn should be suppressed at error level: %s", output)
	}
	if !strings.Contains(output, "shown") {
		t.Errorf("error should be logged: %s", output)
	}
	if GetLevel() != LevelError {
		t.Errorf("GetLevel() = %v, want LevelError", GetLevel())
	}
}

func TestSetLevelKeepsFormat(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, true)
	SetLevel(LevelDebug)
	defer SetLevel(LevelInfo)

	Debug("still json")
	if !strings.Contains(buf.String(), `"msg":"still json"`) {
		t.Errorf("expected JSON debug output, got: %s", buf.String())
	}
}

func TestLogger(t *testing.T) {
	if Logger() == nil {
		t.Fatal("Logger() returned nil")
	}
}
