// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cliout

import (
	"strings"
	"testing"

	"github.com/jongio/procinfo/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFormat(t *testing.T, format string) {
	t.Helper()
	require.NoError(t, SetFormat(format))
	t.Cleanup(func() { _ = SetFormat("default") })
}

func TestSetFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"", FormatDefault},
		{"default", FormatDefault},
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"yaml", FormatYAML},
		{"yml", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			withFormat(t, tt.input)
			assert.Equal(t, tt.want, GetFormat())
		})
	}
}

func TestSetFormatInvalid(t *testing.T) {
	withFormat(t, "json")

	err := SetFormat("xml")

	assert.ErrorContains(t, err, "invalid output format")
	assert.Equal(t, FormatJSON, GetFormat(), "format unchanged on error")
}

func TestIsStructured(t *testing.T) {
	withFormat(t, "default")
	assert.False(t, IsStructured())
	require.NoError(t, SetFormat("yaml"))
	assert.True(t, IsStructured())
}

type sample struct {
	PID  int    `json:"pid" yaml:"pid"`
	Name string `json:"name" yaml:"name"`
}

func TestPrintJSON(t *testing.T) {
	withFormat(t, "json")

	output := testutil.CaptureOutput(t, func() error {
		return Print(sample{PID: 7, Name: "app"}, func() { t.Error("formatter called in JSON mode") })
	})

	assert.JSONEq(t, `{"pid":7,"name":"app"}`, output)
}

func TestPrintYAML(t *testing.T) {
	withFormat(t, "yaml")

	output := testutil.CaptureOutput(t, func() error {
		return Print(sample{PID: 7, Name: "app"}, func() { t.Error("formatter called in YAML mode") })
	})

	assert.Equal(t, "pid: 7\nname: app\n", output)
}

func TestPrintDefaultUsesFormatter(t *testing.T) {
	withFormat(t, "default")

	called := false
	_ = testutil.CaptureOutput(t, func() error {
		return Print(sample{}, func() { called = true })
	})

	assert.True(t, called)
}

func withColorMode(t *testing.T, mode string) {
	t.Helper()
	require.NoError(t, SetColorMode(mode))
	t.Cleanup(func() { _ = SetColorMode("auto") })
}

func TestMessagesWithoutColor(t *testing.T) {
	withColorMode(t, "never")

	output := testutil.CaptureOutput(t, func() error {
		Success("ok %d", 1)
		Error("bad %s", "thing")
		Warning("careful %s", "now")
		Info("note %d", 2)
		Newline()
		Label("PID", "42")
		return nil
	})

	assert.NotContains(t, output, "\033[")
	assert.Contains(t, output, "ok 1")
	assert.Contains(t, output, "bad thing")
	assert.Contains(t, output, "careful now")
	assert.Contains(t, output, "note 2")
	assert.Contains(t, output, "\n\n")
	assert.Contains(t, output, "PID:")
	assert.Contains(t, output, "42")
}

func TestSetColorMode(t *testing.T) {
	withColorMode(t, "always")
	assert.Equal(t, BrightYellow+"x"+Reset, color(BrightYellow, "x"))

	require.NoError(t, SetColorMode("NEVER"))
	assert.Equal(t, "x", color(BrightYellow, "x"))

	t.Setenv("NO_COLOR", "1")
	require.NoError(t, SetColorMode("auto"))
	assert.Equal(t, "x", color(BrightYellow, "x"))

	assert.Error(t, SetColorMode("sometimes"))
}

func TestStatusColors(t *testing.T) {
	withColorMode(t, "always")

	assert.Equal(t, BrightGreen+"running"+Reset, Status("running"))
	assert.Equal(t, BrightRed+"failed"+Reset, Status("failed"))
	assert.Equal(t, "pending", Status("pending"))
}

func TestTable(t *testing.T) {
	withColorMode(t, "never")

	output := testutil.CaptureOutput(t, func() error {
		Table([]string{"PID", "NAME"}, []TableRow{
			{"PID": "1", "NAME": "init"},
			{"PID": "4242", "NAME": "worker"},
		})
		return nil
	})

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "PID")
	assert.Contains(t, lines[3], "4242")
	assert.Contains(t, lines[3], "worker")
}

func TestTableEmpty(t *testing.T) {
	output := testutil.CaptureOutput(t, func() error {
		Table([]string{"PID"}, nil)
		return nil
	})
	assert.Empty(t, output)
}
