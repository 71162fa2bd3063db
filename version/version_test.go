package version

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jongio/procinfo/cliout"
	"github.com/jongio/procinfo/testutil"
)

func TestNew_Defaults(t *testing.T) {
	info := New("procinfo")
	if info.Name != "procinfo" {
		t.Errorf("expected Name 'procinfo', got %q", info.Name)
	}
	if info.Version != "0.0.0-dev" {
		t.Errorf("expected Version '0.0.0-dev', got %q", info.Version)
	}
	if info.BuildDate != "unknown" || info.GitCommit != "unknown" {
		t.Errorf("expected unknown build metadata, got %q / %q", info.BuildDate, info.GitCommit)
	}
}

func TestInfo_String(t *testing.T) {
	info := &Info{Name: "procinfo", Version: "1.2.3", BuildDate: "2024-01-01", GitCommit: "abc123"}
	expected := "procinfo version 1.2.3 (commit: abc123, built: 2024-01-01)"
	if got := info.String(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func runCommand(t *testing.T, format string, args ...string) string {
	t.Helper()
	if err := cliout.SetFormat(format); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = cliout.SetFormat("default") })

	cmd := NewCommand(New("procinfo"))
	cmd.SetArgs(args)
	return testutil.CaptureOutput(t, cmd.Execute)
}

func TestNewCommand_HumanReadable(t *testing.T) {
	output := runCommand(t, "default")
	for _, want := range []string{"procinfo Version", "Build Date", "Git Commit", "0.0.0-dev"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestNewCommand_JSON(t *testing.T) {
	output := runCommand(t, "json")

	var parsed Info
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Fatalf("expected valid JSON, got error: %v\noutput: %s", err, output)
	}
	if parsed.Name != "procinfo" || parsed.Version != "0.0.0-dev" {
		t.Errorf("unexpected info %+v", parsed)
	}
}

func TestNewCommand_Quiet(t *testing.T) {
	output := runCommand(t, "default", "--quiet")
	if trimmed := strings.TrimSpace(output); trimmed != "0.0.0-dev" {
		t.Errorf("expected '0.0.0-dev', got %q", trimmed)
	}
}
