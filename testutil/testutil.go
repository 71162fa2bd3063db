// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package testutil

import (
	"io"
	"os"
	"testing"
)

// CaptureOutput captures stdout during function execution.
// The original stdout is always restored, even if the function returns an error.
//
// Example:
//
//	output := testutil.CaptureOutput(t, func() error {
//	    fmt.Println("test output")
//	    return nil
//	})
func CaptureOutput(t *testing.T, fn func() error) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w

	// Buffered so the reader never blocks after the test moves on.
	outCh := make(chan string, 1)
	go func() {
		data, _ := io.ReadAll(r)
		outCh <- string(data)
	}()

	fnErr := fn()

	if err := w.Close(); err != nil {
		t.Logf("Failed to close pipe writer: %v", err)
	}
	os.Stdout = origStdout
	output := <-outCh
	_ = r.Close()

	if fnErr != nil {
		t.Logf("Command error: %v", fnErr)
	}
	return output
}

// TempDir creates a temporary directory that is removed when the test ends.
func TempDir(t *testing.T) string {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "procinfo-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			t.Logf("Failed to clean up temp directory %s: %v", tmpDir, err)
		}
	})
	return tmpDir
}

// OpenHandleCount returns the number of OS handles (file descriptors on
// Unix) the current process holds. The test is skipped when the platform
// cannot report it.
func OpenHandleCount(t *testing.T) int {
	t.Helper()

	n, err := openHandleCount()
	if err != nil {
		t.Skipf("open handle count unavailable: %v", err)
	}
	return n
}
