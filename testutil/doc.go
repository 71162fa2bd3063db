// Package testutil provides common testing utilities for procinfo packages.
//
// This package includes helpers for:
//   - Capturing stdout during test execution (CaptureOutput)
//   - Creating temporary directories with automatic cleanup (TempDir)
//   - Counting the OS handles held by the test process (OpenHandleCount)
//
// All functions use t.Helper() for proper test line reporting.
//
// Example usage:
//
//	func TestQueryDoesNotLeak(t *testing.T) {
//	    before := testutil.OpenHandleCount(t)
//	    _, _ = procutil.Query(os.Getpid(), 260)
//	    if after := testutil.OpenHandleCount(t); after != before {
//	        t.Errorf("handle count %d, want %d", after, before)
//	    }
//	}
package testutil
