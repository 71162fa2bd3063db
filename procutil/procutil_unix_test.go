//go:build !windows
// +build !windows

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestQueryUnixCreationTimeIsUnixMillis checks the raw value is in
// milliseconds since the Unix epoch.
func TestQueryUnixCreationTimeIsUnixMillis(t *testing.T) {
	info, err := Query(os.Getpid(), DefaultMaxPathCapacity)
	require.NoError(t, err)

	created := info.CreationTime.Time()
	assert.Equal(t, created.UnixMilli(), int64(info.CreationTime.Raw()))
	assert.True(t, created.After(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)), "implausible creation time %s", created)
}

// TestQueryUnixPIDZero tests the reserved pid 0, which names no process on Linux.
func TestQueryUnixPIDZero(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("pid 0 may be openable outside Linux")
	}

	_, err := Query(0, 260)
	assert.ErrorIs(t, err, ErrProcessNotAccessible)
}

// TestIsProcessRunningUnixInit tests checking PID 1 (init process)
func TestIsProcessRunningUnixInit(t *testing.T) {
	// PID 1 should always be running on Unix systems
	if !IsProcessRunning(1) {
		t.Error("IsProcessRunning(1) = false, expected true for init process")
	}
}

// TestQueryUnixPermissionDenied checks that a process the caller may not
// inspect fails at open, not while reading the image path.
func TestQueryUnixPermissionDenied(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("open-time access check is Linux specific")
	}
	if os.Geteuid() == 0 {
		t.Skip("root may inspect every process")
	}

	_, err := Query(1, DefaultMaxPathCapacity)
	assert.ErrorIs(t, err, ErrProcessNotAccessible)
	assert.True(t, IsProcessRunning(1))
}
