//go:build windows
// +build windows

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/windows"
)

// TestQueryWindowsPIDZero tests the System Idle Process, which OpenProcess rejects.
func TestQueryWindowsPIDZero(t *testing.T) {
	_, err := Query(0, 260)
	assert.ErrorIs(t, err, ErrProcessNotAccessible)
}

// TestQueryWindowsCreationTimeIsFiletime checks the raw value is FILETIME ticks.
func TestQueryWindowsCreationTimeIsFiletime(t *testing.T) {
	info, err := Query(os.Getpid(), DefaultMaxPathCapacity)
	require.NoError(t, err)

	raw := info.CreationTime.Raw()
	ft := windows.Filetime{LowDateTime: uint32(raw), HighDateTime: uint32(raw >> 32)}
	assert.Equal(t, ft.Nanoseconds(), info.CreationTime.Time().UnixNano())
	assert.True(t, info.CreationTime.Time().After(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)))
}

// TestOpenHandleWindowsAccessMask checks only limited access is requested.
func TestOpenHandleWindowsAccessMask(t *testing.T) {
	assert.Equal(t, uint32(windows.PROCESS_QUERY_LIMITED_INFORMATION|0x2000), uint32(processAccess))
	assert.NotEqual(t, uint32(windows.PROCESS_ALL_ACCESS), uint32(processAccess))
}

// TestIsProcessRunningWindowsSystem tests system process on Windows
func TestIsProcessRunningWindowsSystem(t *testing.T) {
	// PID 4 is typically the System process on Windows; permissions vary.
	t.Logf("IsProcessRunning(4) [System process] = %v", IsProcessRunning(4))
	assert.False(t, IsProcessRunning(0))
}
