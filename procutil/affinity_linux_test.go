//go:build linux
// +build linux

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func affinity(t *testing.T, pid int) unix.CPUSet {
	t.Helper()

	var set unix.CPUSet
	require.NoError(t, unix.SchedGetaffinity(pid, &set))
	return set
}

// allowedCPU returns a processor the test process may run on; containers
// do not always include cpu 0.
func allowedCPU(t *testing.T) int {
	t.Helper()

	own := affinity(t, 0)
	for c := 0; c < 1024; c++ {
		if own.IsSet(c) {
			return c
		}
	}
	t.Fatal("test process has an empty affinity mask")
	return -1
}

func TestApplyCPUSetChildProcess(t *testing.T) {
	cmd := startSleeper(t)
	pid := cmd.Process.Pid
	cpu := allowedCPU(t)

	require.NoError(t, WithHandle(pid, func(h *Handle) error {
		return h.ApplyCPUSet([]int{cpu})
	}))
	got := affinity(t, pid)
	assert.Equal(t, 1, got.Count())
	assert.True(t, got.IsSet(cpu))

	require.NoError(t, WithHandle(pid, func(h *Handle) error {
		return h.ApplyCPUSet(nil)
	}))
	own := affinity(t, 0)
	got = affinity(t, pid)
	assert.GreaterOrEqual(t, got.Count(), own.Count(), "clearing must widen the affinity to at least the parent's")
}

func TestApplyCPUSetExitedProcess(t *testing.T) {
	cmd := startSleeper(t)
	h, err := OpenHandle(cmd.Process.Pid)
	require.NoError(t, err)
	defer h.Close()

	require.NoError(t, cmd.Process.Kill())
	_ = cmd.Wait()

	assert.ErrorIs(t, h.ApplyCPUSet([]int{allowedCPU(t)}), ErrCPUSetFailed)
}
