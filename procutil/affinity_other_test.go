//go:build !linux && !windows
// +build !linux,!windows

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyCPUSetUnsupported(t *testing.T) {
	cmd := startSleeper(t)

	err := WithHandle(cmd.Process.Pid, func(h *Handle) error {
		return h.ApplyCPUSet([]int{0})
	})

	assert.ErrorIs(t, err, ErrCPUSetFailed)
	assert.True(t, errors.Is(err, errors.ErrUnsupported))
}
