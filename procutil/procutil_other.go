//go:build !windows && !linux
// +build !windows,!linux

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/process"
)

// gopsutilHandle covers platforms without a process handle primitive.
// gopsutil reads sysctl, kstat or procfs by pid, so close has nothing to
// release.
type gopsutilHandle struct {
	p   *process.Process
	exe string
}

func openProcess(pid int) (sysHandle, error) {
	p, err := process.NewProcessWithContext(context.Background(), int32(pid))
	if err != nil {
		return nil, err
	}
	return &gopsutilHandle{p: p}, nil
}

func (g *gopsutilHandle) imagePath(n int) (string, error) {
	if g.exe == "" {
		exe, err := g.p.ExeWithContext(context.Background())
		if err != nil {
			return "", err
		}
		g.exe = exe
	}
	if len(g.exe) >= n {
		return "", errBufferTooSmall
	}
	return g.exe, nil
}

func (g *gopsutilHandle) creationTime() (CreationTime, error) {
	ms, err := g.p.CreateTimeWithContext(context.Background())
	if err != nil {
		return CreationTime{}, err
	}
	if ms <= 0 {
		return CreationTime{}, fmt.Errorf("invalid creation time %d", ms)
	}
	return CreationTime{raw: uint64(ms)}, nil
}

func (g *gopsutilHandle) cpuTimes() (CPUTimes, error) {
	t, err := g.p.TimesWithContext(context.Background())
	if err != nil {
		return CPUTimes{}, err
	}
	return CPUTimes{User: cpuSeconds(t.User), System: cpuSeconds(t.System)}, nil
}

func (g *gopsutilHandle) applyCPUSet([]int, int) error {
	return fmt.Errorf("processor sets on %s: %w", runtime.GOOS, errors.ErrUnsupported)
}

func (g *gopsutilHandle) close() error {
	return nil
}
