//go:build linux
// +build linux

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sys/unix"
)

// linuxHandle holds either a pidfd or, on kernels without pidfd_open, an
// O_PATH descriptor for /proc/<pid>. Both keep referring to the original
// process after its pid is reused.
type linuxHandle struct {
	pid   int
	fd    int
	pidfd bool
}

func openProcess(pid int) (sysHandle, error) {
	fd, err := unix.PidfdOpen(pid, 0)
	if err == nil {
		return &linuxHandle{pid: pid, fd: fd, pidfd: true}, nil
	}
	// ENOSYS on kernels before 5.3, EPERM when a seccomp filter blocks the call.
	if !errors.Is(err, unix.ENOSYS) && !errors.Is(err, unix.EPERM) {
		return nil, err
	}

	fd, err = unix.Open(procDir(pid), unix.O_PATH|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	return &linuxHandle{pid: pid, fd: fd}, nil
}

func procDir(pid int) string {
	return "/proc/" + strconv.Itoa(pid)
}

func (h *linuxHandle) readExe(buf []byte) (int, error) {
	if h.pidfd {
		return unix.Readlink(procDir(h.pid)+"/exe", buf)
	}
	return unix.Readlinkat(h.fd, "exe", buf)
}

// checkAccess reports EACCES or EPERM when the caller may not inspect the
// process. pidfd_open itself checks no permissions. Other readlink errors,
// such as ENOENT for kernel threads, are left to imagePath.
func (h *linuxHandle) checkAccess() error {
	var b [1]byte
	_, err := h.readExe(b[:])
	if errors.Is(err, unix.EACCES) || errors.Is(err, unix.EPERM) {
		return fmt.Errorf("permission denied: %w", err)
	}
	return nil
}

func (h *linuxHandle) imagePath(n int) (string, error) {
	buf := make([]byte, n)

	m, err := h.readExe(buf)
	if err != nil {
		return "", err
	}
	// readlink truncates silently; a full buffer may hold a cut path.
	if m >= len(buf) {
		return "", errBufferTooSmall
	}
	if err := h.alive(); err != nil {
		return "", err
	}
	return string(buf[:m]), nil
}

func (h *linuxHandle) creationTime() (CreationTime, error) {
	ctx := context.Background()
	p, err := process.NewProcessWithContext(ctx, int32(h.pid))
	if err != nil {
		return CreationTime{}, err
	}
	ms, err := p.CreateTimeWithContext(ctx)
	if err != nil {
		return CreationTime{}, err
	}
	if ms <= 0 {
		return CreationTime{}, fmt.Errorf("invalid creation time %d", ms)
	}
	if err := h.alive(); err != nil {
		return CreationTime{}, err
	}
	return CreationTime{raw: uint64(ms)}, nil
}

func (h *linuxHandle) cpuTimes() (CPUTimes, error) {
	ctx := context.Background()
	p, err := process.NewProcessWithContext(ctx, int32(h.pid))
	if err != nil {
		return CPUTimes{}, err
	}
	t, err := p.TimesWithContext(ctx)
	if err != nil {
		return CPUTimes{}, err
	}
	if err := h.alive(); err != nil {
		return CPUTimes{}, err
	}
	return CPUTimes{User: cpuSeconds(t.User), System: cpuSeconds(t.System)}, nil
}

// applyCPUSet sets the affinity of the process's main thread. Threads
// created afterwards inherit it.
func (h *linuxHandle) applyCPUSet(cpus []int, count int) error {
	if err := h.alive(); err != nil {
		return err
	}
	var set unix.CPUSet
	if len(cpus) == 0 {
		for i := 0; i < count; i++ {
			set.Set(i)
		}
	}
	for _, c := range cpus {
		set.Set(c)
	}
	if err := unix.SchedSetaffinity(h.pid, &set); err != nil {
		return err
	}
	return h.alive()
}

// alive fails when the process behind the handle has exited, so data read
// through its pid cannot belong to a newer process with the same pid.
func (h *linuxHandle) alive() error {
	if h.pidfd {
		err := unix.PidfdSendSignal(h.fd, 0, nil, 0)
		if errors.Is(err, unix.ESRCH) {
			return fmt.Errorf("process exited: %w", err)
		}
		return nil
	}
	if err := unix.Faccessat(h.fd, "stat", 0, 0); err != nil {
		return fmt.Errorf("process exited: %w", err)
	}
	return nil
}

func (h *linuxHandle) close() error {
	return unix.Close(h.fd)
}
