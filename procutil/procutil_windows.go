//go:build windows
// +build windows

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/windows"
)

// processSetLimitedInformation is PROCESS_SET_LIMITED_INFORMATION, the
// right SetProcessDefaultCpuSets needs.
const processSetLimitedInformation = 0x2000

// processAccess is the only access mask ever requested.
const processAccess = windows.PROCESS_QUERY_LIMITED_INFORMATION | processSetLimitedInformation

type windowsHandle struct {
	h windows.Handle
}

func openProcess(pid int) (sysHandle, error) {
	h, err := windows.OpenProcess(processAccess, false, uint32(pid))
	if err != nil {
		return nil, err
	}
	return &windowsHandle{h: h}, nil
}

func (w *windowsHandle) imagePath(n int) (string, error) {
	buf := make([]uint16, n)
	size := uint32(n)
	if err := windows.QueryFullProcessImageName(w.h, 0, &buf[0], &size); err != nil {
		if errors.Is(err, windows.ERROR_INSUFFICIENT_BUFFER) {
			return "", errBufferTooSmall
		}
		return "", err
	}
	return windows.UTF16ToString(buf[:size]), nil
}

func (w *windowsHandle) creationTime() (CreationTime, error) {
	var created, exited, kernel, user windows.Filetime
	if err := windows.GetProcessTimes(w.h, &created, &exited, &kernel, &user); err != nil {
		return CreationTime{}, err
	}
	raw := uint64(created.HighDateTime)<<32 | uint64(created.LowDateTime)
	if raw == 0 {
		return CreationTime{}, errors.New("process reported no creation time")
	}
	return CreationTime{raw: raw}, nil
}

func (w *windowsHandle) cpuTimes() (CPUTimes, error) {
	var created, exited, kernel, user windows.Filetime
	if err := windows.GetProcessTimes(w.h, &created, &exited, &kernel, &user); err != nil {
		return CPUTimes{}, err
	}
	return CPUTimes{User: filetimeDuration(user), System: filetimeDuration(kernel)}, nil
}

func (w *windowsHandle) applyCPUSet(cpus []int, _ int) error {
	if len(cpus) == 0 {
		return setProcessDefaultCpuSets(w.h, nil)
	}
	ids, err := systemCPUSetIDs()
	if err != nil {
		return err
	}
	set := make([]uint32, 0, len(cpus))
	for _, c := range cpus {
		id, ok := ids[c]
		if !ok {
			return fmt.Errorf("logical processor %d has no CPU set id", c)
		}
		set = append(set, id)
	}
	return setProcessDefaultCpuSets(w.h, set)
}

func (w *windowsHandle) close() error {
	return windows.CloseHandle(w.h)
}

// filetimeDuration converts a FILETIME interval in 100ns ticks.
func filetimeDuration(ft windows.Filetime) time.Duration {
	return time.Duration(uint64(ft.HighDateTime)<<32|uint64(ft.LowDateTime)) * 100
}

// rawCreationTime converts FILETIME ticks (100ns since 1601-01-01 UTC).
func rawCreationTime(raw uint64) time.Time {
	ft := windows.Filetime{
		LowDateTime:  uint32(raw),
		HighDateTime: uint32(raw >> 32),
	}
	return time.Unix(0, ft.Nanoseconds())
}
