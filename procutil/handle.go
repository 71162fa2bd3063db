// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"errors"
	"fmt"
	"math"
)

// initialPathCapacity is the first buffer size tried for the image path.
const initialPathCapacity = 260

// sysHandle is the platform side of a Handle. Implementations live in the
// procutil_<os>.go files.
type sysHandle interface {
	// imagePath reads the executable path into a buffer of n native units and
	// returns errBufferTooSmall when it does not fit.
	imagePath(n int) (string, error)
	creationTime() (CreationTime, error)
	cpuTimes() (CPUTimes, error)
	// applyCPUSet restricts the process to cpus, or lifts the restriction
	// when cpus is empty. count is the number of logical processors.
	applyCPUSet(cpus []int, count int) error
	close() error
}

// accessChecker is implemented by back ends whose open succeeds even when
// the caller may not inspect the process.
type accessChecker interface {
	checkAccess() error
}

// openFunc acquires a limited-access platform handle for pid.
type openFunc func(pid int) (sysHandle, error)

// noCopy makes go vet's copylocks check flag copies of a Handle.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Handle owns an open, limited-access reference to a process.
//
// A Handle must be released exactly once with Close. It is not safe for
// concurrent use and must not be copied; pass the pointer instead.
type Handle struct {
	_      noCopy
	pid    int
	sys    sysHandle
	closed bool
}

// OpenHandle opens pid for limited query access. The caller owns the
// returned Handle and must Close it.
func OpenHandle(pid int) (*Handle, error) {
	return defaultQuerier.OpenHandle(pid)
}

// WithHandle opens pid, runs fn with the handle and closes it on every path.
func WithHandle(pid int, fn func(*Handle) error) error {
	return defaultQuerier.WithHandle(pid, fn)
}

// PID returns the process identifier the handle was opened for.
func (h *Handle) PID() int {
	return h.pid
}

// ImagePath returns the full path of the process executable. The buffer
// starts small and grows as needed but never beyond maxPathCapacity units.
func (h *Handle) ImagePath(maxPathCapacity int) (string, error) {
	if maxPathCapacity <= 0 {
		return "", newQueryError(KindInvalidArgument, h.pid, "validate",
			fmt.Errorf("maxPathCapacity must be positive, got %d", maxPathCapacity))
	}
	if h.closed {
		return "", newQueryError(KindImageQueryFailed, h.pid, "image-path", ErrHandleClosed)
	}

	n := min(initialPathCapacity, maxPathCapacity)
	for {
		path, err := h.sys.imagePath(n)
		switch {
		case err == nil && path == "":
			return "", newQueryError(KindImageQueryFailed, h.pid, "image-path", errors.New("empty image path"))
		case err == nil:
			return path, nil
		case !errors.Is(err, errBufferTooSmall):
			return "", newQueryError(KindImageQueryFailed, h.pid, "image-path", err)
		case n >= maxPathCapacity:
			return "", newQueryError(KindImageQueryFailed, h.pid, "image-path",
				fmt.Errorf("path longer than %d units: %w", maxPathCapacity, err))
		}
		if n > maxPathCapacity/2 {
			n = maxPathCapacity
		} else {
			n *= 2
		}
	}
}

// CreationTime returns the time the operating system created the process.
func (h *Handle) CreationTime() (CreationTime, error) {
	if h.closed {
		return CreationTime{}, newQueryError(KindMetadataUnavailable, h.pid, "creation-time", ErrHandleClosed)
	}
	ct, err := h.sys.creationTime()
	if err != nil {
		return CreationTime{}, newQueryError(KindMetadataUnavailable, h.pid, "creation-time", err)
	}
	return ct, nil
}

// CPUTimes returns the processor time the process has consumed so far.
func (h *Handle) CPUTimes() (CPUTimes, error) {
	if h.closed {
		return CPUTimes{}, newQueryError(KindMetadataUnavailable, h.pid, "cpu-times", ErrHandleClosed)
	}
	t, err := h.sys.cpuTimes()
	if err != nil {
		return CPUTimes{}, newQueryError(KindMetadataUnavailable, h.pid, "cpu-times", err)
	}
	return t, nil
}

// ApplyCPUSet restricts the process to the given logical processors. An
// empty cpus lifts any restriction previously applied. Indices must be in
// [0, LogicalProcessorCount()); duplicates are ignored.
func (h *Handle) ApplyCPUSet(cpus []int) error {
	if h.closed {
		return newQueryError(KindCPUSetFailed, h.pid, "cpu-set", ErrHandleClosed)
	}
	count, err := LogicalProcessorCount()
	if err != nil {
		return newQueryError(KindCPUSetFailed, h.pid, "cpu-set", err)
	}
	set, err := normalizeCPUSet(cpus, count)
	if err != nil {
		return newQueryError(KindInvalidArgument, h.pid, "validate", err)
	}
	if err := h.sys.applyCPUSet(set, count); err != nil {
		return newQueryError(KindCPUSetFailed, h.pid, "cpu-set", err)
	}
	return nil
}

// Close releases the handle. Calls after the first are no-ops.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	return h.sys.close()
}

// validPID reports whether pid fits the platform process identifier range.
// Out-of-range values can never name a process.
func validPID(pid int) bool {
	return pid >= 0 && int64(pid) <= math.MaxInt32
}
