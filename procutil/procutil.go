// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"
)

// DefaultMaxPathCapacity is the longest path Windows accepts in its extended
// form. It is a sensible bound on every platform.
const DefaultMaxPathCapacity = 32767

// ProcessInfo is the result of a successful Query.
type ProcessInfo struct {
	PID int `json:"pid" yaml:"pid"`
	// Name is the base name of ImagePath.
	Name         string       `json:"name" yaml:"name"`
	ImagePath    string       `json:"imagePath" yaml:"imagePath"`
	CreationTime CreationTime `json:"creationTime" yaml:"creationTime"`
}

// CreationTime is the instant the operating system recorded for the creation
// of a process. The raw value is platform specific (FILETIME ticks on
// Windows, milliseconds since the Unix epoch elsewhere) and is kept as read.
type CreationTime struct {
	raw uint64
}

// Raw returns the value exactly as the operating system reported it.
func (c CreationTime) Raw() uint64 {
	return c.raw
}

// IsZero reports whether c holds no value.
func (c CreationTime) IsZero() bool {
	return c.raw == 0
}

// Equal reports whether c and o denote the same instant.
func (c CreationTime) Equal(o CreationTime) bool {
	return c.raw == o.raw
}

// Time converts the raw value to wall-clock time.
func (c CreationTime) Time() time.Time {
	return rawCreationTime(c.raw)
}

func (c CreationTime) String() string {
	return c.Time().Format(time.RFC3339Nano)
}

type creationTimeView struct {
	Raw  uint64 `json:"raw" yaml:"raw"`
	Time string `json:"time" yaml:"time"`
}

func (c CreationTime) view() creationTimeView {
	return creationTimeView{Raw: c.raw, Time: c.String()}
}

// MarshalJSON encodes both the raw value and its RFC 3339 form.
func (c CreationTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.view())
}

// MarshalYAML encodes both the raw value and its RFC 3339 form.
func (c CreationTime) MarshalYAML() (interface{}, error) {
	return c.view(), nil
}

// Querier runs process queries against an operating system back end.
// The zero value is not usable; call NewQuerier.
type Querier struct {
	open openFunc
}

// NewQuerier returns a Querier backed by the native process API.
func NewQuerier() *Querier {
	return &Querier{open: openProcess}
}

// defaultQuerier holds no mutable state; it only names the native back end.
var defaultQuerier = NewQuerier()

// Query opens pid, reads its image path (bounded by maxPathCapacity native
// units) and creation time, and releases the handle before returning.
func Query(pid int, maxPathCapacity int) (*ProcessInfo, error) {
	return defaultQuerier.Query(pid, maxPathCapacity)
}

// IsProcessRunning checks if a process with the given PID is running.
// A process counts as running when a limited-access handle can be opened
// for it, whether or not the caller may read its details.
func IsProcessRunning(pid int) bool {
	return defaultQuerier.IsProcessRunning(pid)
}

// Query implements the package-level Query against q's back end.
func (q *Querier) Query(pid int, maxPathCapacity int) (*ProcessInfo, error) {
	if maxPathCapacity <= 0 {
		return nil, newQueryError(KindInvalidArgument, pid, "validate",
			fmt.Errorf("maxPathCapacity must be positive, got %d", maxPathCapacity))
	}

	h, err := q.OpenHandle(pid)
	if err != nil {
		return nil, err
	}
	defer h.Close()

	path, err := h.ImagePath(maxPathCapacity)
	if err != nil {
		return nil, err
	}

	created, err := h.CreationTime()
	if err != nil {
		return nil, err
	}

	return &ProcessInfo{
		PID:          pid,
		Name:         filepath.Base(path),
		ImagePath:    path,
		CreationTime: created,
	}, nil
}

// OpenHandle opens pid through q's back end.
func (q *Querier) OpenHandle(pid int) (*Handle, error) {
	if !validPID(pid) {
		return nil, newQueryError(KindProcessNotAccessible, pid, "open",
			fmt.Errorf("pid %d out of range", pid))
	}
	sys, err := q.open(pid)
	if err != nil {
		return nil, newQueryError(KindProcessNotAccessible, pid, "open", err)
	}
	if ac, ok := sys.(accessChecker); ok {
		if err := ac.checkAccess(); err != nil {
			_ = sys.close()
			return nil, newQueryError(KindProcessNotAccessible, pid, "open", err)
		}
	}
	return &Handle{pid: pid, sys: sys}, nil
}

// WithHandle opens pid, runs fn and closes the handle on every path.
func (q *Querier) WithHandle(pid int, fn func(*Handle) error) error {
	h, err := q.OpenHandle(pid)
	if err != nil {
		return err
	}
	defer h.Close()
	return fn(h)
}

// IsProcessRunning reports whether a limited-access handle can be opened for
// pid. Unlike OpenHandle it does not require permission to inspect the
// process, only that the process exists.
func (q *Querier) IsProcessRunning(pid int) bool {
	if pid <= 0 || !validPID(pid) {
		return false
	}
	sys, err := q.open(pid)
	if err != nil {
		return false
	}
	_ = sys.close()
	return true
}
