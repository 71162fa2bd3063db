// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a process operation failed.
type ErrorKind int

const (
	// KindInvalidArgument means the caller passed a non-positive path
	// capacity or a processor index the machine does not have.
	KindInvalidArgument ErrorKind = iota + 1
	// KindProcessNotAccessible means the process does not exist or could not be opened.
	KindProcessNotAccessible
	// KindImageQueryFailed means the image path could not be read after the process was opened.
	KindImageQueryFailed
	// KindMetadataUnavailable means the creation time or CPU times could not be read.
	KindMetadataUnavailable
	// KindCPUSetFailed means the processor set could not be applied to an
	// opened process.
	KindCPUSetFailed
)

var (
	// ErrInvalidArgument matches errors of kind KindInvalidArgument.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrProcessNotAccessible matches errors of kind KindProcessNotAccessible.
	ErrProcessNotAccessible = errors.New("process not accessible")
	// ErrImageQueryFailed matches errors of kind KindImageQueryFailed.
	ErrImageQueryFailed = errors.New("image path query failed")
	// ErrMetadataUnavailable matches errors of kind KindMetadataUnavailable.
	ErrMetadataUnavailable = errors.New("process metadata unavailable")
	// ErrCPUSetFailed matches errors of kind KindCPUSetFailed.
	ErrCPUSetFailed = errors.New("cpu set apply failed")
	// ErrHandleClosed is wrapped when a Handle is used after Close.
	ErrHandleClosed = errors.New("handle is closed")

	// errBufferTooSmall is returned by a platform handle when the image path
	// does not fit the buffer it was given.
	errBufferTooSmall = errors.New("buffer too small")
)

// String returns the kind name used in logs, metrics and JSON output.
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindProcessNotAccessible:
		return "ProcessNotAccessible"
	case KindImageQueryFailed:
		return "ImageQueryFailed"
	case KindMetadataUnavailable:
		return "MetadataUnavailable"
	case KindCPUSetFailed:
		return "CPUSetFailed"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindInvalidArgument:
		return ErrInvalidArgument
	case KindProcessNotAccessible:
		return ErrProcessNotAccessible
	case KindImageQueryFailed:
		return ErrImageQueryFailed
	case KindMetadataUnavailable:
		return ErrMetadataUnavailable
	case KindCPUSetFailed:
		return ErrCPUSetFailed
	default:
		return nil
	}
}

// QueryError is the error returned by every failing operation in this package.
type QueryError struct {
	Kind ErrorKind
	PID  int
	// Op names the step that failed, e.g. "open", "image-path" or "cpu-set".
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("process %d: %s: %v", e.PID, e.Op, e.Kind.sentinel())
	}
	return fmt.Sprintf("process %d: %s: %v: %v", e.PID, e.Op, e.Kind.sentinel(), e.Err)
}

// Unwrap returns the underlying OS or validation error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel error for e.Kind.
func (e *QueryError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the ErrorKind carried by err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Kind, true
	}
	return 0, false
}

func newQueryError(kind ErrorKind, pid int, op string, err error) *QueryError {
	return &QueryError{Kind: kind, PID: pid, Op: op, Err: err}
}
