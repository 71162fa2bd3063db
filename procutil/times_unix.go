//go:build !windows
// +build !windows

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import "time"

// rawCreationTime converts milliseconds since the Unix epoch, as reported by
// gopsutil.
func rawCreationTime(raw uint64) time.Time {
	return time.UnixMilli(int64(raw))
}

// cpuSeconds converts gopsutil's fractional seconds.
func cpuSeconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
