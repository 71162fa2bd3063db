// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
)

// DefaultUsageWindow is how far back a UsageSampler averages.
const DefaultUsageWindow = 30 * time.Second

// CPUTimes is the processor time a process has consumed since it started.
type CPUTimes struct {
	User   time.Duration `json:"user" yaml:"user"`
	System time.Duration `json:"system" yaml:"system"`
}

// Total returns user plus system time.
func (c CPUTimes) Total() time.Duration {
	return c.User + c.System
}

// LogicalProcessorCount returns the number of logical processors on the
// machine, which bounds the indices ApplyCPUSet accepts.
func LogicalProcessorCount() (int, error) {
	n, err := cpu.CountsWithContext(context.Background(), true)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid logical processor count %d", n)
	}
	return n, nil
}

// normalizeCPUSet returns cpus sorted without duplicates, or an error for an
// index outside [0, count).
func normalizeCPUSet(cpus []int, count int) ([]int, error) {
	set := slices.Clone(cpus)
	for _, c := range set {
		if c < 0 || c >= count {
			return nil, fmt.Errorf("logical processor %d out of range [0, %d)", c, count)
		}
	}
	slices.Sort(set)
	return slices.Compact(set), nil
}

type usageSample struct {
	at    time.Time
	total time.Duration
}

// UsageSampler turns successive CPUTimes readings of one process into an
// average utilization over a sliding window. It is not safe for concurrent
// use.
type UsageSampler struct {
	window  time.Duration
	cpus    int
	now     func() time.Time
	samples []usageSample
}

// NewUsageSampler returns a sampler averaging over window, normalized by
// the given number of logical processors.
func NewUsageSampler(window time.Duration, logicalProcessors int) *UsageSampler {
	return &UsageSampler{
		window: window,
		cpus:   max(logicalProcessors, 1),
		now:    time.Now,
	}
}

// Add records t and returns the average utilization since the oldest sample
// still inside the window: 0 for an idle process, 1 for one that kept every
// logical processor busy.
func (s *UsageSampler) Add(t CPUTimes) float64 {
	now := s.now()

	drop := 0
	for drop < len(s.samples) && now.Sub(s.samples[drop].at) > s.window {
		drop++
	}
	s.samples = append(s.samples[drop:], usageSample{at: now, total: t.Total()})

	first := s.samples[0]
	busy := t.Total() - first.total
	elapsed := now.Sub(first.at)
	if busy <= 0 || elapsed <= 0 {
		return 0
	}
	return float64(busy) / float64(elapsed) / float64(s.cpus)
}
