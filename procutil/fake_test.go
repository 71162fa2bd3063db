// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"sync"
	"sync/atomic"
	"time"
)

// fakeBackend stands in for the OS process API and counts handle traffic.
type fakeBackend struct {
	openErr error
	path    string
	pathErr error
	created CreationTime
	timeErr error
	times   CPUTimes
	delay   time.Duration
	onOpen  func(pid int)

	// accessErr is returned by checkAccess after a successful open.
	accessErr error
	applyErr  error

	opens    atomic.Int32
	closes   atomic.Int32
	inFlight atomic.Int32
	maxIn    atomic.Int32

	mu      sync.Mutex
	sizes   []int
	applied [][]int
}

func newFakeBackend(path string) *fakeBackend {
	return &fakeBackend{path: path, created: CreationTime{raw: 1700000000000}}
}

func (b *fakeBackend) querier() *Querier {
	return &Querier{open: b.open}
}

func (b *fakeBackend) open(pid int) (sysHandle, error) {
	b.opens.Add(1)
	if b.onOpen != nil {
		b.onOpen(pid)
	}
	if b.openErr != nil {
		return nil, b.openErr
	}
	return &fakeSys{b: b}, nil
}

func (b *fakeBackend) requestedSizes() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]int(nil), b.sizes...)
}

type fakeSys struct {
	b *fakeBackend
}

func (f *fakeSys) imagePath(n int) (string, error) {
	b := f.b
	cur := b.inFlight.Add(1)
	defer b.inFlight.Add(-1)
	for {
		prev := b.maxIn.Load()
		if cur <= prev || b.maxIn.CompareAndSwap(prev, cur) {
			break
		}
	}
	if b.delay > 0 {
		time.Sleep(b.delay)
	}

	b.mu.Lock()
	b.sizes = append(b.sizes, n)
	b.mu.Unlock()

	if b.pathErr != nil {
		return "", b.pathErr
	}
	if len(b.path) >= n {
		return "", errBufferTooSmall
	}
	return b.path, nil
}

func (f *fakeSys) creationTime() (CreationTime, error) {
	if f.b.timeErr != nil {
		return CreationTime{}, f.b.timeErr
	}
	return f.b.created, nil
}

func (f *fakeSys) cpuTimes() (CPUTimes, error) {
	if f.b.timeErr != nil {
		return CPUTimes{}, f.b.timeErr
	}
	return f.b.times, nil
}

func (f *fakeSys) applyCPUSet(cpus []int, _ int) error {
	if f.b.applyErr != nil {
		return f.b.applyErr
	}
	f.b.mu.Lock()
	f.b.applied = append(f.b.applied, cpus)
	f.b.mu.Unlock()
	return nil
}

func (f *fakeSys) checkAccess() error {
	return f.b.accessErr
}

func (f *fakeSys) close() error {
	f.b.closes.Add(1)
	return nil
}
