//go:build windows
// +build windows

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetSystemCpuSetInformation = modkernel32.NewProc("GetSystemCpuSetInformation")
	procSetProcessDefaultCpuSets   = modkernel32.NewProc("SetProcessDefaultCpuSets")
)

// Layout of SYSTEM_CPU_SET_INFORMATION up to LogicalProcessorIndex.
const (
	cpuSetInfoTypeOffset  = 4
	cpuSetInfoIDOffset    = 8
	cpuSetInfoGroupOffset = 12
	cpuSetInfoIndexOffset = 14
	cpuSetInfoMinSize     = 16

	// cpuSetInformation is CpuSetInformation in CPU_SET_INFORMATION_TYPE.
	cpuSetInformation = 0
)

// systemCPUSetIDs maps each logical processor to its CPU set id.
func systemCPUSetIDs() (map[int]uint32, error) {
	if err := procGetSystemCpuSetInformation.Find(); err != nil {
		return nil, err
	}

	var size uint32
	r, _, err := procGetSystemCpuSetInformation.Call(0, 0, uintptr(unsafe.Pointer(&size)), 0, 0)
	if r == 0 && !errors.Is(err, windows.ERROR_INSUFFICIENT_BUFFER) {
		return nil, fmt.Errorf("GetSystemCpuSetInformation: %w", err)
	}
	if size == 0 {
		return nil, errors.New("GetSystemCpuSetInformation returned no data")
	}

	buf := make([]byte, size)
	r, _, err = procGetSystemCpuSetInformation.Call(
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(size),
		uintptr(unsafe.Pointer(&size)),
		0, 0)
	if r == 0 {
		return nil, fmt.Errorf("GetSystemCpuSetInformation: %w", err)
	}
	return parseCPUSetInformation(buf[:size])
}

// parseCPUSetInformation walks a SYSTEM_CPU_SET_INFORMATION array. Logical
// processors are numbered group*64 + LogicalProcessorIndex.
func parseCPUSetInformation(buf []byte) (map[int]uint32, error) {
	ids := make(map[int]uint32)
	for off := 0; off < len(buf); {
		if len(buf)-off < cpuSetInfoMinSize {
			return nil, fmt.Errorf("truncated cpu set entry at offset %d", off)
		}
		entry := buf[off:]
		size := int(binary.LittleEndian.Uint32(entry))
		if size < cpuSetInfoMinSize || size > len(entry) {
			return nil, fmt.Errorf("invalid cpu set entry size %d at offset %d", size, off)
		}
		if typ := binary.LittleEndian.Uint32(entry[cpuSetInfoTypeOffset:]); typ != cpuSetInformation {
			return nil, fmt.Errorf("unexpected cpu set information type %d", typ)
		}
		id := binary.LittleEndian.Uint32(entry[cpuSetInfoIDOffset:])
		group := int(binary.LittleEndian.Uint16(entry[cpuSetInfoGroupOffset:]))
		index := int(entry[cpuSetInfoIndexOffset])
		ids[group*64+index] = id
		off += size
	}
	return ids, nil
}

// setProcessDefaultCpuSets applies ids to h; nil ids clears the set.
func setProcessDefaultCpuSets(h windows.Handle, ids []uint32) error {
	if err := procSetProcessDefaultCpuSets.Find(); err != nil {
		return err
	}
	var ptr uintptr
	if len(ids) > 0 {
		ptr = uintptr(unsafe.Pointer(&ids[0]))
	}
	r, _, err := procSetProcessDefaultCpuSets.Call(uintptr(h), ptr, uintptr(len(ids)))
	if r == 0 {
		return fmt.Errorf("SetProcessDefaultCpuSets: %w", err)
	}
	return nil
}
