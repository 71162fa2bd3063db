//go:build windows
// +build windows

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cpuSetEntry builds one 32-byte SYSTEM_CPU_SET_INFORMATION record.
func cpuSetEntry(id uint32, group uint16, index byte) []byte {
	e := make([]byte, 32)
	binary.LittleEndian.PutUint32(e, 32)
	binary.LittleEndian.PutUint32(e[cpuSetInfoIDOffset:], id)
	binary.LittleEndian.PutUint16(e[cpuSetInfoGroupOffset:], group)
	e[cpuSetInfoIndexOffset] = index
	return e
}

func TestParseCPUSetInformation(t *testing.T) {
	var buf []byte
	buf = append(buf, cpuSetEntry(256, 0, 0)...)
	buf = append(buf, cpuSetEntry(257, 0, 1)...)
	buf = append(buf, cpuSetEntry(320, 1, 0)...)

	ids, err := parseCPUSetInformation(buf)

	require.NoError(t, err)
	assert.Equal(t, map[int]uint32{0: 256, 1: 257, 64: 320}, ids)
}

func TestParseCPUSetInformationMalformed(t *testing.T) {
	_, err := parseCPUSetInformation(cpuSetEntry(256, 0, 0)[:10])
	assert.Error(t, err)

	bad := cpuSetEntry(256, 0, 0)
	binary.LittleEndian.PutUint32(bad, 4)
	_, err = parseCPUSetInformation(bad)
	assert.Error(t, err)

	wrongType := cpuSetEntry(256, 0, 0)
	binary.LittleEndian.PutUint32(wrongType[cpuSetInfoTypeOffset:], 7)
	_, err = parseCPUSetInformation(wrongType)
	assert.Error(t, err)
}

func TestSystemCPUSetIDsCoverProcessors(t *testing.T) {
	ids, err := systemCPUSetIDs()
	require.NoError(t, err)

	assert.Contains(t, ids, 0)
}

func TestApplyCPUSetChildProcess(t *testing.T) {
	cmd := startSleeper(t)

	err := WithHandle(cmd.Process.Pid, func(h *Handle) error {
		if err := h.ApplyCPUSet([]int{0}); err != nil {
			return err
		}
		return h.ApplyCPUSet(nil)
	})
	require.NoError(t, err)
}
