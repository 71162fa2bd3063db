//go:build !windows
// +build !windows

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package testutil

import (
	"context"
	"os"

	"github.com/shirou/gopsutil/v4/process"
)

func openHandleCount() (int, error) {
	ctx := context.Background()
	p, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	n, err := p.NumFDsWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
