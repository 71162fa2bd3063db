// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"github.com/jongio/procinfo/cliout"
	"github.com/jongio/procinfo/procutil"
	"github.com/spf13/cobra"
)

type runningResult struct {
	PID     int  `json:"pid" yaml:"pid"`
	Running bool `json:"running" yaml:"running"`
}

func newRunningCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "running PID",
		Short: "Report whether a process is running",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pids, err := parsePIDs(args)
			if err != nil {
				return err
			}
			r := runningResult{PID: pids[0], Running: procutil.IsProcessRunning(pids[0])}
			return cliout.Print(r, func() {
				status := "not running"
				if r.Running {
					status = "running"
				}
				cliout.Label("PID", args[0])
				cliout.Label("Status", cliout.Status(status))
			})
		},
	}
}
