// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jongio/procinfo/cliout"
	"github.com/jongio/procinfo/logutil"
	"github.com/jongio/procinfo/procutil"
	"github.com/spf13/cobra"
)

type cpuSetResult struct {
	PID     int   `json:"pid" yaml:"pid"`
	CPUs    []int `json:"cpus" yaml:"cpus"`
	Cleared bool  `json:"cleared" yaml:"cleared"`
}

func newCPUSetCommand() *cobra.Command {
	var clearSet bool

	cmd := &cobra.Command{
		Use:   "cpuset PID [CPU...]",
		Short: "Restrict a process to a set of logical processors",
		Long: `Restrict a process to the given logical processors, numbered from 0.
Use --clear to lift a restriction applied earlier.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pids, err := parsePIDs(args[:1])
			if err != nil {
				return err
			}
			cpus, err := parseCPUs(args[1:])
			if err != nil {
				return err
			}
			switch {
			case clearSet && len(cpus) > 0:
				return errors.New("--clear takes no processors")
			case !clearSet && len(cpus) == 0:
				return errors.New("at least one processor is required unless --clear is set")
			}

			pid := pids[0]
			logutil.NewLogger("cpuset").WithPID(pid).Debug("applying cpu set", "cpus", cpus)
			if err := procutil.WithHandle(pid, func(h *procutil.Handle) error {
				return h.ApplyCPUSet(cpus)
			}); err != nil {
				return err
			}

			r := cpuSetResult{PID: pid, CPUs: cpus, Cleared: clearSet}
			return cliout.Print(r, func() {
				if r.Cleared {
					cliout.Success("Cleared the CPU set of PID %d", pid)
					return
				}
				cliout.Success("Applied CPU set %s to PID %d", joinInts(cpus), pid)
			})
		},
	}

	cmd.Flags().BoolVar(&clearSet, "clear", false, "Lift any CPU set restriction")
	return cmd
}

func parseCPUs(args []string) ([]int, error) {
	cpus := make([]int, 0, len(args))
	for _, a := range args {
		for _, part := range strings.Split(a, ",") {
			c, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, fmt.Errorf("invalid processor %q: %w", part, err)
			}
			cpus = append(cpus, c)
		}
	}
	return cpus, nil
}

func joinInts(v []int) string {
	s := make([]string, len(v))
	for i, n := range v {
		s[i] = strconv.Itoa(n)
	}
	return strings.Join(s, ",")
}
