// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"fmt"
	"time"

	"github.com/jongio/procinfo/cliout"
	"github.com/jongio/procinfo/logutil"
	"github.com/jongio/procinfo/procutil"
	"github.com/spf13/cobra"
)

type usageSample struct {
	At    time.Time         `json:"at" yaml:"at"`
	Times procutil.CPUTimes `json:"times" yaml:"times"`
	// Usage is the average over the sampler window, 0 to 1.
	Usage float64 `json:"usage" yaml:"usage"`
}

type usageResult struct {
	PID     int           `json:"pid" yaml:"pid"`
	Samples []usageSample `json:"samples" yaml:"samples"`
}

func newUsageCommand() *cobra.Command {
	var (
		interval time.Duration
		samples  int
		window   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "usage PID",
		Short: "Sample the average CPU usage of a process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pids, err := parsePIDs(args)
			if err != nil {
				return err
			}
			if samples < 1 {
				return fmt.Errorf("--samples must be at least 1, got %d", samples)
			}
			if interval <= 0 || window <= 0 {
				return fmt.Errorf("--interval and --window must be positive")
			}
			cpus, err := procutil.LogicalProcessorCount()
			if err != nil {
				return fmt.Errorf("failed to count processors: %w", err)
			}

			pid := pids[0]
			log := logutil.NewLogger("usage").WithPID(pid)
			result := usageResult{PID: pid}
			sampler := procutil.NewUsageSampler(window, cpus)
			ctx := cmd.Context()

			err = procutil.WithHandle(pid, func(h *procutil.Handle) error {
				ticker := time.NewTicker(interval)
				defer ticker.Stop()

				for i := 0; ; i++ {
					t, err := h.CPUTimes()
					if err != nil {
						return err
					}
					s := usageSample{At: time.Now(), Times: t, Usage: sampler.Add(t)}
					result.Samples = append(result.Samples, s)
					log.Debug("sampled cpu time", "total", t.Total(), "usage", s.Usage)

					if i+1 >= samples {
						return nil
					}
					select {
					case <-ctx.Done():
						return ctx.Err()
					case <-ticker.C:
					}
				}
			})
			if err != nil {
				return err
			}

			return cliout.Print(result, func() { printUsage(result, cpus) })
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Second, "Time between samples")
	cmd.Flags().IntVar(&samples, "samples", 5, "Number of samples to take")
	cmd.Flags().DurationVar(&window, "window", procutil.DefaultUsageWindow, "Window the usage is averaged over")
	return cmd
}

func printUsage(r usageResult, cpus int) {
	last := r.Samples[len(r.Samples)-1]
	cliout.Info("PID %d, %d samples across %d logical processors", r.PID, len(r.Samples), cpus)
	cliout.Label("CPU usage", fmt.Sprintf("%.1f%%", last.Usage*100))
	cliout.Label("User time", last.Times.User.String())
	cliout.Label("System time", last.Times.System.String())
}
