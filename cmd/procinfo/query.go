// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"fmt"
	"strconv"

	"github.com/jongio/procinfo/cliout"
	"github.com/jongio/procinfo/logutil"
	"github.com/jongio/procinfo/metrics"
	"github.com/jongio/procinfo/procutil"
	"github.com/spf13/cobra"
)

// queryResult is the printed form of one procutil.Result.
type queryResult struct {
	PID   int                   `json:"pid" yaml:"pid"`
	Info  *procutil.ProcessInfo `json:"info,omitempty" yaml:"info,omitempty"`
	Error *queryError           `json:"error,omitempty" yaml:"error,omitempty"`
}

type queryError struct {
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
}

func newQueryCommand(opts *rootOptions) *cobra.Command {
	var maxPath, concurrency int

	cmd := &cobra.Command{
		Use:   "query PID...",
		Short: "Print the image path and creation time of one or more processes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pids, err := parsePIDs(args)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("max-path") {
				maxPath = opts.cfg.MaxPathCapacity
			}
			if !cmd.Flags().Changed("concurrency") {
				concurrency = opts.cfg.Concurrency
			}

			log := logutil.NewLogger("query")
			log.Debug("querying processes", "count", len(pids), "maxPath", maxPath, "concurrency", concurrency)

			results := procutil.QueryMany(cmd.Context(), pids, maxPath, concurrency)
			out := make([]queryResult, 0, len(results))
			failed := 0
			for _, r := range results {
				qr := queryResult{PID: r.PID, Info: r.Info}
				if r.Err != nil {
					failed++
					qr.Error = &queryError{Kind: metrics.Result(r.Err), Message: r.Err.Error()}
					log.WithPID(r.PID).Debug("query failed", "kind", qr.Error.Kind, "error", r.Err)
				}
				out = append(out, qr)
			}

			if err := cliout.Print(out, func() { printResults(out) }); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d queries failed", failed, len(pids))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxPath, "max-path", 0, "Maximum image path length in native units (default from config)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Maximum concurrent queries (default from config)")
	return cmd
}

func printResults(results []queryResult) {
	if len(results) == 1 {
		printDetail(results[0])
		return
	}

	rows := make([]cliout.TableRow, 0, len(results))
	var failed []queryResult
	for _, r := range results {
		row := cliout.TableRow{"PID": strconv.Itoa(r.PID)}
		if r.Error != nil {
			row["STATUS"] = r.Error.Kind
			failed = append(failed, r)
		} else {
			row["NAME"] = r.Info.Name
			row["CREATED"] = r.Info.CreationTime.String()
			row["STATUS"] = "ok"
		}
		rows = append(rows, row)
	}
	cliout.Table([]string{"PID", "NAME", "CREATED", "STATUS"}, rows)

	if len(failed) > 0 {
		cliout.Newline()
	}
	for _, r := range failed {
		printFailure(r)
	}
}

func printDetail(r queryResult) {
	if r.Error != nil {
		printFailure(r)
		return
	}
	cliout.Success("%s (PID %d)", r.Info.Name, r.PID)
	cliout.Label("Image", r.Info.ImagePath)
	cliout.Label("Created", r.Info.CreationTime.String())
}

// printFailure warns for processes that exist but could not be fully read,
// and reports the rest as errors.
func printFailure(r queryResult) {
	if existingProcessFailure(r.Error.Kind) {
		cliout.Warning("PID %d: %s: %s", r.PID, r.Error.Kind, r.Error.Message)
		return
	}
	cliout.Error("PID %d: %s: %s", r.PID, r.Error.Kind, r.Error.Message)
}

func existingProcessFailure(kind string) bool {
	return kind == procutil.KindImageQueryFailed.String() ||
		kind == procutil.KindMetadataUnavailable.String()
}

func parsePIDs(args []string) ([]int, error) {
	pids := make([]int, 0, len(args))
	for _, a := range args {
		pid, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid PID %q: %w", a, err)
		}
		pids = append(pids, pid)
	}
	return pids, nil
}
