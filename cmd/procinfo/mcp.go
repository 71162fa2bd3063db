// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jongio/procinfo/logutil"
	"github.com/jongio/procinfo/mcpserver"
	"github.com/jongio/procinfo/metrics"
	"github.com/jongio/procinfo/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newMCPCommand(opts *rootOptions) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve process query tools over the Model Context Protocol on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if cmd.Flags().Changed("metrics-addr") {
				cfg.MCP.MetricsAddr = metricsAddr
			}
			log := logutil.NewLogger("mcp")

			reg := prometheus.NewRegistry()
			srv := mcpserver.New(mcpserver.Options{
				Name:            "procinfo",
				Version:         version.Version,
				MaxPathCapacity: cfg.MaxPathCapacity,
				RateLimit:       cfg.MCP.RateLimit,
				Burst:           cfg.MCP.Burst,
				Recorder:        metrics.NewRecorder(reg),
			})

			if cfg.MCP.MetricsAddr != "" {
				ms := metrics.NewServer(cfg.MCP.MetricsAddr, reg)
				go func() {
					log.Info("serving metrics", "addr", cfg.MCP.MetricsAddr)
					if err := ms.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						log.Error("metrics server failed", "error", err)
					}
				}()
				defer func() {
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = ms.Shutdown(ctx)
				}()
			}

			log.Info("serving MCP tools on stdio")
			return srv.ServeStdio()
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	return cmd
}
