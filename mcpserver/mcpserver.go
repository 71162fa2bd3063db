// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package mcpserver exposes process queries as Model Context Protocol tools.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/jongio/procinfo/logutil"
	"github.com/jongio/procinfo/metrics"
	"github.com/jongio/procinfo/procutil"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/time/rate"
)

// Tool names.
const (
	ToolQueryProcess   = "query_process"
	ToolProcessRunning = "process_running"
)

// Options configures a Server.
type Options struct {
	Name            string
	Version         string
	MaxPathCapacity int
	// RateLimit is the sustained number of tool calls per second; Burst is
	// the bucket size.
	RateLimit float64
	Burst     int
	// Recorder, when non-nil, records every query.
	Recorder *metrics.Recorder
}

// Server serves the process tools over MCP.
type Server struct {
	mcp     *server.MCPServer
	query   metrics.QueryFunc
	running func(pid int) bool
	limiter *rate.Limiter
	maxPath int
	log     *logutil.ComponentLogger
}

// New creates a Server with both tools registered.
func New(opts Options) *Server {
	query := metrics.QueryFunc(procutil.Query)
	if opts.Recorder != nil {
		query = opts.Recorder.Wrap(query)
	}

	s := &Server{
		mcp:     server.NewMCPServer(opts.Name, opts.Version, server.WithToolCapabilities(false)),
		query:   query,
		running: procutil.IsProcessRunning,
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimit), opts.Burst),
		maxPath: opts.MaxPathCapacity,
		log:     logutil.NewLogger("mcp"),
	}

	s.mcp.AddTool(mcp.NewTool(ToolQueryProcess,
		mcp.WithDescription("Return the executable image path, name and creation time of a process"),
		mcp.WithNumber("pid", mcp.Required(), mcp.Description("Process identifier")),
		mcp.WithNumber("maxPathCapacity", mcp.Description("Upper bound on the image path length in native units")),
	), s.handleQuery)

	s.mcp.AddTool(mcp.NewTool(ToolProcessRunning,
		mcp.WithDescription("Report whether a process can be opened for limited query access"),
		mcp.WithNumber("pid", mcp.Required(), mcp.Description("Process identifier")),
	), s.handleRunning)

	return s
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves MCP on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) handleQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.checkRateLimit(ToolQueryProcess); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := getArgsMap(request)
	pid, err := getIntParam(args, "pid")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	maxPath := s.maxPath
	if _, ok := args["maxPathCapacity"]; ok {
		if maxPath, err = getIntParam(args, "maxPathCapacity"); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	log := s.log.WithOperation(ToolQueryProcess).WithPID(pid)
	info, err := s.query(pid, maxPath)
	if err != nil {
		kind := metrics.Result(err)
		log.Debug("query failed", "kind", kind, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", kind, err)), nil
	}

	log.Debug("query succeeded", "image", info.ImagePath)
	return marshalToolResult(info)
}

func (s *Server) handleRunning(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.checkRateLimit(ToolProcessRunning); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	pid, err := getIntParam(getArgsMap(request), "pid")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return marshalToolResult(map[string]interface{}{
		"pid":     pid,
		"running": s.running(pid),
	})
}

func (s *Server) checkRateLimit(tool string) error {
	if !s.limiter.Allow() {
		s.log.WithOperation(tool).Warn("rate limit exceeded")
		return fmt.Errorf("rate limit exceeded for tool %q, please wait before retrying", tool)
	}
	return nil
}
