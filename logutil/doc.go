// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package logutil provides a structured logging abstraction built on top of slog.
//
// # Basic Usage
//
//	// Initialize logging (typically in main.go)
//	logutil.SetupLogger(debug, structured)
//
//	// Raise or lower the threshold, e.g. from a --log-level flag
//	logutil.SetLevel(logutil.ParseLevel("warn"))
//
//	logutil.Debug("configuration loaded", "output", format)
//
//	// Component-scoped logging
//	log := logutil.NewLogger("mcp").WithOperation("query_process").WithPID(pid)
//	log.Debug("tool called")
//
// # Debug Mode
//
// Debug logging can be enabled in three ways:
//   - Pass debug=true to SetupLogger
//   - Set PROCINFO_DEBUG=true environment variable
//   - Call SetLevel(LevelDebug)
//
// # Structured Logging
//
// When structured=true is passed to SetupLogger, logs are output as JSON:
//
//	{"time":"2024-01-15T10:30:00Z","level":"INFO","msg":"query completed","pid":4242}
//
// Otherwise, logs use a human-readable text format:
//
//	time=2024-01-15T10:30:00Z level=INFO msg="query completed" pid=4242
package logutil
