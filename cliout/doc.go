// Package cliout provides structured output formatting for CLI commands with
// cross-platform terminal support and multiple output formats.
//
// # Features
//
//   - Multiple output formats (default human-readable, JSON and YAML)
//   - ANSI colors, disabled automatically when stdout is not a terminal
//   - Unicode symbols with ASCII fallbacks for legacy terminals
//   - Label/value pairs and simple tables
//
// # Basic Usage
//
//	cliout.Success("Process %d is running", pid)
//	cliout.Error("Process %d: %v", pid, err)
//	cliout.Label("Image", info.ImagePath)
//
// # Output Formats
//
// Set the output format using SetFormat:
//
//	if err := cliout.SetFormat("json"); err != nil {
//	    log.Fatal(err)
//	}
//
// Print renders data as JSON or YAML in those formats and calls the
// formatter function in the default format:
//
//	err := cliout.Print(results, func() {
//	    for _, r := range results {
//	        cliout.Label("PID", strconv.Itoa(r.PID))
//	    }
//	})
package cliout
