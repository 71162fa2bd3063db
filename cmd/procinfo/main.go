// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Command procinfo prints the image path and creation time of processes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jongio/procinfo/procutil"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var lc procutil.Lifecycle = procutil.NopLifecycle{}
	if err := lc.Attach(); err != nil {
		return fmt.Errorf("attach: %w", err)
	}
	defer lc.Detach()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
