// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

// Lifecycle is called by a host when it loads and unloads the query
// facility. The package keeps no process-wide state, so nothing here is
// required for Query to work.
type Lifecycle interface {
	Attach() error
	Detach() error
}

// NopLifecycle is a Lifecycle that does nothing.
type NopLifecycle struct{}

// Attach implements Lifecycle.
func (NopLifecycle) Attach() error { return nil }

// Detach implements Lifecycle.
func (NopLifecycle) Detach() error { return nil }
