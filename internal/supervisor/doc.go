// Horizon - Interest Graph Canvas
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/horizon

/*
Package supervisor runs Horizon's long-lived services under a suture v4 tree.

The tree has two layers below the root:

	horizon
	├── maintenance-layer   badger value-log GC, recommendation cache janitor
	└── api-layer           HTTP server

A crash in one layer restarts only that layer's services. The HTTP server
keeps answering while a failing GC pass backs off, and the reverse.

Supervisor events (service failures, backoff, restarts) are logged through
sutureslog, so they land in the same zerolog stream as the rest of the
process when the tree is built with logging.NewSlogLogger:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))
	tree.AddMaintenanceService(services.NewPeriodicService("store-gc", time.Minute, gc))
	err = tree.Serve(ctx)

Service wrappers live in the services subpackage.
*/
package supervisor
