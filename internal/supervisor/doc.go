// Gamegraph - Social Game Interest Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gamegraph

/*
Package supervisor runs Gamegraph's long-lived services under a suture v4 tree.

The tree has two layers so a failing engine build never takes the HTTP
listener down with it:

	gamegraph (root)
	├── data-layer
	│   └── engine-service   snapshot load, optional crawl, build, publish
	└── api-layer
	    └── http-server

Restarts follow suture's failure accounting (threshold, decay, backoff).
Supervisor events are logged through sutureslog, bridged to zerolog by
logging.SlogHandler.

Service implementations live in the services subpackage.
*/
package supervisor
