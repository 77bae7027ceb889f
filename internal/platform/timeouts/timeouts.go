// Package timeouts defines shared timeout constants used by quillroom servers.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// Mutation caps a single form mutation against storage. A submission that
// outlives this budget is reported to the user as a failure.
const Mutation = 10 * time.Second
