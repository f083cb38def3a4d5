// Package timeouts defines shared timeout constants used across commands.
// Centralizing these values prevents drift between commands and makes the
// durations discoverable.
package timeouts

import "time"

// ReadHeader limits how long the preview server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the preview server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// RebuildDebounce is the quiet period after the last content change before
// the preview server rebuilds the site.
const RebuildDebounce = 250 * time.Millisecond

// Deploy caps a single rsync transfer to the remote host.
const Deploy = 5 * time.Minute
