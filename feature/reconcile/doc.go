// Package reconcile exposes the dedupe, compare, merge and filter
// operations over HTTP.
//
// Each request names its mailboxes either as a source location (s3://,
// imap:// or a path under the configured data directory) or as inline
// records. Loaded sources are shared between concurrent requests and kept
// for a short time; every request still builds its own index.
//
// Successful runs answer 200 with the result document, runs the engine
// rejected answer 422 with the same document, and recorded runs carry their
// history id in the X-Run-ID header.
package reconcile
