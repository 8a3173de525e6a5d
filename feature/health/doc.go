// Package health reports whether the collaborators of the reconcile API are
// usable: the report bucket and, when configured, the run history tables.
//
// Routes:
//
//	GET  /health          combined report, 503 when any check fails
//	GET  /health/storage  bucket check
//	POST /health/storage  creates the bucket when it is missing
//	GET  /health/database history schema check
package health
