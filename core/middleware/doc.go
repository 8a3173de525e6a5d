// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation via X-API-Key or a Bearer token.
//   - rayid: a unique Request ID (RayID) for every request, stored in the
//     context and echoed in the X-Ray-ID response header for tracing.
//
// Register rayid first so every later log line carries the id.
package middleware
