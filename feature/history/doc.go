// Package history serves recorded reconcile runs over HTTP: a paged list,
// single runs with their matches and result document, and a schema check
// of the history tables.
package history
