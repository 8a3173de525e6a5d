// Package report turns reconcile results into something people and other
// tools can read.
//
// Summarize and Summary.Render produce the terminal panel printed by the CLI:
// counts per partition, match tiers, output locations, errors and the first
// MaxWarnings warnings followed by "... and N more".
//
// NewDocument selects the partitions of a result (unique, duplicates, common,
// unique_to_a, unique_to_b, matched, non_matched) into a JSON Document, which
// WriteFile stores on a filesystem and Publisher uploads to a bucket.
package report
