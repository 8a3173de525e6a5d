// Package reconcile is the identity and matching engine for email collections.
//
// It derives a fingerprint for every record, indexes fingerprints for fast
// lookup, and answers "have I already seen this message?" with a graded
// certainty. Four operations are built on top of it: deduplication of one
// collection, comparison of two, merging of many, and address filtering.
//
// # Architecture
//
// 1. Fingerprint: a pure function of a Record. The content hash covers the
// lower-cased sender, the raw subject and the first 1000 characters of the
// body (or of the tag-stripped HTML body when there is no text body).
//
// 2. Index: Message-ID, content-hash and sender+subject tables plus the
// insertion order. One index belongs to one operation and one goroutine.
//
// 3. Strategy: the match engine. Tiers are tried from EXACT to LOW and the
// first hit wins:
//   - EXACT: same Message-ID, or identical content hash
//   - HIGH: same sender and normalized subject, timestamps within tolerance
//   - MEDIUM: same sender and normalized subject within a window (dedupe only)
//   - LOW: same normalized subject from any sender within a minute (dedupe only)
//
// # Concurrency
//
// Fingerprints are built on a bounded worker pool and re-sequenced into
// input order before the single-threaded reduce step touches the index, so
// results do not depend on scheduling. Cancellation is checked once per
// record through the context.
//
// # Usage Example
//
//	d := reconcile.NewDeduplicator()
//	d.Config.MinCertainty = reconcile.Medium
//	res, err := d.Process(ctx, items)
//	if err != nil {
//	    return err // cancelled
//	}
//	if !res.Success {
//	    log.Println(res.Errors)
//	}
package reconcile
