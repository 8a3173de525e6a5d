// Package mailbox turns raw email storage into reconcile items.
//
// It is the extraction boundary in front of the matching engine: messages
// are parsed with go-message, MBOX files are split with go-mbox, and the
// results are delivered as reconcile.Item values. A message that cannot be
// parsed is still delivered, carrying its error, so nothing is dropped
// silently.
//
// # Sources
//
//   - FileSource: a directory tree of .eml files, a single .eml, or an .mbox file
//   - BucketSource: the same layouts stored under an S3/MinIO prefix
//   - IMAPSource: one folder of an IMAP account
//
// Open picks the right source for a location string:
//
//	src, err := mailbox.Open("s3://archive/2023/", deps)
//	items, err := src.Load(ctx)
package mailbox
