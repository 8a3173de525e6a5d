// Package storage wraps the MinIO client for S3-compatible object storage.
//
// Mailbox exports can live in a bucket (one object per .eml, or whole .mbox
// files), and operation reports can be published back to one. The Client
// interface covers exactly those needs and is mocked in core/storage/mocks.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	for obj := range client.ListObjects(ctx, "mailboxes", minio.ListObjectsOptions{Prefix: "2023/", Recursive: true}) {
//	    ...
//	}
package storage
