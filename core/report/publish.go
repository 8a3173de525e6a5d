package report

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"mailrecon/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
)

// Publisher uploads documents to a bucket.
type Publisher struct {
	client storage.Client
	bucket string
	region string
}

// NewPublisher returns a publisher writing to bucket.
func NewPublisher(client storage.Client, bucket, region string) *Publisher {
	return &Publisher{client: client, bucket: bucket, region: region}
}

// Publish stores doc under key, creating the bucket on first use, and
// returns its s3:// location.
func (p *Publisher) Publish(ctx context.Context, key string, doc *Document) (string, error) {
	if err := storage.EnsureBucket(ctx, p.client, p.bucket, p.region); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		return "", fmt.Errorf("encoding %s: %w", key, err)
	}

	_, err := p.client.PutObject(ctx, p.bucket, key, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}
	return "s3://" + p.bucket + "/" + key, nil
}

// WriteFile stores doc at path on fs, creating parent directories.
func WriteFile(fs afero.Fs, path string, doc *Document) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := doc.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
