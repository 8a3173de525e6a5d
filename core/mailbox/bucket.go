package mailbox

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"mailrecon/core/reconcile"
	"mailrecon/core/storage"

	"github.com/minio/minio-go/v7"
)

// BucketSource reads message objects stored under a bucket prefix.
type BucketSource struct {
	client storage.Client
	bucket string
	prefix string
}

// NewBucketSource returns a source for bucket/prefix.
func NewBucketSource(client storage.Client, bucket, prefix string) *BucketSource {
	return &BucketSource{client: client, bucket: bucket, prefix: prefix}
}

// Name returns the s3:// location.
func (s *BucketSource) Name() string {
	return "s3://" + s.bucket + "/" + s.prefix
}

// Load lists the prefix recursively and parses .eml and .mbox objects in
// key order. IDs are the object keys.
func (s *BucketSource) Load(ctx context.Context) ([]reconcile.Item, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("checking bucket %s: %w", s.bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", s.bucket)
	}

	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: s.prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("listing %s: %w", s.Name(), obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		if isMessageFile(obj.Key) || isMbox(obj.Key) {
			keys = append(keys, obj.Key)
		}
	}
	sort.Strings(keys)

	var items []reconcile.Item
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return items, err
		}
		loaded, err := s.loadObject(ctx, key)
		if err != nil {
			return items, err
		}
		items = append(items, loaded...)
	}
	return items, nil
}

func (s *BucketSource) loadObject(ctx context.Context, key string) ([]reconcile.Item, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", key, err)
	}
	defer obj.Close()

	if isMbox(key) {
		return ReadMbox(obj, key, key), nil
	}
	folder := strings.TrimPrefix(path.Dir(strings.TrimPrefix(key, s.prefix)), "/")
	if folder == "." {
		folder = ""
	}
	rec, perr := ParseMessage(obj)
	return []reconcile.Item{{ID: key, Record: rec, SourceFile: key, FolderPath: folder, Err: perr}}, nil
}
