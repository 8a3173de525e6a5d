// Package mocks provides a testify mock of storage.Client plus helpers for
// stubbing mailbox buckets.
package mocks

import (
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of storage.Client.
type Client struct {
	mock.Mock
}

func (m *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *Client) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return m.Called(ctx, bucketName, opts).Error(0)
}

func (m *Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

// GetObject returns the stubbed body; a nil first return value means no object.
func (m *Client) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	body, _ := args.Get(0).(io.ReadCloser)
	return body, args.Error(1)
}

// ListObjects returns the stubbed channel, or a closed one when none was set.
func (m *Client) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	args := m.Called(ctx, bucketName, opts)
	if ch, ok := args.Get(0).(<-chan minio.ObjectInfo); ok {
		return ch
	}
	return Objects()
}

// Objects returns a closed, buffered listing of the given keys.
func Objects(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		ch <- minio.ObjectInfo{Key: key, Size: 0}
	}
	close(ch)
	return ch
}

// Body wraps a raw message as an object body.
func Body(raw string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(raw))
}

// StubMessages stubs a bucket listing prefix with one object per key,
// each served from messages.
func (m *Client) StubMessages(bucket, prefix string, messages map[string]string, keys ...string) {
	m.On("ListObjects", mock.Anything, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}).
		Return(Objects(keys...))
	for key, raw := range messages {
		m.On("GetObject", mock.Anything, bucket, key, mock.Anything).Return(Body(raw), nil)
	}
}
