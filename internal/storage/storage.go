package storage

import "context"

// ObjectInfo represents metadata for a remote file/object.
type ObjectInfo struct {
	Key  string
	Size int64
}

// ObjectStorage captures the minimal S3-compatible operations the report
// exporter needs.
type ObjectStorage interface {
	UploadObject(ctx context.Context, key string, data []byte, contentType string) error
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
}

// NoopStorage discards uploads; used when no bucket is configured.
type NoopStorage struct{}

func (NoopStorage) UploadObject(ctx context.Context, key string, data []byte, contentType string) error {
	return nil
}

func (NoopStorage) ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	return nil, nil
}

var _ ObjectStorage = NoopStorage{}
