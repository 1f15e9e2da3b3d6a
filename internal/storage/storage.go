package storage

import (
	"context"
	"time"
)

// ObjectInfo represents metadata for a stored snapshot object.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectStorage captures the minimal S3-compatible operations the digest
// exporter needs.
type ObjectStorage interface {
	UploadObject(ctx context.Context, key string, contentType string, data []byte) error
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
}
