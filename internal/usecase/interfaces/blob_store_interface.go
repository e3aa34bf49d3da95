package interfaces

import "context"

// IBlobStore abstracts the opaque blob store (S3). The core hands over a
// named byte stream and keeps only the returned durable URL.

type IBlobStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (url string, err error)
	Delete(ctx context.Context, key string) error
}
