package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"orderhub/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store stores order attachments and production images in S3.
//
// Supported env vars:
//   - S3_BUCKET (required)
//   - S3_PUBLIC_BASE_URL (optional; default https://<bucket>.s3.amazonaws.com)
//
// Objects are uploaded publicly addressable under the base URL; the returned
// URL is what gets persisted on the order.
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

var _ interfaces.IBlobStore = (*S3Store)(nil)

func NewS3Store(cfg aws.Config, bucket, baseURL string) *S3Store {
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
	}
	return &S3Store{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: baseURL,
	}
}

func (s *S3Store) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := s.baseURL + "/" + key
	log.Printf("[storage][s3] uploaded key=%s size=%d", key, len(data))
	return url, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}
