// Package gcs persists the labeled dataset to Google Cloud Storage.
package gcs

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"VideoClassifier/internal/ports"
)

// Uploader implements ports.BlobStore on top of a GCS bucket.
type Uploader struct {
	client *storage.Client
	bucket string
}

var _ ports.BlobStore = (*Uploader)(nil)

// NewUploader authenticates with an in-memory service-account JSON blob.
// Malformed credentials abort the run here; no meaningful partial progress
// exists without a working sink.
func NewUploader(ctx context.Context, credentialsJSON []byte, bucket string) (*Uploader, error) {
	client, err := storage.NewClient(ctx, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &Uploader{client: client, bucket: bucket}, nil
}

// Upload writes the blob under the given object name with the given content
// type. The write is atomic from the reader's point of view: the object only
// becomes visible after Close succeeds.
func (u *Uploader) Upload(ctx context.Context, name, contentType string, data []byte) error {
	w := u.client.Bucket(u.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("write object %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close object %s: %w", name, err)
	}
	return nil
}

// Close releases the underlying client.
func (u *Uploader) Close() error {
	return u.client.Close()
}
