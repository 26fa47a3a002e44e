// Package storage provides an S3-compatible object store for generated
// documents. Quote and invoice PDFs land here and are served back with
// short-lived presigned URLs.
package storage

import (
	"context"
	"io"
	"time"
)

// PresignedURL is a time-limited link to a stored object.
type PresignedURL struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DocumentStore is the interface the invoice and quote modules use. A nil
// implementation means storage is not configured; callers then return the
// PDF inline instead of a link.
type DocumentStore interface {
	// UploadPDF stores PDF bytes under the bucket and key, overwriting any
	// previous version of the same document.
	UploadPDF(ctx context.Context, bucket, fileKey string, data []byte) error

	// GenerateDownloadURL creates a presigned URL for a stored document.
	GenerateDownloadURL(ctx context.Context, bucket, fileKey string) (*PresignedURL, error)

	// DownloadFile streams a stored document. The caller closes the reader.
	DownloadFile(ctx context.Context, bucket, fileKey string) (io.ReadCloser, error)

	// EnsureBucketExists creates the bucket if it does not exist.
	EnsureBucketExists(ctx context.Context, bucket string) error
}
