// Package archive keeps a copy of every uploaded ledger document in object
// storage for later review. Archiving is best effort: the audit pipeline
// never fails because an archive write failed.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// Archiver stores the original uploaded document and returns its URI.
type Archiver interface {
	Archive(ctx context.Context, filename string, data []byte) (string, error)
}

// GCSArchiver uploads documents to a GCS bucket. It assumes Application
// Default Credentials are configured.
type GCSArchiver struct {
	bucket string
}

// NewGCSArchiver creates an archiver writing to the given bucket.
func NewGCSArchiver(bucket string) *GCSArchiver {
	return &GCSArchiver{bucket: bucket}
}

// Archive uploads the document under audits/YYYY/MM/DD/<uuid>-<filename> and
// returns the resulting gs:// URI.
func (a *GCSArchiver) Archive(ctx context.Context, filename string, data []byte) (string, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	objectName := fmt.Sprintf("audits/%s/%s-%s",
		time.Now().UTC().Format("2006/01/02"), uuid.NewString(), filename)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(a.bucket).Object(objectName).NewWriter(ctx)
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("copy document to GCS writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", a.bucket, objectName), nil
}
