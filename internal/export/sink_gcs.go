package export

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
)

// GCSSink implements Sink using Google Cloud Storage.
type GCSSink struct {
	client *gcs.Client
	bucket string
}

// NewGCSSink creates a GCS-backed Sink.
// It uses Application Default Credentials (works with Workload Identity, SA keys, gcloud auth).
func NewGCSSink(ctx context.Context, bucket string) (*GCSSink, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSSink{client: client, bucket: bucket}, nil
}

func (s *GCSSink) Put(ctx context.Context, key string, data []byte, contentType string) error {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("gcs write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs close %s: %w", key, err)
	}
	return nil
}

func (s *GCSSink) Get(ctx context.Context, key string) ([]byte, error) {
	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs read %s: %w", key, err)
	}
	defer r.Close()
	return io.ReadAll(r)
}

// Close releases the underlying client.
func (s *GCSSink) Close() error {
	return s.client.Close()
}
