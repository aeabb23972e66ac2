// Package export publishes rendered wizard results to blob storage.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/genaidss/genaidss/pkg/config"
)

// Sink abstracts blob storage for exported results.
type Sink interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// LocalSink implements Sink using the local filesystem.
// Useful for development and the single-user CLI.
type LocalSink struct {
	BaseDir string
}

// NewLocalSink creates a LocalSink rooted at the given directory.
func NewLocalSink(baseDir string) *LocalSink {
	return &LocalSink{BaseDir: baseDir}
}

func (s *LocalSink) path(key string) string {
	return filepath.Join(s.BaseDir, filepath.FromSlash(key))
}

// Put writes a blob under the sink's base directory.
func (s *LocalSink) Put(ctx context.Context, key string, data []byte, contentType string) error {
	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Get reads a blob back.
func (s *LocalSink) Get(ctx context.Context, key string) ([]byte, error) {
	return os.ReadFile(s.path(key))
}

// NewSink builds the sink selected by cfg.Export.Sink.
func NewSink(ctx context.Context, cfg *config.Config) (Sink, error) {
	ec := cfg.Export
	switch ec.Sink {
	case "", "local":
		return NewLocalSink(config.ExportDir(cfg)), nil
	case "s3":
		if ec.Bucket == "" {
			return nil, fmt.Errorf("export sink s3 requires a bucket")
		}
		return NewS3Sink(ctx, S3Config{
			Bucket:    ec.Bucket,
			Region:    ec.Region,
			Endpoint:  ec.Endpoint,
			AccessKey: ec.AccessKey,
			SecretKey: ec.SecretKey,
		})
	case "gcs":
		if ec.Bucket == "" {
			return nil, fmt.Errorf("export sink gcs requires a bucket")
		}
		return NewGCSSink(ctx, ec.Bucket)
	default:
		return nil, fmt.Errorf("unknown export sink %q (want local, s3 or gcs)", ec.Sink)
	}
}
