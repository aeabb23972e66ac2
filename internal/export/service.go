package export

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"go.uber.org/zap"

	"github.com/genaidss/genaidss/pkg/scoring"
	"github.com/genaidss/genaidss/pkg/surface"
)

// Artifact names written per session.
const (
	ResultsCSV  = "results.csv"
	ResultsJSON = "results.json"
	SummaryMD   = "summary.md"
)

// Receipt lists the keys written by a Publish call.
type Receipt struct {
	SessionID string   `json:"session_id"`
	Keys      []string `json:"keys"`
}

// Service renders reports and stores them in a Sink.
type Service struct {
	sink   Sink
	prefix string
	logger *zap.Logger
}

// NewService creates an export service. A nil logger is replaced by a no-op.
func NewService(sink Sink, prefix string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sink: sink, prefix: prefix, logger: logger}
}

// Key returns the storage key for an artifact of a session.
func (s *Service) Key(sessionID, name string) string {
	return path.Join(s.prefix, sessionID, name)
}

// Publish renders the report as CSV, JSON and a markdown summary and
// writes each under <prefix>/<sessionID>/.
func (s *Service) Publish(ctx context.Context, sessionID string, report *scoring.Report) (*Receipt, error) {
	if report == nil {
		return nil, fmt.Errorf("nothing to export: no report")
	}
	if sessionID == "" {
		return nil, fmt.Errorf("nothing to export: empty session id")
	}

	artifacts := []struct {
		name        string
		contentType string
		renderer    surface.Renderer
	}{
		{ResultsCSV, "text/csv", &surface.CSVRenderer{WithRatings: true, WithWeights: true}},
		{ResultsJSON, "application/json", &surface.JSONRenderer{}},
		{SummaryMD, "text/markdown", &surface.MarkdownRenderer{}},
	}

	receipt := &Receipt{SessionID: sessionID}
	for _, a := range artifacts {
		var buf bytes.Buffer
		if err := a.renderer.Render(&buf, report); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", a.name, err)
		}
		key := s.Key(sessionID, a.name)
		if err := s.sink.Put(ctx, key, buf.Bytes(), a.contentType); err != nil {
			s.logger.Warn("export failed", zap.String("session", sessionID), zap.String("key", key), zap.Error(err))
			return nil, fmt.Errorf("storing %s: %w", a.name, err)
		}
		receipt.Keys = append(receipt.Keys, key)
	}

	s.logger.Info("results exported",
		zap.String("session", sessionID),
		zap.Int("artifacts", len(receipt.Keys)),
	)
	return receipt, nil
}
