package invoice

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// nullStore drops artifacts. Used when no artifact backend is configured;
// orders simply carry no artifact reference until a retry against a real
// store.
type nullStore struct {
	logger zerolog.Logger
}

// NewNullStore creates an artifact store that rejects every upload.
func NewNullStore(logger zerolog.Logger) ArtifactStore {
	return &nullStore{logger: logger.With().Str("component", "null-artifact-store").Logger()}
}

func (s *nullStore) Upload(ctx context.Context, path string, data []byte) (string, error) {
	s.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("artifact upload skipped, no backend configured")
	return "", fmt.Errorf("no artifact store configured")
}
