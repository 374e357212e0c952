package browser

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dimchansky/utfbom"

	"olx-listings-parser/internal/observability"
)

// SnapshotLoader replays a saved page, such as an earlier debug artifact.
// The URL passed to Load is only logged.
type SnapshotLoader struct {
	path   string
	logger *observability.Logger
}

func NewSnapshotLoader(path string, logger *observability.Logger) *SnapshotLoader {
	return &SnapshotLoader{path: path, logger: logger}
}

func (l *SnapshotLoader) Load(_ context.Context, url string) (Session, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open snapshot: %w", ErrNavigation, err)
	}
	defer func() { _ = file.Close() }()

	body, err := io.ReadAll(utfbom.SkipOnly(file))
	if err != nil {
		return nil, fmt.Errorf("%w: read snapshot: %w", ErrNavigation, err)
	}
	l.logger.Info("Loaded snapshot", "path", l.path, "url", url, "bytes", len(body))

	return staticSession(string(body))
}
