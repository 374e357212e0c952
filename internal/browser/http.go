package browser

import (
	"context"
	"fmt"

	"olx-listings-parser/internal/fetcher"
	"olx-listings-parser/internal/observability"
)

// HTTPLoader загружает HTML без выполнения скриптов.
// Используется, когда rod отключён.
type HTTPLoader struct {
	fetcher *fetcher.Fetcher
	logger  *observability.Logger
}

func NewHTTPLoader(f *fetcher.Fetcher, logger *observability.Logger) *HTTPLoader {
	return &HTTPLoader{fetcher: f, logger: logger}
}

func (l *HTTPLoader) Load(ctx context.Context, url string) (Session, error) {
	l.logger.Info("Fetching page", "url", url)
	resp, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNavigation, url, err)
	}
	l.logger.Info("Fetched page", "url", resp.URL, "bytes", len(resp.Body))

	return staticSession(string(resp.Body))
}
