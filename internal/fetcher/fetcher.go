package fetcher

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"olx-listings-parser/internal/config"
	"olx-listings-parser/internal/observability"
)

type Fetcher struct {
	client *http.Client
	cfg    *config.Config
	logger *observability.Logger
}

type FetchResponse struct {
	StatusCode int
	Body       []byte
	URL        string
}

func NewFetcher(cfg *config.Config, logger *observability.Logger) *Fetcher {
	client := &http.Client{
		Timeout: cfg.GetTotalTimeout(),
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &Fetcher{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Fetch выполняет один GET-запрос без повторов.
// Ответ не из диапазона 2xx возвращается как ошибка.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string) (*FetchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	req.Header.Set("User-Agent", f.cfg.HTTP.UserAgent)
	if f.cfg.HTTP.AcceptLanguage != "" {
		req.Header.Set("Accept-Language", f.cfg.HTTP.AcceptLanguage)
	}
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			f.logger.Warn("Failed to close response body", "error", err.Error())
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	reader := resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer func() { _ = gzipReader.Close() }()
		reader = gzipReader
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("Response received",
		"content_encoding", resp.Header.Get("Content-Encoding"),
		"content_type", resp.Header.Get("Content-Type"),
		"body_bytes", len(body),
	)

	return &FetchResponse{
		StatusCode: resp.StatusCode,
		Body:       body,
		URL:        resp.Request.URL.String(),
	}, nil
}
