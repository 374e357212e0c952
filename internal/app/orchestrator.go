package app

import (
	"context"
	"errors"
	"fmt"

	"olx-listings-parser/internal/browser"
	"olx-listings-parser/internal/checksum"
	"olx-listings-parser/internal/config"
	"olx-listings-parser/internal/observability"
	"olx-listings-parser/internal/output"
	"olx-listings-parser/internal/scraper"
)

type Orchestrator struct {
	cfg     *config.Config
	logger  *observability.Logger
	loader  browser.Loader
	scraper *scraper.Scraper
	writer  *output.Writer
	hasher  *checksum.Generator
}

func NewOrchestrator(
	cfg *config.Config,
	logger *observability.Logger,
	loader browser.Loader,
	s *scraper.Scraper,
	w *output.Writer,
	h *checksum.Generator,
) *Orchestrator {
	return &Orchestrator{
		cfg:     cfg,
		logger:  logger,
		loader:  loader,
		scraper: s,
		writer:  w,
		hasher:  h,
	}
}

type RunStats struct {
	URL           string
	Titles        int
	Prices        int
	TitleSelector string
	PriceSelector string
	Containers    int
	Fallback      bool
	Records       int
	OutputPath    string
	DebugPath     string
	Fingerprint   string
	Unchanged     bool
	StoppedReason string
}

// Run loads the target page, extracts and pairs listings, and writes them.
// Navigation problems end the run with zero records rather than an error;
// only a failure to write the output is returned.
func (o *Orchestrator) Run(ctx context.Context) (*RunStats, error) {
	stats := &RunStats{URL: o.cfg.Target.URL}

	o.logger.Info("Scraping", "url", stats.URL)
	listings, err := o.extract(ctx, stats)
	if err != nil {
		o.logger.Error("Extraction failed", "url", stats.URL, "error", err.Error())
		stats.StoppedReason = err.Error()
	}

	if len(listings) == 0 {
		if stats.StoppedReason == "" {
			stats.StoppedReason = "no listings found"
		}
		if stats.DebugPath != "" {
			o.writer.PrintNoData(stats.DebugPath)
		} else {
			o.writer.PrintNoDebug(stats.StoppedReason)
		}
		return stats, nil
	}

	stats.Records = len(listings)
	stats.Fingerprint = o.hasher.RecordsHash(listings)

	prev, err := o.writer.ReadFingerprint()
	if err != nil {
		o.logger.Warn("Failed to read previous fingerprint", "error", err.Error())
	}
	stats.Unchanged = o.hasher.VerifyRecordsHash(prev, listings)

	path, err := o.writer.WriteListings(listings)
	if err != nil {
		stats.StoppedReason = fmt.Sprintf("write failed: %v", err)
		return stats, err
	}
	stats.OutputPath = path
	stats.StoppedReason = "completed"

	if stats.Unchanged {
		o.logger.Info("Listings unchanged since previous run", "fingerprint", stats.Fingerprint)
	} else if prev != "" {
		o.logger.Info("Listings changed since previous run", "previous", prev, "fingerprint", stats.Fingerprint)
	}
	if err := o.writer.WriteFingerprint(stats.Fingerprint); err != nil {
		o.logger.Warn("Failed to store fingerprint", "error", err.Error())
	}

	o.writer.PrintSummary(listings, path, stats.Fingerprint)
	return stats, nil
}

// extract holds the page session for as long as it is needed and always
// closes it. When nothing is extracted the page markup is saved first.
func (o *Orchestrator) extract(ctx context.Context, stats *RunStats) ([]scraper.Listing, error) {
	session, err := o.loader.Load(ctx, stats.URL)
	if err != nil {
		if errors.Is(err, browser.ErrNavigation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", browser.ErrNavigation, err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			o.logger.Warn("Failed to close page session", "error", closeErr.Error())
		}
	}()

	res := o.scraper.Extract(session)
	stats.Titles = len(res.Titles)
	stats.Prices = len(res.Prices)
	stats.TitleSelector = res.TitleSelector
	stats.PriceSelector = res.PriceSelector
	stats.Containers = res.Containers
	stats.Fallback = res.Fallback

	o.logger.Info("Final results",
		"titles", stats.Titles,
		"prices", stats.Prices,
		"listings", len(res.Listings),
	)

	if len(res.Listings) == 0 {
		o.logger.Info("No data found, saving page content")
		content, err := session.Content()
		if err != nil {
			return nil, fmt.Errorf("read page content: %w", err)
		}
		path, err := o.writer.WriteDebug(content)
		if err != nil {
			return nil, err
		}
		stats.DebugPath = path
		o.logger.Info("Page content saved", "path", path)
	}

	return res.Listings, nil
}
