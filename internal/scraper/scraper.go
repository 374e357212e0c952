package scraper

import (
	"strings"

	"olx-listings-parser/internal/observability"
)

// TextCleaner normalizes element text before it is kept.
type TextCleaner interface {
	Clean(string) string
}

type Scraper struct {
	selectors *Selectors
	clean     func(string) string
	logger    *observability.Logger
}

// Result describes one extraction pass over a page.
type Result struct {
	Titles        Field
	Prices        Field
	TitleSelector string
	PriceSelector string
	Containers    int
	Fallback      bool
	Listings      []Listing
}

func NewScraper(selectors *Selectors, cleaner TextCleaner, logger *observability.Logger) *Scraper {
	clean := defaultClean
	if cleaner != nil {
		clean = cleaner.Clean
	}
	if logger == nil {
		logger = observability.NewNop()
	}
	return &Scraper{
		selectors: selectors,
		clean:     clean,
		logger:    logger,
	}
}

// Extract resolves titles and prices from the page, falling back to
// per-container extraction when either column comes back empty, and pairs
// the two columns into listings.
func (s *Scraper) Extract(page Page) *Result {
	res := &Result{}

	res.Titles, res.TitleSelector = s.ResolveField(page, s.selectors.TitleSelectors)
	if res.TitleSelector != "" {
		s.logger.Info("Found titles", "count", len(res.Titles), "selector", res.TitleSelector)
	}

	res.Prices, res.PriceSelector = s.ResolveField(page, s.selectors.PriceSelectors)
	if res.PriceSelector != "" {
		s.logger.Info("Found prices", "count", len(res.Prices), "selector", res.PriceSelector)
	}

	if len(res.Titles) == 0 || len(res.Prices) == 0 {
		s.logger.Info("Trying container fallback")
		titles, prices := s.ExtractContainers(page)
		res.Containers = len(titles)
		if res.Containers > 0 {
			res.Titles, res.Prices = titles, prices
			res.Fallback = true
		}
	}

	s.logger.Info("Extraction finished", "titles", len(res.Titles), "prices", len(res.Prices), "fallback", res.Fallback)
	if !res.Fallback && len(res.Titles) != len(res.Prices) {
		s.logger.Debug("Columns differ in length, pairing by position",
			"titles", len(res.Titles),
			"prices", len(res.Prices),
		)
	}

	res.Listings = Pair(res.Titles, res.Prices)
	return res
}

// ExtractContainers finds the listing containers and resolves one title and
// one price inside each. Both returned fields always have one entry per
// container; unresolved entries are Missing.
func (s *Scraper) ExtractContainers(page Page) (Field, Field) {
	if len(s.selectors.Containers) == 0 {
		return Field{}, Field{}
	}

	union := strings.Join(s.selectors.Containers, ", ")
	containers, err := page.QueryAll(union)
	if err != nil {
		s.logger.Warn("Container query failed", "selector", union, "error", err.Error())
		return Field{}, Field{}
	}
	if len(containers) == 0 {
		s.logger.Info("No listing containers found", "selector", union)
		return Field{}, Field{}
	}
	s.logger.Info("Found listing containers", "count", len(containers))

	titles := make(Field, 0, len(containers))
	prices := make(Field, 0, len(containers))
	for _, container := range containers {
		titles = append(titles, s.resolveOne(container, s.selectors.ContainerTitles))
		prices = append(prices, s.resolveOne(container, s.selectors.ContainerPrices))
	}
	return titles, prices
}
