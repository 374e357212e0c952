package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"olx-listings-parser/internal/browser"
	"olx-listings-parser/internal/checksum"
	"olx-listings-parser/internal/config"
	"olx-listings-parser/internal/normalize"
	"olx-listings-parser/internal/observability"
	"olx-listings-parser/internal/output"
	"olx-listings-parser/internal/scraper"
)

type trackedSession struct {
	*browser.StaticPage
	closed     int
	contentErr error
}

func (s *trackedSession) Close() error {
	s.closed++
	return nil
}

func (s *trackedSession) Content() (string, error) {
	if s.contentErr != nil {
		return "", s.contentErr
	}
	return s.StaticPage.Content()
}

type fakeLoader struct {
	html       string
	err        error
	contentErr error
	session    *trackedSession
}

func (l *fakeLoader) Load(_ context.Context, _ string) (browser.Session, error) {
	if l.err != nil {
		return nil, l.err
	}
	page, err := browser.NewStaticPage(l.html)
	if err != nil {
		return nil, err
	}
	l.session = &trackedSession{StaticPage: page, contentErr: l.contentErr}
	return l.session, nil
}

func newTestOrchestrator(t *testing.T, loader browser.Loader) (*Orchestrator, *config.Config, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()

	logger := observability.NewNop()
	normalizer := normalize.NewNormalizer(cfg.Normalize)
	var console bytes.Buffer

	orch := NewOrchestrator(
		cfg,
		logger,
		loader,
		scraper.NewScraper(scraper.DefaultSelectors(), normalizer, logger),
		output.NewWriter(cfg, normalizer, &console),
		checksum.NewGenerator(),
	)
	return orch, cfg, &console
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRunWritesPairedListings(t *testing.T) {
	loader := &fakeLoader{html: `
		<ul>
			<li data-aut-id="itemBox"><span data-aut-id="itemTitle">Car Cover A</span><span data-aut-id="itemPrice">₹500</span></li>
			<li data-aut-id="itemBox"><span data-aut-id="itemTitle">Car Cover B</span><span data-aut-id="itemPrice">₹750</span></li>
		</ul>`}
	orch, cfg, console := newTestOrchestrator(t, loader)

	stats, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Records)
	assert.Equal(t, "[data-aut-id='itemTitle']", stats.TitleSelector)
	assert.Equal(t, "[data-aut-id='itemPrice']", stats.PriceSelector)
	assert.Equal(t, cfg.GetOutputPath(), stats.OutputPath)
	assert.Empty(t, stats.DebugPath)
	assert.Len(t, stats.Fingerprint, 64)
	assert.Equal(t, 1, loader.session.closed)

	assert.Equal(t, [][]string{
		{"Title", "Price"},
		{"Car Cover A", "₹500"},
		{"Car Cover B", "₹750"},
	}, readCSV(t, stats.OutputPath))

	_, err = os.Stat(cfg.GetDebugPath())
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, console.String(), "Successfully scraped 2 listings")
}

func TestRunDropsUnmatchedTitles(t *testing.T) {
	loader := &fakeLoader{html: `
		<div>
			<b data-aut-id="itemTitle">X</b><b data-aut-id="itemTitle">Y</b><b data-aut-id="itemTitle">Z</b>
			<i data-aut-id="itemPrice">₹1</i><i data-aut-id="itemPrice">₹2</i>
		</div>`}
	orch, _, _ := newTestOrchestrator(t, loader)

	stats, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Titles)
	assert.Equal(t, 2, stats.Prices)
	assert.Equal(t, [][]string{{"Title", "Price"}, {"X", "₹1"}, {"Y", "₹2"}}, readCSV(t, stats.OutputPath))
}

func TestRunNoDataWritesDebugArtifact(t *testing.T) {
	html := `<html><head></head><body><div id="app"></div></body></html>`
	loader := &fakeLoader{html: html}
	orch, cfg, console := newTestOrchestrator(t, loader)

	stats, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.Records)
	assert.Equal(t, cfg.GetDebugPath(), stats.DebugPath)
	assert.Equal(t, 1, loader.session.closed)

	data, err := os.ReadFile(stats.DebugPath)
	require.NoError(t, err)
	assert.Equal(t, html, string(data))

	_, err = os.Stat(cfg.GetOutputPath())
	assert.True(t, os.IsNotExist(err), "no data file expected")
	assert.Contains(t, console.String(), "No listings found")
}

func TestRunContainerFallbackSentinel(t *testing.T) {
	loader := &fakeLoader{html: `
		<ul>
			<li data-aut-id="itemBox"><h3>Cover One</h3><span class="price">₹500</span></li>
			<li data-aut-id="itemBox"><h3>Cover Two</h3></li>
		</ul>`}
	orch, _, _ := newTestOrchestrator(t, loader)

	stats, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, stats.Fallback)
	assert.Equal(t, 2, stats.Containers)
	assert.Equal(t, [][]string{
		{"Title", "Price"},
		{"Cover One", "₹500"},
		{"Cover Two", scraper.Sentinel},
	}, readCSV(t, stats.OutputPath))
}

func TestRunNavigationFailureIsNotFatal(t *testing.T) {
	loader := &fakeLoader{err: fmt.Errorf("%w: timeout after 60s", browser.ErrNavigation)}
	orch, cfg, console := newTestOrchestrator(t, loader)

	stats, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.Records)
	assert.Contains(t, stats.StoppedReason, "timeout after 60s")
	assert.Empty(t, stats.DebugPath)

	_, err = os.Stat(cfg.GetOutputPath())
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(cfg.GetDebugPath())
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, console.String(), "No listings found")
}

func TestRunWrapsUnclassifiedLoadErrors(t *testing.T) {
	orch, _, _ := newTestOrchestrator(t, &fakeLoader{err: errors.New("chromium missing")})

	stats := &RunStats{URL: "https://example.invalid"}
	_, err := orch.extract(context.Background(), stats)
	assert.ErrorIs(t, err, browser.ErrNavigation)
}

func TestRunIsIdempotent(t *testing.T) {
	html := `<div><p class="title">Cover</p><p class="price">₹10</p></div>`
	first, _, _ := newTestOrchestrator(t, &fakeLoader{html: html})
	second, _, _ := newTestOrchestrator(t, &fakeLoader{html: html})

	a, err := first.Run(context.Background())
	require.NoError(t, err)
	b, err := second.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint, b.Fingerprint)
	assert.Equal(t, readCSV(t, a.OutputPath), readCSV(t, b.OutputPath))
}

func TestRunNoDataWithoutSnapshot(t *testing.T) {
	loader := &fakeLoader{
		html:       `<html><body><div id="app"></div></body></html>`,
		contentErr: errors.New("target closed"),
	}
	orch, cfg, console := newTestOrchestrator(t, loader)

	stats, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.Records)
	assert.Empty(t, stats.DebugPath)
	assert.Contains(t, stats.StoppedReason, "target closed")
	assert.Equal(t, 1, loader.session.closed)

	_, err = os.Stat(cfg.GetDebugPath())
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, console.String(), "no page snapshot was saved")
	assert.NotContains(t, console.String(), cfg.GetDebugPath())
}

func TestRunComparesWithPreviousFingerprint(t *testing.T) {
	dir := t.TempDir()
	run := func(html string) *RunStats {
		t.Helper()
		orch, cfg, _ := newTestOrchestrator(t, &fakeLoader{html: html})
		cfg.Output.Dir = dir
		cfg.Output.FingerprintFile = "olx_car_covers.csv.sha256"
		stats, err := orch.Run(context.Background())
		require.NoError(t, err)
		return stats
	}

	page := `<div><p class="title">Cover</p><p class="price">₹10</p></div>`
	first := run(page)
	assert.False(t, first.Unchanged, "nothing to compare against on the first run")

	second := run(page)
	assert.True(t, second.Unchanged)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)

	third := run(`<div><p class="title">Cover</p><p class="price">₹12</p></div>`)
	assert.False(t, third.Unchanged)

	stored, err := os.ReadFile(filepath.Join(dir, "olx_car_covers.csv.sha256"))
	require.NoError(t, err)
	assert.Equal(t, third.Fingerprint+"\n", string(stored))
}
