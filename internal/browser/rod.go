package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"olx-listings-parser/internal/config"
	"olx-listings-parser/internal/observability"
	"olx-listings-parser/internal/scraper"
)

// RodLoader renders the page in a real Chromium driven by rod.
type RodLoader struct {
	cfg         *config.Config
	readyMarker string
	logger      *observability.Logger
}

func NewRodLoader(cfg *config.Config, readyMarker string, logger *observability.Logger) *RodLoader {
	return &RodLoader{
		cfg:         cfg,
		readyMarker: readyMarker,
		logger:      logger,
	}
}

// Load launches the browser, navigates, waits out the settle delay and then
// waits for the ready marker. A missing marker is logged, not returned.
func (l *RodLoader) Load(ctx context.Context, url string) (Session, error) {
	lnch := launcher.New().
		Context(ctx).
		Headless(l.cfg.Rod.Headless).
		NoSandbox(l.cfg.Rod.NoSandbox)
	if l.cfg.Rod.ChromePath != "" {
		lnch = lnch.Bin(l.cfg.Rod.ChromePath)
	}
	if l.cfg.Rod.WindowWidth > 0 && l.cfg.Rod.WindowHeight > 0 {
		lnch = lnch.Set("window-size", fmt.Sprintf("%d,%d", l.cfg.Rod.WindowWidth, l.cfg.Rod.WindowHeight))
	}

	controlURL, err := lnch.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: launch browser: %w", ErrNavigation, err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		lnch.Kill()
		lnch.Cleanup()
		return nil, fmt.Errorf("%w: connect to browser: %w", ErrNavigation, err)
	}

	s := &rodSession{launcher: lnch, browser: b}
	if err := l.open(ctx, s, url); err != nil {
		if closeErr := s.Close(); closeErr != nil {
			l.logger.Warn("Failed to close browser", "error", closeErr.Error())
		}
		return nil, err
	}
	return s, nil
}

func (l *RodLoader) open(ctx context.Context, s *rodSession, url string) error {
	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("%w: open page: %w", ErrNavigation, err)
	}
	s.page = page

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: l.cfg.Rod.UserAgent}); err != nil {
		return fmt.Errorf("%w: set user agent: %w", ErrNavigation, err)
	}
	if l.cfg.Rod.WindowWidth > 0 && l.cfg.Rod.WindowHeight > 0 {
		if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             l.cfg.Rod.WindowWidth,
			Height:            l.cfg.Rod.WindowHeight,
			DeviceScaleFactor: 1,
		}); err != nil {
			l.logger.Warn("Failed to set viewport", "error", err.Error())
		}
	}

	l.logger.Info("Loading page", "url", url, "timeout", l.cfg.GetRodPageTimeout())
	navCtx, cancel := context.WithTimeout(ctx, l.cfg.GetRodPageTimeout())
	defer cancel()
	if err := page.Context(navCtx).Navigate(url); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNavigation, url, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		return fmt.Errorf("%w: wait load %s: %w", ErrNavigation, url, err)
	}

	l.logger.Info("Waiting for page to settle", "delay", l.cfg.GetRodSettleDelay())
	select {
	case <-time.After(l.cfg.GetRodSettleDelay()):
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrNavigation, ctx.Err())
	}

	if l.readyMarker == "" {
		return nil
	}
	waitCtx, waitCancel := context.WithTimeout(ctx, l.cfg.GetRodWaitLoadTimeout())
	defer waitCancel()
	if _, err := page.Context(waitCtx).Element(l.readyMarker); err != nil {
		l.logger.Info("Listing marker not found, trying alternatives", "marker", l.readyMarker)
		return nil
	}
	l.logger.Info("Listings found", "marker", l.readyMarker)
	return nil
}

type rodSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

func (s *rodSession) QueryAll(selector string) ([]scraper.Element, error) {
	return wrapRod(s.page.Elements(selector))
}

func (s *rodSession) Content() (string, error) {
	return s.page.HTML()
}

// Close закрывает браузер и удаляет каталог профиля.
func (s *rodSession) Close() error {
	err := s.browser.Close()
	s.launcher.Kill()
	s.launcher.Cleanup()
	return err
}

type rodElement struct {
	el *rod.Element
}

func (e rodElement) Text() (string, error) {
	return e.el.Text()
}

func (e rodElement) QueryAll(selector string) ([]scraper.Element, error) {
	return wrapRod(e.el.Elements(selector))
}

func wrapRod(found rod.Elements, err error) ([]scraper.Element, error) {
	if err != nil {
		return nil, err
	}
	elements := make([]scraper.Element, len(found))
	for i, el := range found {
		elements[i] = rodElement{el: el}
	}
	return elements, nil
}
