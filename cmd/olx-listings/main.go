package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log"
	"os"

	"olx-listings-parser/internal/app"
	"olx-listings-parser/internal/browser"
	"olx-listings-parser/internal/checksum"
	"olx-listings-parser/internal/config"
	"olx-listings-parser/internal/fetcher"
	"olx-listings-parser/internal/normalize"
	"olx-listings-parser/internal/observability"
	"olx-listings-parser/internal/output"
	"olx-listings-parser/internal/scraper"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run возвращает код выхода, чтобы отложенные вызовы (закрытие лога,
// снятие обработчика сигналов) выполнялись до os.Exit.
func run(args []string, stdout io.Writer) int {
	cfg, err := loadConfig(args)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	logger := observability.NewLogger(cfg.Observability.LogPath, cfg.Observability.LogLevel, observability.RotationConfig{
		MaxSizeMB:  cfg.Observability.LogMaxSizeMB,
		MaxBackups: cfg.Observability.LogMaxBackups,
		MaxAgeDays: cfg.Observability.LogMaxAgeDays,
		Compress:   cfg.Observability.LogCompress,
	})
	defer func() { _ = logger.Close() }()

	selectors, issues, err := cfg.LoadSelectorsFromConfig()
	if err != nil {
		logger.Error("Failed to load selectors", "error", err.Error())
		return 1
	}
	for _, issue := range issues {
		logger.Warn("Selector does not parse and will be skipped",
			"list", issue.List,
			"selector", issue.Selector,
			"error", issue.Err.Error(),
		)
	}

	normalizer := normalize.NewNormalizer(cfg.Normalize)
	orch := app.NewOrchestrator(
		cfg,
		logger,
		newLoader(cfg, selectors, logger),
		scraper.NewScraper(selectors, normalizer, logger),
		output.NewWriter(cfg, normalizer, stdout),
		checksum.NewGenerator(),
	)

	ctx, stop := app.WithShutdown(context.Background(), logger)
	defer stop()

	stats, err := orch.Run(ctx)
	if err != nil {
		logger.Error("Run failed", "error", err.Error())
		return 1
	}

	logger.Info("Run completed",
		"url", stats.URL,
		"records", stats.Records,
		"title_selector", stats.TitleSelector,
		"price_selector", stats.PriceSelector,
		"fallback", stats.Fallback,
		"containers", stats.Containers,
		"output", stats.OutputPath,
		"debug", stats.DebugPath,
		"fingerprint", stats.Fingerprint,
		"unchanged", stats.Unchanged,
		"reason", stats.StoppedReason,
	)
	return 0
}

// loadConfig reads the file named by the first argument. Without one it
// reads configs/config.yaml if present and otherwise uses the defaults.
func loadConfig(args []string) (*config.Config, error) {
	if len(args) > 0 {
		return config.LoadConfig(args[0])
	}

	cfg, err := config.LoadConfig(defaultConfigPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func newLoader(cfg *config.Config, selectors *scraper.Selectors, logger *observability.Logger) browser.Loader {
	switch {
	case cfg.Source.SnapshotFile != "":
		return browser.NewSnapshotLoader(cfg.Source.SnapshotFile, logger)
	case cfg.Rod.Enabled:
		return browser.NewRodLoader(cfg, selectors.ReadyMarker, logger)
	default:
		return browser.NewHTTPLoader(fetcher.NewFetcher(cfg, logger), logger)
	}
}
