package config

import (
	"fmt"
	"path/filepath"
	"time"
)

type Config struct {
	Target        TargetConfig        `yaml:"target"`
	Rod           RodConfig           `yaml:"rod"`
	HTTP          HttpConfig          `yaml:"http"`
	Source        SourceConfig        `yaml:"source"`
	SelectorsFile string              `yaml:"selectors_file"`
	Normalize     NormalizeConfig     `yaml:"normalize"`
	Output        OutputConfig        `yaml:"output"`
	Observability ObservabilityConfig `yaml:"observability"`
}

type TargetConfig struct {
	URL string `yaml:"url"`
}

type RodConfig struct {
	Enabled          bool   `yaml:"enabled"`
	ChromePath       string `yaml:"chrome_path"`
	Headless         bool   `yaml:"headless"`
	NoSandbox        bool   `yaml:"no_sandbox"`
	UserAgent        string `yaml:"user_agent"`
	WindowWidth      int    `yaml:"window_width"`
	WindowHeight     int    `yaml:"window_height"`
	PageTimeoutS     int    `yaml:"page_timeout_s"`
	WaitLoadTimeoutS int    `yaml:"wait_load_timeout_s"`
	SettleDelayS     int    `yaml:"settle_delay_s"`
}

type HttpConfig struct {
	UserAgent      string `yaml:"user_agent"`
	TotalTimeoutMS int    `yaml:"total_timeout_ms"`
	AcceptLanguage string `yaml:"accept_language"`
}

// SourceConfig replaces the live page with a saved snapshot when set.
type SourceConfig struct {
	SnapshotFile string `yaml:"snapshot_file"`
}

type NormalizeConfig struct {
	TrimNBSP        bool `yaml:"trim_nbsp"`
	CollapseSpaces  bool `yaml:"collapse_spaces"`
	MaxPreviewChars int  `yaml:"max_preview_chars"`
}

type OutputConfig struct {
	Dir         string `yaml:"dir"`
	File        string `yaml:"file"`
	Format      string `yaml:"format"`
	DebugFile   string `yaml:"debug_file"`
	PreviewRows int    `yaml:"preview_rows"`
	// Отпечаток предыдущего запуска; пусто, чтобы не сравнивать.
	FingerprintFile string `yaml:"fingerprint_file"`
}

type ObservabilityConfig struct {
	LogPath       string `yaml:"log_path"`
	LogLevel      string `yaml:"log_level"`
	LogMaxSizeMB  int    `yaml:"log_max_size_mb"`
	LogMaxBackups int    `yaml:"log_max_backups"`
	LogMaxAgeDays int    `yaml:"log_max_age_days"`
	LogCompress   bool   `yaml:"log_compress"`
}

const desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Target: TargetConfig{
			URL: "https://www.olx.in/items/q-car-cover",
		},
		Rod: RodConfig{
			Enabled:          true,
			Headless:         false,
			UserAgent:        desktopUserAgent,
			WindowWidth:      1366,
			WindowHeight:     768,
			PageTimeoutS:     60,
			WaitLoadTimeoutS: 30,
			SettleDelayS:     10,
		},
		HTTP: HttpConfig{
			UserAgent:      desktopUserAgent,
			TotalTimeoutMS: 60000,
			AcceptLanguage: "en-IN,en;q=0.9",
		},
		Normalize: NormalizeConfig{
			MaxPreviewChars: 50,
		},
		Output: OutputConfig{
			File:        "olx_car_covers.csv",
			Format:      "csv",
			DebugFile:   "debug_page.html",
			PreviewRows: 5,
		},
		Observability: ObservabilityConfig{
			LogLevel:      "info",
			LogMaxSizeMB:  10,
			LogMaxBackups: 3,
			LogMaxAgeDays: 28,
		},
	}
}

// Validation
func (c *Config) Validate() error {
	if c.Target.URL == "" {
		return fmt.Errorf("target.url is required")
	}
	if c.Rod.Enabled {
		if c.Rod.UserAgent == "" {
			return fmt.Errorf("rod.user_agent is required when rod.enabled is true")
		}
		if c.Rod.PageTimeoutS <= 0 {
			return fmt.Errorf("rod.page_timeout_s must be > 0")
		}
		if c.Rod.WaitLoadTimeoutS <= 0 {
			return fmt.Errorf("rod.wait_load_timeout_s must be > 0")
		}
		if c.Rod.SettleDelayS < 0 {
			return fmt.Errorf("rod.settle_delay_s must be >= 0")
		}
		if c.Rod.WindowWidth < 0 || c.Rod.WindowHeight < 0 {
			return fmt.Errorf("rod.window_width and rod.window_height must be >= 0")
		}
	} else {
		if c.HTTP.UserAgent == "" {
			return fmt.Errorf("http.user_agent is required when rod.enabled is false")
		}
		if c.HTTP.TotalTimeoutMS <= 0 {
			return fmt.Errorf("http.total_timeout_ms must be > 0")
		}
	}
	if c.Output.File == "" {
		return fmt.Errorf("output.file is required")
	}
	if c.Output.DebugFile == "" {
		return fmt.Errorf("output.debug_file is required")
	}
	if c.Output.Format != "csv" && c.Output.Format != "json" {
		return fmt.Errorf("output.format must be 'csv' or 'json'")
	}
	if c.Output.PreviewRows < 0 {
		return fmt.Errorf("output.preview_rows must be >= 0")
	}
	if c.Normalize.MaxPreviewChars <= 0 {
		return fmt.Errorf("normalize.max_preview_chars must be > 0")
	}
	if c.Observability.LogLevel == "" {
		return fmt.Errorf("observability.log_level is required")
	}
	return nil
}

// Getters
func (c *Config) GetRodPageTimeout() time.Duration {
	return time.Duration(c.Rod.PageTimeoutS) * time.Second
}

func (c *Config) GetRodWaitLoadTimeout() time.Duration {
	return time.Duration(c.Rod.WaitLoadTimeoutS) * time.Second
}

func (c *Config) GetRodSettleDelay() time.Duration {
	return time.Duration(c.Rod.SettleDelayS) * time.Second
}

func (c *Config) GetTotalTimeout() time.Duration {
	return time.Duration(c.HTTP.TotalTimeoutMS) * time.Millisecond
}

func (c *Config) GetOutputPath() string {
	return filepath.Join(c.Output.Dir, c.Output.File)
}

func (c *Config) GetDebugPath() string {
	return filepath.Join(c.Output.Dir, c.Output.DebugFile)
}

func (c *Config) GetFingerprintPath() string {
	if c.Output.FingerprintFile == "" {
		return ""
	}
	return filepath.Join(c.Output.Dir, c.Output.FingerprintFile)
}
