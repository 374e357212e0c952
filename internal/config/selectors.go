package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/andybalholm/cascadia"
	"gopkg.in/yaml.v3"

	"olx-listings-parser/internal/scraper"
)

// SelectorIssue is a selector that does not parse as CSS. The selector is
// kept; the resolver skips it at run time.
type SelectorIssue struct {
	List     string
	Selector string
	Err      error
}

// LoadSelectors reads selector lists from a YAML file. Lists the file leaves
// out keep their built-in values.
func LoadSelectors(filePath string) (*scraper.Selectors, []SelectorIssue, error) {
	if filePath == "" {
		return nil, nil, fmt.Errorf("selectors file path is empty")
	}

	if _, err := os.Stat(filePath); err != nil {
		return nil, nil, fmt.Errorf("selectors file not found: %s: %w", filePath, err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open selectors file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close selectors file: %v\n", closeErr)
		}
	}()

	selectors := scraper.DefaultSelectors()
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(selectors); err != nil {
		return nil, nil, fmt.Errorf("failed to parse selectors YAML: %w", err)
	}

	if err := validateSelectors(selectors); err != nil {
		return nil, nil, err
	}

	return selectors, CheckSelectorSyntax(selectors), nil
}

// LoadSelectorsFromConfig returns the configured selectors, or the built-in
// ones when no selectors file is set. Relative paths resolve against configs/.
func (c *Config) LoadSelectorsFromConfig() (*scraper.Selectors, []SelectorIssue, error) {
	if c.SelectorsFile == "" {
		return scraper.DefaultSelectors(), nil, nil
	}

	filePath := c.SelectorsFile
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join("configs", filePath)
	}

	return LoadSelectors(filePath)
}

// CheckSelectorSyntax compiles every selector and reports the ones that fail.
func CheckSelectorSyntax(s *scraper.Selectors) []SelectorIssue {
	var issues []SelectorIssue
	check := func(list string, selectors ...string) {
		for _, sel := range selectors {
			if _, err := cascadia.Compile(sel); err != nil {
				issues = append(issues, SelectorIssue{List: list, Selector: sel, Err: err})
			}
		}
	}

	if s.ReadyMarker != "" {
		check("ready_marker", s.ReadyMarker)
	}
	check("title_selectors", s.TitleSelectors...)
	check("price_selectors", s.PriceSelectors...)
	check("container_selectors", s.Containers...)
	check("container_title_selectors", s.ContainerTitles...)
	check("container_price_selectors", s.ContainerPrices...)

	return issues
}

// validateSelectors checks the minimal set of selector lists
func validateSelectors(s *scraper.Selectors) error {
	if len(s.TitleSelectors) == 0 {
		return fmt.Errorf("title_selectors is required")
	}
	if len(s.PriceSelectors) == 0 {
		return fmt.Errorf("price_selectors is required")
	}
	if len(s.Containers) > 0 {
		if len(s.ContainerTitles) == 0 {
			return fmt.Errorf("container_title_selectors is required when container_selectors is set")
		}
		if len(s.ContainerPrices) == 0 {
			return fmt.Errorf("container_price_selectors is required when container_selectors is set")
		}
	}

	return nil
}
