package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"olx-listings-parser/internal/config"
)

var spaceRun = regexp.MustCompile(`\s+`)

type Normalizer struct {
	cfg config.NormalizeConfig
}

func NewNormalizer(cfg config.NormalizeConfig) *Normalizer {
	return &Normalizer{cfg: cfg}
}

// Clean обрезает пробелы и при необходимости заменяет NBSP и схлопывает пробелы.
func (n *Normalizer) Clean(text string) string {
	if n.cfg.TrimNBSP {
		text = strings.ReplaceAll(text, "\u00A0", " ")
	}

	if n.cfg.CollapseSpaces {
		text = spaceRun.ReplaceAllString(text, " ")
	}

	return strings.TrimSpace(text)
}

// TruncatePreview cuts text to MaxPreviewChars runes and marks the cut with
// an ellipsis.
func (n *Normalizer) TruncatePreview(text string) string {
	limit := n.cfg.MaxPreviewChars
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)
	return string(runes[:limit]) + "..."
}
