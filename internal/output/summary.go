package output

import (
	"fmt"

	"olx-listings-parser/internal/scraper"
)

// PrintSummary reports a successful run and shows the first rows.
func (w *Writer) PrintSummary(listings []scraper.Listing, path, fingerprint string) {
	fmt.Fprintf(w.console, "✓ Successfully scraped %d listings and saved to %s\n", len(listings), path)
	if fingerprint != "" {
		fmt.Fprintf(w.console, "  Fingerprint: %s\n", fingerprint)
	}

	rows := min(w.cfg.Output.PreviewRows, len(listings))
	if rows == 0 {
		return
	}
	fmt.Fprintf(w.console, "\nFirst %d entries:\n", rows)
	for i, l := range listings[:rows] {
		fmt.Fprintf(w.console, "[%d] Title: %s\n", i+1, w.normalizer.TruncatePreview(l.Title.String()))
		fmt.Fprintf(w.console, "    Price: %s\n", l.Price.String())
	}
}

// PrintNoData points the operator at the debug artifact.
func (w *Writer) PrintNoData(debugPath string) {
	fmt.Fprintf(w.console, "✗ No listings found. Check the %s file to see what was loaded.\n", debugPath)
}

// PrintNoDebug используется, когда снимок страницы сохранить не удалось.
func (w *Writer) PrintNoDebug(reason string) {
	fmt.Fprintf(w.console, "✗ No listings found and no page snapshot was saved: %s\n", reason)
}
