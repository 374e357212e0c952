package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"olx-listings-parser/internal/scraper"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// RecordsHash fingerprints an ordered set of listings. The same page
// extracted twice gives the same fingerprint.
func (g *Generator) RecordsHash(listings []scraper.Listing) string {
	h := sha256.New()
	for _, l := range listings {
		// Length-prefixed so "a|b" + "c" never collides with "a" + "b|c".
		title, price := l.Title.String(), l.Price.String()
		_, _ = io.WriteString(h, fmt.Sprintf("%d:%s%d:%s\n", len(title), title, len(price), price))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyRecordsHash checks listings against a previously computed fingerprint.
func (g *Generator) VerifyRecordsHash(expectedHash string, listings []scraper.Listing) bool {
	return g.RecordsHash(listings) == expectedHash
}
