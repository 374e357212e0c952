package checksum

import (
	"testing"

	"olx-listings-parser/internal/scraper"
)

func listings(pairs ...string) []scraper.Listing {
	var out []scraper.Listing
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, scraper.Listing{Title: scraper.Text(pairs[i]), Price: scraper.Text(pairs[i+1])})
	}
	return out
}

func TestRecordsHash(t *testing.T) {
	gen := NewGenerator()

	records := listings("Car Cover A", "₹500", "Car Cover B", "₹750")

	hash1 := gen.RecordsHash(records)
	hash2 := gen.RecordsHash(listings("Car Cover A", "₹500", "Car Cover B", "₹750"))

	if hash1 != hash2 {
		t.Errorf("Hash not deterministic: %s != %s", hash1, hash2)
	}

	if len(hash1) != 64 {
		t.Errorf("Hash wrong length: %d, expected 64", len(hash1))
	}

	reordered := listings("Car Cover B", "₹750", "Car Cover A", "₹500")
	if gen.RecordsHash(reordered) == hash1 {
		t.Errorf("Hash should depend on record order")
	}

	if gen.RecordsHash(listings("a|b", "c")) == gen.RecordsHash(listings("a", "b|c")) {
		t.Errorf("Field boundaries should affect the hash")
	}
}

func TestRecordsHashTreatsMissingAsSentinel(t *testing.T) {
	gen := NewGenerator()

	missing := []scraper.Listing{{Title: scraper.Text("Cover"), Price: scraper.Missing()}}
	literal := listings("Cover", scraper.Sentinel)

	if gen.RecordsHash(missing) != gen.RecordsHash(literal) {
		t.Errorf("Missing price should hash like the written sentinel")
	}
}

func TestVerifyRecordsHash(t *testing.T) {
	gen := NewGenerator()

	records := listings("Car Cover A", "₹500")
	hash := gen.RecordsHash(records)

	if !gen.VerifyRecordsHash(hash, records) {
		t.Errorf("VerifyRecordsHash failed for correct data")
	}

	if gen.VerifyRecordsHash(hash, listings("Car Cover A", "₹501")) {
		t.Errorf("VerifyRecordsHash should fail for a changed price")
	}

	if gen.VerifyRecordsHash("", records) {
		t.Errorf("VerifyRecordsHash should fail without a previous fingerprint")
	}
}
