package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"olx-listings-parser/internal/config"
	"olx-listings-parser/internal/normalize"
	"olx-listings-parser/internal/scraper"
)

// Header is the first row of the CSV output.
var Header = []string{"Title", "Price"}

type Writer struct {
	cfg        *config.Config
	normalizer *normalize.Normalizer
	console    io.Writer
}

type jsonListing struct {
	Title string `json:"title"`
	Price string `json:"price"`
}

func NewWriter(cfg *config.Config, normalizer *normalize.Normalizer, console io.Writer) *Writer {
	return &Writer{
		cfg:        cfg,
		normalizer: normalizer,
		console:    console,
	}
}

// WriteListings serializes the listings in the configured format and
// replaces the output file in one rename. It returns the written path.
func (w *Writer) WriteListings(listings []scraper.Listing) (string, error) {
	if len(listings) == 0 {
		return "", fmt.Errorf("no listings to write")
	}

	var (
		data []byte
		err  error
	)
	switch w.cfg.Output.Format {
	case "json":
		data, err = EncodeJSON(listings)
	default:
		data, err = EncodeCSV(listings)
	}
	if err != nil {
		return "", err
	}

	path := w.cfg.GetOutputPath()
	if err := writeFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// WriteDebug stores the rendered page markup for later inspection.
func (w *Writer) WriteDebug(content string) (string, error) {
	path := w.cfg.GetDebugPath()
	if err := writeFileAtomic(path, []byte(content)); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// EncodeCSV renders listings as CSV with a Title,Price header and no index
// column.
func EncodeCSV(listings []scraper.Listing) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(Header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, l := range listings {
		if err := cw.Write([]string{l.Title.String(), l.Price.String()}); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeJSON renders listings as an indented JSON array.
func EncodeJSON(listings []scraper.Listing) ([]byte, error) {
	all := make([]jsonListing, len(listings))
	for i, l := range listings {
		all[i] = jsonListing{Title: l.Title.String(), Price: l.Price.String()}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(all); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// ReadFingerprint returns the fingerprint stored by the previous run, or ""
// when there is none yet.
func (w *Writer) ReadFingerprint() (string, error) {
	path := w.cfg.GetFingerprintPath()
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// WriteFingerprint stores the fingerprint next to the data file. It is a
// no-op when no fingerprint file is configured.
func (w *Writer) WriteFingerprint(fingerprint string) error {
	path := w.cfg.GetFingerprintPath()
	if path == "" {
		return nil
	}
	if err := writeFileAtomic(path, []byte(fingerprint+"\n")); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
