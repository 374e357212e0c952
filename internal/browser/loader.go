package browser

import (
	"context"
	"errors"

	"olx-listings-parser/internal/scraper"
)

// ErrNavigation marks failures to bring the target page up: launch, network,
// timeout or a bad response.
var ErrNavigation = errors.New("navigation failed")

// Session is a loaded page that must be closed when extraction is done.
type Session interface {
	scraper.Page
	Close() error
}

// Loader opens a page for a URL.
type Loader interface {
	Load(ctx context.Context, url string) (Session, error)
}
