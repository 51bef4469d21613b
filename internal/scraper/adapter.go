// Adapter defines the interface that all site adapters must implement

package scraper

import (
	"context"

	"github.com/playwright-community/playwright-go"
)

// Adapter turns one site's DOM layout into canonical job records. The
// page has already been navigated to the site's seed URL when Extract
// is called.
type Adapter interface {
	//Extract pulls job records from the site, one per processed
	//candidate link. A single candidate failing must not abort the
	//rest.
	Extract(ctx context.Context, page playwright.Page) ([]Job, error)

	//Name is the human-readable site label (Amazon, P&G Careers, ...)
	Name() string
}
