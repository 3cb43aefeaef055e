package scraper

import "context"

// Preview is what a product page offers for a catalog card: the page
// title and a representative image. Either field may be empty.
type Preview struct {
	Title    string
	ImageURL string
}

// Scraper fetches a preview for a product URL. Used to enrich
// submissions that arrive without an image; failures degrade to an
// empty preview, never block a submission.
type Scraper interface {
	ScrapePreview(ctx context.Context, url string) (Preview, error)
}
