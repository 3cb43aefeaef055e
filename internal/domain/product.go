package domain

// DefaultCategory is used when an issue carries no category field and no
// usable label. The catalog treats it like any other category.
const DefaultCategory = "Accessories"

// AllCategories is the sentinel filter value meaning "no category
// restriction". It is never stored on a product.
const AllCategories = "All"

// MaxTags caps how many tags a single product keeps after parsing.
const MaxTags = 12

// Product is one catalog entry, derived from a GitHub issue. The issue is
// the source of truth; a product is rebuilt from scratch on every parse
// pass and never mutated in place.
type Product struct {
	// ID is the source issue number as a string, or a sequential
	// "p-0001" style id in the batch document.
	ID string `json:"id"`

	// Title is always non-empty; parsing falls back to the issue title
	// and finally to a synthesized placeholder.
	Title string `json:"title"`

	// Category is free text; DefaultCategory when nothing was supplied.
	Category string `json:"category"`

	// Tags are trimmed, deduplicated case-insensitively and capped at
	// MaxTags.
	Tags []string `json:"tags,omitempty"`

	// PinURL is the Pinterest pin link. At least one of PinURL and
	// DestinationURL is non-empty on every stored product.
	PinURL string `json:"pinUrl"`

	// DestinationURL is the preferred outbound (affiliate) link.
	DestinationURL string `json:"destinationUrl,omitempty"`

	// ImageURL is a direct image link, possibly recovered from an inline
	// markdown image in the issue body.
	ImageURL string `json:"imageUrl,omitempty"`

	// Notes is optional free text, possibly multi-line.
	Notes string `json:"notes,omitempty"`

	// CreatedAt is the source issue's creation time in ISO-8601 form.
	// Used only for newest-first ordering; ISO-8601 sorts correctly as
	// plain text.
	CreatedAt string `json:"createdAt"`
}

// OutboundURL returns the link a catalog card should open: the
// destination URL when present, the pin URL otherwise.
func (p Product) OutboundURL() string {
	if p.DestinationURL != "" {
		return p.DestinationURL
	}
	return p.PinURL
}

// Valid reports whether the product satisfies the catalog invariants:
// a non-empty id and title, and at least one of pin/destination URL.
func (p Product) Valid() bool {
	return p.ID != "" && p.Title != "" && (p.PinURL != "" || p.DestinationURL != "")
}

// Document is the batch-variant JSON file maintained by the append
// command: a flat list of products plus the time of the last change.
type Document struct {
	UpdatedAt string    `json:"updatedAt"`
	Items     []Product `json:"items"`
}
