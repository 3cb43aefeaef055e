// Package catalog wires submission flows shared by the HTTP API, the
// Telegram bot and the CLI: turning user-supplied fields into a product
// issue and an optimistic catalog entry.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"finds/internal/domain"
	"finds/internal/github"
	"finds/internal/issueform"
	"finds/internal/scraper"
	"finds/internal/store"
)

// ErrInvalidSubmission rejects a submission with no usable pin or
// destination URL. The submission is the user's to fix and retry.
var ErrInvalidSubmission = errors.New("a valid Pinterest pin URL or destination URL is required")

// Service handles product submissions and uploads.
type Service struct {
	store   *store.Store
	gateway github.Gateway
	scraper scraper.Scraper // nil disables preview enrichment
	label   string
	log     logrus.FieldLogger
}

// NewService builds the submission service. scr may be nil.
func NewService(st *store.Store, gw github.Gateway, scr scraper.Scraper, label string, logger logrus.FieldLogger) *Service {
	if label == "" {
		label = "product"
	}
	return &Service{
		store:   st,
		gateway: gw,
		scraper: scr,
		label:   label,
		log:     logger.WithField("component", "catalog"),
	}
}

// Submit validates the fields, optionally enriches them with a scraped
// preview, creates the product issue and optimistically appends the
// resulting product to the store. The write itself is single-shot: a
// failure is returned for the caller to surface, never retried here.
func (s *Service) Submit(ctx context.Context, f issueform.Fields) (domain.Product, error) {
	f.PinURL = domain.SanitizeURL(f.PinURL)
	f.DestinationURL = domain.SanitizeURL(f.DestinationURL)
	f.ImageURL = domain.SanitizeURL(f.ImageURL)
	if f.PinURL == "" && f.DestinationURL == "" {
		return domain.Product{}, ErrInvalidSubmission
	}

	s.enrich(ctx, &f)

	issue, err := s.gateway.CreateIssue(ctx, f.IssueTitle(), issueform.BuildBody(f), []string{s.label})
	if err != nil {
		return domain.Product{}, fmt.Errorf("submit product: %w", err)
	}

	p, ok := issueform.MapIssue(issue, s.label)
	if !ok {
		// The API echoed something unexpected; fall back to what we
		// sent, keyed by the new issue number.
		p = domain.Product{
			ID:             fmt.Sprintf("%d", issue.Number),
			Title:          firstNonEmpty(f.Title, strings.TrimSpace(issue.Title), fmt.Sprintf("Product #%d", issue.Number)),
			Category:       firstNonEmpty(f.Category, domain.DefaultCategory),
			Tags:           f.Tags,
			PinURL:         f.PinURL,
			DestinationURL: f.DestinationURL,
			ImageURL:       f.ImageURL,
			Notes:          f.Notes,
			CreatedAt:      issue.CreatedAt,
		}
	}

	s.store.Append(p)
	s.log.WithFields(logrus.Fields{"id": p.ID, "title": p.Title}).Info("Product submitted")
	return p, nil
}

// UploadImage commits an image blob under images/ and returns its raw
// URL for use in an Image URL field.
func (s *Service) UploadImage(ctx context.Context, name string, content []byte) (string, error) {
	name = path.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == "/" {
		return "", errors.New("upload needs a file name")
	}
	rawURL, err := s.gateway.UploadFile(ctx, "images/"+name, content, "Add product image "+name)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return rawURL, nil
}

// enrich fills a missing image (and title) from a scraped page preview.
// Scrape failures only cost the enrichment.
func (s *Service) enrich(ctx context.Context, f *issueform.Fields) {
	if s.scraper == nil || f.ImageURL != "" {
		return
	}
	target := f.PinURL
	if f.DestinationURL != "" {
		target = f.DestinationURL
	}
	preview, err := s.scraper.ScrapePreview(ctx, target)
	if err != nil {
		s.log.WithError(err).WithField("url", target).Debug("Preview scrape failed")
		return
	}
	f.ImageURL = preview.ImageURL
	if f.Title == "" {
		f.Title = preview.Title
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
