package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"

	"finds/internal/domain"
)

// imageSelectors are the meta tags pin and shop pages use for their
// card image, in preference order.
var imageSelectors = []string{
	`meta[property="og:image"]`,
	`meta[name="twitter:image"]`,
	`meta[itemprop="image"]`,
}

// RodScraper implements Scraper with a headless browser. Product pages
// (Pinterest, Amazon) render their meta tags client-side often enough
// that a plain HTTP fetch misses them.
type RodScraper struct {
	log     logrus.FieldLogger
	timeout time.Duration
}

// NewRodScraper creates a scraper. A fresh browser is launched per
// scrape; submission volume is human-scale so the simplicity wins over
// a persistent instance.
func NewRodScraper(logger logrus.FieldLogger) *RodScraper {
	return &RodScraper{
		log:     logger.WithField("component", "scraper"),
		timeout: 30 * time.Second,
	}
}

// ScrapePreview loads the page and pulls the title and first card image
// meta tag. The returned image URL is already sanitized.
func (s *RodScraper) ScrapePreview(ctx context.Context, url string) (preview Preview, err error) {
	log := s.log.WithField("url", url)

	path, exists := launcher.LookPath()
	if !exists {
		return Preview{}, errors.New("browser executable not found")
	}
	u := launcher.New().Bin(path).MustLaunch()
	browser := rod.New().ControlURL(u)
	if err = browser.Connect(); err != nil {
		return Preview{}, fmt.Errorf("connect to browser: %w", err)
	}
	defer func() {
		if closeErr := browser.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close browser: %w", closeErr)
		}
	}()

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return Preview{}, fmt.Errorf("open page: %w", err)
	}
	defer func() {
		if closeErr := page.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close page: %w", closeErr)
		}
	}()

	pageCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	page = page.Context(pageCtx)

	if err = page.WaitLoad(); err != nil {
		if errors.Is(pageCtx.Err(), context.DeadlineExceeded) {
			return Preview{}, fmt.Errorf("scrape timed out for %s: %w", url, pageCtx.Err())
		}
		return Preview{}, fmt.Errorf("wait for page load: %w", err)
	}

	preview.Title = s.pageTitle(page, log)
	preview.ImageURL = s.pageImage(page, log)

	log.WithFields(logrus.Fields{
		"title": preview.Title,
		"image": preview.ImageURL,
	}).Debug("Preview scraped")
	return preview, nil
}

func (s *RodScraper) pageTitle(page *rod.Page, log logrus.FieldLogger) string {
	el, err := page.Element("title")
	if err != nil {
		log.Debug("Page has no title element")
		return ""
	}
	title, err := el.Text()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(title)
}

func (s *RodScraper) pageImage(page *rod.Page, log logrus.FieldLogger) string {
	for _, selector := range imageSelectors {
		el, err := page.Element(selector)
		if err != nil {
			continue
		}
		content, err := el.Attribute("content")
		if err != nil || content == nil {
			continue
		}
		if u := domain.SanitizeURL(*content); u != "" {
			return u
		}
	}
	log.Debug("No usable preview image meta tag")
	return ""
}
