package store

import (
	_ "embed"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"finds/internal/domain"
)

// The bundled sample catalog keeps the UI populated when live data is
// unavailable or the repository has no product issues yet.
//
//go:embed products.sample.json
var sampleData []byte

// SampleProducts returns the bundled fallback catalog. The embedded file
// is validated by tests, so a decode failure can only mean a broken
// build; it degrades to an empty list rather than panicking.
func SampleProducts(log logrus.FieldLogger) []domain.Product {
	var doc domain.Document
	if err := json.Unmarshal(sampleData, &doc); err != nil {
		log.WithError(err).Error("Bundled sample catalog is unreadable")
		return nil
	}
	return doc.Items
}
