package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog() []Product {
	return []Product{
		{ID: "1", Title: "Candle", Category: "Candles", PinURL: "https://pin.it/1", CreatedAt: "2026-01-01T00:00:00Z"},
		{ID: "2", Title: "Lamp", Category: "Lighting", Tags: []string{"led", "dimmable"}, PinURL: "https://pin.it/2", CreatedAt: "2026-02-01T00:00:00Z"},
		{ID: "3", Title: "Diffuser", Category: "Candles", Notes: "lavender scent", PinURL: "https://pin.it/3", CreatedAt: "2026-03-01T00:00:00Z"},
	}
}

func TestFilter_ByCategory(t *testing.T) {
	got := Filter(sampleCatalog(), "Candles", "")
	require.Len(t, got, 2)
	assert.Equal(t, "Diffuser", got[0].Title, "newest first")
	assert.Equal(t, "Candle", got[1].Title)
}

func TestFilter_CategoryCaseInsensitive(t *testing.T) {
	got := Filter(sampleCatalog(), "lighting", "")
	require.Len(t, got, 1)
	assert.Equal(t, "Lamp", got[0].Title)
}

func TestFilter_AllSentinelMatchesEverything(t *testing.T) {
	got := Filter(sampleCatalog(), AllCategories, "")
	require.Len(t, got, 3)
	assert.Equal(t, []string{"3", "2", "1"}, []string{got[0].ID, got[1].ID, got[2].ID}, "sorted newest first")
}

func TestFilter_Query(t *testing.T) {
	got := Filter(sampleCatalog(), AllCategories, "lamp")
	require.Len(t, got, 1)
	assert.Equal(t, "Lamp", got[0].Title)
}

func TestFilter_QueryMatchesTagsAndNotes(t *testing.T) {
	byTag := Filter(sampleCatalog(), AllCategories, "dimmable")
	require.Len(t, byTag, 1)
	assert.Equal(t, "Lamp", byTag[0].Title)

	byNotes := Filter(sampleCatalog(), AllCategories, "lavender")
	require.Len(t, byNotes, 1)
	assert.Equal(t, "Diffuser", byNotes[0].Title)
}

func TestFilter_QueryTrimmedAndLowercased(t *testing.T) {
	got := Filter(sampleCatalog(), AllCategories, "  LAMP ")
	require.Len(t, got, 1)
	assert.Equal(t, "Lamp", got[0].Title)
}

func TestFilter_NoMatch(t *testing.T) {
	assert.Empty(t, Filter(sampleCatalog(), "Rugs", ""))
	assert.Empty(t, Filter(sampleCatalog(), AllCategories, "spaceship"))
}

func TestFilter_MissingCreatedAtSortsOldest(t *testing.T) {
	products := []Product{
		{ID: "a", Title: "No date", PinURL: "https://pin.it/a"},
		{ID: "b", Title: "Dated", PinURL: "https://pin.it/b", CreatedAt: "2026-01-01T00:00:00Z"},
	}
	got := Filter(products, AllCategories, "")
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}

func TestCategories(t *testing.T) {
	products := append(sampleCatalog(), Product{ID: "4", Title: "Votive", Category: "candles", PinURL: "https://pin.it/4"})
	got := Categories(products)
	assert.Equal(t, []string{"All", "Candles", "Lighting"}, got, "All first, case-insensitive dedup, first-seen order")
}

func TestProduct_OutboundURL(t *testing.T) {
	p := Product{PinURL: "https://pin.it/x", DestinationURL: "https://amzn.to/y"}
	assert.Equal(t, "https://amzn.to/y", p.OutboundURL())
	p.DestinationURL = ""
	assert.Equal(t, "https://pin.it/x", p.OutboundURL())
}
