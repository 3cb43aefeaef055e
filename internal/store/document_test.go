package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finds/internal/domain"
)

func docPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "data", "products.json")
}

func TestAppendToDocument_CreatesFile(t *testing.T) {
	path := docPath(t)

	applied, err := AppendToDocument(path, domain.Product{
		Title:    "Desk Lamp",
		Category: "Lighting",
		PinURL:   "https://pin.it/abc",
	})
	require.NoError(t, err)
	assert.True(t, applied)

	doc, err := ReadDocument(path)
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "p-0001", doc.Items[0].ID)
	assert.Equal(t, "Desk Lamp", doc.Items[0].Title)
	assert.NotEmpty(t, doc.UpdatedAt)
	assert.NotEmpty(t, doc.Items[0].CreatedAt)
}

func TestAppendToDocument_IdempotentByPinURL(t *testing.T) {
	path := docPath(t)
	p := domain.Product{Title: "Desk Lamp", PinURL: "https://pin.it/abc"}

	applied, err := AppendToDocument(path, p)
	require.NoError(t, err)
	assert.True(t, applied)

	// Same pin URL again: no change, still a success.
	applied, err = AppendToDocument(path, domain.Product{Title: "Different Title", PinURL: "https://pin.it/abc"})
	require.NoError(t, err)
	assert.False(t, applied)

	doc, err := ReadDocument(path)
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "Desk Lamp", doc.Items[0].Title)
}

func TestAppendToDocument_SequentialIDs(t *testing.T) {
	path := docPath(t)

	for _, pin := range []string{"https://pin.it/a", "https://pin.it/b", "https://pin.it/c"} {
		applied, err := AppendToDocument(path, domain.Product{Title: "P", PinURL: pin})
		require.NoError(t, err)
		require.True(t, applied)
	}

	doc, err := ReadDocument(path)
	require.NoError(t, err)
	require.Len(t, doc.Items, 3)
	// Newest first; the sequence keeps counting from the highest id.
	assert.Equal(t, "p-0003", doc.Items[0].ID)
	assert.Equal(t, "p-0002", doc.Items[1].ID)
	assert.Equal(t, "p-0001", doc.Items[2].ID)
}

func TestAppendToDocument_KeepsExplicitID(t *testing.T) {
	path := docPath(t)

	applied, err := AppendToDocument(path, domain.Product{ID: "42", Title: "Issue-born", PinURL: "https://pin.it/x"})
	require.NoError(t, err)
	assert.True(t, applied)

	doc, err := ReadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "42", doc.Items[0].ID)
}

func TestReadDocument_MissingFileIsEmpty(t *testing.T) {
	doc, err := ReadDocument(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Empty(t, doc.Items)
	assert.Empty(t, doc.UpdatedAt)
}

func TestNextDocumentID_IgnoresForeignIDs(t *testing.T) {
	items := []domain.Product{{ID: "42"}, {ID: "p-0007"}, {ID: "sample-1"}}
	assert.Equal(t, "p-0008", nextDocumentID(items))
}
