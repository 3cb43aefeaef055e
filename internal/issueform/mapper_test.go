package issueform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finds/internal/domain"
	"finds/internal/github"
)

const markerLabel = "product"

func TestMapIssue_Scenario(t *testing.T) {
	issue := github.Issue{
		Number:    42,
		Title:     "Add product: Desk Lamp",
		Body:      "### Pinterest Pin URL\nhttps://pin.it/abc\n\n### Category\nLighting\n\n### Tags (comma separated)\nled, dimmable\n",
		CreatedAt: "2026-03-01T00:00:00Z",
	}

	p, ok := MapIssue(issue, markerLabel)
	require.True(t, ok)
	assert.Equal(t, "42", p.ID)
	assert.Equal(t, "Desk Lamp", p.Title)
	assert.Equal(t, "Lighting", p.Category)
	assert.Equal(t, []string{"led", "dimmable"}, p.Tags)
	assert.Equal(t, "https://pin.it/abc", p.PinURL)
	assert.Equal(t, "2026-03-01T00:00:00Z", p.CreatedAt)
	assert.True(t, p.Valid())
}

func TestMapIssue_RejectsPullRequests(t *testing.T) {
	issue := github.Issue{
		Number: 1,
		Body:   "### Pinterest Pin URL\nhttps://pin.it/abc\n",
		PullRequest: &struct {
			URL string `json:"url"`
		}{URL: "https://api.github.com/repos/a/b/pulls/1"},
	}
	_, ok := MapIssue(issue, markerLabel)
	assert.False(t, ok)
}

func TestMapIssue_RejectsWithoutAnyURL(t *testing.T) {
	bodies := []string{
		"",
		"### Category\nLighting\n",
		"### Pinterest Pin URL\nNo response\n",
		"### Pinterest Pin URL\njavascript:alert(1)\n",
		"just some prose about a lamp",
	}
	for _, body := range bodies {
		_, ok := MapIssue(github.Issue{Number: 2, Title: "x", Body: body}, markerLabel)
		assert.False(t, ok, "body %q must not map", body)
	}
}

func TestMapIssue_DestinationURLAloneIsEnough(t *testing.T) {
	issue := github.Issue{
		Number: 3,
		Title:  "Add product: Smart Plug",
		Body:   "### Destination / Affiliate URL (optional)\nhttps://amzn.to/xyz\n",
	}
	p, ok := MapIssue(issue, markerLabel)
	require.True(t, ok)
	assert.Empty(t, p.PinURL)
	assert.Equal(t, "https://amzn.to/xyz", p.DestinationURL)
	assert.Equal(t, "https://amzn.to/xyz", p.OutboundURL())
}

func TestMapIssue_TitleFallbacks(t *testing.T) {
	base := "### Pinterest Pin URL\nhttps://pin.it/abc\n"

	// Explicit field beats the issue title.
	p, ok := MapIssue(github.Issue{Number: 4, Title: "Add product: Wrong", Body: base + "### Title (optional)\nNightstand Lamp\n"}, markerLabel)
	require.True(t, ok)
	assert.Equal(t, "Nightstand Lamp", p.Title)

	// Prefix stripping tolerates a space before the colon.
	p, ok = MapIssue(github.Issue{Number: 5, Title: "  add product : Floor Lamp ", Body: base}, markerLabel)
	require.True(t, ok)
	assert.Equal(t, "Floor Lamp", p.Title)

	// Empty everything synthesizes a placeholder.
	p, ok = MapIssue(github.Issue{Number: 6, Title: "", Body: base}, markerLabel)
	require.True(t, ok)
	assert.Equal(t, "Product #6", p.Title)
}

func TestMapIssue_CategoryFallbacks(t *testing.T) {
	base := "### Pinterest Pin URL\nhttps://pin.it/abc\n"

	// Marker label is skipped; the next label becomes the category.
	p, ok := MapIssue(github.Issue{
		Number: 7, Title: "x", Body: base,
		Labels: []github.Label{{Name: "product"}, {Name: "smart-lighting"}},
	}, markerLabel)
	require.True(t, ok)
	assert.Equal(t, "smart lighting", p.Category)

	// No usable label falls back to the default.
	p, ok = MapIssue(github.Issue{
		Number: 8, Title: "x", Body: base,
		Labels: []github.Label{{Name: "Product"}},
	}, markerLabel)
	require.True(t, ok)
	assert.Equal(t, domain.DefaultCategory, p.Category)
}

func TestMapIssue_InlineImageFallback(t *testing.T) {
	issue := github.Issue{
		Number: 9,
		Title:  "x",
		Body:   "### Pinterest Pin URL\nhttps://pin.it/abc\n\nHere it is:\n\n![lamp photo](https://img.example/lamp.jpg)\n",
	}
	p, ok := MapIssue(issue, markerLabel)
	require.True(t, ok)
	assert.Equal(t, "https://img.example/lamp.jpg", p.ImageURL)
}

func TestMapIssue_ImageFieldBeatsInlineImage(t *testing.T) {
	issue := github.Issue{
		Number: 10,
		Title:  "x",
		Body: "### Pinterest Pin URL\nhttps://pin.it/abc\n\n### Image URL (optional)\nhttps://img.example/field.jpg\n\n" +
			"![pasted](https://img.example/pasted.jpg)\n",
	}
	p, ok := MapIssue(issue, markerLabel)
	require.True(t, ok)
	assert.Equal(t, "https://img.example/field.jpg", p.ImageURL)
}

func TestParseTags_DedupAndCase(t *testing.T) {
	got := ParseTags("a, A, b, b, c")
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestParseTags_TrimHashAndEmpties(t *testing.T) {
	got := ParseTags(" #led , , dimmable ,#LED,")
	assert.Equal(t, []string{"led", "dimmable"}, got)
}

func TestParseTags_Cap(t *testing.T) {
	raw := "t1,t2,t3,t4,t5,t6,t7,t8,t9,t10,t11,t12,t13,t14"
	got := ParseTags(raw)
	require.Len(t, got, domain.MaxTags)
	assert.Equal(t, "t1", got[0])
	assert.Equal(t, "t12", got[len(got)-1])
}

func TestParseTags_Empty(t *testing.T) {
	assert.Nil(t, ParseTags(""))
	assert.Nil(t, ParseTags("  ,  , "))
}

func TestBuildBody_RoundTrip(t *testing.T) {
	f := Fields{
		PinURL:         "https://pin.it/abc",
		DestinationURL: "https://amzn.to/xyz",
		ImageURL:       "https://img.example/lamp.jpg",
		Title:          "Desk Lamp",
		Category:       "Lighting",
		Tags:           []string{"led", "dimmable"},
		Notes:          "Warm light.\n\nGreat for late evenings.",
	}

	issue := github.Issue{
		Number:    42,
		Title:     f.IssueTitle(),
		Body:      BuildBody(f),
		CreatedAt: "2026-03-01T00:00:00Z",
	}

	p, ok := MapIssue(issue, markerLabel)
	require.True(t, ok)
	assert.Equal(t, f.PinURL, p.PinURL)
	assert.Equal(t, f.DestinationURL, p.DestinationURL)
	assert.Equal(t, f.ImageURL, p.ImageURL)
	assert.Equal(t, f.Title, p.Title)
	assert.Equal(t, f.Category, p.Category)
	assert.Equal(t, f.Tags, p.Tags)
	assert.Equal(t, f.Notes, p.Notes)
}

func TestBuildBody_OptionalFieldsEmitPlaceholder(t *testing.T) {
	body := BuildBody(Fields{PinURL: "https://pin.it/abc", Category: "Decor"})

	assert.Contains(t, body, "### Destination / Affiliate URL (optional)\n\nNo response")
	assert.Contains(t, body, "### Image URL (optional)\n\nNo response")

	p, ok := MapIssue(github.Issue{Number: 11, Title: "Add product: Vase", Body: body}, markerLabel)
	require.True(t, ok)
	assert.Equal(t, "Vase", p.Title)
	assert.Equal(t, "Decor", p.Category)
	assert.Empty(t, p.DestinationURL)
	assert.Empty(t, p.ImageURL)
	assert.Empty(t, p.Notes)
	assert.Empty(t, p.Tags)
}
