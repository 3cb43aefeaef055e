package issueform

import (
	"regexp"
	"strconv"
	"strings"

	"finds/internal/domain"
	"finds/internal/github"
)

// titlePrefixRe strips the "Add product:" prefix issue forms put on
// issue titles. The space before the colon shows up in hand-written
// titles.
var titlePrefixRe = regexp.MustCompile(`(?i)^\s*add product\s*:\s*`)

// inlineImageRe finds the first markdown image reference anywhere in a
// body, for issues where the image was pasted instead of filled into the
// field.
var inlineImageRe = regexp.MustCompile(`!\[[^\]]*\]\(\s*([^)\s]+)[^)]*\)`)

// MapIssue converts one issue into a product. ok is false for pull
// requests and for issues that resolve neither a pin URL nor a
// destination URL; such issues are skipped, never fatal to a load.
// markerLabel is the label that flags product issues (it is excluded
// when deriving a category from labels).
func MapIssue(issue github.Issue, markerLabel string) (domain.Product, bool) {
	if issue.IsPullRequest() {
		return domain.Product{}, false
	}

	pinURL := domain.SanitizeURL(Extract(issue.Body, LabelPinURL))
	destURL := domain.SanitizeURL(Extract(issue.Body, LabelDestinationURL))
	if pinURL == "" && destURL == "" {
		return domain.Product{}, false
	}

	id := strconv.Itoa(issue.Number)

	p := domain.Product{
		ID:             id,
		Title:          resolveTitle(issue, id),
		Category:       resolveCategory(issue, markerLabel),
		Tags:           ParseTags(Extract(issue.Body, LabelTags)),
		PinURL:         pinURL,
		DestinationURL: destURL,
		ImageURL:       resolveImage(issue.Body),
		Notes:          ExtractBlock(issue.Body, LabelNotes),
		CreatedAt:      issue.CreatedAt,
	}
	return p, true
}

func resolveTitle(issue github.Issue, id string) string {
	if t := Extract(issue.Body, LabelTitle); t != "" {
		return t
	}
	if t := strings.TrimSpace(titlePrefixRe.ReplaceAllString(issue.Title, "")); t != "" {
		return t
	}
	return "Product #" + id
}

func resolveCategory(issue github.Issue, markerLabel string) string {
	if c := Extract(issue.Body, LabelCategory); c != "" {
		return c
	}
	for _, name := range issue.LabelNames() {
		if strings.EqualFold(name, markerLabel) {
			continue
		}
		return humanizeLabel(name)
	}
	return domain.DefaultCategory
}

func resolveImage(body string) string {
	if u := domain.SanitizeURL(Extract(body, LabelImageURL)); u != "" {
		return u
	}
	if m := inlineImageRe.FindStringSubmatch(body); m != nil {
		return domain.SanitizeURL(m[1])
	}
	return ""
}

// humanizeLabel turns a label slug like "smart-lighting" into "smart
// lighting".
func humanizeLabel(name string) string {
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	return strings.TrimSpace(name)
}

// ParseTags splits a comma-separated tags field: trimmed, leading hash
// marks dropped, deduplicated case-insensitively keeping the first
// occurrence, capped at domain.MaxTags.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tags []string
	seen := map[string]bool{}
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimLeft(strings.TrimSpace(t), "#")
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, t)
		if len(tags) == domain.MaxTags {
			break
		}
	}
	return tags
}
