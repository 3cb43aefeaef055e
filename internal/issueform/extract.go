// Package issueform turns semi-structured GitHub issue bodies into typed
// product records and builds bodies that round-trip through the same
// parser. Issue forms, hand-written markdown and plain "Label: value"
// text all drift in formatting, so extraction tries a small ordered rule
// table of conventions per field.
package issueform

import (
	"regexp"
	"strings"
)

// Field labels recognized in issue bodies. The body builder must emit
// exactly these so created issues parse back losslessly.
const (
	LabelPinURL         = "Pinterest Pin URL"
	LabelDestinationURL = "Destination / Affiliate URL"
	LabelImageURL       = "Image URL"
	LabelTitle          = "Title"
	LabelCategory       = "Category"
	LabelTags           = "Tags"
	LabelNotes          = "Short Notes"
)

// fieldLabels lists every recognized label; a line matching any of them
// terminates the content block of the previous field.
var fieldLabels = []string{
	LabelPinURL,
	LabelDestinationURL,
	LabelImageURL,
	LabelTitle,
	LabelCategory,
	LabelTags,
	LabelNotes,
}

// placeholder is what GitHub issue forms insert for skipped optional
// fields.
const placeholder = "no response"

// annotation is optional trailing text after a label, e.g. "(optional)"
// or "(comma separated)".
const annotation = `(?:[ \t]*\([^)\n]*\))?`

// A convention is one way a field can be written in an issue body. Each
// locates the raw content chunk for a label, or returns ok=false.
type convention struct {
	name  string
	chunk func(body, label string) (string, bool)
}

// conventions are tried in order until one yields a non-empty value.
var conventions = []convention{
	{"heading", headingChunk},
	{"bare-label", bareLabelChunk},
	{"inline", inlineChunk},
}

// Extract returns the single-line value for a field: the first non-empty
// content line under the label, with the "No response" placeholder
// treated as empty.
func Extract(body, label string) string {
	for _, c := range conventions {
		chunk, ok := c.chunk(body, label)
		if !ok {
			continue
		}
		if v := firstContentLine(chunk); v != "" {
			return v
		}
	}
	return ""
}

// ExtractBlock returns the multi-line value for a free-text field,
// preserving interior blank lines. Used for notes.
func ExtractBlock(body, label string) string {
	for _, c := range conventions {
		chunk, ok := c.chunk(body, label)
		if !ok {
			continue
		}
		if v := trimBlock(chunk); v != "" {
			return v
		}
	}
	return ""
}

func headingRe(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?mi)^#{1,6}[ \t]+` + regexp.QuoteMeta(label) + annotation + `[ \t]*\r?$`)
}

func bareLabelRe(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?mi)^[ \t]*` + regexp.QuoteMeta(label) + annotation + `[ \t]*\r?$`)
}

func inlineRe(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?mi)^[ \t]*` + regexp.QuoteMeta(label) + annotation + `[ \t]*:[ \t]*(.+?)[ \t]*\r?$`)
}

// headingChunk matches "### Label" style markdown headings and returns
// the text up to the next recognized field line.
func headingChunk(body, label string) (string, bool) {
	loc := headingRe(label).FindStringIndex(body)
	if loc == nil {
		return "", false
	}
	rest := body[loc[1]:]
	return rest[:nextFieldIndex(rest)], true
}

// bareLabelChunk matches a line holding nothing but the label itself.
func bareLabelChunk(body, label string) (string, bool) {
	loc := bareLabelRe(label).FindStringIndex(body)
	if loc == nil {
		return "", false
	}
	rest := body[loc[1]:]
	return rest[:nextFieldIndex(rest)], true
}

// inlineChunk matches the "Label: value" form on a single line.
func inlineChunk(body, label string) (string, bool) {
	m := inlineRe(label).FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// nextFieldIndex finds where the next recognized label line (heading or
// bare form) starts in s, or len(s) when there is none.
func nextFieldIndex(s string) int {
	end := len(s)
	for _, label := range fieldLabels {
		if loc := headingRe(label).FindStringIndex(s); loc != nil && loc[0] < end {
			end = loc[0]
		}
		if loc := bareLabelRe(label).FindStringIndex(s); loc != nil && loc[0] < end {
			end = loc[0]
		}
	}
	return end
}

func firstContentLine(chunk string) string {
	for _, line := range strings.Split(chunk, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.EqualFold(line, placeholder) {
			continue
		}
		return line
	}
	return ""
}

// trimBlock strips leading and trailing blank lines, keeps interior ones
// and collapses a placeholder-only block to empty.
func trimBlock(chunk string) string {
	lines := strings.Split(strings.ReplaceAll(chunk, "\r\n", "\n"), "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	if start == end {
		return ""
	}
	block := strings.Join(lines[start:end], "\n")
	block = strings.TrimSpace(block)
	if strings.EqualFold(block, placeholder) {
		return ""
	}
	return block
}
