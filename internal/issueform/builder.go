package issueform

import "strings"

// Fields is the user-supplied side of a product submission, before it
// becomes an issue.
type Fields struct {
	PinURL         string
	DestinationURL string
	ImageURL       string
	Title          string
	Category       string
	Tags           []string
	Notes          string
}

// IssueTitle is the title for the created issue, matching the issue-form
// convention.
func (f Fields) IssueTitle() string {
	if f.Title != "" {
		return "Add product: " + f.Title
	}
	return "Add product"
}

// BuildBody renders fields as a markdown issue body using the exact
// headings Extract recognizes, so everything written here parses back
// unchanged. Empty fields emit the "No response" placeholder, mirroring
// what GitHub issue forms produce.
func BuildBody(f Fields) string {
	var b strings.Builder
	section(&b, LabelPinURL, "", f.PinURL)
	section(&b, LabelDestinationURL, "(optional)", f.DestinationURL)
	section(&b, LabelImageURL, "(optional)", f.ImageURL)
	section(&b, LabelTitle, "(optional)", f.Title)
	section(&b, LabelCategory, "", f.Category)
	section(&b, LabelTags, "(comma separated)", strings.Join(f.Tags, ", "))
	section(&b, LabelNotes, "(optional)", f.Notes)
	return b.String()
}

func section(b *strings.Builder, label, annotation, value string) {
	b.WriteString("### ")
	b.WriteString(label)
	if annotation != "" {
		b.WriteString(" ")
		b.WriteString(annotation)
	}
	b.WriteString("\n\n")
	if strings.TrimSpace(value) == "" {
		b.WriteString("No response")
	} else {
		b.WriteString(strings.TrimSpace(value))
	}
	b.WriteString("\n\n")
}
