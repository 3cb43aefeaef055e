package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"https passes through", "https://a.b/c", "https://a.b/c"},
		{"http passes through", "http://example.com/x?y=1", "http://example.com/x?y=1"},
		{"surrounding whitespace trimmed", "  https://pin.it/abc \n", "https://pin.it/abc"},
		{"javascript scheme rejected", "javascript:alert(1)", ""},
		{"ftp scheme rejected", "ftp://x/y", ""},
		{"data scheme rejected", "data:text/html,hi", ""},
		{"relative path rejected", "/products/1", ""},
		{"bare word rejected", "not-a-url", ""},
		{"scheme without host rejected", "https://", ""},
		{"empty input", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeURL(tc.in))
		})
	}
}

func TestSanitizeURL_Idempotent(t *testing.T) {
	inputs := []string{
		"https://a.b/c",
		"http://example.com/path%20here",
		"javascript:alert(1)",
		"  https://pin.it/abc  ",
		"garbage",
		"",
	}
	for _, in := range inputs {
		once := SanitizeURL(in)
		assert.Equal(t, once, SanitizeURL(once), "sanitize must be idempotent for %q", in)
	}
}
