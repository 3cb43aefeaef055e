package domain

import (
	"sort"
	"strings"
)

// Filter narrows the catalog to products matching the active category and
// free-text query, newest first. The sentinel category "All" matches
// everything; category comparison is otherwise exact but
// case-insensitive. A non-empty query must appear as a substring of the
// product's title, category, tags or notes (all lowercased).
func Filter(products []Product, category, query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !matchesCategory(p, category) {
			continue
		}
		if q != "" && !strings.Contains(haystack(p), q) {
			continue
		}
		out = append(out, p)
	}

	// ISO-8601 timestamps order correctly as strings; an empty
	// CreatedAt sorts last.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

// Categories returns the distinct categories present in the catalog,
// with the "All" sentinel first and the rest in first-seen order.
func Categories(products []Product) []string {
	out := []string{AllCategories}
	seen := map[string]bool{}
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		key := strings.ToLower(p.Category)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p.Category)
	}
	return out
}

func matchesCategory(p Product, category string) bool {
	if category == "" || strings.EqualFold(category, AllCategories) {
		return true
	}
	return strings.EqualFold(p.Category, category)
}

func haystack(p Product) string {
	parts := []string{p.Title, p.Category}
	parts = append(parts, p.Tags...)
	parts = append(parts, p.Notes)
	return strings.ToLower(strings.Join(parts, " "))
}
