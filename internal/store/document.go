package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"finds/internal/domain"
)

// docIDRe matches the sequential ids the batch document assigns.
var docIDRe = regexp.MustCompile(`^p-(\d+)$`)

// ReadDocument loads the batch catalog document at path. A missing file
// is an empty document, not an error.
func ReadDocument(path string) (domain.Document, error) {
	var doc domain.Document
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("read document %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("parse document %s: %w", path, err)
	}
	return doc, nil
}

// AppendToDocument adds a product to the JSON document at path,
// idempotent by pin URL: when an item with the same pin URL already
// exists nothing changes and applied is false. A product arriving
// without an id gets the next sequential "p-0001" style id.
func AppendToDocument(path string, p domain.Product) (applied bool, err error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return false, err
	}

	for _, item := range doc.Items {
		if item.PinURL != "" && item.PinURL == p.PinURL {
			return false, nil
		}
	}

	if p.ID == "" {
		p.ID = nextDocumentID(doc.Items)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if p.CreatedAt == "" {
		p.CreatedAt = now
	}

	doc.UpdatedAt = now
	doc.Items = append([]domain.Product{p}, doc.Items...)

	if err := writeDocument(path, doc); err != nil {
		return false, err
	}
	return true, nil
}

func writeDocument(path string, doc domain.Document) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create document dir: %w", err)
		}
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	raw = append(raw, '\n')
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write document %s: %w", path, err)
	}
	return nil
}

// nextDocumentID continues the highest existing p-NNNN sequence.
func nextDocumentID(items []domain.Product) string {
	max := 0
	for _, item := range items {
		m := docIDRe.FindStringSubmatch(item.ID)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("p-%04d", max+1)
}
