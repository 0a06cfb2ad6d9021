package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Encode renders records as the interchange file contents: a JSON array
// with two-space indentation and a trailing newline.
func Encode(records []ProductRecord) ([]byte, error) {
	if records == nil {
		records = []ProductRecord{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes records to the interchange file in the order given.
func Save(path string, records []ProductRecord) error {
	data, err := Encode(records)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create records dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	return nil
}

// Load reads the interchange file and returns the first record seen for each
// title, in first-seen order.
func Load(path string) ([]ProductRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	var records []ProductRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode records %s: %w", path, err)
	}
	return Dedup(records), nil
}

// Dedup keeps the first record per exact title. The input is not modified.
func Dedup(records []ProductRecord) []ProductRecord {
	seen := make(map[string]bool, len(records))
	out := make([]ProductRecord, 0, len(records))
	for _, r := range records {
		if seen[r.Title] {
			continue
		}
		seen[r.Title] = true
		out = append(out, r)
	}
	return out
}
