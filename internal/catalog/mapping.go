package catalog

import (
	"errors"
	"fmt"
	"path"
)

// ErrSlugCollision means two distinct titles normalize to the same slug.
var ErrSlugCollision = errors.New("slug collision")

// ErrEmptySlug means a title has no ASCII letters or digits to build a slug from.
var ErrEmptySlug = errors.New("empty slug")

// Mapping ties one record's identity to its generated page.
type Mapping struct {
	Title      string
	LegacyLink string
	Slug       string
	Path       string // root-relative, e.g. products/widget.html
}

// LinkMapping is the ordered title -> generated page mapping for one run.
type LinkMapping struct {
	entries []Mapping
	byTitle map[string]int
	bySlug  map[string]int
}

func NewLinkMapping() *LinkMapping {
	return &LinkMapping{
		byTitle: make(map[string]int),
		bySlug:  make(map[string]int),
	}
}

// Add registers a record under dir. A repeated title keeps its first entry;
// a different title with an already-used slug is an ErrSlugCollision.
func (m *LinkMapping) Add(r ProductRecord, dir string) (Mapping, error) {
	if i, ok := m.byTitle[r.Title]; ok {
		return m.entries[i], nil
	}
	slug := Slug(r.Title)
	if slug == "" {
		return Mapping{}, fmt.Errorf("%w: title %q", ErrEmptySlug, r.Title)
	}
	if i, ok := m.bySlug[slug]; ok {
		return Mapping{}, fmt.Errorf("%w: %q and %q both map to %q", ErrSlugCollision, m.entries[i].Title, r.Title, slug)
	}
	entry := Mapping{
		Title:      r.Title,
		LegacyLink: r.Link,
		Slug:       slug,
		Path:       path.Join(dir, slug+".html"),
	}
	m.byTitle[r.Title] = len(m.entries)
	m.bySlug[slug] = len(m.entries)
	m.entries = append(m.entries, entry)
	return entry, nil
}

// Lookup returns the entry for a title.
func (m *LinkMapping) Lookup(title string) (Mapping, bool) {
	i, ok := m.byTitle[title]
	if !ok {
		return Mapping{}, false
	}
	return m.entries[i], true
}

// Entries returns the mappings in insertion order.
func (m *LinkMapping) Entries() []Mapping {
	out := make([]Mapping, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *LinkMapping) Len() int {
	return len(m.entries)
}

// BuildMapping computes the mapping for records without rendering anything.
// Used when the reconciler runs on its own.
func BuildMapping(records []ProductRecord, dir string) (*LinkMapping, error) {
	m := NewLinkMapping()
	for _, r := range records {
		if _, err := m.Add(r, dir); err != nil {
			return nil, err
		}
	}
	return m, nil
}
