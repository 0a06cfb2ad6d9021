// Package audit checks generated output the way a browser would see it.
package audit

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Result describes the product links of an index page.
type Result struct {
	Links    int
	Resolved int
	// Hrefs whose target file does not exist.
	Missing []string
	// Hrefs still marked to open in a new tab.
	WithTarget []string
	// Pages in the products directory that nothing links to.
	Orphans []string
}

// OK reports whether every product link resolves and none opens a new tab.
func (r Result) OK() bool {
	return len(r.Missing) == 0 && len(r.WithTarget) == 0
}

// Verify parses the index page under root and checks every link into
// productsDir.
func Verify(root, index, productsDir string) (Result, error) {
	var res Result

	f, err := os.Open(filepath.Join(root, filepath.FromSlash(index)))
	if err != nil {
		return res, fmt.Errorf("open index: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return res, fmt.Errorf("parse index: %w", err)
	}

	prefix := strings.TrimSuffix(productsDir, "/") + "/"
	linked := make(map[string]bool)
	missing := make(map[string]bool)
	targeted := make(map[string]bool)

	doc.Find(fmt.Sprintf(`a[href^=%q]`, prefix)).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		res.Links++

		if _, ok := s.Attr("target"); ok && !targeted[href] {
			targeted[href] = true
			res.WithTarget = append(res.WithTarget, href)
		}

		rel := pagePath(href)
		linked[rel] = true
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			if !missing[href] {
				missing[href] = true
				res.Missing = append(res.Missing, href)
			}
			return
		}
		res.Resolved++
	})

	entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(productsDir)))
	if err != nil && !os.IsNotExist(err) {
		return res, fmt.Errorf("list %s: %w", productsDir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".html") {
			continue
		}
		if rel := path.Join(productsDir, e.Name()); !linked[rel] {
			res.Orphans = append(res.Orphans, rel)
		}
	}
	sort.Strings(res.Orphans)
	return res, nil
}

// pagePath drops the query and fragment from an href and decodes it.
func pagePath(href string) string {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	if p, err := url.PathUnescape(href); err == nil {
		href = p
	}
	return path.Clean(href)
}

// NavLabels returns the top-level menu labels of a page, in document order.
func NavLabels(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	var labels []string
	doc.Find(`a[data-depth="0"]`).Each(func(_ int, s *goquery.Selection) {
		label := s.Find("span.menu-label").First()
		if label.Length() == 0 {
			return
		}
		labels = append(labels, strings.TrimSpace(label.Text()))
	})
	return labels, nil
}
