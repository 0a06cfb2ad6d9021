// Package catalog holds the product records handed from extraction to page
// generation, and the identity helpers both sides must agree on.
package catalog

import (
	"regexp"
	"strings"
)

// ProductRecord is one distributable item mined from a legacy listing page.
type ProductRecord struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Link     string `json:"link"`
	Image    string `json:"image"`
}

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives the lowercase, hyphen-separated page identifier for a title.
func Slug(title string) string {
	s := nonSlugRun.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

// IsLocalPath reports whether p is a site-relative path rather than an
// absolute URL, a protocol-relative URL, a data URI or a /-rooted path.
func IsLocalPath(p string) bool {
	lower := strings.ToLower(p)
	switch {
	case p == "":
		return false
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return false
	case strings.HasPrefix(p, "//"), strings.HasPrefix(p, "/"):
		return false
	case strings.HasPrefix(lower, "data:"):
		return false
	}
	return true
}
