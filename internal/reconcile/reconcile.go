// Package reconcile points the links of a generated listing page at the new
// product detail pages.
package reconcile

import (
	"regexp"
	"strings"

	"github.com/dgallion1/sitegen/internal/catalog"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Report says how each record was joined to the document.
type Report struct {
	Records int
	// Legacy link found and replaced.
	ByLink int
	// Anchor found by its visible title.
	ByTitle int
	// Already pointing at its page, e.g. on a second run.
	AlreadyLinked int
	// Titles that could not be joined.
	Unmatched []string
	// target="_blank" attributes removed from internal links.
	TargetsStripped int
}

// Reconciled is the number of records whose link is now correct.
func (r Report) Reconciled() int {
	return r.ByLink + r.ByTitle + r.AlreadyLinked
}

// Reconciler rewrites legacy product links to generated page paths.
type Reconciler struct {
	dir         string
	targetAfter *regexp.Regexp
	targetFirst *regexp.Regexp
	log         *zap.SugaredLogger
}

// New returns a Reconciler for pages generated under dir.
func New(dir string, log *zap.SugaredLogger) *Reconciler {
	href := `href="` + regexp.QuoteMeta(strings.TrimSuffix(dir, "/")+"/") + `[^"]*"`
	return &Reconciler{
		dir:         dir,
		targetAfter: regexp.MustCompile(`(` + href + `)\s+target="_blank"`),
		targetFirst: regexp.MustCompile(`target="_blank"\s+(` + href + `)`),
		log:         log,
	}
}

// Reconcile returns the rewritten document. For each record the literal
// legacy link is tried first; records it misses fall back to a new-tab anchor
// whose whole visible text is the title. Misses never fail the run; they are
// reported.
func (rc *Reconciler) Reconcile(doc string, records []catalog.ProductRecord, mapping *catalog.LinkMapping) (string, Report) {
	var rep Report
	seen := make(map[string]bool, len(records))

	for _, r := range records {
		if seen[r.Title] {
			continue
		}
		seen[r.Title] = true
		rep.Records++

		entry, ok := mapping.Lookup(r.Title)
		if !ok {
			rep.Unmatched = append(rep.Unmatched, r.Title)
			rc.log.Debugw("no page for record", "title", r.Title)
			continue
		}

		var matched bool
		doc, matched = replaceLink(doc, r.Link, entry.Path)
		if matched {
			rep.ByLink++
			continue
		}
		doc, matched = replaceByTitle(doc, r.Title, entry.Path)
		if matched {
			rep.ByTitle++
			continue
		}
		if strings.Contains(doc, `href="`+entry.Path+`"`) {
			rep.AlreadyLinked++
			continue
		}
		rep.Unmatched = append(rep.Unmatched, r.Title)
		rc.log.Debugw("record not found in index", "title", r.Title, "link", r.Link)
	}

	doc, rep.TargetsStripped = rc.stripTargets(doc)

	rc.log.Infow("reconciled index links",
		"records", rep.Records,
		"by_link", rep.ByLink,
		"by_title", rep.ByTitle,
		"already_linked", rep.AlreadyLinked,
		"unmatched", len(rep.Unmatched),
		"targets_stripped", rep.TargetsStripped,
	)
	return doc, rep
}

// usableLink rejects links that cannot identify a single product.
func usableLink(link string) bool {
	return link != "" && !strings.HasPrefix(link, "#")
}

// replaceLink substitutes every occurrence of link, in raw and attribute
// escaped form, with path.
func replaceLink(doc, link, path string) (string, bool) {
	if !usableLink(link) {
		return doc, false
	}
	matched := false
	for _, v := range variants(link) {
		if strings.Contains(doc, v) {
			doc = strings.ReplaceAll(doc, v, path)
			matched = true
		}
	}
	return doc, matched
}

func replaceByTitle(doc, title, path string) (string, bool) {
	if strings.TrimSpace(title) == "" {
		return doc, false
	}
	matched := false
	repl := "${1}" + strings.ReplaceAll(path, "$", "$$") + "${2}"
	for _, v := range variants(title) {
		re := regexp.MustCompile(`(<a\s+href=")[^"]+("\s+target="_blank">\s*` + regexp.QuoteMeta(v) + `\s*</a>)`)
		if re.MatchString(doc) {
			doc = re.ReplaceAllString(doc, repl)
			matched = true
		}
	}
	return doc, matched
}

// variants returns s and, when different, its HTML-escaped form.
func variants(s string) []string {
	escaped := html.EscapeString(s)
	if escaped == s {
		return []string{s}
	}
	return []string{s, escaped}
}

func (rc *Reconciler) stripTargets(doc string) (string, int) {
	n := len(rc.targetAfter.FindAllStringIndex(doc, -1))
	doc = rc.targetAfter.ReplaceAllString(doc, "$1")
	m := len(rc.targetFirst.FindAllStringIndex(doc, -1))
	doc = rc.targetFirst.ReplaceAllString(doc, "$1")
	return doc, n + m
}
