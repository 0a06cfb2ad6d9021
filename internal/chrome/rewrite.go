package chrome

import (
	"strings"

	"github.com/dgallion1/sitegen/internal/catalog"
	"github.com/dgallion1/sitegen/internal/config"
)

// Rewriter applies a fixed table of exact-substring substitutions in a single
// left-to-right pass. References missing from the table are left alone.
type Rewriter struct {
	rules    []config.Rewrite
	replacer *strings.Replacer
}

func NewRewriter(rules []config.Rewrite) *Rewriter {
	pairs := make([]string, 0, 2*len(rules))
	for _, r := range rules {
		if r.Pattern == "" {
			continue
		}
		pairs = append(pairs, r.Pattern, r.Replacement)
	}
	return &Rewriter{
		rules:    rules,
		replacer: strings.NewReplacer(pairs...),
	}
}

func (r *Rewriter) Apply(s string) string {
	return r.replacer.Replace(s)
}

// Rules returns the substitution table.
func (r *Rewriter) Rules() []config.Rewrite {
	out := make([]config.Rewrite, len(r.rules))
	copy(out, r.rules)
	return out
}

// CorrectImage adjusts an image reference for a page one directory below the
// site root. Only site-relative paths change.
func CorrectImage(p string) string {
	if !catalog.IsLocalPath(p) {
		return p
	}
	return "../" + p
}
