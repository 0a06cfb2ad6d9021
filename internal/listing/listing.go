// Package listing renders the product index page: a category sidebar and a
// grid of every product, linking out to the legacy pages.
package listing

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"sort"
	"strings"
	"unicode"

	"github.com/dgallion1/sitegen/internal/catalog"
	"github.com/dgallion1/sitegen/internal/chrome"
	"github.com/dgallion1/sitegen/internal/config"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Removed from title-cased category names in the sidebar.
var displayPrefixes = []string{"Vanderbilt Product Listing For ", "Product Listing For "}

var page = template.Must(template.New("listing").Parse(`<section id="content" class="page-content page-cms">
            <div class="container" style="padding-top: 20px; padding-bottom: 40px;">
                <div class="row">
                    <div class="col-xs-12">
                         <h1 class="text-uppercase mb-4">Our Products</h1>
                    </div>
                </div>
    <div class="sidebar-wrapper" style="width: 25%; float: left; padding-right: 20px;">
        <div class="widget Label">
            <h3 class="title">Categories</h3>
            <div class="widget-content list-label">
                <ul>
                    <li><a href="#" data-filter="all" onclick="filterProducts(this.dataset.filter); return false;">All Products</a></li>
{{- range .Categories}}
                    <li><a href="#" data-filter="{{.Class}}" onclick="filterProducts(this.dataset.filter); return false;">{{.Name}}</a></li>
{{- end}}
                </ul>
            </div>
        </div>
    </div>
<div class="main-wrapper" style="width: 75%; float: left;"><div class="row" id="product-grid" style="display: flex; flex-wrap: wrap;">
{{- range .Products}}
        <div class="product-item {{.Class}}" style="width: 30%; margin: 1.5%; box-shadow: 0 2px 5px rgba(0,0,0,0.1); padding: 10px; border-radius: 5px; background: #fff; float: left;">
            <div class="post-image-wrap" style="height: 200px; overflow: hidden; display: flex; align-items: center; justify-content: center;">
                <a {{.Href}} target="_blank">
                    <img src="{{.Image}}" alt="{{.Title}}" style="max-width: 100%; max-height: 100%; width: auto; height: auto;">
                </a>
            </div>
            <h3 class="post-title" style="font-size: 14px; margin-top: 10px; height: 40px; overflow: hidden;">
                <a {{.Href}} target="_blank">{{.Title}}</a>
            </h3>
            <span class="product-category" style="font-size: 11px; color: #ff5e15;">{{.Category}}</span>
        </div>
{{- end}}
</div></div>
            </div>
    <script>
    function filterProducts(category) {
        var items = document.getElementsByClassName('product-item');
        for (var i = 0; i < items.length; i++) {
            if (category == 'all' || items[i].classList.contains(category)) {
                items[i].style.display = 'block';
            } else {
                items[i].style.display = 'none';
            }
        }
    }
    </script>
        </section>
        `))

// Category is one sidebar entry. Class is the filter token carried by the
// category's product cards.
type Category struct {
	Name  string
	Class string
}

// productItem is one grid card. Href carries the legacy link as a whole
// attribute so it reaches the page unnormalized and the reconciler can find
// it verbatim.
type productItem struct {
	Title    string
	Category string
	Class    string
	Href     template.HTMLAttr
	Image    string
}

type pageData struct {
	Categories []Category
	Products   []productItem
}

// Generator renders the index page into the reference template's chrome.
// The index lives at the site root, so the chrome is used as is.
type Generator struct {
	splitter chrome.Splitter
	log      *zap.SugaredLogger
}

func NewGenerator(cfg config.Config, log *zap.SugaredLogger) *Generator {
	return &Generator{
		splitter: chrome.TagSplitter{
			Start:    cfg.Chrome.ContentAnchor,
			Fallback: cfg.Chrome.FallbackAnchor,
			Footer:   cfg.Chrome.FooterAnchor,
		},
		log: log,
	}
}

// Build returns the index document for records, in record order.
func (g *Generator) Build(tmpl string, records []catalog.ProductRecord) (string, error) {
	split, err := g.splitter.Split(tmpl)
	if err != nil {
		return "", fmt.Errorf("split template: %w", err)
	}

	data := pageData{Categories: Categories(records)}
	for _, r := range records {
		data.Products = append(data.Products, productItem{
			Title:    r.Title,
			Category: r.Category,
			Class:    url.PathEscape(r.Category),
			Href:     legacyHref(r.Link),
			Image:    EncodeImage(r.Image),
		})
	}

	var body bytes.Buffer
	if err := page.Execute(&body, data); err != nil {
		return "", fmt.Errorf("render listing: %w", err)
	}

	g.log.Infow("rendered product index", "products", len(data.Products), "categories", len(data.Categories))
	return split.Before + body.String() + split.After, nil
}

// legacyHref quotes link as an href attribute, escaping only what HTML
// attribute syntax requires.
func legacyHref(link string) template.HTMLAttr {
	return template.HTMLAttr(`href="` + html.EscapeString(link) + `"`)
}

// Categories returns the sorted, distinct categories with their sidebar labels.
func Categories(records []catalog.ProductRecord) []Category {
	seen := make(map[string]bool)
	var names []string
	for _, r := range records {
		if !seen[r.Category] {
			seen[r.Category] = true
			names = append(names, r.Category)
		}
	}
	sort.Strings(names)

	out := make([]Category, 0, len(names))
	for _, n := range names {
		out = append(out, Category{Name: DisplayName(n), Class: url.PathEscape(n)})
	}
	return out
}

// DisplayName title-cases a category and drops listing boilerplate.
func DisplayName(category string) string {
	name := titleCase(category)
	for _, p := range displayPrefixes {
		name = strings.ReplaceAll(name, p, "")
	}
	return name
}

// titleCase upper-cases the first letter of every run of letters and
// lower-cases the rest, so "x-ray films" becomes "X-Ray Films".
func titleCase(s string) string {
	var sb strings.Builder
	prevLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) && !prevLetter:
			sb.WriteRune(unicode.ToUpper(r))
		case unicode.IsLetter(r):
			sb.WriteRune(unicode.ToLower(r))
		default:
			sb.WriteRune(r)
		}
		prevLetter = unicode.IsLetter(r)
	}
	return sb.String()
}

// EncodeImage percent-encodes each segment of a site-relative image path.
func EncodeImage(p string) string {
	if !catalog.IsLocalPath(p) {
		return p
	}
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
