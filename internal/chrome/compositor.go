package chrome

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/dgallion1/sitegen/internal/catalog"
	"github.com/dgallion1/sitegen/internal/config"
	"go.uber.org/zap"
)

var detailBody = template.Must(template.New("detail").Parse(`
        <section id="content" class="page-content">
            <div class="container" style="padding: 40px 15px;">
                <div class="row">
                    <div class="col-md-6">
                        <div class="product-detail-image" style="border: 1px solid #eee; padding: 20px; border-radius: 8px;">
                            <img src="{{.Image}}" alt="{{.Title}}" style="max-width: 100%; height: auto; display: block; margin: 0 auto;">
                        </div>
                    </div>
                    <div class="col-md-6">
                        <h1 class="product-title" style="margin-top: 0; color: #003366; font-size: 2rem;">{{.Title}}</h1>
                        <p class="product-category" style="color: #ff5e15; font-weight: bold; text-transform: uppercase; margin-bottom: 20px;">{{.Category}}</p>

                        <div class="product-description" style="margin-bottom: 30px; font-size: 1.1rem; line-height: 1.6;">
                            <p>The {{.Title}} is a premium quality product in our {{.Category}} category. Designed for reliability and performance in medical imaging environments.</p>
                            <p>Contact us today for pricing and availability.</p>
                        </div>

                        <div class="product-actions">
                            <a href="../contact.html?product={{.Slug}}" class="btn btn-primary" style="background-color: #003366; border-color: #003366; padding: 12px 30px; color: #fff; text-decoration: none; border-radius: 5px; font-weight: bold;">
                                Get a Quote
                            </a>
                            <a href="../{{.BackLink}}" class="btn btn-secondary" style="margin-left: 15px; color: #555; text-decoration: none;">
                                Back to Products
                            </a>
                        </div>
                    </div>
                </div>
            </div>
        </section>
`))

type detailData struct {
	Title    string
	Category string
	Image    string
	Slug     string
	BackLink string
}

// Page is one generated document, addressed relative to the site root.
type Page struct {
	Path string
	HTML string
}

// Compositor renders product detail pages into depth-corrected chrome taken
// from a reference template.
type Compositor struct {
	header   string
	footer   string
	dir      string
	backLink string
	log      *zap.SugaredLogger
}

// NewCompositor splits the template once. A template without its anchors is
// rejected here, before any page is rendered.
func NewCompositor(tmpl string, cfg config.Config, log *zap.SugaredLogger) (*Compositor, error) {
	splitter := TagSplitter{
		Start:    cfg.Chrome.ContentAnchor,
		Fallback: cfg.Chrome.FallbackAnchor,
		Footer:   cfg.Chrome.FooterAnchor,
	}
	return newCompositor(tmpl, splitter, NewRewriter(cfg.Chrome.Rewrites), cfg, log)
}

func newCompositor(tmpl string, splitter Splitter, rw *Rewriter, cfg config.Config, log *zap.SugaredLogger) (*Compositor, error) {
	split, err := splitter.Split(tmpl)
	if err != nil {
		return nil, fmt.Errorf("split template: %w", err)
	}
	log.Debugw("template split",
		"before_bytes", len(split.Before),
		"content_bytes", len(split.Content),
		"after_bytes", len(split.After),
	)
	return &Compositor{
		header:   rw.Apply(split.Before),
		footer:   rw.Apply(split.After),
		dir:      cfg.ProductsDir,
		backLink: cfg.IndexFile,
		log:      log,
	}, nil
}

// Render produces the full document for one record.
func (c *Compositor) Render(r catalog.ProductRecord, slug string) (string, error) {
	var body bytes.Buffer
	err := detailBody.Execute(&body, detailData{
		Title:    r.Title,
		Category: r.Category,
		Image:    CorrectImage(r.Image),
		Slug:     slug,
		BackLink: c.backLink,
	})
	if err != nil {
		return "", fmt.Errorf("render %q: %w", r.Title, err)
	}
	return c.header + body.String() + c.footer, nil
}

// Build renders every record in memory and returns the pages together with
// the title -> page mapping the reconciler needs. Nothing is written; any
// error means no page should be.
func (c *Compositor) Build(records []catalog.ProductRecord) ([]Page, *catalog.LinkMapping, error) {
	mapping := catalog.NewLinkMapping()
	pages := make([]Page, 0, len(records))

	for _, r := range records {
		if _, seen := mapping.Lookup(r.Title); seen {
			continue
		}
		entry, err := mapping.Add(r, c.dir)
		if err != nil {
			return nil, nil, err
		}
		doc, err := c.Render(r, entry.Slug)
		if err != nil {
			return nil, nil, err
		}
		pages = append(pages, Page{Path: entry.Path, HTML: doc})
	}

	c.log.Infow("composed detail pages", "pages", len(pages), "dir", c.dir)
	return pages, mapping, nil
}
