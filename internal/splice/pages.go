package splice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/dgallion1/sitegen/internal/content"
	"github.com/dgallion1/sitegen/internal/doctree"
	"github.com/dgallion1/sitegen/internal/extract"
)

//go:embed defaults
var defaults embed.FS

// Built-in content used when a page has no configured source.
var defaultFiles = map[string]string{
	"about":   "defaults/about.md",
	"contact": "defaults/contact.html",
	"faq":     "defaults/faq.csv",
}

var pageTemplates = template.Must(template.New("pages").Parse(`
{{- define "section"}}                        <section id="content" class="page-content page-cms">
                            <div class="container" style="padding: 40px 15px;">
                                <div class="row">
                                    <div class="col-xs-12">
                                        <h1 class="text-uppercase mb-4">{{.Title}}</h1>
                                        <div class="cms-content">
{{.Body}}
                                        </div>
                                    </div>
                                </div>
                            </div>
                        </section>
{{end}}
{{- define "news"}}<div class="row">
{{- range .}}
    <div class="col-md-4 mb-4">
        <div class="card h-100">
            <img src="{{.Image}}" class="card-img-top" alt="{{.Title}}" style="height: 200px; object-fit: cover;">
            <div class="card-body">
                <h5 class="card-title">{{.Title}}</h5>
                <a href="{{.Link}}" class="btn btn-primary" style="background-color: #ff5e15; border-color: #ff5e15;">Read More</a>
            </div>
        </div>
    </div>
{{- end}}
</div>
{{- end}}`))

type sectionData struct {
	Title string
	Body  template.HTML
}

func renderSection(title string, body template.HTML) (string, error) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "section", sectionData{Title: title, Body: body}); err != nil {
		return "", fmt.Errorf("render section: %w", err)
	}
	return buf.String(), nil
}

// renderNews renders the card grid, or a notice when there is nothing to show.
func renderNews(items []extract.NewsItem, found bool) (template.HTML, error) {
	if !found {
		return "<p>No news content found.</p>", nil
	}
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "news", items); err != nil {
		return "", fmt.Errorf("render news: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// loadDefault parses the built-in content for a page name.
func loadDefault(name string) (*doctree.DocTree, error) {
	file, ok := defaultFiles[name]
	if !ok {
		return nil, fmt.Errorf("page %q has no source and no built-in content", name)
	}
	data, err := fs.ReadFile(defaults, file)
	if err != nil {
		return nil, fmt.Errorf("read built-in %s: %w", file, err)
	}
	p, err := content.ForFile(file)
	if err != nil {
		return nil, err
	}
	return p.Parse(bytes.NewReader(data), file)
}
