package splice

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"

	"github.com/dgallion1/sitegen/internal/chrome"
	"github.com/dgallion1/sitegen/internal/config"
	"github.com/dgallion1/sitegen/internal/content"
	"github.com/dgallion1/sitegen/internal/doctree"
	"github.com/dgallion1/sitegen/internal/extract"
	"go.uber.org/zap"
)

// Result is the outcome of splicing every configured page.
type Result struct {
	Bounds    Bounds
	Pages     []chrome.Page
	NewsItems int
}

// Splicer renders static pages into the chrome of one reference document.
type Splicer struct {
	cfg config.Config
	log *zap.SugaredLogger
}

func New(cfg config.Config, log *zap.SugaredLogger) *Splicer {
	return &Splicer{cfg: cfg, log: log}
}

func (s *Splicer) markers() Markers {
	return Markers{
		Start:     s.cfg.Splice.StartMarker,
		StartLine: s.cfg.Splice.StartLine,
		Footer:    s.cfg.Splice.FooterMarker,
		Close:     s.cfg.Splice.CloseMarker,
	}
}

// Build locates the content range once and renders every page against it.
// Nothing is returned unless all pages render.
func (s *Splicer) Build(reference string) (Result, error) {
	for _, p := range s.cfg.Splice.Pages {
		if p.Source != "" && !content.IsSupportedExtension(p.Source) {
			return Result{}, fmt.Errorf("page %s: unsupported content source %s", p.Name, p.Source)
		}
	}

	lines := Lines(reference)
	b, err := Locate(lines, s.markers())
	if err != nil {
		return Result{}, fmt.Errorf("locate content range: %w", err)
	}
	if s.cfg.Splice.StartLine > 0 && b.Start != s.cfg.Splice.StartLine-1 {
		s.log.Warnw("start marker moved", "expected_line", s.cfg.Splice.StartLine, "found_line", b.Start+1)
	}
	s.log.Debugw("content range", "start_line", b.Start+1, "end_line", b.End+1)

	res := Result{Bounds: b}
	for _, p := range s.cfg.Splice.Pages {
		section, news, err := s.renderPage(p)
		if err != nil {
			return Result{}, fmt.Errorf("page %s: %w", p.Name, err)
		}
		res.NewsItems += news
		res.Pages = append(res.Pages, chrome.Page{Path: p.Output, HTML: b.Replace(lines, section)})
	}

	s.log.Infow("spliced static pages", "pages", len(res.Pages), "news_items", res.NewsItems)
	return res, nil
}

func (s *Splicer) renderPage(p config.PageConfig) (string, int, error) {
	switch p.Kind {
	case "news":
		items, found, err := s.loadNews()
		if err != nil {
			return "", 0, err
		}
		body, err := renderNews(items, found)
		if err != nil {
			return "", 0, err
		}
		section, err := renderSection(p.Heading, body)
		return section, len(items), err

	case "faq":
		tree, err := s.loadContent(p)
		if err != nil {
			return "", 0, err
		}
		body := template.HTML(doctree.RenderAccordion("faqAccordion", tree.Children))
		section, err := renderSection(heading(p, tree), body)
		return section, 0, err

	case "cms":
		tree, err := s.loadContent(p)
		if err != nil {
			return "", 0, err
		}
		sections := 0
		doctree.Walk(tree.Children, func(*doctree.DocNode) { sections++ })
		s.log.Debugw("rendering content", "page", p.Name, "sections", sections)
		section, err := renderSection(heading(p, tree), template.HTML(doctree.RenderHTML(tree)))
		return section, 0, err
	}
	return "", 0, fmt.Errorf("unknown page kind %q", p.Kind)
}

func heading(p config.PageConfig, tree *doctree.DocTree) string {
	if p.Heading != "" {
		return p.Heading
	}
	return tree.Title
}

func (s *Splicer) loadContent(p config.PageConfig) (*doctree.DocTree, error) {
	if p.Source == "" {
		return loadDefault(p.Name)
	}
	return content.LoadFile(s.cfg.Path(p.Source))
}

// loadNews reads the scraped news listing. A missing listing is not an error;
// found reports whether it existed.
func (s *Splicer) loadNews() (items []extract.NewsItem, found bool, err error) {
	src := s.cfg.Path(s.cfg.Splice.NewsSource)
	data, err := os.ReadFile(src)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Warnw("news source missing", "path", src)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read news source: %w", err)
	}
	return extract.NewsItems(string(data), s.cfg.Splice.NewsBlockClass), true, nil
}
