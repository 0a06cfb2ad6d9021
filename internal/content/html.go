package content

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/sitegen/internal/doctree"
	"golang.org/x/net/html"
)

// HTMLParser takes authored HTML, either a full document or a fragment, and
// keeps the body markup. The <title> or the first <h1> names the page; that
// <h1> is dropped from the body because the page template renders its own.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	tree := &doctree.DocTree{Title: baseTitle(filename)}

	body := findElement(doc, "body")
	if body == nil {
		body = doc
	}
	if h1 := findElement(body, "h1"); h1 != nil {
		tree.Title = textContent(h1)
		h1.Parent.RemoveChild(h1)
	}
	if title := findElement(doc, "title"); title != nil {
		if t := textContent(title); t != "" {
			tree.Title = t
		}
	}

	var sb strings.Builder
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return nil, fmt.Errorf("render html: %w", err)
		}
	}
	tree.HTML = strings.TrimSpace(sb.String())
	return tree, nil
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
