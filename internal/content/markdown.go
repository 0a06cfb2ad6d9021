package content

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dgallion1/sitegen/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser renders Markdown with goldmark. The first level-1 heading
// becomes the page title and is removed from the body.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	// Authored content is trusted; inline HTML (tel: links, styled boxes) is kept.
	md := goldmark.New(goldmark.WithRendererOptions(gmhtml.WithUnsafe()))
	doc := md.Parser().Parse(text.NewReader(src))

	tree := &doctree.DocTree{Title: baseTitle(filename)}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 1 {
			continue
		}
		tree.Title = string(h.Text(src))
		doc.RemoveChild(doc, h)
		break
	}

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, src, doc); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	tree.HTML = buf.String()
	return tree, nil
}
