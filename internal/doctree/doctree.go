package doctree

import (
	"strings"

	"golang.org/x/net/html"
)

// DocTree is the root of a parsed piece of authored content.
type DocTree struct {
	Title    string     // Document title (from metadata, first heading or filename)
	HTML     string     // Pre-rendered markup, set when the source already is markup
	Children []*DocNode // Top-level sections
}

// DocNode is a recursive section in the document tree.
type DocNode struct {
	Title    string     // Section heading (empty for leaf text)
	Text     string     // Plain text; blank lines separate paragraphs
	Children []*DocNode // Subsections
}

// RenderHTML returns the tree as an HTML fragment. Trees that carry
// pre-rendered markup are returned as is; otherwise headings start at <h3>,
// below the page's <h1>.
func RenderHTML(tree *DocTree) string {
	if tree == nil {
		return ""
	}
	if tree.HTML != "" {
		return tree.HTML
	}
	var sb strings.Builder
	renderNodes(&sb, tree.Children, 3)
	return sb.String()
}

func renderNodes(sb *strings.Builder, nodes []*DocNode, level int) {
	if level > 6 {
		level = 6
	}
	tag := string(rune('0' + level))
	for _, n := range nodes {
		if n.Title != "" {
			sb.WriteString("<h" + tag + ">" + html.EscapeString(n.Title) + "</h" + tag + ">\n")
		}
		writeParagraphs(sb, n.Text)
		renderNodes(sb, n.Children, level+1)
	}
}

func writeParagraphs(sb *strings.Builder, text string) {
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		escaped := html.EscapeString(para)
		sb.WriteString("<p>" + strings.ReplaceAll(escaped, "\n", "<br>\n") + "</p>\n")
	}
}

// Walk visits every node depth-first.
func Walk(nodes []*DocNode, fn func(*DocNode)) {
	for _, n := range nodes {
		fn(n)
		Walk(n.Children, fn)
	}
}
