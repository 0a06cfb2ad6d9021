package content

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/dgallion1/sitegen/internal/doctree"
)

var (
	blankLines = regexp.MustCompile(`\n[ \t]*\n`)
	underline  = regexp.MustCompile(`^(={3,}|-{3,})$`)
)

// TextParser handles plain text files. Blank lines separate paragraphs; a
// line underlined with === or --- starts a section.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	src := strings.ReplaceAll(string(data), "\r\n", "\n")

	tree := &doctree.DocTree{Title: baseTitle(filename)}
	var section *doctree.DocNode
	for _, para := range blankLines.Split(src, -1) {
		para = strings.Trim(para, "\n")
		if strings.TrimSpace(para) == "" {
			continue
		}
		if title, ok := sectionHeading(para); ok {
			section = &doctree.DocNode{Title: title}
			tree.Children = append(tree.Children, section)
			continue
		}
		if section == nil {
			tree.Children = append(tree.Children, &doctree.DocNode{Text: para})
			continue
		}
		if section.Text != "" {
			section.Text += "\n\n"
		}
		section.Text += para
	}
	return tree, nil
}

func sectionHeading(para string) (string, bool) {
	lines := strings.Split(para, "\n")
	if len(lines) != 2 || !underline.MatchString(strings.TrimSpace(lines[1])) {
		return "", false
	}
	title := strings.TrimSpace(lines[0])
	return title, title != ""
}
