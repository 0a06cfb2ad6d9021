package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	articleOpen  = regexp.MustCompile(`(?i)<article\b[^>]*>`)
	articleClose = regexp.MustCompile(`(?i)</article\s*>`)
	headingOpen  = regexp.MustCompile(`(?i)<h[1-6]\b[^>]*>`)
	headingClose = regexp.MustCompile(`(?i)</h[1-6]\s*>`)
	anchorElem   = regexp.MustCompile(`(?is)(<a\b[^>]*>)(.*?)</a\s*>`)
	imgTag       = regexp.MustCompile(`(?i)<img\b[^>]*>`)
)

// titleClass marks the heading that carries a post's title anchor.
const titleClass = "post-title"

// Item is the raw content of one post block, before defaults and path
// normalization.
type Item struct {
	Title string
	Link  string
	Image string
}

// Blocks returns the inner markup of every <article> whose class list holds
// class, in document order. Matches never overlap: scanning resumes after each
// closing tag. An opening tag without a closing tag ends the scan.
func Blocks(doc, class string) []string {
	var blocks []string
	pos := 0
	for pos < len(doc) {
		loc := articleOpen.FindStringIndex(doc[pos:])
		if loc == nil {
			break
		}
		openStart, openEnd := pos+loc[0], pos+loc[1]
		if !hasClass(tagAttrs(doc[openStart:openEnd]), class) {
			pos = openEnd
			continue
		}
		end := articleClose.FindStringIndex(doc[openEnd:])
		if end == nil {
			break
		}
		blocks = append(blocks, doc[openEnd:openEnd+end[0]])
		pos = openEnd + end[1]
	}
	return blocks
}

// ParseBlock pulls the title anchor and first image out of a post block.
// ok is false when the block has no title anchor or the anchor text is empty.
func ParseBlock(block string) (item Item, ok bool) {
	item.Image = firstImage(block)

	region, found := titleRegion(block)
	if !found {
		return item, false
	}
	m := anchorElem.FindStringSubmatch(region)
	if m == nil {
		return item, false
	}
	item.Link = tagAttrs(m[1])["href"]
	item.Title = innerText(m[2])
	return item, item.Title != ""
}

// titleRegion returns the markup from the post-title heading's opening tag to
// its closing tag, or to the end of the block when the heading is unclosed.
func titleRegion(block string) (string, bool) {
	for _, loc := range headingOpen.FindAllStringIndex(block, -1) {
		if !hasClass(tagAttrs(block[loc[0]:loc[1]]), titleClass) {
			continue
		}
		rest := block[loc[1]:]
		if end := headingClose.FindStringIndex(rest); end != nil {
			return rest[:end[0]], true
		}
		return rest, true
	}
	return "", false
}

func firstImage(block string) string {
	for _, tag := range imgTag.FindAllString(block, -1) {
		if src := strings.TrimSpace(tagAttrs(tag)["src"]); src != "" {
			return src
		}
	}
	return ""
}

// tagAttrs reads the attributes of a single start tag. Attribute order and
// quoting style do not matter; names are lowercased.
func tagAttrs(tag string) map[string]string {
	z := html.NewTokenizer(strings.NewReader(tag))
	switch z.Next() {
	case html.StartTagToken, html.SelfClosingTagToken:
	default:
		return nil
	}
	attrs := make(map[string]string)
	_, more := z.TagName()
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		if _, dup := attrs[string(key)]; !dup {
			attrs[string(key)] = string(val)
		}
	}
	return attrs
}

func hasClass(attrs map[string]string, class string) bool {
	for _, c := range strings.Fields(attrs["class"]) {
		if c == class {
			return true
		}
	}
	return false
}

// innerText strips nested tags, decodes entities and collapses whitespace.
func innerText(fragment string) string {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}
