package doctree

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// RenderAccordion renders titled nodes as a collapsible question/answer list.
// The first entry starts expanded. Untitled nodes are skipped.
func RenderAccordion(id string, nodes []*DocNode) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<div class=\"accordion\" id=\"%s\">\n", html.EscapeString(id))

	n := 0
	for _, node := range nodes {
		if node.Title == "" {
			continue
		}
		n++
		expanded, button, collapse := "false", "btn btn-link collapsed", "collapse"
		if n == 1 {
			expanded, button, collapse = "true", "btn btn-link", "collapse show"
		}
		heading := fmt.Sprintf("heading%d", n)
		body := fmt.Sprintf("collapse%d", n)

		sb.WriteString("    <div class=\"card\">\n")
		fmt.Fprintf(&sb, "        <div class=\"card-header\" id=\"%s\">\n", heading)
		sb.WriteString("            <h5 class=\"mb-0\">\n")
		fmt.Fprintf(&sb, "                <button class=\"%s\" type=\"button\" data-toggle=\"collapse\" data-target=\"#%s\" aria-expanded=\"%s\" aria-controls=\"%s\" style=\"color: #ff5e15; font-weight: bold; text-decoration: none;\">\n",
			button, body, expanded, body)
		fmt.Fprintf(&sb, "                    %s\n", html.EscapeString(node.Title))
		sb.WriteString("                </button>\n")
		sb.WriteString("            </h5>\n")
		sb.WriteString("        </div>\n")
		fmt.Fprintf(&sb, "        <div id=\"%s\" class=\"%s\" aria-labelledby=\"%s\" data-parent=\"#%s\">\n",
			body, collapse, heading, html.EscapeString(id))
		sb.WriteString("            <div class=\"card-body\">\n")
		answer := strings.ReplaceAll(html.EscapeString(strings.TrimSpace(node.Text)), "\n", "<br>\n")
		fmt.Fprintf(&sb, "                %s\n", answer)
		sb.WriteString("            </div>\n")
		sb.WriteString("        </div>\n")
		sb.WriteString("    </div>\n")
	}

	sb.WriteString("</div>\n")
	return sb.String()
}
