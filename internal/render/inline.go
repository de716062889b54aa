package render

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var colorStyleRE = regexp.MustCompile(`(?i)color\s*:\s*([^;]+)`)

// Inline renders one inline-level node to a flat text fragment. Outside
// pre-formatted mode the fragment never contains a newline except the one
// produced by <br>.
func Inline(n *html.Node, ctx Context) string {
	switch n.Type {
	case html.TextNode:
		if ctx.InPre {
			return n.Data
		}
		return strings.ReplaceAll(collapseSpace(n.Data), "\n", " ")
	case html.ElementNode:
	default:
		return ""
	}

	name := elementName(n)
	switch {
	case name == "br":
		return "\n"
	case name == "a" && hasClass(n, "headerlink"):
		// Self-link anchors on headings carry no content of their own.
		return ""
	case name == "b" || name == "strong":
		return "**" + strings.TrimSpace(childrenInline(n, ctx)) + "**"
	case name == "i" || name == "em":
		return "*" + strings.TrimSpace(childrenInline(n, ctx)) + "*"
	case name == "s" || name == "del":
		return "~~" + strings.TrimSpace(childrenInline(n, ctx)) + "~~"
	case name == "mark":
		return "==" + strings.TrimSpace(childrenInline(n, ctx)) + "=="
	case name == "code":
		return "`" + strings.TrimSpace(childrenInline(n, ctx)) + "`"
	case name == "span" && hasClass(n, "md-align"):
		return alignSpan(n, ctx)
	case name == "span" && hasClass(n, "color-change"):
		return colorSpan(n, ctx)
	case name == "span" && hasClass(n, "spoiler"):
		return "||" + strings.TrimSpace(childrenInline(n, ctx)) + "||"
	case name == "a":
		return link(n, ctx)
	case name == "img":
		return "![" + attr(n, "alt") + "](" + attr(n, "src") + ")"
	}

	// Unknown wrappers are transparent so their content survives.
	return childrenInline(n, ctx)
}

// childrenInline concatenates the inline rendering of n's children.
func childrenInline(n *html.Node, ctx Context) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(Inline(c, ctx))
	}
	return b.String()
}

// alignSpan renders rentry's alignment span. Inside a heading the heading
// renderer owns the alignment markers, so only the inner text comes back.
func alignSpan(n *html.Node, ctx Context) string {
	inner := strings.TrimSpace(childrenInline(n, ctx))
	if ctx.InHeading {
		return inner
	}
	switch {
	case hasClass(n, "md-center"):
		return "-> " + inner + " <-"
	case hasClass(n, "md-right"):
		return "-> " + inner + " ->"
	}
	return inner
}

// colorSpan renders %color%text%%, falling back to the bare text when no
// color declaration can be pulled from the style attribute.
func colorSpan(n *html.Node, ctx Context) string {
	color := ""
	if m := colorStyleRE.FindStringSubmatch(attr(n, "style")); m != nil {
		color = strings.TrimSpace(m[1])
	}
	inner := strings.TrimSpace(childrenInline(n, ctx))
	if color == "" {
		return inner
	}
	return "%" + color + "%" + inner + "%%"
}

func link(n *html.Node, ctx Context) string {
	href := attr(n, "href")
	text := strings.TrimSpace(childrenInline(n, ctx))
	if text != "" && href != "" && text == href {
		return href
	}
	if text == "" {
		return href
	}
	return "[" + text + "](" + href + ")"
}
