package render

import (
	"fmt"
	stdhtml "html"
	"strings"

	"golang.org/x/net/html"
)

// admonitionKinds is the class scan order; the first match wins.
var admonitionKinds = []string{"note", "info", "warning", "danger", "greentext"}

// Blocks renders the non-blank children of n as a sequence of block
// fragments. Whitespace-only text children contribute nothing.
func Blocks(n *html.Node, ctx Context) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isBlankText(c) {
			continue
		}
		b.WriteString(Block(c, ctx))
	}
	return b.String()
}

// Block renders one node as a block-level fragment. Every fragment is
// self-delimiting: it ends in a blank line unless it is empty.
func Block(n *html.Node, ctx Context) string {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return ""
		}
		return strings.TrimSpace(Inline(n, ctx)) + "\n\n"
	case html.ElementNode:
	default:
		return ""
	}

	name := elementName(n)
	switch {
	case name == "div" && hasClass(n, "toc"):
		return tocBlock(n, ctx)
	case name == "div" && hasClass(n, "codeblock"):
		return codeBlock(n)
	case name == "div" && hasClass(n, "admonition"):
		return admonitionBlock(n, ctx)
	case name == "hr":
		return "---\n\n"
	case headingLevel(name) > 0:
		return headingBlock(n, headingLevel(name), ctx)
	case name == "p":
		return paragraphBlock(n, ctx)
	case name == "blockquote":
		return blockquoteBlock(n, ctx)
	case name == "ul" || name == "ol":
		return renderList(n, ctx)
	case name == "div" && hasClass(n, "ntable-wrapper"):
		if tbl := findFirst(n, func(d *html.Node) bool { return elementName(d) == "table" }); tbl != nil {
			return Block(tbl, ctx)
		}
		return ""
	case name == "table":
		return renderTable(n, ctx)
	case name == "pre":
		return fence(textJoin(n, "\n"))
	case name == "span" && hasClass(n, "clear-floats"):
		return "!;\n\n"
	}

	// Structural wrappers disappear without losing their content.
	return Blocks(n, ctx)
}

// tocBlock resolves rentry's table-of-contents marker. The level comes
// from the first link's target anchor via the heading-id map.
func tocBlock(n *html.Node, ctx Context) string {
	token := "[TOC]"
	a := findFirst(n, func(d *html.Node) bool {
		return elementName(d) == "a" && hasAttr(d, "href")
	})
	if a != nil {
		if href := attr(a, "href"); strings.HasPrefix(href, "#") {
			if lvl, ok := ctx.HeadingLevels[href[1:]]; ok && lvl >= 2 && lvl <= 6 {
				token = fmt.Sprintf("[TOC%d]", lvl)
			}
		}
	}
	return token + "\n\n"
}

// codeBlock prefers the clipboard widget's raw value attribute, which
// holds the original entity-escaped source; without it the element's
// plain text content is fenced instead.
func codeBlock(n *html.Node) string {
	clippy := findFirst(n, func(d *html.Node) bool {
		return d.Type == html.ElementNode && hasClass(d, "clippy")
	})
	if clippy != nil && hasAttr(clippy, "value") {
		raw := stdhtml.UnescapeString(attr(clippy, "value"))
		raw = strings.ReplaceAll(raw, "\r\n", "\n")
		raw = strings.ReplaceAll(raw, "\r", "\n")
		return fence(raw)
	}
	return fence(textJoin(n, "\n"))
}

func fence(s string) string {
	return "```\n" + rstrip(s) + "\n```\n\n"
}

func admonitionBlock(n *html.Node, ctx Context) string {
	kind := "note"
	for _, k := range admonitionKinds {
		if hasClass(n, k) {
			kind = k
			break
		}
	}

	title := ""
	titleTaken := false
	var bodyParts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if elementName(c) == "p" && hasClass(c, "admonition-title") {
			if !titleTaken {
				title = strings.TrimSpace(childrenInline(c, ctx))
				titleTaken = true
			}
			continue
		}
		if isBlankText(c) {
			continue
		}
		bodyParts = append(bodyParts, strings.TrimRight(Block(c, ctx), "\n"))
	}

	var kept []string
	for _, p := range bodyParts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	body := strings.TrimSpace(strings.Join(kept, "\n"))

	header := "!!! " + kind
	if title != "" {
		header += " " + title
	}
	if body == "" {
		return header + "\n\n"
	}
	return header + "\n" + indent(body, 4) + "\n\n"
}

// headingBlock renders h1-h6. Alignment comes from the heading's own
// class list first, else from its first direct md-align child span.
// Inline content is rendered with InHeading set so nested alignment
// spans do not double-wrap, and self-link anchors are stripped.
func headingBlock(n *html.Node, level int, ctx Context) string {
	align := ""
	switch {
	case hasClass(n, "md-center"):
		align = "center"
	case hasClass(n, "md-right"):
		align = "right"
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if elementName(c) == "span" && hasClass(c, "md-align") {
				if hasClass(c, "md-center") {
					align = "center"
				} else if hasClass(c, "md-right") {
					align = "right"
				}
				break
			}
		}
	}

	hctx := ctx
	hctx.InHeading = true
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if elementName(c) == "a" && hasClass(c, "headerlink") {
			continue
		}
		b.WriteString(Inline(c, hctx))
	}
	text := strings.TrimSpace(b.String())

	switch align {
	case "center":
		text = "-> " + text + " <-"
	case "right":
		text = "-> " + text + " ->"
	}
	return strings.Repeat("#", level) + " " + text + "\n\n"
}

// paragraphBlock has one special case: a paragraph whose non-blank
// children are all alignment spans emits one line per span instead of a
// single merged paragraph line.
func paragraphBlock(n *html.Node, ctx Context) string {
	var alignSpans []*html.Node
	onlyAlign := true
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isBlankText(c) {
			continue
		}
		if elementName(c) == "span" && hasClass(c, "md-align") {
			alignSpans = append(alignSpans, c)
			continue
		}
		onlyAlign = false
	}
	if onlyAlign && len(alignSpans) > 0 {
		lines := make([]string, 0, len(alignSpans))
		for _, s := range alignSpans {
			lines = append(lines, strings.TrimSpace(Inline(s, ctx)))
		}
		return rstrip(strings.Join(lines, "\n")) + "\n\n"
	}

	text := strings.TrimSpace(childrenInline(n, ctx))
	if text == "" {
		return ""
	}
	return text + "\n\n"
}

func blockquoteBlock(n *html.Node, ctx Context) string {
	inner := strings.Trim(Blocks(n, ctx), "\n")
	lines := stripBlankEdges(splitLines(inner))
	quoted := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			quoted = append(quoted, ">")
		} else {
			quoted = append(quoted, "> "+line)
		}
	}
	return strings.Join(quoted, "\n") + "\n\n"
}
