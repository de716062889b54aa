package render

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// renderList emits one marker line per item plus indented continuation
// lines. The marker column sits at 4 x depth spaces; everything after an
// item's first line is pushed two spaces further.
func renderList(n *html.Node, ctx Context) string {
	ordered := elementName(n) == "ol"
	depth := ctx.ListDepth
	baseIndent := strings.Repeat(" ", 4*depth)
	contIndent := strings.Repeat(" ", 4*depth+2)

	// Pre and heading state never leak into list items.
	itemCtx := Context{ListDepth: depth, HeadingLevels: ctx.HeadingLevels}

	var lines []string
	idx := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if elementName(c) != "li" {
			continue
		}
		idx++
		marker := "-"
		if ordered {
			marker = fmt.Sprintf("%d.", idx)
		}
		itemLines := renderListItem(c, itemCtx)
		if len(itemLines) == 0 {
			continue
		}
		lines = append(lines, baseIndent+marker+" "+itemLines[0])
		for _, extra := range itemLines[1:] {
			if extra == "" {
				lines = append(lines, "")
			} else {
				lines = append(lines, contIndent+extra)
			}
		}
	}
	return rstrip(strings.Join(lines, "\n")) + "\n\n"
}

// renderListItem returns the item's output lines without any indentation:
// the caller owns the marker and continuation columns. Item content is
// grouped into paragraphs (each <p> child is its own paragraph, runs of
// bare inline content between them are flushed as one), paragraphs are
// separated by a single blank line, and nested lists follow at depth+1.
func renderListItem(li *html.Node, ctx Context) []string {
	isTask := hasClass(li, "task-list")
	checkbox := findFirst(li, func(d *html.Node) bool {
		return elementName(d) == "input" && strings.EqualFold(attr(d, "type"), "checkbox")
	})
	checked := checkbox != nil && hasAttr(checkbox, "checked")

	var nestedLists []*html.Node
	var content []*html.Node
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if isBlankText(c) {
			continue
		}
		if name := elementName(c); name == "ul" || name == "ol" {
			nestedLists = append(nestedLists, c)
			continue
		}
		content = append(content, c)
	}

	var paragraphs []string
	var buf strings.Builder
	flush := func() {
		if s := strings.TrimSpace(buf.String()); s != "" {
			paragraphs = append(paragraphs, s)
		}
		buf.Reset()
	}
	for _, c := range content {
		if elementName(c) == "p" {
			flush()
			if s := strings.TrimSpace(childrenInline(c, ctx)); s != "" {
				paragraphs = append(paragraphs, s)
			}
			continue
		}
		buf.WriteString(Inline(c, ctx))
	}
	flush()

	if isTask && checkbox != nil {
		prefix := "[ ]"
		if checked {
			prefix = "[x]"
		}
		if len(paragraphs) > 0 {
			paragraphs[0] = strings.TrimSpace(prefix + " " + paragraphs[0])
		} else {
			paragraphs = []string{prefix}
		}
	}
	if len(paragraphs) == 0 {
		paragraphs = []string{""}
	}

	var lines []string
	for i, p := range paragraphs {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, splitLines(p)...)
	}

	for _, nl := range nestedLists {
		nctx := Context{ListDepth: ctx.ListDepth + 1, HeadingLevels: ctx.HeadingLevels}
		nested := strings.TrimRight(renderList(nl, nctx), "\n")
		if nested == "" {
			continue
		}
		if len(lines) > 0 && lines[len(lines)-1] != "" {
			lines = append(lines, "")
		}
		lines = append(lines, splitLines(nested)...)
	}

	return lines
}
