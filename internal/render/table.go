package render

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var alignStyleRE = regexp.MustCompile(`(?i)text-align\s*:\s*(left|center|right)\b`)

// renderTable produces a pipe-delimited table: header row, alignment
// separator row, then one physical line per data row. Cell text with
// embedded newlines gets a literal \n escape so rows never wrap.
func renderTable(n *html.Node, ctx Context) string {
	rows := findAll(n, func(d *html.Node) bool { return elementName(d) == "tr" })
	if len(rows) == 0 {
		return ""
	}

	headerCells := directCells(rows[0])
	headers := make([]string, 0, len(headerCells))
	aligns := make([]string, 0, len(headerCells))
	for _, c := range headerCells {
		headers = append(headers, strings.TrimSpace(childrenInline(c, ctx)))
		switch detectCellAlign(c) {
		case "center":
			aligns = append(aligns, ":---:")
		case "right":
			aligns = append(aligns, "---:")
		default:
			aligns = append(aligns, "---")
		}
	}

	out := []string{
		"| " + strings.Join(headers, " | ") + " |",
		"| " + strings.Join(aligns, " | ") + " |",
	}
	for _, r := range rows[1:] {
		cells := directCells(r)
		vals := make([]string, 0, len(cells))
		for _, c := range cells {
			v := strings.TrimSpace(childrenInline(c, ctx))
			vals = append(vals, strings.ReplaceAll(v, "\n", `\n`))
		}
		out = append(out, "| "+strings.Join(vals, " | ")+" |")
	}
	return strings.Join(out, "\n") + "\n\n"
}

// directCells returns the row's immediate th/td children only; nested
// tables keep their own cells.
func directCells(tr *html.Node) []*html.Node {
	var cells []*html.Node
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if name := elementName(c); name == "th" || name == "td" {
			cells = append(cells, c)
		}
	}
	return cells
}

// detectCellAlign checks, in priority order, an inline text-align style,
// a legacy align attribute, and rentry's alignment classes. Empty means
// unspecified (left).
func detectCellAlign(c *html.Node) string {
	if m := alignStyleRE.FindStringSubmatch(attr(c, "style")); m != nil {
		return strings.ToLower(m[1])
	}
	if a := strings.ToLower(strings.TrimSpace(attr(c, "align"))); a == "left" || a == "center" || a == "right" {
		return a
	}
	if hasClass(c, "md-center") {
		return "center"
	}
	if hasClass(c, "md-right") {
		return "right"
	}
	return ""
}
