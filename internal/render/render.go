// Package render converts a parsed rentry.co page fragment into rentry's
// Markdown dialect. It walks the DOM recursively: Block dispatches on each
// node's tag and class list, Inline flattens character-level content, and
// the list and table renderers handle their own nesting. The engine never
// fails on malformed input; unknown elements pass their children through.
package render

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

var (
	hspaceRE    = regexp.MustCompile(`[ \t\r\f\v]+`)
	blankRunsRE = regexp.MustCompile(`\n{3,}`)
	headingRE   = regexp.MustCompile(`^h[1-6]$`)
)

// Context carries the rendering state threaded through recursion. Values
// are derived per call, never mutated in place, so siblings at the same
// tree position share one context.
type Context struct {
	InPre         bool
	ListDepth     int
	InHeading     bool
	HeadingLevels map[string]int
}

// Document renders the children of the content root and normalizes the
// result: runs of three or more newlines collapse to a blank line, the
// edges are trimmed, and exactly one trailing newline remains.
func Document(root *html.Node) string {
	ctx := Context{HeadingLevels: headingLevels(root)}
	return Collapse(Blocks(root, ctx))
}

// Collapse applies the final whitespace discipline. It is idempotent.
func Collapse(s string) string {
	return strings.TrimSpace(blankRunsRE.ReplaceAllString(s, "\n\n")) + "\n"
}

// headingLevels maps heading id attributes to their level, scanning all
// headings under root in document order. Later duplicates win.
func headingLevels(root *html.Node) map[string]int {
	levels := make(map[string]int)
	for _, h := range findAll(root, func(n *html.Node) bool {
		return headingRE.MatchString(elementName(n))
	}) {
		id := attr(h, "id")
		if id == "" {
			continue
		}
		lvl, err := strconv.Atoi(elementName(h)[1:])
		if err != nil {
			continue
		}
		levels[id] = lvl
	}
	return levels
}

// collapseSpace normalizes CRLF/CR to LF and squeezes every run of
// horizontal whitespace within a line down to a single space.
func collapseSpace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = hspaceRE.ReplaceAllString(line, " ")
	}
	return strings.Join(lines, "\n")
}

// splitLines splits on newlines without producing a phantom final line,
// so an empty string yields no lines at all.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// indent pads every non-blank line with n spaces.
func indent(text string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := splitLines(text)
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}

// stripBlankEdges drops leading and trailing all-whitespace lines.
func stripBlankEdges(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func rstrip(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
