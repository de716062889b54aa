package render

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// parseBody parses an HTML fragment and returns its synthesized body
// element, which stands in for the content root.
func parseBody(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	body := findFirst(doc, func(n *html.Node) bool { return elementName(n) == "body" })
	if body == nil {
		t.Fatal("no body element")
	}
	return body
}

func TestDocument(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "empty document",
			html:     "",
			expected: "\n",
		},
		{
			name:     "bold paragraph",
			html:     "<p>Hello <b>world</b></p>",
			expected: "Hello **world**\n",
		},
		{
			name:     "bare text becomes a paragraph",
			html:     "just text",
			expected: "just text\n",
		},
		{
			name:     "toc resolves target level",
			html:     `<h2 id="x">Title</h2><div class="toc"><a href="#x">Title</a></div>`,
			expected: "## Title\n\n[TOC2]\n",
		},
		{
			name:     "toc level one stays bare",
			html:     `<h1 id="top">Top</h1><div class="toc"><a href="#top">Top</a></div>`,
			expected: "# Top\n\n[TOC]\n",
		},
		{
			name:     "toc with unresolvable target",
			html:     `<div class="toc"><a href="#nowhere">?</a></div>`,
			expected: "[TOC]\n",
		},
		{
			name:     "toc without links",
			html:     `<div class="toc"></div>`,
			expected: "[TOC]\n",
		},
		{
			name:     "nested list keeps child under parent item",
			html:     "<ul><li>A<ul><li>B</li></ul></li></ul>",
			expected: "- A\n\n      - B\n",
		},
		{
			name:     "wrapper divs are transparent",
			html:     `<div><div><p>inner</p></div></div>`,
			expected: "inner\n",
		},
		{
			name:     "horizontal rule",
			html:     "<p>a</p><hr><p>b</p>",
			expected: "a\n\n---\n\nb\n",
		},
		{
			name:     "clear floats marker",
			html:     `<p>a</p><span class="clear-floats"></span>`,
			expected: "a\n\n!;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Document(parseBody(t, tt.html))
			if result != tt.expected {
				t.Errorf("Document() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestDocumentNeverEmitsTripleNewlines(t *testing.T) {
	inputs := []string{
		"<p></p><p></p><p>a</p><p></p>",
		"<div>  </div>\n\n\n<div><p>a</p></div>\n\n<ul><li>x</li></ul>",
		"<blockquote><p>a</p></blockquote><hr><hr><hr>",
		`<div class="admonition"><p class="admonition-title">T</p></div><p>tail</p>`,
	}
	for _, in := range inputs {
		out := Document(parseBody(t, in))
		if strings.Contains(out, "\n\n\n") {
			t.Errorf("Document(%q) contains a triple newline: %q", in, out)
		}
		if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
			t.Errorf("Document(%q) does not end in exactly one newline: %q", in, out)
		}
	}
}

func TestCollapseIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"a\n\n\n\nb\n\n",
		"  \n\nx\n\n\ny  ",
		"one\n\ntwo\n",
	}
	for _, in := range inputs {
		once := Collapse(in)
		twice := Collapse(once)
		if once != twice {
			t.Errorf("Collapse not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestHeadingLevels(t *testing.T) {
	root := parseBody(t, `
        <h1 id="a">A</h1>
        <div><h3 id="b">B</h3></div>
        <h2>no id</h2>
        <h4 id="a">shadowed</h4>`)
	levels := headingLevels(root)
	if len(levels) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(levels), levels)
	}
	if levels["b"] != 3 {
		t.Errorf(`levels["b"] = %d, want 3`, levels["b"])
	}
	// Later duplicates win.
	if levels["a"] != 4 {
		t.Errorf(`levels["a"] = %d, want 4`, levels["a"])
	}
}

func TestIndent(t *testing.T) {
	got := indent("a\n\nb", 4)
	want := "    a\n\n    b"
	if got != want {
		t.Errorf("indent() = %q, want %q", got, want)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"a\nb", 2},
		{"a\n", 1},
		{"a\n\n", 2},
	}
	for _, tt := range tests {
		if got := splitLines(tt.in); len(got) != tt.want {
			t.Errorf("splitLines(%q) = %v, want %d lines", tt.in, got, tt.want)
		}
	}
}
