package render

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// firstNode parses a fragment and returns the first node in the body.
func firstNode(t *testing.T, s string) *html.Node {
	t.Helper()
	nodes, err := html.ParseFragment(strings.NewReader(s), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(nodes) == 0 {
		t.Fatalf("fragment %q produced no nodes", s)
	}
	return nodes[0]
}

func TestInline(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "text run collapse",
			html:     "a\t\tb   c",
			expected: "a b c",
		},
		{
			name:     "bold",
			html:     "<b> hi </b>",
			expected: "**hi**",
		},
		{
			name:     "strong",
			html:     "<strong>hi</strong>",
			expected: "**hi**",
		},
		{
			name:     "italic nested in bold",
			html:     "<b>a <i>b</i></b>",
			expected: "**a *b***",
		},
		{
			name:     "em",
			html:     "<em>soft</em>",
			expected: "*soft*",
		},
		{
			name:     "strikethrough",
			html:     "<del>gone</del>",
			expected: "~~gone~~",
		},
		{
			name:     "strikethrough s tag",
			html:     "<s>gone</s>",
			expected: "~~gone~~",
		},
		{
			name:     "highlight",
			html:     "<mark>bright</mark>",
			expected: "==bright==",
		},
		{
			name:     "inline code",
			html:     "<code> f(x) </code>",
			expected: "`f(x)`",
		},
		{
			name:     "spoiler span",
			html:     `<span class="spoiler">secret</span>`,
			expected: "||secret||",
		},
		{
			name:     "color span with style",
			html:     `<span class="color-change" style="color: #ff0000;">red</span>`,
			expected: "%#ff0000%red%%",
		},
		{
			name:     "color span named color",
			html:     `<span class="color-change" style="font-weight:bold;color:red">x</span>`,
			expected: "%red%x%%",
		},
		{
			name:     "color span without color falls back to text",
			html:     `<span class="color-change">plain</span>`,
			expected: "plain",
		},
		{
			name:     "center align span",
			html:     `<span class="md-align md-center">mid</span>`,
			expected: "-> mid <-",
		},
		{
			name:     "right align span",
			html:     `<span class="md-align md-right">end</span>`,
			expected: "-> end ->",
		},
		{
			name:     "align span without direction",
			html:     `<span class="md-align">x</span>`,
			expected: "x",
		},
		{
			name:     "heading self link is dropped",
			html:     `<a class="headerlink" href="#h">¶</a>`,
			expected: "",
		},
		{
			name:     "link with distinct text",
			html:     `<a href="https://rentry.co/x">the page</a>`,
			expected: "[the page](https://rentry.co/x)",
		},
		{
			name:     "autolink when text matches href",
			html:     `<a href="https://rentry.co/x">https://rentry.co/x</a>`,
			expected: "https://rentry.co/x",
		},
		{
			name:     "empty link text keeps href only",
			html:     `<a href="https://rentry.co/x"></a>`,
			expected: "https://rentry.co/x",
		},
		{
			name:     "image",
			html:     `<img src="/pic.png" alt="a pic">`,
			expected: "![a pic](/pic.png)",
		},
		{
			name:     "image without alt",
			html:     `<img src="/pic.png">`,
			expected: "![](/pic.png)",
		},
		{
			name:     "unknown wrapper is transparent",
			html:     "<u>kept</u>",
			expected: "kept",
		},
		{
			name:     "comment contributes nothing",
			html:     "<!-- hidden -->",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Inline(firstNode(t, tt.html), Context{})
			if result != tt.expected {
				t.Errorf("Inline() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestInlineTextNewlinesBecomeSpaces(t *testing.T) {
	n := &html.Node{Type: html.TextNode, Data: "a\nb\r\nc"}
	if got := Inline(n, Context{}); got != "a b c" {
		t.Errorf("Inline() = %q, want %q", got, "a b c")
	}
}

func TestInlinePreformattedTextIsVerbatim(t *testing.T) {
	n := &html.Node{Type: html.TextNode, Data: "  keep\tthis\n  as-is"}
	if got := Inline(n, Context{InPre: true}); got != n.Data {
		t.Errorf("Inline() = %q, want %q", got, n.Data)
	}
}

func TestAlignSpanInsideHeading(t *testing.T) {
	n := firstNode(t, `<span class="md-align md-center">title</span>`)
	if got := Inline(n, Context{InHeading: true}); got != "title" {
		t.Errorf("Inline() = %q, want %q", got, "title")
	}
}
