package render

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func findTable(t *testing.T, s string) *html.Node {
	t.Helper()
	body := parseBody(t, s)
	tbl := findFirst(body, func(n *html.Node) bool { return elementName(n) == "table" })
	if tbl == nil {
		t.Fatalf("fragment %q has no table", s)
	}
	return tbl
}

func TestRenderTable(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "right aligned header style",
			html:     `<table><tr><th style="text-align:right">N</th></tr><tr><td>1</td></tr></table>`,
			expected: "| N |\n| ---: |\n| 1 |\n\n",
		},
		{
			name: "alignment sources per column",
			html: `<table>
                <tr><th align="CENTER">A</th><th class="md-right">B</th><th>C</th></tr>
                <tr><td>1</td><td>2</td><td>3</td></tr>
            </table>`,
			expected: "| A | B | C |\n| :---: | ---: | --- |\n| 1 | 2 | 3 |\n\n",
		},
		{
			name:     "style wins over align attribute",
			html:     `<table><tr><th style="text-align: center" align="right">A</th></tr></table>`,
			expected: "| A |\n| :---: |\n\n",
		},
		{
			name:     "newline in cell is escaped",
			html:     `<table><tr><th>A</th></tr><tr><td>x<br>y</td></tr></table>`,
			expected: "| A |\n| --- |\n| x\\ny |\n\n",
		},
		{
			name:     "inline markup in cells",
			html:     `<table><tr><th><b>H</b></th></tr><tr><td><code>v</code></td></tr></table>`,
			expected: "| **H** |\n| --- |\n| `v` |\n\n",
		},
		{
			name:     "header only table",
			html:     `<table><tr><th>only</th></tr></table>`,
			expected: "| only |\n| --- |\n\n",
		},
		{
			name:     "table with thead and tbody",
			html:     `<table><thead><tr><th>H</th></tr></thead><tbody><tr><td>d</td></tr></tbody></table>`,
			expected: "| H |\n| --- |\n| d |\n\n",
		},
		{
			name:     "empty table",
			html:     "<table></table>",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := renderTable(findTable(t, tt.html), Context{})
			if result != tt.expected {
				t.Errorf("renderTable() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestRenderTableRowsNeverWrap(t *testing.T) {
	tbl := findTable(t, `<table><tr><th>A</th></tr><tr><td>multi<br>line<br>cell</td></tr></table>`)
	out := renderTable(tbl, Context{})
	body := strings.TrimRight(out, "\n")
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(line, "| ") || !strings.HasSuffix(line, " |") {
			t.Errorf("row %q is not a single pipe delimited line", line)
		}
	}
}

func TestDetectCellAlign(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{"no hints", `<table><tr><td>x</td></tr></table>`, ""},
		{"style left", `<table><tr><td style="text-align: left">x</td></tr></table>`, "left"},
		{"align attribute", `<table><tr><td align=" Right ">x</td></tr></table>`, "right"},
		{"bogus align attribute", `<table><tr><td align="middle">x</td></tr></table>`, ""},
		{"center class", `<table><tr><td class="md-center">x</td></tr></table>`, "center"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := findTable(t, tt.html)
			cell := findFirst(tbl, func(n *html.Node) bool { return elementName(n) == "td" })
			if cell == nil {
				t.Fatal("no td")
			}
			if got := detectCellAlign(cell); got != tt.expected {
				t.Errorf("detectCellAlign() = %q, want %q", got, tt.expected)
			}
		})
	}
}
