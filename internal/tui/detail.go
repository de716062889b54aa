package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type detailPage struct {
	width        int
	height       int
	viewport     viewport.Model
	selectedItem *snapshotDetail
}

func (m detailPage) Init() tea.Cmd {
	return nil
}

func (m detailPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, func() tea.Msg { return goToTableMsg{} }
		case "k":
			m.viewport.ScrollUp(1)
			return m, nil
		case "j":
			m.viewport.ScrollDown(1)
			return m, nil
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width - 4
		m.height = msg.Height - 4
		if m.selectedItem != nil {
			m.viewport = setupViewport(m.width, m.height, m.selectedItem)
		}
		return m, nil
	case goToDetailMsg:
		m.selectedItem = msg.item
		m.viewport = setupViewport(m.width, m.height, m.selectedItem)
		return m, nil
	}

	return m, nil
}

func (m detailPage) View() string {
	if m.selectedItem == nil {
		return "No snapshot selected"
	}

	title := m.selectedItem.title
	if title == "" {
		title = "No title"
	}

	lightBlue := lightBlue()
	darkBlue := darkBlue()

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(darkBlue)

	titleStyle := lipgloss.NewStyle().
		Foreground(darkBlue).
		Bold(true).
		Align(lipgloss.Left).
		MarginBottom(1).
		Width(m.width - 8)

	urlStyle := lipgloss.NewStyle().
		Foreground(lightBlue).
		Italic(true).
		MarginBottom(1).
		Width(m.width - 8)

	metadataStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		MarginBottom(1)

	scrollStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Bold(true)

	titleRendered := titleStyle.Render(title)

	var urlRendered string
	if m.selectedItem.url != "" {
		urlRendered = urlStyle.Render("URL: " + m.selectedItem.url)
	} else {
		urlRendered = urlStyle.Render("URL: Not available")
	}

	metadataRendered := metadataStyle.Render(fmt.Sprintf("Snapshot: %s • Date: %s",
		m.selectedItem.id, m.selectedItem.fetchedAt.Format("2006-01-02 15:04")))

	scrollPercent := m.viewport.ScrollPercent()
	if scrollPercent < 0 {
		scrollPercent = 0
	} else if scrollPercent > 1 {
		scrollPercent = 1
	}
	scrollRendered := scrollStyle.Render(fmt.Sprintf("Scroll: %d%%", int(scrollPercent*100)))

	helpInfo := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		MarginTop(1).
		Render("j/k: scroll • g/G: top/bottom • esc/q: back")

	headerContent := lipgloss.JoinVertical(lipgloss.Left,
		titleRendered,
		urlRendered,
		metadataRendered)

	content := lipgloss.JoinVertical(lipgloss.Left,
		headerContent,
		m.viewport.View(),
		scrollRendered,
		helpInfo)

	return pageLayout(titleRendered, borderStyle.Render(content))
}

func setupViewport(width, height int, selectedItem *snapshotDetail) viewport.Model {
	contentWidth := width
	if contentWidth < 20 {
		contentWidth = 20
	}

	renderedContent := renderMarkdown(selectedItem.markdown, contentWidth)

	viewportHeight := height - 10
	if viewportHeight < 5 {
		viewportHeight = 5
	}

	viewport := viewport.New(contentWidth, viewportHeight)
	viewport.SetContent(renderedContent)

	return viewport
}

// renderMarkdown uses Glamour to render markdown content with terminal styling
func renderMarkdown(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return "No content available"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithWordWrap(width),
		glamour.WithStandardStyle("dark"),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}

	return rendered
}
