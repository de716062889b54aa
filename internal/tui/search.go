package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rentarc/internal/archivedb"
)

type searchPage struct {
	width       int
	height      int
	err         error
	dbPath      string
	searchInput textinput.Model
}

func (m searchPage) Init() tea.Cmd {
	return nil
}

func (m searchPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			if m.searchInput.Focused() {
				return m, m.showSnapshot()
			}
		}

		if msg.Type == tea.KeyTab {
			if !m.searchInput.Focused() {
				m.searchInput.Focus()
			}
		}
		switch msg.String() {
		case "esc":
			if m.searchInput.Focused() {
				m.searchInput.Blur()
			} else {
				return m, tea.Quit
			}
		case "1":
			if !m.searchInput.Focused() {
				return m, func() tea.Msg { return goToTableMsg{} }
			}
		default:
			updated, cmd := m.searchInput.Update(msg)
			m.searchInput = updated
			return m, cmd
		}
	case goToSearchMsg:
		if m.searchInput.Value() == "" {
			m.searchInput = initializeInput()
		}
		m.searchInput.Focus()
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

func initializeInput() textinput.Model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "https://rentry.co/megathread or a snapshot id"
	input.PlaceholderStyle.Width(40)
	input.Width = 50

	return input
}

// showSnapshot resolves the input as a snapshot id first, then as the
// latest snapshot of a URL.
func (m *searchPage) showSnapshot() tea.Cmd {
	ref := strings.TrimSpace(m.searchInput.Value())
	if ref == "" {
		m.err = errors.New("please enter a snapshot id or url")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := archivedb.Open(m.dbPath)
	if err != nil {
		m.err = err
		return nil
	}
	defer db.Close()

	s, err := archivedb.GetByID(ctx, db, ref)
	if err != nil {
		m.err = err
		return nil
	}
	if s == nil {
		s, err = archivedb.LatestByURL(ctx, db, ref)
		if err != nil {
			m.err = err
			return nil
		}
	}
	if s == nil {
		m.err = fmt.Errorf("no snapshot found for %q", ref)
		return nil
	}

	m.err = nil
	item := snapshotToDetail(s)
	return func() tea.Msg { return goToDetailMsg{item: item} }
}

func (m searchPage) View() string {
	instructions := lipgloss.NewStyle().
		MarginTop(min(m.height/4, 10)).
		MarginBottom(2).
		Render("Enter a snapshot id or an archived url to read it")
	var borderColor lipgloss.Color
	borderColor = lipgloss.Color("8")
	if m.searchInput.Focused() {
		borderColor = lipgloss.Color("15")
	}

	input := lipgloss.NewStyle().
		Width(50).
		AlignHorizontal(lipgloss.Left).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(m.searchInput.View())

	var helpInfo string
	if m.searchInput.Focused() {
		helpInfo = helpBar([]string{
			"Enter: open snapshot",
			"Esc: unfocus search input",
		})
	} else {
		helpInfo = helpBar([]string{
			"1: go to table view",
			"Tab: focus search input",
			"Esc: quit rentarc",
		})
	}

	var errLine string
	if m.err != nil {
		errLine = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Render(fmt.Sprintf("Error while looking up snapshot: %v", m.err))
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		renderMenu(1, m.width),
		instructions,
		input,
		errLine,
		lipgloss.NewStyle().MarginTop(2).Render(helpInfo),
	)

	return pageLayout("Search", content)
}
