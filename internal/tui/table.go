package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"rentarc/internal/archivedb"
)

type tablePage struct {
	items []archivedb.Snapshot
	table *table.Table

	ready       bool
	cursor      int
	currentPage int
	totalPages  int
	tableWidth  int
	tableHeight int
	titleWidth  int
	urlWidth    int
	dateWidth   int
	sizeWidth   int
	pageSize    int
}

func TablePage(items []archivedb.Snapshot, cursor int, pageSize int, currentPage int) tablePage {
	return tablePage{
		items:       items,
		cursor:      cursor,
		pageSize:    pageSize,
		currentPage: currentPage,
	}
}

func (m tablePage) Init() tea.Cmd {
	return nil
}

func (m tablePage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "enter":
			if len(m.items) > 0 {
				globalCursor := m.currentPage*m.pageSize + m.cursor
				if globalCursor < len(m.items) {
					selected := &m.items[globalCursor]
					return m, func() tea.Msg { return goToDetailMsg{item: snapshotToDetail(selected)} }
				}
			}
			return m, nil
		case "2":
			return m, func() tea.Msg { return goToSearchMsg{} }
		case "k":
			if m.cursor > 0 {
				m.cursor--
			} else if m.currentPage > 0 {
				m.currentPage--
				m.cursor = m.pageSize - 1
			}
			m.updateTableRows()
			return m, nil
		case "j":
			itemsOnCurrentPage := min(m.pageSize, len(m.items)-m.currentPage*m.pageSize)
			if m.cursor < itemsOnCurrentPage-1 {
				m.cursor++
			} else if m.currentPage < m.totalPages-1 {
				m.currentPage++
				m.cursor = 0
			}
			m.updateTableRows()
			return m, nil
		case "g":
			m.currentPage = 0
			m.cursor = 0
			m.updateTableRows()
			return m, nil
		case "G":
			m.currentPage = m.totalPages - 1
			lastPageItems := len(m.items) % m.pageSize
			if lastPageItems == 0 {
				lastPageItems = m.pageSize
			}
			m.cursor = lastPageItems - 1
			m.updateTableRows()
			return m, nil
		case "l":
			if m.currentPage < m.totalPages-1 {
				m.currentPage++
				m.cursor = 0
				m.updateTableRows()
				return m, tea.ClearScreen
			}
			return m, nil
		case "h":
			if m.currentPage > 0 {
				m.currentPage--
				m.cursor = 0
				m.updateTableRows()
				return m, tea.ClearScreen
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.tableWidth = msg.Width - 2
		m.tableHeight = msg.Height
		m.configureTable(msg.Width, msg.Height-4)
		m.ready = true
		return m, tea.ClearScreen
	}

	return m, nil
}

func (m tablePage) View() string {
	if !m.ready {
		return "...Loading"
	}

	if len(m.items) == 0 {
		return "No snapshots found in the archive"
	}

	menu := renderMenu(0, m.tableWidth)
	tableContainer := m.table.Render()

	helpInfo := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Render("j/k: move • l/h: page • g/G: home/end • Space: read • q: quit")

	return pageLayout("Snapshots", lipgloss.JoinVertical(lipgloss.Left, menu, tableContainer, helpInfo))
}

func (m *tablePage) updateTableRows() {
	if len(m.items) == 0 {
		return
	}

	headers := []string{
		truncateString("Title", m.titleWidth),
		truncateString("URL", m.urlWidth),
		truncateString("Date", m.dateWidth),
		truncateString("Size", m.sizeWidth),
	}

	var rows [][]string
	startIdx := m.currentPage * m.pageSize
	endIdx := min(startIdx+m.pageSize, len(m.items))

	for i := startIdx; i < endIdx; i++ {
		item := m.items[i]
		title := item.Title.String
		if title == "" {
			title = "No title"
		}
		rows = append(rows, []string{
			truncateString(title, m.titleWidth),
			truncateString(item.URL, m.urlWidth),
			truncateString(item.FetchedAt.Format("2006-01-02 15:04"), m.dateWidth),
			truncateString(fmt.Sprintf("%d B", item.ByteSize), m.sizeWidth),
		})
	}

	itemsOnCurrentPage := len(rows)
	if itemsOnCurrentPage > 0 {
		if m.cursor >= itemsOnCurrentPage {
			m.cursor = itemsOnCurrentPage - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
	}

	lightBlue := lightBlue()
	darkBlue := darkBlue()

	borderStyle := lipgloss.NewStyle().Foreground(darkBlue)

	headerStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true).
		Foreground(darkBlue).
		Align(lipgloss.Center)

	newTable := table.New().
		Width(m.tableWidth).
		Border(lipgloss.ThickBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // Header row
				return headerStyle
			}
			if row == m.cursor { // Selected row
				return lipgloss.NewStyle().
					Padding(0, 1).
					Background(lightBlue).
					Foreground(lipgloss.Color("0"))
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	m.table = newTable
}

// configureTable sets up the table with dynamic column widths based on available space
func (m *tablePage) configureTable(width, height int) {
	if len(m.items) == 0 {
		return
	}

	m.pageSize = max(5, height-6)
	m.totalPages = (len(m.items) + m.pageSize - 1) / m.pageSize

	if m.currentPage >= m.totalPages {
		m.currentPage = m.totalPages - 1
	}
	if m.currentPage < 0 {
		m.currentPage = 0
	}

	globalCursor := m.currentPage*m.pageSize + m.cursor
	if globalCursor >= len(m.items) {
		globalCursor = len(m.items) - 1
		m.currentPage = globalCursor / m.pageSize
		m.cursor = globalCursor % m.pageSize
	}

	// Fixed columns first, remaining width split between title and URL.
	m.dateWidth = 16
	m.sizeWidth = 9
	borderPaddingWidth := 4 + (3 * 4)
	remainingWidth := width - m.dateWidth - m.sizeWidth - borderPaddingWidth

	m.titleWidth = remainingWidth * 45 / 100
	m.urlWidth = remainingWidth * 55 / 100

	if m.titleWidth < 20 {
		m.titleWidth = 20
	}
	if m.urlWidth < 25 {
		m.urlWidth = 25
	}

	totalUsedWidth := m.titleWidth + m.urlWidth + m.dateWidth + m.sizeWidth + borderPaddingWidth
	if totalUsedWidth < width {
		unusedWidth := width - totalUsedWidth
		m.titleWidth += unusedWidth * 45 / 100
		m.urlWidth += unusedWidth * 55 / 100
	}

	m.updateTableRows()
}
