// Package tui is the terminal browser for the archive: a paginated table
// of snapshots, a search box resolving ids and URLs, and a detail page
// that renders the stored markdown.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"rentarc/internal/archivedb"
	"rentarc/internal/config"
)

type viewMode int

const (
	tableView viewMode = iota
	searchView
	detailView
)

// Navigation messages
type goToDetailMsg struct {
	item *snapshotDetail
}
type goToSearchMsg struct{}
type goToTableMsg struct{}

type rootPage struct {
	viewMode   viewMode
	detailPage detailPage
	tablePage  tablePage
	searchPage searchPage
	width      int
	height     int
	err        error
}

type snapshotDetail struct {
	id        string
	title     string
	url       string
	markdown  string
	fetchedAt time.Time
}

func Run(ctx context.Context) error {
	dbPath, err := config.LoadDBPath()
	if err != nil {
		return err
	}

	db, err := archivedb.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed opening the rentarc database: %w", err)
	}
	defer db.Close()

	if err := archivedb.InitSchema(db); err != nil {
		return err
	}

	// Fetch all snapshots up front for full pagination.
	rows, err := archivedb.ListSince(ctx, db, time.Time{}, 0)
	if err != nil {
		return fmt.Errorf("query failed while reading from the rentarc database: %w", err)
	}

	m := rootPage{
		tablePage:  TablePage(rows, 0, 10, 0),
		searchPage: searchPage{dbPath: dbPath},
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func (m rootPage) Init() tea.Cmd {
	return nil
}

func (m rootPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.viewMode {
	case tableView:
		m.tablePage, cmd = update[tablePage](m.tablePage, msg)
	case detailView:
		m.detailPage, cmd = update[detailPage](m.detailPage, msg)
	case searchView:
		m.searchPage, cmd = update[searchPage](m.searchPage, msg)
	}

	switch msg := msg.(type) {
	case goToSearchMsg:
		m.viewMode = searchView
		m.searchPage, cmd = update[searchPage](m.searchPage, msg)
	case goToTableMsg:
		m.viewMode = tableView
	case goToDetailMsg:
		m.viewMode = detailView
		m.detailPage, cmd = update[detailPage](m.detailPage, msg)
	case tea.WindowSizeMsg:
		var cmds []tea.Cmd

		m.tablePage, cmd = update[tablePage](m.tablePage, msg)
		cmds = append(cmds, cmd)

		m.detailPage, cmd = update[detailPage](m.detailPage, msg)
		cmds = append(cmds, cmd)

		m.searchPage, cmd = update[searchPage](m.searchPage, msg)
		cmds = append(cmds, cmd)

		m.width = msg.Width - 4
		m.height = msg.Height - 4

		return m, tea.Batch(cmds...)
	}

	return m, cmd
}

func (m rootPage) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v", m.err)
	}

	switch m.viewMode {
	case detailView:
		return m.detailPage.View()
	case searchView:
		return m.searchPage.View()
	case tableView:
		return m.tablePage.View()
	default:
		return "Unknown View"
	}
}

func update[T any](model tea.Model, msg tea.Msg) (T, tea.Cmd) {
	newModel, cmd := model.Update(msg)
	return newModel.(T), cmd
}
