package ui

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/divelog-export/internal/divedb"
	"github.com/ngmaloney/divelog-export/internal/export"
)

// AppState represents the current state of the application
type AppState int

const (
	StateLoading AppState = iota // Reading the dive log and deriving stats
	StateList                    // Browsing the dive list
	StateDetail                  // Viewing one dive
	StateError                   // Fatal error (bad path, bad schema)
)

// Model represents the application's state
type Model struct {
	state  AppState
	width  int
	height int
	err    error

	dbPath  string
	entries []diveEntry

	// Display options, toggled in-app
	units      export.UnitSystem
	descending bool

	diveList list.Model
	selected *diveEntry

	spinner spinner.Model
	status  string // feedback from the last export
}

// NewModel creates a new application model for the given export file
func NewModel(dbPath string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		state:   StateLoading,
		dbPath:  dbPath,
		spinner: s,
	}
}

// Init starts reading the dive log
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadLog(m.dbPath))
}

// loadLog reads every dive and its sample series off the export file
func loadLog(dbPath string) tea.Cmd {
	return func() tea.Msg {
		log, err := divedb.Open(dbPath)
		if err != nil {
			return logLoadedMsg{err: err}
		}
		defer log.Close()

		dives, err := log.Dives()
		if err != nil {
			return logLoadedMsg{err: err}
		}

		entries := make([]diveEntry, 0, len(dives))
		for _, dive := range dives {
			series, err := log.Samples(dive.ID)
			if err != nil {
				return logLoadedMsg{err: err}
			}
			entries = append(entries, diveEntry{
				rec:    export.Record{Dive: dive, Stats: series.Stats()},
				series: series,
			})
		}
		return logLoadedMsg{entries: entries}
	}
}

// exportLog writes the CSV next to the database file using the
// browser's current unit and sort settings
func exportLog(dbPath string, entries []diveEntry, units export.UnitSystem, descending bool) tea.Cmd {
	return func() tea.Msg {
		records := make([]export.Record, len(entries))
		for i, entry := range entries {
			records[i] = entry.rec
		}

		path := filepath.Join(filepath.Dir(dbPath), "divelog.csv")
		opts := export.Options{Units: units, Descending: descending}
		if err := export.WriteFile(path, records, opts); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

// sortEntries orders the browser list the same way the CSV is sorted:
// start time with a dive-number tiebreak.
func sortEntries(entries []diveEntry, descending bool) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].rec.Dive, entries[j].rec.Dive
		if !a.StartTime.Equal(b.StartTime) {
			if descending {
				return a.StartTime.After(b.StartTime)
			}
			return a.StartTime.Before(b.StartTime)
		}
		return a.Number < b.Number
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Handle window size
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		if m.state == StateList || m.state == StateDetail {
			m.diveList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil
	}

	// Handle custom messages
	switch msg := msg.(type) {
	case logLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = StateError
			return m, nil
		}
		m.entries = msg.entries
		sortEntries(m.entries, m.descending)
		m.diveList = createDiveList(m.entries, m.width-4, m.height-8)
		m.state = StateList
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Export failed: %v", msg.err))
		} else {
			m.status = fmt.Sprintf("Exported %d dives to %s", len(m.entries), msg.path)
		}
		return m, nil
	}

	// Handle keyboard input
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// While the list filter is active, all other keys belong to it
		filtering := m.state == StateList && m.diveList.FilterState() == list.Filtering

		if !filtering {
			switch keyMsg.String() {
			case "q":
				return m, tea.Quit

			case "u":
				if m.units == export.Metric {
					m.units = export.Imperial
				} else {
					m.units = export.Metric
				}
				return m, nil

			case "s":
				if m.state == StateList {
					m.descending = !m.descending
					sortEntries(m.entries, m.descending)
					m.diveList.SetItems(diveListItems(m.entries))
					return m, nil
				}

			case "e":
				if m.state == StateList || m.state == StateDetail {
					m.status = "Exporting..."
					return m, exportLog(m.dbPath, m.entries, m.units, m.descending)
				}
			}
		}

		switch m.state {
		case StateList:
			if keyMsg.Type == tea.KeyEnter && !filtering {
				if item, ok := m.diveList.SelectedItem().(diveItem); ok {
					entry := item.entry
					m.selected = &entry
					m.state = StateDetail
				}
				return m, nil
			}

		case StateDetail:
			if keyMsg.Type == tea.KeyEsc || keyMsg.String() == "backspace" {
				m.selected = nil
				m.state = StateList
				return m, nil
			}
			return m, nil

		case StateError:
			// Any remaining key exits; there is nothing to recover to
			return m, tea.Quit
		}
	}

	// Update the appropriate component based on state
	switch m.state {
	case StateLoading:
		m.spinner, cmd = m.spinner.Update(msg)
	case StateList:
		m.diveList, cmd = m.diveList.Update(msg)
	}

	return m, cmd
}

func diveListItems(entries []diveEntry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, entry := range entries {
		items[i] = diveItem{entry: entry}
	}
	return items
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.state {
	case StateLoading:
		return m.viewLoading()
	case StateList:
		return m.viewList()
	case StateDetail:
		return m.viewDetail()
	case StateError:
		return m.viewError()
	}

	return ""
}

func (m Model) viewLoading() string {
	return lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		titleStyle.Render("Dive Log"),
		"",
		fmt.Sprintf("%s Reading %s...", m.spinner.View(), m.dbPath),
	)
}

func (m Model) viewList() string {
	title := titleStyle.Render("Dive Log")
	subtitle := mutedStyle.Render(fmt.Sprintf("%d dives · %s · %s",
		len(m.entries), m.unitLabel(), m.orderLabel()))

	help := helpStyle.Render("↑/↓: Navigate • Enter: Open • U: Units • S: Sort • E: Export CSV • Q: Quit")

	sections := []string{title, subtitle, "", m.diveList.View()}
	if m.status != "" {
		sections = append(sections, "", m.status)
	}
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewDetail() string {
	if m.selected == nil {
		return "No dive selected"
	}

	help := helpStyle.Render("Esc: Back • U: Units • E: Export CSV • Q: Quit")

	width := m.width - 4
	if width > 72 {
		width = 72
	}

	sections := []string{m.renderDetailPane(width)}
	if m.status != "" {
		sections = append(sections, m.status)
	}
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewError() string {
	title := errorStyle.Render("✗ Error")

	var errorMsg string
	if m.err != nil {
		errorMsg = m.err.Error()
	} else {
		errorMsg = "An unknown error occurred"
	}

	help := helpStyle.Render("Press any key to quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", errorMsg, "", help)
}

func (m Model) unitLabel() string {
	if m.units == export.Imperial {
		return "ft/°F"
	}
	return "m/°C"
}

func (m Model) orderLabel() string {
	if m.descending {
		return "newest first"
	}
	return "oldest first"
}
