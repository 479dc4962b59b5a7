package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// Rally browser layout
const (
	maxRallies    = 100 // Rows loaded per variant
	browserChrome = 12  // Rows taken by title, tabs, stats, borders and help
)

// RallyKeyMap defines the key bindings of the rally browser.
type RallyKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Quit    key.Binding
	Refresh key.Binding
}

// ShortHelp implements help.KeyMap.
func (k RallyKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Refresh, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k RallyKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Refresh, k.Quit},
	}
}

// DefaultRallyKeyMap returns default key bindings.
func DefaultRallyKeyMap() RallyKeyMap {
	return RallyKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next variant"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev variant"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RallyBrowserModel lists the longest rallies of each variant.
type RallyBrowserModel struct {
	variants []registry.GameInfo
	cursor   int
	store    *storage.Store
	rallies  []storage.RallyRecord
	stats    *storage.RallyStats
	err      error
	table    table.Model
	help     help.Model
	keys     RallyKeyMap
	width    int
	height   int
}

// NewRallyBrowserModel creates a browser opened on the given variant,
// or on the first registered one when it is unknown.
func NewRallyBrowserModel(store *storage.Store, variant string, width, height int) RallyBrowserModel {
	m := RallyBrowserModel{
		variants: registry.List(),
		store:    store,
		keys:     DefaultRallyKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	for i, v := range m.variants {
		if v.ID == variant {
			m.cursor = i
		}
	}
	m.table = m.createTable()
	m.load()
	return m
}

// Variant returns the ID of the variant on display.
func (m RallyBrowserModel) Variant() string {
	if len(m.variants) == 0 {
		return ""
	}
	return m.variants[m.cursor].ID
}

func (m *RallyBrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Bounces", Width: 8},
		{Title: "Peak speed", Width: 11},
		{Title: "Ticks", Width: 8},
		{Title: "Conceded", Width: 9},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-browserChrome, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the rallies and stats of the current variant.
func (m *RallyBrowserModel) load() {
	m.rallies, m.stats, m.err = nil, nil, nil
	if m.store != nil && len(m.variants) > 0 {
		variant := m.Variant()
		m.rallies, m.err = m.store.LongestRallies(variant, maxRallies)
		if m.err == nil {
			m.stats, m.err = m.store.RallyStats(variant)
		}
	}
	m.updateRows()
}

func (m *RallyBrowserModel) updateRows() {
	rows := make([]table.Row, len(m.rallies))
	for i, r := range m.rallies {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Bounces),
			fmt.Sprintf("%.1f", r.PeakSpeed),
			fmt.Sprintf("%d", r.Ticks),
			r.Conceded,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init implements tea.Model.
func (m RallyBrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m RallyBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			if len(m.variants) > 0 {
				m.cursor = (m.cursor + 1) % len(m.variants)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			if len(m.variants) > 0 {
				m.cursor = (m.cursor + len(m.variants) - 1) % len(m.variants)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m RallyBrowserModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleStyle.Render("LONGEST RALLIES")))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderTabs()))
	b.WriteString("\n\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(m.renderTableContent())))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m RallyBrowserModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.cursor {
			tabs[i] = activeStyle.Render(v.Title)
		} else {
			tabs[i] = tabStyle.Render(v.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderStats renders the aggregate line of the current variant.
func (m RallyBrowserModel) renderStats() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	if m.stats == nil || m.stats.Rallies == 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, style.Render("no rallies yet"))
	}
	s := m.stats
	line := fmt.Sprintf("%d rallies · best %d bounces · avg %.1f · top speed %.1f · last %s",
		s.Rallies, s.MostBounces, s.AvgBounces, s.TopSpeed, s.LastPlayed.Format("Jan 02 15:04"))
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, style.Render(line))
}

func (m RallyBrowserModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Rally log unavailable.")
	case m.err != nil:
		return emptyStyle.Render("Cannot read rally log:\n" + m.err.Error())
	case len(m.rallies) == 0:
		return emptyStyle.Render("No rallies recorded yet.\nScore a goal to log one!")
	}
	return m.table.View()
}

// RunRallyBrowser runs the rally browser until the user quits.
func RunRallyBrowser(store *storage.Store, variant string, width, height int) error {
	p := tea.NewProgram(
		NewRallyBrowserModel(store, variant, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
