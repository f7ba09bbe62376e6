package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/taxgo/internal/calculation"
	"github.com/rgehrsitz/taxgo/internal/compare"
	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/pkg/money"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	profilePath string
	profile     *domain.UserTaxProfile
	engine      *compare.CompareEngine

	// Comparison data
	compSet   *compare.ComparisonSet
	logRegime domain.Regime

	logTable table.Model
	notes    viewport.Model

	err            error
	loading        bool
	loadingMessage string
}

// NewModel creates an application model for a profile file and tax configuration
func NewModel(profilePath string, cfg *domain.TaxConfiguration) Model {
	return Model{
		currentScene:   SceneSummary,
		profilePath:    profilePath,
		engine:         compare.NewCompareEngine(calculation.NewCalculationEngine(cfg)),
		logRegime:      domain.RegimeOld,
		logTable:       newLogTable(),
		notes:          viewport.New(80, 16),
		width:          80,
		height:         24,
		loading:        true,
		loadingMessage: "Loading profile...",
	}
}

// Init loads the profile
func (m Model) Init() tea.Cmd {
	return loadProfileCmd(m.profilePath)
}

// loadProfileCmd returns a command that reads the profile file
func loadProfileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		profile, err := config.NewInputParser().LoadProfile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ProfileLoadedMsg{Profile: profile}
	}
}

// compareCmd returns a command that runs both regimes
func compareCmd(engine *compare.CompareEngine, profile *domain.UserTaxProfile) tea.Cmd {
	return func() tea.Msg {
		set, err := engine.Compare(context.Background(), profile)
		return ComparisonCompleteMsg{Set: set, Err: err}
	}
}

func newLogTable() table.Model {
	t := table.New(
		table.WithColumns(logColumns(80)),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.BorderForeground(ColorBorder).BorderBottom(true).Bold(true)
	styles.Selected = styles.Selected.Foreground(ColorPrimary).Bold(true)
	t.SetStyles(styles)
	return t
}

func logColumns(width int) []table.Column {
	item := width - 10 - 16 - 16 - 14 - 10
	if item < 20 {
		item = 20
	}
	return []table.Column{
		{Title: "Section", Width: 10},
		{Title: "Item", Width: item},
		{Title: "Amount", Width: 16},
		{Title: "Cap", Width: 16},
		{Title: "Tax Saved", Width: 14},
	}
}

func logRows(entries []domain.LogEntry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		capText, saved := "", ""
		if e.Cap != nil {
			capText = money.FormatRupeesWhole(*e.Cap)
		}
		if e.TaxSaved != nil {
			saved = money.FormatRupeesWhole(*e.TaxSaved)
		}
		rows = append(rows, table.Row{e.Section, e.Item, money.FormatRupeesWhole(e.Amount), capText, saved})
	}
	return rows
}

// refreshLog loads the log of the selected regime into the table
func (m *Model) refreshLog() {
	if m.compSet == nil {
		return
	}
	r := m.compSet.ResultFor(m.logRegime)
	if r == nil || r.Result == nil {
		m.logTable.SetRows(nil)
		return
	}
	m.logTable.SetRows(logRows(r.Result.Log))
	m.logTable.GotoTop()
}

// resize fits the table and viewport to the terminal
func (m *Model) resize() {
	body := m.height - 8
	if body < 5 {
		body = 5
	}
	m.logTable.SetColumns(logColumns(m.width - 4))
	m.logTable.SetHeight(body - 3)
	m.notes.Width = m.width - 4
	m.notes.Height = body
}
