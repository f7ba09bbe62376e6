package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/taxgo/internal/compare"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/internal/output"
	"github.com/rgehrsitz/taxgo/pkg/money"
	"github.com/shopspring/decimal"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(
			fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error())))
	}
	if m.loading {
		return m.renderApp(BorderStyle.Render("⠋ " + m.loadingMessage))
	}

	var content string
	switch m.currentScene {
	case SceneSummary:
		content = m.renderSummary()
	case SceneLog:
		content = m.renderLog()
	case SceneNotes:
		content = BorderStyle.Render(m.notes.View())
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar, tabs and status bar
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		m.renderTabs(),
		content,
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("TAXGO - Old vs New Regime")
	subtitle := ""
	if m.compSet != nil {
		name := m.compSet.ProfileName
		if name == "" {
			name = m.profilePath
		}
		subtitle = SubtitleStyle.Render(fmt.Sprintf("  %s · FY %s", name, m.compSet.FiscalYear))
	}
	return title + subtitle
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, len(tabs))
	for i, s := range tabs {
		label := fmt.Sprintf("%d %s", i+1, s)
		if s == m.currentScene {
			parts = append(parts, ActiveTabStyle.Render(label))
		} else {
			parts = append(parts, InactiveTabStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("tab", "next"),
		formatShortcut("o/n", "log regime"),
		formatShortcut("r", "reload"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderSummary shows both regimes side by side
func (m Model) renderSummary() string {
	if m.compSet == nil {
		return BorderStyle.Render("No results yet")
	}
	cards := []string{}
	for _, r := range m.compSet.Results() {
		cards = append(cards, m.renderRegimeCard(r))
	}
	verdict := HighlightStyle.Render(fmt.Sprintf("Recommended: %s, saves %s",
		m.compSet.Recommended.Title(), money.FormatRupeesWhole(m.compSet.Savings)))
	if len(m.compSet.HardBlocks) > 0 {
		verdict += "\n" + ErrorStyle.Render(fmt.Sprintf("%d input problem(s): see tab 3", len(m.compSet.HardBlocks)))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		verdict,
	)
}

func (m Model) renderRegimeCard(r *compare.ComparisonResult) string {
	style := BorderStyle
	title := r.RegimeName
	if r.Regime == m.compSet.Recommended {
		style = RecommendedBorderStyle
		title += " ✓"
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(title),
		metricLine("Gross income", r.GrossIncome),
		metricLine("Exemptions", r.Exemptions),
		metricLine("Deductions", r.Deductions),
		metricLine("Taxable income", r.TaxableIncome),
		metricLine("Capital gains tax", r.CapitalGainsTax),
		metricLine("Final tax", r.FinalTax),
		MetricLabelStyle.Render("Effective rate") + MetricValueStyle.Render(money.FormatPercent(r.EffectiveRate)),
		metricLine("Balance due", r.BalanceDue),
	}
	for _, c := range []domain.LogCategory{domain.CategoryWealthBuilding, domain.CategoryExpenseBased, domain.CategoryDonation} {
		if saved, ok := r.SavingsByCategory[c]; ok {
			lines = append(lines, metricLine("Saved: "+output.CategoryTitle(c), saved))
		}
	}
	return style.Render(strings.Join(lines, "\n"))
}

func metricLine(label string, v decimal.Decimal) string {
	return MetricLabelStyle.Render(label) + MetricValueStyle.Render(money.FormatRupeesWhole(v))
}

func (m Model) renderLog() string {
	header := SubtitleStyle.Render(fmt.Sprintf("%s log (o: Old, n: New)", m.logRegime.Title()))
	return lipgloss.JoinVertical(lipgloss.Left, header, BorderStyle.Render(m.logTable.View()))
}

// notesContent lists hard blocks, warnings and recommendations
func (m Model) notesContent() string {
	if m.compSet == nil {
		return ""
	}
	var sb strings.Builder
	if len(m.compSet.HardBlocks) > 0 {
		sb.WriteString(ErrorStyle.Render("INPUT PROBLEMS") + "\n")
		for _, b := range m.compSet.HardBlocks {
			sb.WriteString("! " + b + "\n")
		}
		sb.WriteString("\n")
	}
	if len(m.compSet.Warnings) > 0 {
		sb.WriteString(WarningStyle.Render("WARNINGS") + "\n")
		for _, w := range m.compSet.Warnings {
			sb.WriteString("- " + w + "\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(HighlightStyle.Render("RECOMMENDATIONS") + "\n")
	for _, r := range m.compSet.Recommendations {
		sb.WriteString("• " + r + "\n")
	}
	return sb.String()
}

func (m Model) renderHelp() string {
	rows := [][2]string{
		{"1 / 2 / 3", "Summary, calculation log, warnings"},
		{"tab", "Next tab (shift+tab: previous)"},
		{"o / n", "Show the Old or New regime log"},
		{"↑ / ↓", "Scroll the log or notes"},
		{"r", "Reload the profile and recalculate"},
		{"esc", "Go back"},
		{"q", "Quit"},
	}
	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(HelpKeyStyle.Render(r[0]) + " " + r[1] + "\n")
	}
	return BorderStyle.Render(strings.TrimRight(sb.String(), "\n"))
}
