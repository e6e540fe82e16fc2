package tui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/analytics"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/filter"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/keybinds"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/types"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"} // Dark goldenrod / Yellow
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleCardValue = lipgloss.NewStyle().
			Bold(true)
)

// renderMain renders the dashboard
func (m *Model) renderMain() string {
	sections := []string{
		m.renderHeader(),
		m.renderControls(),
		m.renderCards(),
		m.renderResults(),
		m.renderFooter(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader() string {
	title := styleTitle.Render("QA Automation Service Hub")
	return title + "\n" + styleSubtle.Render("Service: "+m.settings.BaseURL)
}

// renderControls renders the type tabs, the count and the generate action
func (m *Model) renderControls() string {
	var tabs []string
	for i, t := range m.entityTypes {
		label := " " + t + " "
		if i == m.typeIndex {
			tabs = append(tabs, styleSelected.Bold(true).Render(label))
		} else {
			tabs = append(tabs, styleSubtle.Render(label))
		}
	}
	typeLine := "Data type: " + strings.Join(tabs, " ")
	if m.typeIndex < 0 {
		typeLine += styleSubtle.Render("  (" + m.keybinds.GetBindingString(keybinds.ContextDashboard, keybinds.ActionTypeNext) + " to choose)")
	}

	var countLine string
	if m.mode == ModeCountEdit {
		countLine = "Count: " + m.input.View()
	} else {
		countLine = fmt.Sprintf("Count: %d", m.state.RequestedCount)
	}
	if m.mode == ModeFilterEdit {
		countLine += "   Filter: " + m.input.View()
	} else if m.filterExpr != "" {
		countLine += "   Filter: " + styleWarning.Render(m.filterExpr)
	}

	generateKey := m.keybinds.GetBindingString(keybinds.ContextDashboard, keybinds.ActionGenerate)
	var actionLine string
	switch {
	case m.state.IsLoading:
		actionLine = m.spinner.View() + styleWarning.Render(" Generating...")
	case m.canGenerate():
		actionLine = styleSuccess.Render(fmt.Sprintf("[%s] Generate Test Data", generateKey))
	default:
		actionLine = styleSubtle.Render(fmt.Sprintf("[%s] Generate Test Data (select a data type)", generateKey))
	}

	return lipgloss.JoinVertical(lipgloss.Left, typeLine, countLine, actionLine)
}

// renderCards renders the three summary cards
func (m *Model) renderCards() string {
	width := max((m.width-CardCount*2)/CardCount, CardMinWidth)

	card := func(label, value string, valueStyle lipgloss.Style, border lipgloss.AdaptiveColor) string {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Width(width).
			Padding(0, 1).
			Render(styleSubtle.Render(label) + "\n" + valueStyle.Render(value))
	}

	apiStyle, apiBorder := statusStyle(m.stats.APIStatus)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Generated", fmt.Sprintf("%d", m.stats.TotalGenerated), styleCardValue, colorGray),
		card("Data Types", fmt.Sprintf("%d", m.stats.DataTypes), styleCardValue, colorGray),
		card("API Status", m.stats.APIStatus.String(), apiStyle.Bold(true), apiBorder),
	)
}

// statusStyle picks the card color for an API status
func statusStyle(status types.APIStatus) (lipgloss.Style, lipgloss.AdaptiveColor) {
	switch status {
	case types.APIStatusConnected:
		return styleSuccess, colorGreen
	case types.APIStatusChecking:
		return styleWarning, colorYellow
	default:
		return styleError, colorRed
	}
}

// renderResults renders the results panel, or the type search when it is open
func (m *Model) renderResults() string {
	var title, body string
	if m.mode == ModeTypeSearch {
		title = styleTitle.Render("Select Data Type")
		body = m.renderTypePicker()
	} else {
		title = styleTitle.Render(fmt.Sprintf("Generated Data (%d)", len(m.state.Results)))
		if m.filterExpr != "" {
			title += styleSubtle.Render("  filtered")
		}
		body = m.resultView.View()
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Width(max(m.width-PanelBorder, 10)).
		Render(title + "\n" + body)
}

func (m *Model) renderTypePicker() string {
	lines := []string{m.input.View(), ""}

	matches := m.typePicker.Matches()
	if len(matches) == 0 {
		lines = append(lines, styleSubtle.Render("No matching data types"))
	}
	for i, match := range matches {
		if i >= TypePickerRows {
			lines = append(lines, styleSubtle.Render(fmt.Sprintf("  ... %d more", len(matches)-TypePickerRows)))
			break
		}
		label := highlightMatch(match.Str, match.MatchedIndexes)
		if i == m.typePicker.Index() {
			lines = append(lines, styleSelected.Render("> "+match.Str))
		} else {
			lines = append(lines, "  "+label)
		}
	}
	return strings.Join(lines, "\n")
}

// highlightMatch renders the matched runes of s in the title color
func highlightMatch(s string, matched []int) string {
	if len(matched) == 0 {
		return s
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	for i, r := range []rune(s) {
		if hit[i] {
			b.WriteString(styleTitle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (m *Model) renderFooter() string {
	var status string
	switch {
	case m.errorMsg != "":
		status = styleError.Render(m.errorMsg)
	case m.statusMsg != "":
		status = styleSubtle.Render(m.statusMsg)
	default:
		status = styleSubtle.Render("Ready")
	}

	help := fmt.Sprintf("%s help • %s analytics • %s quit",
		m.keybinds.GetBindingString(keybinds.ContextDashboard, keybinds.ActionOpenHelp),
		m.keybinds.GetBindingString(keybinds.ContextDashboard, keybinds.ActionOpenAnalytics),
		m.keybinds.GetBindingString(keybinds.ContextDashboard, keybinds.ActionQuit),
	)
	return status + "\n" + styleSubtle.Render(help)
}

// updateResultView rebuilds the results viewport content
func (m *Model) updateResultView() {
	m.resultView.SetContent(m.resultContent())
}

func (m *Model) resultContent() string {
	records := m.state.Results

	if m.filterExpr != "" {
		out, err := filter.Apply(records, m.filterExpr)
		if err != nil {
			m.filterError = err.Error()
			return styleError.Render("Filter error: " + m.filterError)
		}
		m.filterError = ""
		return out
	}

	if len(records) == 0 {
		if m.state.IsLoading {
			return styleSubtle.Render("Loading...")
		}
		return styleSubtle.Render("No data generated yet. Choose a data type and press " +
			m.keybinds.GetBindingString(keybinds.ContextDashboard, keybinds.ActionGenerate) + ".")
	}

	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderRecord(i, r))
	}
	return b.String()
}

// renderRecord renders one record header followed by its indented data
func renderRecord(i int, r types.TestRecord) string {
	header := fmt.Sprintf("%s %s %s %s",
		styleSubtle.Render(fmt.Sprintf("#%d", i+1)),
		styleTitle.Render(r.ID),
		styleWarning.Render("["+r.Type+"]"),
		styleSubtle.Render(createdLabel(r)),
	)

	indent := strings.Repeat(" ", RecordDataIndent)
	data, err := json.MarshalIndent(r.Data, indent, "  ")
	if err != nil {
		return header + "\n" + indent + fmt.Sprintf("%v", r.Data)
	}
	return header + "\n" + indent + string(data)
}

// createdLabel shows a relative time when createdAt parses, else the raw value
func createdLabel(r types.TestRecord) string {
	if t, ok := r.CreatedTime(); ok {
		return humanize.Time(t)
	}
	return r.CreatedAt
}

// renderHelp renders the help overlay
func (m *Model) renderHelp() string {
	return m.renderModal("Keyboard Shortcuts")
}

// renderAnalytics renders the analytics overlay
func (m *Model) renderAnalytics() string {
	return m.renderModal("Call Analytics")
}

func (m *Model) renderModal(title string) string {
	footer := styleSubtle.Render(fmt.Sprintf("%s scroll • %s close",
		m.keybinds.GetBindingString(keybinds.ContextHelp, keybinds.ActionScrollDown),
		m.keybinds.GetBindingString(keybinds.ContextHelp, keybinds.ActionCloseModal),
	))

	content := styleTitle.Render(title) + "\n\n" + m.modalView.View() + "\n\n" + footer

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Padding(0, 1).
		Width(max(m.width-ModalWidthMargin, 20)).
		Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

type helpEntry struct {
	action keybinds.Action
	label  string
}

// helpSections groups dashboard actions for the help overlay
var helpSections = []struct {
	title   string
	entries []helpEntry
}{
	{"Generation", []helpEntry{
		{keybinds.ActionTypePrev, "Previous data type"},
		{keybinds.ActionTypeNext, "Next data type"},
		{keybinds.ActionTypeSearch, "Search data types"},
		{keybinds.ActionCountInc, "Count +1"},
		{keybinds.ActionCountDec, "Count -1"},
		{keybinds.ActionCountIncLarge, "Count +10"},
		{keybinds.ActionCountDecLarge, "Count -10"},
		{keybinds.ActionCountEdit, "Type a count"},
		{keybinds.ActionGenerate, "Generate test data"},
		{keybinds.ActionCheckStatus, "Check API status"},
	}},
	{"Results", []helpEntry{
		{keybinds.ActionFilter, "Filter with JMESPath"},
		{keybinds.ActionFilterClear, "Clear filter"},
		{keybinds.ActionCopy, "Copy to clipboard"},
		{keybinds.ActionSave, "Save to export directory"},
		{keybinds.ActionUpload, "Upload to S3"},
		{keybinds.ActionScrollUp, "Scroll up"},
		{keybinds.ActionScrollDown, "Scroll down"},
		{keybinds.ActionPageUp, "Page up"},
		{keybinds.ActionPageDown, "Page down"},
		{keybinds.ActionGoToTop, "Go to top"},
		{keybinds.ActionGoToBottom, "Go to bottom"},
	}},
	{"General", []helpEntry{
		{keybinds.ActionOpenAnalytics, "Call analytics"},
		{keybinds.ActionOpenHelp, "This help"},
		{keybinds.ActionQuit, "Quit"},
	}},
}

// renderHelpContent lists the dashboard bindings from the registry
func (m *Model) renderHelpContent() string {
	var b strings.Builder
	for i, section := range helpSections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styleWarning.Render(section.title) + "\n")
		for _, entry := range section.entries {
			keys := m.keybinds.GetBindingString(keybinds.ContextDashboard, entry.action)
			b.WriteString(fmt.Sprintf("  %-18s %s\n", keys, entry.label))
		}
	}
	return b.String()
}

// renderAnalyticsContent renders one block per operation and data type
func (m *Model) renderAnalyticsContent(stats []analytics.Stats) string {
	if len(stats) == 0 {
		return styleSubtle.Render("No calls recorded yet")
	}

	var b strings.Builder
	for i, s := range stats {
		if i > 0 {
			b.WriteString("\n")
		}

		name := s.Operation
		if s.EntityType != "" {
			name += " " + s.EntityType
		}
		rateStyle := styleSuccess
		if s.SuccessRate() < 100 {
			rateStyle = styleWarning
		}
		if s.SuccessRate() < 50 {
			rateStyle = styleError
		}

		b.WriteString(styleTitle.Render(name) + styleSubtle.Render("  last called "+humanize.Time(s.LastCalled)) + "\n")
		b.WriteString(fmt.Sprintf("  Calls: %d   Success: %s   Errors: %d   Network: %d\n",
			s.TotalCalls, rateStyle.Render(fmt.Sprintf("%.0f%%", s.SuccessRate())), s.ErrorCount, s.NetworkErrors))
		b.WriteString(fmt.Sprintf("  Records: %s   Duration: avg %.0fms, min %dms, max %dms\n",
			humanize.Comma(int64(s.TotalRecords)), s.AvgDurationMs, s.MinDurationMs, s.MaxDurationMs))
		if len(s.StatusCodes) > 0 {
			b.WriteString("  Status codes: " + formatStatusCodes(s.StatusCodes) + "\n")
		}
	}
	return b.String()
}

func formatStatusCodes(codes map[int]int) string {
	keys := make([]int, 0, len(codes))
	for code := range codes {
		keys = append(keys, code)
	}
	sort.Ints(keys)

	parts := make([]string, 0, len(keys))
	for _, code := range keys {
		label := fmt.Sprintf("%d", code)
		if code == 0 {
			label = "no response"
		}
		parts = append(parts, fmt.Sprintf("%s×%d", label, codes[code]))
	}
	return strings.Join(parts, ", ")
}
