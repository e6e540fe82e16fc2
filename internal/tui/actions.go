package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/config"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/export"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/filter"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/types"
)

var errNoResults = errors.New("no results to export")

// waitForStateChange returns a Cmd that waits for the next controller change
func (m *Model) waitForStateChange() tea.Cmd {
	changes, done := m.changes, m.ctx.Done()
	return func() tea.Msg {
		select {
		case <-changes:
			return stateChangedMsg{}
		case <-done:
			return nil
		}
	}
}

// generate starts a generation with the current selection and count
func (m *Model) generate() tea.Cmd {
	if m.state.IsLoading {
		m.statusMsg = "Generation already in progress"
		return nil
	}
	entityType := m.selectedType()
	if entityType == "" {
		m.statusMsg = "Select a data type first"
		return nil
	}

	m.controller.GenerateSelected(m.ctx)
	m.generating = true
	m.errorMsg = ""
	m.statusMsg = fmt.Sprintf("Generating %d %s records...", m.state.RequestedCount, entityType)
	m.refresh()
	return nil
}

// checkStatus re-runs the connectivity probe
func (m *Model) checkStatus() {
	m.controller.CheckAPIStatus(m.ctx)
	m.statusMsg = "Checking API status..."
}

// stepType moves the type selection by delta, wrapping around
func (m *Model) stepType(delta int) {
	n := len(m.entityTypes)
	if n == 0 {
		return
	}

	next := 0
	switch {
	case m.typeIndex < 0 && delta < 0:
		next = n - 1
	case m.typeIndex < 0:
		next = 0
	default:
		next = ((m.typeIndex+delta)%n + n) % n
	}
	m.selectType(next)
}

// selectType makes entityTypes[index] the current selection
func (m *Model) selectType(index int) {
	if index < 0 || index >= len(m.entityTypes) {
		return
	}
	m.typeIndex = index
	m.controller.SelectType(m.entityTypes[index])
	m.refresh()
}

// adjustCount changes the requested count, clamped to the allowed range
func (m *Model) adjustCount(delta int) {
	m.controller.SetRequestedCount(config.ClampCount(m.state.RequestedCount + delta))
	m.refresh()
}

// submitCount applies a typed count
func (m *Model) submitCount(value string) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		m.errorMsg = fmt.Sprintf("Count must be a number between %d and %d", config.MinCount, config.MaxCount)
		return
	}

	clamped := config.ClampCount(n)
	m.controller.SetRequestedCount(clamped)
	m.refresh()

	m.errorMsg = ""
	if clamped != n {
		m.statusMsg = fmt.Sprintf("Count clamped to %d", clamped)
	} else {
		m.statusMsg = fmt.Sprintf("Count set to %d", clamped)
	}
}

// submitFilter applies a JMESPath filter to the displayed results
func (m *Model) submitFilter(value string) {
	expr := strings.TrimSpace(value)
	if expr == "" {
		m.clearFilter()
		return
	}
	if !filter.IsValidJMESPath(expr) {
		m.errorMsg = fmt.Sprintf("Invalid JMESPath expression: %s", expr)
		return
	}

	m.filterExpr = expr
	m.errorMsg = ""
	m.statusMsg = "Filter: " + expr
	m.updateResultView()
	m.resultView.GotoTop()
}

func (m *Model) clearFilter() {
	if m.filterExpr == "" {
		return
	}
	m.filterExpr = ""
	m.filterError = ""
	m.statusMsg = "Filter cleared"
	m.updateResultView()
}

// exportRecords returns the records a copy, save or upload acts on.
// An active filter must narrow the records rather than project them.
func (m *Model) exportRecords() ([]types.TestRecord, error) {
	records := m.state.Results
	if m.filterExpr != "" {
		filtered, err := filter.Records(records, m.filterExpr)
		if err != nil {
			return nil, err
		}
		records = filtered
	}
	if len(records) == 0 {
		return nil, errNoResults
	}
	return records, nil
}

// exportType names export files after the result type when there is only one
func (m *Model) exportType() string {
	if unique := m.controller.UniqueTypes(); len(unique) == 1 {
		return unique[0]
	}
	return ""
}

func (m *Model) exportFormat() export.Format {
	format, err := export.ParseFormat(m.settings.ExportFormat)
	if err != nil {
		m.log.Warn().Err(err).Str("format", m.settings.ExportFormat).Msg("falling back to json export")
		return export.FormatJSON
	}
	return format
}

// copyResults copies the current records to the clipboard
func (m *Model) copyResults() tea.Cmd {
	records, err := m.exportRecords()
	if err != nil {
		m.errorMsg = "Copy failed: " + err.Error()
		return nil
	}

	copyFn, format := m.copyFn, m.exportFormat()
	return func() tea.Msg {
		if err := copyFn(records, format); err != nil {
			return exportDoneMsg{err: fmt.Errorf("failed to copy to clipboard: %w", err)}
		}
		return exportDoneMsg{status: fmt.Sprintf("Copied %d records to clipboard", len(records))}
	}
}

// saveResults writes the current records into the export directory
func (m *Model) saveResults() tea.Cmd {
	records, err := m.exportRecords()
	if err != nil {
		m.errorMsg = "Save failed: " + err.Error()
		return nil
	}

	saveFn, dir, entityType, format := m.saveFn, m.settings.ExportDir, m.exportType(), m.exportFormat()
	return func() tea.Msg {
		path, err := saveFn(dir, entityType, records, format)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{status: fmt.Sprintf("Saved %d records to %s", len(records), path)}
	}
}

// uploadResults sends the current records to the configured bucket
func (m *Model) uploadResults() tea.Cmd {
	if m.uploader == nil {
		m.errorMsg = "S3 export is not configured (set s3.bucket)"
		return nil
	}
	records, err := m.exportRecords()
	if err != nil {
		m.errorMsg = "Upload failed: " + err.Error()
		return nil
	}

	m.statusMsg = "Uploading..."
	ctx, uploader, entityType, format := m.ctx, m.uploader, m.exportType(), m.exportFormat()
	return func() tea.Msg {
		key, err := uploader.Upload(ctx, "", entityType, records, format)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{status: fmt.Sprintf("Uploaded %d records to S3 (key=%s)", len(records), key)}
	}
}

// openAnalytics shows the analytics overlay and loads its data
func (m *Model) openAnalytics() tea.Cmd {
	if m.analytics == nil {
		m.errorMsg = "Analytics are disabled"
		return nil
	}

	m.mode = ModeAnalytics
	m.modalView.SetContent(styleSubtle.Render("Loading analytics..."))
	store := m.analytics
	return func() tea.Msg {
		stats, err := store.Stats()
		return analyticsLoadedMsg{stats: stats, err: err}
	}
}
