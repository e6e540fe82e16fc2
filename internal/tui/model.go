package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/analytics"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/config"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/export"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/keybinds"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/types"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/workflow"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeTypeSearch
	ModeCountEdit
	ModeFilterEdit
	ModeHelp
	ModeAnalytics
)

// Uploader stores an encoded result set remotely and returns its key
type Uploader interface {
	Upload(ctx context.Context, key, entityType string, records []types.TestRecord, format export.Format) (string, error)
}

// StatsStore is the analytics surface shown in the analytics overlay
type StatsStore interface {
	Stats() ([]analytics.Stats, error)
}

// Model represents the TUI state
type Model struct {
	ctx        context.Context
	controller *workflow.Controller
	keybinds   *keybinds.Registry
	settings   *config.Settings
	uploader   Uploader   // nil when no bucket is configured
	analytics  StatsStore // nil when analytics are disabled
	log        zerolog.Logger
	changes    chan struct{}

	// Clipboard and file sinks, replaced in tests
	copyFn func([]types.TestRecord, export.Format) error
	saveFn func(dir, entityType string, records []types.TestRecord, format export.Format) (string, error)

	mode        Mode
	entityTypes []string
	typeIndex   int // -1 until a type is chosen
	typePicker  *TypePickerState

	// Latest controller snapshot
	state      workflow.State
	stats      workflow.Stats
	generating bool // a generation started here has not been reported yet

	// Active JMESPath filter over the results
	filterExpr  string
	filterError string

	input      textinput.Model // Shared by the type search, count and filter editors
	resultView viewport.Model
	modalView  viewport.Model // Help and analytics overlays
	spinner    spinner.Model

	// UI state
	width     int
	height    int
	statusMsg string
	errorMsg  string
}

// stateChangedMsg signals that the controller state changed
type stateChangedMsg struct{}

// exportDoneMsg reports the outcome of a copy, save or upload
type exportDoneMsg struct {
	status string
	err    error
}

// analyticsLoadedMsg carries the stats for the analytics overlay
type analyticsLoadedMsg struct {
	stats []analytics.Stats
	err   error
}

// Init starts listening for controller changes
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForStateChange(), m.spinner.Tick)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewport()

	case stateChangedMsg:
		m.refresh()
		cmd = m.waitForStateChange()

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)

	case exportDoneMsg:
		if msg.err != nil {
			m.errorMsg = msg.err.Error()
			m.statusMsg = ""
		} else {
			m.errorMsg = ""
			m.statusMsg = msg.status
		}

	case analyticsLoadedMsg:
		if msg.err != nil {
			m.errorMsg = "Failed to load analytics: " + msg.err.Error()
			m.mode = ModeNormal
			break
		}
		m.modalView.SetContent(m.renderAnalyticsContent(msg.stats))
		m.modalView.GotoTop()
	}

	return m, cmd
}

// View renders the TUI
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHelp:
		return m.renderHelp()
	case ModeAnalytics:
		return m.renderAnalytics()
	default:
		return m.renderMain()
	}
}

// refresh takes a fresh snapshot of the controller state
func (m *Model) refresh() {
	m.state = m.controller.Snapshot()
	m.stats = m.controller.Stats()

	m.updateResultView()

	if m.generating && !m.state.IsLoading {
		m.generating = false
		if m.state.GenerateErr != nil {
			m.statusMsg = ""
			m.errorMsg = "Failed to generate test data"
		} else {
			m.statusMsg = fmt.Sprintf("Generated %d records", len(m.state.Results))
		}
		m.resultView.GotoTop()
	}
}

// selectedType returns the chosen data type, empty when none is chosen
func (m *Model) selectedType() string {
	if m.typeIndex < 0 || m.typeIndex >= len(m.entityTypes) {
		return ""
	}
	return m.entityTypes[m.typeIndex]
}

// canGenerate reports whether the generate action is enabled
func (m *Model) canGenerate() bool {
	return !m.state.IsLoading && m.selectedType() != ""
}

// updateViewport sizes the viewports to the terminal
func (m *Model) updateViewport() {
	width := max(m.width-PanelBorder-2, 10)
	height := max(m.height-HeaderLines-ControlsLines-CardsLines-FooterLines-PanelBorder, 3)

	m.resultView.Width = width
	m.resultView.Height = height
	m.modalView.Width = max(m.width-ModalWidthMargin-PanelBorder, 10)
	m.modalView.Height = max(m.height-ModalHeightMargin-PanelBorder-2, 3)
	m.input.Width = max(width-20, 10)

	m.updateResultView()
}
