package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/keybinds"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Global keys (work in all modes)
	if action, ok := m.keybinds.Match(keybinds.ContextGlobal, msg.String()); ok && action == keybinds.ActionQuitForce {
		return tea.Quit
	}

	switch m.mode {
	case ModeNormal:
		return m.handleDashboardKeys(msg)
	case ModeTypeSearch:
		return m.handleTypeSearchKeys(msg)
	case ModeCountEdit, ModeFilterEdit:
		return m.handleTextInputKeys(msg)
	case ModeHelp, ModeAnalytics:
		return m.handleOverlayKeys(msg)
	}
	return nil
}

// handleDashboardKeys handles keys on the main dashboard
func (m *Model) handleDashboardKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok, partial := m.keybinds.MatchMultiKey(keybinds.ContextDashboard, msg.String())
	if partial || !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		return tea.Quit

	case keybinds.ActionTypePrev:
		m.stepType(-1)
	case keybinds.ActionTypeNext:
		m.stepType(1)
	case keybinds.ActionTypeSearch:
		return m.openInput(ModeTypeSearch, "", "search data types", 0)

	case keybinds.ActionCountInc:
		m.adjustCount(1)
	case keybinds.ActionCountDec:
		m.adjustCount(-1)
	case keybinds.ActionCountIncLarge:
		m.adjustCount(10)
	case keybinds.ActionCountDecLarge:
		m.adjustCount(-10)
	case keybinds.ActionCountEdit:
		return m.openInput(ModeCountEdit, strconv.Itoa(m.state.RequestedCount), "1-100", CountInputLimit)

	case keybinds.ActionGenerate:
		return m.generate()
	case keybinds.ActionCheckStatus:
		m.checkStatus()

	case keybinds.ActionFilter:
		return m.openInput(ModeFilterEdit, m.filterExpr, "[?data.price > `50`]", FilterInputLimit)
	case keybinds.ActionFilterClear:
		m.clearFilter()
	case keybinds.ActionCopy:
		return m.copyResults()
	case keybinds.ActionSave:
		return m.saveResults()
	case keybinds.ActionUpload:
		return m.uploadResults()

	case keybinds.ActionScrollUp:
		m.resultView.LineUp(1)
	case keybinds.ActionScrollDown:
		m.resultView.LineDown(1)
	case keybinds.ActionPageUp:
		m.resultView.ViewUp()
	case keybinds.ActionPageDown:
		m.resultView.ViewDown()
	case keybinds.ActionGoToTop:
		m.resultView.GotoTop()
	case keybinds.ActionGoToBottom:
		m.resultView.GotoBottom()

	case keybinds.ActionOpenHelp:
		m.mode = ModeHelp
		m.modalView.SetContent(m.renderHelpContent())
		m.modalView.GotoTop()
	case keybinds.ActionOpenAnalytics:
		return m.openAnalytics()
	}

	return nil
}

// handleTypeSearchKeys handles the fuzzy data type search
func (m *Model) handleTypeSearchKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextTypePicker, msg.String()); ok {
		switch action {
		case keybinds.ActionSelectUp:
			m.typePicker.Move(-1)
			return nil
		case keybinds.ActionSelectDown:
			m.typePicker.Move(1)
			return nil
		case keybinds.ActionTextSubmit:
			if _, index, found := m.typePicker.Selected(); found {
				m.selectType(index)
			}
			m.closeInput()
			return nil
		case keybinds.ActionTextCancel:
			m.closeInput()
			return nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.typePicker.Query() {
		m.typePicker.SetQuery(m.input.Value())
	}
	return cmd
}

// handleTextInputKeys handles the count and filter editors
func (m *Model) handleTextInputKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextTextInput, msg.String()); ok {
		switch action {
		case keybinds.ActionTextSubmit:
			value, mode := m.input.Value(), m.mode
			m.closeInput()
			if mode == ModeCountEdit {
				m.submitCount(value)
			} else {
				m.submitFilter(value)
			}
			return nil
		case keybinds.ActionTextCancel:
			m.closeInput()
			return nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// handleOverlayKeys handles the help and analytics overlays
func (m *Model) handleOverlayKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextHelp, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.mode = ModeNormal
	case keybinds.ActionScrollUp:
		m.modalView.LineUp(1)
	case keybinds.ActionScrollDown:
		m.modalView.LineDown(1)
	case keybinds.ActionQuitForce:
		return tea.Quit
	}
	return nil
}

// openInput switches to an editing mode with a focused text input
func (m *Model) openInput(mode Mode, value, placeholder string, limit int) tea.Cmd {
	m.mode = mode
	m.input.Reset()
	m.input.CharLimit = limit
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()

	if mode == ModeTypeSearch {
		m.typePicker.SetQuery("")
	}
	return tea.Batch(m.input.Focus(), textinput.Blink)
}

func (m *Model) closeInput() {
	m.input.Blur()
	m.mode = ModeNormal
}
