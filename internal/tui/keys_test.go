package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/keybinds"
)

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestTypeNavigation(t *testing.T) {
	m := newTestModel(t, &stubAPI{})

	press(m, "left")
	assert.Equal(t, "order", m.selectedType(), "left from no selection picks the last type")
	assert.Equal(t, "order", m.state.SelectedType)

	press(m, "right")
	assert.Equal(t, "user", m.selectedType(), "selection wraps around")

	press(m, "l", "tab")
	assert.Equal(t, "order", m.state.SelectedType)

	press(m, "h")
	assert.Equal(t, "product", m.state.SelectedType)
	assert.True(t, m.canGenerate())
}

func TestTypeSearch(t *testing.T) {
	m := newTestModel(t, &stubAPI{})

	press(m, "/")
	require.Equal(t, ModeTypeSearch, m.mode)
	assert.Contains(t, m.View(), "Select Data Type")

	press(m, "prd")
	matches := m.typePicker.Matches()
	require.Len(t, matches, 1)
	assert.Equal(t, "product", matches[0].Str)

	press(m, "enter")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "product", m.state.SelectedType)
}

func TestTypeSearch_NavigateAndCancel(t *testing.T) {
	m := newTestModel(t, &stubAPI{})

	press(m, "/", "down", "down", "enter")
	assert.Equal(t, "order", m.state.SelectedType)

	press(m, "/", "up", "esc")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "order", m.state.SelectedType, "cancel keeps the selection")
}

func TestTypeSearch_QuitKeyIsText(t *testing.T) {
	m := newTestModel(t, &stubAPI{})

	press(m, "/", "q")
	assert.Equal(t, ModeTypeSearch, m.mode)
	assert.Equal(t, "q", m.input.Value())
}

func TestCountKeys(t *testing.T) {
	m := newTestModel(t, &stubAPI{})

	press(m, "+")
	assert.Equal(t, 11, m.state.RequestedCount)

	press(m, "]", "]")
	assert.Equal(t, 31, m.state.RequestedCount)

	press(m, "-", "[")
	assert.Equal(t, 20, m.state.RequestedCount)

	press(m, "[", "[", "[")
	assert.Equal(t, 1, m.state.RequestedCount, "count never drops below 1")

	for i := 0; i < 11; i++ {
		press(m, "]")
	}
	assert.Equal(t, 100, m.state.RequestedCount, "count never exceeds 100")
}

func TestCountEditor(t *testing.T) {
	m := newTestModel(t, &stubAPI{})

	press(m, "c")
	require.Equal(t, ModeCountEdit, m.mode)
	assert.Equal(t, "10", m.input.Value())

	press(m, "backspace", "backspace", "25", "enter")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 25, m.state.RequestedCount)
	assert.Equal(t, "Count set to 25", m.statusMsg)

	press(m, "c", "esc")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 25, m.state.RequestedCount)
}

func TestSubmitCount(t *testing.T) {
	m := newTestModel(t, &stubAPI{})

	m.submitCount("250")
	assert.Equal(t, 100, m.state.RequestedCount)
	assert.Equal(t, "Count clamped to 100", m.statusMsg)

	m.submitCount("0")
	assert.Equal(t, 1, m.state.RequestedCount)

	m.submitCount("many")
	assert.Equal(t, 1, m.state.RequestedCount)
	assert.Contains(t, m.errorMsg, "Count must be a number")
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t, &stubAPI{})

	press(m, "?")
	require.Equal(t, ModeHelp, m.mode)

	view := m.View()
	assert.Contains(t, view, "Keyboard Shortcuts")
	assert.Contains(t, view, "Generate test data")
	assert.Contains(t, view, "h/left")

	press(m, "?")
	assert.Equal(t, ModeNormal, m.mode)
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t, &stubAPI{})
	assert.True(t, isQuit(press(m, "q")))

	m = newTestModel(t, &stubAPI{})
	press(m, "f")
	require.Equal(t, ModeFilterEdit, m.mode)
	assert.True(t, isQuit(press(m, "ctrl+c")), "ctrl+c quits from any mode")
}

func TestGoToTopSequence(t *testing.T) {
	m := newTestModel(t, &stubAPI{})

	m.resultView.Height = 2
	m.resultView.SetContent("1\n2\n3\n4\n5\n6")
	press(m, "G")
	assert.True(t, m.resultView.AtBottom())

	press(m, "g")
	assert.True(t, m.resultView.AtBottom(), "single g waits for the second key")
	press(m, "g")
	assert.True(t, m.resultView.AtTop())
}

func TestCustomKeybinds(t *testing.T) {
	registry := keybinds.NewDefaultRegistry()
	registry.Unbind(keybinds.ContextDashboard, keybinds.ActionGenerate)
	registry.Register(keybinds.ContextDashboard, "x", keybinds.ActionGenerate)

	api := &stubAPI{payload: userRecords()}
	m := newTestModel(t, api, func(o *Options) { o.Keybinds = registry })

	press(m, "right", "enter")
	settle(m)
	assert.Equal(t, 0, api.callCount())

	press(m, "x")
	settle(m)
	assert.Equal(t, 1, api.callCount())
	assert.Contains(t, m.View(), "[x] Generate Test Data")
}
