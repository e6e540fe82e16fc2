package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/types"
)

// stubAPI is a scripted generation service for model tests
type stubAPI struct {
	mu       sync.Mutex
	payload  types.GeneratePayload
	err      error
	probeErr error
	block    chan struct{} // when set, Generate waits for it to close
	calls    []string
}

func (s *stubAPI) Generate(ctx context.Context, entityType string, count int) (types.GeneratePayload, error) {
	s.mu.Lock()
	s.calls = append(s.calls, entityType)
	block, payload, err := s.block, s.payload, s.err
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return types.GeneratePayload{}, ctx.Err()
		}
	}
	return payload, err
}

func (s *stubAPI) ProbeTemplates(ctx context.Context) error {
	return s.probeErr
}

func (s *stubAPI) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// keyMsg builds the tea.KeyMsg whose String() is key
func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// press feeds keys to the model and returns the last command
func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	return cmd
}

// settle waits for every controller flow and applies the final state
func settle(m *Model) {
	m.controller.Wait()
	m.Update(stateChangedMsg{})
}
