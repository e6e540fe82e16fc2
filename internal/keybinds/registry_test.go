package keybinds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_Match(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		context Context
		key     string
		want    Action
	}{
		{ContextDashboard, "enter", ActionGenerate},
		{ContextDashboard, "left", ActionTypePrev},
		{ContextDashboard, "l", ActionTypeNext},
		{ContextDashboard, "+", ActionCountInc},
		{ContextDashboard, "]", ActionCountIncLarge},
		{ContextDashboard, "r", ActionCheckStatus},
		{ContextDashboard, "ctrl+c", ActionQuitForce},
		{ContextTypePicker, "esc", ActionTextCancel},
		{ContextHelp, "?", ActionCloseModal},
	}

	for _, tt := range tests {
		got, ok := r.Match(tt.context, tt.key)
		require.True(t, ok, "%s/%s", tt.context, tt.key)
		assert.Equal(t, tt.want, got, "%s/%s", tt.context, tt.key)
	}

	_, ok := r.Match(ContextTextInput, "q")
	assert.False(t, ok, "typing q in an input must not quit")
}

func TestMatchMultiKey(t *testing.T) {
	r := NewDefaultRegistry()

	_, complete, partial := r.MatchMultiKey(ContextDashboard, "g")
	assert.False(t, complete)
	assert.True(t, partial)

	action, complete, partial := r.MatchMultiKey(ContextDashboard, "g")
	assert.True(t, complete)
	assert.False(t, partial)
	assert.Equal(t, ActionGoToTop, action)

	// Broken sequence falls back to the second key alone
	r.MatchMultiKey(ContextDashboard, "g")
	action, complete, _ = r.MatchMultiKey(ContextDashboard, "j")
	assert.True(t, complete)
	assert.Equal(t, ActionScrollDown, action)

	action, complete, partial = r.MatchMultiKey(ContextDashboard, "G")
	assert.True(t, complete)
	assert.False(t, partial)
	assert.Equal(t, ActionGoToBottom, action)

	r.MatchMultiKey(ContextDashboard, "g")
	r.ClearMultiKeyState(ContextDashboard)
	action, _, _ = r.MatchMultiKey(ContextDashboard, "j")
	assert.Equal(t, ActionScrollDown, action)
}

func TestGetBindingString(t *testing.T) {
	r := NewDefaultRegistry()
	assert.Equal(t, "h/left", r.GetBindingString(ContextDashboard, ActionTypePrev))
	assert.Equal(t, "ctrl+c", r.GetBindingString(ContextDashboard, ActionQuitForce))
	assert.Equal(t, "unbound", r.GetBindingString(ContextTextInput, ActionUpload))
}

func TestListBindings_IncludesGlobal(t *testing.T) {
	r := NewDefaultRegistry()
	bindings := r.ListBindings(ContextTextInput)

	var actions []Action
	for _, b := range bindings {
		actions = append(actions, b.Action)
	}
	assert.ElementsMatch(t, []Action{ActionQuitForce, ActionTextCancel, ActionTextSubmit}, actions)
}

func TestApplyConfig_ReplacesDefaults(t *testing.T) {
	r := NewDefaultRegistry()
	cfg := &Config{Dashboard: map[string]string{"generate": "x, ctrl+g"}}

	require.NoError(t, ApplyConfig(r, cfg))

	_, ok := r.Match(ContextDashboard, "enter")
	assert.False(t, ok)
	action, ok := r.Match(ContextDashboard, "ctrl+g")
	assert.True(t, ok)
	assert.Equal(t, ActionGenerate, action)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Dashboard: map[string]string{"save": "w"}}, false},
		{"unknown action", Config{Dashboard: map[string]string{"launch": "w"}}, true},
		{"empty keys", Config{Dashboard: map[string]string{"save": " , "}}, true},
		{"reserved key", Config{Dashboard: map[string]string{"save": "ctrl+c"}}, true},
		{"force quit may keep ctrl+c", Config{Global: map[string]string{"quit_force": "ctrl+c,ctrl+q"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	r, err := LoadOrDefault(filepath.Join(dir, FileName))
	require.NoError(t, err)
	action, _ := r.Match(ContextDashboard, "enter")
	assert.Equal(t, ActionGenerate, action)

	path := filepath.Join(dir, FileName)
	require.NoError(t, SaveConfig(&Config{Version: "1", Dashboard: map[string]string{"check_status": "R"}}, path))

	r, err = LoadOrDefault(path)
	require.NoError(t, err)
	action, _ = r.Match(ContextDashboard, "R")
	assert.Equal(t, ActionCheckStatus, action)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, err = LoadOrDefault(path)
	assert.Error(t, err)
}
