package keybinds

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/config"
)

// FileName is the keybinding override file inside the config directory
const FileName = "keybinds.json"

// reservedKeys cannot be rebound so the program can always be stopped
var reservedKeys = map[string]bool{
	"ctrl+c": true,
}

// Config represents the user's keybinding configuration.
// Each section maps an action to a comma-separated list of keys; the keys
// replace the defaults for that action in that context.
type Config struct {
	Version    string            `json:"version"`
	Global     map[string]string `json:"global,omitempty"`
	Dashboard  map[string]string `json:"dashboard,omitempty"`
	TypePicker map[string]string `json:"type_picker,omitempty"`
	TextInput  map[string]string `json:"text_input,omitempty"`
	Help       map[string]string `json:"help,omitempty"`
}

// LoadConfig loads keybinding configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid %s format: %w", FileName, err)
	}

	return &cfg, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, config.FilePermissions)
}

func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:     c.Global,
		ContextDashboard:  c.Dashboard,
		ContextTypePicker: c.TypePicker,
		ContextTextInput:  c.TextInput,
		ContextHelp:       c.Help,
	}
}

// Validate rejects unknown actions, empty key lists and reserved keys
func (c *Config) Validate() error {
	var errs []error
	for context, bindings := range c.sections() {
		for actionName, keyList := range bindings {
			action := Action(actionName)
			if !action.IsKnown() {
				errs = append(errs, fmt.Errorf("%s: unknown action %q", context, actionName))
				continue
			}
			keys := splitKeys(keyList)
			if len(keys) == 0 {
				errs = append(errs, fmt.Errorf("%s: no keys for action %q", context, actionName))
			}
			for _, key := range keys {
				if reservedKeys[key] && action != ActionQuitForce {
					errs = append(errs, fmt.Errorf("%s: key %q is reserved", context, key))
				}
			}
		}
	}
	return errors.Join(errs...)
}

// ApplyConfig applies user configuration to a registry.
// User bindings replace default bindings for the same action.
func ApplyConfig(registry *Registry, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	for context, bindings := range cfg.sections() {
		for actionName, keyList := range bindings {
			action := Action(actionName)
			registry.Unbind(context, action)
			registry.RegisterMultiple(context, splitKeys(keyList), action)
		}
	}

	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(path string) (*Registry, error) {
	registry := NewDefaultRegistry()

	cfg, err := LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		return registry, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", FileName, err)
	}

	if err := ApplyConfig(registry, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply %s: %w", FileName, err)
	}

	return registry, nil
}

func splitKeys(list string) []string {
	var keys []string
	for _, k := range strings.Split(list, ",") {
		// "," itself cannot be bound through the list syntax
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
