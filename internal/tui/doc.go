/*
Package tui implements the terminal dashboard for the QA Automation Service Hub.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: view state plus a workflow.Controller that owns the data
  - Update: processes key presses and controller change notifications
  - View: a pure projection of the latest controller snapshot

# Key Components

  - model.go: Model struct, modes and the Update loop
  - init.go: construction and program startup
  - keys.go: keyboard input routed through keybinds.Registry
  - actions.go: side effects (generation, status checks, exports)
  - render.go: header, controls, stat cards, results and footer
  - type_picker_state.go: fuzzy search over the configured data types

# State Management

The controller mutates its state from background goroutines and calls the
notify hook after every change. The hook does a non-blocking send on a
one-slot channel; waitForStateChange turns that signal into a
stateChangedMsg so the event loop takes a fresh snapshot and re-renders.

# Keybind System

Keybinds come from keybinds.NewDefaultRegistry, optionally overridden by
keybinds.json in the config directory. Contexts map to modes:
dashboard (ModeNormal), type_picker (ModeTypeSearch), text_input
(ModeCountEdit, ModeFilterEdit) and help (ModeHelp, ModeAnalytics).

# Example Usage

	err := tui.Run(ctx, tui.Options{
		API:      client,
		Settings: settings,
		Keybinds: registry,
		Log:      log,
	})
*/
package tui
