package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/config"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/export"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/keybinds"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/workflow"
)

// Options configures the dashboard
type Options struct {
	API       workflow.API
	Settings  *config.Settings
	Keybinds  *keybinds.Registry // defaults when nil
	Uploader  Uploader           // nil disables S3 upload
	Analytics StatsStore         // nil disables the analytics overlay
	Log       zerolog.Logger
}

// New creates a new TUI model and starts the connectivity probe
func New(ctx context.Context, opts Options) (*Model, error) {
	if opts.API == nil {
		return nil, errors.New("api client is required")
	}
	if opts.Settings == nil {
		return nil, errors.New("settings are required")
	}

	registry := opts.Keybinds
	if registry == nil {
		registry = keybinds.NewDefaultRegistry()
	}

	input := textinput.New()
	input.Prompt = "> "

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = styleWarning

	m := &Model{
		ctx:         ctx,
		keybinds:    registry,
		settings:    opts.Settings,
		uploader:    opts.Uploader,
		analytics:   opts.Analytics,
		log:         opts.Log,
		changes:     make(chan struct{}, 1),
		copyFn:      export.CopyToClipboard,
		saveFn:      export.SaveFile,
		mode:        ModeNormal,
		entityTypes: opts.Settings.EntityTypes,
		typeIndex:   -1,
		typePicker:  NewTypePickerState(opts.Settings.EntityTypes),
		input:       input,
		resultView:  viewport.New(80, 20),
		modalView:   viewport.New(80, 20),
		spinner:     spin,
	}

	m.controller = workflow.New(ctx, opts.API,
		workflow.WithLogger(opts.Log),
		workflow.WithRequestedCount(config.ClampCount(opts.Settings.DefaultCount)),
		workflow.WithNotify(m.notifyChange),
	)
	m.refresh()

	return m, nil
}

// Run starts the TUI and blocks until the user quits
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m, err := New(ctx, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := p.Run()
	interrupted := ctx.Err() != nil

	// Abort in-flight requests and let their observers finish
	cancel()
	m.controller.Wait()

	if interrupted && errors.Is(runErr, tea.ErrProgramKilled) {
		return nil
	}
	return runErr
}

// notifyChange is the controller's change hook. It runs on the flow
// goroutines and never blocks; pending signals coalesce.
func (m *Model) notifyChange() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}
