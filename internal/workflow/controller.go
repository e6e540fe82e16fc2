package workflow

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/types"
)

// API is the part of the API client the controller drives
type API interface {
	Generate(ctx context.Context, entityType string, count int) (types.GeneratePayload, error)
	ProbeTemplates(ctx context.Context) error
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the logger used for internal diagnostics
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// WithNotify registers fn to run after every state change.
// fn is called without the controller lock held.
func WithNotify(fn func()) Option {
	return func(c *Controller) {
		c.notify = fn
	}
}

// WithRequestedCount sets the initial record count
func WithRequestedCount(n int) Option {
	return func(c *Controller) {
		c.state.RequestedCount = n
	}
}

// WithSelectedType sets the initial entity type selection
func WithSelectedType(entityType string) Option {
	return func(c *Controller) {
		c.state.SelectedType = entityType
	}
}

// Controller owns the workflow state and drives the generate and probe flows.
// Each flow runs as its own goroutine; completions are applied under mu in
// the order they arrive.
type Controller struct {
	api    API
	log    zerolog.Logger
	notify func()

	mu    sync.RWMutex
	state State

	wg           sync.WaitGroup
	initialProbe *Task
}

// New creates the controller and immediately starts the connectivity probe
func New(ctx context.Context, api API, opts ...Option) *Controller {
	c := &Controller{
		api: api,
		log: zerolog.Nop(),
		state: State{
			RequestedCount: 10,
			Results:        []types.TestRecord{},
			APIStatus:      types.APIStatusChecking,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.initialProbe = c.CheckAPIStatus(ctx)
	return c
}

// InitialProbe returns the probe started by New
func (c *Controller) InitialProbe() *Task {
	return c.initialProbe
}

// GenerateTestData requests count records of entityType and replaces the
// result set with the reply. An empty entityType is ignored.
// Overlapping calls are not rejected; the last completion wins.
func (c *Controller) GenerateTestData(ctx context.Context, entityType string, count int) *Task {
	if entityType == "" {
		c.log.Debug().Msg("generate ignored: no data type selected")
		return resolvedTask()
	}

	c.update(func(s *State) {
		s.IsLoading = true
		s.Results = []types.TestRecord{}
		s.GenerateErr = nil
	})

	return c.spawn(func() {
		payload, err := c.api.Generate(ctx, entityType, count)
		if err != nil {
			c.log.Error().Err(err).Str("type", entityType).Int("count", count).Msg("Error generating test data")
			c.update(func(s *State) {
				s.IsLoading = false
				s.APIStatus = types.APIStatusError
				s.GenerateErr = err
			})
			return
		}

		records := normalize(payload)
		WarnTypeMismatch(c.log, entityType, records)

		c.update(func(s *State) {
			s.Results = records
			s.IsLoading = false
		})
	})
}

// GenerateSelected runs GenerateTestData with the current selection and count
func (c *Controller) GenerateSelected(ctx context.Context) *Task {
	c.mu.RLock()
	entityType, count := c.state.SelectedType, c.state.RequestedCount
	c.mu.RUnlock()
	return c.GenerateTestData(ctx, entityType, count)
}

// CheckAPIStatus probes the templates endpoint and records reachability.
// It never touches IsLoading or Results.
func (c *Controller) CheckAPIStatus(ctx context.Context) *Task {
	return c.spawn(func() {
		status := types.APIStatusConnected
		if err := c.api.ProbeTemplates(ctx); err != nil {
			c.log.Debug().Err(err).Msg("api probe failed")
			status = types.APIStatusDisconnected
		}
		c.update(func(s *State) {
			s.APIStatus = status
		})
	})
}

// SelectType changes the entity type used by GenerateSelected
func (c *Controller) SelectType(entityType string) {
	c.update(func(s *State) {
		s.SelectedType = entityType
	})
}

// SetRequestedCount changes the count used by GenerateSelected.
// Bounds are the input layer's concern.
func (c *Controller) SetRequestedCount(n int) {
	c.update(func(s *State) {
		s.RequestedCount = n
	})
}

// UniqueTypes returns the distinct record types in the current results
func (c *Controller) UniqueTypes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return uniqueTypes(c.state.Results)
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.clone()
}

// Stats returns the dashboard summary counters
func (c *Controller) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		TotalGenerated: len(c.state.Results),
		DataTypes:      len(uniqueTypes(c.state.Results)),
		APIStatus:      c.state.APIStatus,
	}
}

// Wait blocks until every started flow has completed
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) spawn(fn func()) *Task {
	t := newTask()
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer t.resolve()
		fn()
	}()
	return t
}

func (c *Controller) update(fn func(*State)) {
	c.mu.Lock()
	fn(&c.state)
	c.mu.Unlock()

	if c.notify != nil {
		c.notify()
	}
}
