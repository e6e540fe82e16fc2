package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/analytics"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/config"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/export"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/filter"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/types"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/workflow"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
	OutputCSV   = "csv"
)

var (
	// ErrMissingType is returned when no data type was given and none could be prompted for
	ErrMissingType = errors.New("data type is required")
	// ErrNotConnected is returned by Status when the service cannot be reached
	ErrNotConnected = errors.New("generation service is not reachable")
	// ErrAnalyticsDisabled is returned by Stats when no analytics store is configured
	ErrAnalyticsDisabled = errors.New("analytics are disabled")
)

// API is the part of the API client headless commands use
type API interface {
	workflow.API
	Templates(ctx context.Context) ([]string, error)
}

// Uploader stores an encoded result set remotely and returns its key
type Uploader interface {
	Upload(ctx context.Context, key, entityType string, records []types.TestRecord, format export.Format) (string, error)
}

// StatsStore is the analytics surface the stats command reads
type StatsStore interface {
	Stats() ([]analytics.Stats, error)
	Clear() error
}

// Runner executes headless commands against the generation service
type Runner struct {
	API       API
	Settings  *config.Settings
	Out       io.Writer
	Err       io.Writer
	Log       zerolog.Logger
	Uploader  Uploader   // nil when no bucket is configured
	Analytics StatsStore // nil when analytics are disabled
	// Clipboard defaults to export.CopyToClipboard
	Clipboard func([]types.TestRecord, export.Format) error
	// Prompt is asked for a data type when none was given; nil disables prompting
	Prompt func(entityTypes []string) (string, error)
}

// GenerateOptions contains options for generating records in CLI mode
type GenerateOptions struct {
	EntityType string
	Count      int
	Output     string // table, json, yaml, csv
	Filter     string // JMESPath expression that narrows the records
	Query      string // JMESPath expression whose result is printed instead of the records
	SaveDir    string // write an export file into this directory
	Copy       bool   // copy the export to the clipboard
	Upload     bool   // upload the export to S3
	S3Key      string // object key; derived when empty
}

// Generate fetches records and writes them to Out, then runs the requested sinks
func (r *Runner) Generate(ctx context.Context, opts GenerateOptions) error {
	if opts.EntityType == "" && r.Prompt != nil {
		picked, err := r.Prompt(r.entityTypes())
		if err != nil {
			return err
		}
		opts.EntityType = picked
	}
	if opts.EntityType == "" {
		return ErrMissingType
	}
	if err := config.ValidateCount(opts.Count); err != nil {
		return err
	}
	if opts.Output == "" {
		opts.Output = OutputTable
	}
	if !validOutput(opts.Output) {
		return fmt.Errorf("unknown output format %q (use table, json, yaml or csv)", opts.Output)
	}

	payload, err := r.API.Generate(ctx, opts.EntityType, opts.Count)
	if err != nil {
		return fmt.Errorf("failed to generate %s records: %w", opts.EntityType, err)
	}

	records := payload.Records()
	workflow.WarnTypeMismatch(r.Log, opts.EntityType, records)

	if opts.Filter != "" {
		records, err = filter.Records(records, opts.Filter)
		if err != nil {
			return fmt.Errorf("failed to apply filter: %w", err)
		}
	}

	if err := r.runSinks(ctx, opts, records); err != nil {
		return err
	}

	if opts.Query != "" {
		result, err := filter.Apply(records, opts.Query)
		if err != nil {
			return fmt.Errorf("failed to apply query: %w", err)
		}
		fmt.Fprintln(r.Out, result)
		return nil
	}

	return r.writeRecords(records, opts.Output)
}

// runSinks saves, uploads and copies the result set concurrently
func (r *Runner) runSinks(ctx context.Context, opts GenerateOptions, records []types.TestRecord) error {
	format, err := r.exportFormat(opts.Output)
	if err != nil {
		return err
	}
	upload := opts.Upload || opts.S3Key != ""
	if upload && r.Uploader == nil {
		return fmt.Errorf("S3 upload requested but no bucket is configured (set s3.bucket)")
	}

	var (
		mu       sync.Mutex
		messages []string
	)
	report := func(msg string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		messages = append(messages, fmt.Sprintf(msg, args...))
	}

	eg, egctx := errgroup.WithContext(ctx)

	if opts.SaveDir != "" {
		eg.Go(func() error {
			path, err := export.SaveFile(opts.SaveDir, opts.EntityType, records, format)
			if err != nil {
				return err
			}
			report("Saved %d records to %s", len(records), path)
			return nil
		})
	}

	if upload {
		eg.Go(func() error {
			key, err := r.Uploader.Upload(egctx, opts.S3Key, opts.EntityType, records, format)
			if err != nil {
				return err
			}
			report("Uploaded %d records to S3 (key=%s)", len(records), key)
			return nil
		})
	}

	if opts.Copy {
		copyFn := r.Clipboard
		if copyFn == nil {
			copyFn = export.CopyToClipboard
		}
		eg.Go(func() error {
			if err := copyFn(records, format); err != nil {
				return err
			}
			report("Copied %d records to clipboard", len(records))
			return nil
		})
	}

	err = eg.Wait()
	for _, msg := range messages {
		fmt.Fprintln(r.Err, msg)
	}
	return err
}

// exportFormat follows the output format, or the configured one for tables
func (r *Runner) exportFormat(output string) (export.Format, error) {
	if output != OutputTable {
		return export.ParseFormat(output)
	}
	name := config.DefaultExportFormat
	if r.Settings != nil && r.Settings.ExportFormat != "" {
		name = r.Settings.ExportFormat
	}
	return export.ParseFormat(name)
}

func (r *Runner) writeRecords(records []types.TestRecord, output string) error {
	if output == OutputTable {
		renderRecordsTable(r.Out, records)
		return nil
	}

	format, err := export.ParseFormat(output)
	if err != nil {
		return err
	}
	data, err := export.Marshal(records, format)
	if err != nil {
		return err
	}
	_, err = r.Out.Write(data)
	return err
}

// Status runs the connectivity probe through the workflow controller
func (r *Runner) Status(ctx context.Context) error {
	ctrl := workflow.New(ctx, r.API, workflow.WithLogger(r.Log))
	ctrl.InitialProbe().Wait()

	status := ctrl.Snapshot().APIStatus
	baseURL := ""
	if r.Settings != nil {
		baseURL = r.Settings.BaseURL
	}
	fmt.Fprintf(r.Out, "API Status: %s%s%s\n", statusColor(status), status, colorReset)
	if baseURL != "" {
		fmt.Fprintf(r.Out, "Base URL:   %s\n", baseURL)
	}

	if !status.Healthy() {
		return ErrNotConnected
	}
	return nil
}

// Templates lists the template names the service offers
func (r *Runner) Templates(ctx context.Context, output string) error {
	names, err := r.API.Templates(ctx)
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	switch output {
	case OutputJSON:
		enc := json.NewEncoder(r.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(names)
	case OutputYAML:
		data, err := yaml.Marshal(names)
		if err != nil {
			return err
		}
		_, err = r.Out.Write(data)
		return err
	default:
		renderTemplatesTable(r.Out, names)
		return nil
	}
}

// Stats prints recorded call analytics, or clears them
func (r *Runner) Stats(clear bool) error {
	if r.Analytics == nil {
		return ErrAnalyticsDisabled
	}

	if clear {
		if err := r.Analytics.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(r.Err, "Analytics cleared")
		return nil
	}

	stats, err := r.Analytics.Stats()
	if err != nil {
		return err
	}
	renderStatsTable(r.Out, stats)
	return nil
}

func (r *Runner) entityTypes() []string {
	if r.Settings != nil && len(r.Settings.EntityTypes) > 0 {
		return r.Settings.EntityTypes
	}
	return types.DefaultEntityTypes
}

func validOutput(output string) bool {
	switch output {
	case OutputTable, OutputJSON, OutputYAML, OutputCSV:
		return true
	}
	return false
}
