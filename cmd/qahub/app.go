package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/analytics"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/apiclient"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/cli"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/config"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/export"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/logging"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/mock"
)

// app holds the services shared by every command
type app struct {
	settings  *config.Settings
	logger    *logging.Logger
	client    *apiclient.Client
	analytics *analytics.Manager  // nil when disabled
	uploader  *export.S3Exporter // nil when no bucket is configured
}

// settingFlags maps persistent flags onto settings keys
var settingFlags = map[string]string{
	"base-url":  "base_url",
	"timeout":   "timeout",
	"log-level": "log_level",
}

// withApp builds the shared services, runs fn and releases them.
// The dashboard owns the terminal, so its log goes to the log file.
func withApp(cmd *cobra.Command, tuiMode bool, fn func(*app) error) error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	logOpts := logging.Options{Level: settings.LogLevel, Writer: cmd.ErrOrStderr()}
	if tuiMode {
		logOpts.File = config.LogFile
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return err
	}
	defer logger.Close()

	a := &app{settings: settings, logger: logger}

	if settings.Analytics {
		manager, err := analytics.NewManager(config.DatabasePath)
		if err != nil {
			logger.Warn().Err(err).Msg("analytics disabled")
		} else {
			a.analytics = manager
			defer manager.Close()
		}
	}

	var observer apiclient.Observer
	if a.analytics != nil {
		observer = func(call apiclient.Call) {
			if err := a.analytics.Save(analytics.EntryFromCall(call)); err != nil {
				logger.Warn().Err(err).Str("operation", call.Operation).Msg("failed to record call")
			}
		}
	}

	a.client, err = apiclient.New(apiclient.Options{
		BaseURL:  settings.BaseURL,
		Timeout:  settings.Timeout,
		TLS:      settings.TLS,
		Observer: observer,
		Logger:   &logger.Logger,
	})
	if err != nil {
		return err
	}

	if settings.S3.Enabled() {
		uploader, err := export.NewS3Exporter(cmd.Context(), settings.S3)
		if err != nil {
			logger.Warn().Err(err).Str("bucket", settings.S3.Bucket).Msg("S3 export disabled")
		} else {
			a.uploader = uploader
		}
	}

	return fn(a)
}

// runner creates a headless command runner writing to the command's streams
func (a *app) runner(cmd *cobra.Command) *cli.Runner {
	r := &cli.Runner{
		API:      a.client,
		Settings: a.settings,
		Out:      cmd.OutOrStdout(),
		Err:      cmd.ErrOrStderr(),
		Log:      a.logger.Logger,
	}
	if a.uploader != nil {
		r.Uploader = a.uploader
	}
	if a.analytics != nil {
		r.Analytics = a.analytics
	}
	if cli.IsInteractive() {
		r.Prompt = cli.PromptForEntityType
	}
	return r
}

// loadSettings resolves settings with flags taking precedence over the
// config file and environment
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	v := viper.New()
	for flag, key := range settingFlags {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("failed to bind --%s: %w", flag, err)
		}
	}

	settings, err := config.Load(v, flagConfig)
	if err != nil {
		return nil, err
	}
	if flagNoAnalytics {
		settings.Analytics = false
	}
	return settings, nil
}

// applyMockFlags overrides file values with flags the user set.
// Without a file every flag applies, defaults included.
func applyMockFlags(cmd *cobra.Command, cfg *mock.Config) error {
	set := func(name string) bool {
		return mockFile == "" || cmd.Flags().Changed(name)
	}

	if set("host") {
		cfg.Host = mockHost
	}
	if set("port") {
		cfg.Port = mockPort
	}
	if set("base-path") {
		cfg.BasePath = mockBasePath
	}
	if set("delay") {
		if mockDelay < 0 {
			return fmt.Errorf("--delay must not be negative")
		}
		cfg.RecordDelay = mockDelay
	}
	if set("single-object") {
		cfg.SingleObject = mockSingleObject
	}
	if set("seed") {
		cfg.Seed = mockSeed
	}
	return nil
}
