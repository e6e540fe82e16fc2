package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/cli"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/config"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/keybinds"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/logging"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/mock"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "qahub",
	Short: "QA Automation Service Hub - test data generation dashboard",
	Long: `QA Automation Service Hub requests synthetic test records from a
generation service and shows them in an interactive dashboard.

Run without arguments to start the dashboard, or use a subcommand for
headless use in scripts and pipelines.

Examples:
  qahub                                  # Start the dashboard
  qahub generate user -n 5               # Print 5 user records as a table
  qahub generate order -o json --save .  # Print JSON and save an export file
  qahub status                           # Exit non-zero when the service is down
  qahub mock --port 8080                 # Serve a local generation service`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate [type]",
	Short: "Generate test records in CLI mode",
	Long: `Generate test records and print them.

Without a type an interactive picker is shown when stdin is a terminal.
--filter narrows the records before output and export; --query prints the
result of any JMESPath expression instead of the records.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var entityType string
		if len(args) > 0 {
			entityType = args[0]
		}
		return runGenerate(cmd, entityType)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the generation service is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, false, func(a *app) error {
			return a.runner(cmd).Status(cmd.Context())
		})
	},
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the templates offered by the generation service",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, false, func(a *app) error {
			return a.runner(cmd).Templates(cmd.Context(), flagOutput)
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded call analytics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, false, func(a *app) error {
			return a.runner(cmd).Stats(flagClear)
		})
	},
}

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Serve a local test data generation service",
	Long: `Serve the generate and templates endpoints locally so the dashboard
can be used without the real backend.

Settings can come from a YAML or JSON file (--file); flags override it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMock(cmd)
	},
}

// Global flags
var (
	flagConfig      string
	flagNoAnalytics bool
)

// Flags for generate and templates
var (
	flagCount  int
	flagOutput string
	flagFilter string
	flagQuery  string
	flagSave   string
	flagCopy   bool
	flagUpload bool
	flagS3Key  string
)

// Flags for stats
var flagClear bool

// Flags for mock
var (
	mockFile         string
	mockHost         string
	mockPort         int
	mockBasePath     string
	mockDelay        time.Duration
	mockSingleObject bool
	mockSeed         int64
)

func init() {
	// Global flags, bound to settings keys in loadSettings
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.qahub/config.yaml)")
	rootCmd.PersistentFlags().String("base-url", config.DefaultBaseURL, "Generation service base URL")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Request timeout (0 waits indefinitely)")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level (debug/info/warn/error/disabled)")
	rootCmd.PersistentFlags().BoolVar(&flagNoAnalytics, "no-analytics", false, "Do not record call analytics")

	// generate flags
	generateCmd.Flags().IntVarP(&flagCount, "count", "n", 0, "Number of records (1-100, default from config)")
	generateCmd.Flags().StringVarP(&flagOutput, "output", "o", cli.OutputTable, "Output format (table/json/yaml/csv)")
	generateCmd.Flags().StringVar(&flagFilter, "filter", "", "JMESPath filter applied to the records")
	generateCmd.Flags().StringVar(&flagQuery, "query", "", "JMESPath expression to print instead of the records")
	generateCmd.Flags().StringVar(&flagSave, "save", "", "Save an export file into this directory")
	generateCmd.Flags().BoolVar(&flagCopy, "copy", false, "Copy the export to the clipboard")
	generateCmd.Flags().BoolVar(&flagUpload, "upload", false, "Upload the export to the configured S3 bucket")
	generateCmd.Flags().StringVar(&flagS3Key, "s3-key", "", "S3 object key (implies --upload)")

	// templates flags
	templatesCmd.Flags().StringVarP(&flagOutput, "output", "o", cli.OutputTable, "Output format (table/json/yaml)")

	// stats flags
	statsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded calls")

	// mock flags
	mockCmd.Flags().StringVarP(&mockFile, "file", "f", "", "Mock config file (.yaml, .yml or .json)")
	mockCmd.Flags().StringVar(&mockHost, "host", mock.DefaultHost, "Listen host")
	mockCmd.Flags().IntVarP(&mockPort, "port", "p", mock.DefaultPort, "Listen port")
	mockCmd.Flags().StringVar(&mockBasePath, "base-path", mock.DefaultBasePath, "API root path")
	mockCmd.Flags().DurationVar(&mockDelay, "delay", 0, "Delay per generated record (e.g. 20ms)")
	mockCmd.Flags().BoolVar(&mockSingleObject, "single-object", false, "Answer count=1 with a bare object")
	mockCmd.Flags().Int64Var(&mockSeed, "seed", 0, "Seed for reproducible records")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(mockCmd)
}

// runTUI starts the interactive dashboard
func runTUI(cmd *cobra.Command) error {
	return withApp(cmd, true, func(a *app) error {
		registry, err := keybinds.LoadOrDefault(filepath.Join(config.ConfigDir, keybinds.FileName))
		if err != nil {
			return fmt.Errorf("failed to load keybindings: %w", err)
		}

		opts := tui.Options{
			API:      a.client,
			Settings: a.settings,
			Keybinds: registry,
			Log:      a.logger.Logger,
		}
		if a.uploader != nil {
			opts.Uploader = a.uploader
		}
		if a.analytics != nil {
			opts.Analytics = a.analytics
		}
		return tui.Run(cmd.Context(), opts)
	})
}

// runGenerate fetches records in CLI mode
func runGenerate(cmd *cobra.Command, entityType string) error {
	return withApp(cmd, false, func(a *app) error {
		count := flagCount
		if !cmd.Flags().Changed("count") {
			count = a.settings.DefaultCount
		}

		opts := cli.GenerateOptions{
			EntityType: entityType,
			Count:      count,
			Output:     flagOutput,
			Filter:     flagFilter,
			Query:      flagQuery,
			SaveDir:    flagSave,
			Copy:       flagCopy,
			Upload:     flagUpload || flagS3Key != "",
			S3Key:      flagS3Key,
		}
		return a.runner(cmd).Generate(cmd.Context(), opts)
	})
}

// runMock serves the local generation service until interrupted
func runMock(cmd *cobra.Command) error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{Level: settings.LogLevel})
	if err != nil {
		return err
	}
	defer logger.Close()

	cfg := &mock.Config{Logging: true}
	if mockFile != "" {
		cfg, err = mock.LoadConfig(mockFile)
		if err != nil {
			return err
		}
	}
	if err := applyMockFlags(cmd, cfg); err != nil {
		return err
	}

	server := mock.NewServer(cfg, logger.Logger)
	fmt.Fprintf(cmd.ErrOrStderr(), "Mock service: %s (Ctrl+C to stop)\n", server.BaseURL())
	return server.Serve(cmd.Context())
}
