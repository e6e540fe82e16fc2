package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/config"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/mock"
)

func newMockFlagsCmd(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "mock"}
	cmd.Flags().StringVarP(&mockFile, "file", "f", "", "")
	cmd.Flags().StringVar(&mockHost, "host", mock.DefaultHost, "")
	cmd.Flags().IntVarP(&mockPort, "port", "p", mock.DefaultPort, "")
	cmd.Flags().StringVar(&mockBasePath, "base-path", mock.DefaultBasePath, "")
	cmd.Flags().DurationVar(&mockDelay, "delay", 0, "")
	cmd.Flags().BoolVar(&mockSingleObject, "single-object", false, "")
	cmd.Flags().Int64Var(&mockSeed, "seed", 0, "")
	return cmd
}

func TestApplyMockFlags_NoFile(t *testing.T) {
	cmd := newMockFlagsCmd(t)
	require.NoError(t, cmd.ParseFlags([]string{"--port", "9090", "--delay", "20ms"}))

	cfg := &mock.Config{}
	require.NoError(t, applyMockFlags(cmd, cfg))

	assert.Equal(t, mock.DefaultHost, cfg.Host)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, mock.DefaultBasePath, cfg.BasePath)
	assert.Equal(t, 20*time.Millisecond, cfg.RecordDelay)
}

func TestApplyMockFlags_FileValuesKept(t *testing.T) {
	cmd := newMockFlagsCmd(t)
	require.NoError(t, cmd.ParseFlags([]string{"--file", "mock.yaml", "--seed", "7"}))

	cfg := &mock.Config{Host: "0.0.0.0", Port: 7000, BasePath: "/v2"}
	require.NoError(t, applyMockFlags(cmd, cfg))

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "/v2", cfg.BasePath)
	assert.Equal(t, int64(7), cfg.Seed)
}

func TestApplyMockFlags_NegativeDelay(t *testing.T) {
	cmd := newMockFlagsCmd(t)
	require.NoError(t, cmd.ParseFlags([]string{"--delay", "-1s"}))

	assert.Error(t, applyMockFlags(cmd, &mock.Config{}))
}

func TestLoadSettings_FlagsOverrideDefaults(t *testing.T) {
	require.NoError(t, config.InitializeAt(t.TempDir()))

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("base-url", config.DefaultBaseURL, "")
	cmd.Flags().Duration("timeout", 0, "")
	cmd.Flags().String("log-level", config.DefaultLogLevel, "")
	require.NoError(t, cmd.ParseFlags([]string{"--base-url", "http://example.test/api/", "--timeout", "5s"}))

	flagConfig, flagNoAnalytics = "", true
	t.Cleanup(func() { flagNoAnalytics = false })

	settings, err := loadSettings(cmd)
	require.NoError(t, err)
	assert.Equal(t, "http://example.test/api", settings.BaseURL)
	assert.Equal(t, 5*time.Second, settings.Timeout)
	assert.Equal(t, config.DefaultLogLevel, settings.LogLevel)
	assert.False(t, settings.Analytics)
}

func TestLoadSettings_MissingExplicitConfig(t *testing.T) {
	require.NoError(t, config.InitializeAt(t.TempDir()))

	flagConfig = filepath.Join(t.TempDir(), "missing.yaml")
	t.Cleanup(func() { flagConfig = "" })

	_, err := loadSettings(&cobra.Command{Use: "test"})
	assert.Error(t, err)
}
