// Package logging builds the zerolog logger shared by the dashboard and the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/config"
)

const timeFormat = "02-01-2006 15:04:05.000"

// Options controls where and how much the logger writes
type Options struct {
	Level string
	// File receives output instead of Writer when set
	File string
	// Writer defaults to os.Stderr
	Writer io.Writer
	// NoColor disables ANSI colours in the console format
	NoColor bool
}

// Logger wraps a zerolog.Logger together with the file it may own
type Logger struct {
	zerolog.Logger
	file *os.File
}

// New creates a console-formatted logger
func New(opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	out := opts.Writer
	if out == nil {
		out = os.Stderr
	}

	var file *os.File
	if opts.File != "" {
		file, err = os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, config.FilePermissions)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = file
		opts.NoColor = true
	}

	console := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    opts.NoColor,
		TimeFormat: timeFormat,
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("%-6s", i))
		},
		FormatCaller: func(i interface{}) string {
			return shortCaller(fmt.Sprint(i))
		},
	}

	zl := zerolog.New(console).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()

	return &Logger{Logger: zl, file: file}, nil
}

// Close closes the log file if open
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// ParseLevel maps a config value to a zerolog level; empty means info
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "disabled", "off", "none":
		return zerolog.Disabled, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// shortCaller trims the caller path to file:line
func shortCaller(caller string) string {
	idx := strings.LastIndex(caller, ":")
	if idx < 0 {
		return caller
	}
	file, line := caller[:idx], caller[idx+1:]
	if _, err := strconv.Atoi(line); err != nil {
		return caller
	}
	if slash := strings.LastIndex(file, "/"); slash >= 0 {
		file = file[slash+1:]
	}
	return file + ":" + line
}
