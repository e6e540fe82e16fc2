package mock

import (
	"time"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/types"
)

const (
	DefaultHost     = "localhost"
	DefaultPort     = 8080
	DefaultBasePath = "/api/v1"
	// DefaultCount applies when the count query parameter is absent
	DefaultCount = 10
	// MaxCount bounds a single generate request
	MaxCount = 1000
	maxLogs  = 1000
)

// Config represents the mock server configuration
type Config struct {
	Host     string `json:"host" yaml:"host"`         // Server host (default: localhost)
	Port     int    `json:"port" yaml:"port"`         // Server port (default: 8080)
	BasePath string `json:"basePath" yaml:"basePath"` // API root (default: /api/v1)
	// RecordDelay is slept once per generated record
	RecordDelay time.Duration `json:"recordDelay" yaml:"recordDelay"`
	// SingleObject answers count=1 with a bare object instead of a list
	SingleObject bool `json:"singleObject" yaml:"singleObject"`
	// Templates lists the names served by the templates endpoint
	Templates []string `json:"templates" yaml:"templates"`
	// Seed makes generated values reproducible; zero seeds from the clock
	Seed    int64 `json:"seed" yaml:"seed"`
	Logging bool  `json:"logging" yaml:"logging"` // Keep a request log
}

// RequestLog represents a logged request
type RequestLog struct {
	Timestamp  time.Time     `json:"timestamp"`
	Method     string        `json:"method"`
	Path       string        `json:"path"`
	Query      string        `json:"query"`
	EntityType string        `json:"entityType,omitempty"`
	Records    int           `json:"records"`
	Status     int           `json:"status"`
	Duration   time.Duration `json:"duration"`
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.BasePath == "" {
		c.BasePath = DefaultBasePath
	}
	if len(c.Templates) == 0 {
		c.Templates = append([]string{}, types.DefaultEntityTypes...)
	}
}
