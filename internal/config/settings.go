package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/types"
)

const (
	// EnvPrefix is prepended to every environment override (QAHUB_BASE_URL, ...)
	EnvPrefix = "QAHUB"

	DefaultBaseURL      = "http://localhost:8080/api/v1"
	DefaultCount        = 10
	DefaultLogLevel     = "info"
	DefaultExportFormat = "json"

	// MinCount and MaxCount bound the record count accepted by the input layers
	MinCount = 1
	MaxCount = 100
)

var (
	ErrInvalidBaseURL = errors.New("invalid base url")
	ErrInvalidCount   = errors.New("invalid record count")
	ErrNoEntityTypes  = errors.New("no entity types configured")
)

// TLSConfig holds optional TLS settings for the API client
type TLSConfig struct {
	CAFile             string `mapstructure:"ca_file"`
	CertFile           string `mapstructure:"cert_file"`
	KeyFile            string `mapstructure:"key_file"`
	InsecureSkipVerify bool   `mapstructure:"insecure_skip_verify"`
}

// Enabled reports whether any TLS option was set
func (t TLSConfig) Enabled() bool {
	return t.CAFile != "" || t.CertFile != "" || t.KeyFile != "" || t.InsecureSkipVerify
}

// S3Config is the export destination for result sets
type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Enabled reports whether an S3 bucket is configured
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

// Settings holds everything the dashboard and CLI need at runtime
type Settings struct {
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	DefaultCount int           `mapstructure:"default_count"`
	EntityTypes  []string      `mapstructure:"entity_types"`
	LogLevel     string        `mapstructure:"log_level"`
	Analytics    bool          `mapstructure:"analytics"`
	ExportDir    string        `mapstructure:"export_dir"`
	ExportFormat string        `mapstructure:"export_format"`
	TLS          TLSConfig     `mapstructure:"tls"`
	S3           S3Config      `mapstructure:"s3"`
}

// SetDefaults registers the default value of every key on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("base_url", DefaultBaseURL)
	// No timeout unless configured: a request always runs to resolution
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("default_count", DefaultCount)
	v.SetDefault("entity_types", types.DefaultEntityTypes)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("analytics", true)
	v.SetDefault("export_dir", ExportDir)
	v.SetDefault("export_format", DefaultExportFormat)
	// Nested keys need a default so environment overrides reach Unmarshal
	v.SetDefault("tls.ca_file", "")
	v.SetDefault("tls.cert_file", "")
	v.SetDefault("tls.key_file", "")
	v.SetDefault("tls.insecure_skip_verify", false)
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "qahub/")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
}

// Load resolves settings from defaults, the config file, QAHUB_* environment
// variables and any flags already bound to v, in increasing precedence.
// An empty path falls back to ConfigFile; a missing file is not an error.
func Load(v *viper.Viper, path string) (*Settings, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = ConfigFile
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
			if explicit || !missing {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// viper leaves comma separated env values as a single element
	if len(s.EntityTypes) == 1 && strings.Contains(s.EntityTypes[0], ",") {
		s.EntityTypes = splitList(s.EntityTypes[0])
	}
	s.BaseURL = strings.TrimRight(s.BaseURL, "/")

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the settings that would otherwise fail late
func (s *Settings) Validate() error {
	u, err := url.Parse(s.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, s.BaseURL)
	}
	if err := ValidateCount(s.DefaultCount); err != nil {
		return err
	}
	if len(s.EntityTypes) == 0 {
		return ErrNoEntityTypes
	}
	if s.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", s.Timeout)
	}
	return nil
}

// ValidateCount checks n against [MinCount, MaxCount]
func ValidateCount(n int) error {
	if n < MinCount || n > MaxCount {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidCount, n, MinCount, MaxCount)
	}
	return nil
}

// ClampCount forces n into [MinCount, MaxCount]
func ClampCount(n int) int {
	if n < MinCount {
		return MinCount
	}
	if n > MaxCount {
		return MaxCount
	}
	return n
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
