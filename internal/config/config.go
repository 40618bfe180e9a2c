// Package config loads the sitegen YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/site"
)

// DefaultPath is the configuration file used when --config is not given.
const DefaultPath = "sitegen.yaml"

// Config is the root configuration document.
type Config struct {
	Site       site.Site        `yaml:"site"`
	Build      BuildConfig      `yaml:"build"`
	Content    ContentConfig    `yaml:"content"`
	Server     ServerConfig     `yaml:"server"`
	Inquiry    InquiryConfig    `yaml:"inquiry"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

// BuildConfig controls the prerender step.
type BuildConfig struct {
	DistDir     string `yaml:"dist_dir"`
	RoutesFile  string `yaml:"routes_file"` // optional YAML route manifest; built-in table when empty
	Concurrency int    `yaml:"concurrency"`
	Incremental bool   `yaml:"incremental"`
	Sitemap     bool   `yaml:"sitemap"`
	Robots      bool   `yaml:"robots"`
	VerifyLinks bool   `yaml:"verify_links"`
}

// ContentConfig locates blog posts and the searchable page index.
type ContentConfig struct {
	PagesFile string           `yaml:"pages_file"`
	BlogDir   string           `yaml:"blog_dir"`
	Git       *GitSourceConfig `yaml:"git,omitempty"`
}

// GitSourceConfig describes a repository holding the content directory.
type GitSourceConfig struct {
	URL    string      `yaml:"url"`
	Branch string      `yaml:"branch"`
	Dir    string      `yaml:"dir"` // checkout location
	Auth   *AuthConfig `yaml:"auth,omitempty"`
}

// AuthConfig holds git credentials.
type AuthConfig struct {
	Type     AuthType `yaml:"type"`
	Username string   `yaml:"username,omitempty"`
	Password string   `yaml:"password,omitempty"`
	Token    string   `yaml:"token,omitempty"`
	KeyPath  string   `yaml:"key_path,omitempty"`
}

// ServerConfig configures the HTTP runtime.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	AdminAddr    string        `yaml:"admin_addr"`
	CORSOrigins  []string      `yaml:"cors_origins"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// InquiryConfig configures form handling.
type InquiryConfig struct {
	DatabasePath string        `yaml:"database_path"`
	SubmitDelay  time.Duration `yaml:"submit_delay"`
	ProgramTypes []string      `yaml:"program_types"`
	Services     []ServiceItem `yaml:"services"`
	Notify       NotifyConfig  `yaml:"notify"`
	Events       EventsConfig  `yaml:"events"`
	Retry        RetryConfig   `yaml:"retry"`
}

// ServiceItem is one entry of the pricing form service catalogue.
type ServiceItem struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// NotifyConfig configures e-mail notifications sent through Resend.
type NotifyConfig struct {
	Enabled bool     `yaml:"enabled"`
	APIKey  string   `yaml:"api_key"`
	From    string   `yaml:"from"`
	To      []string `yaml:"to"`
}

// EventsConfig configures inquiry events on NATS JetStream.
type EventsConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Stream  string `yaml:"stream"`
	Subject string `yaml:"subject"`
}

// RetryConfig tunes the notification retry policy.
type RetryConfig struct {
	Backoff    RetryBackoffMode `yaml:"backoff"`
	Initial    time.Duration    `yaml:"initial"`
	Max        time.Duration    `yaml:"max"`
	MaxRetries int              `yaml:"max_retries"`
}

// ScheduleConfig controls background rebuilds in serve mode.
type ScheduleConfig struct {
	Interval time.Duration `yaml:"interval"` // 0 disables periodic rebuilds
	Watch    bool          `yaml:"watch"`
	Debounce time.Duration `yaml:"debounce"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MonitoringConfig controls the admin listener endpoints.
type MonitoringConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig exposes Prometheus metrics.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads, expands, defaults and validates the configuration at path.
// A missing file yields an error wrapping fs.ErrNotExist.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "configuration file not found").
				Fatal().UserAction().
				WithContext("path", path).
				WithContext("hint", "run 'sitegen init' to create one").
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read config file").
			WithContext("path", path).Build()
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file at the default location
// yields Default(). An explicitly named file must exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if path == DefaultPath && errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return nil, err
}

// Parse decodes a YAML document after ${VAR} expansion. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse configuration").
			Fatal().UserAction().Build()
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// String renders a short human summary used in debug logs.
func (c *Config) String() string {
	return fmt.Sprintf("site=%s dist=%s blog=%s server=%s", c.Site.Domain, c.Build.DistDir, c.Content.BlogDir, c.Server.Addr)
}
