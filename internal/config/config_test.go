package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sitegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "dist", cfg.Build.DistDir)
	assert.Equal(t, 4, cfg.Build.Concurrency)
	assert.Equal(t, "https://www.clarivisgroup.com", cfg.Site.Domain)
	assert.Equal(t, time.Second, cfg.Inquiry.SubmitDelay)
	assert.Len(t, cfg.Inquiry.Services, 7)
	assert.Equal(t, DefaultProgramTypes(), cfg.Inquiry.ProgramTypes)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Equal(t, "/metrics", cfg.Monitoring.Metrics.Path)
	require.NoError(t, cfg.Validate())
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("SITEGEN_TEST_DIST", "public")
	path := writeConfig(t, `
build:
  dist_dir: "${SITEGEN_TEST_DIST}"
  concurrency: 8
logging:
  level: DEBUG
  format: Json
inquiry:
  submit_delay: 250ms
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "public", cfg.Build.DistDir)
	assert.Equal(t, 8, cfg.Build.Concurrency)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, 250*time.Millisecond, cfg.Inquiry.SubmitDelay)
}

func TestLoadNegativeDelayDisablesLatency(t *testing.T) {
	cfg, err := Parse([]byte("inquiry:\n  submit_delay: -1s\n"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Inquiry.SubmitDelay)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestLoadOrDefault(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadOrDefault(DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, "dist", cfg.Build.DistDir)

	_, err = LoadOrDefault("other.yaml")
	require.Error(t, err)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeConfig(t, "build:\n  distdir: x\n"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad domain", "site:\n  domain: www.example.com\n", "site.domain"},
		{"domain with path", "site:\n  domain: https://example.com/app\n", "must not contain a path"},
		{"same listeners", "server:\n  addr: ':9000'\n  admin_addr: ':9000'\n", "must differ"},
		{"bad origin", "server:\n  cors_origins: ['example.com']\n", "invalid origin"},
		{"git without url", "content:\n  git:\n    branch: main\n", "content.git.url"},
		{"token without token", "content:\n  git:\n    url: https://x/y.git\n    auth:\n      type: token\n", "requires a token"},
		{"notify without key", "inquiry:\n  notify:\n    enabled: true\n", "api_key"},
		{"events without url", "inquiry:\n  events:\n    enabled: true\n", "events.url"},
		{"duplicate service", "inquiry:\n  services:\n    - id: a\n    - id: a\n", "duplicate service"},
		{"metrics path", "monitoring:\n  metrics:\n    path: metrics\n", "monitoring.metrics.path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
		})
	}
}

func TestGitDefaults(t *testing.T) {
	cfg, err := Parse([]byte("content:\n  git:\n    url: https://git.example.com/site.git\n    auth:\n      type: SSH\n      key_path: /keys/id\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.Content.Git)
	assert.Equal(t, "main", cfg.Content.Git.Branch)
	assert.Equal(t, AuthTypeSSH, cfg.Content.Git.Auth.Type)
	assert.Equal(t, filepath.Join(".sitegen/content", "blog"), cfg.Content.BlogDir)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "sitegen.yaml")

	require.NoError(t, Init(path, false))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Build.Sitemap)
	assert.Equal(t, "G-FZP6SPKMK5", cfg.Site.AnalyticsID)

	err = Init(path, false)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))

	require.NoError(t, Init(path, true))
}

func TestLoggingHandler(t *testing.T) {
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel(" Warning "))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("chatty"))
	assert.Equal(t, RetryBackoffExponential, NormalizeRetryBackoff(""))
	assert.Equal(t, RetryBackoffLinear, NormalizeRetryBackoff("LINEAR"))

	h := LoggingConfig{Level: LogLevelDebug, Format: LogFormatJSON}.NewHandler(os.Stderr)
	assert.NotNil(t, h)
}
