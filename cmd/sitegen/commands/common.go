package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitegen/internal/config"
)

// Global carries process-wide state into subcommands.
type Global struct {
	Ctx    context.Context
	Out    io.Writer
	Logger *slog.Logger
}

// NewGlobal returns the state shared by every command.
func NewGlobal(ctx context.Context, out io.Writer) *Global {
	return &Global{Ctx: ctx, Out: out, Logger: slog.Default()}
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"sitegen.yaml" env:"SITEGEN_CONFIG"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build  BuildCmd  `cmd:"" help:"Prerender every route into the dist directory"`
	Serve  ServeCmd  `cmd:"" help:"Serve the site, search and inquiry API"`
	Search SearchCmd `cmd:"" help:"Search pages and blog posts"`
	Routes RoutesCmd `cmd:"" help:"List the route table"`
	Init   InitCmd   `cmd:"" help:"Write an example configuration file"`
	Verify VerifyCmd `cmd:"" help:"Check internal links of a built dist directory"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := c.logLevel(config.LogLevelInfo)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level.SlogLevel()})))
	return nil
}

// logLevel resolves the effective level: --verbose, then SITEGEN_LOG_LEVEL,
// then the configured level.
func (c *CLI) logLevel(configured config.LogLevel) config.LogLevel {
	if c.Verbose {
		return config.LogLevelDebug
	}
	if env := os.Getenv(logLevelEnv); env != "" {
		return config.NormalizeLogLevel(env)
	}
	return configured
}

const logLevelEnv = "SITEGEN_LOG_LEVEL"

// loadConfig reads the configuration and switches logging to its settings.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(c.Config)
	if err != nil {
		return nil, err
	}
	logging := cfg.Logging
	logging.Level = c.logLevel(logging.Level)
	g.Logger = slog.New(logging.NewHandler(os.Stderr))
	slog.SetDefault(g.Logger)
	slog.Debug("Configuration loaded", slog.String("config", cfg.String()))
	return cfg, nil
}

func (g *Global) context() context.Context {
	if g.Ctx == nil {
		return context.Background()
	}
	return g.Ctx
}
