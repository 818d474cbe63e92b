package command

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/shopfront-go/internal/cli/config"
	"github.com/yndnr/shopfront-go/internal/cli/output"
	"github.com/yndnr/shopfront-go/internal/client/apiclient"
	"github.com/yndnr/shopfront-go/internal/client/navigation"
	"github.com/yndnr/shopfront-go/internal/client/tokenstore"
	"github.com/yndnr/shopfront-go/internal/infra/buildinfo"
	"github.com/yndnr/shopfront-go/internal/infra/shutdown"
	"github.com/yndnr/shopfront-go/internal/infra/tlsroots"
	"github.com/yndnr/shopfront-go/internal/telemetry/logger"
	"github.com/yndnr/shopfront-go/internal/telemetry/metric"
)

const envKey = "env"

// Env is the runtime shared by every command of one process. In the shell
// it outlives individual command runs.
type Env struct {
	Config     *config.CLIConfig
	ConfigPath string
	Format     output.Format

	Log      logger.Logger
	Metrics  *metric.Registry
	Tokens   tokenstore.Store
	Location *navigation.History
	API      *apiclient.Client

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	transport http.RoundTripper
	shutdown  *shutdown.Handler

	// interactive is set once a shell has started in this process.
	interactive bool

	// depth counts App runs currently using this runtime.
	depth int
}

// newEnv loads configuration, applies global flags and opens the session
// store.
func newEnv(c *cli.Context) (*Env, error) {
	cfgPath := c.String("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	applyFlags(c, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.EffectiveLogLevel(),
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	env := &Env{
		Config:     cfg,
		ConfigPath: cfgPath,
		Format:     format,
		Log:        log,
		Metrics:    metric.NewRegistry(),
		Location:   navigation.NewHistory(c.String("path")),
		In:         c.App.Reader,
		Out:        c.App.Writer,
		ErrOut:     c.App.ErrWriter,
		shutdown:   shutdown.NewHandler(5 * time.Second),
	}
	if env.ConfigPath == "" {
		env.ConfigPath = config.DefaultConfigPath()
	}

	env.transport, err = tlsroots.Transport(cfg.API.CAFile)
	if err != nil {
		return nil, err
	}

	if c.Bool("ephemeral") {
		env.Tokens = tokenstore.NewMemory("")
	} else {
		store, err := tokenstore.OpenBadger(cfg.SessionDir(), log)
		if err != nil {
			return nil, err
		}
		env.Tokens = store
		env.onClose(store.Close)
	}

	env.API, err = env.newClient(env.Tokens)
	if err != nil {
		_ = env.Close()
		return nil, err
	}

	log.Debug("runtime ready",
		"api_url", env.API.BaseURL(),
		"mode", cfg.Mode,
		"state_dir", cfg.StateDir,
	)
	return env, nil
}

func applyFlags(c *cli.Context, cfg *config.CLIConfig) {
	if c.IsSet("api-url") {
		cfg.API.URL = c.String("api-url")
	}
	if c.IsSet("mode") {
		cfg.Mode = c.String("mode")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("state-dir") {
		cfg.StateDir = c.String("state-dir")
	}
	if c.IsSet("timeout") {
		cfg.API.Timeout = c.Duration("timeout")
	}
	if c.Bool("verbose") {
		cfg.Log.Level = "debug"
	}
}

// newClient builds an API client reading tokens from store. Request
// diagnostics are only wired in development mode.
func (e *Env) newClient(store tokenstore.Store) (*apiclient.Client, error) {
	diag := logger.Nop()
	if e.Config.Development() {
		diag = e.Log.With("component", "diagnostics")
	}

	return apiclient.New(
		apiclient.Config{
			BaseURL:   e.Config.API.URL,
			Timeout:   e.Config.API.Timeout,
			UserAgent: buildinfo.UserAgent(),
		},
		apiclient.WithTokenStore(store),
		apiclient.WithLocation(e.Location),
		apiclient.WithLogger(e.Log),
		apiclient.WithDiagnostics(diag),
		apiclient.WithMetrics(e.Metrics),
		apiclient.WithTransport(e.transport),
	)
}

// Print writes data in the selected output format.
func (e *Env) Print(data any) error {
	return output.NewFormatter(e.Format).Format(e.Out, data)
}

// Structured reports whether output is meant for machines.
func (e *Env) Structured() bool {
	return e.Format.Structured()
}

func (e *Env) onClose(fn func() error) {
	e.shutdown.OnShutdown(func(ctx context.Context) error { return fn() })
}

// Close releases everything the runtime opened.
func (e *Env) Close() error {
	return e.shutdown.Shutdown()
}

// envFrom returns the runtime prepared by the root Before hook.
func envFrom(c *cli.Context) (*Env, error) {
	if env, ok := c.App.Metadata[envKey].(*Env); ok {
		return env, nil
	}
	return nil, fmt.Errorf("command runtime not initialized")
}
