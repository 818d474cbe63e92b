package command

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/shopfront-go/internal/cli/config"
	"github.com/yndnr/shopfront-go/internal/cli/repl"
	"github.com/yndnr/shopfront-go/internal/infra/confloader"
	"github.com/yndnr/shopfront-go/internal/telemetry/logger"
)

// ShellCommand returns the interactive shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Start an interactive session; 401s move the prompt to /login",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "metrics-addr",
				Usage:   "serve client metrics on this address (e.g. 127.0.0.1:9464)",
				EnvVars: []string{"SHOP_METRICS_ADDR"},
			},
		},
		Action: runShell,
	}
}

func runShell(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	if env.interactive {
		return errors.New("already in a shell")
	}

	if addr := c.String("metrics-addr"); addr != "" {
		env.serveMetrics(addr)
	}
	env.watchConfig()

	history := repl.NewHistory(env.Config.HistoryPath())
	if err := history.Load(); err != nil {
		env.Log.Warn("failed to load shell history", "error", err)
	}

	env.interactive = true

	exec := func(ctx context.Context, args []string) error {
		if err := c.App.RunContext(ctx, append([]string{c.App.Name}, args...)); err != nil {
			PrintError(env.ErrOut, err)
		}
		return nil
	}

	fmt.Fprintf(env.Out, "Connected to %s. Type 'help' for commands, 'exit' to quit.\n", env.API.BaseURL())
	shell := repl.New(exec, env.Location,
		repl.WithIO(env.In, env.Out),
		repl.WithHistory(history),
		repl.WithCompleter(repl.NewCompleter(commandNames(commands()))),
	)
	runErr := shell.Run(c.Context)

	if err := history.Save(); err != nil {
		env.Log.Warn("failed to save shell history", "error", err)
	}
	return runErr
}

func (e *Env) serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", e.Metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Log.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
	e.Log.Info("serving metrics", "addr", addr)
	e.shutdown.OnShutdown(srv.Shutdown)
}

// watchConfig re-applies the log level when the config file changes.
func (e *Env) watchConfig() {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(e.Log))
	if err != nil {
		e.Log.Warn("config watcher unavailable", "error", err)
		return
	}
	if err := w.Watch(e.ConfigPath); err != nil {
		_ = w.Stop()
		return
	}

	w.OnChange(func(path string) {
		cfg, err := config.Load(path)
		if err != nil {
			e.Log.Warn("ignoring invalid config change", "path", path, "error", err)
			return
		}
		// Development mode always logs at debug.
		cfg.Mode = e.Config.Mode
		prev := logger.GetLevel()
		logger.SetLevel(cfg.EffectiveLogLevel())
		if now := logger.GetLevel(); now != prev {
			e.Log.Info("log level updated", "from", prev, "to", now)
		}
	})
	w.StartAsync()
	e.onClose(w.Stop)
}
