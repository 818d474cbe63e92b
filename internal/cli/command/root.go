package command

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/shopfront-go/internal/client/navigation"
	"github.com/yndnr/shopfront-go/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:                 "shopctl",
		Usage:                "Storefront command-line client",
		Version:              buildinfo.String(),
		Flags:                globalFlags(),
		EnableBashCompletion: true,
		Commands:             commands(),
		Before:               setup,
		After:                teardown,
		Metadata:             map[string]any{},
		Reader:               os.Stdin,
		Writer:               os.Stdout,
		ErrWriter:            os.Stderr,
		// Errors are reported by the caller; the shell must survive them.
		ExitErrHandler: func(*cli.Context, error) {},
	}
	return app
}

func commands() []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, CatalogCommands()...)
	cmds = append(cmds, AuthCommands()...)
	cmds = append(cmds, ShopCommands()...)
	cmds = append(cmds,
		ModelCommand(),
		ConfigCommand(),
		ShellCommand(),
		VersionCommand(),
	)
	return cmds
}

// commandNames lists top-level commands and their subcommands for shell
// completion.
func commandNames(cmds []*cli.Command) []string {
	var names []string
	for _, cmd := range cmds {
		names = append(names, cmd.Name)
		for _, sub := range cmd.Subcommands {
			names = append(names, cmd.Name+" "+sub.Name)
		}
	}
	return names
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "config file (default ~/.shopfront/cli.yaml)",
			EnvVars: []string{"SHOP_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "api-url",
			Aliases: []string{"u"},
			Usage:   "storefront backend base URL",
			EnvVars: []string{"SHOP_API_URL"},
		},
		&cli.StringFlag{
			Name:    "mode",
			Usage:   "development or production; development logs every request",
			EnvVars: []string{"SHOP_MODE"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: table, wide, json, yaml",
			EnvVars: []string{"SHOP_OUTPUT"},
		},
		&cli.StringFlag{
			Name:    "state-dir",
			Usage:   "directory holding the session and shell history",
			EnvVars: []string{"SHOP_STATE_DIR"},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "per-request timeout",
			EnvVars: []string{"SHOP_API_TIMEOUT"},
		},
		&cli.StringFlag{
			Name:  "path",
			Usage: "current page path; a 401 does not redirect from /login or /signup",
			Value: navigation.HomePath,
		},
		&cli.BoolFlag{
			Name:  "ephemeral",
			Usage: "keep the session in memory only",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "enable debug logging",
		},
	}
}

// offline commands run without a runtime; they must work with a broken
// config file or no backend.
var offline = map[string]bool{"": true, "version": true, "config": true, "help": true, "h": true}

func setup(c *cli.Context) error {
	if env, ok := c.App.Metadata[envKey].(*Env); ok {
		env.depth++
		return nil
	}
	if offline[c.Args().First()] {
		return nil
	}
	env, err := newEnv(c)
	if err != nil {
		return err
	}
	env.depth = 1
	c.App.Metadata[envKey] = env
	return nil
}

func teardown(c *cli.Context) error {
	env, ok := c.App.Metadata[envKey].(*Env)
	if !ok {
		return nil
	}
	// Runs nested in the shell share the runtime; the outermost run ends it.
	env.depth--
	if env.depth > 0 {
		return nil
	}
	// A shell reports redirects on its own prompt.
	if path := env.Location.Path(); !env.interactive && path == "/login" && c.String("path") != path {
		fmt.Fprintln(env.ErrOut, "session expired; run `shopctl login` to sign in again")
	}
	delete(c.App.Metadata, envKey)
	return env.Close()
}

// PrintError writes err to w the way main reports failures.
func PrintError(w io.Writer, err error) {
	if errors.Is(err, ErrUnhealthy) {
		fmt.Fprintln(w, "error: recommendation service is not healthy")
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}
