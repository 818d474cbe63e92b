package command

import (
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/shopfront-go/internal/cli/config"
	"github.com/yndnr/shopfront-go/internal/cli/output"
)

// ConfigCommand returns the config management command. It runs without a
// runtime so a broken file can still be inspected and replaced.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the CLI configuration file",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: showConfig,
			},
			{
				Name:  "init",
				Usage: "Write a config file with default values",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "overwrite an existing file",
					},
				},
				Action: initConfig,
			},
			{
				Name:   "path",
				Usage:  "Print the config file path",
				Action: configPath,
			},
		},
	}
}

func resolveConfigPath(c *cli.Context) string {
	if p := c.String("config"); p != "" {
		return p
	}
	return config.DefaultConfigPath()
}

type configEntry struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

func showConfig(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	applyFlags(c, cfg)

	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}

	flat := map[string]any{
		"api.url":     cfg.API.URL,
		"api.timeout": cfg.API.Timeout.String(),
		"api.ca_file": cfg.API.CAFile,
		"mode":        cfg.Mode,
		"log.level":   cfg.Log.Level,
		"log.format":  cfg.Log.Format,
		"state_dir":   cfg.StateDir,
		"output":      cfg.Output,
	}
	if format.Structured() {
		return output.NewFormatter(format).Format(c.App.Writer, flat)
	}

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]configEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, configEntry{Key: k, Value: flat[k]})
	}
	if err := output.NewFormatter(output.FormatTable).Format(c.App.Writer, entries); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "\nfile: %s\n", resolveConfigPath(c))
	return nil
}

func initConfig(c *cli.Context) error {
	path := resolveConfigPath(c)
	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(config.Default(), path); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Wrote %s\n", path)
	return nil
}

func configPath(c *cli.Context) error {
	fmt.Fprintln(c.App.Writer, resolveConfigPath(c))
	return nil
}
