package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mchmarny/ncapsim/pkg/config"
	urfave "github.com/urfave/cli/v3"
)

func newConfigCmd() *urfave.Command {
	return &urfave.Command{
		Name:            "config",
		Aliases:         []string{"c"},
		Usage:           "Manage the task config file",
		HideHelpCommand: true,
		Commands: []*urfave.Command{
			{
				Name:      "init",
				Usage:     "Write the effective config to --config or to $HOME/.ncapsim/config.yaml",
				UsageText: "ncapsim config init --variant full-frontal --config ./ff.yaml",
				Action:    cmdConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective config after flag overrides",
				Action: cmdConfigShow,
			},
		},
	}
}

func cmdConfigInit(_ context.Context, cmd *urfave.Command) error {
	cfg, err := resolveConfig(cmd, true)
	if err != nil {
		return err
	}

	path := cmd.String(configFlagName)
	if path == "" {
		dir, _, err := config.GetOrCreateHomeDir(appName)
		if err != nil {
			return fmt.Errorf("resolving config dir: %w", err)
		}
		path = filepath.Join(dir, config.FileName)
	}

	c := *cfg.Config
	c.Task = cfg.Task.Config()
	if err := config.Save(path, &c); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	slog.Info("config saved", "path", path)

	return cfg.encode(map[string]string{"path": path})
}

func cmdConfigShow(_ context.Context, cmd *urfave.Command) error {
	cfg, err := getConfig(cmd)
	if err != nil {
		return err
	}

	c := *cfg.Config
	c.Task = cfg.Task.Config()
	return cfg.encode(&c)
}
