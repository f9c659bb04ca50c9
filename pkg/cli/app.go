package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mchmarny/ncapsim/pkg/config"
	"github.com/mchmarny/ncapsim/pkg/logging"
	"github.com/mchmarny/ncapsim/pkg/task"
	urfave "github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
	"gonum.org/v1/gonum/mat"
)

const (
	appName = "ncapsim"

	formatJSON = "json"
	formatYAML = "yaml"
)

const (
	debugFlagName    = "debug"
	configFlagName   = "config"
	formatFlagName   = "format"
	variantFlagName  = "variant"
	baseRiskFlagName = "base-risk"
	noiseFlagName    = "noise"
	seedFlagName     = "seed"
	logLevelFlagName = "log-level"

	logLevelEnvVar = "NCAPSIM_LOG_LEVEL"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""
)

func rootFlags() []urfave.Flag {
	return []urfave.Flag{
		&urfave.BoolFlag{
			Name:  debugFlagName,
			Usage: "Prints verbose logs (optional, default: false)",
		},
		&urfave.StringFlag{
			Name:    logLevelFlagName,
			Usage:   "Log level [debug, info, warn, error] (overrides config)",
			Sources: urfave.EnvVars(logLevelEnvVar),
		},
		&urfave.StringFlag{
			Name:  configFlagName,
			Usage: fmt.Sprintf("Path to the YAML task config file (optional, defaults to $HOME/.%s/%s)", appName, config.FileName),
		},
		&urfave.StringFlag{
			Name:  formatFlagName,
			Usage: "Output format [json, yaml]",
			Value: formatJSON,
		},
		&urfave.StringFlag{
			Name:  variantFlagName,
			Usage: fmt.Sprintf("Rating variant %v (overrides config)", task.Variants),
		},
		&urfave.FloatFlag{
			Name:  baseRiskFlagName,
			Usage: "Baseline population injury risk (overrides config)",
		},
		&urfave.FloatFlag{
			Name:  noiseFlagName,
			Usage: "Observation noise standard deviation (overrides config)",
		},
		&urfave.Uint64Flag{
			Name:  seedFlagName,
			Usage: "Random seed (overrides config)",
		},
	}
}

// Execute creates and runs the CLI application.
func Execute() {
	logging.SetDefaultCLILogger("info")

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

type appConfig struct {
	*config.Config
	Task   *task.Task
	Format string
	Out    io.Writer
}

func newApp() *urfave.Command {
	return &urfave.Command{
		Name:                  appName,
		Version:               fmt.Sprintf("%s (%s - %s)", version, commit, date),
		EnableShellCompletion: true,
		HideHelpCommand:       true,
		Usage:                 "US NCAP relative risk simulator for simulation-based inference benchmarks",
		Flags:                 rootFlags(),
		Commands: []*urfave.Command{
			newPriorCmd(),
			newSimulateCmd(),
			newRateCmd(),
			newLabelsCmd(),
			newScheduleCmd(),
			newConfigCmd(),
		},
		Before: func(ctx context.Context, cmd *urfave.Command) (context.Context, error) {
			if cmd.Bool(debugFlagName) {
				logging.SetDefaultCLILogger("debug")
			}
			return ctx, nil
		},
	}
}

// getConfig resolves the config file and flag overrides into a task.
func getConfig(cmd *urfave.Command) (*appConfig, error) {
	return resolveConfig(cmd, false)
}

func resolveConfig(cmd *urfave.Command, allowMissing bool) (*appConfig, error) {
	var (
		cfg *config.Config
		err error
	)
	p := cmd.String(configFlagName)
	switch {
	case p == "":
		dir, _, err := config.GetOrCreateHomeDir(appName)
		if err != nil {
			return nil, fmt.Errorf("resolving config dir: %w", err)
		}
		cfg, err = config.ReadOrCreate(dir)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	case allowMissing && isNotExist(p):
		if cfg, err = config.Default(); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	default:
		if cfg, err = config.Load(p); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	switch {
	case cmd.Bool(debugFlagName):
		// already set in Before
	case cmd.String(logLevelFlagName) != "":
		logging.SetDefaultCLILogger(cmd.String(logLevelFlagName))
	default:
		logging.SetDefaultCLILogger(cfg.LogLevel)
	}

	if s := cmd.String(variantFlagName); s != "" {
		v, err := task.ParseVariant(s)
		if err != nil {
			return nil, err
		}
		if v != cfg.Task.Variant {
			d, err := task.DefaultConfig(v)
			if err != nil {
				return nil, err
			}
			d.Name = cfg.Task.Name
			d.BaseRisk = cfg.Task.BaseRisk
			d.NoiseLevel = cfg.Task.NoiseLevel
			d.NumSimulations = cfg.Task.NumSimulations
			cfg.Task = d
		}
	}
	if cmd.IsSet(baseRiskFlagName) {
		cfg.Task.BaseRisk = cmd.Float(baseRiskFlagName)
	}
	if cmd.IsSet(noiseFlagName) {
		cfg.Task.NoiseLevel = cmd.Float(noiseFlagName)
	}
	if cmd.IsSet(seedFlagName) {
		cfg.Seed = cmd.Uint64(seedFlagName)
	}

	t, err := task.New(cfg.Task)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	slog.Debug("task ready", "variant", cfg.Task.Variant, "dim", t.Prior().Dim(), "seed", cfg.Seed)

	format := formatJSON
	if f := cmd.String(formatFlagName); f == formatYAML || f == "yml" {
		format = formatYAML
	}

	out := cmd.Root().Writer
	if out == nil {
		out = os.Stdout
	}

	return &appConfig{
		Config: cfg,
		Task:   t,
		Format: format,
		Out:    out,
	}, nil
}

func isNotExist(path string) bool {
	_, err := os.Stat(path)
	return errors.Is(err, os.ErrNotExist)
}

func (c *appConfig) encode(v any) error {
	if c.Format == formatYAML {
		return yaml.NewEncoder(c.Out).Encode(v)
	}
	e := json.NewEncoder(c.Out)
	e.SetIndent("", "  ")
	return e.Encode(v)
}

func rows(m *mat.Dense) [][]float64 {
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}
