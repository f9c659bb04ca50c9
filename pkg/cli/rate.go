package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/mchmarny/ncapsim/pkg/rating"
	urfave "github.com/urfave/cli/v3"
	"gonum.org/v1/gonum/mat"
)

const valuesFlagName = "values"

func newRateCmd() *urfave.Command {
	return &urfave.Command{
		Name:      "rate",
		Aliases:   []string{"r"},
		Usage:     "Rate a single measurement vector with a per scenario breakdown",
		UsageText: `ncapsim rate --variant frontal-driver --values 500,20,4,0.5,2.5,2.5`,
		Action:    cmdRate,
		Flags: []urfave.Flag{
			&urfave.StringFlag{
				Name:     valuesFlagName,
				Usage:    "Comma separated measurement vector in parameter label order",
				Required: true,
			},
		},
	}
}

// RateResult is the output of the rate command.
type RateResult struct {
	Variant      string                `json:"variant" yaml:"variant"`
	BaseRisk     float64               `json:"base_risk" yaml:"base_risk"`
	Scenarios    []rating.ScenarioRisk `json:"scenarios" yaml:"scenarios"`
	RelativeRisk float64               `json:"relative_risk" yaml:"relative_risk"`
	Observation  float64               `json:"observation" yaml:"observation"`
}

func cmdRate(_ context.Context, cmd *urfave.Command) error {
	cfg, err := getConfig(cmd)
	if err != nil {
		return err
	}

	values, err := parseValues(cmd.String(valuesFlagName))
	if err != nil {
		return err
	}

	parts, err := cfg.Task.Rating().Breakdown(values)
	if err != nil {
		return fmt.Errorf("rating measurements: %w", err)
	}
	risk, err := cfg.Task.Rating().RelativeRisk(values)
	if err != nil {
		return fmt.Errorf("rating measurements: %w", err)
	}

	obs, err := cfg.Task.Simulator().Simulate(mat.NewDense(1, len(values), values), rand.NewPCG(cfg.Seed, noiseStream))
	if err != nil {
		return fmt.Errorf("simulating: %w", err)
	}

	return cfg.encode(&RateResult{
		Variant:      cfg.Task.Config().Variant.String(),
		BaseRisk:     cfg.Task.Config().BaseRisk,
		Scenarios:    parts,
		RelativeRisk: risk,
		Observation:  obs.At(0, 0),
	})
}

func parseValues(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid measurement %q: %w", f, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no measurements in %q", s)
	}
	return out, nil
}
