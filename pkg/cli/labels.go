package cli

import (
	"context"

	urfave "github.com/urfave/cli/v3"
)

func newLabelsCmd() *urfave.Command {
	return &urfave.Command{
		Name:    "labels",
		Aliases: []string{"l"},
		Usage:   "List parameter and observation labels of the variant",
		Action:  cmdLabels,
	}
}

// LabelsResult is the output of the labels command.
type LabelsResult struct {
	Variant      string   `json:"variant" yaml:"variant"`
	Parameters   []string `json:"parameters" yaml:"parameters"`
	Observations []string `json:"observations" yaml:"observations"`
}

func cmdLabels(_ context.Context, cmd *urfave.Command) error {
	cfg, err := getConfig(cmd)
	if err != nil {
		return err
	}

	return cfg.encode(&LabelsResult{
		Variant:      cfg.Task.Config().Variant.String(),
		Parameters:   cfg.Task.ParameterLabels(),
		Observations: cfg.Task.ObservationLabels(),
	})
}
