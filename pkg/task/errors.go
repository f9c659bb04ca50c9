package task

import (
	"github.com/mchmarny/ncapsim/pkg/rating"
	"github.com/pkg/errors"
)

var (
	// ErrShape is returned when a parameter batch has the wrong width.
	ErrShape = rating.ErrShape

	// ErrConfig is returned for an invalid task configuration.
	ErrConfig = errors.New("invalid task config")

	// ErrBudgetExceeded is returned once the simulation budget is spent.
	ErrBudgetExceeded = errors.New("simulation budget exceeded")

	// ErrNotImplemented is returned by operations this task does not support.
	ErrNotImplemented = errors.New("not implemented")
)
