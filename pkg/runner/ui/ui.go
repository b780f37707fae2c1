// Package ui runs the full screen interface.
package ui

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"tableflip.dev/sleepdiary/pkg/app"
	"tableflip.dev/sleepdiary/pkg/tui"
)

// ErrNoTerminal is returned when stdout is not an interactive terminal.
var ErrNoTerminal = errors.New("ui: stdout is not a terminal")

type UI struct {
	Service *app.Service
	Logger  *zap.SugaredLogger
}

func (u *UI) Do(ctx context.Context) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return ErrNoTerminal
	}
	return tui.Run(ctx, u.Service, u.Logger)
}
