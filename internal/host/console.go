// Package host provides the display implementations that back greet.Display.
//
// A host owns its failures: errors from writing to a terminal or running a
// program are logged, never handed back to the caller of greet.Greet.
package host

import (
	"log/slog"

	"github.com/leapstack-labs/greeter/internal/cli/output"
)

// Console displays text through an output renderer.
type Console struct {
	renderer *output.Renderer
	logger   *slog.Logger
}

// NewConsole creates a console host writing through r.
func NewConsole(r *output.Renderer, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Console{renderer: r, logger: logger}
}

// Display renders text as an alert.
func (c *Console) Display(text string) {
	if err := c.renderer.Alert(text); err != nil {
		c.logger.Error("console display failed", "error", err)
	}
}
