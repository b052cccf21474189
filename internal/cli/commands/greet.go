package commands

import (
	"fmt"

	"github.com/leapstack-labs/greeter/internal/host"
	"github.com/leapstack-labs/greeter/pkg/greet"
	"github.com/spf13/cobra"
)

// GreetOptions holds options for the greet command.
type GreetOptions struct {
	Interactive bool
}

// NewGreetCommand creates the greet command.
func NewGreetCommand() *cobra.Command {
	opts := &GreetOptions{}

	cmd := &cobra.Command{
		Use:   "greet [name...]",
		Short: "Greet one or more names",
		Long: `Greet each name in order through the configured display host.

Names are used exactly as given: no trimming, no escaping. Without a name
the configured default (name: in greeter.yaml, GREETER_NAME) is greeted.`,
		Example: `  # Greet the default name
  greeter greet

  # Greet several people, one alert each
  greeter greet Ada Grace "O'Brien"

  # Show a blocking dialog instead of printing
  greeter greet --host modal Ada

  # Greet names as you type them
  greeter greet -i`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGreet(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Interactive, "interactive", "i", false, "Prompt for names until .quit")

	return cmd
}

func runGreet(cmd *cobra.Command, args []string, opts *GreetOptions) error {
	cc := NewCommandContext(cmd)

	display, err := host.New(host.Kind(cc.Cfg.Host), host.Deps{
		Renderer: cc.Renderer,
		In:       cmd.InOrStdin(),
		Out:      cmd.OutOrStdout(),
		Logger:   cc.Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create display host: %w", err)
	}

	if opts.Interactive {
		return runGreetREPL(cmd, display)
	}

	names := args
	if len(names) == 0 {
		names = []string{cc.Cfg.Name}
	}
	for _, name := range names {
		cc.Logger.Debug("greeting", "name", name, "host", cc.Cfg.Host)
		greet.Greet(name, display)
	}
	return nil
}
