package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/greeter/internal/cli/output"
	"github.com/leapstack-labs/greeter/internal/host"
	"github.com/spf13/cobra"
)

// NewHostsCommand creates the hosts command.
func NewHostsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hosts",
		Short: "List display hosts",
		Long: `List the hosts that can display a greeting.

Terminal hosts can be chosen with --host. The web host is used by
greeter serve and the browser host by the js/wasm build.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHosts(NewCommandContext(cmd))
		},
	}
}

func runHosts(cc *CommandContext) error {
	r := cc.Renderer
	kinds := host.Kinds()

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(kinds)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.AppendHeader(table.Row{"Host", "CLI", "Description"})
	for _, k := range kinds {
		cli := ""
		if k.Kind == host.Kind(cc.Cfg.Host) {
			cli = "yes (current)"
		} else if k.Terminal {
			cli = "yes"
		}
		t.AppendRow(table.Row{string(k.Kind), cli, k.Description})
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
		return nil
	}
	t.SetStyle(table.StyleLight)
	t.Render()
	return nil
}
