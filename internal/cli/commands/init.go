package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Force    bool
	Template string
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	opts := &InitOptions{}

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new greeter project",
		Long: `Initialize a new greeter project.

This creates:
  - greeter.yaml configuration file, titled after the directory
  - web/ directory for the js/wasm build served by greeter serve
  - .gitignore excluding the wasm build output

Use --template wasm for a Go module that builds a browser greeter,
with main.go, go.mod, web/index.html and build notes.`,
		Example: `  # Initialize in current directory
  greeter init

  # Initialize in a new directory
  greeter init my-greeter

  # Scaffold a runnable wasm page
  greeter init my-greeter --template wasm

  # Overwrite an existing greeter.yaml
  greeter init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(NewCommandContext(cmd), dir, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite existing files")
	cmd.Flags().StringVarP(&opts.Template, "template", "t", "minimal", "Project template ("+strings.Join(templateNames(), "|")+")")
	_ = cmd.RegisterFlagCompletionFunc("template", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return templateNames(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runInit(cc *CommandContext, dir string, opts *InitOptions) error {
	tmpl, err := lookupTemplate(opts.Template)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, "greeter.yaml")
	if _, err := os.Stat(configPath); err == nil && !opts.Force {
		return fmt.Errorf("greeter.yaml already exists. Use --force to overwrite")
	}

	data, err := newTemplateData(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve project name: %w", err)
	}

	written, err := copyTemplate(tmpl.Name, dir, opts.Force, data)
	if err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}
	cc.Logger.Debug("project initialized", "template", tmpl.Name, "project", data.Project, "files", len(written))

	r := cc.Renderer
	styles := r.Styles()
	r.Muted(fmt.Sprintf("Scaffolded %s from the %s template: %s", data.Project, tmpl.Name, tmpl.Description))
	for _, f := range written {
		r.Printf("%s %s\n", styles.Success.Render("✓"), f)
	}
	r.Println("")
	r.Println(styles.Bold.Render("greeter project initialized!"))
	r.Println("")
	r.Println("Next steps:")
	for i, step := range tmpl.NextSteps {
		r.Printf("  %d. %s\n", i+1, step)
	}

	return nil
}
