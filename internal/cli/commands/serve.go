package commands

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/leapstack-labs/greeter/internal/web"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	NoBrowser bool
}

// NewServeCommand creates the serve command. Its --port, --watch and
// --wasm-dir flags are read through the config loader.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the greeter dev server",
		Long: `Start a local web server that greets through the browser.

Every greeting posted from the page raises alert() in each connected
browser. If the wasm directory holds greeter.wasm and wasm_exec.js (from
GOOS=js GOARCH=wasm go build ./cmd/greeter-wasm), the page also loads the
wasm build, and rebuilding it reloads the page when --watch is on.`,
		Example: `  # Start on the default port
  greeter serve

  # Serve a wasm build from ./dist on port 3000
  greeter serve --port 3000 --wasm-dir dist`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().Int("port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().Bool("watch", true, "Reload browsers when the wasm build changes")
	cmd.Flags().String("wasm-dir", "", "Directory holding greeter.wasm and wasm_exec.js (default: web)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cc := NewCommandContext(cmd)
	serveCfg := cc.Cfg.Serve

	if _, err := os.Stat(serveCfg.WasmDir); os.IsNotExist(err) {
		cc.Logger.Warn("wasm directory does not exist, only the server-side greeting is available", "dir", serveCfg.WasmDir)
	}

	server := web.NewServer(web.Config{
		Title:         cc.Cfg.Project,
		Port:          serveCfg.Port,
		Watch:         serveCfg.Watch,
		WasmDir:       serveCfg.WasmDir,
		SessionSecret: serveCfg.SessionSecret,
		Logger:        cc.Logger,
		OnReady: func(url string) {
			cc.Renderer.Muted(fmt.Sprintf("Serving greeter on %s", url))
			cc.Renderer.Muted("Press Ctrl+C to stop")
			if !opts.NoBrowser {
				go openBrowser(url)
			}
		},
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx)
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
