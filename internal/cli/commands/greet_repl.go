package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/greeter/pkg/greet"
	"github.com/spf13/cobra"
)

const replPrompt = "greet> "

// lineReader is the part of *readline.Instance the REPL loop needs.
type lineReader interface {
	Readline() (string, error)
}

func runGreetREPL(cmd *cobra.Command, display greet.Display) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     replHistoryFile(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize prompt: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type a name to greet it, .help for commands, .quit to exit")

	return greetLoop(rl, cmd.OutOrStdout(), display)
}

// greetLoop greets every line read from rl until EOF or .quit.
func greetLoop(rl lineReader, out io.Writer, display greet.Display) error {
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read name: %w", err)
		}

		switch strings.TrimSpace(line) {
		case "":
			continue
		case ".quit", ".exit":
			return nil
		case ".help":
			printREPLHelp(out)
			continue
		}

		greet.Greet(line, display)
	}
}

func printREPLHelp(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Commands:")
	_, _ = fmt.Fprintln(w, "  .help   Show this help")
	_, _ = fmt.Fprintln(w, "  .quit   Exit (also .exit or Ctrl-D)")
	_, _ = fmt.Fprintln(w, "Anything else is greeted exactly as typed.")
}

// replHistoryFile returns the history path in the user cache dir, or ""
// to run without history.
func replHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "greeter")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ""
	}
	return filepath.Join(dir, "greet_history")
}
