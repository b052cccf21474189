package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/greeter/internal/cli/config"
	"github.com/leapstack-labs/greeter/internal/cli/output"
	"github.com/leapstack-labs/greeter/internal/cli/testutil"
	"github.com/leapstack-labs/greeter/internal/host"
	"github.com/leapstack-labs/greeter/pkg/greet/greettest"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes cmd with cfg stored in its context, the way the root
// command would, and returns stdout.
func runCommand(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(config.WithConfig(context.Background(), cfg))
	return out.String(), err
}

func markdownConfig() *config.Config {
	cfg := config.Default()
	cfg.OutputFormat = string(output.ModeMarkdown)
	return cfg
}

func TestGreetCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default name", nil, "> Hi, World!!!\n"},
		{"one name", []string{"Ada"}, "> Hi, Ada!!!\n"},
		{"several names in order", []string{"Ada", "Grace"}, "> Hi, Ada!!!\n> Hi, Grace!!!\n"},
		{"empty name", []string{""}, "> Hi, !!!\n"},
		{"no escaping", []string{"O'Brien"}, "> Hi, O'Brien!!!\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCommand(t, NewGreetCommand(), markdownConfig(), tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestGreetCommand_ConfiguredName(t *testing.T) {
	cfg := markdownConfig()
	cfg.Name = "Config"

	out, err := runCommand(t, NewGreetCommand(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "> Hi, Config!!!\n", out)
}

func TestGreetCommand_JSON(t *testing.T) {
	cfg := config.Default()
	cfg.OutputFormat = string(output.ModeJSON)

	out, err := runCommand(t, NewGreetCommand(), cfg, "Ada")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]string{"message": "Hi, Ada!!!"}, got)
}

func TestGreetCommand_TextIsPlainOffTTY(t *testing.T) {
	cfg := config.Default()
	cfg.OutputFormat = string(output.ModeText)

	out, err := runCommand(t, NewGreetCommand(), cfg, "Ada")
	require.NoError(t, err)
	assert.Contains(t, out, "Hi, Ada!!!")
	assert.Contains(t, out, "[ OK ]")
	testutil.AssertNoANSI(t, out)
}

func TestGreetCommand_UnknownHost(t *testing.T) {
	cfg := markdownConfig()
	cfg.Host = "pigeon"

	_, err := runCommand(t, NewGreetCommand(), cfg, "Ada")
	require.Error(t, err)
	assert.ErrorIs(t, err, host.ErrUnknownHost)
}

type scriptedLines struct {
	lines []string
	errs  []error
}

func (s *scriptedLines) Readline() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line, err := s.lines[0], s.errs[0]
	s.lines, s.errs = s.lines[1:], s.errs[1:]
	return line, err
}

func script(lines ...string) *scriptedLines {
	return &scriptedLines{lines: lines, errs: make([]error, len(lines))}
}

func TestGreetLoop(t *testing.T) {
	tests := []struct {
		name     string
		input    *scriptedLines
		want     []string
		wantHelp bool
	}{
		{
			name:  "greets each line until EOF",
			input: script("Ada", "Grace"),
			want:  []string{"Hi, Ada!!!", "Hi, Grace!!!"},
		},
		{
			name:  "skips blank lines",
			input: script("", "   ", "Ada"),
			want:  []string{"Hi, Ada!!!"},
		},
		{
			name:  "keeps names verbatim",
			input: script(" Ada ", ".NET"),
			want:  []string{"Hi,  Ada !!!", "Hi, .NET!!!"},
		},
		{
			name:  "quit stops reading",
			input: script("Ada", ".quit", "Grace"),
			want:  []string{"Hi, Ada!!!"},
		},
		{
			name:  "exit stops reading",
			input: script(".exit", "Grace"),
			want:  nil,
		},
		{
			name:     "help prints commands",
			input:    script(".help", "Ada"),
			want:     []string{"Hi, Ada!!!"},
			wantHelp: true,
		},
		{
			name: "interrupt clears the line",
			input: &scriptedLines{
				lines: []string{"Ad", "Ada"},
				errs:  []error{readline.ErrInterrupt, nil},
			},
			want: []string{"Hi, Ada!!!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &greettest.Recorder{}
			out := &bytes.Buffer{}

			require.NoError(t, greetLoop(tt.input, out, rec))

			if tt.want == nil {
				assert.Empty(t, rec.Calls())
			} else {
				assert.Equal(t, tt.want, rec.Calls())
			}
			assert.Equal(t, tt.wantHelp, strings.Contains(out.String(), ".quit"))
		})
	}
}

func TestGreetLoop_ReadError(t *testing.T) {
	input := &scriptedLines{lines: []string{""}, errs: []error{errors.New("tty gone")}}

	err := greetLoop(input, io.Discard, &greettest.Recorder{})
	assert.ErrorContains(t, err, "tty gone")
}

func TestHostsCommand(t *testing.T) {
	t.Run("markdown table", func(t *testing.T) {
		out, err := runCommand(t, NewHostsCommand(), markdownConfig())
		require.NoError(t, err)

		assert.Contains(t, strings.ToLower(out), "| host |")
		assert.Contains(t, out, "| console | yes (current) |")
		assert.Contains(t, out, "| modal | yes |")
		assert.Contains(t, out, "| web |  |")
	})

	t.Run("json", func(t *testing.T) {
		cfg := config.Default()
		cfg.OutputFormat = string(output.ModeJSON)

		out, err := runCommand(t, NewHostsCommand(), cfg)
		require.NoError(t, err)

		var got []host.Info
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, host.Kinds(), got)
	})

	t.Run("text", func(t *testing.T) {
		cfg := config.Default()
		cfg.OutputFormat = string(output.ModeText)

		out, err := runCommand(t, NewHostsCommand(), cfg)
		require.NoError(t, err)
		assert.Contains(t, out, "browser")
		assert.Contains(t, out, "┌")
	})
}

func TestRunHosts_TTY(t *testing.T) {
	tr := testutil.NewTestRenderer(output.ModeAuto, true)
	cfg := config.Default()
	cfg.Host = string(host.KindModal)

	require.NoError(t, runHosts(&CommandContext{Cfg: cfg, Logger: config.GetLogger(context.Background()), Renderer: tr.Renderer}))

	out := tr.Output()
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "yes (current)")
	assert.Empty(t, tr.ErrOut.String())
}

func TestServeCommandFlags(t *testing.T) {
	cmd := NewServeCommand()

	for _, name := range []string{"port", "watch", "wasm-dir", "no-browser"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %q", name)
	}
	assert.Equal(t, "true", cmd.Flags().Lookup("watch").DefValue)
}

// chanWriter forwards each write to ch without blocking.
type chanWriter chan string

func (w chanWriter) Write(p []byte) (int, error) {
	select {
	case w <- string(p):
	default:
	}
	return len(p), nil
}

func TestServeCommand_ReportsBoundPort(t *testing.T) {
	cfg := config.Default()
	cfg.Serve.Port = 0
	cfg.Serve.Watch = false
	cfg.Serve.WasmDir = t.TempDir()

	messages := make(chanWriter, 8)
	cmd := NewServeCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(messages)
	cmd.SetArgs([]string{"--no-browser"})

	ctx, cancel := context.WithCancel(config.WithConfig(context.Background(), cfg))
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	var serving string
	timeout := time.After(5 * time.Second)
	for serving == "" {
		select {
		case msg := <-messages:
			if strings.HasPrefix(msg, "Serving greeter on ") {
				serving = strings.TrimSpace(msg)
			}
		case err := <-done:
			t.Fatalf("serve exited early: %v", err)
		case <-timeout:
			t.Fatal("serve never printed its address")
		}
	}
	assert.Regexp(t, `^Serving greeter on http://localhost:[1-9][0-9]*$`, serving)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(6 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}
