package output

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func TestRenderer_EffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		isTTY bool
		want  Mode
	}{
		{"auto tty", ModeAuto, true, ModeText},
		{"auto pipe", ModeAuto, false, ModeMarkdown},
		{"empty is auto", "", false, ModeMarkdown},
		{"explicit text on pipe", ModeText, false, ModeText},
		{"json on tty", ModeJSON, true, ModeJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, tt.isTTY, tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestRenderer_Alert(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		want []string
	}{
		{"text", ModeText, []string{"Hi, World!!!", "[ OK ]", "╭"}},
		{"markdown", ModeMarkdown, []string{"> Hi, World!!!\n"}},
		{"json", ModeJSON, []string{`{"message":"Hi, World!!!"}` + "\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			r := NewRendererWithTTY(out, &bytes.Buffer{}, false, tt.mode)

			require.NoError(t, r.Alert("Hi, World!!!"))

			got := out.String()
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			assert.False(t, ansiPattern.MatchString(got), "non-TTY output must not contain ANSI codes: %q", got)
		})
	}
}

func TestRenderer_AlertJSONKeepsMarkup(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRendererWithTTY(out, &bytes.Buffer{}, false, ModeJSON)

	require.NoError(t, r.Alert("Hi, <O'Brien>!!!"))
	assert.Equal(t, `{"message":"Hi, <O'Brien>!!!"}`, strings.TrimSpace(out.String()))
}

func TestRenderer_AlertMarkdownQuotesEveryLine(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRendererWithTTY(out, &bytes.Buffer{}, false, ModeMarkdown)

	require.NoError(t, r.Alert("Hi, a\nb!!!"))
	assert.Equal(t, "> Hi, a\n> b!!!\n", out.String())
}

func TestRenderer_MutedGoesToStderr(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	r := NewRendererWithTTY(out, errOut, false, ModeText)

	r.Muted("starting")

	assert.Empty(t, out.String())
	assert.Equal(t, "starting\n", errOut.String())
}

func TestMode_Valid(t *testing.T) {
	for _, m := range Modes {
		assert.True(t, m.Valid(), m)
	}
	assert.True(t, Mode("").Valid())
	assert.False(t, Mode("yaml").Valid())
}
