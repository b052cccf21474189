package host

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/leapstack-labs/greeter/internal/cli/output"
	"github.com/leapstack-labs/greeter/pkg/greet"
)

var (
	// ErrUnknownHost is returned for a host kind that does not exist.
	ErrUnknownHost = errors.New("unknown display host")
	// ErrNotTerminalHost is returned when a host that only exists inside a
	// server or a browser is requested from the terminal.
	ErrNotTerminalHost = errors.New("display host is not available from the terminal")
)

// Kind names a display host.
type Kind string

// Host kinds.
const (
	KindConsole Kind = "console"
	KindModal   Kind = "modal"
	KindWeb     Kind = "web"
	KindBrowser Kind = "browser"
)

// Info describes a host kind.
type Info struct {
	Kind        Kind   `json:"kind"`
	Description string `json:"description"`
	Terminal    bool   `json:"terminal"`
}

var kinds = []Info{
	{Kind: KindConsole, Description: "Alert box, markdown quote or JSON on stdout", Terminal: true},
	{Kind: KindModal, Description: "Full-screen dialog, blocks until dismissed", Terminal: true},
	{Kind: KindWeb, Description: "alert() in every browser connected to greeter serve", Terminal: false},
	{Kind: KindBrowser, Description: "window.alert from the js/wasm build", Terminal: false},
}

// Kinds returns every host kind.
func Kinds() []Info {
	out := make([]Info, len(kinds))
	copy(out, kinds)
	return out
}

// TerminalKinds returns the kinds New can build.
func TerminalKinds() []Kind {
	var out []Kind
	for _, k := range kinds {
		if k.Terminal {
			out = append(out, k.Kind)
		}
	}
	return out
}

// Lookup returns the Info for kind.
func Lookup(kind Kind) (Info, error) {
	for _, k := range kinds {
		if k.Kind == kind {
			return k, nil
		}
	}
	return Info{}, fmt.Errorf("%w: %q", ErrUnknownHost, kind)
}

// Deps carries what terminal hosts need.
type Deps struct {
	Renderer *output.Renderer
	In       io.Reader
	Out      io.Writer
	Logger   *slog.Logger
}

// New builds the terminal host for kind.
func New(kind Kind, deps Deps) (greet.Display, error) {
	info, err := Lookup(kind)
	if err != nil {
		return nil, err
	}
	if !info.Terminal {
		return nil, fmt.Errorf("%w: %q", ErrNotTerminalHost, kind)
	}

	switch kind {
	case KindModal:
		return NewModal(deps.In, deps.Out, deps.Logger), nil
	default:
		return NewConsole(deps.Renderer, deps.Logger), nil
	}
}
