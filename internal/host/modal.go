package host

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal displays text in a full-screen dialog and blocks until the user
// dismisses it.
type Modal struct {
	opts   []tea.ProgramOption
	logger *slog.Logger
}

// NewModal creates a modal host reading keys from in and drawing to out.
// Extra program options are appended after the defaults.
func NewModal(in io.Reader, out io.Writer, logger *slog.Logger, opts ...tea.ProgramOption) *Modal {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	base := []tea.ProgramOption{
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	}
	return &Modal{opts: append(base, opts...), logger: logger}
}

// Display shows text and returns once the dialog is dismissed.
func (m *Modal) Display(text string) {
	p := tea.NewProgram(newModalModel(text), m.opts...)
	if _, err := p.Run(); err != nil {
		m.logger.Error("modal display failed", "error", err)
	}
}

type modalKeys struct {
	Dismiss key.Binding
}

func (k modalKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Dismiss}
}

func (k modalKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Dismiss}}
}

var defaultModalKeys = modalKeys{
	Dismiss: key.NewBinding(
		key.WithKeys("enter", "esc", " ", "q", "ctrl+c"),
		key.WithHelp("enter", "ok"),
	),
}

var (
	modalBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 4)
	modalTextStyle = lipgloss.NewStyle().Bold(true)
)

type modalModel struct {
	text      string
	keys      modalKeys
	help      help.Model
	width     int
	height    int
	dismissed bool
}

func newModalModel(text string) modalModel {
	return modalModel{
		text: text,
		keys: defaultModalKeys,
		help: help.New(),
	}
}

func (m modalModel) Init() tea.Cmd {
	return nil
}

func (m modalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Dismiss) {
			m.dismissed = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m modalModel) View() string {
	if m.dismissed {
		return ""
	}
	box := modalBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		modalTextStyle.Render(m.text),
		"",
		m.help.View(m.keys),
	))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
