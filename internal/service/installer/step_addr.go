package installer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// AddrStep collects the HTTP listen address
type AddrStep struct {
	input textinput.Model
}

func NewAddrStep() Step {
	input := textinput.New()
	input.Focus()
	input.CharLimit = 64
	input.Width = 40
	input.Placeholder = ":8686"

	return &AddrStep{input: input}
}

func (s *AddrStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *AddrStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		addr := s.input.Value()
		if addr == "" {
			addr = ":8686"
		}
		state.Settings.HTTPAddr = addr
		return nil, nil
	}
	return s, cmd
}

func (s *AddrStep) View(state *InstallState) string {
	return fmt.Sprintf("HTTP listen address:\n\n%s\n\n(press enter to accept, empty for :8686)\n", s.input.View())
}
