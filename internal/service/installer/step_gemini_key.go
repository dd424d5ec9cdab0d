package installer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// GeminiKeyStep collects the Gemini API key
type GeminiKeyStep struct {
	input textinput.Model
}

func NewGeminiKeyStep() Step {
	input := textinput.New()
	input.Focus()
	input.CharLimit = 255
	input.Width = 40
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'
	input.Placeholder = "AIza..."

	return &GeminiKeyStep{input: input}
}

func (s *GeminiKeyStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *GeminiKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if s.input.Value() == "" {
			return s, cmd
		}
		state.Settings.GeminiAPIKey = s.input.Value()
		return nil, nil
	}
	return s, cmd
}

func (s *GeminiKeyStep) View(state *InstallState) string {
	return fmt.Sprintf("Enter your Gemini API Key:\n\n%s\n\n(press enter to confirm)\n", s.input.View())
}
