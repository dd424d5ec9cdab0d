package installer

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// ModelStep allows selection of the Gemini model
type ModelStep struct {
	list list.Model
}

func NewModelStep() Step {
	items := []list.Item{
		item{id: "gemini-2.0-flash-001", title: "Gemini 2.0 Flash", desc: "Fast, good function calling (recommended)"},
		item{id: "gemini-2.0-flash-lite-001", title: "Gemini 2.0 Flash Lite", desc: "Cheapest, weaker tool use"},
		item{id: "gemini-1.5-pro", title: "Gemini 1.5 Pro", desc: "Slower, larger context"},
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select Gemini Model"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle

	return &ModelStep{list: l}
}

func (s *ModelStep) Init() tea.Cmd {
	return nil
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	s.list.SetSize(width, height-4)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if i, ok := s.list.SelectedItem().(item); ok {
			state.Settings.GeminiModel = i.id
			return nil, nil
		}
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	return s.list.View()
}
