// Package confirm implements the Confirmer port: an interactive y/N modal
// for terminal use and a static answer for non-interactive contexts.
package confirm

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atelier-sh/atelier/internal/ports"
)

// Static answers every confirmation the same way without prompting. Used
// when no terminal is attached (MCP serve mode).
type Static bool

var _ ports.Confirmer = Static(false)

func (s Static) Confirm(_ context.Context, _ string) (bool, error) {
	return bool(s), nil
}

// Prompt shows a bubbletea y/N modal on the terminal.
type Prompt struct{}

var _ ports.Confirmer = Prompt{}

func (Prompt) Confirm(ctx context.Context, prompt string) (bool, error) {
	p := tea.NewProgram(newPromptModel(prompt), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("run confirmation prompt: %w", err)
	}

	m, ok := final.(promptModel)
	if !ok {
		return false, fmt.Errorf("unexpected final confirmation model type %T", final)
	}
	return m.approved, nil
}

type promptKeys struct {
	yes  key.Binding
	no   key.Binding
	quit key.Binding
}

type promptModel struct {
	prompt   string
	keys     promptKeys
	style    lipgloss.Style
	approved bool
	done     bool
}

func newPromptModel(prompt string) promptModel {
	return promptModel{
		prompt: prompt,
		keys: promptKeys{
			yes:  key.NewBinding(key.WithKeys("y", "Y")),
			no:   key.NewBinding(key.WithKeys("n", "N", "enter")),
			quit: key.NewBinding(key.WithKeys("esc", "ctrl+c")),
		},
		style: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208")),
	}
}

func (m promptModel) Init() tea.Cmd {
	return nil
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.yes):
		m.approved = true
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.no), key.Matches(keyMsg, m.keys.quit):
		m.done = true
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m promptModel) View() string {
	if m.done {
		return ""
	}
	return m.style.Render(m.prompt) + " [y/N] "
}
