// Package textinput provides a single-line text input popup component.
package textinput

import (
	input "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/fable/internal/ui"
	"github.com/llehouerou/fable/internal/ui/popup"
	"github.com/llehouerou/fable/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.T().Primary)
}

func hintStyle() lipgloss.Style {
	return styles.T().S().Subtle
}

// Model is a single-line text input popup.
type Model struct {
	ui.Base
	title   string
	input   input.Model
	context any // passed through to Result action
}

// New creates a new text input model.
func New() Model {
	return Model{input: input.New()}
}

// Start initializes the input with a title, placeholder and initial text.
func (m *Model) Start(title, placeholder, initialText string, context any, width, height int) {
	ti := input.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40
	ti.SetValue(initialText)
	ti.CursorEnd()
	ti.Focus()

	m.title = title
	m.input = ti
	m.context = context
	m.SetSize(width, height)
}

// Reset clears the input state.
func (m *Model) Reset() {
	m.title = ""
	m.input = input.New()
	m.context = nil
}

// Value returns the current input text.
func (m Model) Value() string {
	return m.input.Value()
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return input.Blink
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			ctx := m.context
			return m, func() tea.Msg {
				return ActionMsg(Result{Canceled: true, Context: ctx})
			}

		case "enter":
			text := m.input.Value()
			ctx := m.context
			return m, func() tea.Msg {
				return ActionMsg(Result{Text: text, Context: ctx})
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	title := titleStyle().Render(m.title)
	hint := hintStyle().Render("Enter: confirm, Esc: cancel")

	return title + "\n\n" + m.input.View() + "\n\n" + hint
}
