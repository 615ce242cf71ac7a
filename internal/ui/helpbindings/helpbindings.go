// Package helpbindings provides a scrollable popup for displaying keybindings.
package helpbindings

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/fable/internal/keymap"
	"github.com/llehouerou/fable/internal/ui"
	"github.com/llehouerou/fable/internal/ui/popup"
	"github.com/llehouerou/fable/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

// categoryOrder defines the display order of binding categories.
var categoryOrder = []string{
	"global",
	"playback",
	"synthesis",
	"list",
	"books",
	"chapters",
	"segments",
}

// categoryLabels maps context names to display labels.
var categoryLabels = map[string]string{
	"global":    "Global",
	"playback":  "Playback",
	"synthesis": "Synthesis",
	"list":      "Navigation",
	"books":     "Books",
	"chapters":  "Chapters",
	"segments":  "Segments",
}

// Model holds the state for the help bindings popup.
type Model struct {
	ui.Base
	bindings     []keymap.Binding
	contexts     []string
	scrollOffset int
}

// New creates a new help bindings model.
func New() Model {
	return Model{}
}

// SetContexts sets which binding contexts to display.
func (m *Model) SetContexts(contexts []string) {
	m.contexts = contexts
	m.bindings = nil
	for _, ctx := range categoryOrder {
		if slices.Contains(contexts, ctx) {
			m.bindings = append(m.bindings, keymap.ByContext(ctx)...)
		}
	}
	m.scrollOffset = 0
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "?", "esc", "q":
		return m, func() tea.Msg { return ActionMsg(Close{}) }
	case "j", "down":
		if m.scrollOffset < m.maxScroll() {
			m.scrollOffset++
		}
	case "k", "up":
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}
	}
	return m, nil
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	content := m.buildContent()
	lines := strings.Split(content, "\n")

	// Measure ALL lines (not just visible) for consistent popup width
	maxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}

	visibleHeight := m.visibleHeight()
	if visibleHeight <= 0 {
		visibleHeight = len(lines)
	}

	startLine := min(m.scrollOffset, len(lines))
	endLine := min(startLine+visibleHeight, len(lines))

	visibleLines := lines[startLine:endLine]
	for i, line := range visibleLines {
		if w := lipgloss.Width(line); w < maxWidth {
			visibleLines[i] = line + strings.Repeat(" ", maxWidth-w)
		}
	}

	s := styles.T().S()

	var result strings.Builder
	result.WriteString(s.Title.Render("Help"))
	result.WriteString("\n\n")
	result.WriteString(strings.Join(visibleLines, "\n"))
	result.WriteString("\n\n")
	result.WriteString(s.Subtle.Render(m.buildFooter()))

	return result.String()
}

func (m Model) buildContent() string {
	var sb strings.Builder

	t := styles.T()
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	descStyle := t.S().Base
	headerStyle := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)
	separatorStyle := t.S().Subtle

	// Find max key width for alignment
	maxKeyWidth := 0
	for _, b := range m.bindings {
		keyStr := strings.Join(b.Keys, ", ")
		if len(keyStr) > maxKeyWidth {
			maxKeyWidth = len(keyStr)
		}
	}

	currentContext := ""
	for _, b := range m.bindings {
		if b.Context != currentContext {
			if currentContext != "" {
				sb.WriteString("\n")
			}
			label := categoryLabels[b.Context]
			if label == "" {
				label = b.Context
			}
			sb.WriteString(headerStyle.Render(label))
			sb.WriteString("\n")
			sb.WriteString(separatorStyle.Render(strings.Repeat("─", maxKeyWidth+15)))
			sb.WriteString("\n")
			currentContext = b.Context
		}

		keyStr := strings.Join(b.Keys, ", ")
		paddedKey := keyStr + strings.Repeat(" ", maxKeyWidth-len(keyStr))
		sb.WriteString(keyStyle.Render(paddedKey))
		sb.WriteString("  ")
		sb.WriteString(descStyle.Render(b.Description))
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func (m Model) buildFooter() string {
	if m.totalLines() <= m.visibleHeight() {
		return "?/esc close"
	}
	return "j/k scroll · ?/esc close"
}

func (m Model) visibleHeight() int {
	// Leave room for popup chrome (title, footer, borders, margins)
	return max(m.Height()-10, 5)
}

func (m Model) totalLines() int {
	return strings.Count(m.buildContent(), "\n") + 1
}

func (m Model) maxScroll() int {
	total := m.totalLines()
	visible := m.visibleHeight()
	if total <= visible {
		return 0
	}
	return total - visible
}
