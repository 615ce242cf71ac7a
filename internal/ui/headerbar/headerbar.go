// Package headerbar renders the single-line bar at the top of the screen.
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/fable/internal/ui/render"
	"github.com/llehouerou/fable/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// State describes what the header shows.
type State struct {
	Book    string // empty while browsing the library root
	Chapter string // empty until a chapter is opened

	EngineConfigured bool
	EngineName       string // voice/engine label, e.g. "af_heart"
	EngineOnline     bool
}

// Render returns the header bar string for the given width.
func Render(st State, width int) string {
	if width < 20 {
		return ""
	}

	title := styles.TitleGradient("fable")
	crumb := breadcrumb(st)
	status := engineStatus(st)

	// Give the breadcrumb whatever room the title and status leave.
	avail := width - lipgloss.Width(title) - lipgloss.Width(status) - 4
	if avail > 0 && lipgloss.Width(crumb) > avail {
		crumb = render.TruncateEllipsis(crumb, avail)
	}

	left := title + "  " + crumb
	return render.Row(left, status, width)
}

func breadcrumb(st State) string {
	s := styles.T().S()
	sep := s.Subtle.Render(" ▸ ")

	parts := []string{s.Muted.Render("Books")}
	if st.Book != "" {
		parts = append(parts, s.Base.Render(render.Sanitize(st.Book)))
	}
	if st.Chapter != "" {
		parts = append(parts, s.Base.Render(render.Sanitize(st.Chapter)))
	}
	return strings.Join(parts, sep)
}

func engineStatus(st State) string {
	s := styles.T().S()
	if !st.EngineConfigured {
		return s.Subtle.Render("no engine")
	}
	name := st.EngineName
	if name == "" {
		name = "engine"
	}
	if st.EngineOnline {
		return s.Success.Render("● " + name)
	}
	return s.Error.Render("● " + name + " offline")
}
