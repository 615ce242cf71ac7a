// Package statusbar renders the playback bar at the bottom of the screen.
package statusbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/fable/internal/icons"
	"github.com/llehouerou/fable/internal/ui/render"
	"github.com/llehouerou/fable/internal/ui/styles"
)

// State holds everything needed to render the status bar.
type State struct {
	Playing bool // a segment is being narrated
	Waiting bool // a divider pause is running out

	Book    string
	Chapter string

	Segment  int // 1-based index within the chapter
	Segments int // total segments in the chapter

	Position time.Duration
	Duration time.Duration

	Continuous bool // playback advances to the next segment
}

// Active reports whether the bar has anything to show.
func (s State) Active() bool {
	return s.Playing || s.Waiting
}

// Height returns the bar height for the given state. An idle bar takes
// no rows so the panes can use the full screen.
func Height(s State) int {
	if !s.Active() {
		return 0
	}
	return 3 // top border + content + bottom border
}

// Render returns the status bar string for the given width.
// Returns empty string while idle.
func Render(s State, width int) string {
	if !s.Active() {
		return ""
	}

	innerWidth := max(width-6, 0)

	status := icons.Playing()
	if s.Waiting {
		status = icons.Waiting()
	}

	title := s.Book
	if title == "" {
		title = "Unknown Book"
	}
	info := s.Chapter

	// Segment counter, e.g. "12/48" with the auto-advance marker
	var metaParts []string
	if s.Segment > 0 && s.Segments > 0 {
		metaParts = append(metaParts, fmt.Sprintf("%d/%d", s.Segment, s.Segments))
	}
	if s.Continuous {
		metaParts = append(metaParts, "auto")
	}
	meta := strings.Join(metaParts, " · ")

	timeStr := fmt.Sprintf("%s / %s", formatDuration(s.Position), formatDuration(s.Duration))

	separator := "   "
	sepWidth := lipgloss.Width(separator)
	timeWidth := lipgloss.Width(timeStr)
	statusWidth := lipgloss.Width(status + "  ")
	metaWidth := lipgloss.Width(meta)

	titleWidth := lipgloss.Width(title)
	infoWidth := lipgloss.Width(info)

	// Reserve minimum space for the progress bar
	minBarWidth := 10

	metaSpace := 0
	if meta != "" {
		metaSpace = metaWidth + sepWidth
	}
	availableForContent := innerWidth - statusWidth - timeWidth - sepWidth*2 - minBarWidth - metaSpace

	th := styles.T()
	titleStyle := th.S().Title
	infoStyle := th.S().Muted

	var styledTitle, styledInfo string
	var usedContentWidth int

	switch {
	case titleWidth+sepWidth+infoWidth <= availableForContent:
		// Everything fits
		styledTitle = titleStyle.Render(title)
		styledInfo = infoStyle.Render(info)
		usedContentWidth = titleWidth + sepWidth + infoWidth
	case titleWidth+sepWidth <= availableForContent && info != "":
		// Truncate the chapter
		maxInfo := availableForContent - titleWidth - sepWidth
		styledTitle = titleStyle.Render(title)
		styledInfo = infoStyle.Render(render.TruncateEllipsis(info, maxInfo))
		usedContentWidth = titleWidth + sepWidth + maxInfo
	default:
		// Truncate the book title, drop the chapter
		maxTitle := max(availableForContent, 10)
		styledTitle = titleStyle.Render(render.TruncateEllipsis(title, maxTitle))
		styledInfo = ""
		usedContentWidth = min(titleWidth, maxTitle)
	}

	barWidth := max(innerWidth-usedContentWidth-metaSpace-statusWidth-timeWidth-sepWidth*2, 5)

	var ratio float64
	if s.Duration > 0 {
		ratio = float64(s.Position) / float64(s.Duration)
	}
	filled := min(int(float64(barWidth)*ratio), barWidth)
	filledBar := lipgloss.NewStyle().Foreground(th.Primary).Render(strings.Repeat("━", filled))
	emptyBar := th.S().Subtle.Render(strings.Repeat("─", barWidth-filled))

	var content strings.Builder
	content.WriteString(styledTitle)
	if styledInfo != "" {
		content.WriteString(separator)
		content.WriteString(styledInfo)
	}
	if meta != "" {
		content.WriteString(separator)
		content.WriteString(th.S().Subtle.Render(meta))
	}
	content.WriteString(separator)
	content.WriteString(status)
	content.WriteString("  ")
	content.WriteString(filledBar)
	content.WriteString(emptyBar)
	content.WriteString(separator)
	content.WriteString(infoStyle.Render(timeStr))

	barStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(th.Border)

	return barStyle.Padding(0, 2).Width(width - 2).Render(content.String())
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
