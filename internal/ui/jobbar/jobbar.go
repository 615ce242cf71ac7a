// Package jobbar displays running narration jobs at the bottom of the screen.
package jobbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/fable/internal/ui/render"
	"github.com/llehouerou/fable/internal/ui/styles"
)

// BorderHeight is the height of borders around the job bar.
const BorderHeight = 2

// Height returns the total height for the given number of running jobs.
func Height(jobCount int) int {
	if jobCount == 0 {
		return 0
	}
	return jobCount + BorderHeight
}

// Job is one narration run over a chapter. Total is known up front: the
// queue is built from the chapter's pending segments before the first
// synthesis starts. Failed segments still count as done.
type Job struct {
	ID     string
	Label  string
	Done   int
	Failed int
	Total  int
}

// State holds the jobs to display.
type State struct {
	Jobs []Job
}

// ActiveCount returns the number of running jobs. Finished jobs are
// removed from the state, never flagged.
func (s State) ActiveCount() int {
	return len(s.Jobs)
}

// Render renders the job bar with the given width. Returns the empty
// string when no job is running.
func Render(state State, width int) string {
	if len(state.Jobs) == 0 {
		return ""
	}

	innerWidth := width - 2 // account for borders

	lines := make([]string, 0, len(state.Jobs))
	for _, job := range state.Jobs {
		lines = append(lines, jobLine(job, innerWidth))
	}

	return styles.PanelStyle(false).
		Width(innerWidth).
		Render(strings.Join(lines, "\n"))
}

// jobLine renders one narration job:
//
//	◦ Narrating Chapter Three  [━━━━────] 12/48 · 2 failed
func jobLine(job Job, width int) string {
	s := styles.T().S()
	accent := lipgloss.NewStyle().Foreground(styles.T().Primary)

	tally := fmt.Sprintf("%d/%d", job.Done, job.Total)
	var failed string
	if job.Failed > 0 {
		failed = fmt.Sprintf(" · %d failed", job.Failed)
	}
	rightWidth := lipgloss.Width(tally) + lipgloss.Width(failed)

	// glyph(2) + label + gap(2) + [bar] + space(1) + tally/failed
	const minBarWidth = 10
	fixedWidth := 2 + 2 + 2 + 1 + rightWidth
	labelWidth := max(width-fixedWidth-minBarWidth, 10)
	label := render.TruncateAndPad(job.Label, labelWidth)
	barWidth := max(width-labelWidth-fixedWidth, minBarWidth)

	filled := 0
	if job.Total > 0 {
		filled = min(barWidth*job.Done/job.Total, barWidth)
	}

	var b strings.Builder
	b.WriteString(accent.Render("◦"))
	b.WriteString(" ")
	b.WriteString(s.Title.Render(label))
	b.WriteString("  [")
	b.WriteString(accent.Render(strings.Repeat("━", filled)))
	b.WriteString(s.Subtle.Render(strings.Repeat("─", barWidth-filled)))
	b.WriteString("] ")
	b.WriteString(s.Muted.Render(tally))
	if failed != "" {
		b.WriteString(s.Error.Render(failed))
	}
	return b.String()
}
