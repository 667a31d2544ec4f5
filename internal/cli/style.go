package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/bubbles/v2/progress"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/raphaelgruber/studioflow/internal/service"
)

const barWidth = 20

// Theme holds the color scheme for job listings and the board.
type Theme struct {
	Critical lipgloss.Color
	Stale    lipgloss.Color
	Nominal  lipgloss.Color
	Neutral  lipgloss.Color
	Heading  lipgloss.Color
	Hint     lipgloss.Color
	Error    lipgloss.Color
}

var defaultTheme = Theme{
	Critical: lipgloss.Color("#FF005F"), // red
	Stale:    lipgloss.Color("#FFAF00"), // amber
	Nominal:  lipgloss.Color("#00D787"), // green
	Neutral:  lipgloss.Color("#6C6C6C"), // dim gray
	Heading:  lipgloss.Color("#5FAFD7"), // light blue
	Hint:     lipgloss.Color("#6C6C6C"),
	Error:    lipgloss.Color("#FF005F"),
}

func (t Theme) toneStyle(tone service.Tone) lipgloss.Style {
	switch tone {
	case service.ToneCritical:
		return lipgloss.NewStyle().Foreground(t.Critical).Bold(true)
	case service.ToneStale:
		return lipgloss.NewStyle().Foreground(t.Stale)
	case service.ToneNominal:
		return lipgloss.NewStyle().Foreground(t.Nominal)
	default:
		return lipgloss.NewStyle().Foreground(t.Neutral)
	}
}

func (t Theme) headingStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Heading).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// renderer styles output for one writer. Plain writers get no escape codes.
type renderer struct {
	color bool
	theme Theme
	bar   progress.Model
}

func newRenderer(w io.Writer) renderer {
	return renderer{
		color: isTerminal(w),
		theme: defaultTheme,
		bar: progress.New(
			progress.WithDefaultBlend(),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		),
	}
}

// progressBar draws pct (0-100) as a bar.
func (r renderer) progressBar(pct int) string {
	if r.color {
		return r.bar.ViewAs(float64(pct) / 100)
	}
	filled := pct * barWidth / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

func (r renderer) tone(tone service.Tone, s string) string {
	if !r.color {
		return s
	}
	return r.theme.toneStyle(tone).Render(s)
}

func (r renderer) heading(s string) string {
	if !r.color {
		return s
	}
	return r.theme.headingStyle().Render(s)
}

// dueLabel describes the due date of v relative to today.
func dueLabel(v service.JobView) string {
	switch {
	case v.DueDate == "":
		return "no due date"
	case v.IsCompleted:
		return "due " + v.DueDate
	case v.DaysLeft == nil:
		return "due " + v.DueDate
	case *v.DaysLeft < 0:
		return fmt.Sprintf("due %s (%d business days late)", v.DueDate, -*v.DaysLeft)
	case *v.DaysLeft == 0:
		return fmt.Sprintf("due %s (today)", v.DueDate)
	default:
		return fmt.Sprintf("due %s (%d business days left)", v.DueDate, *v.DaysLeft)
	}
}
