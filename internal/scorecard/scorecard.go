// Package scorecard renders scored bowling games for the terminal.
package scorecard

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/tenpin/bowling"
)

// Renderer draws a row of frame boxes with roll marks and running totals.
type Renderer struct {
	renderer    *lipgloss.Renderer
	headerStyle lipgloss.Style
	boxStyle    lipgloss.Style
	strikeStyle lipgloss.Style
	spareStyle  lipgloss.Style
	totalStyle  lipgloss.Style
}

// NewRenderer creates a renderer writing for w. With color disabled the
// output is plain ASCII apart from the box borders.
func NewRenderer(w io.Writer, color bool) *Renderer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{
		renderer: r,
		headerStyle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")),
		boxStyle: r.NewStyle().
			Border(lipgloss.NormalBorder()).
			Width(7).
			Align(lipgloss.Center),
		strikeStyle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10")),
		spareStyle: r.NewStyle().
			Foreground(lipgloss.Color("11")),
		totalStyle: r.NewStyle().
			Foreground(lipgloss.Color("14")),
	}
}

// Render draws the frames side by side, followed by the final score.
func (r *Renderer) Render(frames []bowling.FrameScore) string {
	boxes := make([]string, 0, len(frames))
	for _, f := range frames {
		marks := Marks(f.Rolls)
		for i, m := range marks {
			switch m {
			case "X":
				marks[i] = r.strikeStyle.Render(m)
			case "/":
				marks[i] = r.spareStyle.Render(m)
			}
		}

		body := strings.Join(marks, " ") + "\n" + r.totalStyle.Render(strconv.Itoa(f.Total))
		header := r.headerStyle.Render(strconv.Itoa(f.Index + 1))
		boxes = append(boxes, lipgloss.JoinVertical(lipgloss.Center, header, r.boxStyle.Render(body)))
	}

	total := bowling.Total(frames)

	card := lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
	return card + "\n" + r.headerStyle.Render("score") + " " + r.totalStyle.Render(strconv.Itoa(total)) + "\n"
}

// Marks converts a frame's rolls to scoresheet marks: X for a strike, / for a
// spare, - for a miss. In the last frame the pins are reset after a strike or a
// spare, so later rolls can be marked as strikes too.
func Marks(f bowling.Frame) []string {
	marks := make([]string, len(f))
	standing, fresh := bowling.Pins, true
	for i, roll := range f {
		switch {
		case fresh && roll == bowling.Pins:
			marks[i] = "X"
		case !fresh && roll == standing:
			marks[i] = "/"
		case roll == 0:
			marks[i] = "-"
		default:
			marks[i] = strconv.Itoa(roll)
		}

		standing -= roll
		fresh = false
		if standing <= 0 {
			standing, fresh = bowling.Pins, true
		}
	}
	return marks
}
