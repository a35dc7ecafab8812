// Package chart draws a cumulative size series as a terminal block chart.
package chart

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/idelchi/dugraph/internal/bytefmt"
	"github.com/idelchi/dugraph/internal/fstat"
	"github.com/idelchi/dugraph/internal/timeline"
)

const (
	// DefaultWidth is the default number of plot columns.
	DefaultWidth = 72
	// DefaultHeight is the default number of plot rows.
	DefaultHeight = 16
	// DefaultTitle is the chart title.
	DefaultTitle = "Disk Usage Over Time"

	minWidth  = 8
	minHeight = 2

	// dateOnlySpan is the span above which x labels drop the time of day.
	dateOnlySpan = 48 * time.Hour
)

// blocks holds the partial cell glyphs in eighths.
//
//nolint:gochecknoglobals // Lookup table
var blocks = []rune(" ▁▂▃▄▅▆▇█")

// Renderer draws a series.
type Renderer struct {
	// Width is the number of plot columns.
	Width int
	// Height is the number of plot rows.
	Height int
	// Formatter labels the y axis.
	Formatter bytefmt.Formatter
	// Title is printed above the chart.
	Title string
	// Location is used for x-axis labels (nil = local time).
	Location *time.Location
}

// New returns a Renderer with default dimensions.
func New(formatter bytefmt.Formatter) Renderer {
	return Renderer{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Formatter: formatter,
		Title:     DefaultTitle,
	}
}

// Render writes the chart for series to w. Colour is only emitted when w is
// a terminal.
func (r Renderer) Render(w io.Writer, series timeline.Series) error {
	style := lipgloss.NewRenderer(w)

	titleStyle := style.NewStyle().Bold(true)
	axisStyle := style.NewStyle().Faint(true)
	barStyle := style.NewStyle().Foreground(lipgloss.Color("12"))

	if len(series) == 0 {
		_, err := fmt.Fprintln(w, axisStyle.Render("no data to plot"))

		return err
	}

	width := max(r.Width, minWidth)
	height := max(r.Height, minHeight)

	levels := r.levels(series, width, height)

	labels := map[int]string{
		0:          r.Formatter.Format(series.Final()),
		height / 2: r.Formatter.FormatFloat(float64(series.Final()) * float64(height-height/2) / float64(height)),
		height - 1: r.Formatter.Format(0),
	}

	labelWidth := 0
	for _, l := range labels {
		labelWidth = max(labelWidth, len(l))
	}

	var out strings.Builder

	if r.Title != "" {
		out.WriteString(titleStyle.Render(strings.Repeat(" ", labelWidth+2) + center(r.Title, width)))
		out.WriteString("\n")
	}

	out.WriteString(axisStyle.Render("cumulative file size"))
	out.WriteString("\n")

	for row := range height {
		floor := (height - 1 - row) * (len(blocks) - 1)

		label, tick := labels[row], "┤"
		if label == "" {
			tick = "│"
		}

		cells := make([]rune, width)
		for col, level := range levels {
			fill := min(max(level-floor, 0), len(blocks)-1)
			cells[col] = blocks[fill]
		}

		out.WriteString(axisStyle.Render(fmt.Sprintf("%*s %s", labelWidth, label, tick)))
		out.WriteString(barStyle.Render(string(cells)))
		out.WriteString("\n")
	}

	out.WriteString(axisStyle.Render(strings.Repeat(" ", labelWidth+1) + "└" + strings.Repeat("─", width)))
	out.WriteString("\n")

	first, last := r.timeLabels(series)
	gap := max(width-len(first)-len(last), 1)

	out.WriteString(axisStyle.Render(strings.Repeat(" ", labelWidth+2) + first + strings.Repeat(" ", gap) + last))
	out.WriteString("\n")
	out.WriteString(axisStyle.Render(strings.Repeat(" ", labelWidth+2) + center("datetime", width)))
	out.WriteString("\n")

	_, err := io.WriteString(w, out.String())

	return err
}

// levels samples the series once per column and scales each value to eighths
// of the plot height.
func (r Renderer) levels(series timeline.Series, width, height int) []int {
	levels := make([]int, width)

	peak := float64(series.Final())
	if peak <= 0 {
		return levels
	}

	start, span := series.Start(), series.End()-series.Start()
	full := float64(height * (len(blocks) - 1))

	for col := range levels {
		t := series.End()
		if col < width-1 {
			t = start + span*float64(col)/float64(width-1)
		}

		levels[col] = int(series.At(t)/peak*full + 0.5)
	}

	return levels
}

// timeLabels formats the first and last timestamps of the series.
func (r Renderer) timeLabels(series timeline.Series) (string, string) {
	loc := r.Location
	if loc == nil {
		loc = time.Local
	}

	start := fstat.Time(series.Start()).In(loc)
	end := fstat.Time(series.End()).In(loc)

	layout := "2006-01-02 15:04"
	if end.Sub(start) > dateOnlySpan {
		layout = "2006-01-02"
	}

	return start.Format(layout), end.Format(layout)
}

// center pads s with spaces to sit in the middle of width columns.
func center(s string, width int) string {
	pad := (width - len([]rune(s))) / 2
	if pad <= 0 {
		return s
	}

	return strings.Repeat(" ", pad) + s
}
