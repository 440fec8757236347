package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan = lipgloss.Color("36")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorGray)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleNumber = lipgloss.NewStyle().Foreground(colorCyan)
)

// table writes rows of right aligned columns under a styled header.
type table struct {
	w      io.Writer
	widths []int
}

func newTable(w io.Writer, headers ...string) *table {
	t := &table{w: w, widths: make([]int, len(headers))}
	cells := make([]string, len(headers))
	for i, h := range headers {
		t.widths[i] = max(len(h), 10)
		cells[i] = fmt.Sprintf("%*s", t.widths[i], h)
	}
	fmt.Fprintln(w, styleHeader.Render(strings.Join(cells, " ")))
	return t
}

// row writes a line of values. The first column is printed as text, the
// rest as numbers.
func (t *table) row(name string, values ...float64) {
	cells := make([]string, 0, len(values)+1)
	cells = append(cells, fmt.Sprintf("%*s", t.widths[0], name))
	for i, v := range values {
		cells = append(cells, styleNumber.Render(fmt.Sprintf("%*.4f", t.widths[i+1], v)))
	}
	fmt.Fprintln(t.w, strings.Join(cells, " "))
}

func printTitle(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf(format, args...)))
}
