package pipeline

import (
	"github.com/standardbeagle/fzmatch/internal/debug"
	"github.com/standardbeagle/fzmatch/internal/printer"
	"github.com/standardbeagle/fzmatch/internal/types"
)

// Presented is the display-ready form of a ranking. Positions and Lines are
// aligned with the ranked rows; Truncation only covers rows that were
// shortened, keyed by row index.
type Presented struct {
	Positions  [][]int
	Lines      []string
	Scores     []float64
	Truncation types.TruncationTable
}

// Len returns the number of rows
func (p *Presented) Len() int {
	return len(p.Lines)
}

// Original returns the full candidate text for row i
func (p *Presented) Original(i int) string {
	if text, ok := p.Truncation[i]; ok {
		return text
	}
	return p.Lines[i]
}

// Head keeps the first n rows. A non-positive n keeps everything.
func (p *Presented) Head(n int) *Presented {
	if n <= 0 || n >= p.Len() {
		return p
	}
	table := make(types.TruncationTable, len(p.Truncation))
	for i, text := range p.Truncation {
		if i < n {
			table[i] = text
		}
	}
	return &Presented{
		Positions:  p.Positions[:n],
		Lines:      p.Lines[:n],
		Scores:     p.Scores[:n],
		Truncation: table,
	}
}

// Present shortens ranked rows to width and re-expresses their positions
// against the text that will be shown. With icons enabled the icon block is
// kept intact and two columns of width are reserved for it. A non-positive
// width leaves every row unmodified.
func Present(rows []types.RankedRow, width int, enableIcon bool, t printer.Truncator) Presented {
	if t == nil {
		t = printer.WindowTruncator{}
	}

	budget := width
	iconSkip := 0
	if enableIcon {
		iconSkip = types.IconWidth
		if width > 0 {
			budget = max(width-types.IconDisplayWidth, 1)
		}
	}

	display, table := t.Truncate(rows, budget, iconSkip)
	if table == nil {
		table = make(types.TruncationTable)
	}

	out := Presented{
		Positions:  make([][]int, len(rows)),
		Lines:      make([]string, len(rows)),
		Scores:     make([]float64, len(rows)),
		Truncation: table,
	}
	for i, row := range rows {
		line := row.Text
		positions := row.Positions
		if i < len(display) {
			line = display[i].Text
			positions = display[i].Positions
		}
		out.Lines[i] = line
		out.Positions[i] = inBounds(positions, len(line))
		out.Scores[i] = row.Score
		if line == row.Text {
			delete(out.Truncation, i)
		}
	}

	debug.LogMatch("presented %d rows, %d truncated (budget %d)\n", len(rows), len(out.Truncation), budget)
	return out
}

// inBounds drops positions a truncator left outside the shown line
func inBounds(positions []int, n int) []int {
	kept := make([]int, 0, len(positions))
	for _, p := range positions {
		if p >= 0 && p < n {
			kept = append(kept, p)
		}
	}
	return kept
}
