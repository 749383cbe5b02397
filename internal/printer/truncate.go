// Package printer shortens ranked lines to a column budget while keeping
// the last matched character visible and the match positions valid.
package printer

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/standardbeagle/fzmatch/internal/types"
)

// Dots marks text that was cut from a line
const Dots = ".."

// Truncator shortens rows for display.
//
// width is the column budget for the text after the first iconSkip bytes,
// which are kept verbatim. The returned rows are aligned with the input and
// the table holds the original text of every row that was shortened.
type Truncator interface {
	Truncate(rows []types.RankedRow, width int, iconSkip int) ([]types.DisplayRow, types.TruncationTable)
}

// WindowTruncator keeps a window of whole runes around the last matched
// position: the head of the line when that is enough, otherwise the tail,
// otherwise a slice ending at the last match. Cut ends are marked with Dots.
type WindowTruncator struct{}

// Truncate implements Truncator. A non-positive width disables truncation.
func (WindowTruncator) Truncate(rows []types.RankedRow, width int, iconSkip int) ([]types.DisplayRow, types.TruncationTable) {
	out := make([]types.DisplayRow, len(rows))
	table := make(types.TruncationTable)
	for i, row := range rows {
		display := TruncateLine(row.Text, row.Positions, width, iconSkip)
		if display.Truncated {
			table[i] = row.Text
		}
		out[i] = display
	}
	return out, table
}

// cell is one rune of the line body
type cell struct {
	start, end int // byte range in body
	width      int
}

// TruncateLine shortens a single line. See WindowTruncator.
func TruncateLine(text string, positions []int, width int, iconSkip int) types.DisplayRow {
	unchanged := types.DisplayRow{Text: text, Positions: positions}
	if width <= 0 {
		return unchanged
	}

	prefix, body := "", text
	if iconSkip > 0 && len(text) >= iconSkip {
		prefix, body = text[:iconSkip], text[iconSkip:]
	}
	if runewidth.StringWidth(body) <= width {
		return unchanged
	}

	cells := splitCells(body)
	dotsWidth := runewidth.StringWidth(Dots)

	// rune index holding the last matched byte of the body, -1 if none
	last := -1
	if n := len(positions); n > 0 {
		if p := positions[n-1] - len(prefix); p >= 0 && p < len(body) {
			last = cellAt(cells, p)
		}
	}

	// head: cells[0:end] + Dots
	if end := fitForward(cells, 0, width-dotsWidth); last < end {
		if end == 0 {
			return shorten(prefix, body, positions, cells, 0, fitForward(cells, 0, width), "", "")
		}
		return shorten(prefix, body, positions, cells, 0, end, "", Dots)
	}

	// tail: Dots + cells[start:]
	if start := fitBackward(cells, len(cells), width-dotsWidth); start <= last {
		return shorten(prefix, body, positions, cells, start, len(cells), Dots, "")
	}

	// middle: Dots + cells[start:last+1] + Dots
	if start := fitBackward(cells, last+1, width-2*dotsWidth); start <= last {
		return shorten(prefix, body, positions, cells, start, last+1, Dots, Dots)
	}

	// The budget cannot hold even the matched rune between markers.
	return shorten(prefix, body, positions, cells, 0, fitForward(cells, 0, width), "", "")
}

func splitCells(body string) []cell {
	cells := make([]cell, 0, len(body))
	for i := 0; i < len(body); {
		r, size := utf8.DecodeRuneInString(body[i:])
		cells = append(cells, cell{start: i, end: i + size, width: runewidth.RuneWidth(r)})
		i += size
	}
	return cells
}

// cellAt returns the index of the cell containing byte offset p
func cellAt(cells []cell, p int) int {
	lo, hi := 0, len(cells)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if cells[mid].start <= p {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// fitForward returns the largest end such that cells[from:end] fits budget
func fitForward(cells []cell, from, budget int) int {
	used := 0
	end := from
	for end < len(cells) && used+cells[end].width <= budget {
		used += cells[end].width
		end++
	}
	return end
}

// fitBackward returns the smallest start such that cells[start:to] fits budget
func fitBackward(cells []cell, to, budget int) int {
	used := 0
	start := to
	for start > 0 && used+cells[start-1].width <= budget {
		used += cells[start-1].width
		start--
	}
	return start
}

// shorten builds prefix + lead + body[cells[from]:cells[to]] + trail and
// re-expresses positions against it. Positions that fall outside the kept
// window are dropped.
func shorten(prefix, body string, positions []int, cells []cell, from, to int, lead, trail string) types.DisplayRow {
	keepStart, keepEnd := 0, 0
	if from < to {
		keepStart, keepEnd = cells[from].start, cells[to-1].end
	}

	text := prefix + lead + body[keepStart:keepEnd] + trail
	shift := len(prefix) + len(lead) - keepStart

	remapped := make([]int, 0, len(positions))
	for _, p := range positions {
		if p < len(prefix) {
			remapped = append(remapped, p)
			continue
		}
		b := p - len(prefix)
		if b >= keepStart && b < keepEnd {
			remapped = append(remapped, b+shift)
		}
	}

	return types.DisplayRow{Text: text, Positions: remapped, Truncated: true}
}
