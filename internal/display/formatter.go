// Package display renders ranked rows for a terminal or as JSON.
package display

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/standardbeagle/fzmatch/internal/bridge"
	"github.com/standardbeagle/fzmatch/internal/pipeline"
	"github.com/standardbeagle/fzmatch/internal/source"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// FormatterOptions controls result formatting
type FormatterOptions struct {
	Format     string // "text" or "json"
	Color      bool   // Highlight matched bytes
	ShowScores bool   // Prefix text rows with their score
	StripIcons bool   // Drop the icon block from text rows

	// Highlight renders a matched run of text. Defaults to Match.Render.
	Highlight func(string) string
	// Score renders the score column. Defaults to Muted.Render.
	Score func(string) string
}

// ResultFormatter formats ranked rows for display
type ResultFormatter struct {
	options FormatterOptions
}

// NewResultFormatter creates a new result formatter
func NewResultFormatter(options FormatterOptions) *ResultFormatter {
	if options.Format == "" {
		options.Format = FormatText
	}
	if options.Highlight == nil {
		options.Highlight = func(s string) string { return Match.Render(s) }
	}
	if options.Score == nil {
		options.Score = func(s string) string { return Muted.Render(s) }
	}
	return &ResultFormatter{options: options}
}

// Format renders p in the configured format
func (rf *ResultFormatter) Format(p *pipeline.Presented) (string, error) {
	switch rf.options.Format {
	case FormatJSON:
		data, err := bridge.Marshal(p)
		if err != nil {
			return "", fmt.Errorf("failed to encode results: %w", err)
		}
		return string(data) + "\n", nil
	case FormatText:
		return rf.formatText(p), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want %s or %s)", rf.options.Format, FormatText, FormatJSON)
	}
}

// Write formats p to w
func (rf *ResultFormatter) Write(w io.Writer, p *pipeline.Presented) error {
	out, err := rf.Format(p)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func (rf *ResultFormatter) formatText(p *pipeline.Presented) string {
	var sb strings.Builder
	for i := 0; i < p.Len(); i++ {
		if rf.options.ShowScores {
			score := fmt.Sprintf("%10.4f", p.Scores[i])
			if rf.options.Color {
				score = rf.options.Score(score)
			}
			sb.WriteString(score)
			sb.WriteString("  ")
		}
		line, positions := p.Lines[i], p.Positions[i]
		if rf.options.StripIcons {
			line, positions = stripIcon(line, positions)
		}
		if rf.options.Color {
			sb.WriteString(HighlightRuns(line, positions, rf.options.Highlight))
		} else {
			sb.WriteString(line)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// stripIcon removes the icon block and shifts positions onto the rest
func stripIcon(line string, positions []int) (string, []int) {
	text := source.StripIcon(line)
	shift := len(line) - len(text)
	kept := make([]int, 0, len(positions))
	for _, p := range positions {
		if p >= shift {
			kept = append(kept, p-shift)
		}
	}
	return text, kept
}

// HighlightRuns applies render to every maximal run of matched runes in
// line. A rune counts as matched when any of its bytes is a position.
// Positions outside line are ignored.
func HighlightRuns(line string, positions []int, render func(string) string) string {
	if len(positions) == 0 {
		return line
	}

	matched := make([]bool, len(line))
	for _, pos := range positions {
		if pos >= 0 && pos < len(line) {
			matched[pos] = true
		}
	}

	var sb strings.Builder
	runStart, inRun := 0, false
	flush := func(end int) {
		if inRun {
			sb.WriteString(render(line[runStart:end]))
		} else {
			sb.WriteString(line[runStart:end])
		}
		runStart = end
	}

	for i := 0; i < len(line); {
		_, size := utf8.DecodeRuneInString(line[i:])
		hit := false
		for j := i; j < i+size; j++ {
			hit = hit || matched[j]
		}
		if hit != inRun {
			flush(i)
			inRun = hit
		}
		i += size
	}
	flush(len(line))

	return sb.String()
}
