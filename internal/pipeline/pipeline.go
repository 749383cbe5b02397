// Package pipeline is the query entry point: it resolves the scorer for a
// query, ranks the candidates and prepares the ranked rows for display.
//
// Every call owns its inputs and output. Nothing is cached between calls, so
// a caller that wants to abandon a stale query simply discards its result.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/standardbeagle/fzmatch/internal/algo"
	"github.com/standardbeagle/fzmatch/internal/debug"
	fzerrors "github.com/standardbeagle/fzmatch/internal/errors"
	"github.com/standardbeagle/fzmatch/internal/matcher"
	"github.com/standardbeagle/fzmatch/internal/printer"
	"github.com/standardbeagle/fzmatch/internal/ranking"
	"github.com/standardbeagle/fzmatch/internal/types"
)

// Engine runs the pipeline with a chosen truncation strategy
type Engine struct {
	Truncator printer.Truncator
}

// NewEngine returns an Engine using t, or the window truncator when t is nil
func NewEngine(t printer.Truncator) *Engine {
	if t == nil {
		t = printer.WindowTruncator{}
	}
	return &Engine{Truncator: t}
}

var defaultEngine = NewEngine(nil)

// FuzzyMatch ranks candidates for query with the default engine
func FuzzyMatch(ctx context.Context, query string, candidates []string, opts types.Options) (*Presented, error) {
	return defaultEngine.FuzzyMatch(ctx, query, candidates, opts)
}

// FuzzyMatch ranks candidates for query and shortens the ranked rows to
// opts.Width.
func (e *Engine) FuzzyMatch(ctx context.Context, query string, candidates []string, opts types.Options) (*Presented, error) {
	if opts.Width < 0 {
		return nil, fzerrors.NewInputError("width", fmt.Sprint(opts.Width), errors.New("must not be negative"))
	}

	m, err := NewMatcher(query, opts)
	if err != nil {
		return nil, err
	}

	rows, err := ranking.Rank(ctx, m, candidates, opts)
	if err != nil {
		return nil, fzerrors.NewMatchError(query, err)
	}

	debug.LogMatch("query %q (%s): %d/%d candidates matched\n", query, m.Kind(), len(rows), len(candidates))

	presented := Present(rows, opts.Width, opts.EnableIcon, e.Truncator)
	return &presented, nil
}

// NewMatcher resolves the scoring strategy for query under opts
func NewMatcher(query string, opts types.Options) (matcher.Matcher, error) {
	scorer, err := algo.New(opts.Algo)
	if err != nil {
		return matcher.Matcher{}, err
	}
	if scorer == nil {
		return matcher.Matcher{}, fzerrors.NewInputError("algo", string(opts.Algo), errors.New("no scorer available"))
	}
	return matcher.New(query, scorer, opts.EnableIcon, opts.Splitter), nil
}
