package ranking

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/fzmatch/internal/debug"
	"github.com/standardbeagle/fzmatch/internal/types"
)

// chunksPerWorker splits the candidate list finer than the worker count so
// a few slow lines do not leave the other workers idle.
const chunksPerWorker = 4

// NaNScoreError is the panic value raised when a scorer returns NaN
type NaNScoreError struct {
	Text string
}

func (e NaNScoreError) Error() string {
	return fmt.Sprintf("ranking: NaN score for candidate %q", e.Text)
}

// Matcher scores a single candidate line
type Matcher interface {
	Match(line string) (types.MatchResult, bool)
}

// Rank applies m to every candidate, drops the ones that do not match and
// returns the rest ordered by descending score. Equal scores keep their
// input order.
//
// When opts.ParallelThreshold is reached, candidates are scored by up to
// opts.Workers goroutines. Results are gathered by candidate index before
// sorting, so the output does not depend on scheduling. The context is only
// consulted between chunks of the parallel path.
func Rank(ctx context.Context, m Matcher, candidates []string, opts types.Options) ([]types.RankedRow, error) {
	var (
		rows []types.RankedRow
		err  error
	)

	if opts.ParallelThreshold > 0 && len(candidates) >= opts.ParallelThreshold {
		rows, err = scoreParallel(ctx, m, candidates, workerCount(opts.Workers))
		if err != nil {
			return nil, err
		}
	} else {
		rows = scoreSequential(m, candidates)
	}

	Sort(rows)
	debug.LogMatch("ranked %d of %d candidates\n", len(rows), len(candidates))
	return rows, nil
}

// Sort orders rows by descending score, keeping input order for ties.
// A NaN score is a bug in the scorer that produced it and panics instead of
// being ranked arbitrarily.
func Sort(rows []types.RankedRow) {
	for _, row := range rows {
		if math.IsNaN(row.Score) {
			panic(NaNScoreError{Text: row.Text})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})
}

func scoreSequential(m Matcher, candidates []string) []types.RankedRow {
	rows := make([]types.RankedRow, 0, len(candidates))
	for _, line := range candidates {
		if res, ok := m.Match(line); ok {
			rows = append(rows, types.RankedRow{Text: line, Score: res.Score, Positions: res.Positions})
		}
	}
	return rows
}

func scoreParallel(ctx context.Context, m Matcher, candidates []string, workers int) ([]types.RankedRow, error) {
	results := make([]types.MatchResult, len(candidates))
	matched := make([]bool, len(candidates))

	chunkSize := (len(candidates) + workers*chunksPerWorker - 1) / (workers * chunksPerWorker)
	if chunkSize < 1 {
		chunkSize = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(candidates); start += chunkSize {
		end := min(start+chunkSize, len(candidates))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				results[i], matched[i] = m.Match(candidates[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]types.RankedRow, 0, len(candidates))
	for i, line := range candidates {
		if matched[i] {
			rows = append(rows, types.RankedRow{Text: line, Score: results[i].Score, Positions: results[i].Positions})
		}
	}
	return rows, nil
}

func workerCount(configured int) int {
	if configured > 0 {
		return configured
	}
	return runtime.NumCPU()
}
