package filter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/marquee/catalog"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the list size below which evaluation stays sequential
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator splits large movie lists into chunks evaluated in parallel
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate returns the movies matching filter, in input order
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter CompiledFilter, movies []catalog.Movie) ([]catalog.Movie, error) {
	if len(movies) < e.batchSize {
		return evaluateSequential(filter, movies), nil
	}

	chunkSize := max(len(movies)/e.workerCount, e.batchSize)
	chunks := make([][]catalog.Movie, (len(movies)+chunkSize-1)/chunkSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, len(movies))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chunks[i] = evaluateSequential(filter, movies[start:end])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var matches []catalog.Movie
	for _, chunk := range chunks {
		matches = append(matches, chunk...)
	}
	return matches, nil
}

func evaluateSequential(filter CompiledFilter, movies []catalog.Movie) []catalog.Movie {
	matches := make([]catalog.Movie, 0, len(movies))
	for _, movie := range movies {
		if filter.Evaluate(movie) {
			matches = append(matches, movie)
		}
	}
	return matches
}
