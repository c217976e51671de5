package filter

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/marquee/catalog"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Movie properties are only known at evaluation time
	program, err := expr.Compile(expression,
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate evaluates the filter against a movie. A runtime error counts as no match.
func (f *exprFilter) Evaluate(movie catalog.Movie) bool {
	result, err := expr.Run(f.program, createRuntimeEnvironment(movie))
	if err != nil {
		return false
	}
	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)
	addHelperFunctions(funcs)
	// Signatures only; the runtime environment binds them to the movie.
	funcs["hasGenre"] = func(string) bool { return false }
	funcs["rated"] = func() bool { return false }
	return funcs
}

func addHelperFunctions(env map[string]any) {
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["yearsAgo"] = func(years int) time.Time {
		return time.Now().AddDate(-years, 0, 0)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse(time.DateOnly, dateStr)
		return t
	}
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["now"] = time.Now
}

// createRuntimeEnvironment exposes a movie's fields and movie-bound helpers
func createRuntimeEnvironment(movie catalog.Movie) map[string]any {
	env := make(map[string]any, 32)
	addHelperFunctions(env)

	genres := movie.GenreNames()
	env["hasGenre"] = createHasGenreFunc(genres)
	env["rated"] = func() bool { return movie.UserRating != nil }

	userRating := 0
	if movie.UserRating != nil {
		userRating = *movie.UserRating
	}
	averageRating := 0.0
	if movie.AverageRating != nil {
		averageRating = *movie.AverageRating
	}

	env["Movie"] = movie
	env["ID"] = movie.ID
	env["Title"] = movie.Title
	env["Overview"] = movie.Overview
	env["Year"] = movie.Year()
	env["Released"] = movie.Released()
	env["Genres"] = genres
	env["Popularity"] = movie.Popularity
	env["VoteAverage"] = movie.VoteAverage
	env["VoteCount"] = movie.VoteCount
	env["IsFavorite"] = movie.IsFavorite
	env["UserRating"] = userRating
	env["AverageRating"] = averageRating

	return env
}

func createHasGenreFunc(genres []string) func(string) bool {
	lower := make([]string, len(genres))
	for i, g := range genres {
		lower[i] = strings.ToLower(g)
	}
	return func(genre string) bool {
		return slices.Contains(lower, strings.ToLower(genre))
	}
}
