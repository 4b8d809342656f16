package filter

import (
	"maps"
	"net/url"
	"path"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/pixfetch/pixiv"
)

// DefaultCacheSize is the number of compiled expressions CompileFilter keeps
const DefaultCacheSize = 64

var defaultCompiler = NewExprCompiler(WithCache(DefaultCacheSize))

// CompileFilter compiles an expression with the shared caching compiler.
//
// Expressions see the page as Index, Total, Width, Height, Pixels, Ratio,
// Thumb, Small, Regular and Original, plus the helpers landscape(),
// portrait(), square(), ext(), has, beginsWith, finishesWith, lower and upper.
// The string helpers ignore case; the built-in contains, startsWith and
// endsWith operators do not:
//
//	Width >= 1000 and ext() == "png"
//	Index == 0 or Index == Total - 1
//	has(Original, "_p1") or lower(Original) contains "_p2"
func CompileFilter(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	extra      map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*ExprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *ExprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *ExprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// ExprCompiler compiles expr-language filters over artwork pages
type ExprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) *ExprCompiler {
	c := &ExprCompiler{
		helperFuncs: make(map[string]any),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compile compiles an expression into an executable filter
func (c *ExprCompiler) Compile(expression string) (CompiledFilter, error) {
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

	// Compile against a zero page so unknown identifiers and type errors
	// are reported here rather than per page
	program, err := expr.Compile(expression,
		expr.Env(pageEnvironment(pixiv.ArtworkPage{}, 0, 0, c.helperFuncs)),
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
		extra:      c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *ExprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *ExprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// Match evaluates the filter against a page
func (f *exprFilter) Match(page pixiv.ArtworkPage, index, total int) (bool, error) {
	result, err := expr.Run(f.program, pageEnvironment(page, index, total, f.extra))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			PageIndex:  index,
			Err:        err,
		}
	}

	// Result is guaranteed to be bool due to AsBool() option during compilation
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// Apply returns the pages of set matching f, in order. A nil filter selects
// every page.
func Apply(f Filter, set *pixiv.ArtworkImageSet) ([]Selected, error) {
	total := set.Len()
	selected := make([]Selected, 0, total)

	for i, page := range set.Pages() {
		if f != nil {
			ok, err := f.Match(page, i, total)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		selected = append(selected, Selected{Index: i, Page: page})
	}

	return selected, nil
}

// pageEnvironment builds the variables and helpers visible to an expression
func pageEnvironment(page pixiv.ArtworkPage, index, total int, extra map[string]any) map[string]any {
	env := make(map[string]any, 24+len(extra))

	// String helpers. contains, startsWith and endsWith are operators in
	// expr and cannot be used as function names.
	env["has"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["beginsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["finishesWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper

	// Shape helpers
	width, height := page.Width, page.Height
	env["landscape"] = func() bool { return width > height }
	env["portrait"] = func() bool { return height > width }
	env["square"] = func() bool { return width == height }
	original := page.Original
	env["ext"] = func() string { return fileExt(original) }

	env["Index"] = index
	env["Total"] = total
	env["Width"] = width
	env["Height"] = height
	env["Pixels"] = width * height
	env["Ratio"] = ratio(width, height)
	env["Thumb"] = page.Thumb
	env["Small"] = page.Small
	env["Regular"] = page.Regular
	env["Original"] = page.Original

	maps.Copy(env, extra)

	return env
}

func ratio(width, height int) float64 {
	if height == 0 {
		return 0
	}
	return float64(width) / float64(height)
}

// fileExt returns the lowercase extension of a URL's path without the dot
func fileExt(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	return strings.TrimPrefix(strings.ToLower(path.Ext(p)), ".")
}
