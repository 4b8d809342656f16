package filter

import (
	"github.com/s0up4200/pixfetch/pixiv"
)

// Filter decides whether a page of an artwork is selected
type Filter interface {
	// Match reports whether the page at index matches. total is the page count
	// of the artwork.
	Match(page pixiv.ArtworkPage, index, total int) (bool, error)
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// Selected is a page chosen by a filter, with its position in the artwork
type Selected struct {
	Index int
	Page  pixiv.ArtworkPage
}
