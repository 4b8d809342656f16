package filter

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/pixfetch/pixiv"
)

func testSet() *pixiv.ArtworkImageSet {
	return pixiv.NewArtworkImageSet("100", []pixiv.ArtworkPage{
		{Original: "https://i.pximg.net/img-original/img/100_p0.png", Width: 1200, Height: 800},
		{Original: "https://i.pximg.net/img-original/img/100_p1.jpg", Width: 600, Height: 800},
		{Original: "https://i.pximg.net/img-original/img/100_p2.JPG", Width: 1000, Height: 1000},
	})
}

func TestCompileFilter(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `Width > 1000`,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `ext() == "png`,
			wantErr:    true,
		},
		{
			name:       "unknown variable",
			expression: `Colour == "red"`,
			wantErr:    true,
		},
		{
			name:       "non-boolean result",
			expression: `Width + Height`,
			wantErr:    true,
		},
		{
			name:       "helper named like an operator",
			expression: `contains(Original, "p1")`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `(landscape() or square()) and ext() in ["png", "jpg"] and Index < Total`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := CompileFilter(tt.expression)

			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.ErrorAs(t, err, &compErr)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, filter)
			assert.Equal(t, tt.expression, filter.Expression())
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		expression string
		want       []int
	}{
		{`landscape()`, []int{0}},
		{`portrait()`, []int{1}},
		{`square()`, []int{2}},
		{`ext() == "jpg"`, []int{1, 2}},
		{`Width >= 1000`, []int{0, 2}},
		{`Pixels > 500000`, []int{0, 2}},
		{`Ratio > 1.4`, []int{0}},
		{`Index == 0 or Index == Total - 1`, []int{0, 2}},
		{`has(Original, "_P1")`, []int{1}},
		{`beginsWith(Original, "HTTPS://")`, []int{0, 1, 2}},
		{`finishesWith(Original, ".jpg")`, []int{1, 2}},
		{`lower(Original) contains "_p2"`, []int{2}},
		{`Original endsWith ".png"`, []int{0}},
		{`Height > 5000`, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			f, err := CompileFilter(tt.expression)
			require.NoError(t, err)

			selected, err := Apply(f, testSet())
			require.NoError(t, err)

			got := make([]int, 0, len(selected))
			for _, s := range selected {
				got = append(got, s.Index)
				assert.Equal(t, testSet().Page(s.Index), s.Page)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyNilFilterSelectsAll(t *testing.T) {
	selected, err := Apply(nil, testSet())
	require.NoError(t, err)
	require.Len(t, selected, 3)
	for i, s := range selected {
		assert.Equal(t, i, s.Index)
	}
}

func TestEvaluationError(t *testing.T) {
	c := NewExprCompiler(WithCustomFunctions(map[string]any{
		"explode": func(i int) (bool, error) {
			if i == 1 {
				return false, fmt.Errorf("page %d exploded", i)
			}
			return true, nil
		},
	}))

	f, err := c.Compile(`explode(Index)`)
	require.NoError(t, err)

	_, err = Apply(f, testSet())
	require.Error(t, err)

	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, 1, evalErr.PageIndex)
	assert.Contains(t, err.Error(), "exploded")
}

func TestCompilerCache(t *testing.T) {
	c := NewExprCompiler(WithCache(2))

	first, err := c.Compile(`Width > 1`)
	require.NoError(t, err)
	again, err := c.Compile(` Width > 1 `)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, c.Size())

	_, err = c.Compile(`Width > 2`)
	require.NoError(t, err)
	_, err = c.Compile(`Width > 3`)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Size())

	// Width > 1 was least recently used and has been evicted
	evicted, err := c.Compile(`Width > 1`)
	require.NoError(t, err)
	assert.NotSame(t, first, evicted)

	c.Clear()
	assert.Equal(t, 0, c.Size())
}

func TestCompilerWithoutCache(t *testing.T) {
	c := NewExprCompiler()

	a, err := c.Compile(`square()`)
	require.NoError(t, err)
	b, err := c.Compile(`square()`)
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Equal(t, 0, c.Size())
}

func TestFileExt(t *testing.T) {
	assert.Equal(t, "png", fileExt("https://i.pximg.net/img/1_p0.png"))
	assert.Equal(t, "jpg", fileExt("https://i.pximg.net/img/1_p0.JPG?x=1"))
	assert.Equal(t, "", fileExt("https://i.pximg.net/img/noext"))
}

func BenchmarkApply(b *testing.B) {
	f, err := CompileFilter(`landscape() and Width >= 1000`)
	if err != nil {
		b.Fatal(err)
	}
	set := testSet()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Apply(f, set); err != nil {
			b.Fatal(err)
		}
	}
}
