package board

import (
	"strings"
	"testing"

	"blockblast/src/base"
	"blockblast/src/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = base.Color{R: 200, G: 10, B: 10}
	blue = base.Color{R: 10, G: 10, B: 200}
)

func bar(n int, vertical bool) *catalog.Shape {
	rows := []string{strings.Repeat("#", n)}
	if vertical {
		rows = make([]string, n)
		for i := range rows {
			rows[i] = "#"
		}
	}
	return &catalog.Shape{Name: "bar", Matrix: catalog.ParseMatrix(rows...), Weight: 1}
}

func mustParse(t *testing.T, rows ...string) *Board {
	t.Helper()
	b, err := Parse(red, rows...)
	require.NoError(t, err)
	return b
}

func TestNewBoardIsEmptyWithDecoration(t *testing.T) {
	b := NewBoard(8, func(x, y int) base.Color { return base.Color{R: uint8(x), G: uint8(y), B: 1} })
	assert.Equal(t, 8, b.Size())
	b.ForEach(func(x, y int, c Cell) bool {
		assert.Equal(t, base.Empty, c.State)
		assert.Equal(t, base.Color{R: uint8(x), G: uint8(y), B: 1}, c.Color)
		assert.True(t, c.HoveredBreakColor.IsZero())
		return true
	})
	assert.Panics(t, func() { NewBoard(0, nil) })
}

func TestPlacePieceCommit(t *testing.T) {
	b := NewBoard(8, nil)
	b.PlacePiece(bar(3, true), blue, 0, 0, base.Filled)

	for y := 0; y < 3; y++ {
		assert.Equal(t, base.Filled, b.State(0, y))
		assert.Equal(t, blue, b.At(0, y).Color)
	}
	assert.Equal(t, base.Empty, b.State(0, 3))
	assert.Equal(t, 3, b.FilledCount())
}

func TestPlacePieceCommitPreconditions(t *testing.T) {
	b := mustParse(t,
		"#...",
		"....",
		"....",
		"....",
	)
	assert.Panics(t, func() { b.PlacePiece(bar(2, false), blue, 0, 0, base.Filled) }, "overlap")
	assert.Panics(t, func() { b.PlacePiece(bar(2, false), blue, 3, 0, base.Filled) }, "out of bounds")
	assert.Panics(t, func() { b.PlacePiece(bar(2, false), blue, 1, 0, base.Empty) }, "bad target")
}

func TestClearHoverBlocksRestoresBoard(t *testing.T) {
	b := mustParse(t,
		"###.",
		"....",
		"#...",
		"#...",
	)
	b.SetCell(2, 1, base.Empty, blue)
	before := b.Clone()

	b.PlacePiece(bar(2, false), blue, 2, 0, base.Hovered) // one cell over FILLED, one off-board
	b.PlacePiece(bar(3, true), red, 2, 1, base.Hovered)
	b.MarkBreak(0, 0, blue)
	b.MarkBreak(1, 1, blue)
	b.MarkBreak(2, 1, blue)
	b.MarkBreak(2, 1, red)
	require.True(t, b.HasHover())
	assert.Equal(t, base.HoveredBreakFilled, b.State(0, 0))
	assert.Equal(t, base.HoveredBreakEmpty, b.State(1, 1))
	assert.Equal(t, base.HoveredBreakEmpty, b.State(2, 1))
	assert.Equal(t, red, b.At(2, 1).HoveredBreakColor)
	assert.Equal(t, base.Filled, b.State(2, 0), "FILLED ground truth is not overlaid")
	assert.Equal(t, base.Hovered, b.State(3, 0))

	b.ClearHoverBlocks()
	assert.False(t, b.HasHover())
	assert.True(t, before.Equal(b), "want\n%v\ngot\n%v", before, b)
	assert.Equal(t, blue, b.At(2, 1).Color)
}

func TestBreakLinesNothingFull(t *testing.T) {
	b := mustParse(t,
		"###.",
		"#...",
		"#.#.",
		"....",
	)
	before := b.Clone()
	assert.Equal(t, 0, b.BreakLines())
	assert.True(t, before.Equal(b))
}

func TestBreakLinesRowAndColumn(t *testing.T) {
	const n = 8
	b := NewBoard(n, nil)
	b.PlacePiece(bar(n, false), red, 0, 0, base.Filled)
	b.PlacePiece(bar(4, true), blue, 0, 1, base.Filled)
	b.PlacePiece(bar(3, true), blue, 0, 5, base.Filled)
	b.SetCell(5, 5, base.Filled, blue) // stray cell survives

	assert.Equal(t, 2, b.BreakLines())

	emptied := 0
	b.ForEach(func(x, y int, c Cell) bool {
		if x == 0 || y == 0 {
			emptied++
			assert.Equal(t, Cell{State: base.Empty}, c)
		}
		return true
	})
	assert.Equal(t, n+n-1, emptied)
	assert.Equal(t, 1, b.FilledCount())
	assert.Equal(t, base.Filled, b.State(5, 5))
}

func TestBreakLinesFullBoardCountsEveryLine(t *testing.T) {
	rows := make([]string, 5)
	for i := range rows {
		rows[i] = "#####"
	}
	b := mustParse(t, rows...)
	assert.Equal(t, 10, b.BreakLines())
	assert.Equal(t, 0, b.FilledCount())
}

func TestParseAndString(t *testing.T) {
	b := mustParse(t,
		"#..",
		".#.",
		"..#",
	)
	assert.Equal(t, "#..\n.#.\n..#", b.String())

	_, err := Parse(red, "##", "#")
	assert.Error(t, err)
	_, err = Parse(red, "#x", "..")
	assert.Error(t, err)
	assert.Panics(t, func() { b.SetCell(0, 0, base.Hovered, red) })
}
