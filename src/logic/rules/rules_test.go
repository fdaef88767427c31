package rules

import (
	"math/rand/v2"
	"testing"

	"blockblast/src/base"
	"blockblast/src/catalog"
	"blockblast/src/logic/board"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	gray  = base.Color{R: 90, G: 90, B: 90}
	green = base.Color{R: 16, G: 158, B: 40}
)

func mustParse(t *testing.T, rows ...string) *board.Board {
	t.Helper()
	b, err := board.Parse(gray, rows...)
	require.NoError(t, err)
	return b
}

func shapeOf(rows ...string) *catalog.Shape {
	return &catalog.Shape{Name: "test", Matrix: catalog.ParseMatrix(rows...), Weight: 1}
}

func randomBoard(rng *rand.Rand, size int, density float64) *board.Board {
	b := board.NewBoard(size, nil)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if rng.Float64() < density {
				b.SetCell(x, y, base.Filled, gray)
			}
		}
	}
	return b
}

// overlaps is the reference check, written independently of CanPlace.
func overlaps(b *board.Board, s *catalog.Shape, ox, oy int) bool {
	for _, off := range s.Cells() {
		x, y := ox+off.X, oy+off.Y
		if !b.InBounds(x, y) || b.IsFilled(x, y) {
			return true
		}
	}
	return false
}

func TestComputeFitPositionsMatchesOverlapCheck(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for _, size := range []int{4, 8, 10, 14} {
		for round := 0; round < 10; round++ {
			b := randomBoard(rng, size, rng.Float64()*0.7)
			for _, s := range catalog.Default().Shapes() {
				spots := ComputeFitPositions(b, s)
				require.Len(t, spots, size)
				for y := 0; y < size; y++ {
					for x := 0; x < size; x++ {
						fits := x+s.Width() <= size && y+s.Height() <= size && !overlaps(b, s, x, y)
						assert.Equal(t, fits, spots.At(x, y), "shape %s at (%d,%d) on\n%v", s.Name, x, y, b)
					}
				}
			}
		}
	}
}

func TestComputeFitPositionsIgnoresHoverStates(t *testing.T) {
	b := board.NewBoard(3, nil)
	piece := &catalog.Piece{Shape: shapeOf("###"), Color: green}
	UpdateHoverPreview(b, piece, 0, 0)

	spots := ComputeFitPositions(b, shapeOf("#"))
	assert.Equal(t, 9, spots.Count(), "hover cells are not FILLED")
}

func TestComputeFitPositionsSeesLinePreview(t *testing.T) {
	b := mustParse(t,
		"###.",
		"....",
		"....",
		"....",
	)
	UpdateHoverPreview(b, &catalog.Piece{Shape: shapeOf("#"), Color: green}, 3, 0)
	require.Equal(t, base.HoveredBreakFilled, b.State(0, 0))
	assert.True(t, b.Occupied(0, 0))
	assert.False(t, b.IsFilled(0, 0))
	assert.False(t, b.Occupied(3, 0), "previewed cell is not committed")

	spots := ComputeFitPositions(b, shapeOf("#"))
	for x := 0; x < 3; x++ {
		assert.False(t, spots.At(x, 0), "origin (%d,0)", x)
	}
	assert.True(t, spots.At(3, 0))
	assert.Equal(t, 13, spots.Count())
	assert.False(t, CanPlace(b, shapeOf("##"), 2, 0))
	assert.True(t, CanPlace(b, shapeOf("#"), 3, 0))
}

func TestCanPlaceBounds(t *testing.T) {
	b := board.NewBoard(4, nil)
	s := shapeOf("##", "#.")
	assert.True(t, CanPlace(b, s, 2, 2))
	assert.False(t, CanPlace(b, s, 3, 0))
	assert.False(t, CanPlace(b, s, 0, 3))
	assert.False(t, CanPlace(b, s, -1, 0))
}

func TestCanPlaceUsesOnlyOccupiedCells(t *testing.T) {
	b := mustParse(t,
		".#..",
		"....",
		"....",
		"....",
	)
	ell := shapeOf("#.", "##")
	assert.True(t, CanPlace(b, ell, 1, 0), "gap of the shape sits on the filled cell")
	assert.False(t, CanPlace(b, ell, 0, 0))
}

func TestCanAnyPieceFit(t *testing.T) {
	b := mustParse(t,
		"###",
		"#.#",
		"###",
	)
	single := &catalog.Piece{Shape: shapeOf("#"), Color: green}
	domino := &catalog.Piece{Shape: shapeOf("##"), Color: green}

	assert.True(t, CanAnyPieceFit(b, []*catalog.Piece{nil, domino, single}))
	assert.False(t, CanAnyPieceFit(b, []*catalog.Piece{domino, nil}))
	assert.False(t, CanAnyPieceFit(b, []*catalog.Piece{nil, nil}))
	assert.False(t, CanAnyPieceFit(b, nil))
}

func TestCanAnyPieceFitAgreesWithSpots(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	shapes := catalog.Default().Shapes()
	for i := 0; i < 200; i++ {
		b := randomBoard(rng, 8, 0.55+rng.Float64()*0.4)
		hand := make([]*catalog.Piece, 3)
		for j := range hand {
			if rng.IntN(4) > 0 {
				hand[j] = &catalog.Piece{Shape: shapes[rng.IntN(len(shapes))], Color: green}
			}
		}
		want := false
		for _, p := range hand {
			if p != nil && ComputeFitPositions(b, p.Shape).Count() > 0 {
				want = true
			}
		}
		assert.Equal(t, want, CanAnyPieceFit(b, hand))
	}
}

func TestUpdateHoverPreviewMarksRowsAndColumns(t *testing.T) {
	b := mustParse(t,
		"###.",
		"....",
		"...#",
		"....",
	)
	before := b.Clone()
	piece := &catalog.Piece{Shape: shapeOf("#", "#"), Color: green}

	pv := UpdateHoverPreview(b, piece, 3, 0)

	assert.True(t, pv.Legal)
	assert.Equal(t, []int{0}, pv.Rows)
	assert.Empty(t, pv.Cols)
	assert.Equal(t, 1, pv.Lines())
	assert.Equal(t, "***o\n...+\n...#\n....", b.String())
	assert.Equal(t, base.HoveredBreakFilled, b.State(0, 0))
	assert.Equal(t, base.HoveredBreakEmpty, b.State(3, 0), "covered empty cell in a clearing row")
	assert.Equal(t, base.Hovered, b.State(3, 1))
	assert.Equal(t, green, b.At(3, 0).HoveredBreakColor)
	assert.Equal(t, gray, b.At(0, 0).Color, "filled colour kept under the preview")
	assert.True(t, b.At(3, 1).HoveredBreakColor.IsZero())

	b.ClearHoverBlocks()
	assert.True(t, before.Equal(b))
}

func TestUpdateHoverPreviewRowAndColumnUnion(t *testing.T) {
	b := mustParse(t,
		".###",
		"#...",
		"#...",
		"#...",
	)
	before := b.Clone()
	piece := &catalog.Piece{Shape: shapeOf("#"), Color: green}

	pv := UpdateHoverPreview(b, piece, 0, 0)
	assert.Equal(t, []int{0}, pv.Rows)
	assert.Equal(t, []int{0}, pv.Cols)
	assert.Equal(t, 2, pv.Lines())
	assert.Equal(t, base.HoveredBreakEmpty, b.State(0, 0))
	assert.Equal(t, base.HoveredBreakFilled, b.State(0, 3))
	assert.Equal(t, base.HoveredBreakFilled, b.State(3, 0))
	assert.Equal(t, base.Empty, b.State(1, 1))

	b.ClearHoverBlocks()
	assert.True(t, before.Equal(b))
}

func TestUpdateHoverPreviewInvalidOriginIsVisualOnly(t *testing.T) {
	b := mustParse(t,
		"#...",
		"....",
		"....",
		"....",
	)
	before := b.Clone()
	piece := &catalog.Piece{Shape: shapeOf("###"), Color: green}

	pv := UpdateHoverPreview(b, piece, 0, 0)
	assert.False(t, pv.Legal)
	assert.Equal(t, base.Filled, b.State(0, 0))
	assert.Equal(t, base.Hovered, b.State(1, 0))

	b.ClearHoverBlocks()
	pv = UpdateHoverPreview(b, piece, 2, 3)
	assert.False(t, pv.Legal)
	assert.Equal(t, base.Hovered, b.State(3, 3))

	b.ClearHoverBlocks()
	assert.True(t, before.Equal(b))
}

func TestHoverSequenceRestoresBitIdentical(t *testing.T) {
	rng := rand.New(rand.NewPCG(21, 42))
	shapes := catalog.Default().Shapes()
	for i := 0; i < 100; i++ {
		b := randomBoard(rng, 8, 0.6)
		before := b.Clone()
		for j := 0; j < 5; j++ {
			s := shapes[rng.IntN(len(shapes))]
			piece := &catalog.Piece{Shape: s, Color: green}
			b.ClearHoverBlocks()
			UpdateHoverPreview(b, piece, rng.IntN(10)-1, rng.IntN(10)-1)
			b.ForEach(func(x, y int, c board.Cell) bool {
				require.Equal(t, c.State.IsBreak(), !c.HoveredBreakColor.IsZero(), "break colour at (%d,%d)", x, y)
				return true
			})
		}
		b.ClearHoverBlocks()
		require.True(t, before.Equal(b))
	}
}
