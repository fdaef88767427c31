package rules

import (
	"blockblast/src/base"
	"blockblast/src/catalog"
	"blockblast/src/logic/board"
)

// Spots marks, indexed [y][x], every origin where a shape's top-left corner
// can legally land.
type Spots [][]bool

func (s Spots) At(x, y int) bool {
	if y < 0 || y >= len(s) || x < 0 || x >= len(s[y]) {
		return false
	}
	return s[y][x]
}

func (s Spots) Count() int {
	n := 0
	for _, row := range s {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// Origins lists the fittable origins row by row.
func (s Spots) Origins() []base.Point {
	out := make([]base.Point, 0)
	for y, row := range s {
		for x, v := range row {
			if v {
				out = append(out, base.Point{X: x, Y: y})
			}
		}
	}
	return out
}

func EmptySpots(size int) Spots {
	out := make(Spots, size)
	for y := range out {
		out[y] = make([]bool, size)
	}
	return out
}

// CanPlace reports whether the shape's bounding box fits inside the board at
// (x, y) and no occupied shape cell overlaps a committed block. A hover
// overlay on the board does not change the answer.
func CanPlace(b *board.Board, s *catalog.Shape, x, y int) bool {
	if x < 0 || y < 0 || x+s.Width() > b.Size() || y+s.Height() > b.Size() {
		return false
	}
	for py := 0; py < s.Height(); py++ {
		for px := 0; px < s.Width(); px++ {
			if s.Occupied(px, py) && b.Occupied(x+px, y+py) {
				return false
			}
		}
	}
	return true
}

// ComputeFitPositions checks every origin whose bounding box is inside the
// board. Cost is O(N² · shape area).
func ComputeFitPositions(b *board.Board, s *catalog.Shape) Spots {
	spots := EmptySpots(b.Size())
	if s == nil {
		return spots
	}
	for y := 0; y <= b.Size()-s.Height(); y++ {
		for x := 0; x <= b.Size()-s.Width(); x++ {
			spots[y][x] = CanPlace(b, s, x, y)
		}
	}
	return spots
}

func CountFitPositions(b *board.Board, s *catalog.Shape) int {
	return ComputeFitPositions(b, s).Count()
}

func canFitAnywhere(b *board.Board, s *catalog.Shape) bool {
	for y := 0; y <= b.Size()-s.Height(); y++ {
		for x := 0; x <= b.Size()-s.Width(); x++ {
			if CanPlace(b, s, x, y) {
				return true
			}
		}
	}
	return false
}

// CanAnyPieceFit returns true as soon as one non-nil piece has a fittable origin.
func CanAnyPieceFit(b *board.Board, pieces []*catalog.Piece) bool {
	for _, p := range pieces {
		if p == nil {
			continue
		}
		if canFitAnywhere(b, p.Shape) {
			return true
		}
	}
	return false
}

// Preview is the outcome of a hover overlay.
type Preview struct {
	Origin base.Point
	Legal  bool  // origin is a fittable position
	Rows   []int // rows that would clear on drop
	Cols   []int // columns that would clear on drop
}

// Lines is the line count the drop would clear, rows and columns added.
func (p Preview) Lines() int {
	return len(p.Rows) + len(p.Cols)
}

// UpdateHoverPreview overlays the piece as HOVERED at (x, y) and marks every
// row and column that would become full as HOVERED_BREAK_FILLED or
// HOVERED_BREAK_EMPTY, using the piece colour as break colour. FILLED/EMPTY
// ground truth survives underneath and ClearHoverBlocks restores it.
// The board must carry no previous overlay.
func UpdateHoverPreview(b *board.Board, p *catalog.Piece, x, y int) Preview {
	pv := Preview{Origin: base.Point{X: x, Y: y}, Legal: CanPlace(b, p.Shape, x, y)}
	b.PlacePiece(p.Shape, p.Color, x, y, base.Hovered)

	rows, cols := b.FullLines(func(c board.Cell) bool {
		return c.State == base.Filled || c.Covered()
	})
	if rows.Len()+cols.Len() == 0 {
		return pv
	}
	for y := 0; y < b.Size(); y++ {
		if rows.Has(y) {
			pv.Rows = append(pv.Rows, y)
		}
	}
	for x := 0; x < b.Size(); x++ {
		if cols.Has(x) {
			pv.Cols = append(pv.Cols, x)
		}
	}
	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			if rows.Has(y) || cols.Has(x) {
				b.MarkBreak(x, y, p.Color)
			}
		}
	}
	return pv
}
