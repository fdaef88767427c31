package board

import (
	"fmt"
	"strings"

	"blockblast/src/base"
	"blockblast/src/catalog"

	"github.com/kamstrup/intmap"
)

// Cell is one grid position.
type Cell struct {
	State             base.CellState
	Color             base.Color
	HoveredBreakColor base.Color

	// colour that was under a hover overlay, restored by ClearHoverBlocks
	under   base.Color
	covered bool
}

// Covered reports whether the hovered piece occupies this cell.
func (c Cell) Covered() bool {
	return c.covered
}

// Board is a square grid of cells. It is not safe for concurrent use.
type Board struct {
	size  int
	cells []Cell
}

// NewBoard returns an empty board. Every cell gets a colour from decorate,
// which the front-ends use for the load-in effect only; pass nil for zero colours.
func NewBoard(size int, decorate func(x, y int) base.Color) *Board {
	if size <= 0 {
		panic(fmt.Sprintf("board: invalid size %d", size))
	}
	b := &Board{size: size, cells: make([]Cell, size*size)}
	if decorate != nil {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				b.cells[y*size+x].Color = decorate(x, y)
			}
		}
	}
	return b
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.size && y < b.size
}

func (b *Board) At(x, y int) Cell {
	return b.cells[b.index(x, y)]
}

func (b *Board) State(x, y int) base.CellState {
	return b.cells[b.index(x, y)].State
}

func (b *Board) IsFilled(x, y int) bool {
	return b.cells[b.index(x, y)].State == base.Filled
}

// Occupied reports whether a committed block sits at (x, y), including one
// currently shown as part of a line that would clear.
func (b *Board) Occupied(x, y int) bool {
	s := b.cells[b.index(x, y)].State
	return s == base.Filled || s == base.HoveredBreakFilled
}

// SetCell overwrites a cell with plain state and colour. Intended for board
// setup in tests and tools; gameplay goes through PlacePiece and BreakLines.
func (b *Board) SetCell(x, y int, state base.CellState, c base.Color) {
	if !state.IsValid() || state.IsHover() {
		panic(fmt.Sprintf("board: SetCell with state %v", state))
	}
	b.cells[b.index(x, y)] = Cell{State: state, Color: c}
}

func (b *Board) index(x, y int) int {
	if !b.InBounds(x, y) {
		panic(fmt.Sprintf("board: cell (%d,%d) outside %dx%d board", x, y, b.size, b.size))
	}
	return y*b.size + x
}

func (b *Board) Clone() *Board {
	out := &Board{size: b.size, cells: make([]Cell, len(b.cells))}
	copy(out.cells, b.cells)
	return out
}

// Equal compares state and colours of every cell.
func (b *Board) Equal(o *Board) bool {
	if b.size != o.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// ForEach visits cells row by row; returning false stops the walk.
func (b *Board) ForEach(each func(x, y int, c Cell) bool) {
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			if !each(x, y, b.cells[y*b.size+x]) {
				return
			}
		}
	}
}

func (b *Board) FilledCount() int {
	n := 0
	for i := range b.cells {
		if b.cells[i].State == base.Filled {
			n++
		}
	}
	return n
}

func (b *Board) HasHover() bool {
	for i := range b.cells {
		if b.cells[i].State.IsHover() || b.cells[i].covered {
			return true
		}
	}
	return false
}

// ClearHoverBlocks undoes every hover overlay: HOVERED and HOVERED_BREAK_EMPTY
// go back to EMPTY, HOVERED_BREAK_FILLED back to FILLED, colours underneath
// the dragged piece are restored and break colours reset.
func (b *Board) ClearHoverBlocks() {
	for i := range b.cells {
		c := &b.cells[i]
		switch c.State {
		case base.Hovered, base.HoveredBreakEmpty:
			c.State = base.Empty
		case base.HoveredBreakFilled:
			c.State = base.Filled
		}
		if c.covered {
			c.Color = c.under
		}
		c.HoveredBreakColor = base.Color{}
		c.under = base.Color{}
		c.covered = false
	}
}

// PlacePiece writes target and colour into every cell under an occupied shape
// cell with its top-left corner at (x, y).
//
// For base.Filled the caller must have validated the origin with the solver;
// landing on a FILLED cell or outside the board panics. For base.Hovered the
// overlay is reversible: out-of-bounds and FILLED cells are left alone so an
// invalid hover only gives visual feedback.
func (b *Board) PlacePiece(s *catalog.Shape, c base.Color, x, y int, target base.CellState) {
	switch target {
	case base.Filled:
		for _, off := range s.Cells() {
			cell := &b.cells[b.index(x+off.X, y+off.Y)]
			if cell.State != base.Empty {
				panic(fmt.Sprintf("board: commit onto %v cell at (%d,%d)", cell.State, x+off.X, y+off.Y))
			}
			cell.State = base.Filled
			cell.Color = c
		}
	case base.Hovered:
		for _, off := range s.Cells() {
			px, py := x+off.X, y+off.Y
			if !b.InBounds(px, py) {
				continue
			}
			cell := &b.cells[py*b.size+px]
			if cell.State != base.Empty || cell.covered {
				continue
			}
			cell.under = cell.Color
			cell.covered = true
			cell.State = base.Hovered
			cell.Color = c
		}
	default:
		panic(fmt.Sprintf("board: PlacePiece with target %v", target))
	}
}

// MarkBreak flags a cell as part of a line that would clear. Marking the
// same cell twice is harmless.
func (b *Board) MarkBreak(x, y int, c base.Color) {
	cell := &b.cells[b.index(x, y)]
	switch cell.State {
	case base.Filled, base.HoveredBreakFilled:
		cell.State = base.HoveredBreakFilled
	default:
		cell.State = base.HoveredBreakEmpty
	}
	cell.HoveredBreakColor = c
}

// FullLines returns the rows and columns in which every cell satisfies full.
func (b *Board) FullLines(full func(c Cell) bool) (rows, cols *intmap.Set[int]) {
	rows = intmap.NewSet[int](b.size)
	cols = intmap.NewSet[int](b.size)
	for y := 0; y < b.size; y++ {
		complete := true
		for x := 0; x < b.size; x++ {
			if !full(b.cells[y*b.size+x]) {
				complete = false
				break
			}
		}
		if complete {
			rows.Add(y)
		}
	}
	for x := 0; x < b.size; x++ {
		complete := true
		for y := 0; y < b.size; y++ {
			if !full(b.cells[y*b.size+x]) {
				complete = false
				break
			}
		}
		if complete {
			cols.Add(x)
		}
	}
	return rows, cols
}

// BreakLines empties every fully FILLED row and column and returns
// rows+cols. A cell on both a cleared row and a cleared column is reset once
// but contributes to both counts; scoring relies on that total.
func (b *Board) BreakLines() int {
	rows, cols := b.FullLines(func(c Cell) bool { return c.State == base.Filled })
	count := rows.Len() + cols.Len()
	if count == 0 {
		return 0
	}
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			if rows.Has(y) || cols.Has(x) {
				b.cells[y*b.size+x] = Cell{State: base.Empty}
			}
		}
	}
	return count
}

// String renders the grid with one rune per cell, rows separated by newlines.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			sb.WriteRune(StateRune(b.cells[y*b.size+x].State))
		}
		if y < b.size-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func StateRune(s base.CellState) rune {
	switch s {
	case base.Filled:
		return '#'
	case base.Hovered:
		return '+'
	case base.HoveredBreakFilled:
		return '*'
	case base.HoveredBreakEmpty:
		return 'o'
	default:
		return '.'
	}
}

// Parse builds a board from rows of '#' (filled) and '.' (empty), all filled
// cells in colour c. Rows must form a square.
func Parse(c base.Color, rows ...string) (*Board, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("board: no rows")
	}
	b := NewBoard(n, nil)
	for y, r := range rows {
		if len(r) != n {
			return nil, fmt.Errorf("board: row %d has %d cells, want %d", y, len(r), n)
		}
		for x, ch := range []byte(r) {
			switch ch {
			case '#':
				b.SetCell(x, y, base.Filled, c)
			case '.':
			default:
				return nil, fmt.Errorf("board: unexpected %q at (%d,%d)", ch, x, y)
			}
		}
	}
	return b, nil
}
