// Package glayout maps window pixels to board cells and hand slots.
package glayout

import (
	"math"

	"blockblast/src/base"
)

const (
	HeaderH = 70
	Margin  = 24
	Gap     = 3
	HandPad = 16
	ButtonH = 40
)

type Layout struct {
	W, H   int
	N      int // board size
	Slots  int // hand size
	Cell   int
	BoardX int
	BoardY int
	HandY  int
	SlotW  int
}

// New fits an n×n board and a hand of slots into a w×h window: header on
// top, board centred, hand strip and button row below.
func New(w, h, n, slots int) Layout {
	l := Layout{W: w, H: h, N: n, Slots: slots}
	avail := w - 2*Margin
	l.SlotW = avail / max(slots, 1)
	// the board takes what is left after header, hand strip and buttons
	vert := h - HeaderH - min(l.SlotW, 140) - ButtonH - 3*Margin
	side := min(avail, vert)
	l.Cell = max((side-(n-1)*Gap)/n, 8)
	l.BoardX = (w - l.BoardPx()) / 2
	l.BoardY = HeaderH
	l.HandY = l.BoardY + l.BoardPx() + Margin
	return l
}

func (l Layout) Step() int {
	return l.Cell + Gap
}

func (l Layout) BoardPx() int {
	return l.N*l.Cell + (l.N-1)*Gap
}

// CellPos is the top-left pixel of cell (x, y).
func (l Layout) CellPos(x, y int) (px, py int) {
	return l.BoardX + x*l.Step(), l.BoardY + y*l.Step()
}

// CellAt returns the cell under a pixel.
func (l Layout) CellAt(px, py int) (base.Point, bool) {
	if px < l.BoardX || py < l.BoardY {
		return base.Point{}, false
	}
	p := base.Point{X: (px - l.BoardX) / l.Step(), Y: (py - l.BoardY) / l.Step()}
	return p, p.X < l.N && p.Y < l.N
}

// DropOrigin snaps the top-left pixel of a dragged piece to the nearest
// cell. The result may lie outside the board.
func (l Layout) DropOrigin(px, py float64) base.Point {
	step := float64(l.Step())
	return base.Point{
		X: int(math.Round((px - float64(l.BoardX)) / step)),
		Y: int(math.Round((py - float64(l.BoardY)) / step)),
	}
}

// Near reports whether a snapped origin is close enough to the board to preview.
func (l Layout) Near(o base.Point, w, h int) bool {
	return o.X > -w && o.Y > -h && o.X < l.N && o.Y < l.N
}

func (l Layout) SlotHeight() int {
	return min(l.SlotW, 140)
}

func (l Layout) SlotRect(i int) (x, y, w, h int) {
	return Margin + i*l.SlotW, l.HandY, l.SlotW, l.SlotHeight()
}

func (l Layout) SlotAt(px, py int) (int, bool) {
	if py < l.HandY || py >= l.HandY+l.SlotHeight() || px < Margin {
		return 0, false
	}
	i := (px - Margin) / max(l.SlotW, 1)
	return i, i < l.Slots
}

// SlotCell is the cell edge used to draw pieces resting in the hand.
func (l Layout) SlotCell() int {
	return max((l.SlotHeight()-HandPad)/4, 4)
}

func (l Layout) ButtonsY() int {
	return l.HandY + l.SlotHeight() + Margin/2
}
