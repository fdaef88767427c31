// Package snapshot renders a board and hand to a PNG image.
package snapshot

import (
	"fmt"
	"image"
	"image/color"

	"blockblast/src/base"
	"blockblast/src/catalog"
	"blockblast/src/logic/board"

	"github.com/fogleman/gg"
)

type Style struct {
	Cell    int // cell edge in pixels
	Gap     int // space between cells
	Margin  int
	Radius  float64
	Bg      color.RGBA
	Empty   color.RGBA
	Outline color.RGBA
}

var DefaultStyle = Style{
	Cell:    32,
	Gap:     3,
	Margin:  16,
	Radius:  5,
	Bg:      color.RGBA{0x1d, 0x24, 0x4a, 0xff},
	Empty:   color.RGBA{0x2b, 0x34, 0x66, 0xff},
	Outline: color.RGBA{0xff, 0xff, 0xff, 0x30},
}

// TileColor is the fill used for a cell. Hover states show the dragged
// piece lighter, break states the colour of the piece that triggers them.
func TileColor(c board.Cell, empty color.RGBA) color.RGBA {
	switch c.State {
	case base.Filled:
		return c.Color.RGBA()
	case base.Hovered:
		return c.Color.Lighten(0.45).RGBA()
	case base.HoveredBreakFilled:
		return c.HoveredBreakColor.RGBA()
	case base.HoveredBreakEmpty:
		return c.HoveredBreakColor.Lighten(0.3).RGBA()
	default:
		return empty
	}
}

// DrawTile paints one rounded block with a top highlight.
func DrawTile(dc *gg.Context, x, y, size, radius float64, fill, stroke color.RGBA) {
	dc.SetRGBA255(int(fill.R), int(fill.G), int(fill.B), int(fill.A))
	dc.DrawRoundedRectangle(x, y, size, size, radius)
	dc.FillPreserve()
	dc.SetRGBA255(int(stroke.R), int(stroke.G), int(stroke.B), int(stroke.A))
	dc.SetLineWidth(1)
	dc.Stroke()
	if fill.A == 0xff {
		dc.SetRGBA(1, 1, 1, 0.18)
		dc.DrawRoundedRectangle(x+2, y+2, size-4, size/3, radius/2)
		dc.Fill()
	}
}

func (s Style) boardPx(n int) int {
	return n*s.Cell + (n-1)*s.Gap
}

// Size returns the image dimensions for a board of n cells and a hand of k slots.
func (s Style) Size(n, k int) (w, h int) {
	w = s.boardPx(n) + 2*s.Margin
	h = s.boardPx(n) + 3*s.Margin
	if k > 0 {
		h += s.handPx(w, k)
	}
	return w, h
}

// handPx is the height of the hand strip: each slot is a square column.
func (s Style) handPx(w, k int) int {
	return (w - 2*s.Margin) / k
}

// Render draws the board, and the hand below it when hand is not empty.
func Render(b *board.Board, hand []*catalog.Piece, s Style) image.Image {
	n := b.Size()
	w, h := s.Size(n, len(hand))
	dc := gg.NewContext(w, h)
	dc.SetColor(s.Bg)
	dc.Clear()

	step := float64(s.Cell + s.Gap)
	b.ForEach(func(x, y int, c board.Cell) bool {
		DrawTile(dc, float64(s.Margin)+float64(x)*step, float64(s.Margin)+float64(y)*step,
			float64(s.Cell), s.Radius, TileColor(c, s.Empty), s.Outline)
		return true
	})

	if len(hand) > 0 {
		top := float64(2*s.Margin + s.boardPx(n))
		slotW := float64(s.handPx(w, len(hand)))
		for i, p := range hand {
			if p == nil {
				continue
			}
			// the biggest shape is 4 cells long; scale into the slot
			cell := (slotW - 8) / 4
			pw, ph := float64(p.Shape.Width())*cell, float64(p.Shape.Height())*cell
			ox := float64(s.Margin) + float64(i)*slotW + (slotW-pw)/2
			oy := top + (slotW-ph)/2
			for _, off := range p.Shape.Cells() {
				DrawTile(dc, ox+float64(off.X)*cell, oy+float64(off.Y)*cell, cell-2, s.Radius/2, p.Color.RGBA(), s.Outline)
			}
		}
	}
	return dc.Image()
}

// SavePNG renders to path.
func SavePNG(path string, b *board.Board, hand []*catalog.Piece, s Style) error {
	img := Render(b, hand, s)
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("snapshot: save %s: %w", path, err)
	}
	return nil
}
