package ghelper

import (
	"image/color"

	"blockblast/ui/snapshot"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
)

func RenderRoundedRect(w, h, radius int, fill color.RGBA, stroke color.RGBA, strokeW float64) *ebiten.Image {
	// anti-aliased rounded rectangle via gg
	dc := gg.NewContext(w, h)
	dc.SetRGBA255(int(fill.R), int(fill.G), int(fill.B), int(fill.A))
	dc.DrawRoundedRectangle(0, 0, float64(w), float64(h), float64(radius))
	dc.FillPreserve()
	dc.SetRGBA255(int(stroke.R), int(stroke.G), int(stroke.B), int(stroke.A))
	dc.SetLineWidth(strokeW)
	dc.Stroke()
	img := dc.Image()
	return ebiten.NewImageFromImage(img)
}

// TileCache keeps one pre-rendered block image per size and colour.
type TileCache struct {
	stroke color.RGBA
	tiles  map[tileKey]*ebiten.Image
}

type tileKey struct {
	size int
	fill color.RGBA
}

func NewTileCache(stroke color.RGBA) *TileCache {
	return &TileCache{stroke: stroke, tiles: make(map[tileKey]*ebiten.Image)}
}

func (tc *TileCache) Tile(size int, fill color.RGBA) *ebiten.Image {
	k := tileKey{size: size, fill: fill}
	if img, ok := tc.tiles[k]; ok {
		return img
	}
	dc := gg.NewContext(size, size)
	snapshot.DrawTile(dc, 0, 0, float64(size), float64(size)/7, fill, tc.stroke)
	img := ebiten.NewImageFromImage(dc.Image())
	tc.tiles[k] = img
	return img
}
