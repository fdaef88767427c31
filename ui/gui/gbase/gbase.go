package gbase

import (
	"errors"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// ---- Exit Call ----

var ErrExit = errors.New("exit request")

// ---- Styles (palettes) ----

type Palette struct {
	Bg           color.RGBA
	BoardBg      color.RGBA
	EmptyCell    color.RGBA
	CellStroke   color.RGBA
	ButtonFill   color.RGBA
	ButtonStroke color.RGBA
	ButtonText   color.RGBA
	MenuText     color.RGBA
	Accent       color.RGBA
	ModalBg      color.RGBA
}

func (p Palette) String() string {
	switch p {
	case LightPalette:
		return "light"
	case DarkPalette:
		return "dark"
	default:
	}
	return ""
}

func PaletteFromString(p string) Palette {
	switch p {
	case "light":
		return LightPalette
	default:
	}
	return DarkPalette
}

var LightPalette = Palette{
	Bg:           color.RGBA{0xf7, 0xf7, 0xf7, 0xff},
	BoardBg:      color.RGBA{0xd8, 0xdd, 0xe6, 0xff},
	EmptyCell:    color.RGBA{0xee, 0xf0, 0xf4, 0xff},
	CellStroke:   color.RGBA{0x00, 0x00, 0x00, 0x20},
	ButtonFill:   color.RGBA{0xff, 0xff, 0xff, 0xff},
	ButtonStroke: color.RGBA{0x88, 0x88, 0x88, 0xff},
	ButtonText:   color.RGBA{0x22, 0x22, 0x22, 0xff},
	MenuText:     color.RGBA{0x22, 0x22, 0x22, 0xff},
	Accent:       color.RGBA{0x22, 0x88, 0xcc, 0xff},
	ModalBg:      color.RGBA{0x00, 0x00, 0x00, 0x88},
}

var DarkPalette = Palette{
	Bg:           color.RGBA{0x12, 0x16, 0x2e, 0xff},
	BoardBg:      color.RGBA{0x1d, 0x24, 0x4a, 0xff},
	EmptyCell:    color.RGBA{0x2b, 0x34, 0x66, 0xff},
	CellStroke:   color.RGBA{0xff, 0xff, 0xff, 0x30},
	ButtonFill:   color.RGBA{0x20, 0x20, 0x20, 0xff},
	ButtonStroke: color.RGBA{0xdd, 0xdd, 0xdd, 0xff},
	ButtonText:   color.RGBA{0xee, 0xee, 0xee, 0xff},
	MenuText:     color.RGBA{0xee, 0xee, 0xee, 0xff},
	Accent:       color.RGBA{0x2a, 0xa1, 0xd1, 0xff},
	ModalBg:      color.RGBA{0x00, 0x00, 0x00, 0x99},
}

// ---- UI elements ----

const buttonEase = 8.0 // approach rate of the press animation, per second

// Pointer is the left mouse button as seen by one frame.
type Pointer struct {
	X, Y     int
	Down     bool
	Pressed  bool // went down this frame
	Released bool // went up this frame
}

type Button struct {
	Label      string
	X, Y, W, H int
	Image      *ebiten.Image // pre-rendered rounded rect with stroke
	Disabled   bool

	hover bool
	held  bool
	scale float64
	lift  float64
}

func NewButton(label string, x, y, w, h int, img *ebiten.Image) *Button {
	return &Button{Label: label, X: x, Y: y, W: w, H: h, Image: img, scale: 1}
}

func (b *Button) Contains(px, py int) bool {
	return px >= b.X && px < b.X+b.W && py >= b.Y && py < b.Y+b.H
}

// Update feeds one frame of input, eases the press animation and reports a
// click: pressed and released inside the button.
func (b *Button) Update(p Pointer, dt float64) bool {
	b.hover = !b.Disabled && b.Contains(p.X, p.Y)
	clicked := false
	switch {
	case p.Pressed && b.hover:
		b.held = true
	case p.Released:
		clicked = b.held && b.hover
		b.held = false
	}

	scale, lift := 1.0, 0.0
	switch {
	case b.held:
		scale, lift = 0.96, 3
	case b.hover:
		scale = 1.02
	}
	k := 1 - math.Exp(-buttonEase*dt)
	b.scale += (scale - b.scale) * k
	b.lift += (lift - b.lift) * k
	return clicked
}

func (b *Button) Draw(screen *ebiten.Image, face font.Face, theme Palette) {
	if b.Image == nil {
		return
	}
	if b.scale == 0 {
		b.scale = 1
	}
	cx := float64(b.X) + float64(b.W)/2
	cy := float64(b.Y) + float64(b.H)/2 + b.lift

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Image.Bounds().Dx())/2, -float64(b.Image.Bounds().Dy())/2)
	op.GeoM.Scale(b.scale, b.scale)
	op.GeoM.Translate(cx, cy)
	op.Filter = ebiten.FilterLinear
	label := theme.ButtonText
	if b.Disabled {
		op.ColorScale.ScaleAlpha(0.5)
		label = theme.ButtonStroke
	}
	screen.DrawImage(b.Image, op)

	r := text.BoundString(face, b.Label)
	text.Draw(screen, b.Label, face, int(cx)-r.Dx()/2, int(cy)+r.Dy()/2, label)
}
