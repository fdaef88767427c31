package gdraw

import (
	"blockblast/ui/gui/gbase"
	"blockblast/ui/gui/gctx"
	"blockblast/ui/gui/ghelper"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
)

// ---- Scene ----

type Scene interface {
	Update(ctx *gctx.GUIGameContext) (SceneType, error)
	Draw(ctx *gctx.GUIGameContext, screen *ebiten.Image)
}

type SceneType int

const (
	SceneMenu SceneType = iota
	ScenePlay
	SceneNotChanged
)

func (t SceneType) ToScene(s Scene, ctx *gctx.GUIGameContext) Scene {
	switch t {
	case SceneMenu:
		s = NewGUIMenuDrawer(ctx)
	case ScenePlay:
		s = NewGUIPlayDrawer(ctx)
	case SceneNotChanged:
	default:
	}
	return s
}

// mouseState tracks press edges between frames.
type mouseState struct {
	prevDown bool
}

func (m *mouseState) poll() gbase.Pointer {
	x, y := ebiten.CursorPosition()
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	p := gbase.Pointer{X: x, Y: y, Down: down, Pressed: down && !m.prevDown, Released: !down && m.prevDown}
	m.prevDown = down
	return p
}

// DrawModal dims the screen and shows message in a centred box.
func DrawModal(ctx *gctx.GUIGameContext, message string, screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	overlay := ebiten.NewImage(w, h)
	overlay.Fill(ctx.Theme.ModalBg)
	screen.DrawImage(overlay, nil)

	bounds := text.BoundString(ctx.Fonts.Normal, message)
	mw := bounds.Dx() + 64
	mh := bounds.Dy() + 48
	mx := (w - mw) / 2
	my := (h - mh) / 2

	modalImg := ghelper.RenderRoundedRect(mw, mh, 16, ctx.Theme.ButtonFill, ctx.Theme.ButtonStroke, 3)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(mx), float64(my))
	screen.DrawImage(modalImg, op)
	text.Draw(screen, message, ctx.Fonts.Normal, mx+32, my+24+bounds.Dy()/2+4, ctx.Theme.MenuText)
}

func centerText(screen *ebiten.Image, ctx *gctx.GUIGameContext, s string, y int) {
	b := text.BoundString(ctx.Fonts.Normal, s)
	text.Draw(screen, s, ctx.Fonts.Normal, (screen.Bounds().Dx()-b.Dx())/2, y, ctx.Theme.MenuText)
}
