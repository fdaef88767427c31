package gdraw

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blockblast/src/base"
	"blockblast/src/engine"
	"blockblast/src/logic/board"
	"blockblast/ui/gui/gbase"
	"blockblast/ui/gui/gctx"
	"blockblast/ui/gui/ghelper"
	"blockblast/ui/gui/ghelper/gclipboard"
	"blockblast/ui/gui/ghelper/gdialog"
	"blockblast/ui/gui/glayout"
	"blockblast/ui/snapshot"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	hintTimeout = 4 * time.Second
	flashFor    = 1500 * time.Millisecond
)

const (
	btnHint = iota
	btnNew
	btnSnapshot
	btnMenu
)

type dragState struct {
	active       bool
	slot         int
	grabX, grabY float64 // cursor offset from the piece's top-left corner
	origin       base.Point
	hovering     bool
}

type GUIPlayDrawer struct {
	layout  glayout.Layout
	buttons []*gbase.Button
	boardBg *ebiten.Image
	mouse   mouseState
	drag    dragState

	hint      *engine.AnalysisInfo
	best      int
	asked     bool
	flash     string
	flashTill time.Time
	prevTime  time.Time
}

func NewGUIPlayDrawer(ctx *gctx.GUIGameContext) *GUIPlayDrawer {
	pd := &GUIPlayDrawer{prevTime: time.Now()}
	pd.reset(ctx)
	return pd
}

func (pd *GUIPlayDrawer) reset(ctx *gctx.GUIGameContext) {
	g := ctx.Game
	pd.layout = glayout.New(ctx.Config.WindowW, ctx.Config.WindowH, g.Board().Size(), len(g.Hand()))
	pd.drag = dragState{}
	pd.hint = nil
	pd.asked = false
	pd.best = 0
	if ctx.Scores != nil {
		if top, err := ctx.Scores.Top(context.Background(), g.Mode(), 1); err != nil {
			ctx.Logx.Errorf("load scores: %v", err)
		} else if len(top) > 0 {
			pd.best = top[0].Score
		}
	}
	px := pd.layout.BoardPx() + 2*glayout.Gap*2
	pd.boardBg = ghelper.RenderRoundedRect(px, px, 10, ctx.Theme.BoardBg, ctx.Theme.BoardBg, 1)
	pd.makeButtons(ctx)
}

func (pd *GUIPlayDrawer) makeButtons(ctx *gctx.GUIGameContext) {
	labels := []string{"Hint", "New", "PNG", "Menu"}
	w := (pd.layout.W - 2*glayout.Margin - (len(labels)-1)*12) / len(labels)
	y := pd.layout.ButtonsY()
	img := ghelper.RenderRoundedRect(w, glayout.ButtonH, 12, ctx.Theme.ButtonFill, ctx.Theme.ButtonStroke, 2)
	pd.buttons = pd.buttons[:0]
	for i, l := range labels {
		pd.buttons = append(pd.buttons, gbase.NewButton(l, glayout.Margin+i*(w+12), y, w, glayout.ButtonH, img))
	}
}

func (pd *GUIPlayDrawer) setFlash(msg string) {
	pd.flash = msg
	pd.flashTill = time.Now().Add(flashFor)
}

func (pd *GUIPlayDrawer) Update(ctx *gctx.GUIGameContext) (SceneType, error) {
	g := ctx.Game
	ptr := pd.mouse.poll()
	mx, my := ptr.X, ptr.Y
	now := time.Now()
	dt := now.Sub(pd.prevTime).Seconds()
	pd.prevTime = now

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.ClearHover()
		return SceneMenu, nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		pd.runHint(ctx)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		return SceneNotChanged, pd.restart(ctx)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		pd.copyMoves(ctx)
	}

	pd.buttons[btnHint].Disabled = g.Status() != base.Playing
	if !pd.drag.active {
		for i, b := range pd.buttons {
			if !b.Update(ptr, dt) {
				continue
			}
			ctx.Logx.Debugf("%s clicked", b.Label)
			switch i {
			case btnHint:
				pd.runHint(ctx)
			case btnNew:
				return SceneNotChanged, pd.restart(ctx)
			case btnSnapshot:
				pd.saveSnapshot(ctx)
			case btnMenu:
				g.ClearHover()
				return SceneMenu, nil
			}
			// a click on a button never starts a drag
			return SceneNotChanged, nil
		}
	}

	if g.Status() == base.GameOver {
		if !pd.asked {
			pd.asked = true
			g.Wait()
			if gdialog.AskPlayAgain(g.Score(), g.Score() > pd.best) {
				return SceneNotChanged, pd.restart(ctx)
			}
		}
		return SceneNotChanged, nil
	}

	hand := g.Hand()
	if ptr.Pressed && !pd.drag.active {
		if slot, ok := pd.layout.SlotAt(mx, my); ok && hand[slot] != nil {
			p := hand[slot]
			step := float64(pd.layout.Step())
			pd.drag = dragState{
				active: true,
				slot:   slot,
				grabX:  float64(p.Shape.Width()) * step / 2,
				// lift the piece above the finger so the target stays visible
				grabY: float64(p.Shape.Height())*step + step/2,
			}
		}
	}
	if !pd.drag.active {
		return SceneNotChanged, nil
	}

	p := hand[pd.drag.slot]
	o := pd.layout.DropOrigin(float64(mx)-pd.drag.grabX, float64(my)-pd.drag.grabY)
	if pd.layout.Near(o, p.Shape.Width(), p.Shape.Height()) {
		if !pd.drag.hovering || o != pd.drag.origin {
			if _, err := g.Hover(pd.drag.slot, o.X, o.Y); err != nil {
				ctx.Logx.Warnf("hover: %v", err)
			}
			pd.drag.origin, pd.drag.hovering = o, true
		}
	} else if pd.drag.hovering {
		g.ClearHover()
		pd.drag.hovering = false
	}

	if ptr.Released {
		if pd.drag.hovering {
			pd.drop(ctx, pd.drag.slot, pd.drag.origin)
		}
		g.ClearHover()
		pd.drag = dragState{}
	}
	return SceneNotChanged, nil
}

func (pd *GUIPlayDrawer) drop(ctx *gctx.GUIGameContext, slot int, o base.Point) {
	res, err := ctx.Game.SelectAndDrop(slot, o.X, o.Y)
	if err != nil {
		ctx.Logx.Debugf("rejected drop: %v", err)
		return
	}
	pd.hint = nil
	if res.Cleared > 0 {
		pd.setFlash(fmt.Sprintf("%d lines! +%d", res.Cleared, res.Points))
	}
}

func (pd *GUIPlayDrawer) restart(ctx *gctx.GUIGameContext) error {
	if err := ctx.Game.StartGame(ctx.Game.Mode()); err != nil {
		return err
	}
	pd.reset(ctx)
	return nil
}

func (pd *GUIPlayDrawer) runHint(ctx *gctx.GUIGameContext) {
	c, cancel := context.WithTimeout(context.Background(), hintTimeout)
	defer cancel()
	info, err := ctx.Game.Hint(c)
	if err != nil {
		ctx.Logx.Warnf("hint: %v", err)
		pd.setFlash("no hint available")
		return
	}
	if info.BestMove == nil {
		pd.setFlash("nothing fits")
		return
	}
	pd.hint = &info
}

func (pd *GUIPlayDrawer) saveSnapshot(ctx *gctx.GUIGameContext) {
	path, err := gdialog.SavePNGPath("Save board")
	if errors.Is(err, gdialog.ErrCancelled) {
		return
	}
	if err == nil {
		err = snapshot.SavePNG(path, ctx.Game.Board(), ctx.Game.Hand(), snapshot.DefaultStyle)
	}
	if err != nil {
		ctx.Logx.Errorf("snapshot: %v", err)
		gdialog.ShowError("Snapshot", err)
		return
	}
	pd.setFlash("saved " + path)
}

// copyMoves puts the placement record of the round on the clipboard.
func (pd *GUIPlayDrawer) copyMoves(ctx *gctx.GUIGameContext) {
	moves := ctx.Game.History().MovesAsText()
	if moves == "" {
		pd.setFlash("no moves yet")
		return
	}
	if err := gclipboard.WriteAll(moves); err != nil {
		ctx.Logx.Warnf("copy moves: %v", err)
		pd.setFlash("clipboard unavailable")
		return
	}
	pd.setFlash("moves copied")
}

func (pd *GUIPlayDrawer) Draw(ctx *gctx.GUIGameContext, screen *ebiten.Image) {
	g := ctx.Game
	l := pd.layout
	screen.Fill(ctx.Theme.Bg)

	// header
	text.Draw(screen, fmt.Sprintf("SCORE %d", g.Score()), ctx.Fonts.Normal, glayout.Margin, 30, ctx.Theme.MenuText)
	best := fmt.Sprintf("BEST %d", max(pd.best, g.Score()))
	bb := text.BoundString(ctx.Fonts.Normal, best)
	text.Draw(screen, best, ctx.Fonts.Normal, l.W-glayout.Margin-bb.Dx(), 30, ctx.Theme.MenuText)
	centerText(screen, ctx, g.Mode().String(), 30)
	if pd.flash != "" && time.Now().Before(pd.flashTill) {
		centerText(screen, ctx, pd.flash, 52)
	}

	// board
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(l.BoardX-2*glayout.Gap), float64(l.BoardY-2*glayout.Gap))
	screen.DrawImage(pd.boardBg, op)
	g.Board().ForEach(func(x, y int, c board.Cell) bool {
		px, py := l.CellPos(x, y)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(px), float64(py))
		screen.DrawImage(ctx.Tiles.Tile(l.Cell, snapshot.TileColor(c, ctx.Theme.EmptyCell)), op)
		return true
	})
	pd.drawHint(ctx, screen)

	// hand
	hand := g.Hand()
	sc := l.SlotCell()
	for i, p := range hand {
		if p == nil || (pd.drag.active && pd.drag.slot == i) {
			continue
		}
		sx, sy, sw, sh := l.SlotRect(i)
		ox := sx + (sw-p.Shape.Width()*sc)/2
		oy := sy + (sh-p.Shape.Height()*sc)/2
		for _, off := range p.Shape.Cells() {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(ox+off.X*sc), float64(oy+off.Y*sc))
			screen.DrawImage(ctx.Tiles.Tile(sc-1, p.Color.RGBA()), op)
		}
	}

	for _, b := range pd.buttons {
		b.Draw(screen, ctx.Fonts.Normal, ctx.Theme)
	}

	// dragged piece follows the cursor at board scale
	if pd.drag.active && hand[pd.drag.slot] != nil {
		p := hand[pd.drag.slot]
		mx, my := ebiten.CursorPosition()
		tx, ty := float64(mx)-pd.drag.grabX, float64(my)-pd.drag.grabY
		for _, off := range p.Shape.Cells() {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(tx+float64(off.X*l.Step()), ty+float64(off.Y*l.Step()))
			op.ColorScale.ScaleAlpha(0.8)
			screen.DrawImage(ctx.Tiles.Tile(l.Cell, p.Color.RGBA()), op)
		}
	}

	if g.Status() == base.GameOver {
		DrawModal(ctx, fmt.Sprintf("Game over - %d points. Press R or New.", g.Score()), screen)
	}
}

// drawHint outlines the cells of the first suggested placement.
func (pd *GUIPlayDrawer) drawHint(ctx *gctx.GUIGameContext, screen *ebiten.Image) {
	if pd.hint == nil || pd.hint.BestMove == nil {
		return
	}
	mv := *pd.hint.BestMove
	hand := ctx.Game.Hand()
	if mv.Slot >= len(hand) || hand[mv.Slot] == nil {
		return
	}
	for _, off := range hand[mv.Slot].Shape.Cells() {
		px, py := pd.layout.CellPos(mv.Origin.X+off.X, mv.Origin.Y+off.Y)
		cell := float32(pd.layout.Cell)
		vector.StrokeRect(screen, float32(px)+1.5, float32(py)+1.5, cell-3, cell-3, 3, ctx.Theme.Accent, true)
	}
}
