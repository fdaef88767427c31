package gdraw

import (
	"context"
	"fmt"
	"math"
	"time"

	"blockblast/src/base"
	"blockblast/src/catalog"
	"blockblast/ui/gui/gbase"
	"blockblast/ui/gui/gctx"
	"blockblast/ui/gui/ghelper"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	menuButtonW = 240
	menuButtonH = 48
)

type GUIMenuDrawer struct {
	buttons []*gbase.Button
	best    map[base.GameMode]int
	mouse   mouseState

	// falling blocks on the title
	elapsed  float64
	prevTime time.Time
}

func NewGUIMenuDrawer(ctx *gctx.GUIGameContext) *GUIMenuDrawer {
	md := &GUIMenuDrawer{best: make(map[base.GameMode]int), prevTime: time.Now()}
	md.loadBest(ctx)
	md.makeLayout(ctx)
	return md
}

func (md *GUIMenuDrawer) loadBest(ctx *gctx.GUIGameContext) {
	if ctx.Scores == nil {
		return
	}
	for _, m := range base.Modes() {
		top, err := ctx.Scores.Top(context.Background(), m, 1)
		if err != nil {
			ctx.Logx.Errorf("load scores: %v", err)
			return
		}
		if len(top) > 0 {
			md.best[m] = top[0].Score
		}
	}
}

func (md *GUIMenuDrawer) makeLayout(ctx *gctx.GUIGameContext) {
	labels := []string{"Classic 8x8", "Chaos 10x10", "Theme: " + ctx.Theme.String(), "Quit"}
	x := (ctx.Config.WindowW - menuButtonW) / 2
	y := ctx.Config.WindowH/2 - 60
	img := ghelper.RenderRoundedRect(menuButtonW, menuButtonH, 14, ctx.Theme.ButtonFill, ctx.Theme.ButtonStroke, 2)
	md.buttons = md.buttons[:0]
	for i, l := range labels {
		md.buttons = append(md.buttons, gbase.NewButton(l, x, y+i*(menuButtonH+18), menuButtonW, menuButtonH, img))
	}
}

func (md *GUIMenuDrawer) Update(ctx *gctx.GUIGameContext) (SceneType, error) {
	ptr := md.mouse.poll()
	now := time.Now()
	dt := now.Sub(md.prevTime).Seconds()
	md.prevTime = now
	md.elapsed += dt

	for i, b := range md.buttons {
		if !b.Update(ptr, dt) {
			continue
		}
		ctx.Logx.Infof("%s (%d) clicked", b.Label, i)
		switch i {
		case 0, 1:
			mode := base.Modes()[i]
			ctx.Config.Mode = mode.String()
			if err := ctx.Game.StartGame(mode); err != nil {
				return SceneNotChanged, err
			}
			return ScenePlay, nil
		case 2:
			if ctx.Theme == gbase.DarkPalette {
				ctx.SetTheme("light")
			} else {
				ctx.SetTheme("dark")
			}
			if err := ctx.Config.Save(); err != nil {
				ctx.Logx.Errorf("save config: %v", err)
			}
			md.makeLayout(ctx)
			return SceneNotChanged, nil
		case 3:
			return SceneNotChanged, gbase.ErrExit
		}
	}
	return SceneNotChanged, nil
}

func (md *GUIMenuDrawer) Draw(ctx *gctx.GUIGameContext, screen *ebiten.Image) {
	screen.Fill(ctx.Theme.Bg)

	// a row of bobbing blocks in the palette colours
	const size = 28
	colors := catalog.Default().Palette()
	startX := (ctx.Config.WindowW - len(colors)*(size+6)) / 2
	for i, c := range colors {
		phase := md.elapsed*3 + float64(i)*0.6
		dy := 6 * math.Sin(phase)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(startX+i*(size+6)), 90+dy)
		screen.DrawImage(ctx.Tiles.Tile(size, c.RGBA()), op)
	}
	centerText(screen, ctx, "B L O C K   B L A S T", 160)

	for i, b := range md.buttons {
		b.Draw(screen, ctx.Fonts.Normal, ctx.Theme)
		if i < len(base.Modes()) {
			if best, ok := md.best[base.Modes()[i]]; ok {
				centerText(screen, ctx, fmt.Sprintf("best %d", best), b.Y+b.H+14)
			}
		}
	}
}
