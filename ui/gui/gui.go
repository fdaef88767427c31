package gui

import (
	"errors"

	"blockblast/src"
	"blockblast/src/engine"
	"blockblast/src/engine/greedy"
	"blockblast/src/logx"
	"blockblast/src/storage/scores"
	"blockblast/ui/gui/gbase"
	"blockblast/ui/gui/gbase/gconf"
	"blockblast/ui/gui/gctx"
	"blockblast/ui/gui/gdraw"

	"github.com/hajimehoshi/ebiten/v2"
)

type GUIProcessing struct {
	current gdraw.Scene
	ctx     *gctx.GUIGameContext
}

// NewGUI opens on the menu, or straight on the board when g is already running.
func NewGUI(g *src.Game, cfg *gconf.Config, store scores.Store, logger logx.Logger) *GUIProcessing {
	if logger == nil {
		logger = logx.Nop()
	}
	g.SetEngineWorker(greedy.New())
	g.SetEngineLevel(engine.LevelFromInt(cfg.HintLevel))

	ctx := gctx.NewGUIGameContext(g, cfg, store, logger)
	start := gdraw.SceneMenu
	if g.Board() != nil {
		start = gdraw.ScenePlay
	}
	return &GUIProcessing{
		current: start.ToScene(nil, ctx),
		ctx:     ctx,
	}
}

func (gp *GUIProcessing) Run() error {
	ebiten.SetWindowSize(gp.ctx.Config.WindowW, gp.ctx.Config.WindowH)
	ebiten.SetWindowTitle("Block Blast")
	err := ebiten.RunGame(gp)
	gp.ctx.Game.Wait()
	return err
}

func (gp *GUIProcessing) Update() error {
	next, err := gp.current.Update(gp.ctx)
	if errors.Is(err, gbase.ErrExit) {
		return ebiten.Termination
	}
	if err != nil {
		return err
	}
	gp.current = next.ToScene(gp.current, gp.ctx)
	return nil
}

func (gp *GUIProcessing) Draw(screen *ebiten.Image) {
	gp.current.Draw(gp.ctx, screen)
}

func (gp *GUIProcessing) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return gp.ctx.Config.WindowW, gp.ctx.Config.WindowH
}
