package gctx

import (
	"blockblast/src"
	"blockblast/src/logx"
	"blockblast/src/storage/scores"
	"blockblast/ui/gui/gbase"
	"blockblast/ui/gui/gbase/gconf"
	"blockblast/ui/gui/ghelper"
	"blockblast/ui/gui/ghelper/gfont"
)

// ---- GUI Context ----

type GUIGameContext struct {
	Game   *src.Game
	Config *gconf.Config
	Scores scores.Store
	Fonts  *gfont.Fonts
	Tiles  *ghelper.TileCache
	Theme  gbase.Palette
	Logx   logx.Logger
}

func NewGUIGameContext(g *src.Game, c *gconf.Config, s scores.Store, l logx.Logger) *GUIGameContext {
	theme := gbase.PaletteFromString(c.Theme)
	return &GUIGameContext{
		Game:   g,
		Config: c,
		Scores: s,
		Fonts:  gfont.LoadFonts(),
		Tiles:  ghelper.NewTileCache(theme.CellStroke),
		Theme:  theme,
		Logx:   l,
	}
}

// SetTheme switches palettes and drops tiles rendered for the old one.
func (ctx *GUIGameContext) SetTheme(name string) {
	ctx.Theme = gbase.PaletteFromString(name)
	ctx.Config.Theme = ctx.Theme.String()
	ctx.Tiles = ghelper.NewTileCache(ctx.Theme.CellStroke)
}
