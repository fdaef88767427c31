package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	"blockblast/src"
	"blockblast/src/base"
	"blockblast/src/engine"
	"blockblast/src/engine/greedy"
	"blockblast/src/logx"
	"blockblast/src/storage/scores"
	clic "blockblast/ui/cli"
	"blockblast/ui/gui"
	"blockblast/ui/gui/gbase/gconf"
	"blockblast/ui/snapshot"

	"github.com/urfave/cli/v3"
)

const logfile string = "blockblast.log"

func GetLogger(file *os.File, c *cli.Command) *logx.Logx {
	l := logx.NewLogx(
		logx.GetLoggerLevelByString(c.String("log-level")),
		c.Bool("debug"),
		c.Bool("console"),
	)
	l.InitLogger(file)
	return l
}

func openStore(c *cli.Command) (*scores.FileStore, error) {
	path := c.String("scores")
	if path == "" {
		p, err := scores.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return scores.NewFileStore(path, scores.DefaultCap), nil
}

func modeFlag(c *cli.Command) (base.GameMode, error) {
	return base.GameModeFromString(c.String("mode"))
}

// newGame applies the shared flags: seed, logger and score store.
func newGame(c *cli.Command, logger logx.Logger, store scores.Store) *src.Game {
	opts := []src.Option{src.WithLogger(logger)}
	if store != nil {
		opts = append(opts, src.WithRecorder(store))
	}
	if c.IsSet("seed") {
		opts = append(opts, src.WithSeed(uint64(c.Int("seed"))))
	}
	g := src.NewGame(opts...)
	g.SetEngineWorker(greedy.New())
	if c.IsSet("level") {
		g.SetEngineLevel(engine.LevelFromInt(c.Int("level")))
	}
	return g
}

func withLog(c *cli.Command, run func(logger *logx.Logx) error) error {
	file, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("open logfile: %w", err)
	}
	defer file.Close()
	logger := GetLogger(file, c)
	defer logger.Sync() //nolint:errcheck
	return run(logger)
}

func RunCLI(c *cli.Command) error {
	mode, err := modeFlag(c)
	if err != nil {
		return err
	}
	store, err := openStore(c)
	if err != nil {
		return err
	}
	return withLog(c, func(logger *logx.Logx) error {
		g := newGame(c, logger, store)
		if err := g.StartGame(mode); err != nil {
			return err
		}
		draw := clic.PrintANSI
		if c.Bool("plain") {
			draw = clic.PrintPlain
		} else {
			clic.EnableANSI()
		}
		err := clic.NewCLI(g, draw, store, logger).Run()
		g.Wait()
		return err
	})
}

func RunGUI(c *cli.Command) error {
	cfg, err := gconf.NewGUIConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("level") {
		cfg.HintLevel = c.Int("level")
	}
	store, err := openStore(c)
	if err != nil {
		return err
	}
	return withLog(c, func(logger *logx.Logx) error {
		g := newGame(c, logger, store)
		if c.IsSet("mode") {
			mode, err := modeFlag(c)
			if err != nil {
				return err
			}
			if err := g.StartGame(mode); err != nil {
				return err
			}
		}
		return gui.NewGUI(g, cfg, store, logger).Run()
	})
}

func RunScores(ctx context.Context, c *cli.Command) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	modes := base.Modes()
	if c.IsSet("mode") {
		m, err := modeFlag(c)
		if err != nil {
			return err
		}
		modes = []base.GameMode{m}
	}
	for _, m := range modes {
		top, err := store.Top(ctx, m, c.Int("top"))
		if err != nil {
			return err
		}
		clic.PrintScores(os.Stdout, m, top, time.Now())
	}
	return nil
}

// RunSnapshot deals a game, lets the engine play up to --moves placements
// and writes the final position as a PNG.
func RunSnapshot(ctx context.Context, c *cli.Command) error {
	mode, err := modeFlag(c)
	if err != nil {
		return err
	}
	return withLog(c, func(logger *logx.Logx) error {
		g := newGame(c, logger, nil)
		if err := g.StartGame(mode); err != nil {
			return err
		}
		for i := 0; i < c.Int("moves") && g.Status() == base.Playing; i++ {
			if _, err := g.EngineMove(ctx); err != nil {
				return fmt.Errorf("engine move %d: %w", i+1, err)
			}
		}
		out := c.String("out")
		if err := snapshot.SavePNG(out, g.Board(), g.Hand(), snapshot.DefaultStyle); err != nil {
			return err
		}
		fmt.Printf("%s: %s, score %d after %d placements\n", out, g.Status(), g.Score(), g.History().Len())
		return nil
	})
}

func RunBlockBlast() error {
	mf := &cli.StringFlag{
		Name:    "mode",
		Aliases: []string{"m"},
		Value:   base.Classic.String(),
		Usage:   "game mode: classic or chaos",
	}
	sf := &cli.IntFlag{
		Name:  "seed",
		Usage: "seed for a reproducible deal",
	}
	ef := &cli.IntFlag{
		Name:  "level",
		Value: 2,
		Usage: "hint engine level 1..3",
	}
	scf := &cli.StringFlag{
		Name:  "scores",
		Usage: "path to the high score file",
	}
	df := &cli.BoolFlag{
		Name:    "debug",
		Aliases: []string{"d"},
		Usage:   "enable debug mod",
	}
	lf := &cli.StringFlag{
		Name:  "log-level",
		Value: "info",
		Usage: "logger level",
	}
	cf := &cli.BoolFlag{
		Name:    "console",
		Aliases: []string{"c"},
		Usage:   "console logger encoding",
	}
	logff := []cli.Flag{df, lf, cf}

	cliff := append([]cli.Flag{mf, sf, ef, scf, &cli.BoolFlag{
		Name:  "plain",
		Usage: "draw without colours",
	}}, logff...)
	guiff := append([]cli.Flag{mf, sf, ef, scf, &cli.StringFlag{
		Name:  "config",
		Value: gconf.DefaultFile,
		Usage: "path to the GUI settings file",
	}}, logff...)
	scoreff := []cli.Flag{mf, scf, &cli.IntFlag{
		Name:  "top",
		Value: scores.DefaultCap,
		Usage: "number of entries per mode",
	}}
	snapff := append([]cli.Flag{mf, sf, ef, &cli.IntFlag{
		Name:  "moves",
		Usage: "placements the engine plays before the snapshot",
	}, &cli.StringFlag{
		Name:  "out",
		Value: "board.png",
		Usage: "PNG file to write",
	}}, logff...)

	return (&cli.Command{
		Name:  "blockblast",
		Usage: "block placement puzzle",
		Commands: []*cli.Command{
			{
				Name:  "cli",
				Usage: "play in the terminal",
				Flags: cliff,
				Action: func(ctx context.Context, c *cli.Command) error {
					return RunCLI(c)
				},
			},
			{
				Name:  "gui",
				Usage: "play in a window",
				Flags: guiff,
				Action: func(ctx context.Context, c *cli.Command) error {
					return RunGUI(c)
				},
			},
			{
				Name:   "scores",
				Usage:  "print the high score tables",
				Flags:  scoreff,
				Action: RunScores,
			},
			{
				Name:   "snapshot",
				Usage:  "render a dealt board to PNG",
				Flags:  snapff,
				Action: RunSnapshot,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return RunGUI(c)
		},
	}).Run(context.Background(), os.Args)
}
