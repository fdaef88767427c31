package main

import (
	"blockblast/src"
	"blockblast/src/logx"
	"blockblast/src/storage/scores"
	"blockblast/ui/gui"
	"blockblast/ui/gui/gbase/gconf"
)

func GetLogger() *logx.Logx {
	l := logx.NewLogx(
		logx.GetLoggerLevelByString("debug"),
		false,
		true,
	)
	l.InitLogger(nil)
	return l
}

// RunGUI starts the browser build; scores live for the page session only.
func RunGUI() error {
	logger := GetLogger()
	cfg, err := gconf.NewGUIConfig(gconf.DefaultFile)
	if err != nil {
		logger.Errorf("error load config: %v", err)
		return err
	}
	store := scores.NewMemoryStore(scores.DefaultCap)
	g := src.NewGame(src.WithLogger(logger), src.WithRecorder(store))
	return gui.NewGUI(g, cfg, store, logger).Run()
}

func main() {
	if err := RunGUI(); err != nil {
		GetLogger().Errorf("error GUI: %v", err)
	}
}
