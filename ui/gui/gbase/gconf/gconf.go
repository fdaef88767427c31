package gconf

import (
	"encoding/json"
	"fmt"

	"blockblast/src/base"
	"blockblast/ui/gui/gbase/gos"
)

const DefaultFile = "blockblast.json"

type Config struct {
	Theme     string `json:"theme"`      // light/dark
	Mode      string `json:"mode"`       // classic/chaos
	HintLevel int    `json:"hint_level"` // 1..3
	WindowH   int    `json:"window_h"`   //
	WindowW   int    `json:"window_w"`   //
	Debug     bool   `json:"debug"`      // true/false

	path string
}

func defaultConfig() Config {
	return Config{
		Theme:     "dark",
		Mode:      base.Classic.String(),
		HintLevel: 2,
		WindowH:   760,
		WindowW:   560,
		Debug:     false,
	}
}

// NewGUIConfig reads path, falling back to defaults when it does not exist.
func NewGUIConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}
	_, err := gos.Stat(path)
	if gos.IsNotExist(err) {
		def := defaultConfig()
		def.path = path
		return &def, nil
	} else if err != nil {
		return nil, err
	}

	conf, err := gos.Open(path)
	if err != nil {
		return nil, err
	}
	defer conf.Close()

	dec := json.NewDecoder(conf)
	var c Config
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("error decode config: %w", err)
	}
	correctableConfig(&c)
	c.path = path

	return &c, nil
}

func (c *Config) Save() error {
	jsonData, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}
	return gos.WriteFile(c.Path(), jsonData, 0644)
}

func (c *Config) Path() string {
	if c.path == "" {
		return DefaultFile
	}
	return c.path
}

// GameMode returns the configured mode; correctableConfig guarantees it parses.
func (c *Config) GameMode() base.GameMode {
	m, _ := base.GameModeFromString(c.Mode)
	return m
}

func correctableConfig(c *Config) {
	def := defaultConfig()
	if c.Theme != "light" && c.Theme != "dark" {
		c.Theme = def.Theme
	}
	if _, err := base.GameModeFromString(c.Mode); err != nil || c.Mode == "" {
		c.Mode = def.Mode
	}
	if c.HintLevel < 1 || c.HintLevel > 3 {
		c.HintLevel = def.HintLevel
	}
	if c.WindowH < def.WindowH || c.WindowW < def.WindowW {
		c.WindowH = def.WindowH
		c.WindowW = def.WindowW
	}
}
