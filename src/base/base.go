package base

import (
	"fmt"
	"image/color"
	"strings"
)

type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

func (c Color) IsZero() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Lighten moves every channel toward white by factor (0..1).
func (c Color) Lighten(factor float64) Color {
	l := func(v uint8) uint8 {
		return uint8(float64(v) + (255-float64(v))*factor)
	}
	return Color{R: l(c.R), G: l(c.G), B: l(c.B)}
}

// Darken scales every channel toward black by factor (0..1).
func (c Color) Darken(factor float64) Color {
	d := func(v uint8) uint8 {
		return uint8(float64(v) * (1 - factor))
	}
	return Color{R: d(c.R), G: d(c.G), B: d(c.B)}
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

type CellState uint8

const (
	Empty CellState = iota
	Hovered
	HoveredBreakFilled
	HoveredBreakEmpty
	Filled
)

func (s CellState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Hovered:
		return "hovered"
	case HoveredBreakFilled:
		return "hovered-break-filled"
	case HoveredBreakEmpty:
		return "hovered-break-empty"
	case Filled:
		return "filled"
	default:
		return fmt.Sprintf("invalid(%d)", uint8(s))
	}
}

func (s CellState) IsValid() bool {
	return s <= Filled
}

// IsHover reports whether the state only exists while a piece is dragged.
func (s CellState) IsHover() bool {
	return s == Hovered || s == HoveredBreakEmpty || s == HoveredBreakFilled
}

func (s CellState) IsBreak() bool {
	return s == HoveredBreakEmpty || s == HoveredBreakFilled
}

type GameStatus uint8

const (
	NotStarted GameStatus = iota
	Playing
	GameOver
)

func (gs GameStatus) String() string {
	switch gs {
	case NotStarted:
		return "not started"
	case Playing:
		return "playing"
	case GameOver:
		return "game over"
	default:
		return "invalid"
	}
}

type GameMode uint8

const (
	Classic GameMode = iota
	Chaos
)

// ModeSettings describes the board and hand dimensions of a mode.
type ModeSettings struct {
	BoardSize int
	HandSize  int
}

func (m GameMode) Settings() ModeSettings {
	switch m {
	case Chaos:
		return ModeSettings{BoardSize: 10, HandSize: 5}
	default:
		return ModeSettings{BoardSize: 8, HandSize: 3}
	}
}

func (m GameMode) String() string {
	switch m {
	case Chaos:
		return "chaos"
	default:
		return "classic"
	}
}

func (m GameMode) IsValid() bool {
	return m == Classic || m == Chaos
}

func GameModeFromString(s string) (GameMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "classic":
		return Classic, nil
	case "chaos":
		return Chaos, nil
	default:
		return Classic, fmt.Errorf("unknown game mode %q", s)
	}
}

func Modes() []GameMode {
	return []GameMode{Classic, Chaos}
}

// Point addresses a board cell: X is the column, Y the row.
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Placement is a committed (or candidate) drop of a hand slot at an origin.
type Placement struct {
	Slot   int
	Origin Point
}
