package cli

import (
	"fmt"
	"strconv"
	"strings"

	"blockblast/src/base"
)

type CommandKind int

const (
	CmdDrop CommandKind = iota
	CmdHover
	CmdClear
	CmdSpots
	CmdHint
	CmdEngine
	CmdLevel
	CmdMoves
	CmdNew
	CmdTop
	CmdHelp
	CmdQuit
)

// Command is one parsed input line. Slot is 0-based, Cell the target origin.
type Command struct {
	Kind  CommandKind
	Slot  int
	Cell  base.Point
	Level int
	Mode  base.GameMode
	// HasMode is set when "new" named a mode
	HasMode bool
}

const helpText = `commands:
  <slot> <cell>     drop a piece, e.g. "1 c4"
  h <slot> <cell>   preview a drop
  c                 clear the preview
  s <slot>          show where a piece fits
  hint              ask the engine, ? plays its move
  level <1-3>       engine strength
  m                 placements so far
  n [mode]          new game (classic or chaos)
  top               high scores
  q                 quit`

func parseSlot(s string, hand int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > hand {
		return 0, fmt.Errorf("slot must be 1..%d, got %q", hand, s)
	}
	return n - 1, nil
}

// ParseCommand reads a line for a board of size and a hand of hand slots.
func ParseCommand(line string, size, hand int) (Command, error) {
	f := strings.Fields(strings.ToLower(line))
	if len(f) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}
	switch f[0] {
	case "q", "quit", "exit":
		return Command{Kind: CmdQuit}, nil
	case "c", "clear":
		return Command{Kind: CmdClear}, nil
	case "hint":
		return Command{Kind: CmdHint}, nil
	case "?":
		return Command{Kind: CmdEngine}, nil
	case "m", "moves":
		return Command{Kind: CmdMoves}, nil
	case "top", "scores":
		return Command{Kind: CmdTop}, nil
	case "help":
		return Command{Kind: CmdHelp}, nil
	case "n", "new":
		cmd := Command{Kind: CmdNew}
		if len(f) > 1 {
			mode, err := base.GameModeFromString(f[1])
			if err != nil {
				return Command{}, err
			}
			cmd.Mode, cmd.HasMode = mode, true
		}
		return cmd, nil
	case "level":
		if len(f) != 2 {
			return Command{}, fmt.Errorf("usage: level <1-3>")
		}
		n, err := strconv.Atoi(f[1])
		if err != nil || n < 1 || n > 3 {
			return Command{}, fmt.Errorf("level must be 1..3, got %q", f[1])
		}
		return Command{Kind: CmdLevel, Level: n}, nil
	case "s", "spots":
		if len(f) != 2 {
			return Command{}, fmt.Errorf("usage: s <slot>")
		}
		slot, err := parseSlot(f[1], hand)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdSpots, Slot: slot}, nil
	case "h", "hover":
		if len(f) != 3 {
			return Command{}, fmt.Errorf("usage: h <slot> <cell>")
		}
		cmd, err := parsePlacement(f[1], f[2], size, hand)
		cmd.Kind = CmdHover
		return cmd, err
	}
	if len(f) == 2 {
		return parsePlacement(f[0], f[1], size, hand)
	}
	return Command{}, fmt.Errorf("unknown command %q", line)
}

func parsePlacement(slotArg, cellArg string, size, hand int) (Command, error) {
	slot, err := parseSlot(slotArg, hand)
	if err != nil {
		return Command{}, err
	}
	cell, err := ParseCell(cellArg, size)
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: CmdDrop, Slot: slot, Cell: cell}, nil
}
