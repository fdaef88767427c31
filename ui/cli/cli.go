package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"blockblast/src"
	"blockblast/src/base"
	"blockblast/src/engine"
	"blockblast/src/logic/rules"
	"blockblast/src/logx"
	"blockblast/src/storage/scores"

	"golang.org/x/term"
)

type CLIProcessing struct {
	game   *src.Game
	draw   DrawFunc
	scores scores.Store
	logger logx.Logger
	in     io.Reader
	out    io.Writer

	// raw mode cursor
	slot   int
	cursor base.Point
}

func NewCLI(g *src.Game, draw DrawFunc, store scores.Store, logger logx.Logger) *CLIProcessing {
	if logger == nil {
		logger = logx.Nop()
	}
	return &CLIProcessing{game: g, draw: draw, scores: store, logger: logger, in: os.Stdin, out: os.Stdout}
}

// SetIO replaces stdin/stdout; raw mode is only used when in is a terminal.
func (c *CLIProcessing) SetIO(in io.Reader, out io.Writer) {
	c.in, c.out = in, out
}

// Run is the interactive mode:
// - arrow keys move the preview, Tab picks the next piece
// - Enter on an empty line drops the piece under the preview
// - typed commands work as in line mode
// - q or Ctrl+C to exit
func (c *CLIProcessing) Run() error {
	f, ok := c.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return c.RunLineMode()
	}
	fd := int(f.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return c.RunLineMode()
	}
	defer term.Restore(fd, oldState) //nolint:errcheck

	// raw mode needs explicit carriage returns
	out := c.out
	c.out = crlfWriter{out}
	defer func() { c.out = out }()

	r := bufio.NewReader(f)
	var inputBuf strings.Builder

	c.nextSlot(0)
	c.hoverCursor()
	fmt.Fprint(c.out, "\nArrows move the piece, Tab switches piece, Enter drops it. Type 'help' for commands.\n")

	for {
		b, err := r.ReadByte()
		if err != nil {
			return err
		}

		if b == 3 { // Ctrl+C
			fmt.Fprintln(c.out, "\nInterrupted")
			return nil
		}
		if b == '\t' {
			c.nextSlot(1)
			c.hoverCursor()
			continue
		}
		if b == 0x1b {
			b1, err := r.ReadByte()
			if err != nil {
				continue
			}
			b2, err := r.ReadByte()
			if err != nil {
				continue
			}
			if b1 == '[' {
				switch b2 {
				case 'A':
					c.moveCursor(0, -1)
				case 'B':
					c.moveCursor(0, 1)
				case 'C':
					c.moveCursor(1, 0)
				case 'D':
					c.moveCursor(-1, 0)
				}
			}
			continue
		}

		if b == '\r' || b == '\n' {
			s := strings.TrimSpace(inputBuf.String())
			inputBuf.Reset()
			if s == "" {
				c.drop(c.slot, c.cursor)
				if c.game.Status() == base.Playing {
					c.nextSlot(0)
					c.hoverCursor()
				}
				continue
			}
			fmt.Fprintln(c.out)
			if quit := c.Exec(s); quit {
				return nil
			}
			continue
		}

		if b == 127 || b == 8 { // backspace
			cur := inputBuf.String()
			if cur != "" {
				inputBuf.Reset()
				inputBuf.WriteString(cur[:len(cur)-1])
				fmt.Fprint(c.out, "\b \b")
			}
			continue
		}
		if b >= 32 && b <= 126 {
			inputBuf.WriteByte(b)
			fmt.Fprintf(c.out, "%c", b)
		}
	}
}

func (c *CLIProcessing) RunLineMode() error {
	scanner := bufio.NewScanner(c.in)
	c.redraw(nil)
	fmt.Fprintln(c.out, "Enter a command, 'help' lists them, 'q' quits.")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := c.Exec(line); quit {
			return nil
		}
	}
	return scanner.Err()
}

// Exec runs one command line and reports whether the loop should stop.
func (c *CLIProcessing) Exec(line string) bool {
	b := c.game.Board()
	cmd, err := ParseCommand(line, b.Size(), len(c.game.Hand()))
	if err != nil {
		fmt.Fprintf(c.out, "%v\n", err)
		return false
	}
	switch cmd.Kind {
	case CmdQuit:
		fmt.Fprintln(c.out, "Quitting")
		return true
	case CmdHelp:
		fmt.Fprintln(c.out, helpText)
	case CmdDrop:
		c.drop(cmd.Slot, cmd.Cell)
	case CmdHover:
		pv, err := c.game.Hover(cmd.Slot, cmd.Cell.X, cmd.Cell.Y)
		if err != nil {
			fmt.Fprintf(c.out, "%v\n", err)
			return false
		}
		c.redraw(nil)
		c.printPreview(pv)
	case CmdClear:
		c.game.ClearHover()
		c.redraw(nil)
	case CmdSpots:
		spots, err := c.game.PossibleSpots(cmd.Slot)
		if err != nil {
			fmt.Fprintf(c.out, "%v\n", err)
			return false
		}
		c.redraw(spots)
		fmt.Fprintf(c.out, "%d spots\n", spots.Count())
	case CmdHint:
		info, err := c.game.Hint(context.Background())
		if err != nil {
			fmt.Fprintf(c.out, "Hint unavailable: %v\n", err)
			return false
		}
		fmt.Fprintln(c.out, formatHint(info))
	case CmdEngine:
		res, err := c.game.EngineMove(context.Background())
		if err != nil {
			fmt.Fprintf(c.out, "Error runtime engine: %v\n", err)
			return false
		}
		c.afterDrop(res)
	case CmdLevel:
		c.game.SetEngineLevel(engine.LevelFromInt(cmd.Level))
		fmt.Fprintf(c.out, "Set level engine %d\n", cmd.Level)
	case CmdMoves:
		fmt.Fprintf(c.out, "Moves: %s\n", c.game.History().MovesAsText())
	case CmdNew:
		mode := c.game.Mode()
		if cmd.HasMode {
			mode = cmd.Mode
		}
		if err := c.game.StartGame(mode); err != nil {
			fmt.Fprintf(c.out, "%v\n", err)
			return false
		}
		c.cursor = base.Point{}
		c.redraw(nil)
	case CmdTop:
		c.printTop(c.game.Mode())
	}
	return false
}

func (c *CLIProcessing) drop(slot int, at base.Point) {
	res, err := c.game.SelectAndDrop(slot, at.X, at.Y)
	if err != nil {
		c.logger.Debugf("rejected drop: %v", err)
		fmt.Fprintf(c.out, "Invalid move: %v\n", err)
		return
	}
	c.afterDrop(res)
}

func (c *CLIProcessing) afterDrop(res src.DropResult) {
	c.redraw(nil)
	fmt.Fprintf(c.out, "Placed %s at %s: +%d", res.Piece.Shape.Name, FormatCell(res.Placement.Origin), res.Points)
	if res.Cleared > 0 {
		fmt.Fprintf(c.out, " (%d lines)", res.Cleared)
	}
	fmt.Fprintln(c.out)
	if res.GameOver {
		fmt.Fprintf(c.out, "Game over! Final score %d. Type 'n' for a new game.\n", c.game.Score())
		c.game.Wait()
		c.printTop(c.game.Mode())
	}
}

func (c *CLIProcessing) printPreview(pv rules.Preview) {
	if !pv.Legal {
		fmt.Fprintln(c.out, "Piece does not fit there")
		return
	}
	fmt.Fprintf(c.out, "Drop would clear %d lines\n", pv.Lines())
}

func (c *CLIProcessing) redraw(spots rules.Spots) {
	c.draw(c.out, c.game.Board(), c.game.Hand(), spots)
	c.printStatus()
}

func (c *CLIProcessing) printStatus() {
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Mode: %s  Score: %d  Placements: %d\n", c.game.Mode(), c.game.Score(), c.game.History().Len())
	fmt.Fprintf(c.out, "Status: %s\n", c.game.Status())
}

func (c *CLIProcessing) printTop(mode base.GameMode) {
	if c.scores == nil {
		return
	}
	top, err := c.scores.Top(context.Background(), mode, scores.DefaultCap)
	if err != nil {
		c.logger.Errorf("load scores: %v", err)
		fmt.Fprintf(c.out, "error load scores: %v\n", err)
		return
	}
	PrintScores(c.out, mode, top, time.Now())
}

// PrintScores writes a numbered high-score table.
func PrintScores(w io.Writer, mode base.GameMode, top []scores.Record, now time.Time) {
	fmt.Fprintf(w, "High scores (%s)\n", mode)
	if len(top) == 0 {
		fmt.Fprintln(w, "  none yet")
		return
	}
	for i, r := range top {
		fmt.Fprintf(w, "%3d. %7d  %3d pieces %3d lines  %s\n", i+1, r.Score, r.Placements, r.Lines, TimeAgo(now.Sub(r.Date)))
	}
}

func formatHint(info engine.AnalysisInfo) string {
	if info.BestMove == nil {
		return "No piece fits"
	}
	parts := make([]string, len(info.PV))
	for i, p := range info.PV {
		parts[i] = fmt.Sprintf("%d %s", p.Slot+1, FormatCell(p.Origin))
	}
	return fmt.Sprintf("Hint: %s (+%d, %d lines, depth %d)", strings.Join(parts, ", "), info.Points, info.Lines, info.Depth)
}

// ---- raw mode cursor ----

func (c *CLIProcessing) nextSlot(step int) {
	hand := c.game.Hand()
	for i := 0; i < len(hand); i++ {
		s := (c.slot + step + i) % len(hand)
		if hand[s] != nil {
			c.slot = s
			return
		}
	}
}

func (c *CLIProcessing) moveCursor(dx, dy int) {
	n := c.game.Board().Size()
	c.cursor.X = min(max(c.cursor.X+dx, 0), n-1)
	c.cursor.Y = min(max(c.cursor.Y+dy, 0), n-1)
	c.hoverCursor()
}

func (c *CLIProcessing) hoverCursor() {
	pv, err := c.game.Hover(c.slot, c.cursor.X, c.cursor.Y)
	if err != nil && !errors.Is(err, src.ErrInvalidMove) {
		c.logger.Warnf("hover: %v", err)
	}
	c.redraw(nil)
	if err == nil {
		fmt.Fprintf(c.out, "Piece %d at %s. ", c.slot+1, FormatCell(c.cursor))
		c.printPreview(pv)
	}
}

type crlfWriter struct {
	w io.Writer
}

func (cw crlfWriter) Write(p []byte) (int, error) {
	if _, err := cw.w.Write([]byte(strings.ReplaceAll(string(p), "\n", "\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
