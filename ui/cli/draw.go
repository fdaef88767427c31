package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"blockblast/src"
	"blockblast/src/base"
	"blockblast/src/catalog"
	"blockblast/src/logic/board"
	"blockblast/src/logic/rules"
)

// DrawFunc renders the board and hand of a game; spots may be nil.
type DrawFunc func(w io.Writer, b *board.Board, hand src.Hand, spots rules.Spots)

const (
	reset  = "\033[0m"
	dimF   = "\033[90m"
	boldF  = "\033[1m"
	emptyC = "\033[48;5;236m"
)

func bg(c base.Color) string {
	return fmt.Sprintf("\033[48;2;%d;%d;%dm", c.R, c.G, c.B)
}

func fg(c base.Color) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", c.R, c.G, c.B)
}

func colLabels(n int) string {
	var sb strings.Builder
	sb.WriteString("   ")
	for x := 0; x < n; x++ {
		sb.WriteString(fmt.Sprintf(" %c", 'a'+x))
	}
	return sb.String()
}

// PrintANSI draws the board with 24-bit terminal colours. Rows are numbered
// from 1 at the top, columns lettered from a.
func PrintANSI(w io.Writer, b *board.Board, hand src.Hand, spots rules.Spots) {
	n := b.Size()
	fmt.Fprintln(w)
	fmt.Fprintln(w, colLabels(n))
	for y := 0; y < n; y++ {
		fmt.Fprintf(w, "%2d ", y+1)
		for x := 0; x < n; x++ {
			c := b.At(x, y)
			switch c.State {
			case base.Filled:
				fmt.Fprintf(w, "%s  %s", bg(c.Color), reset)
			case base.Hovered:
				fmt.Fprintf(w, "%s%s▒▒%s", emptyC, fg(c.Color), reset)
			case base.HoveredBreakFilled:
				fmt.Fprintf(w, "%s%s**%s", bg(c.HoveredBreakColor.Lighten(0.35)), boldF, reset)
			case base.HoveredBreakEmpty:
				fmt.Fprintf(w, "%s%s░░%s", emptyC, fg(c.HoveredBreakColor), reset)
			default:
				if spots.At(x, y) {
					fmt.Fprintf(w, "%s%s<>%s", emptyC, dimF, reset)
				} else {
					fmt.Fprintf(w, "%s%s· %s", emptyC, dimF, reset)
				}
			}
		}
		fmt.Fprintf(w, " %d\n", y+1)
	}
	fmt.Fprintln(w, colLabels(n))
	fmt.Fprintln(w)
	printHand(w, hand, func(p *catalog.Piece) string { return bg(p.Color) + "  " + reset })
}

// PrintPlain draws the board with the rune set of board.String, for dumb
// terminals and logs.
func PrintPlain(w io.Writer, b *board.Board, hand src.Hand, spots rules.Spots) {
	n := b.Size()
	fmt.Fprintln(w, colLabels(n))
	for y := 0; y < n; y++ {
		fmt.Fprintf(w, "%2d ", y+1)
		for x := 0; x < n; x++ {
			r := board.StateRune(b.State(x, y))
			if r == '.' && spots.At(x, y) {
				r = 'x'
			}
			fmt.Fprintf(w, " %c", r)
		}
		fmt.Fprintln(w)
	}
	printHand(w, hand, func(*catalog.Piece) string { return "##" })
}

// printHand lays the pieces out side by side under their slot numbers.
func printHand(w io.Writer, hand src.Hand, block func(p *catalog.Piece) string) {
	height := 0
	for _, p := range hand {
		if p != nil && p.Shape.Height() > height {
			height = p.Shape.Height()
		}
	}
	const slotWidth = 10
	var head strings.Builder
	for i, p := range hand {
		label := fmt.Sprintf("[%d] -", i+1)
		if p != nil {
			label = fmt.Sprintf("[%d] %s", i+1, p.Shape.Name)
		}
		head.WriteString(label + strings.Repeat(" ", max(1, slotWidth-len(label))))
	}
	fmt.Fprintln(w, strings.TrimRight(head.String(), " "))
	for y := 0; y < height; y++ {
		var line strings.Builder
		for _, p := range hand {
			used := 0
			if p != nil && y < p.Shape.Height() {
				for x := 0; x < p.Shape.Width(); x++ {
					if p.Shape.Occupied(x, y) {
						line.WriteString(block(p))
					} else {
						line.WriteString("  ")
					}
					used += 2
				}
			}
			line.WriteString(strings.Repeat(" ", slotWidth-used))
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}

// ParseCell reads a cell in "c4" notation: column letter, 1-based row.
func ParseCell(s string, size int) (base.Point, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 || s[0] < 'a' || s[0] > 'z' {
		return base.Point{}, fmt.Errorf("bad cell %q", s)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return base.Point{}, fmt.Errorf("bad cell %q: %w", s, err)
	}
	p := base.Point{X: int(s[0] - 'a'), Y: row - 1}
	if p.X >= size || p.Y < 0 || p.Y >= size {
		return base.Point{}, fmt.Errorf("cell %q outside the %dx%d board", s, size, size)
	}
	return p, nil
}

// FormatCell is the inverse of ParseCell.
func FormatCell(p base.Point) string {
	return fmt.Sprintf("%c%d", 'a'+p.X, p.Y+1)
}

// TimeAgo renders d as a short human age, e.g. "5m ago".
func TimeAgo(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	case d < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(d.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(d.Hours()/(24*365)))
	}
}
