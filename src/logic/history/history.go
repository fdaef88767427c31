package history

import (
	"fmt"
	"strings"
	"time"

	"blockblast/src/base"
	"blockblast/src/catalog"
)

// History is an append-only log of committed placements for one game.
// There is no undo; the log exists for statistics and the text dump.
type History struct {
	info  *InfoGame
	moves []MoveEntry
}

type MoveEntry struct {
	Placement base.Placement
	Shape     string
	Color     base.Color
	Blocks    int
	Cleared   int // rows+cols as returned by the line clear
	Points    int
	Refilled  bool // hand was refilled after this drop
}

func NewHistory() *History {
	return &History{moves: make([]MoveEntry, 0), info: NewInfoGame()}
}

func (h *History) Len() int { return len(h.moves) }

func (h *History) Moves() []MoveEntry {
	out := make([]MoveEntry, len(h.moves))
	copy(out, h.moves)
	return out
}

func (h *History) Last() (MoveEntry, bool) {
	if len(h.moves) == 0 {
		return MoveEntry{}, false
	}
	return h.moves[len(h.moves)-1], true
}

// PushMove records a committed piece.
func (h *History) PushMove(pl base.Placement, p *catalog.Piece, cleared, points int, refilled bool) {
	h.moves = append(h.moves, MoveEntry{
		Placement: pl,
		Shape:     p.Shape.Name,
		Color:     p.Color,
		Blocks:    p.BlockCount(),
		Cleared:   cleared,
		Points:    points,
		Refilled:  refilled,
	})
}

// Lines sums the cleared-line counts of all moves.
func (h *History) Lines() int {
	n := 0
	for _, m := range h.moves {
		n += m.Cleared
	}
	return n
}

// Reset empties the log and starts a new info block.
func (h *History) Reset(mode base.GameMode, started time.Time) {
	h.moves = h.moves[:0]
	h.info = NewInfoGame()
	h.info.SetMode(mode)
	h.info.SetStarted(started)
}

// MovesAsText renders the log, e.g. "1. I3V@(0,0) 2. O2@(4,4) x2".
func (h *History) MovesAsText() string {
	if h == nil || len(h.moves) == 0 {
		return ""
	}
	var b strings.Builder
	for i, m := range h.moves {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(fmt.Sprintf("%d. %s@%s", i+1, m.Shape, m.Placement.Origin))
		if m.Cleared > 0 {
			b.WriteString(fmt.Sprintf(" x%d", m.Cleared))
		}
	}
	return b.String()
}

func (h *History) InfoGame() *InfoGame {
	return h.info
}
