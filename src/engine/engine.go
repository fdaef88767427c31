package engine

import (
	"fmt"

	"blockblast/src/base"
	"blockblast/src/catalog"
	"blockblast/src/logic/board"
)

type AnalysisInfo struct {
	Depth    int              // placements per searched sequence
	TimeMs   int64            // elapsed time in ms
	Nodes    int64            // positions visited
	NPS      int64            // nodes per second
	Eval     int              // evaluation of the best sequence
	Points   int              // points the best sequence scores
	Lines    int              // lines the best sequence clears
	PV       []base.Placement // best sequence, first move first
	BestMove *base.Placement  // first entry of PV
}

type SearchParams struct {
	MaxDepth  int   // 0 = whole hand
	MaxTimeMs int64 // 0 = no time limit
}

// Position is what the engine searches from. The engine owns the board it is given.
type Position struct {
	Board *board.Board
	Hand  []*catalog.Piece
	Score func(blocks, cleared int) int // nil = DefaultScore
}

// DefaultScore awards the block count plus 10 per cleared line squared.
func DefaultScore(blocks, cleared int) int {
	return blocks + 10*cleared*cleared
}

type LevelAnalyze int

const (
	LevelOne LevelAnalyze = iota
	LevelTwo
	LevelThree
	LevelInvalid
)

func (l LevelAnalyze) String() string {
	if l < LevelOne || l >= LevelInvalid {
		return "invalid"
	}
	return fmt.Sprintf("level %d", int(l)+1)
}

// LevelFromInt maps the user-facing 1..3 onto a level.
func LevelFromInt(n int) LevelAnalyze {
	if n < 1 || n > 3 {
		return LevelInvalid
	}
	return LevelAnalyze(n - 1)
}

// Engine searches placement sequences for the current hand.
type Engine interface {
	SetPosition(p Position) error
	StartAnalysis(params SearchParams) error
	StopAnalysis() error
	BestNow() AnalysisInfo
	WaitDone() AnalysisInfo
	Subscribe(ch chan<- AnalysisInfo) (unsubscribe func())
	Close()
}

func LevelToParams(lvl LevelAnalyze) SearchParams {
	switch lvl {
	case LevelOne:
		return SearchParams{MaxDepth: 1, MaxTimeMs: 500}
	case LevelTwo:
		return SearchParams{MaxDepth: 2, MaxTimeMs: 1500}
	default:
		return SearchParams{MaxDepth: 3, MaxTimeMs: 3000}
	}
}
