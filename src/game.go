package src

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"blockblast/src/base"
	"blockblast/src/catalog"
	"blockblast/src/engine"
	"blockblast/src/logic/board"
	"blockblast/src/logic/history"
	"blockblast/src/logic/rules"
	"blockblast/src/logx"
	"blockblast/src/storage/scores"
)

var (
	ErrInvalidMove    = errors.New("invalid move")
	ErrGameOver       = fmt.Errorf("%w: game is over", ErrInvalidMove)
	ErrSlotOutOfRange = fmt.Errorf("%w: slot out of range", ErrInvalidMove)
	ErrEmptySlot      = fmt.Errorf("%w: slot is empty", ErrInvalidMove)
	ErrNoFit          = fmt.Errorf("%w: piece does not fit", ErrInvalidMove)

	ErrNotStarted = errors.New("game not started")
	ErrNoEngine   = errors.New("engine not set")
)

const recordTimeout = 5 * time.Second

// Hand holds the pieces available to the player; nil marks an empty slot.
type Hand []*catalog.Piece

func (h Hand) Count() int {
	n := 0
	for _, p := range h {
		if p != nil {
			n++
		}
	}
	return n
}

func (h Hand) IsEmpty() bool {
	return h.Count() == 0
}

// Scorer turns a committed drop into points. cleared is the value returned
// by board.BreakLines.
type Scorer func(blocks, cleared int) int

func DefaultScorer(blocks, cleared int) int {
	return engine.DefaultScore(blocks, cleared)
}

type DropResult struct {
	Placement base.Placement
	Piece     *catalog.Piece
	Cleared   int
	Points    int
	Refilled  bool
	GameOver  bool
}

type Option func(*Game)

func WithRand(rng catalog.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

func WithSeed(seed uint64) Option {
	return func(g *Game) {
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		g.seed = fmt.Sprint(seed)
	}
}

func WithLogger(l logx.Logger) Option {
	return func(g *Game) { g.logger = l }
}

func WithCatalog(c *catalog.Catalog) Option {
	return func(g *Game) { g.catalog = c }
}

func WithScorer(s Scorer) Option {
	return func(g *Game) { g.scorer = s }
}

// WithRecorder sets where finished games are reported.
func WithRecorder(s scores.Store) Option {
	return func(g *Game) { g.recorder = s }
}

// WithDecoration toggles the random colours painted on a fresh board.
func WithDecoration(on bool) Option {
	return func(g *Game) { g.decorate = on }
}

// Game owns one board, one hand and the score of a round. It is not safe
// for concurrent use; only score recording and engine search leave the
// caller's goroutine.
type Game struct {
	board   *board.Board
	hand    Hand
	score   int
	status  base.GameStatus
	mode    base.GameMode
	history *history.History

	catalog  *catalog.Catalog
	rng      catalog.Rand
	seed     string
	scorer   Scorer
	recorder scores.Store
	decorate bool
	logger   logx.Logger

	level  engine.LevelAnalyze
	engine engine.Engine

	pending sync.WaitGroup
}

func NewGame(opts ...Option) *Game {
	g := &Game{
		status:   base.NotStarted,
		history:  history.NewHistory(),
		catalog:  catalog.Default(),
		scorer:   DefaultScorer,
		decorate: true,
		level:    engine.LevelInvalid,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if g.logger == nil {
		g.logger = logx.Nop()
	}
	return g
}

// StartGame resets the round with the board and hand size of mode.
func (g *Game) StartGame(mode base.GameMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("start game: invalid mode %d", mode)
	}
	st := mode.Settings()
	g.mode = mode
	return g.start(st.BoardSize, st.HandSize)
}

// StartGameSized resets the round with explicit dimensions, keeping the current mode label.
func (g *Game) StartGameSized(boardSize, handSize int) error {
	if boardSize <= 0 || handSize <= 0 {
		return fmt.Errorf("start game: invalid size %dx%d, hand %d", boardSize, boardSize, handSize)
	}
	return g.start(boardSize, handSize)
}

func (g *Game) start(boardSize, handSize int) error {
	g.logger.Debugf("start %v game: board %d, hand %d", g.mode, boardSize, handSize)
	var decorate func(x, y int) base.Color
	if g.decorate {
		decorate = func(_, _ int) base.Color { return g.catalog.RandomColor(g.rng) }
	}
	g.board = board.NewBoard(boardSize, decorate)
	g.hand = make(Hand, handSize)
	g.score = 0
	g.status = base.Playing
	g.history.Reset(g.mode, time.Now())
	if g.seed != "" {
		g.history.InfoGame().SetSeed(g.seed)
	}
	g.refill()
	if !rules.CanAnyPieceFit(g.board, g.hand) {
		g.finish()
	}
	return nil
}

func (g *Game) refill() {
	for i := range g.hand {
		g.hand[i] = g.catalog.RandomPiece(g.rng)
	}
	g.logger.Debugf("hand dealt: %v", []*catalog.Piece(g.hand))
}

func (g *Game) piece(slot int) (*catalog.Piece, error) {
	switch {
	case g.status == base.NotStarted:
		return nil, ErrNotStarted
	case g.status == base.GameOver:
		return nil, ErrGameOver
	case slot < 0 || slot >= len(g.hand):
		return nil, fmt.Errorf("slot %d: %w", slot, ErrSlotOutOfRange)
	case g.hand[slot] == nil:
		return nil, fmt.Errorf("slot %d: %w", slot, ErrEmptySlot)
	}
	return g.hand[slot], nil
}

// SelectAndDrop commits the piece in slot with its top-left corner at (x, y).
// A rejected move leaves board, hand and score untouched.
func (g *Game) SelectAndDrop(slot, x, y int) (DropResult, error) {
	p, err := g.piece(slot)
	if err != nil {
		return DropResult{}, err
	}
	// a rejected drop keeps the current preview
	if !rules.CanPlace(g.board, p.Shape, x, y) {
		return DropResult{}, fmt.Errorf("%s at (%d,%d): %w", p.Shape.Name, x, y, ErrNoFit)
	}

	g.board.ClearHoverBlocks()
	g.board.PlacePiece(p.Shape, p.Color, x, y, base.Filled)
	g.hand[slot] = nil

	res := DropResult{
		Placement: base.Placement{Slot: slot, Origin: base.Point{X: x, Y: y}},
		Piece:     p,
	}
	res.Cleared = g.board.BreakLines()
	res.Points = g.scorer(p.BlockCount(), res.Cleared)
	g.score += res.Points
	g.logger.Infof("drop %s at (%d,%d): cleared %d, +%d", p.Shape.Name, x, y, res.Cleared, res.Points)

	if g.hand.IsEmpty() {
		g.refill()
		res.Refilled = true
	}
	g.history.PushMove(res.Placement, p, res.Cleared, res.Points, res.Refilled)

	if !rules.CanAnyPieceFit(g.board, g.hand) {
		g.finish()
		res.GameOver = true
	}
	return res, nil
}

// finish moves to the terminal state and reports the result without waiting for the store.
func (g *Game) finish() {
	g.status = base.GameOver
	g.history.InfoGame().SetResult(fmt.Sprint(g.score))
	g.logger.Infof("game over: %v score %d after %d placements", g.mode, g.score, g.history.Len())
	if g.recorder == nil {
		return
	}
	rec := scores.NewRecord(g.mode, g.score, g.history.Len(), g.history.Lines())
	store, logger := g.recorder, g.logger
	g.pending.Add(1)
	go func() {
		defer g.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := store.Append(ctx, rec); err != nil {
			logger.Errorf("record score: %v", err)
		}
	}()
}

// Wait blocks until every score report handed off by the game has finished.
func (g *Game) Wait() {
	g.pending.Wait()
}

// Hover replaces the current overlay with a preview of slot at (x, y).
// Invalid origins still produce a visual overlay; Preview.Legal tells them apart.
func (g *Game) Hover(slot, x, y int) (rules.Preview, error) {
	p, err := g.piece(slot)
	if err != nil {
		return rules.Preview{}, err
	}
	g.board.ClearHoverBlocks()
	return rules.UpdateHoverPreview(g.board, p, x, y), nil
}

func (g *Game) ClearHover() {
	if g.board != nil {
		g.board.ClearHoverBlocks()
	}
}

func (g *Game) PossibleSpots(slot int) (rules.Spots, error) {
	p, err := g.piece(slot)
	if err != nil {
		return nil, err
	}
	return rules.ComputeFitPositions(g.board, p.Shape), nil
}

func (g *Game) Board() *board.Board {
	return g.board
}

// Hand returns a copy of the slots.
func (g *Game) Hand() Hand {
	out := make(Hand, len(g.hand))
	copy(out, g.hand)
	return out
}

func (g *Game) Score() int {
	return g.score
}

func (g *Game) Status() base.GameStatus {
	return g.status
}

func (g *Game) Mode() base.GameMode {
	return g.mode
}

func (g *Game) History() *history.History {
	return g.history
}

// ---- Engine ----

func (g *Game) SetEngineWorker(e engine.Engine) {
	g.engine = e
	if g.level == engine.LevelInvalid {
		g.level = engine.LevelTwo
	}
}

func (g *Game) SetEngineLevel(lvl engine.LevelAnalyze) {
	g.logger.Debugf("set level engine: %v", lvl)
	g.level = lvl
}

func (g *Game) EngineLevel() engine.LevelAnalyze {
	return g.level
}

// Hint runs the engine on a copy of the current position.
func (g *Game) Hint(ctx context.Context) (engine.AnalysisInfo, error) {
	if g.engine == nil || g.level == engine.LevelInvalid {
		return engine.AnalysisInfo{}, ErrNoEngine
	}
	if g.status != base.Playing {
		if g.status == base.GameOver {
			return engine.AnalysisInfo{}, ErrGameOver
		}
		return engine.AnalysisInfo{}, ErrNotStarted
	}

	pos := engine.Position{Board: g.board.Clone(), Hand: g.Hand(), Score: g.scorer}
	pos.Board.ClearHoverBlocks()
	if err := g.engine.SetPosition(pos); err != nil {
		return engine.AnalysisInfo{}, err
	}
	if err := g.engine.StartAnalysis(engine.LevelToParams(g.level)); err != nil {
		return engine.AnalysisInfo{}, err
	}

	done := make(chan engine.AnalysisInfo, 1)
	go func() { done <- g.engine.WaitDone() }()
	select {
	case info := <-done:
		return info, nil
	case <-ctx.Done():
		_ = g.engine.StopAnalysis()
		<-done
		return engine.AnalysisInfo{}, ctx.Err()
	}
}

// EngineMove plays the first placement the engine suggests.
func (g *Game) EngineMove(ctx context.Context) (DropResult, error) {
	info, err := g.Hint(ctx)
	if err != nil {
		return DropResult{}, err
	}
	if info.BestMove == nil {
		return DropResult{}, ErrNoFit
	}
	mv := *info.BestMove
	g.logger.Infof("best engine move: slot %d at %v", mv.Slot, mv.Origin)
	return g.SelectAndDrop(mv.Slot, mv.Origin.X, mv.Origin.Y)
}
