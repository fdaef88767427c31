package greedy

import (
	"context"
	"fmt"
	"sync"
	"time"

	"blockblast/src/base"
	"blockblast/src/catalog"
	"blockblast/src/engine"
	"blockblast/src/logic/board"
	"blockblast/src/logic/rules"
)

const (
	pointWeight = 10
	holePenalty = 3
)

// Engine searches every ordering of the hand's pieces up to the requested
// depth and keeps the sequence with the best evaluation. Root moves are
// spread over goroutines, each working on its own board clones.
type Engine struct {
	mu       sync.RWMutex
	pos      *engine.Position
	running  bool
	lastInfo engine.AnalysisInfo

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	subsMu    sync.Mutex
	subs      map[int]chan<- engine.AnalysisInfo
	nextSubID int
}

func New() *Engine {
	return &Engine{subs: make(map[int]chan<- engine.AnalysisInfo)}
}

func (e *Engine) SetPosition(p engine.Position) error {
	if p.Board == nil {
		return fmt.Errorf("greedy: position without board")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return fmt.Errorf("greedy: analysis running")
	}
	hand := make([]*catalog.Piece, len(p.Hand))
	copy(hand, p.Hand)
	e.pos = &engine.Position{Board: p.Board, Hand: hand}
	return nil
}

func (e *Engine) StartAnalysis(params engine.SearchParams) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return fmt.Errorf("greedy: analysis already running")
	}
	if e.pos == nil {
		e.mu.Unlock()
		return fmt.Errorf("greedy: position not set")
	}
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if params.MaxTimeMs > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), time.Duration(params.MaxTimeMs)*time.Millisecond)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	e.cancel = cancel
	e.running = true
	e.lastInfo = engine.AnalysisInfo{}
	pos := *e.pos
	e.mu.Unlock()

	e.wg.Add(1)
	go e.searchWorker(ctx, pos, params)
	return nil
}

func (e *Engine) StopAnalysis() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return fmt.Errorf("greedy: not running")
	}
	e.cancel()
	return nil
}

func (e *Engine) BestNow() engine.AnalysisInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	info := e.lastInfo
	info.PV = append([]base.Placement(nil), info.PV...)
	if len(info.PV) > 0 {
		info.BestMove = &info.PV[0]
	}
	return info
}

func (e *Engine) WaitDone() engine.AnalysisInfo {
	e.wg.Wait()
	return e.BestNow()
}

func (e *Engine) Subscribe(ch chan<- engine.AnalysisInfo) (unsubscribe func()) {
	e.subsMu.Lock()
	id := e.nextSubID
	e.nextSubID++
	e.subs[id] = ch
	e.subsMu.Unlock()
	return func() {
		e.subsMu.Lock()
		delete(e.subs, id)
		e.subsMu.Unlock()
	}
}

func (e *Engine) Close() {
	_ = e.StopAnalysis()
	e.wg.Wait()
}

// publish stores the snapshot and offers it to subscribers without blocking.
func (e *Engine) publish(info engine.AnalysisInfo) {
	e.mu.Lock()
	e.lastInfo = info
	e.mu.Unlock()

	e.subsMu.Lock()
	for _, ch := range e.subs {
		select {
		case ch <- info:
		default:
		}
	}
	e.subsMu.Unlock()
}

type line struct {
	eval   int
	points int
	lines  int
	pv     []base.Placement
}

// better orders lines by evaluation, then by the earlier first move so the
// result does not depend on goroutine scheduling.
func better(a, b *line) bool {
	if b == nil {
		return true
	}
	if a.eval != b.eval {
		return a.eval > b.eval
	}
	return placementLess(a.pv, b.pv)
}

func placementLess(a, b []base.Placement) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		pa, pb := a[i], b[i]
		switch {
		case pa.Slot != pb.Slot:
			return pa.Slot < pb.Slot
		case pa.Origin.Y != pb.Origin.Y:
			return pa.Origin.Y < pb.Origin.Y
		case pa.Origin.X != pb.Origin.X:
			return pa.Origin.X < pb.Origin.X
		}
	}
	return len(a) < len(b)
}

type rootMove struct {
	placement base.Placement
	piece     *catalog.Piece
}

func (e *Engine) searchWorker(ctx context.Context, pos engine.Position, params engine.SearchParams) {
	defer e.wg.Done()
	defer func() {
		e.mu.Lock()
		e.cancel()
		e.running = false
		e.mu.Unlock()
	}()

	start := time.Now()
	score := pos.Score
	if score == nil {
		score = engine.DefaultScore
	}
	maxDepth := params.MaxDepth
	pieces := 0
	for _, p := range pos.Hand {
		if p != nil {
			pieces++
		}
	}
	if maxDepth <= 0 || maxDepth > pieces {
		maxDepth = pieces
	}

	roots := make([]rootMove, 0)
	for slot, p := range pos.Hand {
		if p == nil {
			continue
		}
		for _, o := range rules.ComputeFitPositions(pos.Board, p.Shape).Origins() {
			roots = append(roots, rootMove{placement: base.Placement{Slot: slot, Origin: o}, piece: p})
		}
	}
	if len(roots) == 0 {
		e.publish(engine.AnalysisInfo{TimeMs: time.Since(start).Milliseconds()})
		return
	}

	var totalNodes int64
	for depth := 1; depth <= maxDepth; depth++ {
		var (
			mu    sync.Mutex
			best  *line
			nodes int64
			wg    sync.WaitGroup
		)
		for _, rm := range roots {
			wg.Add(1)
			go func(rm rootMove) {
				defer wg.Done()
				var n int64
				b := pos.Board.Clone()
				points, cleared := apply(b, rm.piece, rm.placement.Origin, score)
				used := make([]bool, len(pos.Hand))
				used[rm.placement.Slot] = true
				l := e.search(ctx, b, pos.Hand, used, depth-1, score, &n)
				l.points += points
				l.lines += cleared
				l.eval += points * pointWeight
				l.pv = append([]base.Placement{rm.placement}, l.pv...)

				mu.Lock()
				nodes += n + 1
				if better(&l, best) {
					best = &l
				}
				mu.Unlock()
			}(rm)
		}
		wg.Wait()
		totalNodes += nodes

		if ctx.Err() != nil && depth > 1 {
			// an interrupted depth is incomplete; keep the previous snapshot
			return
		}
		e.publish(engine.AnalysisInfo{
			Depth:  depth,
			TimeMs: time.Since(start).Milliseconds(),
			Nodes:  totalNodes,
			NPS:    computeNPS(totalNodes, time.Since(start)),
			Eval:   best.eval,
			Points: best.points,
			Lines:  best.lines,
			PV:     best.pv,
		})
		if ctx.Err() != nil {
			return
		}
	}
}

// search returns the best continuation on b using the unused hand pieces.
func (e *Engine) search(ctx context.Context, b *board.Board, hand []*catalog.Piece, used []bool, depth int, score func(int, int) int, nodes *int64) line {
	if depth == 0 || ctx.Err() != nil {
		return line{eval: evaluate(b)}
	}
	var best *line
	for slot, p := range hand {
		if p == nil || used[slot] {
			continue
		}
		for _, o := range rules.ComputeFitPositions(b, p.Shape).Origins() {
			(*nodes)++
			nb := b.Clone()
			points, cleared := apply(nb, p, o, score)
			used[slot] = true
			l := e.search(ctx, nb, hand, used, depth-1, score, nodes)
			used[slot] = false
			l.points += points
			l.lines += cleared
			l.eval += points * pointWeight
			l.pv = append([]base.Placement{{Slot: slot, Origin: o}}, l.pv...)
			if better(&l, best) {
				best = &l
			}
		}
	}
	if best == nil {
		// no remaining piece fits: a dead end is worse than any live board
		return line{eval: evaluate(b) - b.Size()*b.Size()*holePenalty}
	}
	return *best
}

func apply(b *board.Board, p *catalog.Piece, o base.Point, score func(int, int) int) (points, cleared int) {
	b.PlacePiece(p.Shape, p.Color, o.X, o.Y, base.Filled)
	cleared = b.BreakLines()
	return score(p.BlockCount(), cleared), cleared
}

// evaluate rewards free space and penalises empty cells boxed in on all four sides.
func evaluate(b *board.Board) int {
	free, holes := 0, 0
	n := b.Size()
	b.ForEach(func(x, y int, c board.Cell) bool {
		if c.State == base.Filled {
			return true
		}
		free++
		boxed := true
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := x+d[0], y+d[1]
			if nx >= 0 && ny >= 0 && nx < n && ny < n && !b.IsFilled(nx, ny) {
				boxed = false
				break
			}
		}
		if boxed {
			holes++
		}
		return true
	})
	return free - holes*holePenalty
}

func computeNPS(nodes int64, dur time.Duration) int64 {
	s := dur.Seconds()
	if s < 1e-6 {
		return nodes
	}
	return int64(float64(nodes) / s)
}
