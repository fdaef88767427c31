package greedy

import (
	"testing"

	"blockblast/src/base"
	"blockblast/src/catalog"
	"blockblast/src/engine"
	"blockblast/src/logic/board"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gray = base.Color{R: 90, G: 90, B: 90}

func mustParse(t *testing.T, rows ...string) *board.Board {
	t.Helper()
	b, err := board.Parse(gray, rows...)
	require.NoError(t, err)
	return b
}

func piece(t *testing.T, name string) *catalog.Piece {
	t.Helper()
	s, ok := catalog.Default().Find(name)
	require.True(t, ok)
	return &catalog.Piece{Shape: s, Color: gray}
}

func run(t *testing.T, pos engine.Position, depth int) engine.AnalysisInfo {
	t.Helper()
	e := New()
	defer e.Close()
	require.NoError(t, e.SetPosition(pos))
	require.NoError(t, e.StartAnalysis(engine.SearchParams{MaxDepth: depth}))
	return e.WaitDone()
}

func TestPrefersLineClear(t *testing.T) {
	b := mustParse(t,
		"######..",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
	)
	info := run(t, engine.Position{Board: b, Hand: []*catalog.Piece{piece(t, "I2H")}}, 1)

	require.NotNil(t, info.BestMove)
	assert.Equal(t, base.Placement{Slot: 0, Origin: base.Point{X: 6, Y: 0}}, *info.BestMove)
	assert.Equal(t, 1, info.Depth)
	assert.Equal(t, 1, info.Lines)
	assert.Equal(t, 12, info.Points)
}

func TestCustomScore(t *testing.T) {
	b := mustParse(t,
		"######..",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
	)
	pos := engine.Position{
		Board: b,
		Hand:  []*catalog.Piece{piece(t, "I2H")},
		Score: func(blocks, cleared int) int { return blocks + 1000*cleared },
	}
	info := run(t, pos, 1)

	require.NotNil(t, info.BestMove)
	assert.Equal(t, base.Point{X: 6, Y: 0}, info.BestMove.Origin)
	assert.Equal(t, 1002, info.Points)
}

func TestTwoPieceSequence(t *testing.T) {
	b := mustParse(t,
		"####....",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
	)
	hand := []*catalog.Piece{piece(t, "I2H"), nil, piece(t, "I2H")}
	info := run(t, engine.Position{Board: b, Hand: hand}, 0)

	assert.Equal(t, 2, info.Depth)
	require.Len(t, info.PV, 2)
	assert.Equal(t, 1, info.Lines)
	assert.Equal(t, 14, info.Points)
	origins := []base.Point{info.PV[0].Origin, info.PV[1].Origin}
	assert.ElementsMatch(t, []base.Point{{X: 4, Y: 0}, {X: 6, Y: 0}}, origins)
	assert.Equal(t, 0, info.PV[0].Slot)
	assert.Equal(t, 2, info.PV[1].Slot)
}

func TestSearchDoesNotTouchBoard(t *testing.T) {
	b := mustParse(t,
		"##..",
		"....",
		"#...",
		"....",
	)
	before := b.Clone()
	run(t, engine.Position{Board: b, Hand: []*catalog.Piece{piece(t, "O2"), piece(t, "I2V")}}, 2)
	assert.True(t, before.Equal(b))
}

func TestNothingFits(t *testing.T) {
	b := mustParse(t,
		"###",
		"#.#",
		"###",
	)
	info := run(t, engine.Position{Board: b, Hand: []*catalog.Piece{piece(t, "O2"), nil}}, 2)
	assert.Nil(t, info.BestMove)
	assert.Empty(t, info.PV)
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	e := New()
	defer e.Close()
	ch := make(chan engine.AnalysisInfo, 8)
	unsubscribe := e.Subscribe(ch)
	defer unsubscribe()

	require.NoError(t, e.SetPosition(engine.Position{
		Board: board.NewBoard(4, nil),
		Hand:  []*catalog.Piece{piece(t, "I2V")},
	}))
	require.NoError(t, e.StartAnalysis(engine.SearchParams{MaxDepth: 1}))
	final := e.WaitDone()

	require.NotEmpty(t, ch)
	got := <-ch
	assert.Equal(t, final.Depth, got.Depth)
	assert.Equal(t, final.PV, got.PV)
}

func TestStartRequiresPosition(t *testing.T) {
	e := New()
	assert.Error(t, e.StartAnalysis(engine.SearchParams{}))
	assert.Error(t, e.SetPosition(engine.Position{}))
	assert.Error(t, e.StopAnalysis())
}

func TestLevels(t *testing.T) {
	assert.Equal(t, engine.LevelOne, engine.LevelFromInt(1))
	assert.Equal(t, engine.LevelThree, engine.LevelFromInt(3))
	assert.Equal(t, engine.LevelInvalid, engine.LevelFromInt(0))
	assert.Equal(t, 1, engine.LevelToParams(engine.LevelOne).MaxDepth)
	assert.Equal(t, 3, engine.LevelToParams(engine.LevelThree).MaxDepth)
	assert.Equal(t, "level 2", engine.LevelTwo.String())
}
