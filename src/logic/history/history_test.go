package history

import (
	"testing"
	"time"

	"blockblast/src/base"
	"blockblast/src/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func piece(t *testing.T, name string) *catalog.Piece {
	t.Helper()
	s, ok := catalog.Default().Find(name)
	require.True(t, ok)
	return &catalog.Piece{Shape: s, Color: base.Color{R: 1, G: 2, B: 3}}
}

func TestPushMoveAndText(t *testing.T) {
	h := NewHistory()
	assert.Equal(t, "", h.MovesAsText())
	_, ok := h.Last()
	assert.False(t, ok)

	h.PushMove(base.Placement{Slot: 0, Origin: base.Point{X: 0, Y: 0}}, piece(t, "I3V"), 0, 3, false)
	h.PushMove(base.Placement{Slot: 2, Origin: base.Point{X: 4, Y: 4}}, piece(t, "O2"), 2, 44, true)

	require.Equal(t, 2, h.Len())
	last, ok := h.Last()
	require.True(t, ok)
	assert.Equal(t, "O2", last.Shape)
	assert.Equal(t, 4, last.Blocks)
	assert.True(t, last.Refilled)
	assert.Equal(t, 2, h.Lines())
	assert.Equal(t, "1. I3V@(0,0) 2. O2@(4,4) x2", h.MovesAsText())
}

func TestMovesReturnsCopy(t *testing.T) {
	h := NewHistory()
	h.PushMove(base.Placement{}, piece(t, "I2H"), 0, 2, false)
	m := h.Moves()
	m[0].Shape = "changed"
	assert.Equal(t, "I2H", h.Moves()[0].Shape)
}

func TestResetKeepsInfo(t *testing.T) {
	h := NewHistory()
	h.PushMove(base.Placement{}, piece(t, "I2H"), 0, 2, false)
	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	h.Reset(base.Chaos, started)

	assert.Equal(t, 0, h.Len())
	assert.Equal(t, "chaos", h.InfoGame().GetMode())
	assert.Equal(t, "2024-05-01T12:00:00Z", h.InfoGame().GetStarted())
	h.InfoGame().SetResult("120")
	assert.Equal(t, "120", h.InfoGame().Headers()[InfoHeaderResult])
}
