package catalog

import (
	"math/rand/v2"
	"testing"

	"blockblast/src/base"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand returns the queued values in order.
type fixedRand struct {
	floats []float64
	ints   []int
}

func (r *fixedRand) Float64() float64 {
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *fixedRand) IntN(n int) int {
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	assert.Len(t, c.Shapes(), 24)
	assert.Len(t, c.Palette(), 6)
	assert.InDelta(t, 51.0, c.TotalWeight(), 1e-9)
	for _, s := range c.Shapes() {
		assert.Greater(t, s.Weight, 0.0, s.Name)
		assert.Greater(t, s.BlockCount(), 0, s.Name)
	}
}

func TestBlockCount(t *testing.T) {
	tests := []struct {
		name  string
		rows  []string
		count int
	}{
		{"bar", []string{"###"}, 3},
		{"square", []string{"##", "##"}, 4},
		{"big square", []string{"###", "###", "###"}, 9},
		{"ell", []string{"#..", "###"}, 4},
		{"zig", []string{".##", "##."}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Shape{Name: tt.name, Matrix: ParseMatrix(tt.rows...), Weight: 1}
			assert.Equal(t, tt.count, s.BlockCount())
			assert.Equal(t, tt.count, BlockCount(s))
			assert.Len(t, s.Cells(), tt.count)
		})
	}
}

func TestRandomShapeWalksWeightsInOrder(t *testing.T) {
	c := Default()
	total := c.TotalWeight()

	tests := []struct {
		position float64
		want     string
	}{
		{0, "L1"},
		{1.0, "L1"},
		{3.0, "L2"},
		{15.5, "L8"},
		{16.5, "T1"},
		{50.5, "I2H"},
	}
	for _, tt := range tests {
		r := &fixedRand{floats: []float64{tt.position / total}}
		assert.Equal(t, tt.want, c.RandomShape(r).Name, "position %v", tt.position)
	}
}

func TestRandomPieceAttachesPaletteColor(t *testing.T) {
	c := Default()
	r := &fixedRand{floats: []float64{0}, ints: []int{3}}
	p := c.RandomPiece(r)
	assert.Equal(t, "L1", p.Shape.Name)
	assert.Equal(t, base.Color{R: 30, G: 120, B: 255}, p.Color)
	assert.Equal(t, 4, p.BlockCount())
}

func TestRandomShapeFrequencyConverges(t *testing.T) {
	c := Default()
	rng := rand.New(rand.NewPCG(7, 11))
	const draws = 200000

	counts := make(map[string]int)
	for i := 0; i < draws; i++ {
		counts[c.RandomShape(rng).Name]++
	}
	for _, s := range c.Shapes() {
		want := s.Weight / c.TotalWeight()
		got := float64(counts[s.Name]) / draws
		assert.InDelta(t, want, got, 0.01, s.Name)
	}
}

func TestNewValidates(t *testing.T) {
	palette := []base.Color{{R: 1}}
	good := &Shape{Name: "x", Matrix: ParseMatrix("#"), Weight: 1}

	_, err := New(nil, palette)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = New([]*Shape{good}, nil)
	assert.ErrorIs(t, err, ErrEmptyPalette)

	_, err = New([]*Shape{{Name: "zero", Matrix: ParseMatrix("#"), Weight: 0}}, palette)
	assert.ErrorIs(t, err, ErrBadWeight)

	_, err = New([]*Shape{{Name: "neg", Matrix: ParseMatrix("#"), Weight: -2}}, palette)
	assert.ErrorIs(t, err, ErrBadWeight)

	_, err = New([]*Shape{{Name: "ragged", Matrix: ParseMatrix("##", "#"), Weight: 1}}, palette)
	assert.ErrorIs(t, err, ErrBadMatrix)

	_, err = New([]*Shape{{Name: "blank", Matrix: ParseMatrix("..", ".."), Weight: 1}}, palette)
	assert.ErrorIs(t, err, ErrBadMatrix)

	c, err := New([]*Shape{good}, palette)
	require.NoError(t, err)
	s, ok := c.Find("x")
	require.True(t, ok)
	assert.Same(t, good, s)
}
