package catalog

import (
	"errors"
	"fmt"

	"blockblast/src/base"
)

// Shape is a fixed-orientation occupancy template. Shapes are never
// rotated or mirrored, so every orientation is its own entry.
type Shape struct {
	Name   string
	Matrix [][]bool // Matrix[row][col]
	Weight float64  // selection weight, > 0
}

func (s *Shape) Height() int {
	return len(s.Matrix)
}

func (s *Shape) Width() int {
	if len(s.Matrix) == 0 {
		return 0
	}
	return len(s.Matrix[0])
}

// Occupied reports whether the cell at column x, row y of the bounding box is part of the shape.
func (s *Shape) Occupied(x, y int) bool {
	return s.Matrix[y][x]
}

func (s *Shape) BlockCount() int {
	count := 0
	for _, row := range s.Matrix {
		for _, v := range row {
			if v {
				count++
			}
		}
	}
	return count
}

// Cells returns the occupied offsets relative to the top-left corner.
func (s *Shape) Cells() []base.Point {
	out := make([]base.Point, 0, s.BlockCount())
	for y, row := range s.Matrix {
		for x, v := range row {
			if v {
				out = append(out, base.Point{X: x, Y: y})
			}
		}
	}
	return out
}

func BlockCount(s *Shape) int {
	return s.BlockCount()
}

// Piece is a shape bound to the colour drawn for it when it entered the hand.
type Piece struct {
	Shape *Shape
	Color base.Color
}

func (p *Piece) BlockCount() int {
	return p.Shape.BlockCount()
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s%s", p.Shape.Name, p.Color)
}

// Rand is the random source used for piece generation.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

var (
	ErrEmptyCatalog = errors.New("catalog has no shapes")
	ErrEmptyPalette = errors.New("catalog has no colors")
	ErrBadWeight    = errors.New("shape weight must be positive")
	ErrBadMatrix    = errors.New("shape matrix must be a non-empty rectangle with at least one block")
)

type Catalog struct {
	shapes  []*Shape
	palette []base.Color
	total   float64
}

func New(shapes []*Shape, palette []base.Color) (*Catalog, error) {
	if len(shapes) == 0 {
		return nil, ErrEmptyCatalog
	}
	if len(palette) == 0 {
		return nil, ErrEmptyPalette
	}
	total := 0.0
	for i, s := range shapes {
		if s == nil || !(s.Weight > 0) {
			return nil, fmt.Errorf("shape %d: %w", i, ErrBadWeight)
		}
		if err := checkMatrix(s.Matrix); err != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, s.Name, err)
		}
		total += s.Weight
	}
	return &Catalog{shapes: shapes, palette: palette, total: total}, nil
}

func checkMatrix(m [][]bool) error {
	if len(m) == 0 || len(m[0]) == 0 {
		return ErrBadMatrix
	}
	blocks := 0
	for _, row := range m {
		if len(row) != len(m[0]) {
			return ErrBadMatrix
		}
		for _, v := range row {
			if v {
				blocks++
			}
		}
	}
	if blocks == 0 {
		return ErrBadMatrix
	}
	return nil
}

func (c *Catalog) Shapes() []*Shape {
	return c.shapes
}

func (c *Catalog) Palette() []base.Color {
	return c.palette
}

func (c *Catalog) TotalWeight() float64 {
	return c.total
}

// RandomShape walks the catalog subtracting weights from a uniform draw in
// [0, total) and returns the entry that drives the remainder negative.
func (c *Catalog) RandomShape(rng Rand) *Shape {
	position := rng.Float64() * c.total
	for _, s := range c.shapes {
		position -= s.Weight
		if position < 0 {
			return s
		}
	}
	// float rounding can leave a tiny non-negative remainder
	return c.shapes[len(c.shapes)-1]
}

func (c *Catalog) RandomColor(rng Rand) base.Color {
	return c.palette[rng.IntN(len(c.palette))]
}

func (c *Catalog) RandomPiece(rng Rand) *Piece {
	s := c.RandomShape(rng)
	return &Piece{Shape: s, Color: c.RandomColor(rng)}
}

// Find returns the shape with the given name.
func (c *Catalog) Find(name string) (*Shape, bool) {
	for _, s := range c.shapes {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// ParseMatrix builds a matrix from rows of '#' (block) and '.' (gap).
func ParseMatrix(rows ...string) [][]bool {
	m := make([][]bool, len(rows))
	for y, r := range rows {
		m[y] = make([]bool, len(r))
		for x, ch := range []byte(r) {
			m[y][x] = ch == '#'
		}
	}
	return m
}
