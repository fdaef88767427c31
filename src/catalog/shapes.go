package catalog

import "blockblast/src/base"

var defaultPalette = []base.Color{
	{R: 227, G: 143, B: 16},
	{R: 186, G: 19, B: 38},
	{R: 16, G: 158, B: 40},
	{R: 30, G: 120, B: 255},
	{R: 101, G: 19, B: 148},
	{R: 31, G: 165, B: 222},
}

func shape(name string, weight float64, rows ...string) *Shape {
	return &Shape{Name: name, Matrix: ParseMatrix(rows...), Weight: weight}
}

var defaultShapes = []*Shape{
	// L family
	shape("L1", 2, "#..", "###"),
	shape("L2", 2, "##", "#.", "#."),
	shape("L3", 2, "###", "..#"),
	shape("L4", 2, ".#", ".#", "##"),
	shape("L5", 2, "..#", "###"),
	shape("L6", 2, "#.", "#.", "##"),
	shape("L7", 2, "###", "#.."),
	shape("L8", 2, "##", ".#", ".#"),
	// T family
	shape("T1", 1.5, "###", ".#."),
	shape("T2", 1.5, "#.", "##", "#."),
	shape("T3", 1.5, ".#.", "###"),
	shape("T4", 1.5, ".#", "##", ".#"),
	// S/Z family
	shape("S1", 1, ".##", "##."),
	shape("S2", 1, "#.", "##", ".#"),
	shape("Z1", 1, "##.", ".##"),
	shape("Z2", 1, ".#", "##", "#."),
	// squares
	shape("O3", 3, "###", "###", "###"),
	shape("O2", 6, "##", "##"),
	// bars
	shape("I4V", 2, "#", "#", "#", "#"),
	shape("I4H", 2, "####"),
	shape("I3V", 4, "#", "#", "#"),
	shape("I3H", 4, "###"),
	shape("I2V", 2, "#", "#"),
	shape("I2H", 2, "##"),
}

var defaultCatalog = func() *Catalog {
	c, err := New(defaultShapes, defaultPalette)
	if err != nil {
		panic(err)
	}
	return c
}()

// Default is the catalog shipped with the game.
func Default() *Catalog {
	return defaultCatalog
}
