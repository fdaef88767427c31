package gfont

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

type Fonts struct {
	Normal font.Face
}

// LoadFonts returns the built-in bitmap face; the game ships no font files.
func LoadFonts() *Fonts {
	return &Fonts{Normal: basicfont.Face7x13}
}
