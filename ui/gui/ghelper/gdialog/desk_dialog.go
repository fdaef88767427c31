//go:build !js && !wasm
// +build !js,!wasm

package gdialog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sqweek/dialog"
)

// ErrCancelled is returned when the user closes a file dialog.
var ErrCancelled = dialog.ErrCancelled

// AskPlayAgain shows the game-over prompt.
func AskPlayAgain(score int, best bool) bool {
	msg := fmt.Sprintf("Game over! Your score: %d.", score)
	if best {
		msg += "\nNew high score!"
	}
	return dialog.Message("%s\n\nPlay again?", msg).Title("Block Blast").YesNo()
}

// SavePNGPath asks where to store a board snapshot.
func SavePNGPath(title string) (string, error) {
	path, err := dialog.File().Filter("PNG image", "png").Title(title).Save()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			return "", ErrCancelled
		}
		return "", err
	}
	if !strings.HasSuffix(strings.ToLower(path), ".png") {
		path += ".png"
	}
	return path, nil
}

func ShowError(title string, err error) {
	dialog.Message("%v", err).Title(title).Error()
}
