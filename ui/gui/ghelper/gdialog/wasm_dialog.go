//go:build js && wasm
// +build js,wasm

package gdialog

import (
	"errors"
	"fmt"
	"syscall/js"
)

var ErrCancelled = errors.New("cancelled")

// AskPlayAgain uses window.confirm in the browser.
func AskPlayAgain(score int, best bool) bool {
	msg := fmt.Sprintf("Game over! Your score: %d.", score)
	if best {
		msg += "\nNew high score!"
	}
	return js.Global().Call("confirm", msg+"\n\nPlay again?").Bool()
}

// SavePNGPath is unavailable in the browser sandbox.
func SavePNGPath(title string) (string, error) {
	return "", errors.New("saving files is not supported in the browser")
}

func ShowError(title string, err error) {
	js.Global().Call("alert", title+": "+err.Error())
}
