//go:build js && wasm
// +build js,wasm

package gclipboard

import (
	"errors"
	"syscall/js"
)

// WriteAll tries navigator.clipboard first, then a hidden textarea with
// execCommand("copy").
func WriteAll(text string) error {
	global := js.Global()
	nav := global.Get("navigator")
	if nav.Truthy() && nav.Get("clipboard").Truthy() && nav.Get("clipboard").Get("writeText").Truthy() {
		ch := make(chan error, 1)
		then := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			ch <- nil
			return nil
		})
		catch := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			msg := "clipboard write rejected"
			if len(args) > 0 {
				msg = args[0].String()
			}
			ch <- errors.New(msg)
			return nil
		})
		defer then.Release()
		defer catch.Release()
		nav.Get("clipboard").Call("writeText", text).Call("then", then).Call("catch", catch)
		return <-ch
	}

	doc := global.Get("document")
	if !doc.Truthy() || !doc.Get("body").Truthy() {
		return errors.New("clipboard write not available")
	}
	ta := doc.Call("createElement", "textarea")
	ta.Get("style").Set("position", "fixed")
	ta.Get("style").Set("left", "-10000px")
	ta.Set("value", text)
	body := doc.Get("body")
	body.Call("appendChild", ta)
	ta.Call("select")
	ok := doc.Call("execCommand", "copy").Bool()
	body.Call("removeChild", ta)
	if !ok {
		return errors.New("fallback copy failed")
	}
	return nil
}
