//go:build js && wasm

// Package browser is the display host of the js/wasm build. It is kept
// apart from package host so the wasm binary does not pull in the
// terminal hosts.
package browser

import "syscall/js"

// Alert displays text with the page's window.alert.
type Alert struct{}

// Display calls window.alert(text). It blocks for as long as the browser
// keeps the dialog open.
func (Alert) Display(text string) {
	js.Global().Call("alert", text)
}
