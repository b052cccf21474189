//go:build js && wasm

// Command greeter-wasm is the browser build of greeter. It exports a global
// greet(name) function that shows the greeting with window.alert.
//
//	GOOS=js GOARCH=wasm go build -o web/greeter.wasm ./cmd/greeter-wasm
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" web/
package main

import (
	"syscall/js"

	"github.com/leapstack-labs/greeter/internal/host/browser"
	"github.com/leapstack-labs/greeter/pkg/greet"
)

func main() {
	display := browser.Alert{}

	greetFunc := js.FuncOf(func(_ js.Value, args []js.Value) any {
		name := ""
		if len(args) > 0 {
			name = args[0].String()
		}
		greet.Greet(name, display)
		return nil
	})
	defer greetFunc.Release()

	js.Global().Set("greet", greetFunc)

	// Keep the runtime alive so greet stays callable.
	select {}
}
