// Package greet formats a greeting and hands it to a display capability
// supplied by the host environment.
//
// The package holds no state. Greet may be called concurrently as long as
// the Display it is given tolerates concurrent calls.
package greet

const (
	prefix = "Hi, "
	suffix = "!!!"
)

// Display presents text to the user. Hosts decide what presenting means:
// a modal dialog, a line on a terminal, an alert in a browser tab.
type Display interface {
	Display(text string)
}

// DisplayFunc adapts an ordinary function to the Display interface.
type DisplayFunc func(text string)

// Display calls f(text).
func (f DisplayFunc) Display(text string) {
	f(text)
}

// Message returns the greeting for name. The name is substituted as-is,
// with no trimming or escaping.
func Message(name string) string {
	return prefix + name + suffix
}

// Greet displays the greeting for name exactly once.
// Failures inside d belong to the host and are not observed here.
func Greet(name string, d Display) {
	d.Display(Message(name))
}
