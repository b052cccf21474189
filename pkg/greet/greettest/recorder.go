// Package greettest provides a recording greet.Display for tests.
package greettest

import "sync"

// Recorder records every text it is asked to display.
type Recorder struct {
	mu    sync.Mutex
	calls []string
}

// Display records text.
func (r *Recorder) Display(text string) {
	r.mu.Lock()
	r.calls = append(r.calls, text)
	r.mu.Unlock()
}

// Calls returns a copy of the recorded texts in call order.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}
