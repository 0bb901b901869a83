package tui

import tea "github.com/charmbracelet/bubbletea"

// dispatchMsg carries a function to run inside Update.
type dispatchMsg struct {
	fn func()
}

// Dispatcher runs functions on the Bubble Tea update loop, the goroutine
// that owns the Indicator. Post blocks until the program accepts the
// message, so calls from one goroutine keep their order. Once the program
// has exited, posted functions are dropped. Post must not be called from
// inside Update.
type Dispatcher struct {
	program *tea.Program
}

// NewDispatcher returns a Dispatcher for p.
func NewDispatcher(p *tea.Program) *Dispatcher {
	return &Dispatcher{program: p}
}

func (d *Dispatcher) Post(fn func()) {
	d.program.Send(dispatchMsg{fn: fn})
}
