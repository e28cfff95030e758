package calc

import (
	"math/rand"
	"strings"
	"time"
)

const (
	// FarewellMessage is shown when the calculator is switched off.
	FarewellMessage = "Goodbye"

	// DefaultGreetingDelay is how long a greeting stays on screen.
	DefaultGreetingDelay = 1000 * time.Millisecond
	// DefaultFarewellDelay is how long the farewell stays on screen before it blanks.
	DefaultFarewellDelay = 1000 * time.Millisecond
)

var greetings = [...]string{"Hello", "Hola", "Bonjour", "Kamusta", "Ciao", "Hallo"}

// Greetings returns a copy of the fixed greeting list.
func Greetings() []string {
	out := make([]string, len(greetings))
	copy(out, greetings[:])
	return out
}

// Display is the single output surface an Engine writes to.
type Display interface {
	SetText(text string)
}

// Scheduler runs fn once after d. Deferred callbacks must be delivered on the
// same queue that delivers commands.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Options tunes an Engine. Zero values select the defaults.
type Options struct {
	GreetingDelay time.Duration
	FarewellDelay time.Duration
	// Pick returns an index in [0, n). Defaults to math/rand/v2.
	Pick func(n int) int
}

// Engine is a four-function calculator bound to one Display.
// It is not safe for concurrent use; callers serialize commands, usually
// through a runloop.Loop.
type Engine struct {
	state   State
	display Display
	sched   Scheduler
	opts    Options
}

// New creates an Engine and writes the initial (empty) display.
func New(display Display, sched Scheduler, opts Options) *Engine {
	if opts.GreetingDelay <= 0 {
		opts.GreetingDelay = DefaultGreetingDelay
	}
	if opts.FarewellDelay <= 0 {
		opts.FarewellDelay = DefaultFarewellDelay
	}
	if opts.Pick == nil {
		opts.Pick = rand.Intn
	}

	e := &Engine{display: display, sched: sched, opts: opts}
	e.refresh()
	return e
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state
}

// AppendDigitOrPoint appends a digit or decimal point to the current operand.
// A second decimal point is ignored.
func (e *Engine) AppendDigitOrPoint(token string) {
	if e.state.Mode == Disabled {
		return
	}
	if token == "." && strings.Contains(e.state.CurrentOperand, ".") {
		return
	}
	e.state.CurrentOperand += token
	e.refresh()
}

// Backspace removes the last character of the current operand.
func (e *Engine) Backspace() {
	if e.state.Mode == Disabled {
		return
	}
	if n := len(e.state.CurrentOperand); n > 0 {
		e.state.CurrentOperand = e.state.CurrentOperand[:n-1]
	}
	e.refresh()
}

// SetOperation stores op as the pending operation. A pending operation is
// evaluated first, so "3 + 4 *" becomes "7 *".
func (e *Engine) SetOperation(op Operation) {
	if e.state.Mode == Disabled || e.state.CurrentOperand == "" {
		return
	}
	if e.state.PreviousOperand != "" {
		e.Calculate()
	}
	e.state.Operation = op
	e.state.PreviousOperand = e.state.CurrentOperand
	e.state.CurrentOperand = ""
	e.refresh()
}

// Calculate applies the pending operation. It does nothing when either
// operand does not parse or no operation is pending.
func (e *Engine) Calculate() {
	if e.state.Mode == Disabled {
		return
	}
	prev, ok := ParseNumber(e.state.PreviousOperand)
	if !ok {
		return
	}
	cur, ok := ParseNumber(e.state.CurrentOperand)
	if !ok {
		return
	}
	result, ok := e.state.Operation.Apply(prev, cur)
	if !ok {
		return
	}

	e.state.CurrentOperand = FormatNumber(result)
	e.state.Operation = NoOperation
	e.state.PreviousOperand = ""
	e.refresh()
}

// ClearAll resets every field, including switching the calculator back on.
func (e *Engine) ClearAll() {
	e.state = State{}
	e.refresh()
}

// SayHello shows a random greeting and restores the normal display after
// the greeting delay.
func (e *Engine) SayHello() {
	if e.state.Mode == Disabled {
		return
	}
	e.display.SetText(greetings[e.opts.Pick(len(greetings))])
	e.sched.After(e.opts.GreetingDelay, e.refresh)
}

// SayBye switches the calculator off, shows the farewell message and blanks
// the display after the farewell delay. Operands are kept until ClearAll.
func (e *Engine) SayBye() {
	e.state.Mode = Disabled
	e.display.SetText(FarewellMessage)
	e.sched.After(e.opts.FarewellDelay, func() {
		e.display.SetText("")
	})
}

func (e *Engine) refresh() {
	e.display.SetText(e.state.Text())
}
