package calc

// Mode is the on/off split of the calculator.
type Mode int

const (
	// Active accepts every command.
	Active Mode = iota
	// Disabled ignores everything except ClearAll and SayBye.
	Disabled
)

func (m Mode) String() string {
	if m == Disabled {
		return "disabled"
	}
	return "active"
}

// Operation is a pending binary operation.
type Operation string

// Operations a calculator can hold pending; NoOperation means none is set.
const (
	NoOperation Operation = ""
	Add         Operation = "+"
	Subtract    Operation = "-"
	Multiply    Operation = "*"
	Divide      Operation = "/"
)

// Valid reports whether op is one of the four arithmetic operations.
func (op Operation) Valid() bool {
	switch op {
	case Add, Subtract, Multiply, Divide:
		return true
	}
	return false
}

// Apply evaluates a op b with float semantics. Division by zero yields
// ±Inf or NaN. ok is false when op is not an arithmetic operation.
func (op Operation) Apply(a, b float64) (result float64, ok bool) {
	switch op {
	case Add:
		return a + b, true
	case Subtract:
		return a - b, true
	case Multiply:
		return a * b, true
	case Divide:
		return a / b, true
	}
	return 0, false
}

// State is the calculator's operand and mode state.
type State struct {
	CurrentOperand  string
	PreviousOperand string
	Operation       Operation
	Mode            Mode
}

// Text is the display text for s.
func (s State) Text() string {
	if s.Mode == Disabled {
		return ""
	}
	if s.Operation != NoOperation {
		return s.PreviousOperand + " " + string(s.Operation) + " " + s.CurrentOperand
	}
	return s.CurrentOperand
}
