package parse

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"calculator-backend/internal/calc"
)

var (
	// ErrUnknownCommand is returned for a command name no button maps to.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrInvalidToken is returned when a command's token is malformed.
	ErrInvalidToken = errors.New("invalid token")
)

var digitRe = regexp.MustCompile(`^[0-9.]$`)

// Kind names a calculator button.
type Kind string

const (
	KindDigit     Kind = "digit"
	KindOperation Kind = "operation"
	KindEquals    Kind = "equals"
	KindClear     Kind = "clear"
	KindBackspace Kind = "backspace"
	KindHello     Kind = "hello"
	KindBye       Kind = "bye"
)

// Command is one parsed button press.
type Command struct {
	Kind      Kind
	Token     string
	Operation calc.Operation
}

var operatorAliases = map[string]calc.Operation{
	"+": calc.Add,
	"-": calc.Subtract,
	"−": calc.Subtract,
	"*": calc.Multiply,
	"x": calc.Multiply,
	"×": calc.Multiply,
	"/": calc.Divide,
	"÷": calc.Divide,
}

var kindAliases = map[string]Kind{
	"digit":     KindDigit,
	"number":    KindDigit,
	"operation": KindOperation,
	"operator":  KindOperation,
	"equals":    KindEquals,
	"=":         KindEquals,
	"clear":     KindClear,
	"ac":        KindClear,
	"backspace": KindBackspace,
	"del":       KindBackspace,
	"hello":     KindHello,
	"bye":       KindBye,
}

// ParseOperator maps an operator symbol, including the typographic
// ×, ÷ and − variants, to an operation.
func ParseOperator(symbol string) (calc.Operation, error) {
	op, ok := operatorAliases[strings.TrimSpace(symbol)]
	if !ok {
		return calc.NoOperation, fmt.Errorf("%w: operator %q", ErrInvalidToken, symbol)
	}
	return op, nil
}

// ParseCommand turns a button name and its optional token into a Command.
// A digit or operator symbol given as the name is accepted without a token.
func ParseCommand(name, token string) (Command, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	kind, ok := kindAliases[name]
	if !ok {
		switch {
		case digitRe.MatchString(name):
			kind, token = KindDigit, name
		case operatorAliases[name] != "":
			kind, token = KindOperation, name
		default:
			return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
		}
	}

	cmd := Command{Kind: kind}
	switch kind {
	case KindDigit:
		if !digitRe.MatchString(token) {
			return Command{}, fmt.Errorf("%w: digit %q", ErrInvalidToken, token)
		}
		cmd.Token = token
	case KindOperation:
		op, err := ParseOperator(token)
		if err != nil {
			return Command{}, err
		}
		cmd.Token = string(op)
		cmd.Operation = op
	}
	return cmd, nil
}

// Apply runs the command against e.
func (c Command) Apply(e *calc.Engine) {
	switch c.Kind {
	case KindDigit:
		e.AppendDigitOrPoint(c.Token)
	case KindOperation:
		e.SetOperation(c.Operation)
	case KindEquals:
		e.Calculate()
	case KindClear:
		e.ClearAll()
	case KindBackspace:
		e.Backspace()
	case KindHello:
		e.SayHello()
	case KindBye:
		e.SayBye()
	}
}
