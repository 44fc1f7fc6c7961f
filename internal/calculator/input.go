package calculator

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned for button presses that map to nothing.
var ErrInvalidInput = errors.New("invalid input")

// InputKind identifies which transition an Input drives.
type InputKind int

const (
	InputNumber InputKind = iota + 1
	InputOperation
	InputClear
	InputBackspace
	InputEquals
	InputPercent
)

func (k InputKind) String() string {
	switch k {
	case InputNumber:
		return "number"
	case InputOperation:
		return "operation"
	case InputClear:
		return "clear"
	case InputBackspace:
		return "backspace"
	case InputEquals:
		return "equals"
	case InputPercent:
		return "percent"
	default:
		return "unknown"
	}
}

// Input is one discrete user action.
type Input struct {
	Kind  InputKind
	Token string    // set for InputNumber
	Op    Operation // set for InputOperation
}

// NumberInput builds a digit or decimal point entry.
func NumberInput(token string) Input { return Input{Kind: InputNumber, Token: token} }

// OperationInput builds an operator selection.
func OperationInput(op Operation) Input { return Input{Kind: InputOperation, Op: op} }

var keyInputs = map[string]Input{
	"+":         OperationInput(OpAdd),
	"-":         OperationInput(OpSubtract),
	"*":         OperationInput(OpMultiply),
	"/":         OperationInput(OpDivide),
	"=":         {Kind: InputEquals},
	"Enter":     {Kind: InputEquals},
	"Escape":    {Kind: InputClear},
	"Backspace": {Kind: InputBackspace},
	"%":         {Kind: InputPercent},
}

// ParseKey maps a keyboard key name to an Input. Keys with no binding
// report false and should be ignored.
func ParseKey(key string) (Input, bool) {
	if validToken(key) {
		return NumberInput(key), true
	}
	in, ok := keyInputs[key]
	return in, ok
}

var buttonControls = map[string]InputKind{
	"clear":      InputClear,
	"backspace":  InputBackspace,
	"equals":     InputEquals,
	"percentage": InputPercent,
}

// ParseButton maps a keypad button to an Input. A button carries either a
// number ("0"-"9", ".") or an action name. The percentage button converts
// the current operand directly; it does not select OpPercentage.
func ParseButton(number, action string) (Input, error) {
	switch {
	case number != "" && action != "":
		return Input{}, fmt.Errorf("%w: button has both number %q and action %q", ErrInvalidInput, number, action)
	case number != "":
		if !validToken(number) {
			return Input{}, fmt.Errorf("%w: number %q", ErrInvalidInput, number)
		}
		return NumberInput(number), nil
	case action != "":
		if kind, ok := buttonControls[action]; ok {
			return Input{Kind: kind}, nil
		}
		op, err := ParseOperation(action)
		if err != nil {
			return Input{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return OperationInput(op), nil
	default:
		return Input{}, fmt.Errorf("%w: empty button", ErrInvalidInput)
	}
}
