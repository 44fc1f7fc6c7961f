package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrDivisionByZero is returned when a divide is evaluated against a zero operand.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrUnknownOperation is returned for operation names outside the closed set.
	ErrUnknownOperation = errors.New("unknown operation")
)

// DivisionByZeroMessage is the notification shown to the user on ErrDivisionByZero.
const DivisionByZeroMessage = "Cannot divide by zero!"

// Operation is a pending binary operator. The zero value means none is pending.
type Operation int

const (
	OpNone Operation = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpPercentage
)

// Operations lists every selectable operation in display order.
var Operations = []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide, OpPercentage}

var operationNames = map[Operation]string{
	OpAdd:        "add",
	OpSubtract:   "subtract",
	OpMultiply:   "multiply",
	OpDivide:     "divide",
	OpPercentage: "percentage",
}

// ParseOperation maps an action name such as "add" to its Operation.
func ParseOperation(name string) (Operation, error) {
	for op, n := range operationNames {
		if n == name {
			return op, nil
		}
	}
	return OpNone, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
}

// String returns the action name, or "" for OpNone.
func (op Operation) String() string {
	return operationNames[op]
}

// Valid reports whether op is one of the selectable operations.
func (op Operation) Valid() bool {
	_, ok := operationNames[op]
	return ok
}

// Symbol is the operator glyph rendered next to the previous operand.
// Percentage has no glyph.
func (op Operation) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return ""
	}
}

// Apply evaluates prev op current without rounding.
func (op Operation) Apply(prev, current float64) (float64, error) {
	switch op {
	case OpAdd:
		return prev + current, nil
	case OpSubtract:
		return prev - current, nil
	case OpMultiply:
		return prev * current, nil
	case OpDivide:
		if current == 0 {
			return 0, fmt.Errorf("%w: %g / %g", ErrDivisionByZero, prev, current)
		}
		return prev / current, nil
	case OpPercentage:
		return prev * (current / 100), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownOperation, int(op))
	}
}

// Evaluate applies op and rounds the result to eight decimal places.
func (op Operation) Evaluate(prev, current float64) (float64, error) {
	result, err := op.Apply(prev, current)
	if err != nil {
		return 0, err
	}
	return roundResult(result), nil
}
