package calculator

import "strings"

// State is the full calculator state. Transitions never mutate the receiver;
// they return the next State.
type State struct {
	// Current is the operand being typed or the last result.
	Current string
	// Previous holds the operand captured when an operation was chosen.
	Previous string
	// Op is the pending operation, OpNone when absent.
	Op Operation
	// Waiting makes the next digit replace Current instead of extending it.
	Waiting bool
}

// NewState returns the cleared state.
func NewState() State {
	return State{Current: "0"}
}

// Clear resets every field to its default.
func (s State) Clear() State {
	return NewState()
}

// AppendNumber enters a digit or decimal point.
func (s State) AppendNumber(token string) State {
	if s.Waiting {
		// A leading "." is kept as-is rather than expanded to "0.".
		s.Current = token
		s.Waiting = false
		return s
	}

	if token == "." && strings.Contains(s.Current, ".") {
		return s
	}

	if s.Current == "0" && token != "." {
		s.Current = token
	} else {
		s.Current += token
	}
	return s
}

// ChooseOperation installs op as the pending operation. A computation that is
// already pending is folded first, so "3 + 4 +" leaves 7 as the previous
// operand. If that fold divides by zero the cleared state still takes op and
// ErrDivisionByZero is returned.
func (s State) ChooseOperation(op Operation) (State, error) {
	if !op.Valid() {
		return s, ErrUnknownOperation
	}
	if s.Current == "" {
		return s, nil
	}

	var err error
	if s.Previous != "" && !s.Waiting {
		s, err = s.Calculate()
	}

	s.Op = op
	s.Previous = s.Current
	s.Waiting = true
	return s, err
}

// Calculate evaluates the pending operation. Unreadable operands or a missing
// operation leave the state untouched. Division by zero returns the cleared
// state together with ErrDivisionByZero.
func (s State) Calculate() (State, error) {
	prev, ok := ParseOperand(s.Previous)
	if !ok {
		return s, nil
	}
	current, ok := ParseOperand(s.Current)
	if !ok {
		return s, nil
	}
	if !s.Op.Valid() {
		return s, nil
	}

	result, err := s.Op.Evaluate(prev, current)
	if err != nil {
		return NewState(), err
	}

	return State{
		Current: FormatOperand(result),
		Waiting: true,
	}, nil
}

// DeleteLastDigit drops the last character of Current, falling back to "0".
func (s State) DeleteLastDigit() State {
	if len([]rune(s.Current)) <= 1 {
		s.Current = "0"
		return s
	}
	r := []rune(s.Current)
	s.Current = string(r[:len(r)-1])
	return s
}

// Percentage divides Current by 100 in place. The pending operation and
// previous operand are left alone. An operand that does not parse, such as a
// lone ".", is kept as typed rather than replaced with "NaN".
func (s State) Percentage() State {
	if s.Current == "0" {
		return s
	}
	current, ok := ParseOperand(s.Current)
	if !ok {
		return s
	}
	s.Current = FormatOperand(current / 100)
	return s
}

// Primary is the main display line.
func (s State) Primary() string {
	return s.Current
}

// Secondary is the previous operand followed by the pending operator's symbol.
func (s State) Secondary() string {
	if s.Op == OpNone {
		return s.Previous
	}
	return s.Previous + " " + s.Op.Symbol()
}

// Display is the pair of strings a front end renders after every transition.
type Display struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// Display derives both display lines from s.
func (s State) Display() Display {
	return Display{
		Primary:   s.Primary(),
		Secondary: s.Secondary(),
	}
}
