package calculator

import "fmt"

// Machine owns a single calculator State and applies inputs to it one at a
// time. It is not safe for concurrent use; callers serialise access.
type Machine struct {
	state State
}

// NewMachine returns a machine in the cleared state.
func NewMachine() *Machine {
	return &Machine{state: NewState()}
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	return m.state
}

// Display returns the two display lines for the current state.
func (m *Machine) Display() Display {
	return m.state.Display()
}

// AppendNumber enters a single digit or ".".
func (m *Machine) AppendNumber(token string) error {
	if !validToken(token) {
		return fmt.Errorf("%w: number %q", ErrInvalidInput, token)
	}
	m.state = m.state.AppendNumber(token)
	return nil
}

// ChooseOperation selects op, folding any pending computation first.
func (m *Machine) ChooseOperation(op Operation) error {
	next, err := m.state.ChooseOperation(op)
	m.state = next
	return err
}

// Calculate evaluates the pending operation. On ErrDivisionByZero the
// machine has already been cleared; the caller only has to notify the user.
func (m *Machine) Calculate() error {
	next, err := m.state.Calculate()
	m.state = next
	return err
}

// Clear resets the machine.
func (m *Machine) Clear() {
	m.state = m.state.Clear()
}

// DeleteLastDigit removes the last entered character.
func (m *Machine) DeleteLastDigit() {
	m.state = m.state.DeleteLastDigit()
}

// Percentage divides the current operand by 100.
func (m *Machine) Percentage() {
	m.state = m.state.Percentage()
}

// Apply runs the one transition selected by in.
func (m *Machine) Apply(in Input) error {
	switch in.Kind {
	case InputNumber:
		return m.AppendNumber(in.Token)
	case InputOperation:
		return m.ChooseOperation(in.Op)
	case InputClear:
		m.Clear()
	case InputBackspace:
		m.DeleteLastDigit()
	case InputEquals:
		return m.Calculate()
	case InputPercent:
		m.Percentage()
	default:
		return fmt.Errorf("%w: kind %d", ErrInvalidInput, int(in.Kind))
	}
	return nil
}
