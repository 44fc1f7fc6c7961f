package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeKeys(t *testing.T, m *Machine, keys ...string) []error {
	t.Helper()
	var errs []error
	for _, key := range keys {
		in, ok := ParseKey(key)
		require.True(t, ok, "key %q", key)
		if err := m.Apply(in); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func TestMachineStartsCleared(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, NewState(), m.State())
	assert.Equal(t, Display{Primary: "0", Secondary: ""}, m.Display())
}

func TestMachineKeyboardSession(t *testing.T) {
	m := NewMachine()

	require.Empty(t, typeKeys(t, m, "1", "2", "+", "3"))
	assert.Equal(t, Display{Primary: "3", Secondary: "12 +"}, m.Display())

	require.Empty(t, typeKeys(t, m, "*"))
	assert.Equal(t, Display{Primary: "15", Secondary: "15 ×"}, m.Display())

	require.Empty(t, typeKeys(t, m, "2", "Enter"))
	assert.Equal(t, Display{Primary: "30", Secondary: ""}, m.Display())

	require.Empty(t, typeKeys(t, m, "%"))
	assert.Equal(t, "0.3", m.Display().Primary)

	require.Empty(t, typeKeys(t, m, "Escape"))
	assert.Equal(t, NewState(), m.State())
}

func TestMachineDivideByZeroNotifiesAndClears(t *testing.T) {
	m := NewMachine()

	errs := typeKeys(t, m, "1", "0", "/", "0", "=")
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrDivisionByZero)
	assert.Equal(t, NewState(), m.State())

	// The machine keeps working afterwards.
	require.Empty(t, typeKeys(t, m, "4", "-", "6", "="))
	assert.Equal(t, "-2", m.Display().Primary)
}

func TestMachineBackspace(t *testing.T) {
	m := NewMachine()
	require.Empty(t, typeKeys(t, m, "4", "2", "Backspace"))
	assert.Equal(t, "4", m.Display().Primary)

	require.Empty(t, typeKeys(t, m, "Backspace"))
	assert.Equal(t, "0", m.Display().Primary)
}

func TestMachineResultIsReplacedByNextDigit(t *testing.T) {
	m := NewMachine()
	require.Empty(t, typeKeys(t, m, "2", "+", "2", "=", "7"))
	assert.Equal(t, "7", m.Display().Primary)
}

func TestMachineAppendNumberRejectsInvalidToken(t *testing.T) {
	m := NewMachine()
	assert.ErrorIs(t, m.AppendNumber("12"), ErrInvalidInput)
	assert.ErrorIs(t, m.AppendNumber("x"), ErrInvalidInput)
	assert.Equal(t, NewState(), m.State())
}

func TestMachineApplyRejectsZeroInput(t *testing.T) {
	m := NewMachine()
	assert.ErrorIs(t, m.Apply(Input{}), ErrInvalidInput)
}

func TestMachineChooseOperationPercentage(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.AppendNumber("8"))
	require.NoError(t, m.AppendNumber("0"))
	require.NoError(t, m.ChooseOperation(OpPercentage))
	assert.Equal(t, "80 ", m.Display().Secondary)

	require.NoError(t, m.AppendNumber("5"))
	require.NoError(t, m.Calculate())
	assert.Equal(t, "4", m.Display().Primary)
}
