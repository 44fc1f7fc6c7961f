package calculator

// CalcRequest is the JSON body for the stateless operation endpoints.
type CalcRequest struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// CalcResponse is the JSON response for the stateless operation endpoints.
type CalcResponse struct {
	Operation string  `json:"operation"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Result    float64 `json:"result"`
	// Display is Result formatted the way the keypad display shows it.
	Display string `json:"display"`
}

// ChainStep describes a single step in a chained calculation.
type ChainStep struct {
	Op    string  `json:"op"`    // "add", "subtract", "multiply", "divide", "percentage"
	Value float64 `json:"value"` // the operand applied with the running total
}

// ChainRequest is the JSON body for POST /calculator/chain.
type ChainRequest struct {
	Initial float64     `json:"initial"`
	Steps   []ChainStep `json:"steps"`
}

// ChainResponse is the JSON response for POST /calculator/chain.
type ChainResponse struct {
	Initial float64       `json:"initial"`
	Steps   []ChainResult `json:"steps"`
	Result  float64       `json:"result"`
	Display string        `json:"display"`
}

// ChainResult records one executed step.
type ChainResult struct {
	Op     string  `json:"op"`
	Value  float64 `json:"value"`
	Result float64 `json:"result"`
}

// KeysRequest is the JSON body for POST /calculator/sessions/{sessionID}/keys.
// Keys use keyboard names: "0"-"9", ".", "+", "-", "*", "/", "=", "Enter",
// "Escape", "Backspace" and "%".
type KeysRequest struct {
	Keys []string `json:"keys"`
}

// ButtonRequest is the JSON body for POST /calculator/sessions/{sessionID}/buttons.
// Exactly one of Number or Action is set.
type ButtonRequest struct {
	Number string `json:"number,omitempty"`
	Action string `json:"action,omitempty"`
}

// SessionResponse is returned by every session endpoint.
type SessionResponse struct {
	SessionID string  `json:"session_id"`
	Display   Display `json:"display"`
	// Notification is a message the front end should show the user,
	// e.g. after a division by zero.
	Notification string `json:"notification,omitempty"`
	// Ignored counts keys that have no binding.
	Ignored int `json:"ignored,omitempty"`
}
