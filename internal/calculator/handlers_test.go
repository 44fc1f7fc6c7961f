package calculator

import (
	"net/http"
	"testing"

	"go-chi-calculator/internal/testutil"
)

func TestBinaryOperationHandlers(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		a, b    float64
		result  float64
		display string
	}{
		{name: "add", handler: Add, a: 2, b: 3, result: 5, display: "5"},
		{name: "subtract", handler: Subtract, a: 2, b: 3, result: -1, display: "-1"},
		{name: "multiply", handler: Multiply, a: 1e6, b: 1e6, result: 1e12, display: "1000000000000"},
		{name: "divide", handler: Divide, a: 1, b: 3, result: 0.33333333, display: "0.33333333"},
		{name: "percentage", handler: Percentage, a: 200, b: 15, result: 30, display: "30"},
		{name: "rounded_add", handler: Add, a: 0.1, b: 0.2, result: 0.3, display: "0.3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := testutil.NewJSONRequest(t, http.MethodPost, "/calculator/"+tc.name, CalcRequest{A: tc.a, B: tc.b})
			w := testutil.ExecuteRequest(r, tc.handler)

			testutil.CheckResponseCode(t, http.StatusOK, w.Code)

			var resp CalcResponse
			testutil.DecodeJSONBody(t, w.Body, &resp)

			if resp.Result != tc.result {
				t.Fatalf("expected result %v, got %v", tc.result, resp.Result)
			}
			if resp.Display != tc.display {
				t.Fatalf("expected display %q, got %q", tc.display, resp.Display)
			}
		})
	}
}

func TestDivideByZeroReturnsUserMessage(t *testing.T) {
	r := testutil.NewJSONRequest(t, http.MethodPost, "/calculator/divide", CalcRequest{A: 10, B: 0})
	w := testutil.ExecuteRequest(r, http.HandlerFunc(Divide))

	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	testutil.DecodeJSONBody(t, w.Body, &body)
	if body["error"] != DivisionByZeroMessage {
		t.Fatalf("expected error %q, got %q", DivisionByZeroMessage, body["error"])
	}
}

func TestBinaryOperationRejectsOverflow(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		a, b    float64
		msg     string
	}{
		{name: "multiply", handler: Multiply, a: 1e308, b: 10, msg: "result is not a finite number: +Inf"},
		{name: "subtract", handler: Subtract, a: -1e308, b: 1e308, msg: "result is not a finite number: -Inf"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := testutil.NewJSONRequest(t, http.MethodPost, "/calculator/"+tc.name, CalcRequest{A: tc.a, B: tc.b})
			w := testutil.ExecuteRequest(r, tc.handler)

			testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			testutil.DecodeJSONBody(t, w.Body, &body)
			if body["error"] != tc.msg {
				t.Fatalf("expected error %q, got %q", tc.msg, body["error"])
			}
		})
	}
}

func TestLargeFiniteResultSurvivesRounding(t *testing.T) {
	r := testutil.NewJSONRequest(t, http.MethodPost, "/calculator/add", CalcRequest{A: 1e301, B: 0})
	w := testutil.ExecuteRequest(r, http.HandlerFunc(Add))

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp CalcResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	if resp.Result != 1e301 || resp.Display != "1e+301" {
		t.Fatalf("expected 1e301, got %v (%q)", resp.Result, resp.Display)
	}
}

func TestBinaryOperationRejectsBadBody(t *testing.T) {
	r := testutil.NewJSONRequest(t, http.MethodPost, "/calculator/add", "not an object")
	w := testutil.ExecuteRequest(r, http.HandlerFunc(Add))

	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
}

func TestChainFoldsSteps(t *testing.T) {
	req := ChainRequest{
		Initial: 3,
		Steps: []ChainStep{
			{Op: "add", Value: 4},
			{Op: "add", Value: 2},
			{Op: "divide", Value: 3},
			{Op: "percentage", Value: 50},
		},
	}
	r := testutil.NewJSONRequest(t, http.MethodPost, "/calculator/chain", req)
	w := testutil.ExecuteRequest(r, http.HandlerFunc(Chain))

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp ChainResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)

	if len(resp.Steps) != 4 {
		t.Fatalf("expected 4 step results, got %d", len(resp.Steps))
	}
	if resp.Steps[1].Result != 9 {
		t.Fatalf("expected running total 9 after step 1, got %v", resp.Steps[1].Result)
	}
	if resp.Result != 1.5 || resp.Display != "1.5" {
		t.Fatalf("expected result 1.5, got %v (%q)", resp.Result, resp.Display)
	}
}

func TestChainErrors(t *testing.T) {
	tests := []struct {
		name string
		req  ChainRequest
		msg  string
	}{
		{name: "no steps", req: ChainRequest{Initial: 1}, msg: "no steps provided"},
		{
			name: "division by zero",
			req:  ChainRequest{Initial: 1, Steps: []ChainStep{{Op: "add", Value: 1}, {Op: "divide", Value: 0}}},
			msg:  DivisionByZeroMessage,
		},
		{
			name: "unknown operation",
			req:  ChainRequest{Initial: 1, Steps: []ChainStep{{Op: "modulo", Value: 2}}},
			msg:  `step 0: unknown operation: "modulo"`,
		},
		{
			name: "overflow",
			req:  ChainRequest{Initial: 1e308, Steps: []ChainStep{{Op: "add", Value: 1}, {Op: "multiply", Value: 10}}},
			msg:  "step 1: result is not a finite number: +Inf",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := testutil.NewJSONRequest(t, http.MethodPost, "/calculator/chain", tc.req)
			w := testutil.ExecuteRequest(r, http.HandlerFunc(Chain))

			testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			testutil.DecodeJSONBody(t, w.Body, &body)
			if body["error"] != tc.msg {
				t.Fatalf("expected error %q, got %q", tc.msg, body["error"])
			}
		})
	}
}
