package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// errNonFinite is returned when finite operands overflow. JSON has no
// encoding for ±Inf, so such results are rejected instead of written.
var errNonFinite = errors.New("result is not a finite number")

// checkFinite wraps errNonFinite when x is ±Inf or NaN.
func checkFinite(x float64) error {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return fmt.Errorf("%w: %g", errNonFinite, x)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Handlers — stateless binary operations
// ---------------------------------------------------------------------------

// Add handles POST /calculator/add
func Add(w http.ResponseWriter, r *http.Request) { handleBinaryOp(w, r, OpAdd) }

// Subtract handles POST /calculator/subtract
func Subtract(w http.ResponseWriter, r *http.Request) { handleBinaryOp(w, r, OpSubtract) }

// Multiply handles POST /calculator/multiply
func Multiply(w http.ResponseWriter, r *http.Request) { handleBinaryOp(w, r, OpMultiply) }

// Divide handles POST /calculator/divide
func Divide(w http.ResponseWriter, r *http.Request) { handleBinaryOp(w, r, OpDivide) }

// Percentage handles POST /calculator/percentage, computing a × (b / 100).
func Percentage(w http.ResponseWriter, r *http.Request) { handleBinaryOp(w, r, OpPercentage) }

// evalFailure maps an evaluation error to the message shown to clients.
func evalFailure(opName string, err error) observability.Failure {
	msg := err.Error()
	if errors.Is(err, ErrDivisionByZero) {
		msg = DivisionByZeroMessage
	}
	return observability.Failure{Operation: opName, Message: msg, Status: http.StatusBadRequest, Err: err}
}

// handleBinaryOp evaluates a op b with the keypad's rounding, inside its own
// span, and records metrics for the result.
func handleBinaryOp(w http.ResponseWriter, r *http.Request, op Operation) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	opName := op.String()

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", opName),
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", observability.RequestIDFromContext(ctx)),
		),
	)
	defer span.End()

	var req CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, w, span, errorCounter, observability.Failure{
			Operation: opName, Message: "invalid request body", Status: http.StatusBadRequest, Err: err,
		})
		return
	}

	if math.IsNaN(req.A) || math.IsInf(req.A, 0) || math.IsNaN(req.B) || math.IsInf(req.B, 0) {
		observability.RecordError(ctx, w, span, errorCounter, observability.Failure{
			Operation: opName, Message: "invalid numeric input", Status: http.StatusBadRequest,
			Err: fmt.Errorf("a=%g b=%g", req.A, req.B),
		})
		return
	}

	span.SetAttributes(
		attribute.Float64("calculator.operand.a", req.A),
		attribute.Float64("calculator.operand.b", req.B),
	)

	start := time.Now()
	result, err := op.Evaluate(req.A, req.B)
	if err == nil {
		err = checkFinite(result)
	}
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		observability.RecordError(ctx, w, span, errorCounter, evalFailure(opName, err))
		return
	}

	recordOperation(ctx, opName, elapsed)
	resultGauge.Record(ctx, result, operationAttrs(opName))

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.Float64("a", req.A),
		zap.Float64("b", req.B),
		zap.Float64("result", result),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{
		Operation: opName,
		A:         req.A,
		B:         req.B,
		Result:    result,
		Display:   FormatOperand(result),
	})
}

// ---------------------------------------------------------------------------
// Handler — chained operations
// ---------------------------------------------------------------------------

// Chain handles POST /calculator/chain. Each step folds into the running
// total the way pressing an operator after a second operand does, with one
// child span per step.
func Chain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.chain",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req ChainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, w, span, errorCounter, observability.Failure{
			Operation: "chain", Message: "invalid request body", Status: http.StatusBadRequest, Err: err,
		})
		return
	}

	if len(req.Steps) == 0 {
		observability.RecordError(ctx, w, span, errorCounter, observability.Failure{
			Operation: "chain", Message: "no steps provided", Status: http.StatusBadRequest,
			Err: errors.New("steps array is empty"),
		})
		return
	}

	span.SetAttributes(
		attribute.Float64("chain.initial", req.Initial),
		attribute.Int("chain.steps_count", len(req.Steps)),
	)

	logger.Info("starting chained calculation",
		zap.Float64("initial", req.Initial),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	running := req.Initial
	results := make([]ChainResult, 0, len(req.Steps))

	for i, step := range req.Steps {
		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.chain.step.%d.%s", i, step.Op),
			trace.WithAttributes(
				attribute.Int("chain.step.index", i),
				attribute.String("chain.step.operation", step.Op),
				attribute.Float64("chain.step.input", running),
				attribute.Float64("chain.step.value", step.Value),
			),
		)

		stepStart := time.Now()
		prev := running

		op, err := ParseOperation(step.Op)
		if err == nil {
			running, err = op.Evaluate(running, step.Value)
		}
		if err == nil {
			err = checkFinite(running)
		}

		stepElapsed := float64(time.Since(stepStart).Microseconds()) / 1000.0

		if err != nil {
			err = fmt.Errorf("step %d: %w", i, err)

			stepSpan.RecordError(err)
			stepSpan.SetStatus(codes.Error, err.Error())
			stepSpan.End()

			observability.RecordError(ctx, w, span, errorCounter, evalFailure(step.Op, err))
			return
		}

		recordOperation(ctx, step.Op, stepElapsed)

		stepSpan.AddEvent("step.complete", trace.WithAttributes(
			attribute.Float64("input", prev),
			attribute.Float64("result", running),
		))
		stepSpan.SetAttributes(attribute.Float64("chain.step.result", running))
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		logger.Debug("chain step completed",
			zap.Int("step", i),
			zap.String("operation", step.Op),
			zap.Float64("input", prev),
			zap.Float64("value", step.Value),
			zap.Float64("result", running),
			zap.Float64("duration_ms", stepElapsed),
		)

		results = append(results, ChainResult{
			Op:     step.Op,
			Value:  step.Value,
			Result: running,
		})
	}

	resultGauge.Record(ctx, running, operationAttrs("chain"))

	span.AddEvent("chain.complete", trace.WithAttributes(
		attribute.Float64("final_result", running),
		attribute.Int("total_steps", len(req.Steps)),
	))
	span.SetAttributes(attribute.Float64("chain.result", running))
	span.SetStatus(codes.Ok, "")

	logger.Info("chained calculation completed",
		zap.Float64("initial", req.Initial),
		zap.Float64("result", running),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, ChainResponse{
		Initial: req.Initial,
		Steps:   results,
		Result:  running,
		Display: FormatOperand(running),
	})
}
