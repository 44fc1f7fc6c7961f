package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Sessions is the store type holding one Machine per keypad client.
type Sessions = session.Store[Machine]

// NewSessions returns a session store whose sessions expire after ttl idle.
func NewSessions(ttl time.Duration) *Sessions {
	return session.NewStore(ttl, NewMachine)
}

// SessionHandler serves the stateful keypad endpoints.
type SessionHandler struct {
	sessions *Sessions
}

func NewSessionHandler(sessions *Sessions) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Create handles POST /calculator/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := h.sessions.Create()

	observability.LoggerWithTrace(r.Context()).Info("calculator session created",
		zap.String("session_id", id),
		zap.String("request_id", observability.RequestIDFromContext(r.Context())),
	)

	handlers.WriteJSON(w, http.StatusCreated, SessionResponse{
		SessionID: id,
		Display:   NewState().Display(),
	})
}

// Get handles GET /calculator/sessions/{sessionID}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	var display Display
	err := h.sessions.Do(id, func(m *Machine) error {
		display = m.Display()
		return nil
	})
	if err != nil {
		h.fail(w, r, nil, "get", err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, SessionResponse{SessionID: id, Display: display})
}

// Delete handles DELETE /calculator/sessions/{sessionID}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	if err := h.sessions.Delete(id); err != nil {
		h.fail(w, r, nil, "delete", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Keys handles POST /calculator/sessions/{sessionID}/keys. Keys are applied
// in order; keys without a binding are skipped and counted.
func (h *SessionHandler) Keys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "sessionID")

	ctx, span := tracer.Start(ctx, "calculator.session.keys",
		trace.WithAttributes(attribute.String("calculator.session.id", id)),
	)
	defer span.End()
	r = r.WithContext(ctx)

	var req KeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, span, "keys", fmt.Errorf("%w: %w", ErrInvalidInput, err))
		return
	}
	if len(req.Keys) == 0 {
		h.fail(w, r, span, "keys", fmt.Errorf("%w: no keys provided", ErrInvalidInput))
		return
	}
	span.SetAttributes(attribute.Int("calculator.keys_count", len(req.Keys)))

	inputs := make([]Input, 0, len(req.Keys))
	ignored := 0
	for _, key := range req.Keys {
		in, ok := ParseKey(key)
		if !ok {
			ignored++
			continue
		}
		inputs = append(inputs, in)
	}

	resp, err := h.apply(r, span, id, inputs)
	if err != nil {
		h.fail(w, r, span, "keys", err)
		return
	}
	resp.Ignored = ignored

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, resp)
}

// Buttons handles POST /calculator/sessions/{sessionID}/buttons.
func (h *SessionHandler) Buttons(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "sessionID")

	ctx, span := tracer.Start(ctx, "calculator.session.button",
		trace.WithAttributes(attribute.String("calculator.session.id", id)),
	)
	defer span.End()
	r = r.WithContext(ctx)

	var req ButtonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, span, "button", fmt.Errorf("%w: %w", ErrInvalidInput, err))
		return
	}

	in, err := ParseButton(req.Number, req.Action)
	if err != nil {
		h.fail(w, r, span, "button", err)
		return
	}

	resp, err := h.apply(r, span, id, []Input{in})
	if err != nil {
		h.fail(w, r, span, "button", err)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, resp)
}

// apply runs inputs against the session's machine. A division by zero
// clears the machine, sets the notification and does not stop later inputs.
// Any other error restores the machine to its state before the batch.
func (h *SessionHandler) apply(r *http.Request, span trace.Span, id string, inputs []Input) (SessionResponse, error) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	resp := SessionResponse{SessionID: id}

	err := h.sessions.Do(id, func(m *Machine) error {
		before := *m
		for _, in := range inputs {
			err := m.Apply(in)
			recordInput(ctx, in.Kind)

			switch {
			case errors.Is(err, ErrDivisionByZero):
				resp.Notification = DivisionByZeroMessage
				errorCounter.Add(ctx, 1, operationAttrs(OpDivide.String()))
				span.AddEvent("calculator.division_by_zero")
				logger.Warn("division by zero, session cleared",
					zap.String("session_id", id),
					zap.String("request_id", observability.RequestIDFromContext(ctx)),
				)
			case err != nil:
				*m = before
				return err
			case in.Kind == InputEquals:
				opsCounter.Add(ctx, 1, operationAttrs("equals"))
			}
		}
		resp.Display = m.Display()
		return nil
	})

	return resp, err
}

func (h *SessionHandler) fail(w http.ResponseWriter, r *http.Request, span trace.Span, opName string, err error) {
	if span == nil {
		span = trace.SpanFromContext(r.Context())
	}

	f := observability.Failure{Operation: opName, Message: err.Error(), Status: http.StatusInternalServerError, Err: err}
	switch {
	case errors.Is(err, session.ErrNotFound):
		f.Message = session.ErrNotFound.Error()
		f.Status = http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		f.Status = http.StatusBadRequest
	default:
		f.Message = "internal error"
	}

	observability.RecordError(r.Context(), w, span, errorCounter, f)
}
