package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/observability"
)

// initMetrics initialises all metric providers and application-specific
// metric instruments. Add new domain InitMetrics calls here as the project grows.
func initMetrics(ctx context.Context, sessions *calculator.Sessions) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, err
	}

	err = observability.RegisterGaugeFunc(prometheus.DefaultRegisterer,
		"calculator_sessions_active",
		"Number of calculator sessions currently held in memory.",
		func() float64 { return float64(sessions.Len()) },
	)
	if err != nil {
		return nil, err
	}

	return shutdown, nil
}
