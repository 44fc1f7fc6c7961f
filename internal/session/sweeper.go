package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper is implemented by Store.
type Sweeper interface {
	Sweep() int
}

// RunSweeper calls Sweep on every tick until ctx is cancelled.
func RunSweeper(ctx context.Context, s Sweeper, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.Info("expired sessions removed", zap.Int("count", n))
			}
		}
	}
}
