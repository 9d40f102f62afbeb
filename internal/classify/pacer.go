package classify

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"VideoClassifier/internal/ports"
)

// IntervalPacer spaces inference calls with a one-token bucket refilled once
// per interval. The bucket starts drained so every Wait blocks for a full
// interval, whether the preceding call succeeded or failed.
type IntervalPacer struct {
	limiter *rate.Limiter
}

var _ ports.Pacer = (*IntervalPacer)(nil)

// NewIntervalPacer builds a pacer for one stage's configured delay.
func NewIntervalPacer(interval time.Duration) *IntervalPacer {
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	limiter.Allow()
	return &IntervalPacer{limiter: limiter}
}

// Wait blocks until the next call may be issued.
func (p *IntervalPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
