package classify

import (
	"context"
	"testing"
	"time"
)

func TestIntervalPacerDelaysFirstWait(t *testing.T) {
	t.Parallel()

	const interval = 30 * time.Millisecond
	pacer := NewIntervalPacer(interval)

	start := time.Now()
	if err := pacer.Wait(context.Background()); err != nil {
		t.Fatalf("Wait error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < interval {
		t.Fatalf("first wait returned after %s, want at least %s", elapsed, interval)
	}
}

func TestIntervalPacerHonorsCancellation(t *testing.T) {
	t.Parallel()

	pacer := NewIntervalPacer(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := pacer.Wait(ctx); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
