package event

import (
	"context"
	"time"
)

// RunTicker emits Tick every rate until ctx is done or the multiplexer stops
// accepting events.
func RunTicker(ctx context.Context, sender Sender, rate time.Duration) {
	if rate <= 0 {
		return
	}
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if !sender.Send(Tick{At: now}) {
				return
			}
		}
	}
}
