// Package driver implements the periodic driver (C8): a single
// goroutine that invokes OnTick on every registered tenant at a fixed
// wall-clock cadence, with no catch-up on a slow tick.
package driver

import (
	"context"
	"time"

	"github.com/EtomicBomb/ethan-ws/internal/registry"
	"github.com/EtomicBomb/ethan-ws/internal/tenant"
)

// Run sleeps for period, then invokes OnTick on every tenant in reg,
// repeating until ctx is cancelled. The sleep is always measured from
// the completion of the previous iteration's tick fan-out, not from
// the nominal start of that iteration — a long-running tick delays
// but never "catches up on" subsequent ticks.
func Run(ctx context.Context, reg *registry.Registry, period time.Duration) {
	timer := time.NewTimer(period)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			reg.Each(func(t tenant.Tenant, tok *tenant.Token) {
				tok.Lock()
				defer tok.Unlock()
				t.OnTick()
			})
			timer.Reset(period)
		}
	}
}
