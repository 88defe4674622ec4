package renders

import (
	"fmt"
	"time"
)

// RunawayError reports a render loop: more renders than Max landed
// without an idle gap. Fatal for the instance, never retried.
type RunawayError struct {
	Count int
}

func (r *RunawayError) Error() string {
	return fmt.Sprintf("too many renders (%d), component logic is re-rendering itself in a loop", r.Count)
}

// Guard is the per-instance render-rate limiter. Tick increments a
// counter; a tick arriving more than Window after the previous one
// resets the counter first. The guard trips when the counter passes Max
// inside one unreset window.
//
// Instances serialize their render cycles, so the guard carries no lock
// of its own. Now is swappable for tests.
type Guard struct {
	Max    int
	Window time.Duration
	Now    func() time.Time

	count int
	last  time.Time
}

func NewGuard() *Guard {
	return &Guard{
		Max:    50,
		Window: time.Second,
		Now:    time.Now,
	}
}

// Tick records one render cycle, reporting a RunawayError once the cycle
// count exceeds Max. The counter stays in place on a trip, so every
// further tick inside the same window trips too.
func (g *Guard) Tick() error {
	now := g.Now()
	if !g.last.IsZero() && now.Sub(g.last) > g.Window {
		g.count = 0
	}
	g.last = now
	g.count++
	if g.count > g.Max {
		return &RunawayError{
			Count: g.count,
		}
	}
	return nil
}

func (g *Guard) Count() int {
	return g.count
}
