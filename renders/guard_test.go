package renders

import (
	"errors"
	"testing"
	"time"
)

func TestGuardTripsPastLimit(t *testing.T) {
	now := time.Unix(0, 0)
	guard := NewGuard()
	guard.Now = func() time.Time {
		return now
	}

	for i := 0; i < 50; i++ {
		now = now.Add(10 * time.Millisecond)
		if err := guard.Tick(); err != nil {
			t.Fatalf("tick %d: %v", i+1, err)
		}
	}

	now = now.Add(10 * time.Millisecond)
	err := guard.Tick()
	if err == nil {
		t.Fatal("expected trip on the 51st cycle")
	}
	var runaway *RunawayError
	if !errors.As(err, &runaway) {
		t.Fatalf("got %T", err)
	}
	if runaway.Count != 51 {
		t.Fatalf("got %d", runaway.Count)
	}

	// still inside the window, still tripped
	now = now.Add(10 * time.Millisecond)
	if err := guard.Tick(); err == nil {
		t.Fatal("expected trip to persist within the window")
	}
}

func TestGuardResetsAfterIdleWindow(t *testing.T) {
	now := time.Unix(0, 0)
	guard := NewGuard()
	guard.Now = func() time.Time {
		return now
	}

	for i := 0; i < 51; i++ {
		now = now.Add(time.Millisecond)
		guard.Tick()
	}
	if guard.Count() != 51 {
		t.Fatalf("got %d", guard.Count())
	}

	now = now.Add(1100 * time.Millisecond)
	if err := guard.Tick(); err != nil {
		t.Fatalf("expected reset after idle window: %v", err)
	}
	if guard.Count() != 1 {
		t.Fatalf("counter restarts at 1, got %d", guard.Count())
	}
}

func TestGuardExactWindowBoundary(t *testing.T) {
	now := time.Unix(0, 0)
	guard := NewGuard()
	guard.Now = func() time.Time {
		return now
	}

	guard.Tick()
	// exactly one window later is not yet idle
	now = now.Add(time.Second)
	guard.Tick()
	if guard.Count() != 2 {
		t.Fatalf("got %d", guard.Count())
	}
}
