package renders

import "time"

// Hooks observe engine events. Every field is optional; the daemon wires
// them to metrics counters.
type Hooks struct {
	OnCompile       func(componentID string, err error)
	OnRender        func(componentID string, elapsed time.Duration, err error)
	OnStaleFallback func(componentID string)
	OnGuardTrip     func(componentID string)
}

func (h Hooks) compile(id string, err error) {
	if h.OnCompile != nil {
		h.OnCompile(id, err)
	}
}

func (h Hooks) render(id string, elapsed time.Duration, err error) {
	if h.OnRender != nil {
		h.OnRender(id, elapsed, err)
	}
}

func (h Hooks) staleFallback(id string) {
	if h.OnStaleFallback != nil {
		h.OnStaleFallback(id)
	}
}

func (h Hooks) guardTrip(id string) {
	if h.OnGuardTrip != nil {
		h.OnGuardTrip(id)
	}
}
