package comps

// ExecutionContext is the per-instance bundle passed to component logic on
// every invocation. Helpers is populated lazily by the callable retry path
// and stays nil for compiled sources, whose vocabulary lives in the
// runtime instead.
type ExecutionContext struct {
	Props       map[string]any
	State       any
	UpdateState func(value any)
	InstanceID  string
	IsThumbnail bool
	Width       int
	Height      int
	Helpers     map[string]any
}
