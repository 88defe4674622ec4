package comps

import "fmt"

// FormatError reports a definition whose shape is disallowed before any
// compilation is attempted.
type FormatError struct {
	Reason string
}

func (f *FormatError) Error() string {
	return f.Reason
}

// MissingHelperError is returned by a callable that needs a well-known
// helper it was not given. The wrapper resolves it once and retries.
type MissingHelperError struct {
	Name string
}

func (m MissingHelperError) Error() string {
	return fmt.Sprintf("helper %q is not available", m.Name)
}
