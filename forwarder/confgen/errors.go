package confgen

import "fmt"

// PreconditionError means the input resources cannot produce a config: an
// empty collector list, or a collector whose settings block does not match
// a known ingestion mechanism. Nothing is generated or written.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return "config generation precondition failed: " + e.Reason
}

// UnsupportedMechanismError means a collector declares a mechanism the
// generator has no translation for.
type UnsupportedMechanismError struct {
	Collector string
	Mechanism string
}

func (e *UnsupportedMechanismError) Error() string {
	return fmt.Sprintf("collector %s uses unsupported mechanism %q", e.Collector, e.Mechanism)
}
