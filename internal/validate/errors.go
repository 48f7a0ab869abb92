package validate

import "fmt"

// StructuralError is the single fatal validation failure: the raw input is
// not model-shaped at all, so no sensible repair exists. Everything else
// the validator encounters is recoverable and recorded as a Rejection.
type StructuralError struct {
	Got string // description of what the input actually was
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("raw world model is not a mapping (got %s)", e.Got)
}
