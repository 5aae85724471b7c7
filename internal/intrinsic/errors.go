package intrinsic

import (
	"fmt"

	"confparser/internal/object"
)

// requireArgs validates that an intrinsic operator call received exactly
// want arguments, matching the fixed arities wired in bootstrap.go (every
// intrinsic operator here is MID: one receiver, one argument).
func requireArgs(args []*object.Instance, want int) error {
	if len(args) != want {
		return fmt.Errorf("object: operator expects %d argument(s), got %d", want, len(args))
	}
	return nil
}

// MemberNotFoundError reports a failed "operator." lookup: receiver has no
// sub-instance named Member. Grounded on confscope.cpp's GetByName, which
// the original's operator. wraps without a dedicated error type; giving it
// one here lets callers match on it instead of string-matching.
type MemberNotFoundError struct {
	Receiver string
	Member   string
}

func (e *MemberNotFoundError) Error() string {
	return fmt.Sprintf("object: %q has no member %q", e.Receiver, e.Member)
}
