package cycles

import (
	"errors"
	"fmt"
)

// ErrEnumerationLimit indicates enumeration stopped before exploring the
// whole network.
var ErrEnumerationLimit = errors.New("cycle enumeration limit reached")

// LimitError reports a truncated enumeration. The set returned alongside it
// is valid but incomplete; counts derived from it are lower bounds.
type LimitError struct {
	Limit int // Configured cycle cap
	Found int // Cycles collected before stopping
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("cycle enumeration stopped at %d cycles (limit %d)", e.Found, e.Limit)
}

func (e *LimitError) Unwrap() error {
	return ErrEnumerationLimit
}
