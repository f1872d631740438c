package delegate

import (
	"github.com/arthur-debert/delegate/pkg/errors"
)

// Kind tells how a slot's target was registered
type Kind int

const (
	KindFunction Kind = iota
	KindBoundMethod
	KindClosure
	KindCallable
)

// String returns the name used in logs and reports
func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindBoundMethod:
		return "method"
	case KindClosure:
		return "closure"
	case KindCallable:
		return "callable"
	default:
		return "unknown"
	}
}

// slot is one entry in a Delegate. A disabled slot has a nil target and is
// waiting for the sweep at the end of the running pass.
type slot[A any] struct {
	id      ID
	kind    Kind
	enabled bool
	target  target[A]
}

func (s *slot[A]) disable() {
	s.enabled = false
	s.target = nil
}

func (s *slot[A]) matches(key identity) bool {
	if !s.enabled || s.target == nil {
		return false
	}
	id, ok := s.target.identity()
	return ok && id == key
}

// dispatch calls the target and turns a panic into an error
func (s *slot[A]) dispatch(arg A) (err error) {
	t := s.target
	if t == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.FromPanic(r).
				WithDetail("slot", uint64(s.id)).
				WithDetail("kind", s.kind.String())
		}
	}()

	t.invoke(arg, s.enabled)
	return nil
}
