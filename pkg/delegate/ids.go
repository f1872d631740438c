package delegate

import (
	"math"
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/arthur-debert/delegate/pkg/errors"
	"github.com/arthur-debert/delegate/pkg/registry"
)

// ID identifies one registration. It is what RemoveByID takes.
type ID uint64

// InvalidID is returned by the Add family when the target is rejected.
// No IDSource ever issues it.
const InvalidID ID = math.MaxUint64

// Scope selects where a Delegate draws its ids from.
type Scope int

const (
	// ScopeInstance gives every Delegate its own counter. Ids are unique
	// within one Delegate only.
	ScopeInstance Scope = iota

	// ScopeSignature shares one process-wide counter between every Delegate
	// with the same argument type. Ids from two Delegate[A] never collide,
	// but a Delegate[A] and a Delegate[B] can hand out the same id.
	ScopeSignature
)

// String returns the configuration name of the scope
func (s Scope) String() string {
	switch s {
	case ScopeInstance:
		return "instance"
	case ScopeSignature:
		return "signature"
	default:
		return "unknown"
	}
}

// ParseScope parses a configuration value into a Scope
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "instance":
		return ScopeInstance, nil
	case "signature":
		return ScopeSignature, nil
	default:
		return ScopeInstance, errors.Newf(errors.ErrInvalidInput, "unknown id scope: %s", s)
	}
}

// IDSource hands out registration ids. Implementations must never return
// InvalidID and must return strictly increasing values.
type IDSource interface {
	Next() ID
}

// Counter is the IDSource used by both scopes. It starts at 0, never resets
// and is safe to share between goroutines.
type Counter struct {
	next atomic.Uint64
}

// Next returns the next id
func (c *Counter) Next() ID {
	return ID(c.next.Add(1) - 1)
}

// signatureCounters holds one Counter per argument type for ScopeSignature
var signatureCounters = registry.New[reflect.Type, *Counter]()

// SignatureSource returns the shared Counter for argument type A.
func SignatureSource[A any]() *Counter {
	return signatureCounters.GetOrCreate(reflect.TypeFor[A](), func() *Counter {
		return &Counter{}
	})
}
