package delegate

import (
	"slices"
	"sync/atomic"

	"github.com/arthur-debert/delegate/pkg/logging"
	"github.com/rs/zerolog"
)

// Delegate is an ordered list of targets that all receive the argument
// passed to Invoke. The zero value is ready to use and draws ids from its
// own counter.
//
// Only the invocation guard is atomic. Adding and removing targets from
// several goroutines at once must be serialized by the caller.
type Delegate[A any] struct {
	slots   []*slot[A]
	pending []int
	running atomic.Bool

	ids       IDSource
	onFailure FailureHandler
	logger    *zerolog.Logger
}

// New returns an empty Delegate configured by opts
func New[A any](opts ...Option) *Delegate[A] {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	d := &Delegate[A]{
		ids:       s.ids,
		onFailure: s.onFailure,
		logger:    s.logger,
	}
	if d.ids == nil && s.scope == ScopeSignature {
		d.ids = SignatureSource[A]()
	}
	return d
}

// Add registers a plain function. It can later be removed with Remove using
// the same func value: a top-level function, or the variable that was
// passed to Add. A method value such as p.OnHit is a new value each time it
// is written, so Remove(p.OnHit) does not find Add(p.OnHit). Register
// methods with Bind instead.
func (d *Delegate[A]) Add(fn func(A)) ID {
	if fn == nil {
		return InvalidID
	}
	return d.add(KindFunction, &funcTarget[A]{fn: fn, code: funcWord(fn)})
}

// AddFunctor registers c as a bound method on itself. If c's dynamic type
// is comparable it can be removed with RemoveFunctor.
func (d *Delegate[A]) AddFunctor(c Callable[A]) ID {
	if isNil(c) {
		return InvalidID
	}
	key, ok := objectKey(c)
	return d.add(KindBoundMethod, &functorTarget[A]{object: c, key: key, matchable: ok})
}

// AddClosure registers fn. It can only be removed by id.
func (d *Delegate[A]) AddClosure(fn func(A)) ID {
	if fn == nil {
		return InvalidID
	}
	return d.add(KindClosure, &closureTarget[A]{fn: fn})
}

// AddCallable registers c. It can only be removed by id.
func (d *Delegate[A]) AddCallable(c Callable[A]) ID {
	if isNil(c) {
		return InvalidID
	}
	return d.add(KindCallable, &callableTarget[A]{c: c})
}

// Remove removes the first enabled slot registered with Add(fn) for the
// same func value. It returns false when no such slot is registered.
func (d *Delegate[A]) Remove(fn func(A)) bool {
	code := funcWord(fn)
	if code == 0 {
		return false
	}
	return d.removeAt(d.find(identity{code: code}))
}

// RemoveFunctor removes the first enabled slot registered with
// AddFunctor(c). Functors are compared with ==: a pointer matches only the
// same pointer, while a value of struct type matches any equal value.
// Values of non-comparable types never match.
func (d *Delegate[A]) RemoveFunctor(c Callable[A]) bool {
	key, ok := objectKey(c)
	if !ok {
		return false
	}
	return d.removeAt(d.find(identity{object: key}))
}

// RemoveByID removes the enabled slot with the given id
func (d *Delegate[A]) RemoveByID(id ID) bool {
	if id == InvalidID {
		return false
	}
	for i, s := range d.slots {
		if s.enabled && s.id == id {
			return d.removeAt(i)
		}
	}
	return false
}

// Count returns the number of registered targets, not counting those
// removed during the running pass.
func (d *Delegate[A]) Count() int {
	return len(d.slots) - len(d.pending)
}

// Clear removes every target. During a pass the targets that have not
// fired yet are skipped and the slots go away when the pass ends.
func (d *Delegate[A]) Clear() {
	if d.running.Load() {
		for i, s := range d.slots {
			if s.enabled {
				s.disable()
				d.pending = append(d.pending, i)
			}
		}
		return
	}
	d.slots = nil
	d.pending = nil
}

// Running reports whether a pass is in progress
func (d *Delegate[A]) Running() bool {
	return d.running.Load()
}

func (d *Delegate[A]) nextID() ID {
	if d.ids == nil {
		d.ids = &Counter{}
	}
	return d.ids.Next()
}

func (d *Delegate[A]) add(kind Kind, t target[A]) ID {
	id := d.nextID()
	d.slots = append(d.slots, &slot[A]{
		id:      id,
		kind:    kind,
		enabled: true,
		target:  t,
	})
	return id
}

func (d *Delegate[A]) find(key identity) int {
	for i, s := range d.slots {
		if s.matches(key) {
			return i
		}
	}
	return -1
}

// removeAt erases slot i, or disables and queues it while a pass runs
func (d *Delegate[A]) removeAt(i int) bool {
	if i < 0 {
		return false
	}
	if d.running.Load() {
		d.slots[i].disable()
		d.pending = append(d.pending, i)
		return true
	}
	d.slots = slices.Delete(d.slots, i, i+1)
	return true
}

func (d *Delegate[A]) log() *zerolog.Logger {
	if d.logger != nil {
		return d.logger
	}
	l := logging.GetLogger("delegate")
	return &l
}
