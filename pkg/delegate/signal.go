package delegate

// Signal is a Delegate for callbacks that take no argument. The zero value
// is ready to use.
type Signal struct {
	d *Delegate[struct{}]
}

// NewSignal returns an empty Signal configured by opts
func NewSignal(opts ...Option) *Signal {
	return &Signal{d: New[struct{}](opts...)}
}

func (s *Signal) delegate() *Delegate[struct{}] {
	if s.d == nil {
		s.d = &Delegate[struct{}]{}
	}
	return s.d
}

// Add registers fn so that Remove(fn) finds it again
func (s *Signal) Add(fn func()) ID {
	if fn == nil {
		return InvalidID
	}
	return s.delegate().add(KindFunction, &funcTarget[struct{}]{
		fn:   func(struct{}) { fn() },
		code: funcWord(fn),
	})
}

// AddClosure registers fn. It can only be removed by id.
func (s *Signal) AddClosure(fn func()) ID {
	if fn == nil {
		return InvalidID
	}
	return s.delegate().AddClosure(func(struct{}) { fn() })
}

// Remove removes the first enabled slot registered with Add(fn) for the
// same func value
func (s *Signal) Remove(fn func()) bool {
	code := funcWord(fn)
	if code == 0 {
		return false
	}
	d := s.delegate()
	return d.removeAt(d.find(identity{code: code}))
}

// RemoveByID removes the enabled slot with the given id
func (s *Signal) RemoveByID(id ID) bool { return s.delegate().RemoveByID(id) }

// Invoke calls every registered callback. See Delegate.Invoke.
func (s *Signal) Invoke() { s.delegate().Invoke(struct{}{}) }

// Count returns the number of registered callbacks
func (s *Signal) Count() int { return s.delegate().Count() }

// Clear removes every callback
func (s *Signal) Clear() { s.delegate().Clear() }

// Compact erases slots queued for removal
func (s *Signal) Compact() bool { return s.delegate().Compact() }

// Running reports whether a pass is in progress
func (s *Signal) Running() bool { return s.delegate().Running() }
