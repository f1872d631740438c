package delegate

// Callable is any value with a Call method taking the delegate argument.
// It is registered with AddFunctor when it should be removable by value, or
// with AddCallable when it should not.
type Callable[A any] interface {
	Call(A)
}

// CallableFunc adapts a plain func to Callable.
type CallableFunc[A any] func(A)

// Call calls f(arg)
func (f CallableFunc[A]) Call(arg A) { f(arg) }

// target is one registered callback. invoke applies the dispatch rule of the
// target's kind: function and method targets are called whenever their
// reference is set, closure and callable targets only while the slot is
// enabled.
type target[A any] interface {
	invoke(arg A, enabled bool)
	identity() (identity, bool)
}

type funcTarget[A any] struct {
	fn   func(A)
	code uintptr
}

func (t *funcTarget[A]) invoke(arg A, _ bool) {
	if t.fn != nil {
		t.fn(arg)
	}
}

func (t *funcTarget[A]) identity() (identity, bool) {
	return identity{code: t.code}, true
}

type methodTarget[O, A any] struct {
	object *O
	method func(*O, A)
	code   uintptr
}

func (t *methodTarget[O, A]) invoke(arg A, _ bool) {
	if t.object != nil && t.method != nil {
		t.method(t.object, arg)
	}
}

func (t *methodTarget[O, A]) identity() (identity, bool) {
	return identity{object: t.object, code: t.code}, true
}

// functorTarget is a bound method whose receiver is a Callable. Its code
// half is always zero, so it only ever matches the same receiver.
type functorTarget[A any] struct {
	object    Callable[A]
	key       any
	matchable bool
}

func (t *functorTarget[A]) invoke(arg A, _ bool) {
	if t.object != nil {
		t.object.Call(arg)
	}
}

func (t *functorTarget[A]) identity() (identity, bool) {
	return identity{object: t.key}, t.matchable
}

type closureTarget[A any] struct {
	fn func(A)
}

func (t *closureTarget[A]) invoke(arg A, enabled bool) {
	if enabled {
		t.fn(arg)
	}
}

func (t *closureTarget[A]) identity() (identity, bool) {
	return identity{}, false
}

type callableTarget[A any] struct {
	c Callable[A]
}

func (t *callableTarget[A]) invoke(arg A, enabled bool) {
	if enabled {
		t.c.Call(arg)
	}
}

func (t *callableTarget[A]) identity() (identity, bool) {
	return identity{}, false
}
