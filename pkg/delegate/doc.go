// Package delegate implements a multicast callback container. Targets of
// several shapes are registered against one argument type and called
// together, in registration order, by a single Invoke.
//
// # Registration forms
//
//   - Add: a plain function, removable with Remove(fn) given the same func
//     value. A method value such as p.OnHit is new each time it is written.
//   - Bind: an object and one of its methods, removable with Unbind
//   - AddFunctor: a Callable bound as a method on itself, removable with
//     RemoveFunctor when its type is comparable
//   - AddClosure and AddCallable: removable by id only
//
// Every form returns an ID accepted by RemoveByID. A nil target is rejected
// with InvalidID.
//
// # Invocation
//
// A Delegate runs at most one pass at a time. Invoke called from inside a
// target, or from another goroutine during a pass, returns without doing
// anything. The pass visits the slots that existed when it started. Targets
// may add and remove targets, themselves included, while the pass runs:
// removed slots are disabled and erased once the pass ends, and new slots
// wait for the next pass.
//
// A panic in one target does not stop the pass. It is recovered, reported to
// the FailureHandler and the next target is called. A handler that panics
// is logged and does not stop the pass either.
//
// Signatures with several values use a struct as the argument type. Signal
// covers the no-argument case.
package delegate
