package delegate

import (
	"slices"

	"github.com/arthur-debert/delegate/pkg/errors"
)

// Invoke calls every target registered before the call, in registration
// order, with arg.
//
// Only one pass runs at a time. A nested Invoke from a target, or a call
// from another goroutine while a pass is running, returns without calling
// anything. Targets added during the pass are not called until the next one.
// Targets removed during the pass are skipped if they have not fired yet.
// A target that panics is reported to the failure handler and the pass
// continues with the next target. A panic in the failure handler is logged
// and does not leave Invoke either.
func (d *Delegate[A]) Invoke(arg A) {
	if !d.running.CompareAndSwap(false, true) {
		d.log().Trace().Msg("Delegate already running, invocation skipped")
		return
	}
	defer d.endPass()

	n := len(d.slots)
	for i := 0; i < n; i++ {
		s := d.slots[i]
		if err := s.dispatch(arg); err != nil {
			d.report(Failure{ID: s.id, Kind: s.kind, Err: err})
		}
	}
}

// Compact erases slots queued for removal. It does nothing and returns
// false while a pass is running. Invoke compacts on its own when a pass ends.
func (d *Delegate[A]) Compact() bool {
	if !d.running.CompareAndSwap(false, true) {
		return false
	}
	defer d.running.Store(false)

	d.sweep()
	return true
}

func (d *Delegate[A]) endPass() {
	d.sweep()
	d.running.Store(false)
}

// sweep erases queued slots from the highest index down so that the lower
// indices stay valid.
func (d *Delegate[A]) sweep() {
	if len(d.pending) == 0 {
		return
	}

	slices.Sort(d.pending)
	for i := len(d.pending) - 1; i >= 0; i-- {
		idx := d.pending[i]
		d.slots = slices.Delete(d.slots, idx, idx+1)
	}
	d.pending = d.pending[:0]
}

func (d *Delegate[A]) report(f Failure) {
	if d.onFailure != nil {
		defer func() {
			if r := recover(); r != nil {
				d.log().Error().
					Err(errors.FromPanic(r)).
					Uint64("slot", uint64(f.ID)).
					AnErr("failure", f.Err).
					Msg("Failure handler panicked")
			}
		}()
		d.onFailure(f)
		return
	}
	d.log().Error().
		Err(f.Err).
		Uint64("slot", uint64(f.ID)).
		Str("kind", f.Kind.String()).
		Msg("Delegate target failed")
}
