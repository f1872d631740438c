package demo

import (
	"github.com/arthur-debert/delegate/pkg/delegate"
	"github.com/arthur-debert/delegate/pkg/errors"
)

// scenario is a Delegate[string] holding one target of every form
type scenario struct {
	d          *delegate.Delegate[string]
	first      *widget
	second     *widget
	stateless  func(string)
	closure    func(string)
	closureID  delegate.ID
	callableID delegate.ID
	ids        []delegate.ID
}

func (r *runner) newScenario() *scenario {
	s := &scenario{
		d:      delegate.New[string](r.opts...),
		first:  &widget{name: "first", log: r.log},
		second: &widget{name: "second", log: r.log},
	}

	log := r.log
	s.stateless = func(event string) { log.printf("stateless func [%s]", event) }
	counter := 0

	s.ids = append(s.ids,
		s.d.Add(announce),
		s.d.AddFunctor(s.first),
		delegate.Bind(s.d, s.first, (*widget).Method),
		delegate.Bind(s.d, s.first, (*widget).Other),
		delegate.Bind(s.d, s.second, (*widget).Method),
		s.d.Add(s.stateless),
	)
	s.closure = func(event string) {
		counter++
		log.printf("closure [%s] call %d", event, counter)
	}
	s.closureID = s.d.AddClosure(s.closure)
	s.callableID = s.d.AddCallable(delegate.CallableFunc[string](func(event string) {
		log.printf("callable [%s]", event)
	}))
	s.ids = append(s.ids, s.closureID, s.callableID)

	return s
}

func (r *runner) register() {
	d := delegate.New[string](r.opts...)
	var nobody *widget

	r.expect("nil function is rejected", delegate.InvalidID, d.Add(nil))
	r.expect("nil closure is rejected", delegate.InvalidID, d.AddClosure(nil))
	r.expect("nil functor is rejected", delegate.InvalidID, d.AddFunctor(nobody))
	r.expect("nil object is rejected", delegate.InvalidID, delegate.Bind(d, nobody, (*widget).Method))
	r.expect("rejections leave the delegate empty", 0, d.Count())

	s := r.newScenario()
	r.expect("every form registers", 8, s.d.Count())

	increasing := true
	for i := 1; i < len(s.ids); i++ {
		if s.ids[i] <= s.ids[i-1] {
			increasing = false
		}
	}
	r.expect("ids increase in registration order", true, increasing)

	s.d.Add(announce)
	r.expect("adding a target twice makes a second slot", 9, s.d.Count())
}

func (r *runner) invoke() {
	s := r.newScenario()

	mark := len(r.log.lines)
	s.d.Invoke("event")
	r.expect("targets fire in registration order", []string{
		"function [event]",
		"'first' functor [event]",
		"'first' method [event]",
		"'first' other method [event]",
		"'second' method [event]",
		"stateless func [event]",
		"closure [event] call 1",
		"callable [event]",
	}, r.log.since(mark))

	// Two identical closures are two independent slots
	d := delegate.New[string](r.opts...)
	log := r.log
	d.AddClosure(func(s string) { log.printf("closure with parameter [%s]", s) })
	d.AddClosure(func(s string) { log.printf("closure with parameter [%s]", s) })

	mark = len(r.log.lines)
	d.Invoke("Hello world!")
	r.expect("identical closures both fire", 2, len(r.log.since(mark)))

	var empty delegate.Delegate[string]
	empty.Invoke("nobody listens")
	r.expect("empty delegate invokes nothing", false, empty.Running())
}

func (r *runner) remove() {
	s := r.newScenario()

	r.expect("remove nil function", false, s.d.Remove(nil))
	r.expect("remove function", true, s.d.Remove(announce))
	r.expect("remove functor", true, s.d.RemoveFunctor(s.first))
	r.expect("remove bound method", true, delegate.Unbind(s.d, s.first, (*widget).Method))
	r.expect("remove second bound method", true, delegate.Unbind(s.d, s.first, (*widget).Other))
	r.expect("remove method of other object", true, delegate.Unbind(s.d, s.second, (*widget).Method))
	r.expect("remove unknown pair", false, delegate.Unbind(s.d, s.second, (*widget).Other))
	r.expect("closure is not removable by value", false, s.d.Remove(s.closure))
	r.expect("remove closure by id", true, s.d.RemoveByID(s.closureID))
	r.expect("remove stateless func by value", true, s.d.Remove(s.stateless))
	r.expect("remove callable by id", true, s.d.RemoveByID(s.callableID))
	r.expect("remove unknown id", false, s.d.RemoveByID(s.callableID))
	r.expect("delegate is empty", 0, s.d.Count())

	mark := len(r.log.lines)
	s.d.Invoke("after removal")
	r.expect("nothing fires after removal", 0, len(r.log.since(mark)))
	r.expect("compact when idle", true, s.d.Compact())
}

func (r *runner) signal() {
	sig := delegate.NewSignal(r.opts...)
	log := r.log

	sig.Add(ping)
	id := sig.AddClosure(func() { log.printf("signal closure") })

	mark := len(r.log.lines)
	sig.Invoke()
	r.expect("signal fires both targets", []string{"signal function", "signal closure"}, r.log.since(mark))

	r.expect("remove signal function", true, sig.Remove(ping))
	r.expect("remove signal function again", false, sig.Remove(ping))
	r.expect("remove signal closure by id", true, sig.RemoveByID(id))
	r.expect("signal is empty", 0, sig.Count())
}

func (r *runner) reentrancy() {
	r.reenter()
	r.selfRemove()
	r.removeLater()
	r.addDuring()
}

func (r *runner) reenter() {
	log := r.log
	d := delegate.New[int](r.opts...)
	calls := 0
	d.AddClosure(func(depth int) {
		calls++
		log.printf("reentrant target at depth %d", depth)
		d.Invoke(depth + 1)
	})

	d.Invoke(0)
	r.expect("nested invoke is ignored", 1, calls)
	r.expect("guard is released", false, d.Running())
}

func (r *runner) selfRemove() {
	log := r.log
	d := delegate.New[int](r.opts...)
	calls := 0
	var id delegate.ID
	id = d.AddClosure(func(int) {
		calls++
		log.printf("one-shot target")
		d.RemoveByID(id)
	})

	d.Invoke(1)
	d.Invoke(2)
	r.expect("self-removing target fires once", 1, calls)
	r.expect("self-removed slot is swept", 0, d.Count())
}

func (r *runner) removeLater() {
	log := r.log
	d := delegate.New[int](r.opts...)
	var fired []string
	var laterID delegate.ID

	d.AddClosure(func(int) {
		fired = append(fired, "first")
		d.RemoveByID(laterID)
	})
	laterID = d.AddClosure(func(int) { fired = append(fired, "later") })
	d.AddClosure(func(int) { fired = append(fired, "last") })

	d.Invoke(1)
	log.printf("fired %v", fired)
	r.expect("target removed mid-pass is skipped", []string{"first", "last"}, fired)
	r.expect("removed target is gone after the pass", 2, d.Count())
}

func (r *runner) addDuring() {
	log := r.log
	d := delegate.New[int](r.opts...)
	var fired []string
	added := false

	d.AddClosure(func(int) {
		fired = append(fired, "adder")
		if !added {
			added = true
			d.AddClosure(func(int) { fired = append(fired, "added") })
		}
	})

	d.Invoke(1)
	r.expect("target added mid-pass waits", []string{"adder"}, fired)
	d.Invoke(2)
	log.printf("fired %v", fired)
	r.expect("added target fires next pass", []string{"adder", "adder", "added"}, fired)
}

func (r *runner) failures() {
	var got []delegate.Failure
	opts := append(append([]delegate.Option(nil), r.opts...), delegate.WithFailureHandler(func(f delegate.Failure) {
		got = append(got, f)
	}))
	d := delegate.New[string](opts...)
	log := r.log

	d.AddClosure(func(s string) { log.printf("before failure [%s]", s) })
	badID := d.AddClosure(func(string) { panic("target failure") })
	d.AddClosure(func(s string) { log.printf("after failure [%s]", s) })

	mark := len(r.log.lines)
	d.Invoke("boom")

	r.expect("pass continues past a failing target", 2, len(r.log.since(mark)))
	r.expect("one failure reported", 1, len(got))
	if len(got) == 1 {
		r.expect("failure names the slot", badID, got[0].ID)
		r.expect("failure carries the kind", delegate.KindClosure, got[0].Kind)
		r.expect("failure is a target panic", true, errors.IsErrorCode(got[0].Err, errors.ErrTargetPanic))
	}
	r.expect("guard is released after failure", false, d.Running())
}
