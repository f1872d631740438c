package bench

import (
	"github.com/arthur-debert/delegate/pkg/delegate"
)

func increment(v *int) {
	*v++
}

type accumulator struct {
	step int
}

func (a *accumulator) Add(v *int) {
	*v += a.step
}

// newDelegate holds one function, one bound method and one closure
func newDelegate(opts ...delegate.Option) *delegate.Delegate[*int] {
	d := delegate.New[*int](opts...)
	acc := &accumulator{step: 1}
	step := 1

	d.Add(increment)
	delegate.Bind(d, acc, (*accumulator).Add)
	d.AddClosure(func(v *int) { *v += step })
	return d
}

// funcs is the baseline: the same three targets in a plain slice
type funcs []func(*int)

func newBaseline() funcs {
	acc := &accumulator{step: 1}
	step := 1
	return funcs{
		increment,
		acc.Add,
		func(v *int) { *v += step },
	}
}

func (f funcs) invoke(v *int) {
	for _, fn := range f {
		fn(v)
	}
}
