// Test Type: Unit Test
// Description: Tests for registration, removal and identity matching

package delegate

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fnCalls []string

func resetFnCalls() { fnCalls = nil }

func fnFirst(s string)  { fnCalls = append(fnCalls, "first:"+s) }
func fnSecond(s string) { fnCalls = append(fnCalls, "second:"+s) }

type recorder struct {
	name  string
	calls *[]string
}

func (r *recorder) onEvent(s string) { *r.calls = append(*r.calls, r.name+".event:"+s) }
func (r *recorder) onOther(s string) { *r.calls = append(*r.calls, r.name+".other:"+s) }
func (r *recorder) onNumber(n int) { *r.calls = append(*r.calls, r.name+".number:"+strconv.Itoa(n)) }

// counterFunctor is comparable, so it can be removed by value
type counterFunctor struct {
	hits int
}

func (c *counterFunctor) Call(string) { c.hits++ }

type valueFunctor struct {
	tag  int
	hits *int
}

func (v valueFunctor) Call(string) { *v.hits++ }

func TestAdd_AssignsIncreasingIDs(t *testing.T) {
	var d Delegate[string]
	var calls []string
	r := &recorder{name: "r", calls: &calls}

	ids := []ID{
		d.Add(fnFirst),
		Bind(&d, r, (*recorder).onEvent),
		d.AddFunctor(&counterFunctor{}),
		d.AddClosure(func(string) {}),
		d.AddCallable(CallableFunc[string](func(string) {})),
	}

	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1])
	}
	assert.Equal(t, ID(0), ids[0])
	assert.Equal(t, 5, d.Count())
}

func TestAdd_RejectsNil(t *testing.T) {
	var d Delegate[string]
	var nilRecorder *recorder
	var nilFunctor *counterFunctor
	var nilFunc CallableFunc[string]

	assert.Equal(t, InvalidID, d.Add(nil))
	assert.Equal(t, InvalidID, d.AddClosure(nil))
	assert.Equal(t, InvalidID, d.AddCallable(nil))
	assert.Equal(t, InvalidID, d.AddCallable(nilFunc))
	assert.Equal(t, InvalidID, d.AddFunctor(nil))
	assert.Equal(t, InvalidID, d.AddFunctor(nilFunctor))
	assert.Equal(t, InvalidID, Bind(&d, nilRecorder, (*recorder).onEvent))
	assert.Equal(t, InvalidID, Bind[recorder, string](&d, &recorder{}, nil))

	assert.Equal(t, 0, d.Count())

	// Rejected adds do not consume ids
	assert.Equal(t, ID(0), d.Add(fnFirst))
}

func TestRemove_Function(t *testing.T) {
	resetFnCalls()
	var d Delegate[string]
	d.Add(fnFirst)
	d.Add(fnSecond)

	assert.True(t, d.Remove(fnFirst))
	assert.False(t, d.Remove(fnFirst), "already removed")
	assert.False(t, d.Remove(nil))

	d.Invoke("x")
	assert.Equal(t, []string{"second:x"}, fnCalls)
}

func TestRemove_DuplicateAddRemovesOne(t *testing.T) {
	resetFnCalls()
	var d Delegate[string]
	d.Add(fnFirst)
	d.Add(fnFirst)
	require.Equal(t, 2, d.Count())

	assert.True(t, d.Remove(fnFirst))
	assert.Equal(t, 1, d.Count())

	d.Invoke("x")
	assert.Equal(t, []string{"first:x"}, fnCalls)
}

func TestRemove_StatelessFuncValue(t *testing.T) {
	var d Delegate[string]
	stateless := func(string) {}

	d.Add(stateless)
	assert.True(t, d.Remove(stateless))
	assert.Equal(t, 0, d.Count())
}

func TestRemove_MethodValuesAreDistinct(t *testing.T) {
	var d Delegate[string]
	var calls []string
	p1 := &recorder{name: "p1", calls: &calls}
	p2 := &recorder{name: "p2", calls: &calls}

	on1, on2 := p1.onEvent, p2.onEvent
	d.Add(on1)
	d.Add(on2)

	assert.False(t, d.Remove(p2.onEvent), "a new method value is not the registered one")
	assert.Equal(t, 2, d.Count())

	assert.True(t, d.Remove(on2))
	d.Invoke("x")
	assert.Equal(t, []string{"p1.event:x"}, calls)
}

func TestRemove_CapturingClosuresAreDistinct(t *testing.T) {
	var d Delegate[string]
	var calls []string
	named := func(name string) func(string) {
		return func(s string) { calls = append(calls, name+":"+s) }
	}

	a, b := named("a"), named("b")
	d.Add(a)
	d.Add(b)

	assert.True(t, d.Remove(b))
	assert.False(t, d.Remove(b))
	d.Invoke("x")
	assert.Equal(t, []string{"a:x"}, calls)
}

func TestRemoveFunctor_ValuesMatchByEquality(t *testing.T) {
	var d Delegate[string]
	hits := 0
	registered := valueFunctor{tag: 1, hits: &hits}

	d.AddFunctor(registered)
	assert.False(t, d.RemoveFunctor(valueFunctor{tag: 2, hits: &hits}))
	assert.True(t, d.RemoveFunctor(valueFunctor{tag: 1, hits: &hits}), "equal values match")
	assert.Equal(t, 0, d.Count())

	first, second := &counterFunctor{}, &counterFunctor{}
	d.AddFunctor(first)
	assert.False(t, d.RemoveFunctor(second), "pointers match only themselves")
	assert.True(t, d.RemoveFunctor(first))
}

func TestRemove_ClosureOnlyByID(t *testing.T) {
	var d Delegate[string]
	hits := 0
	closure := func(string) { hits++ }

	id := d.AddClosure(closure)
	assert.False(t, d.Remove(closure), "closures are not matched by value")
	assert.Equal(t, 1, d.Count())

	assert.True(t, d.RemoveByID(id))
	assert.Equal(t, 0, d.Count())
}

func TestRemove_CallableOnlyByID(t *testing.T) {
	var d Delegate[string]
	c := &counterFunctor{}

	id := d.AddCallable(c)
	assert.False(t, d.RemoveFunctor(c), "callables are not matched by value")

	assert.True(t, d.RemoveByID(id))
	assert.Equal(t, 0, d.Count())
}

func TestUnbind(t *testing.T) {
	var calls []string
	a := &recorder{name: "a", calls: &calls}
	b := &recorder{name: "b", calls: &calls}

	var d Delegate[string]
	Bind(&d, a, (*recorder).onEvent)
	Bind(&d, a, (*recorder).onOther)
	Bind(&d, b, (*recorder).onEvent)

	t.Run("object and method must both match", func(t *testing.T) {
		c := &recorder{name: "c", calls: &calls}
		assert.False(t, Unbind(&d, c, (*recorder).onEvent))
		assert.False(t, Unbind(&d, b, (*recorder).onOther))
		assert.False(t, Unbind(&d, nil, (*recorder).onEvent))
		assert.Equal(t, 3, d.Count())
	})

	t.Run("removes only the matching pair", func(t *testing.T) {
		assert.True(t, Unbind(&d, a, (*recorder).onEvent))
		d.Invoke("x")
		assert.Equal(t, []string{"a.other:x", "b.event:x"}, calls)
	})
}

func TestRemoveFunctor(t *testing.T) {
	var d Delegate[string]
	first := &counterFunctor{}
	second := &counterFunctor{}

	d.AddFunctor(first)
	d.AddFunctor(second)

	assert.True(t, d.RemoveFunctor(first))
	assert.False(t, d.RemoveFunctor(first))

	d.Invoke("x")
	assert.Equal(t, 0, first.hits)
	assert.Equal(t, 1, second.hits)
}

func TestRemoveFunctor_NonComparable(t *testing.T) {
	var d Delegate[string]
	hits := 0
	fn := CallableFunc[string](func(string) { hits++ })

	id := d.AddFunctor(fn)
	require.NotEqual(t, InvalidID, id)

	assert.False(t, d.RemoveFunctor(fn))
	d.Invoke("x")
	assert.Equal(t, 1, hits)

	assert.True(t, d.RemoveByID(id))
}

func TestRemove_FormsDoNotCrossMatch(t *testing.T) {
	var d Delegate[string]
	c := &counterFunctor{}

	d.AddFunctor(c)
	d.Add(fnFirst)

	// A functor registration is not found by Bind identity, and a function
	// is not found by functor identity.
	assert.False(t, Unbind(&d, c, (*counterFunctor).Call))
	assert.False(t, d.RemoveFunctor(CallableFunc[string](fnFirst)))
	assert.Equal(t, 2, d.Count())
}

func TestRemoveByID(t *testing.T) {
	var d Delegate[string]
	id := d.Add(fnFirst)

	assert.False(t, d.RemoveByID(id+100), "unknown id")
	assert.False(t, d.RemoveByID(InvalidID))
	assert.True(t, d.RemoveByID(id))
	assert.False(t, d.RemoveByID(id), "already removed")
}

func TestClear(t *testing.T) {
	var d Delegate[string]
	d.Add(fnFirst)
	d.AddClosure(func(string) {})
	require.Equal(t, 2, d.Count())

	d.Clear()
	assert.Equal(t, 0, d.Count())

	// Ids keep increasing after Clear
	assert.Equal(t, ID(2), d.Add(fnFirst))
}

func TestNew_Options(t *testing.T) {
	t.Run("instance scope starts every delegate at zero", func(t *testing.T) {
		a := New[int]()
		b := New[int](WithIDScope(ScopeInstance))
		assert.Equal(t, ID(0), a.AddClosure(func(int) {}))
		assert.Equal(t, ID(0), b.AddClosure(func(int) {}))
	})

	t.Run("signature scope shares one counter per argument type", func(t *testing.T) {
		type scopedArg struct{}
		a := New[scopedArg](WithIDScope(ScopeSignature))
		b := New[scopedArg](WithIDScope(ScopeSignature))

		first := a.AddClosure(func(scopedArg) {})
		second := b.AddClosure(func(scopedArg) {})
		third := a.AddClosure(func(scopedArg) {})

		assert.Greater(t, second, first)
		assert.Greater(t, third, second)
		assert.Same(t, SignatureSource[scopedArg](), a.ids)
	})

	t.Run("explicit source wins", func(t *testing.T) {
		src := &Counter{}
		a := New[string](WithIDSource(src), WithIDScope(ScopeSignature))
		b := New[int](WithIDSource(src))

		assert.Equal(t, ID(0), a.Add(fnFirst))
		assert.Equal(t, ID(1), b.AddClosure(func(int) {}))
	})
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		in      string
		want    Scope
		wantErr bool
	}{
		{"", ScopeInstance, false},
		{"instance", ScopeInstance, false},
		{"Signature", ScopeSignature, false},
		{" signature ", ScopeSignature, false},
		{"global", ScopeInstance, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseScope(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "function", KindFunction.String())
	assert.Equal(t, "method", KindBoundMethod.String())
	assert.Equal(t, "closure", KindClosure.String())
	assert.Equal(t, "callable", KindCallable.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
