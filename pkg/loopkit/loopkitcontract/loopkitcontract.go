package loopkitcontract

import (
	"testing"

	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/frameless/port/contract"

	"go.llib.dev/loopy/pkg/loopkit"
)

// Loop is the surface the contract exercises.
type Loop[T any] interface {
	loopkit.Sequence[T]
	loopkit.Collection[T]
	loopkit.Observable[T]
}

// Subject is a freshly made Loop with the elements it was made from.
type Subject[T any] struct {
	Loop Loop[T]
	// Elements are the values the Loop was created from, in order.
	Elements []T
	// MakeElement creates a value that can be added to the Loop.
	MakeElement func(testing.TB) T
}

// Sequence checks the traversal, observer and collection behaviour of a loop implementation.
func Sequence[T any](mk contract.Make[Subject[T]]) contract.Contract {
	s := testcase.NewSpec(nil)

	subject := testcase.Let(s, func(t *testcase.T) Subject[T] {
		sub := mk(t)
		assert.NotEmpty(t, sub.Elements, "loops can't be empty")
		return sub
	})

	advanceAll := func(t *testcase.T) []T {
		var got []T
		loop := subject.Get(t).Loop
		for loop.HasNext() {
			v, ok := loop.Advance()
			assert.True(t, ok)
			got = append(got, v)
		}
		return got
	}

	s.Test("it holds the source elements", func(t *testcase.T) {
		assert.Equal(t, len(subject.Get(t).Elements), subject.Get(t).Loop.Size())
		assert.False(t, subject.Get(t).Loop.IsEmpty())
		assert.Equal(t, subject.Get(t).Elements, subject.Get(t).Loop.ToSlice())
	})

	s.Test("Advance returns every element once, in order", func(t *testcase.T) {
		assert.Equal(t, subject.Get(t).Elements, advanceAll(t))
	})

	s.Test("an exhausted loop keeps reporting that it has no more elements", func(t *testcase.T) {
		advanceAll(t)
		loop := subject.Get(t).Loop
		t.Random.Repeat(1, 3, func() {
			_, ok := loop.Advance()
			assert.False(t, ok)
			assert.False(t, loop.HasNext())
		})
	})

	s.Test("Reset allows a new traversal", func(t *testcase.T) {
		advanceAll(t)
		subject.Get(t).Loop.Reset()
		assert.Equal(t, subject.Get(t).Elements, advanceAll(t))
	})

	s.Test("Iter can be ranged over multiple times", func(t *testcase.T) {
		loop := subject.Get(t).Loop
		for range 2 {
			var got []T
			for v := range loop.Iter() {
				got = append(got, v)
			}
			assert.Equal(t, subject.Get(t).Elements, got)
		}
	})

	s.Test("Current follows the advancing cursor", func(t *testcase.T) {
		loop := subject.Get(t).Loop
		loop.Reset()
		v, ok := loop.Advance()
		assert.True(t, ok)
		assert.Equal(t, v, loop.Current())
	})

	s.Test("observers are notified once per advance", func(t *testcase.T) {
		var notified []T
		loop := subject.Get(t).Loop
		loop.AddObserver(loopkit.ObserverFunc[T](func(v T) { notified = append(notified, v) }))
		got := advanceAll(t)
		assert.Equal(t, got, notified)
	})

	s.Test("Add appends the element and makes it contained", func(t *testcase.T) {
		loop := subject.Get(t).Loop
		v := subject.Get(t).MakeElement(t)
		size := loop.Size()
		loop.Add(v)
		assert.Equal(t, size+1, loop.Size())
		assert.True(t, loop.Contains(v))
		assert.True(t, loop.ContainsAll(subject.Get(t).Elements...))
	})

	s.Test("removing operations are unsupported", func(t *testcase.T) {
		loop := subject.Get(t).Loop
		v := subject.Get(t).Elements[0]
		for _, err := range []error{
			loop.Remove(v),
			loop.RemoveAll(v),
			loop.RetainAll(v),
			loop.Clear(),
		} {
			assert.ErrorIs(t, loopkit.ErrUnsupportedOperation, err)
		}
		assert.Equal(t, len(subject.Get(t).Elements), loop.Size())
	})

	s.Test("RemoveCurrent drops the element the last Advance returned", func(t *testcase.T) {
		loop := subject.Get(t).Loop
		elements := subject.Get(t).Elements
		loop.Reset()
		_, ok := loop.Advance()
		assert.True(t, ok)
		assert.NoError(t, loop.RemoveCurrent())
		assert.Equal(t, len(elements)-1, loop.Size())
		assert.ErrorIs(t, loopkit.ErrUnsupportedOperation, loop.RemoveCurrent(),
			"a second RemoveCurrent needs a new Advance")
		rest := elements[1:]
		if len(rest) == 0 {
			assert.True(t, loop.IsEmpty())
			return
		}
		assert.Equal(t, rest, loop.ToSlice())
		assert.Equal(t, rest, advanceAll(t))
	})

	s.Test("RemoveCurrent without an Advance is unsupported", func(t *testcase.T) {
		loop := subject.Get(t).Loop
		assert.ErrorIs(t, loopkit.ErrUnsupportedOperation, loop.RemoveCurrent())
		assert.Equal(t, len(subject.Get(t).Elements), loop.Size())
	})

	return s.AsSuite("loop")
}
