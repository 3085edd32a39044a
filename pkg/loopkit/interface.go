package loopkit

import (
	"context"
	"iter"
)

// Sequence is a re-traversable, cursor based view over the elements of a loop.
type Sequence[T any] interface {
	// Advance moves the cursor forward and returns the element under it.
	// When the cursor reached the end, Advance returns the zero value and false.
	Advance() (T, bool)
	// HasNext reports whether Advance would return a new element.
	HasNext() bool
	// Reset rewinds the cursor to the first element.
	Reset()
	// Iter returns a lazy sequence that restarts the traversal every time it is ranged over.
	Iter() iter.Seq[T]
	// Current returns the element the cursor last stopped at.
	Current() T
	// RemoveCurrent removes the element the last Advance returned,
	// and fails with ErrUnsupportedOperation when no Advance happened since the last Reset or RemoveCurrent.
	RemoveCurrent() error
}

// Collection is the read and append surface of a loop's materialised element list.
// Removing operations exist to satisfy collection shaped call sites, but they always fail with ErrUnsupportedOperation.
type Collection[T any] interface {
	Size() int
	IsEmpty() bool
	Contains(v T) bool
	ContainsAll(vs ...T) bool
	ToSlice() []T
	Add(v T)
	AddAll(vs ...T)
	Remove(v T) error
	RemoveAll(vs ...T) error
	RetainAll(vs ...T) error
	Clear() error
}

// Observer is notified with the element every time the Observable it is attached to advances.
type Observer[T any] interface {
	Update(v T)
}

// ObserverFunc allows a plain function to be used as an Observer.
type ObserverFunc[T any] func(v T)

func (fn ObserverFunc[T]) Update(v T) { fn(v) }

// Observable accepts observers that are notified with each replayed element.
type Observable[T any] interface {
	AddObserver(o Observer[T])
}

// Runnable replays a loop's body over every element.
type Runnable interface {
	Run()
}

// Callable is the context aware form of Runnable.
// Its signature is compatible with tasker.Task.
type Callable interface {
	Call(ctx context.Context) error
}

var (
	_ Sequence[any]   = (*To[any])(nil)
	_ Collection[any] = (*To[any])(nil)
	_ Observable[any] = (*To[any])(nil)
	_ Observer[any]   = (*To[any])(nil)
	_ Observer[any]   = ObserverFunc[any](nil)
	_ Runnable        = (*To[any])(nil)
	_ Callable        = (*To[any])(nil)
)
