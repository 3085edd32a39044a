// Package loopkit turns a finite source of values into a replayable loop.
//
// # Summary
//
// A loop (To) eagerly materialises the elements of its source,
// which can be a list of values, a pull Iterator, an iterable iter.Seq, an Enumeration,
// a failable iter.Seq2[T, error] or a channel.
// The source kind is transparent after construction: the same elements give the same loop.
//
// A loop carries a body, a plain function that is replayed with an element
// every time the loop runs over it, either all at once with Run / Call,
// or step by step with Advance.
// Every replay notifies the registered observers,
// so advancing one loop can drive another one (see Chain).
//
// Loops are append only: Add and AddAll grow the element list,
// while Remove, RemoveAll, RetainAll and Clear always fail with ErrUnsupportedOperation.
// The single exception is RemoveCurrent, which drops the element the last Advance returned.
//
// Observer notification is synchronous and re-entrant.
// When two loops observe each other, keeping the chain finite is the caller's responsibility.
//
// A loop is not safe for concurrent use.
package loopkit

import (
	"context"
	"iter"
	"reflect"
	"slices"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/frameless/pkg/reflectkit"
	"go.llib.dev/frameless/port/option"
)

// Body is the per-element block of a loop.
type Body[T any] func(v T)

// To is a loop over a materialised list of elements.
type To[T any] struct {
	body      Body[T]
	elements  []T
	cursor    int
	removable bool
	current   T
	observers []Observer[T]

	source string
	logger *logging.Logger
}

// Values creates a loop over the given values.
func Values[T any](body Body[T], vs ...T) (*To[T], error) {
	return FromSlice(body, vs)
}

// FromSlice creates a loop over a copy of the given slice.
func FromSlice[T any](body Body[T], vs []T, opts ...Option) (*To[T], error) {
	return newTo(sourceValues, body, slices.Clone(vs), opts)
}

// FromIterator drains the iterator and creates a loop over its elements.
func FromIterator[T any](body Body[T], i Iterator[T], opts ...Option) (*To[T], error) {
	if isNil(i) {
		return nil, ErrInvalidArgument.F("nil %s source", sourceIterator)
	}
	vs, err := drainIterator(i)
	if err != nil {
		return nil, errorkit.Merge(ErrInvalidArgument.F("failed to drain %s source", sourceIterator), err)
	}
	return newTo(sourceIterator, body, vs, opts)
}

// FromIterable collects the sequence and creates a loop over its elements.
func FromIterable[T any](body Body[T], i iter.Seq[T], opts ...Option) (*To[T], error) {
	if i == nil {
		return nil, ErrInvalidArgument.F("nil %s source", sourceIterable)
	}
	return newTo(sourceIterable, body, drainIterable(i), opts)
}

// FromEnumeration drains the enumeration and creates a loop over its elements.
func FromEnumeration[T any](body Body[T], e Enumeration[T], opts ...Option) (*To[T], error) {
	if isNil(e) {
		return nil, ErrInvalidArgument.F("nil %s source", sourceEnumeration)
	}
	return newTo(sourceEnumeration, body, drainEnumeration(e), opts)
}

// FromSeqE collects a failable sequence and creates a loop over its elements.
// The first error yielded by the sequence fails the construction.
func FromSeqE[T any](body Body[T], i iter.Seq2[T, error], opts ...Option) (*To[T], error) {
	if i == nil {
		return nil, ErrInvalidArgument.F("nil %s source", sourceSeqE)
	}
	vs, err := drainSeqE(i)
	if err != nil {
		return nil, errorkit.Merge(ErrInvalidArgument.F("failed to drain %s source", sourceSeqE), err)
	}
	return newTo(sourceSeqE, body, vs, opts)
}

// FromChan receives from the channel until it is closed and creates a loop over the received elements.
func FromChan[T any](body Body[T], ch <-chan T, opts ...Option) (*To[T], error) {
	if ch == nil {
		return nil, ErrInvalidArgument.F("nil %s source", sourceChan)
	}
	return newTo(sourceChan, body, drainChan(ch), opts)
}

// isNil also catches typed nil values behind an interface, like a nil *T iterator.
func isNil(v any) bool {
	return v == nil || reflectkit.IsNil(reflect.ValueOf(v))
}

func newTo[T any](source string, body Body[T], vs []T, opts []Option) (*To[T], error) {
	if len(vs) == 0 {
		return nil, ErrInvalidArgument.F("empty %s source", source)
	}
	c := option.ToConfig[Config](opts)
	l := &To[T]{
		body:     body,
		elements: vs,
		current:  vs[len(vs)-1],
		source:   source,
		logger:   c.Logger,
	}
	l.debug("loop materialised",
		logging.Field("source", source),
		logging.Field("size", len(vs)))
	if c.RunOnConstruct {
		for _, v := range vs[:len(vs)-1] {
			l.replay(v)
		}
	}
	return l, nil
}

// Current returns the element the loop rests on.
// Right after construction it is the last element of the source.
func (l *To[T]) Current() T {
	return l.current
}

// HasNext reports whether Advance has an element left to return.
func (l *To[T]) HasNext() bool {
	return l.cursor < len(l.elements)
}

// Reset rewinds the cursor to the first element.
func (l *To[T]) Reset() {
	l.cursor = 0
	l.removable = false
}

// Advance returns the next element, replays the body with it and notifies the observers.
// Once the elements are exhausted, every further call returns the zero value and false,
// without calling the body or the observers, until Reset is called.
func (l *To[T]) Advance() (T, bool) {
	if !l.HasNext() {
		var zero T
		return zero, false
	}
	v := l.elements[l.cursor]
	l.cursor++
	l.removable = true
	l.current = v
	l.replay(v)
	return v, true
}

// RemoveCurrent removes the element the last Advance returned and steps the cursor back,
// so the following Advance returns the element that came after the removed one.
// It is the only way to remove an element, and it needs an Advance since the last Reset or RemoveCurrent.
// Current keeps the removed element.
func (l *To[T]) RemoveCurrent() error {
	if !l.removable {
		return l.warnUnsupported(ErrUnsupportedOperation.F("RemoveCurrent needs a preceding Advance"))
	}
	l.cursor--
	l.elements = slices.Delete(l.elements, l.cursor, l.cursor+1)
	l.removable = false
	return nil
}

// Iter returns a sequence that walks the loop with Advance.
// Each range over it starts from the first element.
func (l *To[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		l.Reset()
		for {
			v, ok := l.Advance()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Run replays the body for every element in order, notifying the observers after each call.
// It leaves the cursor and the current element untouched.
func (l *To[T]) Run() {
	for _, v := range l.elements {
		l.replay(v)
	}
}

// Call is Run that stops between two elements when the context is done.
func (l *To[T]) Call(ctx context.Context) error {
	for _, v := range l.elements {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.replay(v)
	}
	return nil
}

// AddObserver registers an observer that is notified every time the loop replays an element
// or an element is added to it.
func (l *To[T]) AddObserver(o Observer[T]) {
	if o == nil {
		return
	}
	l.observers = append(l.observers, o)
	l.debug("observer added", logging.Field("observers", len(l.observers)))
}

// Update advances the loop, which makes a loop usable as an Observer of another loop.
// An exhausted loop starts over from its first element.
func (l *To[T]) Update(T) {
	step[T](l)
}

// Chain makes every notification of from advance to.
// The two loops may have different element types.
func Chain[A, B any](from Observable[A], to Sequence[B]) {
	from.AddObserver(ObserverFunc[A](func(A) { step(to) }))
}

func step[T any](s Sequence[T]) {
	if !s.HasNext() {
		s.Reset()
	}
	s.Advance()
}

// Size returns the number of elements.
func (l *To[T]) Size() int {
	return len(l.elements)
}

// IsEmpty reports whether every element got removed with RemoveCurrent.
func (l *To[T]) IsEmpty() bool {
	return len(l.elements) == 0
}

// Contains reports whether an element deeply equals v.
func (l *To[T]) Contains(v T) bool {
	return slices.ContainsFunc(l.elements, func(e T) bool {
		return reflectkit.Equal(e, v)
	})
}

// ContainsAll reports whether every value of vs is contained.
func (l *To[T]) ContainsAll(vs ...T) bool {
	for _, v := range vs {
		if !l.Contains(v) {
			return false
		}
	}
	return true
}

// ToSlice returns a copy of the elements.
func (l *To[T]) ToSlice() []T {
	return slices.Clone(l.elements)
}

// Add appends the element and notifies the observers with it.
// The body is not called.
func (l *To[T]) Add(v T) {
	l.elements = append(l.elements, v)
	l.notify(v)
}

// AddAll adds the values one by one, notifying the observers with each.
func (l *To[T]) AddAll(vs ...T) {
	for _, v := range vs {
		l.Add(v)
	}
}

// Remove always fails with ErrUnsupportedOperation, use RemoveCurrent during a traversal.
func (l *To[T]) Remove(T) error {
	return l.unsupported("Remove")
}

// RemoveAll always fails with ErrUnsupportedOperation.
func (l *To[T]) RemoveAll(...T) error {
	return l.unsupported("RemoveAll")
}

// RetainAll always fails with ErrUnsupportedOperation.
func (l *To[T]) RetainAll(...T) error {
	return l.unsupported("RetainAll")
}

// Clear always fails with ErrUnsupportedOperation.
func (l *To[T]) Clear() error {
	return l.unsupported("Clear")
}

func (l *To[T]) replay(v T) {
	if l.body != nil {
		l.body(v)
	}
	l.notify(v)
}

func (l *To[T]) notify(v T) {
	// observers registered during notification are only reached from the next element
	for _, o := range slices.Clone(l.observers) {
		o.Update(v)
	}
}

func (l *To[T]) unsupported(op string) error {
	return l.warnUnsupported(errUnsupported(op))
}

func (l *To[T]) warnUnsupported(err error) error {
	if l.logger != nil {
		l.logger.Warn(context.Background(), "unsupported loop mutation",
			logging.Field("source", l.source),
			logging.ErrField(err))
	}
	return err
}

func (l *To[T]) debug(msg string, ds ...logging.Detail) {
	if l.logger == nil {
		return
	}
	l.logger.Debug(context.Background(), msg, ds...)
}
