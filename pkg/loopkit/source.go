package loopkit

import (
	"io"
	"iter"
	"slices"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/iterkit"
)

const (
	sourceValues      = "values"
	sourceIterator    = "iterator"
	sourceIterable    = "iterable"
	sourceEnumeration = "enumeration"
	sourceSeqE        = "failable sequence"
	sourceChan        = "channel"
)

// Iterator is a pull style iterator.
//
// When the Iterator also implements an `Err() error` method,
// a non-nil error from it fails the loop construction.
// When it implements io.Closer, it is closed once it is drained.
type Iterator[T any] interface {
	// Next moves to the next element and reports whether there was one.
	Next() bool
	// Value returns the element Next moved to.
	Value() T
}

// Enumeration is the has-more/next-element flavour of a pull iterator.
type Enumeration[T any] interface {
	HasMoreElements() bool
	NextElement() T
}

type errIterator interface{ Err() error }

// Enumerate returns an Enumeration over a copy of the given values.
func Enumerate[T any](vs []T) Enumeration[T] {
	return &sliceEnumeration[T]{values: slices.Clone(vs)}
}

type sliceEnumeration[T any] struct {
	values []T
	index  int
}

func (e *sliceEnumeration[T]) HasMoreElements() bool { return e.index < len(e.values) }

func (e *sliceEnumeration[T]) NextElement() T {
	v := e.values[e.index]
	e.index++
	return v
}

func drainIterator[T any](i Iterator[T]) (_ []T, rErr error) {
	if closer, ok := i.(io.Closer); ok {
		defer errorkit.Finish(&rErr, closer.Close)
	}
	var vs []T
	for i.Next() {
		vs = append(vs, i.Value())
	}
	if ei, ok := i.(errIterator); ok {
		if err := ei.Err(); err != nil {
			return nil, err
		}
	}
	return vs, nil
}

func enumerationSeq[T any](e Enumeration[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for e.HasMoreElements() {
			if !yield(e.NextElement()) {
				return
			}
		}
	}
}

func drainEnumeration[T any](e Enumeration[T]) []T {
	return iterkit.Collect(enumerationSeq(e))
}

func drainIterable[T any](i iter.Seq[T]) []T {
	return iterkit.Collect(i)
}

func drainSeqE[T any](i iter.Seq2[T, error]) ([]T, error) {
	return iterkit.CollectE(i)
}

func drainChan[T any](ch <-chan T) []T {
	return iterkit.Collect(iterkit.Chan(ch))
}
