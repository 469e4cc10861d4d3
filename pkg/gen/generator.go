// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package gen provides finite, immutable sequences of values of a single
element type, the generators, which feed data driven tests.  Generators
are built from the primitives [Range], [Values], [Table2], [Table3],
[RandomIn] and [Random] and concatenated with [Generator.Then],
[Generator.ThenValues] or [Concat]:

	g := gen.Must(gen.Range(1, 2)).ThenValues(9, 7) // 1, 2, 9, 7

The zero value of a Generator is the empty generator which is returned
by [Null] and is the identity of concatenation.  A generator may be
type erased into a [Handle] which only knows its size; [Recover] gets
the typed generator back iff the right element type is asked for.
*/
package gen

import (
	"fmt"
	"reflect"
	"strings"

	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/exp/slices"
)

var log = logging.Logger("gen")

// sequence is implemented by the primitive generators and their
// concatenation.  at is only called with 0 <= i < size().
type sequence[T any] interface {
	size() int
	at(i int) T
}

// Generator is a finite ordered sequence of values of type T.  A
// Generator is a value which is safe to copy; its sequence never
// changes after construction.  The zero value is the empty generator.
type Generator[T any] struct {
	seq sequence[T]
}

// Null returns the empty generator of element type T which is the
// two-sided identity of [Generator.Then].
func Null[T any]() Generator[T] { return Generator[T]{} }

// Must returns given generator or panics if given error is not nil:
//
//	gen.Must(gen.Range(1, 3))
func Must[T any](g Generator[T], err error) Generator[T] {
	if err != nil {
		panic(err)
	}
	return g
}

// Size returns the number of values of g.
func (g Generator[T]) Size() int {
	if g.seq == nil {
		return 0
	}
	return g.seq.size()
}

// Get returns the i-th value of g.  An error wrapping ErrEmptySequence
// or ErrOutOfRange is returned if g has no i-th value.
func (g Generator[T]) Get(i int) (T, error) {
	if i < 0 || i >= g.Size() {
		var zero T
		return zero, indexErr(i, g.Size())
	}
	return g.seq.at(i), nil
}

// At returns the i-th value of g and panics like a slice would if g has
// no i-th value.  The panic value is the error Get would return.
func (g Generator[T]) At(i int) T {
	v, err := g.Get(i)
	if err != nil {
		panic(err)
	}
	return v
}

// Slice returns a copy of g's values.
func (g Generator[T]) Slice() []T {
	vv := make([]T, g.Size())
	for i := range vv {
		vv[i] = g.seq.at(i)
	}
	return vv
}

// Then returns the concatenation of g with given generators, i.e. its
// size is the sum of all sizes and its values are g's values followed
// by the values of the given generators in given order.
func (g Generator[T]) Then(gg ...Generator[T]) Generator[T] {
	return Concat(append([]Generator[T]{g}, gg...)...)
}

// ThenValues lifts given values into a generator which is appended to
// g, i.e. it is a shortcut for g.Then(Values(vv...)).
func (g Generator[T]) ThenValues(vv ...T) Generator[T] {
	return g.Then(Values(vv...))
}

// ElemType returns the reflected element type of g.
func (g Generator[T]) ElemType() reflect.Type { return elemType[T]() }

// String renders g's element type and its first few values.
func (g Generator[T]) String() string {
	const max = 8
	b := &strings.Builder{}
	fmt.Fprintf(b, "gen[%v]{", g.ElemType())
	for i := 0; i < g.Size() && i < max; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(b, "%v", g.seq.at(i))
	}
	if g.Size() > max {
		fmt.Fprintf(b, " ...(%d)", g.Size())
	}
	b.WriteString("}")
	return b.String()
}

func elemType[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Concat concatenates given generators in given order.  Nested
// concatenations are flattened and empty generators dropped, hence
// Concat is associative and reading a value costs a binary search over
// the concatenated parts.
func Concat[T any](gg ...Generator[T]) Generator[T] {
	parts := []sequence[T]{}
	for _, g := range gg {
		switch seq := g.seq.(type) {
		case nil:
		case *concatSeq[T]:
			parts = append(parts, seq.parts...)
		default:
			if seq.size() > 0 {
				parts = append(parts, seq)
			}
		}
	}
	switch len(parts) {
	case 0:
		return Null[T]()
	case 1:
		return Generator[T]{seq: parts[0]}
	}
	return Generator[T]{seq: newConcatSeq(parts)}
}

// concatSeq is the flattened concatenation of two or more non-empty
// sequences.  ends[i] is the exclusive end offset of parts[i].
type concatSeq[T any] struct {
	parts []sequence[T]
	ends  []int
}

func newConcatSeq[T any](parts []sequence[T]) *concatSeq[T] {
	cs := &concatSeq[T]{parts: parts, ends: make([]int, len(parts))}
	end := 0
	for i, p := range parts {
		end += p.size()
		cs.ends[i] = end
	}
	return cs
}

func (cs *concatSeq[T]) size() int { return cs.ends[len(cs.ends)-1] }

func (cs *concatSeq[T]) at(i int) T {
	idx, found := slices.BinarySearch(cs.ends, i)
	if found {
		// i is the first index of the following part
		idx++
	}
	start := 0
	if idx > 0 {
		start = cs.ends[idx-1]
	}
	return cs.parts[idx].at(i - start)
}

func debugBuilt[T any](kind string, g Generator[T]) Generator[T] {
	log.Debugw("generator built", "kind", kind, "size", g.Size(),
		"type", g.ElemType().String())
	return g
}
