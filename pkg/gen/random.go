// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

import (
	"sync"

	"golang.org/x/exp/constraints"
	"pgregory.net/rand"
)

// Number is the type set of element types [Random] can draw from.
type Number interface {
	constraints.Integer | constraints.Float
}

// Option configures the construction of a random generator.
type Option func(*options)

type options struct {
	seed   uint64
	seeded bool
}

// WithSeed seeds the pseudo random source of a random generator.
// Generators built with the same seed and arguments have the same
// values.  Without a seed a random seed is used.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed, o.seeded = seed, true }
}

func newRand(oo []Option) *rand.Rand {
	o := &options{}
	for _, opt := range oo {
		opt(o)
	}
	if o.seeded {
		return rand.New(o.seed)
	}
	return rand.New()
}

// RandomIn returns a generator of hi-lo+1 uniformly distributed random
// integers from [lo, hi] whereas no value equals its predecessor.  The
// values are drawn on first access up to the accessed index and kept,
// i.e. reading the same index twice gives the same value while memory
// grows only with the largest index read.  An error wrapping ErrConstruction is returned
// if lo >= hi since then a sequence without equal neighbors can't be
// drawn or the size doesn't fit an int.
func RandomIn[T constraints.Integer](
	lo, hi T, oo ...Option,
) (Generator[T], error) {
	if lo >= hi {
		return Null[T](), constructionErr(
			"random range [%v,%v] needs lo < hi", lo, hi)
	}
	n, ok := span(lo, hi)
	if !ok {
		return Null[T](), constructionErr(
			"random range [%v,%v] exceeds the maximal generator size",
			lo, hi)
	}
	rnd, width := newRand(oo), uint64(n)
	return debugBuilt("random range", draw(n, func() T {
		return lo + T(rnd.Uint64n(width))
	})), nil
}

// Random returns a generator of n random values of type T whereas no
// value equals its predecessor.  Integers are drawn from the type's
// full range, floats from [0,1).  The values are drawn on first access
// like the values of [RandomIn].  An error wrapping ErrConstruction is returned for a negative n.
func Random[T Number](n int, oo ...Option) (Generator[T], error) {
	if n < 0 {
		return Null[T](), constructionErr(
			"random: negative size %d", n)
	}
	if n == 0 {
		return Null[T](), nil
	}
	rnd := newRand(oo)
	if isFloat[T]() {
		return debugBuilt("random", draw(n, func() T {
			for {
				// a float32 conversion may round up to 1
				if v := T(rnd.Float64()); float64(v) < 1 {
					return v
				}
			}
		})), nil
	}
	return debugBuilt("random", draw(n, func() T {
		return T(rnd.Uint64())
	})), nil
}

func isFloat[T Number]() bool {
	var one T = 1
	return one/2 != 0
}

// draw returns a generator of n values sampled from given distribution
// whereas a value is resampled until it differs from its predecessor.
func draw[T comparable](n int, next func() T) Generator[T] {
	return Generator[T]{seq: &drawnSeq[T]{n: n, next: next}}
}

// drawnSeq draws its values lazily.  Copies of a generator share the
// same drawnSeq hence the drawn values are guarded by a mutex.
type drawnSeq[T comparable] struct {
	mutex sync.Mutex
	n     int
	next  func() T
	drawn []T
}

func (ds *drawnSeq[T]) size() int { return ds.n }

func (ds *drawnSeq[T]) at(i int) T {
	ds.mutex.Lock()
	defer ds.mutex.Unlock()
	for len(ds.drawn) <= i {
		v := ds.next()
		for len(ds.drawn) > 0 && v == ds.drawn[len(ds.drawn)-1] {
			v = ds.next()
		}
		ds.drawn = append(ds.drawn, v)
	}
	return ds.drawn[i]
}
