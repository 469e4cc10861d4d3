// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Range returns the generator of the integers a, a+1, ..., b.  Its
// size is b-a+1 or zero if a > b.  An error wrapping ErrConstruction is
// returned if the size doesn't fit into an int.
func Range[T constraints.Integer](a, b T) (Generator[T], error) {
	if a > b {
		return Null[T](), nil
	}
	n, ok := span(a, b)
	if !ok {
		return Null[T](), constructionErr(
			"range [%v,%v] exceeds the maximal generator size", a, b)
	}
	return debugBuilt("range", Generator[T]{seq: &rangeSeq[T]{
		first: a, n: n}}), nil
}

type rangeSeq[T constraints.Integer] struct {
	first T
	n     int
}

func (r *rangeSeq[T]) size() int { return r.n }

func (r *rangeSeq[T]) at(i int) T { return r.first + T(i) }

// span returns the number of integers in [lo,hi] for lo <= hi and false
// if that number isn't representable by an int.  The difference is
// calculated modulo 2^64 which is exact for every integer type of at
// most 64 bits.
func span[T constraints.Integer](lo, hi T) (int, bool) {
	d := uint64(hi) - uint64(lo)
	if d >= math.MaxInt {
		return 0, false
	}
	return int(d) + 1, true
}
