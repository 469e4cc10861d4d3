// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

import "golang.org/x/exp/slices"

// Values returns the generator of given values in given order,
// duplicates included.  The values are copied, i.e. a passed slice may
// be modified afterwards without affecting the generator.
func Values[T any](vv ...T) Generator[T] {
	if len(vv) == 0 {
		return Null[T]()
	}
	return debugBuilt("values", Generator[T]{
		seq: valuesSeq[T](slices.Clone(vv))})
}

// Of lifts a single value into a generator of size one.
func Of[T any](v T) Generator[T] { return Values(v) }

type valuesSeq[T any] []T

func (vs valuesSeq[T]) size() int { return len(vs) }

func (vs valuesSeq[T]) at(i int) T { return vs[i] }

// Row2 is a table row of two columns.
type Row2[A, B any] struct {
	V1 A
	V2 B
}

// Unpack returns the columns of r:
//
//	str, n := row.Unpack()
func (r Row2[A, B]) Unpack() (A, B) { return r.V1, r.V2 }

// R2 returns a row of given column values.
func R2[A, B any](a A, b B) Row2[A, B] { return Row2[A, B]{V1: a, V2: b} }

// Row3 is a table row of three columns.
type Row3[A, B, C any] struct {
	V1 A
	V2 B
	V3 C
}

// Unpack returns the columns of r.
func (r Row3[A, B, C]) Unpack() (A, B, C) { return r.V1, r.V2, r.V3 }

// R3 returns a row of given column values.
func R3[A, B, C any](a A, b B, c C) Row3[A, B, C] {
	return Row3[A, B, C]{V1: a, V2: b, V3: c}
}

// Table2 returns the generator of given two-column rows:
//
//	gen.Table2(
//	    gen.R2("one", 3),
//	    gen.R2("three", 5),
//	)
func Table2[A, B any](rows ...Row2[A, B]) Generator[Row2[A, B]] {
	return Values(rows...)
}

// Table3 returns the generator of given three-column rows.
func Table3[A, B, C any](rows ...Row3[A, B, C]) Generator[Row3[A, B, C]] {
	return Values(rows...)
}
