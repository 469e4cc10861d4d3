// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

import (
	"errors"
	"fmt"
)

// ErrEmptySequence is returned reading from a generator of size zero.
var ErrEmptySequence = errors.New("gen: empty sequence")

// ErrOutOfRange is returned reading a generator at an index which is
// negative or not smaller than its size.
var ErrOutOfRange = errors.New("gen: index out of range")

// ErrTypeMismatch is returned if a type erased generator is recovered
// with an element type it was not created with or if erased generators
// of different element types are concatenated.
var ErrTypeMismatch = errors.New("gen: element type mismatch")

// ErrConstruction is returned by a generator constructor whose
// arguments don't admit the requested sequence, e.g. a random range
// with equal bounds.
var ErrConstruction = errors.New("gen: construction failure")

func indexErr(i, size int) error {
	if size == 0 {
		return fmt.Errorf("%w: read at %d", ErrEmptySequence, i)
	}
	return fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfRange, i, size)
}

func constructionErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConstruction, fmt.Sprintf(format, args...))
}
