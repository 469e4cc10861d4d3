// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gen

import (
	"fmt"
	"reflect"
)

// Handle is the type erased form of a Generator.  It only reports the
// size of the erased generator and its element type; to read values the
// generator must be recovered with [Recover].  Handle is implemented by
// every Generator and by nothing else.
type Handle interface {
	Size() int
	ElemType() reflect.Type
	concat(Handle) (Handle, error)
	describe(i int) string
}

// Erase returns g as a Handle.
func Erase[T any](g Generator[T]) Handle { return g }

// Recover returns the typed generator of given handle.  An error
// wrapping ErrTypeMismatch is returned if h's element type is not T.
func Recover[T any](h Handle) (Generator[T], error) {
	g, ok := h.(Generator[T])
	if !ok {
		return Null[T](), typeErr(elemType[T](), h)
	}
	return g, nil
}

// ConcatHandles concatenates the generators of given handles.  An error
// wrapping ErrTypeMismatch is returned if not all handles have the same
// element type.  Without handles nil is returned.
func ConcatHandles(hh ...Handle) (Handle, error) {
	if len(hh) == 0 {
		return nil, nil
	}
	h := hh[0]
	for _, other := range hh[1:] {
		var err error
		if h, err = h.concat(other); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Describe renders the i-th value of the generator of given handle
// with fmt's %v verb or reports why there is no such value.
func Describe(h Handle, i int) string {
	if h == nil {
		return "<nil>"
	}
	return h.describe(i)
}

func (g Generator[T]) concat(h Handle) (Handle, error) {
	other, err := Recover[T](h)
	if err != nil {
		return nil, err
	}
	return g.Then(other), nil
}

func (g Generator[T]) describe(i int) string {
	v, err := g.Get(i)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return fmt.Sprintf("%v", v)
}

func typeErr(want reflect.Type, h Handle) error {
	if h == nil {
		return fmt.Errorf("%w: want %v; got nil handle",
			ErrTypeMismatch, want)
	}
	return fmt.Errorf("%w: want %v; got %v",
		ErrTypeMismatch, want, h.ElemType())
}
