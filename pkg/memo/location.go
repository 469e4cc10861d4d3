// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package memo memoizes generators per source location in a [Cache] and
drives the repeated evaluation of a test body over all combinations of
its memoized generators.  A test framework evaluating a test body does:

	cache := memo.NewCache()
	defer cache.Dispose()
	for {
	    body(cache) // calls memo.Generate(cache, memo.Caller(0), factory)
	    if cache.Step() == memo.Done {
	        break
	    }
	}

[Generate] invokes a factory only at the first visit of a location and
returns the value at the location's cursor; [Cache.Step] advances the
cursors like an odometer whose last inserted location is the fastest
moving digit.
*/
package memo

import (
	"fmt"
	"strings"
)

// Location identifies a call site in a source file.  Locations are
// comparable and are used as cache keys.
type Location struct {
	File   string
	Line   int
	Column int
}

// Compare orders locations lexicographically by file, line and column
// returning -1, 0 or 1 if l is less, equal or greater than o.
func (l Location) Compare(o Location) int {
	if c := strings.Compare(l.File, o.File); c != 0 {
		return c
	}
	switch {
	case l.Line < o.Line:
		return -1
	case l.Line > o.Line:
		return 1
	case l.Column < o.Column:
		return -1
	case l.Column > o.Column:
		return 1
	}
	return 0
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// LocationError is returned by the operations of this package and
// reports the location at which the wrapped error occurred.
type LocationError struct {
	Location Location
	Err      error
}

func (e *LocationError) Error() string {
	return fmt.Sprintf("%v: %v", e.Location, e.Err)
}

func (e *LocationError) Unwrap() error { return e.Err }

func locErr(l Location, err error) error {
	return &LocationError{Location: l, Err: err}
}
