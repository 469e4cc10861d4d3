// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package genunit

import (
	"github.com/slukits/genunit/pkg/gen"
	"github.com/slukits/genunit/pkg/memo"
)

// Generate returns the value of the generator built by given factory
// which belongs to the current evaluation of given test.  The factory
// is called only at the first evaluation reaching the call of Generate;
// the generator is reused by the evaluations following it:
//
//	func (s *MySuite) Strlen(t *genunit.T) {
//	    str, n := genunit.Generate(t, func() (
//	        gen.Generator[gen.Row2[string, int]], error,
//	    ) {
//	        return gen.Table2(
//	            gen.R2("first", 5),
//	            gen.R2("second", 6),
//	        ), nil
//	    }).Unpack()
//	    t.Eq(n, len(str))
//	}
//
// Each call of Generate in a suite-test is identified by its source
// location; a test with several calls is evaluated for every
// combination of their values.  Generate fails given test if the
// factory fails, if the generator is empty or if a location's element
// type changes.  The zero value of V is returned if the test isn't
// canceled by such a failure.
func Generate[V any](
	t *T, factory func() (gen.Generator[V], error),
) (v V) {
	t.t.Helper()
	loc := memo.Caller(0)
	if t.cache == nil {
		t.Fatalf("genunit: generate: %s: no generator cache", loc)
		return v
	}
	v, err := memo.Generate(t.cache, loc, factory)
	if err != nil {
		t.Fatalf("genunit: generate: %v", err)
		return v
	}
	return v
}
