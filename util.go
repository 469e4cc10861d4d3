// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package genunit

import "sync"

// Fixtures maps the evaluations of suite tests to their fixtures.  Each
// evaluation of a generating test gets a T of its own, hence a fixture
// set in a suite's SetUp belongs to exactly one evaluation even if the
// evaluations of the suite's tests run in parallel:
//
//	type strlen struct {
//	    genunit.Suite
//	    ff genunit.Fixtures
//	}
//
//	func (s *strlen) SetUp(t *genunit.T) {
//	    t.Parallel()
//	    s.ff.Set(t, &strings.Builder{})
//	}
//
//	func (s *strlen) TearDown(t *genunit.T) { s.ff.Del(t) }
//
//	func (s *strlen) Counts_runes(t *genunit.T) {
//	    str := genunit.Generate(t, func() (gen.Generator[string], error) {
//	        return gen.Values("a", "äb", "c€d"), nil
//	    })
//	    b := s.ff.Get(t).(*strings.Builder)
//	    b.WriteString(str)
//	    t.Eq(utf8.RuneCountInString(str), utf8.RuneCountInString(b.String()))
//	}
//
// A Fixtures value must not be copied after its first use.
type Fixtures struct {
	ff sync.Map
}

// Set maps given evaluation to given fixture.
func (ff *Fixtures) Set(t *T, fixture interface{}) { ff.ff.Store(t, fixture) }

// Get returns the fixture of given evaluation or nil.
func (ff *Fixtures) Get(t *T) interface{} {
	fixture, _ := ff.ff.Load(t)
	return fixture
}

// Del removes the fixture of given evaluation and returns it.
func (ff *Fixtures) Del(t *T) interface{} {
	fixture, _ := ff.ff.LoadAndDelete(t)
	return fixture
}

// Len returns the number of evaluations having a fixture.
func (ff *Fixtures) Len() (n int) {
	ff.ff.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}
