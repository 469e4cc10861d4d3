// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package genunit augments the go testing framework with data
// generators, i.e. a single suite test is evaluated for every
// combination of the values of the generators it uses.  From the
// genunit package you will mainly use the types [genunit.Suite] and
// [genunit.T] as well as the functions [genunit.Run] and
// [genunit.Generate].  The generators themselves are provided by the
// package gen:
//
//	import (
//	    "github.com/slukits/genunit"
//	    "github.com/slukits/genunit/pkg/gen"
//	)
//
//	type Sum struct{ genunit.Suite }
//
//	func (s *Sum) Is_commutative(t *genunit.T) {
//	    a := genunit.Generate(t, func() (gen.Generator[int], error) {
//	        return gen.Range(-2, 2)
//	    })
//	    b := genunit.Generate(t, func() (gen.Generator[int], error) {
//	        return gen.Values(0, 7, 42), nil
//	    })
//	    t.Eq(a+b, b+a)
//	}
//
//	func TestSum(t *testing.T) { genunit.Run(&Sum{}, t) }
//
// Is_commutative is evaluated fifteen times: for each value of a (the
// outer generator) every value of b (the inner generator) is tried.  A
// generator is built once at the first evaluation reaching its call of
// Generate.  Evaluations following a change of an outer value rebuild
// the generators after it, i.e. an inner generator may depend on the
// value of an outer one.
//
// If suites should run concurrently:
//
//	func TestSum(t *testing.T) {
//	    t.Parallel()
//	    genunit.Run(&Sum{}, t)
//	}
//
// If all tests of a suite should run concurrently as well:
//
//	func (s *Sum) SetUp(t *genunit.T) {
//	    t.Parallel()
//	}
//
// A suite test is a method of a genunit.Suite-embedder which is public,
// not special, and has exactly one argument (which then must be of type
// *genunit.T but this is not validated, i.e. genunit will produce a
// panic if not).  Special methods are Init, SetUp, TearDown, Finalize.
// Init and Finalize are executed before respectively after any other
// method.  SetUp and TearDown are executed before respectively after
// each evaluation of a test.
//
// A failing evaluation is reported with the generated values it failed
// with together with the seed of the suite run.  Random generators
// seeded with [T.Seed] reproduce their values if this seed is provided
// through the environment variable GENUNIT_SEED or a [SuiteSeeder]
// implementation.  A canceled evaluation, e.g. by [T.FatalOn], ends
// the evaluation only, the other combinations are still tried.
//
// genunit logs its internals through the logging facility of
// github.com/ipfs/go-log/v2, e.g. GOLOG_LOG_LEVEL="genunit=debug"
// reports each suite's seed and the number of evaluations of a test.
package genunit
