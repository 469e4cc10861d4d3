// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package genunit

import (
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"

	logging "github.com/ipfs/go-log/v2"
	"github.com/slukits/genunit/pkg/memo"
	"pgregory.net/rand"
)

var log = logging.Logger("genunit")

// SeedEnv names the environment variable which fixes the seed of all
// suite runs not implementing [SuiteSeeder].
const SeedEnv = "GENUNIT_SEED"

// FailedWith prefixes the report of a failed evaluation which lists the
// generated values of the evaluation.
const FailedWith = "genunit: failed with generated values"

// Suite implements the private methods of the SuiteEmbedder interface.
// I.e. if you want to run the tests of your own test-suite using
// *genunit.Run* you must embed this type, e.g.:
//
//	type MySuite struct { genunit.Suite }
//
//	// optional Init-method
//	// optional SetUp-method
//	// optional TearDown-method
//
//	// ... the suite-tests as methods of *MySuite ...
//
//	// optional Finalize-method
//
//	func TestMySuite(t *testing.T) { genunit.Run(&MySuite{}, t) }
type Suite struct {
	t               *testing.T
	self            interface{}
	value           reflect.Value
	rtype           reflect.Type
	setUp, tearDown *reflect.Method
	seed            uint64
}

// newFinalizer returns a function which may be used to register at
// t.Cleanup which calls suite's (given) Finalize-method with provided
// values.
func newFinalizer(
	method *reflect.Method, suite, genunitF reflect.Value,
) func() {
	return func() {
		method.Func.Call([]reflect.Value{suite, genunitF})
	}
}

// exec executes a found Init-method in a Suite.
func (s *Suite) exec(init *reflect.Method, t *testing.T) {
	suiteI := &I{t: t, logger: t.Log, canceler: t.FailNow}
	if l, ok := s.self.(SuiteLogging); ok {
		suiteI.logger = l.Logger()
	}
	if c, ok := s.self.(SuiteCanceler); ok {
		suiteI.canceler = c.Cancel()
	}
	init.Func.Call([]reflect.Value{s.value, reflect.ValueOf(suiteI)})
}

// fWrapper wraps given testing.T-instance in a F-instance for a suites
// finalizer.
func (s *Suite) fWrapper(t *testing.T) *F {
	suiteF := &F{t: t, logger: t.Log, canceler: t.FailNow}
	if l, ok := s.self.(SuiteLogging); ok {
		suiteF.logger = l.Logger()
	}
	if c, ok := s.self.(SuiteCanceler); ok {
		suiteF.canceler = c.Cancel()
	}
	return suiteF
}

// init initializes this suite's reused reflection values, determines
// the seed of the suite run and handles its special methods if any.
func (s *Suite) init(self interface{}, t *testing.T) *Suite {
	s.self, s.t = self, t
	s.value = reflect.ValueOf(self)
	s.rtype = reflect.TypeOf(self)
	s.seed = seedOf(self, t)
	log.Debugw("suite seeded", "suite", s.rtype.String(), "seed", s.seed)
	for i := 0; i < s.rtype.NumMethod(); i++ {
		m := s.rtype.Method(i)
		switch m.Name {
		case "SetUp":
			s.setUp = &m
		case "TearDown":
			s.tearDown = &m
		case "Init":
			s.exec(&m, t)
		case "Finalize":
			t.Cleanup(newFinalizer(
				&m, s.value, reflect.ValueOf(s.fWrapper(t))))
		}
	}
	return s
}

// seedOf returns the seed provided by given suite's SuiteSeeder
// implementation, the seed of the SeedEnv environment variable or a
// random seed in that order.
func seedOf(suite interface{}, t *testing.T) uint64 {
	if s, ok := suite.(SuiteSeeder); ok {
		return s.Seed()
	}
	if env := os.Getenv(SeedEnv); env != "" {
		seed, err := strconv.ParseUint(env, 10, 64)
		if err == nil {
			return seed
		}
		t.Logf("genunit: ignoring %s=%q: %v", SeedEnv, env, err)
	}
	return rand.New().Uint64()
}

const special = "SetUpTearDownInitFinalize"

// SuiteEmbedder is automatically implemented by embedding a
// Suite-instance.  I.e.:
//
//	type MySuite struct{ genunit.Suite }
//
// implements the SuiteEmbedder-interface's private methods.
type SuiteEmbedder interface {
	init(interface{}, *testing.T) *Suite
}

// Run sets up embedded Suite-instance and runs all methods of given
// test-suite embedder which are public, have exactly one argument
// and are not special.  NOTE all methods with exactly one argument are
// considered tests unless they are special (or private):
//
// - Init(*genunit.I): run before any other method of a suite
//
// - SetUp(*genunit.T): run before every evaluation of a suite-test
//
// - TearDown(*genunit.T): run after every evaluation of a suite-test
//
// - Finalize(*genunit.F): run after any other method of a suite
//
// A suite-test using [Generate] is evaluated once for each combination
// of the values of its generators.  Such a suite test is reported as
// one go test while a failing evaluation additionally logs the
// generated values it failed with.  A canceled evaluation (see
// [T.FailNow]) doesn't keep the remaining combinations from being
// evaluated.
func Run(suite SuiteEmbedder, t *testing.T) {
	s := suite.init(suite, t)
	subTestFactory := newSubTestFactory(s)
	for i := 0; i < s.rtype.NumMethod(); i++ {
		method := s.rtype.Method(i)
		if method.Type.NumIn() != 2 {
			continue
		}
		if strings.Contains(special, method.Name) {
			continue
		}
		t.Run(method.Name, subTestFactory(method))
	}
}

// SuiteLogging implementation of a suite-embedder overwrites provided
// logging mechanism of genunit.T-instances passed to suite-tests with
// provided function of the Logger-method. E.g.:
//
//	type MySuite {
//	    genunit.Suite
//	    Logs string
//	}
//
//	func (s *MySuite) Logger() func(...interface{}) {
//	    return func(args ...interface{}) {
//	        s.Logs += fmt.Sprint(args...)
//	    }
//	}
//
//	func (s *MySuite) A_test(t *genunit.T) {
//	    t.Log("A_test has run")
//	}
//
//	func TestMySuite(t *testing.T) {
//	    testSuite := &MySuite{}
//	    genunit.Run(testSuite, t)
//	    t.Log(testSuite.Logs) // prints "A_test has run" if verbose
//	}
type SuiteLogging interface {
	Logger() func(args ...interface{})
}

// SuiteErrorer overwrites default test-error handling which defaults to
// a testing.T.Error-call of a wrapped testing.T-instance.  I.e. calling
// on a genunit.T instance t methods like Error, Errorf or a failing
// assertion end up in an Error-call of the testing.T-instance which is
// wrapped by t.  If a suite implements the SuiteErrorer-interface
// provided function is called in case of an test-error.
type SuiteErrorer interface {
	Error() func(...interface{})
}

// SuiteCanceler overwrites default test-cancellation handling which
// defaults to a testing.T.FailNow-call of a wrapped testing.T-instance.
// I.e. calling on a genunit.T instance t methods like Fatal, Fatalf,
// FailNow, FatalIfNot, or FatalOn end up in an FailNow-call of the
// testing.T-instance which is wrapped by t.  If a suite implements the
// SuiteCanceler-interface provided function is called in case of an
// test-cancellation.
type SuiteCanceler interface {
	Cancel() func()
}

// SuiteSeeder implementation of a suite-embedder fixes the seed which
// is reported by [T.Seed] for all tests of the suite.  Without it the
// seed is taken from the GENUNIT_SEED environment variable or chosen
// at random.  A failing evaluation logs its seed, i.e. a failure with
// random generators seeded by [T.Seed] can be reproduced.
type SuiteSeeder interface {
	Seed() uint64
}

// newSubTestFactory returns for given suite a sub-test-factory, i.e. a
// function wrapping test-methods into function that can be passed to
// the Run-method of a *testing.T*-instance.  A wrapped test-method is
// evaluated until its generators are exhausted.
func newSubTestFactory(
	suite *Suite,
) func(reflect.Method) func(*testing.T) {
	suiteLogging, hasLogger := suite.self.(SuiteLogging)
	suiteErrorer, hasErrorer := suite.self.(SuiteErrorer)
	suiteCanceler, hasCanceler := suite.self.(SuiteCanceler)
	var tearDown func(t *T)
	if suite.tearDown != nil {
		tearDown = func(t *T) {
			(*suite.tearDown).Func.Call(
				[]reflect.Value{suite.value, reflect.ValueOf(t)})
		}
	}
	return func(test reflect.Method) func(*testing.T) {
		return func(t *testing.T) {
			cache, parallel := memo.NewCache(), &sync.Once{}
			defer cache.Dispose()
			for {
				suiteT := &T{
					t:        t,
					tearDown: tearDown,
					logger:   t.Log,
					canceler: t.FailNow,
					cache:    cache,
					seed:     suite.seed,
					parallel: parallel,
				}
				suiteT.Not = Not{t: suiteT}
				errorer := t.Error
				if hasLogger {
					suiteT.logger = suiteLogging.Logger()
				}
				if hasErrorer {
					errorer = suiteErrorer.Error()
				}
				suiteT.errorer = func(args ...interface{}) {
					suiteT.failed = true
					errorer(args...)
				}
				if hasCanceler {
					suiteT.canceler = suiteCanceler.Cancel()
				}

				evaluate(suite, test, suiteT)
				if suiteT.failed && cache.Len() > 0 {
					suiteT.Logf("%s (seed %d):\n%s",
						FailedWith, suite.seed, cache)
				}
				if cache.Step() == memo.Done {
					log.Debugw("test evaluated", "test", test.Name,
						"evaluations", cache.Passes())
					return
				}
			}
		}
	}
}

// evaluate executes set-up, given test and tear-down of given suite in
// a goroutine of its own, i.e. a canceled evaluation ends this
// goroutine only.  A panic of the evaluation is re-raised in the
// calling goroutine.
func evaluate(suite *Suite, test reflect.Method, suiteT *T) {
	done := make(chan interface{})
	go func() {
		canceled := true
		defer func() {
			if r := recover(); r != nil {
				done <- r
				return
			}
			if canceled {
				log.Debugw("evaluation canceled", "test", test.Name)
			}
			done <- nil
		}()
		suiteTVl := reflect.ValueOf(suiteT)
		if suite.setUp != nil {
			(*suite.setUp).Func.Call(
				[]reflect.Value{suite.value, suiteTVl})
		}
		test.Func.Call([]reflect.Value{suite.value, suiteTVl})
		if suiteT.tearDown != nil {
			suiteT.tearDown(suiteT)
		}
		canceled = false
	}()
	if r := <-done; r != nil {
		panic(r)
	}
}
