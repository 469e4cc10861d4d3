// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fx provides the fixture suites run by genunit's own tests.
//
// A fixture suite is run with the testing.T of the test which inspects
// it afterwards.  Fixture suites embedding FixtureLog collect what
// their evaluations log in Logs.
package fx

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/slukits/genunit"
	"github.com/slukits/genunit/pkg/gen"
)

// FX reports the errors of a fixture suite's evaluations to Logs
// instead of failing the test running the fixture suite, e.g.
//
//	type strlen struct{ fx.FX }
//
//	func (s *strlen) Fails(t *genunit.T) {
//	    str := genunit.Generate(t, func() (gen.Generator[string], error) {
//	        return gen.Values("a", "bb"), nil
//	    })
//	    t.Eq(1, len(str))
//	}
//
//	func (s *mySuite) Strlen_fails_for_bb(t *genunit.T) {
//	    fixture := &strlen{}
//	    genunit.Run(fixture, t.GoT())
//	    t.Contains(fixture.Logs, "[1/2] bb")
//	}
type FX struct {
	FixtureLog
	genunit.Suite
}

func (s *FX) Error() func(args ...interface{}) { return s.log }

// FixtureLog implements genunit.SuiteLogging appending everything
// logged by a suite's evaluations to Logs.  A used FixtureLog must not
// be copied.
type FixtureLog struct {
	Logs  string
	mutex sync.Mutex
}

func (fl *FixtureLog) log(args ...interface{}) {
	fl.mutex.Lock()
	defer fl.mutex.Unlock()
	fl.Logs += fmt.Sprint(args...)
}

// Logger returns the function genunit.T.Log and genunit.T.Logf write
// to.
func (fl *FixtureLog) Logger() func(args ...interface{}) {
	return fl.log
}

// TestAllSuiteTestsAreRun logs Exp from its only exported method;
// calling its unexported method would log "failed".
type TestAllSuiteTestsAreRun struct {
	genunit.Suite
	FixtureLog
	Exp string
}

func (s *TestAllSuiteTestsAreRun) A_test(t *genunit.T) { t.Log(s.Exp) }

func (s *TestAllSuiteTestsAreRun) private(t *genunit.T) { t.Log("failed") }

// TestSuiteLogging logs Exp with Log and ExpFmt with Logf to its own
// logger.
type TestSuiteLogging struct {
	FixtureLog
	genunit.Suite
	Exp    string
	ExpFmt string
}

func (s *TestSuiteLogging) Log_test(t *genunit.T) { t.Log(s.Exp) }

func (s TestSuiteLogging) Log_fmt_test(t *genunit.T) {
	t.Logf("%s", s.ExpFmt)
}

// TestSetup has two generating tests whose evaluations run in parallel
// to the other test's evaluations.  Its set-up hands each evaluation a
// fixture id of its own and each evaluation records under its id the
// name of its test with its generated value, i.e. five set-ups and the
// evaluations "A1", "A2", "B1", "B2" and "B3" under five different ids
// are expected.
type TestSetup struct {
	genunit.Suite
	fx          genunit.Fixtures
	SetUps      uint32
	mutex       sync.Mutex
	Evaluations map[int]string
}

func (s *TestSetup) SetUp(t *genunit.T) {
	t.Parallel()
	s.fx.Set(t, int(atomic.AddUint32(&s.SetUps, 1)))
}

func (s *TestSetup) record(t *genunit.T, test string, v int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.Evaluations == nil {
		s.Evaluations = map[int]string{}
	}
	id := s.fx.Get(t).(int)
	if e, ok := s.Evaluations[id]; ok {
		t.Fatalf("fixture %d of %s%d already used by %s", id, test, v, e)
	}
	s.Evaluations[id] = fmt.Sprintf("%s%d", test, v)
}

func (s *TestSetup) Test_A(t *genunit.T) {
	s.record(t, "A", genunit.Generate(t, func() (gen.Generator[int], error) {
		return gen.Range(1, 2)
	}))
}

func (s *TestSetup) Test_B(t *genunit.T) {
	s.record(t, "B", genunit.Generate(t, func() (gen.Generator[int], error) {
		return gen.Values(1, 2, 3), nil
	}))
}

// TestTearDown removes in its tear-down the fixture its set-up added
// for an evaluation and counts the removals per fixture id.  Its two
// generating tests have five evaluations in total, i.e. the ids one to
// five are expected to be removed once each leaving no fixture behind.
type TestTearDown struct {
	genunit.Suite
	fx      genunit.Fixtures
	idx     uint32
	mutex   sync.Mutex
	Removed map[int]int
}

func (s *TestTearDown) SetUp(t *genunit.T) {
	t.Parallel()
	s.fx.Set(t, int(atomic.AddUint32(&s.idx, 1)))
}

func (s *TestTearDown) TearDown(t *genunit.T) {
	id, _ := s.fx.Del(t).(int)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.Removed == nil {
		s.Removed = map[int]int{}
	}
	s.Removed[id]++
}

// Remaining returns the number of fixtures which weren't removed.
func (s *TestTearDown) Remaining() int { return s.fx.Len() }

func (s *TestTearDown) Test_A(t *genunit.T) {
	genunit.Generate(t, func() (gen.Generator[int], error) {
		return gen.Range(1, 3)
	})
	t.FatalIfNot(s.fx.Get(t) != nil)
}

func (s *TestTearDown) Test_B(t *genunit.T) {
	genunit.Generate(t, func() (gen.Generator[string], error) {
		return gen.Values("x", "y"), nil
	})
	t.FatalIfNot(s.fx.Get(t) != nil)
}

// TestTearDownAfterCancel generates the cancellations FailNow,
// FatalIfNot, FatalOn, Fatal and Fatalf numbered from one to five and
// cancels each evaluation with the generated one.  Its canceler ends
// the evaluation's goroutine, i.e. tear-down runs exactly once per
// evaluation and TornDown is expected to be [1 2 3 4 5] while Completed
// stays false.  Each canceled evaluation logs a failure report.
type TestTearDownAfterCancel struct {
	FixtureLog
	genunit.Suite
	fx        genunit.Fixtures
	TornDown  []int
	Completed bool
}

func (s *TestTearDownAfterCancel) Cancel() func() { return runtime.Goexit }

func (s *TestTearDownAfterCancel) TearDown(t *genunit.T) {
	s.TornDown = append(s.TornDown, s.fx.Del(t).(int))
}

func (s *TestTearDownAfterCancel) Cancellations(t *genunit.T) {
	c := genunit.Generate(t, func() (gen.Generator[int], error) {
		return gen.Range(1, 5)
	})
	s.fx.Set(t, c)
	switch c {
	case 1:
		t.FailNow()
	case 2:
		t.FatalIfNot(false)
	case 3:
		t.FatalOn(errors.New("3"))
	case 4:
		t.Fatal("4")
	case 5:
		t.Fatalf("%d", 5)
	}
	s.Completed = true
}

// TestInit logs "s" at each set-up, "d" at each tear-down and in
// between the generated value of an evaluation.  Its two tests generate
// two values each, i.e. twelve characters besides the prefix logged by
// Init are expected whereas Init's log comes first.
type TestInit struct {
	FixtureLog
	genunit.Suite
}

func (s *TestInit) Init(t *genunit.I) { t.Log("") }

func (s *TestInit) SetUp(t *genunit.T) {
	t.Parallel()
	t.Log("s")
}

func (s *TestInit) TearDown(t *genunit.T) { t.Log("d") }

func (s *TestInit) Test_a(t *genunit.T) {
	t.Log(genunit.Generate(t, func() (gen.Generator[int], error) {
		return gen.Values(0, 1), nil
	}))
}

func (s *TestInit) Test_b(t *genunit.T) {
	t.Log(genunit.Generate(t, func() (gen.Generator[int], error) {
		return gen.Values(2, 3), nil
	}))
}

// TestFinalize logs like TestInit while its Finalize logs the final
// prefix which is expected to come last.
type TestFinalize struct {
	FixtureLog
	genunit.Suite
}

func (s *TestFinalize) SetUp(t *genunit.T) {
	t.Parallel()
	t.Log("s")
}

func (s *TestFinalize) TearDown(t *genunit.T) { t.Log("d") }

func (s *TestFinalize) Test_a(t *genunit.T) {
	t.Log(genunit.Generate(t, func() (gen.Generator[int], error) {
		return gen.Values(0, 1), nil
	}))
}

func (s *TestFinalize) Test_b(t *genunit.T) {
	t.Log(genunit.Generate(t, func() (gen.Generator[int], error) {
		return gen.Values(2, 3), nil
	}))
}

func (s *TestFinalize) Finalize(t *genunit.F) { t.Log("") }

// Cancellations of Init, Finalize and test methods logged by
// TestCancelerImplementation.
const (
	TFatalIfNot = iota
	TFatalOn
	TFatal
	TFatalf
	IFatal
	IFatalf
	IFatalOn
	FFatal
	FFatalf
	FFatalOn
)

// TestCancelerImplementation cancels Init and Finalize in all ways
// they can be canceled while its test generates the cancellations of a
// test and cancels each evaluation with the generated one.  Its
// canceler doesn't end anything, i.e. every cancellation is logged and
// Got is expected to hold all ten cancellations.  Reports counts the
// failure reports of the four canceled evaluations.
type TestCancelerImplementation struct {
	genunit.Suite
	fatalIfNot bool
	Got        map[int]bool
	Reports    int
}

func (s *TestCancelerImplementation) log(args ...interface{}) {
	if s.Got == nil {
		s.Got = map[int]bool{}
	}
	if len(args) == 0 {
		if s.Got[TFatalIfNot] {
			panic("expected at least one argument")
		}
		s.Got[TFatalIfNot] = true
		return
	}
	id := -1
	switch value := args[len(args)-1].(type) {
	case int:
		id = value
	case string:
		if strings.HasPrefix(value, genunit.FailedWith) {
			s.Reports++
			return
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			panic(fmt.Sprintf("expected cancellation; got %v", value))
		}
		id = n
	}
	if id < TFatalIfNot || id > FFatalOn {
		panic(fmt.Sprintf("expected cancellation in [%d,%d]; got %d",
			TFatalIfNot, FFatalOn, id))
	}
	s.Got[id] = true
}

func (s *TestCancelerImplementation) Logger() func(...interface{}) {
	return s.log
}

func (s *TestCancelerImplementation) Cancel() func() {
	return func() {
		if !s.fatalIfNot {
			return
		}
		s.fatalIfNot = false
		s.log()
	}
}

func (s *TestCancelerImplementation) Init(t *genunit.I) {
	t.Fatal(IFatal)
	t.Fatalf("%d", IFatalf)
	t.FatalOn(errors.New(strconv.Itoa(IFatalOn)))
}

func (s *TestCancelerImplementation) Test(t *genunit.T) {
	c := genunit.Generate(t, func() (gen.Generator[int], error) {
		return gen.Range(TFatalIfNot, TFatalf)
	})
	switch c {
	case TFatalIfNot:
		s.fatalIfNot = true
		t.FatalIfNot(false)
	case TFatalOn:
		t.FatalOn(errors.New(strconv.Itoa(TFatalOn)))
	case TFatal:
		t.Fatal(TFatal)
	case TFatalf:
		t.Fatalf("%d", TFatalf)
	}
}

func (s *TestCancelerImplementation) Finalize(t *genunit.F) {
	t.Fatal(FFatal)
	t.Fatalf("%d", FFatalf)
	t.FatalOn(errors.New(strconv.Itoa(FFatalOn)))
}

// TestInitFinalHaveRunTest logs InitLog from Init and FinalLog from
// Finalize after checking that both get RunT, the testing.T the suite
// was run with.  A mismatch is reported in Fatal.
type TestInitFinalHaveRunTest struct {
	FixtureLog
	genunit.Suite
	InitLog  string
	FinalLog string
	RunT     *testing.T
	Fatal    string
}

func (s *TestInitFinalHaveRunTest) Init(t *genunit.I) {
	if s.RunT != t.GoT() {
		s.Fatal = "init: test has not run-test"
		t.GoT().FailNow()
	}
	t.Log(s.InitLog)
}

func (s *TestInitFinalHaveRunTest) Finalize(t *genunit.F) {
	if s.RunT != t.GoT() {
		s.Fatal = "finalize: test has not run-test"
		t.GoT().FailNow()
	}
	t.Log(s.FinalLog)
}
