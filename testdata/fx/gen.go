// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fx

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/slukits/genunit"
	"github.com/slukits/genunit/pkg/gen"
)

// TestOdometer logs for each evaluation of its only test the pair of
// the generated values of a three element outer and a four element
// inner range, i.e. "0:0 0:1 0:2 0:3 1:0 ... 2:3 " is expected.
type TestOdometer struct {
	FixtureLog
	genunit.Suite
	SetUps, TearDowns int
}

func (s *TestOdometer) SetUp(t *genunit.T)    { s.SetUps++ }
func (s *TestOdometer) TearDown(t *genunit.T) { s.TearDowns++ }

func (s *TestOdometer) Pairs(t *genunit.T) {
	i := genunit.Generate(t, func() (gen.Generator[int], error) {
		return gen.Range(0, 2)
	})
	j := genunit.Generate(t, func() (gen.Generator[int], error) {
		return gen.Range(0, 3)
	})
	t.Logf("%d:%d ", i, j)
}

// TestStrlen checks the length of the strings of a table and records
// the evaluated strings in Seen.
type TestStrlen struct {
	FX
	Rows int32
	Seen []string
}

func (s *TestStrlen) Strlen(t *genunit.T) {
	str, n := genunit.Generate(t, func() (
		gen.Generator[gen.Row2[string, int]], error,
	) {
		return gen.Table2(
			gen.R2("one", 3),
			gen.R2("two", 3),
			gen.R2("three", 5),
			gen.R2("four", 4),
		), nil
	}).Unpack()
	atomic.AddInt32(&s.Rows, 1)
	s.Seen = append(s.Seen, str)
	t.Eq(n, len(str))
}

// TestCancelContinues cancels the evaluation of the generated value 2
// by leaving its goroutine, i.e. the evaluations of 1, 3 and 4 are
// expected to be logged while the evaluation of 2 isn't completed.
type TestCancelContinues struct {
	FixtureLog
	genunit.Suite
	Completed []int
}

func (s *TestCancelContinues) Cancel() func() { return runtime.Goexit }

func (s *TestCancelContinues) Evaluations(t *genunit.T) {
	v := genunit.Generate(t, func() (gen.Generator[int], error) {
		return gen.Range(1, 4)
	})
	if v == 2 {
		t.Fatal("canceled")
	}
	s.Completed = append(s.Completed, v)
}

// TestFailureReport fails the evaluation with the generated string
// "b", i.e. its logs are expected to contain a failure report with the
// generated values of this evaluation.
type TestFailureReport struct {
	FX
}

func (s *TestFailureReport) Seed() uint64 { return 42 }

func (s *TestFailureReport) Fails_for_b(t *genunit.T) {
	str := genunit.Generate(t, func() (gen.Generator[string], error) {
		return gen.Values("a", "b", "c"), nil
	})
	n := genunit.Generate(t, func() (gen.Generator[int], error) {
		return gen.Values(7), nil
	})
	t.True(str != "b" || n != 7)
}

// TestSeeded logs the seed reported to its test.
type TestSeeded struct {
	FixtureLog
	genunit.Suite
	Value uint64
}

func (s *TestSeeded) Seed() uint64 { return s.Value }

func (s *TestSeeded) Logs_seed(t *genunit.T) { t.Log(t.Seed()) }

// TestSeededByEnv logs the seed reported to its test without fixing
// it.
type TestSeededByEnv struct {
	FixtureLog
	genunit.Suite
}

func (s *TestSeededByEnv) Logs_seed(t *genunit.T) { t.Log(t.Seed()) }

// TestRandomSeeded collects the values of a random generator seeded
// with the seed of the suite run.
type TestRandomSeeded struct {
	genunit.Suite
	Value uint64
	Got   []int
}

func (s *TestRandomSeeded) Seed() uint64 { return s.Value }

func (s *TestRandomSeeded) Random(t *genunit.T) {
	s.Got = append(s.Got, genunit.Generate(t,
		func() (gen.Generator[int], error) {
			return gen.RandomIn(0, 9, gen.WithSeed(t.Seed()))
		}))
}

// TestDependentGenerators builds its inner generator depending on
// the value of its outer generator, i.e. "1:a 1:b 2:x 2:y 2:z " is
// expected to be logged.
type TestDependentGenerators struct {
	FixtureLog
	genunit.Suite
	Built int
}

func (s *TestDependentGenerators) Inner_depends_on_outer(t *genunit.T) {
	n := genunit.Generate(t, func() (gen.Generator[int], error) {
		return gen.Range(1, 2)
	})
	str := genunit.Generate(t, func() (gen.Generator[string], error) {
		s.Built++
		if n == 1 {
			return gen.Values("a", "b"), nil
		}
		return gen.Values("x", "y", "z"), nil
	})
	t.Logf("%d:%s ", n, str)
}

// ErrFactory is returned by the failing factory of TestFactoryFails.
var ErrFactory = errors.New("factory failed")

// TestFactoryFails has a test whose generator can't be built and a
// test with an empty generator; both are expected to be canceled at
// the call of genunit.Generate.
type TestFactoryFails struct {
	FixtureLog
	genunit.Suite
	Reached bool
}

func (s *TestFactoryFails) Cancel() func() { return runtime.Goexit }

func (s *TestFactoryFails) Error() func(...interface{}) {
	return func(...interface{}) {}
}

func (s *TestFactoryFails) Factory_error(t *genunit.T) {
	genunit.Generate(t, func() (gen.Generator[int], error) {
		return gen.Generator[int]{}, ErrFactory
	})
	s.Reached = true
}

func (s *TestFactoryFails) Empty_generator(t *genunit.T) {
	genunit.Generate(t, func() (gen.Generator[int], error) {
		return gen.Null[int](), nil
	})
	s.Reached = true
}

// TestParallelGenerating flags each evaluation of its tests as
// parallel and counts the evaluations.
type TestParallelGenerating struct {
	genunit.Suite
	mutex sync.Mutex
	Got   map[string]int
}

func (s *TestParallelGenerating) SetUp(t *genunit.T) { t.Parallel() }

func (s *TestParallelGenerating) count(test string, v int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.Got == nil {
		s.Got = map[string]int{}
	}
	s.Got[fmt.Sprintf("%s%d", test, v)]++
}

func (s *TestParallelGenerating) Test_a(t *genunit.T) {
	s.count("a", genunit.Generate(t, func() (gen.Generator[int], error) {
		return gen.Range(1, 3)
	}))
}

func (s *TestParallelGenerating) Test_b(t *genunit.T) {
	s.count("b", genunit.Generate(t, func() (gen.Generator[int], error) {
		return gen.Values(1, 2), nil
	}))
}
