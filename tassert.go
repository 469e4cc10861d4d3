// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package genunit

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// assertErr is the format-string for assertion errors.
const assertErr = "assert %s:\n%v"

// trueErr default message for failed 'true'-assertion.
const trueErr = "expected given value to be true"

// True fails the test and returns false iff given value is not true;
// otherwise true is returned.
func (t *T) True(value bool) bool {
	t.t.Helper()
	if !value {
		t.Errorf(assertErr, "true", trueErr)
		return false
	}
	return true
}

const eqTypeErr = "types mismatch %v != %v"

// Eq errors with an corresponding diff and returns false if given
// values are not considered equal; otherwise true is returned.  a and b
// are considered equal if they are of the same type or one of them is
// string while the other one is a Stringer implementation and
//   - a == b in case of two pointers
//   - a == b in case of two strings
//   - a.String() == b.String() in case of Stringer implementations
//   - a == b.String() or a.String() == b in case of string and
//     Stringer implementation.
//   - fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b) in other cases
func (t *T) Eq(a, b interface{}) bool {
	t.t.Helper()

	differentTypes := fmt.Sprintf("%T", a) != fmt.Sprintf("%T", b)
	if differentTypes && !isStringers(a, b) {
		t.Errorf(assertErr, "equal: types", fmt.Sprintf(
			eqTypeErr, fmt.Sprintf("%T", a), fmt.Sprintf("%T", b)))
		return false
	}

	if reflect.ValueOf(a).Kind() == reflect.Ptr {
		if a != b {
			t.Errorf(assertErr, "equal: pointer",
				fmt.Sprintf("%p != %p", a, b))
			return false
		}
		return true
	}

	if diff := diff(a, b, differentTypes); diff != "" {
		t.Errorf(assertErr, "equal: string-representations", diff)
		return false
	}
	return true
}

func isStringers(a, b interface{}) bool {
	_, okA := a.(fmt.Stringer)
	_, okB := b.(fmt.Stringer)
	switch {
	case !okA && !okB:
		return false
	case okA && okB:
		return true
	case okA:
		_, ok := b.(string)
		return ok
	}
	_, ok := a.(string)
	return ok
}

func diff(a, b interface{}, differentTypes bool) string {
	if differentTypes {
		a, b = toString(a), toString(b)
	}
	switch a := a.(type) {
	case string:
		if a != b.(string) {
			return cmp.Diff(a, b.(string))
		}
	case fmt.Stringer:
		if a.String() != b.(fmt.Stringer).String() {
			return cmp.Diff(a.String(), b.(fmt.Stringer).String())
		}
	default:
		if fmt.Sprintf("%v", a) != fmt.Sprintf("%v", b) {
			return cmp.Diff(fmt.Sprintf("%v", a), fmt.Sprintf("%v", b))
		}
	}
	return ""
}

// StringRepresentation documents what a string representation of any
// type is:
//   - the string if it is of type string,
//   - the return value of String if the Stringer interface is
//     implemented,
//   - fmt.Sprintf("%v", value) in all other cases.
type StringRepresentation interface{}

func toString(value interface{}) string {
	switch value := value.(type) {
	case string:
		return value
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}

// containsErr default message for failed 'Contains'-assertion.
const containsErr = "%s doesn't contain %s"

// Contains fails the test and returns false iff given value's string
// representation doesn't contain given sub-string; otherwise true is
// returned.
func (t *T) Contains(value StringRepresentation, sub string) bool {
	t.t.Helper()
	str := toString(value)
	if strings.Contains(str, sub) {
		return true
	}
	if !strings.HasSuffix(str, "\n") {
		str += "\n"
	}
	if !strings.HasPrefix(sub, "\n") {
		sub = "\n" + sub
	}
	t.Errorf(assertErr, "contains", fmt.Sprintf(containsErr, str, sub))
	return false
}

// matchedErr default message for failed 'Matched'-assertion.
const matchedErr = "Regexp\n'%s'\ndoesn't match\n'%s'"

// Matched fails the test and returns false iff given values string
// interpretation isn't matched by given regex; otherwise true is
// returned.
func (t *T) Matched(value StringRepresentation, regex string) bool {
	t.t.Helper()
	str := toString(value)
	re := regexp.MustCompile(regex)
	if !re.MatchString(str) {
		t.Errorf(assertErr, "matched",
			fmt.Sprintf(matchedErr, re.String(), str))
		return false
	}
	return true
}

// errIsErr default message for failed "ErrIs"-assertion
const errIsErr = "given error doesn't wrap target-error"

// ErrIs fails the test and returns false iff given err doesn't
// implement the error-interface or doesn't wrap given target; otherwise
// true is returned.
func (t *T) ErrIs(err interface{}, target error) bool {
	t.t.Helper()
	e, ok := err.(error)
	if !ok {
		t.Errorf(assertErr, "error is", errIsErr)
		return false
	}
	if errors.Is(e, target) {
		return true
	}
	t.Errorf(assertErr, "error is",
		fmt.Sprintf("%s: %+v\n%+v", errIsErr, e, target))
	return false
}

// errMatchedErr default message for failed "ErrMatched"-assertion
const errMatchedErr = "given regexp '%s' doesn't match '%s'"

// ErrMatched fails the test and returns false iff given err doesn't
// implement the error-interface or its message isn't matched by given
// regex; otherwise true is returned.  A "%s" in given regex matches
// anything.
func (t *T) ErrMatched(err interface{}, re string) bool {
	t.t.Helper()
	e, ok := err.(error)
	if !ok {
		t.Errorf(assertErr, "error matched", "given value is no error")
		return false
	}
	re = strings.ReplaceAll(re, "%s", ".*?")
	if !regexp.MustCompile(re).MatchString(e.Error()) {
		t.Errorf(assertErr, "error matched", fmt.Sprintf(
			errMatchedErr, re, e.Error()))
		return false
	}
	return true
}

// panicsErr default message for failed "Panics"-assertion
const panicsErr = "given function doesn't panic"

// Panics fails the test and returns false iff given function doesn't
// panic; otherwise true is returned.
func (t *T) Panics(f func()) (hasPanicked bool) {
	t.t.Helper()
	defer func() {
		t.t.Helper()
		if r := recover(); r == nil {
			t.Errorf(assertErr, "panics", panicsErr)
			hasPanicked = false
			return
		}
		hasPanicked = true
	}()
	f()
	return true
}

// Not implements negations of [T]-assertions, e.g. [Not.True].  Negated
// assertions can be accessed through [T]'s Not field.
type Not struct{ t *T }

// passes reports if given assertion passes without reporting its
// failure.
func (n Not) passes(assertion func() bool) bool {
	err := n.t.errorer
	n.t.errorer = func(...interface{}) {}
	defer func() { n.t.errorer = err }()
	return assertion()
}

// True passes if called [T.True] assertion with given argument fails;
// otherwise it fails.
func (n Not) True(value bool) bool {
	n.t.t.Helper()
	if n.passes(func() bool { return n.t.True(value) }) {
		n.t.Errorf(assertErr, "not-true", "expected given value be false")
		return false
	}
	return true
}

// Eq negation passes if called [T.Eq] assertion with given arguments
// fails; otherwise it fails.
func (n Not) Eq(a, b interface{}) bool {
	n.t.t.Helper()
	if n.passes(func() bool { return n.t.Eq(a, b) }) {
		n.t.Errorf(assertErr, "not-equal", fmt.Sprintf("%v == %v", a, b))
		return false
	}
	return true
}

// notContainsErr default message for failed Not-'Contains'-assertion.
const notContainsErr = "\n'%s'\ndoes contain\n'%s'"

// Contains negation passes if called [T.Contains] assertion with given
// arguments fails; otherwise it fails.
func (n Not) Contains(value StringRepresentation, sub string) bool {
	n.t.t.Helper()
	if n.passes(func() bool { return n.t.Contains(value, sub) }) {
		n.t.Errorf(assertErr, "doesn't contain",
			fmt.Sprintf(notContainsErr, toString(value), sub))
		return false
	}
	return true
}

// Matched negation passes if called [T.Matched] assertion with given
// arguments fails; otherwise it fails.
func (n Not) Matched(value StringRepresentation, regex string) bool {
	n.t.t.Helper()
	if n.passes(func() bool { return n.t.Matched(value, regex) }) {
		n.t.Errorf(assertErr, "don't-match", fmt.Sprintf(
			"Regexp '%s'\n matches '%s'", regex, toString(value)))
		return false
	}
	return true
}

// ErrIs negation passes if given err doesn't wrap given target;
// otherwise it fails.
func (n Not) ErrIs(err interface{}, target error) bool {
	n.t.t.Helper()
	if n.passes(func() bool { return n.t.ErrIs(err, target) }) {
		n.t.Errorf(assertErr, "error is not",
			fmt.Sprintf("%+v wraps %+v", err, target))
		return false
	}
	return true
}

// Panics negation passes if given function doesn't panic; otherwise
// it fails.
func (n Not) Panics(f func()) bool {
	n.t.t.Helper()
	if n.passes(func() bool { return n.t.Panics(f) }) {
		n.t.Errorf(assertErr, "doesn't panic", "given function panics")
		return false
	}
	return true
}
