// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package memo

import (
	"errors"
	"fmt"
	"strings"

	logging "github.com/ipfs/go-log/v2"
	"github.com/slukits/genunit/pkg/gen"
)

var log = logging.Logger("memo")

// ErrCacheReentry is returned if a location is revisited with a factory
// of a different element type than the one of the memoized generator.
var ErrCacheReentry = errors.New("memo: cache reentry")

// ErrDisposed is returned using a disposed cache.
var ErrDisposed = errors.New("memo: cache disposed")

type entry struct {
	loc    Location
	handle gen.Handle
	cursor int
}

// Cache maps source locations to generators and their cursors
// preserving the order in which the locations were visited first.  A
// Cache is scoped to the repeated evaluations of one test and is not
// safe for concurrent use.  The zero value is not usable, use
// [NewCache].
type Cache struct {
	entries  []*entry
	index    map[Location]*entry
	passes   int
	disposed bool
}

// NewCache returns a new empty cache.
func NewCache() *Cache {
	return &Cache{index: map[Location]*entry{}}
}

// Len returns the number of memoized generators.
func (c *Cache) Len() int { return len(c.entries) }

// Locations returns the memoized locations in the order they were
// visited first.
func (c *Cache) Locations() []Location {
	ll := make([]Location, len(c.entries))
	for i, e := range c.entries {
		ll[i] = e.loc
	}
	return ll
}

// Cursor returns the cursor of given location and false if the
// location is not memoized.
func (c *Cache) Cursor(loc Location) (int, bool) {
	e, ok := c.index[loc]
	if !ok {
		return 0, false
	}
	return e.cursor, true
}

// Handle returns the type erased generator memoized at given location
// and false if there is none.
func (c *Cache) Handle(loc Location) (gen.Handle, bool) {
	e, ok := c.index[loc]
	if !ok {
		return nil, false
	}
	return e.handle, true
}

// Passes returns the number of completed evaluations, i.e. the number
// of Step calls.
func (c *Cache) Passes() int { return c.passes }

// Dispose drops the memoized generators in reverse order of their
// insertion.  A disposed cache fails memoization with ErrDisposed.
func (c *Cache) Dispose() {
	if c.disposed {
		return
	}
	for i := len(c.entries) - 1; i >= 0; i-- {
		log.Debugw("generator dropped", "location", c.entries[i].loc.String())
		delete(c.index, c.entries[i].loc)
		c.entries[i] = nil
	}
	c.entries, c.disposed = nil, true
}

// String renders the current combination of the memoized generators,
// i.e. for each location its cursor, size and current value.
func (c *Cache) String() string {
	b := &strings.Builder{}
	for i, e := range c.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "%v: [%d/%d] %s", e.loc, e.cursor,
			e.handle.Size(), gen.Describe(e.handle, e.cursor))
	}
	return b.String()
}

// Memoize returns the generator memoized at given location.  If there
// is none given factory is invoked exactly once and its generator is memoized with a
// cursor at its first value.  Errors are wrapped in a *LocationError
// reporting given location:
//   - ErrDisposed if c is disposed
//   - ErrCacheReentry if the memoized generator's element type is not T
//   - gen.ErrConstruction if factory is nil or fails
func Memoize[T any](
	c *Cache, loc Location, factory func() (gen.Generator[T], error),
) (gen.Generator[T], error) {
	if c.disposed {
		return gen.Null[T](), locErr(loc, ErrDisposed)
	}
	if e, ok := c.index[loc]; ok {
		g, err := gen.Recover[T](e.handle)
		if err != nil {
			return gen.Null[T](), locErr(loc,
				fmt.Errorf("%w: %w", ErrCacheReentry, err))
		}
		return g, nil
	}
	if factory == nil {
		return gen.Null[T](), locErr(loc,
			fmt.Errorf("%w: nil factory", gen.ErrConstruction))
	}
	g, err := factory()
	if err != nil {
		if !errors.Is(err, gen.ErrConstruction) {
			err = fmt.Errorf("%w: %w", gen.ErrConstruction, err)
		}
		return gen.Null[T](), locErr(loc, err)
	}
	e := &entry{loc: loc, handle: gen.Erase(g)}
	c.entries = append(c.entries, e)
	c.index[loc] = e
	log.Debugw("generator memoized", "location", loc.String(),
		"size", g.Size(), "pass", c.passes)
	return g, nil
}

// Generate memoizes given factory's generator at given location (see
// [Memoize]) and returns its value at the location's cursor.  Reading
// an empty generator fails with gen.ErrEmptySequence.
func Generate[T any](
	c *Cache, loc Location, factory func() (gen.Generator[T], error),
) (T, error) {
	g, err := Memoize(c, loc, factory)
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := g.Get(c.index[loc].cursor)
	if err != nil {
		return v, locErr(loc, err)
	}
	return v, nil
}
