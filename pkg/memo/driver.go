// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package memo

// Progress is reported by [Cache.Step].
type Progress int

const (
	// More indicates that the test body must be evaluated again.
	More Progress = iota
	// Done indicates that all combinations have been evaluated.
	Done
)

func (p Progress) String() string {
	if p == More {
		return "more"
	}
	return "done"
}

// Step is called after each evaluation of a test body and advances the
// cursors to the next combination like an odometer: the cursor of the
// last memoized location is incremented; if it reaches its generator's
// size it is reset to zero and the increment carries over to the
// previously memoized location and so on.  If the carry passes the
// first location or nothing is memoized Step returns Done.  Otherwise
// all locations memoized after the advanced one are dropped since the
// control flow leading to them may change with the advanced value; the
// next evaluation memoizes them anew.  A disposed cache is always Done.
func (c *Cache) Step() Progress {
	c.passes++
	if c.disposed {
		return Done
	}
	for i := len(c.entries) - 1; i >= 0; i-- {
		e := c.entries[i]
		e.cursor++
		if e.cursor < e.handle.Size() {
			c.truncate(i + 1)
			log.Debugw("driver step", "pass", c.passes,
				"advanced", e.loc.String(), "cursor", e.cursor)
			return More
		}
		e.cursor = 0
	}
	log.Debugw("driver done", "passes", c.passes)
	return Done
}

// truncate drops the entries from given index on.
func (c *Cache) truncate(from int) {
	for i := len(c.entries) - 1; i >= from; i-- {
		delete(c.index, c.entries[i].loc)
		c.entries[i] = nil
	}
	c.entries = c.entries[:from]
}
