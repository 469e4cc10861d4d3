// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package memo

import (
	"go/ast"
	"go/parser"
	"go/token"
	"runtime"
	"strings"
	"sync"

	"github.com/slukits/ints"
	"golang.org/x/exp/slices"
)

// Caller returns the location of the call of the function which calls
// Caller, e.g.
//
//	func Generate[T any](t *T, f func() (gen.Generator[T], error)) T {
//	    loc := memo.Caller(0) // location of the Generate call
//	    ...
//	}
//
// skip moves the reported call site the given number of frames up the
// stack.  The location's column is the column of the call expression
// calling the function which called Caller; if a source line has
// several such calls, the first evaluated is mapped to the leftmost
// column, the second to the next one and so on.  This mapping is made
// at the first encounter of a call site and kept for the lifetime of
// the process, i.e. a re-executed call site maps always to the same
// location.  Calls are told apart by the pair of the program counter
// in the calling function and the one at the call site since an inlined
// callee shares the call site's frame.
func Caller(skip int) Location {
	pcs := make([]uintptr, 8)
	n := runtime.Callers(skip+2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	callee, more := frames.Next()
	if !more {
		return Location{File: "?"}
	}
	site, _ := frames.Next()
	return Location{
		File: site.File,
		Line: site.Line,
		Column: sites.column(site.File, site.Line,
			funcName(callee.Function), pcKey{callee: pcs[0], site: site.PC}),
	}
}

// funcName reduces a fully qualified function name like
// "github.com/slukits/genunit.Generate[...]" to "Generate".
func funcName(qualified string) string {
	name := strings.TrimSuffix(qualified, "[...]")
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

var sites = callSites{}

// callSites resolves the columns of call sites.  A source file is
// parsed at most once for the calls it contains.  Suites may run in
// parallel hence callSites is guarded by a mutex; methods and
// properties starting with an underscore must only be accessed while
// the mutex is held.
type callSites struct {
	mutex sync.Mutex
	// file-name → line → calls of that line ordered by column
	_Files   map[string]map[int][]call
	_Columns map[pcKey]int
	_Seen    map[siteKey]*ints.Set
}

// pcKey identifies an executed call site.  The callee's program counter
// differs for each inlined copy of a callee while the site's counter
// differs for calls of a callee which wasn't inlined.
type pcKey struct {
	callee, site uintptr
}

type call struct {
	name   string
	column int
}

type siteKey struct {
	file string
	line int
	name string
}

// column returns the column of the call of the function with given
// name at given file and line which is executed at given program
// counters.
func (cs *callSites) column(
	file string, line int, name string, pc pcKey,
) int {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	if cs._Columns == nil {
		cs._Columns = map[pcKey]int{}
		cs._Seen = map[siteKey]*ints.Set{}
	}
	if col, ok := cs._Columns[pc]; ok {
		return col
	}

	key := siteKey{file: file, line: line, name: name}
	seen, ok := cs._Seen[key]
	if !ok {
		seen = &ints.Set{}
		cs._Seen[key] = seen
	}
	rank := seen.Len()
	seen.Add(rank)

	cols := cs._Calls(file, line, name)
	col := rank + 1
	if rank < len(cols) {
		col = cols[rank]
	} else if len(cols) > 0 {
		// more executed call sites than parsed calls
		col = cols[len(cols)-1] + rank - len(cols) + 1
	}
	cs._Columns[pc] = col
	log.Debugw("call site resolved",
		"file", file, "line", line, "column", col, "callee", name)
	return col
}

// _Calls returns the columns of the calls of the function with given
// name in given line of given file.
func (cs *callSites) _Calls(file string, line int, name string) []int {
	lines, ok := cs._Files[file]
	if !ok {
		lines = cs._Parse(file)
		if cs._Files == nil {
			cs._Files = map[string]map[int][]call{}
		}
		cs._Files[file] = lines
	}
	cols := []int{}
	for _, c := range lines[line] {
		if c.name == name {
			cols = append(cols, c.column)
		}
	}
	return cols
}

// _Parse maps the lines of given go source file to the calls they
// contain.  An unparsable file maps to no calls at all.
func (cs *callSites) _Parse(file string) map[int][]call {
	lines := map[int][]call{}
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, file, nil, parser.SkipObjectResolution)
	if err != nil {
		log.Debugf("call sites: parse %s: %v", file, err)
		return lines
	}
	ast.Inspect(f, func(n ast.Node) bool {
		ce, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		name, ok := cs._CalleeName(ce.Fun)
		if !ok {
			return true
		}
		// a call executes at the line of its left parenthesis
		line := fset.Position(ce.Lparen).Line
		lines[line] = append(lines[line],
			call{name: name, column: fset.Position(ce.Pos()).Column})
		return true
	})
	for _, cc := range lines {
		slices.SortFunc(cc, func(a, b call) bool {
			return a.column < b.column
		})
	}
	return lines
}

// _CalleeName returns the name of the called function of a call
// expression's function expression, e.g. "Generate" for
// genunit.Generate[int].
func (cs *callSites) _CalleeName(fun ast.Expr) (string, bool) {
	switch fun := fun.(type) {
	case *ast.Ident:
		return fun.Name, true
	case *ast.SelectorExpr:
		return fun.Sel.Name, true
	case *ast.IndexExpr:
		return cs._CalleeName(fun.X)
	case *ast.IndexListExpr:
		return cs._CalleeName(fun.X)
	case *ast.ParenExpr:
		return cs._CalleeName(fun.X)
	}
	return "", false
}
