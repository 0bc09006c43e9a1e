// Package tregex is a generalized regular-expression engine over arbitrary
// element types.
//
// Where a conventional regex library matches patterns over a byte or
// code-point alphabet, tregex matches patterns over a sequence of values of
// an arbitrary type T, where each atomic predicate is a user-supplied
// func(T) bool. It supports concatenation, alternation, capturing /
// non-capturing / named groups, greedy and lazy optional / star / plus /
// bounded repetition, and begin/end anchors, with leftmost-first
// (PCRE-priority, not POSIX-longest) match semantics.
//
// Build a pattern either programmatically with the ast package's
// constructors and Compile, or from the surface pattern notation with
// CompileSyntax:
//
//	n := ast.NewConcat(ast.NewIs(1), ast.NewIs(2))
//	re := tregex.Compile(n)
//	re.IsFullMatch([]int{1, 2}) // true
//
//	re, err := tregex.CompileSyntax[int]("[even]+[odd]+", env)
//
// A *Regex[T] is safe for concurrent use; it pools the per-call VM state
// internally so callers never need their own synchronization.
package tregex

import (
	"sync"

	"github.com/coregx/tregex/ast"
	"github.com/coregx/tregex/compile"
	"github.com/coregx/tregex/syntax"
	"github.com/coregx/tregex/vm"
)

// Regex is a compiled pattern. The zero value is not usable; construct one
// with Compile, CompileSyntax, or MustCompileSyntax.
type Regex[T any] struct {
	prog     *vm.Program[T]
	machines sync.Pool
}

// Compile lowers an AST built with the ast package's constructors into a
// runnable Regex. Compilation is total: every well-formed AST compiles, so
// this never fails.
func Compile[T any](root ast.Node[T]) *Regex[T] {
	return FromProgram(compile.Compile(root))
}

// FromProgram wraps an already-compiled program. Most callers want Compile
// or CompileSyntax instead; this exists for callers that build or cache
// vm.Program values themselves.
func FromProgram[T any](prog *vm.Program[T]) *Regex[T] {
	re := &Regex[T]{prog: prog}
	re.machines.New = func() any { return vm.NewMachine(prog) }
	return re
}

// CompileSyntax parses pattern with the surface grammar (see package
// syntax) using env to resolve [name] and [|x| ...] predicate references,
// then compiles the result. It returns a *syntax.ParseError for malformed
// pattern syntax.
func CompileSyntax[T any](pattern string, env syntax.Env[T]) (*Regex[T], error) {
	n, err := syntax.Parse[T](pattern, env)
	if err != nil {
		return nil, err
	}
	return Compile(n), nil
}

// MustCompileSyntax is like CompileSyntax but panics if pattern fails to
// parse. Intended for patterns known valid at init time.
func MustCompileSyntax[T any](pattern string, env syntax.Env[T]) *Regex[T] {
	re, err := CompileSyntax(pattern, env)
	if err != nil {
		panic("tregex: CompileSyntax(" + pattern + "): " + err.Error())
	}
	return re
}

func (re *Regex[T]) machine() *vm.Machine[T] {
	return re.machines.Get().(*vm.Machine[T])
}

func (re *Regex[T]) putMachine(m *vm.Machine[T]) {
	re.machines.Put(m)
}

// IsFullMatch reports whether the entire input is consumed by a successful
// match.
func (re *Regex[T]) IsFullMatch(input []T) bool {
	m := re.machine()
	defer re.putMachine(m)
	_, ok := m.FullMatch(input)
	return ok
}

// IsMatch reports whether some contiguous sub-range of input matches.
func (re *Regex[T]) IsMatch(input []T) bool {
	m := re.machine()
	defer re.putMachine(m)
	_, ok := m.AnyMatch(input)
	return ok
}

// Captures finds the leftmost-first match (the same as IsMatch's search)
// and returns its whole-match and group spans. The second return value is
// false if there is no match anywhere in input.
func (re *Regex[T]) Captures(input []T) (*Captures[T], bool) {
	m := re.machine()
	defer re.putMachine(m)

	res, ok := m.AnyMatch(input)
	if !ok {
		return nil, false
	}
	return &Captures[T]{
		input: input,
		start: res.Start,
		end:   res.End,
		slots: res.Slots,
		names: res.Names,
	}, true
}

// NumGroups returns the number of explicit capture groups in the compiled
// pattern (not counting group 0, the whole match).
func (re *Regex[T]) NumGroups() int {
	return re.prog.NumGroups
}

// GroupNames returns the distinct group names appearing in the pattern, in
// first-occurrence order.
func (re *Regex[T]) GroupNames() []string {
	return re.prog.Names
}

// Match is one matched span: a half-open [Start, End) range into the
// input the match was found in.
type Match[T any] struct {
	start, end int
	input      []T
}

// Start returns the inclusive start index of the match.
func (m Match[T]) Start() int { return m.start }

// End returns the exclusive end index of the match.
func (m Match[T]) End() int { return m.end }

// Range returns (Start(), End()).
func (m Match[T]) Range() (int, int) { return m.start, m.end }

// Values returns the matched sub-slice of the original input. The slice
// shares storage with the input passed to the query that produced it.
func (m Match[T]) Values() []T { return m.input[m.start:m.end] }

// Captures is the result of a successful Regex.Captures call: the whole
// match plus every capture group's span, if any.
type Captures[T any] struct {
	input      []T
	start, end int
	slots      []int
	names      map[string]int
}

// Get returns group i's match: index 0 is the whole match, 1..NumGroups()
// are capture groups in pattern order. The second return value is false if
// the group exists in the pattern but did not participate in this match
// (e.g. the other side of an Or, or a repetition that ran zero times).
func (c *Captures[T]) Get(i int) (Match[T], bool) {
	if i == 0 {
		return Match[T]{start: c.start, end: c.end, input: c.input}, true
	}
	openIdx, closeIdx := 2*i, 2*i+1
	if openIdx+1 >= len(c.slots) {
		return Match[T]{}, false
	}
	open, close := c.slots[openIdx], c.slots[closeIdx]
	if (open < 0) != (close < 0) {
		panic("tregex: asymmetric capture saves for a group")
	}
	if open < 0 {
		return Match[T]{}, false
	}
	return Match[T]{start: open, end: close, input: c.input}, true
}

// Name looks up a named group's match by name.
func (c *Captures[T]) Name(name string) (Match[T], bool) {
	g, ok := c.names[name]
	if !ok {
		return Match[T]{}, false
	}
	return c.Get(g)
}

// Len returns the number of capture groups, including group 0 (the whole
// match).
func (c *Captures[T]) Len() int {
	return len(c.slots) / 2
}
