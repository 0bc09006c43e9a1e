// Package compile lowers a pattern AST (package ast) into a flat
// instruction Program (package vm) that the virtual machine executes.
//
// Lowering is a single recursive pass that emits instructions in place and
// patches forward jump targets once a subexpression's length is known: a
// Split or Jmp is appended as a placeholder, the subexpression is emitted,
// and only then is the placeholder's target field filled in with the
// now-known program counter. This mirrors how a one-pass assembler handles
// forward references, and is the same technique the original Rust
// reference compiler (_compile_regex) uses by threading explicit PC values
// through the recursion.
package compile

import (
	"fmt"

	"github.com/coregx/tregex/ast"
	"github.com/coregx/tregex/vm"
)

// Compile lowers root into a runnable Program. Capture indices are
// assigned in visitation order starting at 1; group 0 (the whole match) is
// tracked by the VM directly and never materialized as a Save pair.
func Compile[T any](root ast.Node[T]) *vm.Program[T] {
	c := &compiler[T]{seenNames: map[string]bool{}}
	c.emit(root)
	c.insts = append(c.insts, vm.Inst[T]{Op: vm.OpMatch})
	return &vm.Program[T]{Insts: c.insts, NumGroups: c.numGroups, Names: c.names}
}

type compiler[T any] struct {
	insts     []vm.Inst[T]
	numGroups int
	names     []string
	seenNames map[string]bool
}

func (c *compiler[T]) pc() int { return len(c.insts) }

func (c *compiler[T]) emitInst(inst vm.Inst[T]) int {
	c.insts = append(c.insts, inst)
	return len(c.insts) - 1
}

func (c *compiler[T]) nextGroup(name string) int {
	c.numGroups++
	if name != "" && !c.seenNames[name] {
		c.seenNames[name] = true
		c.names = append(c.names, name)
	}
	return c.numGroups
}

func (c *compiler[T]) emit(n ast.Node[T]) {
	switch v := n.(type) {
	case ast.Satisfy[T]:
		c.emitInst(vm.Inst[T]{Op: vm.OpCheck, Pred: v.Pred})

	case ast.NotSatisfy[T]:
		pred := v.Pred
		c.emitInst(vm.Inst[T]{Op: vm.OpCheck, Pred: func(x T) bool { return !pred(x) }})

	case ast.Concat[T]:
		c.emit(v.R)
		c.emit(v.S)

	case ast.Or[T]:
		c.emitOr(v.R, v.S)

	case ast.Group[T]:
		g := c.nextGroup("")
		c.emitInst(vm.Inst[T]{Op: vm.OpSaveOpen, Group: g})
		c.emit(v.R)
		c.emitInst(vm.Inst[T]{Op: vm.OpSaveClose, Group: g})

	case ast.NamedGroup[T]:
		g := c.nextGroup(v.Name)
		c.emitInst(vm.Inst[T]{Op: vm.OpSaveNamedOpen, Group: g, Name: v.Name})
		c.emit(v.R)
		c.emitInst(vm.Inst[T]{Op: vm.OpSaveNamedClose, Group: g, Name: v.Name})

	case ast.NonCapturingGroup[T]:
		c.emit(v.R)

	case ast.ZeroOrOne[T]:
		c.emitZeroOrOne(v.R, v.Greedy)

	case ast.Repeat0[T]:
		c.emitRepeat0(v.R, v.Greedy)

	case ast.Repeat1[T]:
		c.emitRepeat1(v.R, v.Greedy)

	case ast.RepeatN[T]:
		for i := 0; i < v.N; i++ {
			c.emit(v.R)
		}

	case ast.RepeatMinMax[T]:
		c.emitRepeatMinMax(v)

	case ast.Begin[T]:
		c.emitInst(vm.Inst[T]{Op: vm.OpBegin})

	case ast.End[T]:
		c.emitInst(vm.Inst[T]{Op: vm.OpEnd})

	default:
		panic(fmt.Sprintf("compile: unhandled ast node %T", n))
	}
}

// emitOr lowers r|s as:
//
//	split L1, L2
//	L1: <r>
//	    jmp L3
//	L2: <s>
//	L3:
//
// r is the higher-priority (first-tried) branch.
func (c *compiler[T]) emitOr(r, s ast.Node[T]) {
	split := c.emitInst(vm.Inst[T]{Op: vm.OpSplit})
	l1 := c.pc()
	c.emit(r)
	jmp := c.emitInst(vm.Inst[T]{Op: vm.OpJmp})
	l2 := c.pc()
	c.emit(s)
	l3 := c.pc()

	c.insts[split].X = l1
	c.insts[split].Y = l2
	c.insts[jmp].X = l3
}

// emitZeroOrOne lowers r? (or r?? when not greedy) as a single split
// between the body and the exit, branch order set by greediness.
func (c *compiler[T]) emitZeroOrOne(r ast.Node[T], greedy bool) {
	split := c.emitInst(vm.Inst[T]{Op: vm.OpSplit})
	body := c.pc()
	c.emit(r)
	exit := c.pc()
	if greedy {
		c.insts[split].X, c.insts[split].Y = body, exit
	} else {
		c.insts[split].X, c.insts[split].Y = exit, body
	}
}

// emitRepeat0 lowers r* (or r*?) as:
//
//	L1: split L2, L3   (or split L3, L2 when lazy)
//	L2: <r>
//	    jmp L1
//	L3:
func (c *compiler[T]) emitRepeat0(r ast.Node[T], greedy bool) {
	l1 := c.emitInst(vm.Inst[T]{Op: vm.OpSplit})
	l2 := c.pc()
	c.emit(r)
	c.emitInst(vm.Inst[T]{Op: vm.OpJmp, X: l1})
	l3 := c.pc()
	if greedy {
		c.insts[l1].X, c.insts[l1].Y = l2, l3
	} else {
		c.insts[l1].X, c.insts[l1].Y = l3, l2
	}
}

// emitRepeat1 lowers r+ (or r+?) as:
//
//	L1: <r>
//	    split L1, L3   (or split L3, L1 when lazy)
//	L3:
func (c *compiler[T]) emitRepeat1(r ast.Node[T], greedy bool) {
	l1 := c.pc()
	c.emit(r)
	split := c.emitInst(vm.Inst[T]{Op: vm.OpSplit})
	l3 := c.pc()
	if greedy {
		c.insts[split].X, c.insts[split].Y = l1, l3
	} else {
		c.insts[split].X, c.insts[split].Y = l3, l1
	}
}

// emitRepeatMinMax lowers {n,}/{n,m} by syntactic unrolling: n mandatory
// copies of r (each re-traversing r, so a Group inside r gets fresh
// capture indices per copy), followed by either a trailing r* (n-or-more)
// or m-n trailing r? copies (bounded).
func (c *compiler[T]) emitRepeatMinMax(v ast.RepeatMinMax[T]) {
	for i := 0; i < v.N; i++ {
		c.emit(v.R)
	}
	if v.M == nil {
		c.emitRepeat0(v.R, v.Greedy)
		return
	}
	for i := 0; i < *v.M-v.N; i++ {
		c.emitZeroOrOne(v.R, v.Greedy)
	}
}
