// Package vm holds the flat instruction program the compiler emits and the
// parallel-threads (Pike/Thompson) virtual machine that executes it. A
// Program is a value object: once built it never changes, and any number
// of Machines may run it concurrently (a single Machine is not itself
// concurrency-safe; see Machine).
package vm

import (
	"fmt"
	"strings"

	"github.com/coregx/tregex/ast"
)

// Opcode identifies the operation an Inst performs.
type Opcode uint8

const (
	// OpCheck advances iff Pred holds on the current input element;
	// consumes one element.
	OpCheck Opcode = iota
	// OpMatch signals acceptance.
	OpMatch
	// OpJmp is an unconditional control transfer to X.
	OpJmp
	// OpSplit forks two threads at X and Y; X has higher priority.
	OpSplit
	// OpSaveOpen records the current input position as Group's start.
	OpSaveOpen
	// OpSaveClose records the current input position as Group's end.
	OpSaveClose
	// OpSaveNamedOpen is OpSaveOpen, additionally binding Name to Group.
	OpSaveNamedOpen
	// OpSaveNamedClose is OpSaveClose, additionally binding Name to Group.
	OpSaveNamedClose
	// OpBegin proceeds only when the current input position is 0.
	OpBegin
	// OpEnd proceeds only when the current input position is len(input).
	OpEnd
)

// String returns a human-readable opcode name, used by Program.Dump.
func (op Opcode) String() string {
	switch op {
	case OpCheck:
		return "check"
	case OpMatch:
		return "match"
	case OpJmp:
		return "jmp"
	case OpSplit:
		return "split"
	case OpSaveOpen:
		return "save_open"
	case OpSaveClose:
		return "save_close"
	case OpSaveNamedOpen:
		return "save_named_open"
	case OpSaveNamedClose:
		return "save_named_close"
	case OpBegin:
		return "begin"
	case OpEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Inst is a single instruction. Which fields are meaningful depends on Op:
// Pred for OpCheck; X (and Y for OpSplit) for OpJmp/OpSplit; Group for the
// Save opcodes; Name additionally for the SaveNamed opcodes.
type Inst[T any] struct {
	Op    Opcode
	Pred  ast.Predicate[T]
	X, Y  int
	Group int
	Name  string
}

// Program is the compiler's output: an ordered, immutable array of
// opcodes indexed by program counter (PC). Multiple Machines may run the
// same Program concurrently.
type Program[T any] struct {
	Insts []Inst[T]
	// NumGroups is the highest capture-group index used by the program.
	// Capture indices run 1..NumGroups; group 0 (the whole match) is
	// tracked by the VM implicitly, not materialized as a Save pair.
	NumGroups int
	// Names lists the distinct group names appearing in the program, in
	// first-occurrence order. A name may be bound to different group
	// indices on different threads (e.g. one per Or branch); Names only
	// records that the name exists somewhere in the program.
	Names []string
}

// NumSlots returns the number of capture save slots the program uses:
// two per group (open, close), slots 0 and 1 reserved and unused since
// group 0 is tracked outside the slot array.
func (p *Program[T]) NumSlots() int {
	return (p.NumGroups + 1) * 2
}

// Dump renders the program as a human-readable instruction listing, one
// line per PC. It is meant for debugging and test failure messages, not
// for parsing.
func (p *Program[T]) Dump() string {
	var b strings.Builder
	for pc, inst := range p.Insts {
		fmt.Fprintf(&b, "%d\t%s", pc, inst.Op)
		switch inst.Op {
		case OpJmp:
			fmt.Fprintf(&b, " %d", inst.X)
		case OpSplit:
			fmt.Fprintf(&b, " %d, %d", inst.X, inst.Y)
		case OpSaveOpen, OpSaveClose:
			fmt.Fprintf(&b, " %d", inst.Group)
		case OpSaveNamedOpen, OpSaveNamedClose:
			fmt.Fprintf(&b, " %d %s", inst.Group, inst.Name)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
