package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func isDigit(v int) bool { return v >= 0 && v <= 9 }

func TestProgramNumSlots(t *testing.T) {
	p := &Program[int]{NumGroups: 0}
	assert.Equal(t, 2, p.NumSlots())

	p = &Program[int]{NumGroups: 3}
	assert.Equal(t, 8, p.NumSlots())
}

func TestProgramDumpRendersEveryOpcode(t *testing.T) {
	p := &Program[int]{
		Insts: []Inst[int]{
			{Op: OpCheck, Pred: isDigit},
			{Op: OpSplit, X: 0, Y: 2},
			{Op: OpJmp, X: 4},
			{Op: OpSaveOpen, Group: 1},
			{Op: OpSaveClose, Group: 1},
			{Op: OpSaveNamedOpen, Group: 2, Name: "digit"},
			{Op: OpSaveNamedClose, Group: 2, Name: "digit"},
			{Op: OpBegin},
			{Op: OpEnd},
			{Op: OpMatch},
		},
	}
	dump := p.Dump()

	assert.Contains(t, dump, "0\tcheck")
	assert.Contains(t, dump, "1\tsplit 0, 2")
	assert.Contains(t, dump, "2\tjmp 4")
	assert.Contains(t, dump, "3\tsave_open 1")
	assert.Contains(t, dump, "4\tsave_close 1")
	assert.Contains(t, dump, "5\tsave_named_open 2 digit")
	assert.Contains(t, dump, "6\tsave_named_close 2 digit")
	assert.Contains(t, dump, "7\tbegin")
	assert.Contains(t, dump, "8\tend")
	assert.Contains(t, dump, "9\tmatch")
}

func TestOpcodeStringUnknown(t *testing.T) {
	assert.Equal(t, "unknown", Opcode(255).String())
}
