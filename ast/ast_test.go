package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/tregex/ast"
)

func TestConstructorsProduceExpectedKinds(t *testing.T) {
	n := ast.NewIs(3)
	sat, ok := n.(ast.Satisfy[int])
	require.True(t, ok)
	assert.True(t, sat.Pred(3))
	assert.False(t, sat.Pred(4))
}

func TestSeqFoldsIntoConcat(t *testing.T) {
	n := ast.NewSeq([]int{1, 2, 3})
	c1, ok := n.(ast.Concat[int])
	require.True(t, ok)
	c2, ok := c1.R.(ast.Concat[int])
	require.True(t, ok)
	first, ok := c2.R.(ast.Satisfy[int])
	require.True(t, ok)
	assert.True(t, first.Pred(1))
}

func TestAnyMatchesEverything(t *testing.T) {
	n := ast.NewAny[int]()
	sat := n.(ast.Satisfy[int])
	assert.True(t, sat.Pred(0))
	assert.True(t, sat.Pred(-100))
}

// NotSatisfy keeps the caller's predicate as given; the negation is applied
// when package compile lowers the node to a Check.
func TestNotSatisfyKeepsPredicateUnnegated(t *testing.T) {
	n := ast.NewNotSatisfy(func(x int) bool { return x%2 == 0 })
	not := n.(ast.NotSatisfy[int])
	assert.True(t, not.Pred(2))
	assert.False(t, not.Pred(3))
}

func TestRepeatMinMaxValidatesBounds(t *testing.T) {
	assert.Panics(t, func() {
		ast.NewRepeatMinMax(ast.NewAny[int](), 3, 1, true)
	})
	assert.NotPanics(t, func() {
		ast.NewRepeatMinMax(ast.NewAny[int](), 0, 0, true)
	})
}

func TestRepeatNRejectsNegative(t *testing.T) {
	assert.Panics(t, func() {
		ast.NewRepeatN(ast.NewAny[int](), -1)
	})
}

func TestRepeatNOrMoreIsMinMaxWithNilUpper(t *testing.T) {
	n := ast.NewRepeatNOrMore(ast.NewAny[int](), 2, false)
	rm, ok := n.(ast.RepeatMinMax[int])
	require.True(t, ok)
	assert.Equal(t, 2, rm.N)
	assert.Nil(t, rm.M)
	assert.False(t, rm.Greedy)
}

func TestNamedGroupRejectsEmptyName(t *testing.T) {
	assert.Panics(t, func() {
		ast.NewNamedGroup("", ast.NewAny[int]())
	})
}
