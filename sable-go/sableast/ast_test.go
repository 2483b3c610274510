package sableast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBegin(t *testing.T) {
	// nodes without a leading keyword derive their position from the
	// first child in source order
	assign := &Assign{Targets: []Expr{a}, Value: b}
	assert.Equal(t, Position{Line: 1, Column: 1}, assign.Begin())

	assert.Equal(t, a.Begin(), outer.Begin())
	assert.Equal(t, b.Begin(), inner.Begin())

	call := &Call{Func: c}
	assert.Equal(t, c.Begin(), call.Begin())

	// "a if b else c" starts at a
	ifexp := &IfExp{Test: b, Body: a, OrElse: c}
	assert.Equal(t, a.Begin(), ifexp.Begin())

	stmt := &ExprStmt{Value: outer}
	assert.Equal(t, outer.Begin(), stmt.Begin())

	num := newInt("7", 7)
	num.Word.Line = 2
	num.Word.Column = 9
	assert.Equal(t, Position{Line: 2, Column: 9}, num.Begin())

	ret := &Return{Pos: Position{Line: 3, Column: 5}}
	assert.Equal(t, Position{Line: 3, Column: 5}, ret.Begin())

	// an empty module still has a position
	assert.Equal(t, Position{Line: 1, Column: 1}, (&Module{}).Begin())
}

func TestOpType_String(t *testing.T) {
	expected := map[OpType]string{
		Add:      "+",
		Sub:      "-",
		Mult:     "*",
		MatMult:  "@",
		Div:      "/",
		Mod:      "%",
		Pow:      "**",
		LShift:   "<<",
		RShift:   ">>",
		BitOr:    "|",
		BitXor:   "^",
		BitAnd:   "&",
		FloorDiv: "//",
	}
	for op, s := range expected {
		assert.Equal(t, s, op.String())
	}
}

func TestUnaryOpType_String(t *testing.T) {
	assert.Equal(t, "~", Invert.String())
	assert.Equal(t, "not", Not.String())
	assert.Equal(t, "+", UAdd.String())
	assert.Equal(t, "-", USub.String())
}

func TestBoolOpType_String(t *testing.T) {
	assert.Equal(t, "and", And.String())
	assert.Equal(t, "or", Or.String())
}

func TestCmpOpType_String(t *testing.T) {
	expected := map[CmpOpType]string{
		Eq:    "==",
		NotEq: "!=",
		Lt:    "<",
		LtE:   "<=",
		Gt:    ">",
		GtE:   ">=",
		Is:    "is",
		IsNot: "is not",
		In:    "in",
		NotIn: "not in",
	}
	for op, s := range expected {
		assert.Equal(t, s, op.String())
	}
}

func TestExprContextType_String(t *testing.T) {
	assert.Equal(t, "Load", Load.String())
	assert.Equal(t, "Store", Store.String())
	assert.Equal(t, "Del", Del.String())
}
