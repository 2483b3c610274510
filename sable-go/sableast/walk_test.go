package sableast

import (
	"testing"

	"github.com/sable-lang/sable/sable-go/sablescanner"
	"github.com/stretchr/testify/assert"
)

func newName(id string, line, col int) *Name {
	return &Name{
		Pos: Position{Line: line, Column: col},
		Id:  id,
	}
}

func newInt(lit string, val int64) *Num {
	return &Num{
		Word: sablescanner.Word{
			Token:    sablescanner.Int,
			Literal:  lit,
			IntValue: val,
		},
	}
}

var (
	// an expression like a + (b * c)
	a     = newName("a", 1, 1)
	b     = newName("b", 1, 5)
	c     = newName("c", 1, 9)
	inner = &BinOp{
		Left:  b,
		Op:    Mult,
		Right: c,
	}
	outer = &BinOp{
		Left:  a,
		Op:    Add,
		Right: inner,
	}
)

func TestInspect(t *testing.T) {
	expected := []Node{
		outer,
		a,
		nil, // closes "a"
		inner,
		b,
		nil, // closes "b"
		c,
		nil, // closes "c"
		nil, // closes "inner"
		nil, // closes "outer"
	}

	var actual []Node
	Inspect(outer, func(n Node) bool {
		actual = append(actual, n)
		return true
	})

	assert.Equal(t, expected, actual)
}

func TestInspect_Prune(t *testing.T) {
	expected := []Node{
		outer,
		a,
		nil,   // closes "a"
		inner, // subtree pruned, no closing nil
		nil,   // closes "outer"
	}

	var actual []Node
	Inspect(outer, func(n Node) bool {
		actual = append(actual, n)
		return n != inner
	})

	assert.Equal(t, expected, actual)
}

func TestWalk_Statements(t *testing.T) {
	// def f(x, y=1):
	//     if x:
	//         return y
	//     return None
	module := &Module{
		Body: []Stmt{
			&FunctionDef{
				Pos:  Position{Line: 1, Column: 1},
				Name: "f",
				Params: []*Parameter{
					{Pos: Position{Line: 1, Column: 7}, Name: "x"},
					{Pos: Position{Line: 1, Column: 10}, Name: "y", Default: newInt("1", 1)},
				},
				Body: []Stmt{
					&If{
						Pos:  Position{Line: 2, Column: 5},
						Test: newName("x", 2, 8),
						Body: []Stmt{
							&Return{Pos: Position{Line: 3, Column: 9}, Value: newName("y", 3, 16)},
						},
					},
					&Return{
						Pos: Position{Line: 4, Column: 5},
						Value: &NameConstant{
							Word: sablescanner.Word{
								Token:   sablescanner.None,
								Literal: "None",
								Line:    4,
								Column:  12,
							},
						},
					},
				},
			},
		},
	}

	expected := []string{
		"Module",
		"FunctionDef[f]",
		"Parameter[x]",
		"Parameter[y]",
		"Num[1]",
		"If",
		"Name[x]",
		"Return",
		"Name[y]",
		"Return",
		"NameConstant[None]",
	}

	var actual []string
	Inspect(module, func(n Node) bool {
		if n != nil {
			actual = append(actual, String(n))
		}
		return true
	})

	assert.Equal(t, expected, actual)
}

func TestWalk_DictSpread(t *testing.T) {
	// {**base, "k": v}
	d := &Dict{
		Pos:    Position{Line: 1, Column: 1},
		Keys:   []Expr{nil, &Str{Word: sablescanner.Word{Token: sablescanner.String, Literal: `"k"`, StrValue: "k"}}},
		Values: []Expr{newName("base", 1, 4), newName("v", 1, 16)},
	}

	expected := []string{"Dict", "Name[base]", `Str["k"]`, "Name[v]"}

	var actual []string
	Inspect(d, func(n Node) bool {
		if n != nil {
			actual = append(actual, String(n))
		}
		return true
	})

	assert.Equal(t, expected, actual)
}

func TestIsNil(t *testing.T) {
	assert.True(t, IsNil(nil))

	var typed Expr = (*Name)(nil)
	assert.True(t, IsNil(typed))

	assert.False(t, IsNil(a))
}
