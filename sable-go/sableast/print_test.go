package sableast

import (
	"bytes"
	"testing"

	"github.com/sable-lang/sable/sable-go/sablescanner"
	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert.Equal(t, "Nil", String(nil))
	assert.Equal(t, "Name[a]", String(a))
	assert.Equal(t, "BinOp[+]", String(outer))
	assert.Equal(t, "BinOp[*]", String(inner))
	assert.Equal(t, "Num[42]", String(newInt("42", 42)))
	assert.Equal(t, "Module", String(&Module{}))

	assert.Equal(t, "UnaryOp[not]", String(&UnaryOp{Op: Not, Operand: a}))
	assert.Equal(t, "AugAssign[//=]", String(&AugAssign{Target: a, Op: FloorDiv, Value: b}))
	assert.Equal(t, "Compare[< <=]", String(&Compare{
		Left:        a,
		Ops:         []CmpOpType{Lt, LtE},
		Comparators: []Expr{b, c},
	}))
	assert.Equal(t, "BoolOp[and]", String(&BoolOp{Op: And, Values: []Expr{a, b}}))

	assert.Equal(t, "Attribute[append]", String(&Attribute{Value: a, Attr: "append"}))
	assert.Equal(t, "Parameter[*args]", String(&Parameter{Name: "args", IsVararg: true}))
	assert.Equal(t, "Parameter[**kwargs]", String(&Parameter{Name: "kwargs", IsKwarg: true}))
	assert.Equal(t, "Alias[numpy as np]", String(&Alias{Name: "numpy", AsName: "np"}))
	assert.Equal(t, "Keyword[**]", String(&Keyword{Value: a}))
	assert.Equal(t, "FormattedValue[!r]", String(&FormattedValue{Value: a, Conversion: 'r'}))

	// newlines in literals are escaped for one-line output
	str := &Str{Word: sablescanner.Word{
		Token:    sablescanner.String,
		Literal:  "\"a\nb\"",
		StrValue: "a\nb",
	}}
	assert.Equal(t, `Str["a\nb"]`, String(str))
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Print(outer, &buf, "  ")

	expected := "BinOp[+]\n" +
		"  Name[a]\n" +
		"  BinOp[*]\n" +
		"    Name[b]\n" +
		"    Name[c]\n"
	assert.Equal(t, expected, buf.String())
}

func TestPrintPositions(t *testing.T) {
	var buf bytes.Buffer
	PrintPositions(outer, &buf, "  ")

	expected := "[  1:1  ]BinOp[+]\n" +
		"[  1:1  ]  Name[a]\n" +
		"[  1:5  ]  BinOp[*]\n" +
		"[  1:5  ]    Name[b]\n" +
		"[  1:9  ]    Name[c]\n"
	assert.Equal(t, expected, buf.String())
}
