package sableast

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/sable-lang/sable/sable-go/sablescanner"
)

func derefType(t reflect.Type) reflect.Type {
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Array:
		return derefType(t.Elem())
	default:
		return t
	}
}

func typename(obj interface{}) string {
	return derefType(reflect.TypeOf(obj)).Name()
}

func litStr(word sablescanner.Word) string {
	if word.Token == sablescanner.Illegal {
		return word.Token.String()
	}
	return strings.Replace(word.Literal, "\n", "\\n", -1)
}

// String returns a short textual representation of a node
func String(n Node) string {
	if IsNil(n) {
		return "Nil"
	}
	out := typename(n)
	switch n := n.(type) {
	case *Name:
		out += "[" + n.Id + "]"
	case *Attribute:
		out += "[" + n.Attr + "]"
	case *Num:
		out += "[" + litStr(n.Word) + "]"
	case *Str:
		out += "[" + litStr(n.Word) + "]"
	case *Bytes:
		out += "[" + litStr(n.Word) + "]"
	case *NameConstant:
		out += "[" + litStr(n.Word) + "]"
	case *BinOp:
		out += "[" + n.Op.String() + "]"
	case *UnaryOp:
		out += "[" + n.Op.String() + "]"
	case *BoolOp:
		out += "[" + n.Op.String() + "]"
	case *AugAssign:
		out += "[" + n.Op.String() + "=]"
	case *Compare:
		var ops []string
		for _, op := range n.Ops {
			ops = append(ops, op.String())
		}
		out += "[" + strings.Join(ops, " ") + "]"
	case *FunctionDef:
		out += "[" + n.Name + "]"
	case *ClassDef:
		out += "[" + n.Name + "]"
	case *Parameter:
		name := n.Name
		if n.IsVararg {
			name = "*" + name
		} else if n.IsKwarg {
			name = "**" + name
		}
		out += "[" + name + "]"
	case *Alias:
		name := n.Name
		if n.AsName != "" {
			name += " as " + n.AsName
		}
		out += "[" + name + "]"
	case *Keyword:
		if n.Arg == "" {
			out += "[**]"
		} else {
			out += "[" + n.Arg + "]"
		}
	case *FormattedValue:
		if n.Conversion != 0 {
			out += "[!" + string(n.Conversion) + "]"
		}
	}
	return out
}

type prettyPrinter struct {
	depth     int
	indent    string
	positions bool
	w         io.Writer
}

func (p *prettyPrinter) Visit(n Node) Visitor {
	if n == nil {
		p.depth--
	} else {
		prefix := strings.Repeat(p.indent, p.depth)
		if p.positions {
			pos := n.Begin()
			prefix = fmt.Sprintf("[%3d:%-3d]", pos.Line, pos.Column) + prefix
		}
		fmt.Fprintln(p.w, prefix+String(n))
		p.depth++
	}
	return p
}

// Print writes a textual representation of syntax tree to the given writer
func Print(root Node, w io.Writer, indent string) {
	printer := prettyPrinter{
		w:      w,
		indent: indent,
	}
	Walk(&printer, root)
}

// PrintPositions writes a textual representation of syntax tree to the given
// writer, including the line:column of each node's first token.
func PrintPositions(root Node, w io.Writer, indent string) {
	printer := prettyPrinter{
		w:         w,
		indent:    indent,
		positions: true,
	}
	Walk(&printer, root)
}
