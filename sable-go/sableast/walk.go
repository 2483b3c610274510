package sableast

import (
	"fmt"
	"reflect"
)

// Visitor defines a Visit method invoked for each node encountered
// by Walk. If the result visitor w is not nil, Walk visits each of
// the children of node with the visitor w, followed by a call of
// w.Visit(nil).
type Visitor interface {
	Visit(n Node) (w Visitor)
}

// IsNil reports whether n is nil, including a typed nil stored in the
// interface.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

func walkStmts(v Visitor, stmts []Stmt) {
	for _, s := range stmts {
		Walk(v, s)
	}
}

func walkExprs(v Visitor, exprs []Expr) {
	for _, e := range exprs {
		Walk(v, e)
	}
}

func walkParams(v Visitor, params []*Parameter) {
	for _, p := range params {
		Walk(v, p)
	}
}

// Walk traverses an AST in depth-first order: it starts by calling
// v.Visit(n); n must not be nil. If the visitor w returned by
// v.Visit(n) is not nil, Walk is invoked recursively with visitor w
// for each of the non-nil children of n, followed by a call of
// w.Visit(nil). Children are visited in source order.
func Walk(v Visitor, n Node) {
	if v = v.Visit(n); v == nil {
		return
	}

	switch n := n.(type) {
	case *Module:
		walkStmts(v, n.Body)

	// statements
	case *FunctionDef:
		walkExprs(v, n.Decorators)
		walkParams(v, n.Params)
		if !IsNil(n.Returns) {
			Walk(v, n.Returns)
		}
		walkStmts(v, n.Body)
	case *ClassDef:
		walkExprs(v, n.Decorators)
		walkExprs(v, n.Bases)
		for _, kw := range n.Keywords {
			Walk(v, kw)
		}
		walkStmts(v, n.Body)
	case *Return:
		if !IsNil(n.Value) {
			Walk(v, n.Value)
		}
	case *Delete:
		walkExprs(v, n.Targets)
	case *Assign:
		walkExprs(v, n.Targets)
		Walk(v, n.Value)
	case *AugAssign:
		Walk(v, n.Target)
		Walk(v, n.Value)
	case *AnnAssign:
		Walk(v, n.Target)
		Walk(v, n.Annotation)
		if !IsNil(n.Value) {
			Walk(v, n.Value)
		}
	case *For:
		Walk(v, n.Target)
		Walk(v, n.Iter)
		walkStmts(v, n.Body)
		walkStmts(v, n.OrElse)
	case *While:
		Walk(v, n.Test)
		walkStmts(v, n.Body)
		walkStmts(v, n.OrElse)
	case *If:
		Walk(v, n.Test)
		walkStmts(v, n.Body)
		walkStmts(v, n.OrElse)
	case *With:
		for _, item := range n.Items {
			Walk(v, item)
		}
		walkStmts(v, n.Body)
	case *Raise:
		if !IsNil(n.Exc) {
			Walk(v, n.Exc)
		}
		if !IsNil(n.Cause) {
			Walk(v, n.Cause)
		}
	case *Try:
		walkStmts(v, n.Body)
		for _, h := range n.Handlers {
			Walk(v, h)
		}
		walkStmts(v, n.OrElse)
		walkStmts(v, n.FinalBody)
	case *Assert:
		Walk(v, n.Test)
		if !IsNil(n.Msg) {
			Walk(v, n.Msg)
		}
	case *Import:
		for _, a := range n.Names {
			Walk(v, a)
		}
	case *ImportFrom:
		for _, a := range n.Names {
			Walk(v, a)
		}
	case *Global, *Nonlocal, *Pass, *Break, *Continue:
		// no children
	case *ExprStmt:
		Walk(v, n.Value)
	case *Match:
		Walk(v, n.Subject)
		for _, c := range n.Cases {
			Walk(v, c)
		}

	// expressions
	case *BoolOp:
		walkExprs(v, n.Values)
	case *BinOp:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *UnaryOp:
		Walk(v, n.Operand)
	case *Lambda:
		walkParams(v, n.Params)
		Walk(v, n.Body)
	case *IfExp:
		Walk(v, n.Body)
		Walk(v, n.Test)
		Walk(v, n.OrElse)
	case *Dict:
		for i, key := range n.Keys {
			if !IsNil(key) {
				Walk(v, key)
			}
			Walk(v, n.Values[i])
		}
	case *Set:
		walkExprs(v, n.Elts)
	case *ListComp:
		Walk(v, n.Elt)
		for _, g := range n.Generators {
			Walk(v, g)
		}
	case *SetComp:
		Walk(v, n.Elt)
		for _, g := range n.Generators {
			Walk(v, g)
		}
	case *DictComp:
		Walk(v, n.Key)
		Walk(v, n.Value)
		for _, g := range n.Generators {
			Walk(v, g)
		}
	case *GeneratorExp:
		Walk(v, n.Elt)
		for _, g := range n.Generators {
			Walk(v, g)
		}
	case *Await:
		Walk(v, n.Value)
	case *Yield:
		if !IsNil(n.Value) {
			Walk(v, n.Value)
		}
	case *YieldFrom:
		Walk(v, n.Value)
	case *Compare:
		Walk(v, n.Left)
		walkExprs(v, n.Comparators)
	case *Call:
		Walk(v, n.Func)
		walkExprs(v, n.Args)
		for _, kw := range n.Keywords {
			Walk(v, kw)
		}
	case *Num, *Str, *Bytes, *NameConstant, *Ellipsis, *Name:
		// no children
	case *FormattedValue:
		Walk(v, n.Value)
		if n.FormatSpec != nil {
			Walk(v, n.FormatSpec)
		}
	case *JoinedStr:
		walkExprs(v, n.Values)
	case *Attribute:
		Walk(v, n.Value)
	case *Subscript:
		Walk(v, n.Value)
		Walk(v, n.Index)
	case *Starred:
		Walk(v, n.Value)
	case *List:
		walkExprs(v, n.Elts)
	case *Tuple:
		walkExprs(v, n.Elts)
	case *Slice:
		if !IsNil(n.Lower) {
			Walk(v, n.Lower)
		}
		if !IsNil(n.Upper) {
			Walk(v, n.Upper)
		}
		if !IsNil(n.Step) {
			Walk(v, n.Step)
		}
	case *NamedExpr:
		Walk(v, n.Target)
		Walk(v, n.Value)

	// supporting nodes
	case *Parameter:
		if !IsNil(n.Annotation) {
			Walk(v, n.Annotation)
		}
		if !IsNil(n.Default) {
			Walk(v, n.Default)
		}
	case *Comprehension:
		Walk(v, n.Target)
		Walk(v, n.Iter)
		walkExprs(v, n.Ifs)
	case *ExceptHandler:
		if !IsNil(n.Type) {
			Walk(v, n.Type)
		}
		walkStmts(v, n.Body)
	case *Alias:
		// no children
	case *Keyword:
		Walk(v, n.Value)
	case *WithItem:
		Walk(v, n.ContextExpr)
		if !IsNil(n.OptionalVars) {
			Walk(v, n.OptionalVars)
		}
	case *MatchCase:
		Walk(v, n.Pattern)
		if !IsNil(n.Guard) {
			Walk(v, n.Guard)
		}
		walkStmts(v, n.Body)

	default:
		panic(fmt.Sprintf("sableast.Walk: unexpected node type %T", n))
	}

	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(n Node) Visitor {
	if f(n) {
		return f
	}
	return nil
}

// Inspect traverses an AST in depth-first order: it starts by calling
// f(n); n must not be nil. If f returns true, Inspect invokes f
// recursively for each of the non-nil children of n, followed by a
// call of f(nil).
func Inspect(n Node, f func(Node) bool) {
	Walk(inspector(f), n)
}
