package sableast

import (
	"github.com/sable-lang/sable/sable-go/sablescanner"
)

// Position identifies a source location, 1-based in both fields.
type Position struct {
	Line   int
	Column int
}

// Node is any node in the abstract syntax tree. Begin returns the
// position of the node's first token.
type Node interface {
	Begin() Position
}

// Stmt is implemented by all statement nodes.
type Stmt interface {
	Node
	stmt()
}

// Expr is implemented by all expression nodes.
type Expr interface {
	Node
	expr()
}

// ExprContextType records how a name-bearing expression is used.
type ExprContextType int

// Expression contexts. Expressions are built with Load; the parser
// re-stamps assignment and deletion targets after the fact.
const (
	Load ExprContextType = iota
	Store
	Del
)

func (c ExprContextType) String() string {
	switch c {
	case Load:
		return "Load"
	case Store:
		return "Store"
	case Del:
		return "Del"
	}
	return "ExprContextType(?)"
}

// OpType is a binary arithmetic or bitwise operator.
type OpType int

// Binary operators.
const (
	Add OpType = iota
	Sub
	Mult
	MatMult
	Div
	Mod
	Pow
	LShift
	RShift
	BitOr
	BitXor
	BitAnd
	FloorDiv
)

func (op OpType) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mult:
		return "*"
	case MatMult:
		return "@"
	case Div:
		return "/"
	case Mod:
		return "%"
	case Pow:
		return "**"
	case LShift:
		return "<<"
	case RShift:
		return ">>"
	case BitOr:
		return "|"
	case BitXor:
		return "^"
	case BitAnd:
		return "&"
	case FloorDiv:
		return "//"
	}
	return "OpType(?)"
}

// BoolOpType is a boolean connective.
type BoolOpType int

// Boolean operators.
const (
	And BoolOpType = iota
	Or
)

func (op BoolOpType) String() string {
	if op == And {
		return "and"
	}
	return "or"
}

// UnaryOpType is a prefix operator.
type UnaryOpType int

// Unary operators.
const (
	Invert UnaryOpType = iota
	Not
	UAdd
	USub
)

func (op UnaryOpType) String() string {
	switch op {
	case Invert:
		return "~"
	case Not:
		return "not"
	case UAdd:
		return "+"
	case USub:
		return "-"
	}
	return "UnaryOpType(?)"
}

// CmpOpType is a comparison operator.
type CmpOpType int

// Comparison operators.
const (
	Eq CmpOpType = iota
	NotEq
	Lt
	LtE
	Gt
	GtE
	Is
	IsNot
	In
	NotIn
)

func (op CmpOpType) String() string {
	switch op {
	case Eq:
		return "=="
	case NotEq:
		return "!="
	case Lt:
		return "<"
	case LtE:
		return "<="
	case Gt:
		return ">"
	case GtE:
		return ">="
	case Is:
		return "is"
	case IsNot:
		return "is not"
	case In:
		return "in"
	case NotIn:
		return "not in"
	}
	return "CmpOpType(?)"
}

// ----------------------------------------------------------------------------
// Module

// Module is the root of a parsed source unit.
type Module struct {
	Body []Stmt
}

func (n *Module) Begin() Position {
	if len(n.Body) > 0 {
		return n.Body[0].Begin()
	}
	return Position{Line: 1, Column: 1}
}

// ----------------------------------------------------------------------------
// Statements

// FunctionDef is a def statement. Pos is the position of the def
// keyword; decorators precede it in the source.
type FunctionDef struct {
	Pos        Position
	Name       string
	Params     []*Parameter
	Body       []Stmt
	Decorators []Expr
	Returns    Expr // return annotation, or nil
	IsAsync    bool
}

// ClassDef is a class statement.
type ClassDef struct {
	Pos        Position
	Name       string
	Bases      []Expr
	Keywords   []*Keyword
	Body       []Stmt
	Decorators []Expr
}

// Return is a return statement with an optional value.
type Return struct {
	Pos   Position
	Value Expr
}

// Delete is a del statement.
type Delete struct {
	Pos     Position
	Targets []Expr
}

// Assign is an assignment, possibly with chained targets as in
// a = b = value.
type Assign struct {
	Targets []Expr
	Value   Expr
}

// AugAssign is an augmented assignment such as x += 1.
type AugAssign struct {
	Target Expr
	Op     OpType
	Value  Expr
}

// AnnAssign is an annotated assignment; Value may be nil for a bare
// declaration such as x: int.
type AnnAssign struct {
	Target     Expr
	Annotation Expr
	Value      Expr
}

// For is a for loop. OrElse holds the optional else suite.
type For struct {
	Pos     Position
	Target  Expr
	Iter    Expr
	Body    []Stmt
	OrElse  []Stmt
	IsAsync bool
}

// While is a while loop. OrElse holds the optional else suite.
type While struct {
	Pos    Position
	Test   Expr
	Body   []Stmt
	OrElse []Stmt
}

// If is an if statement; an elif chain nests as a single-element
// OrElse holding another If.
type If struct {
	Pos    Position
	Test   Expr
	Body   []Stmt
	OrElse []Stmt
}

// With is a with statement.
type With struct {
	Pos     Position
	Items   []*WithItem
	Body    []Stmt
	IsAsync bool
}

// Raise is a raise statement; Cause holds the expression after from.
type Raise struct {
	Pos   Position
	Exc   Expr
	Cause Expr
}

// Try is a try statement with handlers and the optional else and
// finally suites.
type Try struct {
	Pos       Position
	Body      []Stmt
	Handlers  []*ExceptHandler
	OrElse    []Stmt
	FinalBody []Stmt
}

// Assert is an assert statement with an optional message.
type Assert struct {
	Pos  Position
	Test Expr
	Msg  Expr
}

// Import is an import statement.
type Import struct {
	Pos   Position
	Names []*Alias
}

// ImportFrom is a from ... import statement. Level counts the leading
// dots; Module is empty for a purely relative import.
type ImportFrom struct {
	Pos    Position
	Module string
	Names  []*Alias
	Level  int
}

// Global is a global declaration.
type Global struct {
	Pos   Position
	Names []string
}

// Nonlocal is a nonlocal declaration.
type Nonlocal struct {
	Pos   Position
	Names []string
}

// ExprStmt is an expression evaluated for its side effects.
type ExprStmt struct {
	Value Expr
}

// Pass is a pass statement.
type Pass struct {
	Pos Position
}

// Break is a break statement.
type Break struct {
	Pos Position
}

// Continue is a continue statement.
type Continue struct {
	Pos Position
}

// Match is a match statement.
type Match struct {
	Pos     Position
	Subject Expr
	Cases   []*MatchCase
}

func (n *FunctionDef) Begin() Position { return n.Pos }
func (n *ClassDef) Begin() Position    { return n.Pos }
func (n *Return) Begin() Position      { return n.Pos }
func (n *Delete) Begin() Position      { return n.Pos }
func (n *Assign) Begin() Position      { return n.Targets[0].Begin() }
func (n *AugAssign) Begin() Position   { return n.Target.Begin() }
func (n *AnnAssign) Begin() Position   { return n.Target.Begin() }
func (n *For) Begin() Position         { return n.Pos }
func (n *While) Begin() Position       { return n.Pos }
func (n *If) Begin() Position          { return n.Pos }
func (n *With) Begin() Position        { return n.Pos }
func (n *Raise) Begin() Position       { return n.Pos }
func (n *Try) Begin() Position         { return n.Pos }
func (n *Assert) Begin() Position      { return n.Pos }
func (n *Import) Begin() Position      { return n.Pos }
func (n *ImportFrom) Begin() Position  { return n.Pos }
func (n *Global) Begin() Position      { return n.Pos }
func (n *Nonlocal) Begin() Position    { return n.Pos }
func (n *ExprStmt) Begin() Position    { return n.Value.Begin() }
func (n *Pass) Begin() Position        { return n.Pos }
func (n *Break) Begin() Position       { return n.Pos }
func (n *Continue) Begin() Position    { return n.Pos }
func (n *Match) Begin() Position       { return n.Pos }

func (*FunctionDef) stmt() {}
func (*ClassDef) stmt()    {}
func (*Return) stmt()      {}
func (*Delete) stmt()      {}
func (*Assign) stmt()      {}
func (*AugAssign) stmt()   {}
func (*AnnAssign) stmt()   {}
func (*For) stmt()         {}
func (*While) stmt()       {}
func (*If) stmt()          {}
func (*With) stmt()        {}
func (*Raise) stmt()       {}
func (*Try) stmt()         {}
func (*Assert) stmt()      {}
func (*Import) stmt()      {}
func (*ImportFrom) stmt()  {}
func (*Global) stmt()      {}
func (*Nonlocal) stmt()    {}
func (*ExprStmt) stmt()    {}
func (*Pass) stmt()        {}
func (*Break) stmt()       {}
func (*Continue) stmt()    {}
func (*Match) stmt()       {}

// ----------------------------------------------------------------------------
// Expressions

// BoolOp is a chain of and/or connectives over two or more values.
type BoolOp struct {
	Op     BoolOpType
	Values []Expr
}

// BinOp is a binary operation.
type BinOp struct {
	Left  Expr
	Op    OpType
	Right Expr
}

// UnaryOp is a prefix operation.
type UnaryOp struct {
	Pos     Position
	Op      UnaryOpType
	Operand Expr
}

// Lambda is a lambda expression.
type Lambda struct {
	Pos    Position
	Params []*Parameter
	Body   Expr
}

// IfExp is a conditional expression: Body if Test else OrElse.
type IfExp struct {
	Test   Expr
	Body   Expr
	OrElse Expr
}

// Dict is a dict display. A nil key marks a **mapping spread; Keys and
// Values are index-aligned.
type Dict struct {
	Pos    Position
	Keys   []Expr
	Values []Expr
}

// Set is a set display.
type Set struct {
	Pos  Position
	Elts []Expr
}

// ListComp is a list comprehension.
type ListComp struct {
	Pos        Position
	Elt        Expr
	Generators []*Comprehension
}

// SetComp is a set comprehension.
type SetComp struct {
	Pos        Position
	Elt        Expr
	Generators []*Comprehension
}

// DictComp is a dict comprehension.
type DictComp struct {
	Pos        Position
	Key        Expr
	Value      Expr
	Generators []*Comprehension
}

// GeneratorExp is a generator expression.
type GeneratorExp struct {
	Pos        Position
	Elt        Expr
	Generators []*Comprehension
}

// Await is an await expression.
type Await struct {
	Pos   Position
	Value Expr
}

// Yield is a yield expression with an optional value.
type Yield struct {
	Pos   Position
	Value Expr
}

// YieldFrom is a yield from expression.
type YieldFrom struct {
	Pos   Position
	Value Expr
}

// Compare is a chained comparison; Ops and Comparators are
// index-aligned against the running left operand.
type Compare struct {
	Left        Expr
	Ops         []CmpOpType
	Comparators []Expr
}

// Call is a call expression.
type Call struct {
	Func     Expr
	Args     []Expr
	Keywords []*Keyword
}

// Num is a numeric literal. The word carries the token kind (Int,
// Float, Binary, Octal or Hex) and the decoded value.
type Num struct {
	Word sablescanner.Word
}

// Str is a plain or raw string literal; the decoded payload is in
// Word.StrValue.
type Str struct {
	Word sablescanner.Word
}

// FormattedValue is one {expr} piece of an f-string. Conversion is
// 's', 'r' or 'a', or 0 when absent.
type FormattedValue struct {
	Pos        Position
	Value      Expr
	Conversion rune
	FormatSpec *Str
}

// JoinedStr is an f-string: a sequence of Str and FormattedValue parts.
type JoinedStr struct {
	Pos    Position
	Values []Expr
}

// Bytes is a bytes literal; the decoded payload is in Word.BytesValue.
type Bytes struct {
	Word sablescanner.Word
}

// NameConstant is True, False or None; the word's token tells which.
type NameConstant struct {
	Word sablescanner.Word
}

// Ellipsis is the ... literal.
type Ellipsis struct {
	Pos Position
}

// Attribute is a dotted access such as value.attr.
type Attribute struct {
	Value Expr
	Attr  string
	Ctx   ExprContextType
}

// Subscript is an indexing expression; Index is a single expression,
// a *Slice, or a Tuple of indices for multi-dimensional subscripts.
type Subscript struct {
	Value Expr
	Index Expr
	Ctx   ExprContextType
}

// Starred is a *value form in targets, calls and displays.
type Starred struct {
	Pos   Position
	Value Expr
	Ctx   ExprContextType
}

// Name is an identifier.
type Name struct {
	Pos Position
	Id  string
	Ctx ExprContextType
}

// List is a list display.
type List struct {
	Pos  Position
	Elts []Expr
	Ctx  ExprContextType
}

// Tuple is a tuple display; Pos is the opening parenthesis for
// parenthesized tuples, or the first element for bare ones.
type Tuple struct {
	Pos  Position
	Elts []Expr
	Ctx  ExprContextType
}

// Slice is a lower:upper:step range inside a subscript; any part may
// be nil.
type Slice struct {
	Pos   Position
	Lower Expr
	Upper Expr
	Step  Expr
}

// NamedExpr is a walrus binding: Target := Value.
type NamedExpr struct {
	Target *Name
	Value  Expr
}

func (n *BoolOp) Begin() Position         { return n.Values[0].Begin() }
func (n *BinOp) Begin() Position          { return n.Left.Begin() }
func (n *UnaryOp) Begin() Position        { return n.Pos }
func (n *Lambda) Begin() Position         { return n.Pos }
func (n *IfExp) Begin() Position          { return n.Body.Begin() }
func (n *Dict) Begin() Position           { return n.Pos }
func (n *Set) Begin() Position            { return n.Pos }
func (n *ListComp) Begin() Position       { return n.Pos }
func (n *SetComp) Begin() Position        { return n.Pos }
func (n *DictComp) Begin() Position       { return n.Pos }
func (n *GeneratorExp) Begin() Position   { return n.Pos }
func (n *Await) Begin() Position          { return n.Pos }
func (n *Yield) Begin() Position          { return n.Pos }
func (n *YieldFrom) Begin() Position      { return n.Pos }
func (n *Compare) Begin() Position        { return n.Left.Begin() }
func (n *Call) Begin() Position           { return n.Func.Begin() }
func (n *Num) Begin() Position            { return Position{Line: n.Word.Line, Column: n.Word.Column} }
func (n *Str) Begin() Position            { return Position{Line: n.Word.Line, Column: n.Word.Column} }
func (n *FormattedValue) Begin() Position { return n.Pos }
func (n *JoinedStr) Begin() Position      { return n.Pos }
func (n *Bytes) Begin() Position          { return Position{Line: n.Word.Line, Column: n.Word.Column} }
func (n *NameConstant) Begin() Position   { return Position{Line: n.Word.Line, Column: n.Word.Column} }
func (n *Ellipsis) Begin() Position       { return n.Pos }
func (n *Attribute) Begin() Position      { return n.Value.Begin() }
func (n *Subscript) Begin() Position      { return n.Value.Begin() }
func (n *Starred) Begin() Position        { return n.Pos }
func (n *Name) Begin() Position           { return n.Pos }
func (n *List) Begin() Position           { return n.Pos }
func (n *Tuple) Begin() Position          { return n.Pos }
func (n *Slice) Begin() Position          { return n.Pos }
func (n *NamedExpr) Begin() Position      { return n.Target.Begin() }

func (*BoolOp) expr()         {}
func (*BinOp) expr()          {}
func (*UnaryOp) expr()        {}
func (*Lambda) expr()         {}
func (*IfExp) expr()          {}
func (*Dict) expr()           {}
func (*Set) expr()            {}
func (*ListComp) expr()       {}
func (*SetComp) expr()        {}
func (*DictComp) expr()       {}
func (*GeneratorExp) expr()   {}
func (*Await) expr()          {}
func (*Yield) expr()          {}
func (*YieldFrom) expr()      {}
func (*Compare) expr()        {}
func (*Call) expr()           {}
func (*Num) expr()            {}
func (*Str) expr()            {}
func (*FormattedValue) expr() {}
func (*JoinedStr) expr()      {}
func (*Bytes) expr()          {}
func (*NameConstant) expr()   {}
func (*Ellipsis) expr()       {}
func (*Attribute) expr()      {}
func (*Subscript) expr()      {}
func (*Starred) expr()        {}
func (*Name) expr()           {}
func (*List) expr()           {}
func (*Tuple) expr()          {}
func (*Slice) expr()          {}
func (*NamedExpr) expr()      {}

// ----------------------------------------------------------------------------
// Supporting nodes

// Parameter is one formal parameter of a def or lambda. IsVararg
// marks *args (empty Name for a bare * keyword-only marker) and
// IsKwarg marks **kwargs.
type Parameter struct {
	Pos        Position
	Name       string
	Annotation Expr
	Default    Expr
	IsVararg   bool
	IsKwarg    bool
}

func (n *Parameter) Begin() Position { return n.Pos }

// Comprehension is one for ... in ... [if ...]* clause of a
// comprehension.
type Comprehension struct {
	Pos     Position
	Target  Expr
	Iter    Expr
	Ifs     []Expr
	IsAsync bool
}

func (n *Comprehension) Begin() Position { return n.Pos }

// ExceptHandler is one except clause of a try statement. Name is the
// binding after as, or empty.
type ExceptHandler struct {
	Pos  Position
	Type Expr
	Name string
	Body []Stmt
}

func (n *ExceptHandler) Begin() Position { return n.Pos }

// Alias is one name[, as asname] of an import statement.
type Alias struct {
	Pos    Position
	Name   string
	AsName string
}

func (n *Alias) Begin() Position { return n.Pos }

// Keyword is one name=value argument of a call or class header; an
// empty Arg marks a **mapping spread.
type Keyword struct {
	Pos   Position
	Arg   string
	Value Expr
}

func (n *Keyword) Begin() Position { return n.Pos }

// WithItem is one ctx [as target] item of a with statement.
type WithItem struct {
	ContextExpr  Expr
	OptionalVars Expr
}

func (n *WithItem) Begin() Position { return n.ContextExpr.Begin() }

// MatchCase is one case clause of a match statement.
type MatchCase struct {
	Pos     Position
	Pattern Expr
	Guard   Expr
	Body    []Stmt
}

func (n *MatchCase) Begin() Position { return n.Pos }
