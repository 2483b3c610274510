package sablescanner

import "strconv"

// Token is the set of lexical tokens of the sable language.
type Token int

// The list of tokens.
const (
	// Special tokens
	Illegal Token = iota
	EOF
	Comment
	NewLine
	LineContinuation

	// Block structure tokens
	Indent
	Dedent

	literalBeg
	// Identifiers and basic type literals
	Ident     // main
	Int       // 12345
	Float     // 123.45
	Binary    // 0b1010
	Octal     // 0o644
	Hex       // 0xbeef
	String    // "abc"
	RawString // r"abc"
	FString   // f"abc{x}"
	Bytes     // b"abc"
	literalEnd

	operatorBeg
	// Operators and delimiters
	Add      // +
	Sub      // -
	Mul      // *
	Div      // /
	FloorDiv // //
	Mod      // %
	Pow      // **
	At       // @

	BitAnd // &
	BitOr  // |
	BitXor // ^
	BitNot // ~
	Shl    // <<
	Shr    // >>

	Assign // =

	augBeg
	AddAssign      // +=
	SubAssign      // -=
	MulAssign      // *=
	DivAssign      // /=
	FloorDivAssign // //=
	ModAssign      // %=
	PowAssign      // **=
	AtAssign       // @=
	BitAndAssign   // &=
	BitOrAssign    // |=
	BitXorAssign   // ^=
	ShlAssign      // <<=
	ShrAssign      // >>=
	augEnd

	Walrus // :=
	Arrow  // ->

	Eq    // ==
	NotEq // !=
	Lt    // <
	LtEq  // <=
	Gt    // >
	GtEq  // >=

	Lparen // (
	Lbrack // [
	Lbrace // {
	Rparen // )
	Rbrack // ]
	Rbrace // }

	Comma     // ,
	Period    // .
	Colon     // :
	Semicolon // ;
	Ellipsis  // ...
	Backslash // \
	operatorEnd

	keywordBeg
	// Keywords
	And
	As
	Assert
	Async
	Await
	Break
	Case
	Class
	Continue
	Def
	Del
	Elif
	Else
	Except
	False
	Finally
	For
	From
	Global
	If
	Import
	In
	Is
	Lambda
	Match
	None
	NonLocal
	Not
	Or
	Pass
	Raise
	Return
	True
	Try
	While
	With
	Yield
	keywordEnd
)

var tokens = [...]string{
	Illegal:          "ILLEGAL",
	EOF:              "EOF",
	Comment:          "COMMENT",
	NewLine:          "NEWLINE",
	LineContinuation: "LINECONTINUATION",

	Indent: "INDENT",
	Dedent: "DEDENT",

	Ident:     "IDENT",
	Int:       "INT",
	Float:     "FLOAT",
	Binary:    "BINARY",
	Octal:     "OCTAL",
	Hex:       "HEX",
	String:    "STRING",
	RawString: "RAWSTRING",
	FString:   "FSTRING",
	Bytes:     "BYTES",

	Add:      "+",
	Sub:      "-",
	Mul:      "*",
	Div:      "/",
	FloorDiv: "//",
	Mod:      "%",
	Pow:      "**",
	At:       "@",

	BitAnd: "&",
	BitOr:  "|",
	BitXor: "^",
	BitNot: "~",
	Shl:    "<<",
	Shr:    ">>",

	Assign: "=",

	AddAssign:      "+=",
	SubAssign:      "-=",
	MulAssign:      "*=",
	DivAssign:      "/=",
	FloorDivAssign: "//=",
	ModAssign:      "%=",
	PowAssign:      "**=",
	AtAssign:       "@=",
	BitAndAssign:   "&=",
	BitOrAssign:    "|=",
	BitXorAssign:   "^=",
	ShlAssign:      "<<=",
	ShrAssign:      ">>=",

	Walrus: ":=",
	Arrow:  "->",

	Eq:    "==",
	NotEq: "!=",
	Lt:    "<",
	LtEq:  "<=",
	Gt:    ">",
	GtEq:  ">=",

	Lparen: "(",
	Lbrack: "[",
	Lbrace: "{",
	Rparen: ")",
	Rbrack: "]",
	Rbrace: "}",

	Comma:     ",",
	Period:    ".",
	Colon:     ":",
	Semicolon: ";",
	Ellipsis:  "...",
	Backslash: "\\",

	And:      "and",
	As:       "as",
	Assert:   "assert",
	Async:    "async",
	Await:    "await",
	Break:    "break",
	Case:     "case",
	Class:    "class",
	Continue: "continue",
	Def:      "def",
	Del:      "del",
	Elif:     "elif",
	Else:     "else",
	Except:   "except",
	False:    "False",
	Finally:  "finally",
	For:      "for",
	From:     "from",
	Global:   "global",
	If:       "if",
	Import:   "import",
	In:       "in",
	Is:       "is",
	Lambda:   "lambda",
	Match:    "match",
	None:     "None",
	NonLocal: "nonlocal",
	Not:      "not",
	Or:       "or",
	Pass:     "pass",
	Raise:    "raise",
	Return:   "return",
	True:     "True",
	Try:      "try",
	While:    "while",
	With:     "with",
	Yield:    "yield",
}

// String returns the string corresponding to the token tok.
// For operators, delimiters, and keywords the string is the actual
// token character sequence (e.g., for the token Add, the string is
// "+"). For all other tokens the string corresponds to the token
// constant name (e.g. for the token Ident, the string is "IDENT").
func (tok Token) String() string {
	s := ""
	if 0 <= tok && tok < Token(len(tokens)) {
		s = tokens[tok]
	}
	if s == "" {
		s = "token(" + strconv.Itoa(int(tok)) + ")"
	}
	return s
}

// Keywords maps every reserved word to its token.
var Keywords map[string]Token

func init() {
	Keywords = make(map[string]Token)
	for i := keywordBeg + 1; i < keywordEnd; i++ {
		Keywords[tokens[i]] = i
	}
}

// Lookup maps an identifier to its keyword token or Ident (if not a keyword).
func Lookup(ident string) Token {
	if tok, isKeyword := Keywords[ident]; isKeyword {
		return tok
	}
	return Ident
}

// Predicates

// IsLiteral returns true for tokens corresponding to identifiers
// and basic type literals; it returns false otherwise.
func (tok Token) IsLiteral() bool { return literalBeg < tok && tok < literalEnd }

// IsOperator returns true for tokens corresponding to operators and
// delimiters; it returns false otherwise.
func (tok Token) IsOperator() bool { return operatorBeg < tok && tok < operatorEnd }

// IsKeyword returns true for tokens corresponding to keywords;
// it returns false otherwise.
func (tok Token) IsKeyword() bool { return keywordBeg < tok && tok < keywordEnd }

// IsAugAssign returns true for augmented assignment operators such as
// += and **=; it returns false otherwise.
func (tok Token) IsAugAssign() bool { return augBeg < tok && tok < augEnd }

// IsStringLiteral returns true for the four string literal tokens.
func (tok Token) IsStringLiteral() bool {
	return tok == String || tok == RawString || tok == FString || tok == Bytes
}

// IsNumberLiteral returns true for numeric literal tokens in any base.
func (tok Token) IsNumberLiteral() bool {
	switch tok {
	case Int, Float, Binary, Octal, Hex:
		return true
	}
	return false
}
