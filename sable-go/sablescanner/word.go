package sablescanner

import "fmt"

// Word is a single lexical element: the token kind, the exact source
// text it was scanned from, and its position in the source. Line and
// Column are 1-based; Column counts runes, not bytes.
//
// Literal tokens additionally carry a decoded payload:
//
//	Int, Binary, Octal, Hex -> IntValue
//	Float                   -> FloatValue
//	String, RawString       -> StrValue (escapes decoded, raw kept verbatim)
//	FString                 -> StrValue (raw content between the quotes)
//	Bytes                   -> BytesValue
//	Illegal                 -> Msg
//
// Layout tokens use fixed literals: NEWLINE words carry "\n", INDENT
// words carry the indentation whitespace of their line, and DEDENT and
// EOF words carry the empty string.
type Word struct {
	Token   Token
	Literal string
	Line    int
	Column  int

	IntValue   int64
	FloatValue float64
	StrValue   string
	BytesValue []byte
	Msg        string
}

// Valid returns false for words produced from unscannable input.
func (w Word) Valid() bool { return w.Token != Illegal }

// String renders the word for debugging and trace output.
func (w Word) String() string {
	switch {
	case w.Token == Illegal:
		return fmt.Sprintf("%s(%q: %s)@%d:%d", w.Token, w.Literal, w.Msg, w.Line, w.Column)
	case w.Token.IsLiteral():
		return fmt.Sprintf("%s(%q)@%d:%d", w.Token, w.Literal, w.Line, w.Column)
	default:
		return fmt.Sprintf("%s@%d:%d", w.Token, w.Line, w.Column)
	}
}
