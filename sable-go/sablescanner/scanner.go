package sablescanner

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
	"unsafe"

	"github.com/sable-lang/sable/sable-golib/errors"
)

// A Scanner holds the scanner's internal state while processing a
// given text. It emits raw words only: the layout tokens INDENT,
// DEDENT and the collapsing of newline runs are the job of the stream
// lexer built on top (lexer.go).
type Scanner struct {
	// immutable state
	src  []byte  // source
	opts Options // scanner options

	// scanning state
	ch       rune // current character
	offset   int  // byte offset of current character
	rdOffset int  // reading offset (position after current character)
	line     int  // 1-based line of current character
	col      int  // 1-based column of current character, in runes

	// public state - ok to read
	Errs errors.Errors // errors encountered
}

// NewScanner creates a scanner positioned at the beginning of src.
// Calls to Scan track encountered errors in the Errs field.
// NOTE: the scanner expects `src` to be UTF8 encoded.
func NewScanner(src []byte, opts Options) *Scanner {
	s := &Scanner{
		src:  src,
		opts: opts,
		ch:   ' ',
		line: 1,
	}

	s.next()
	if s.ch == bom {
		s.next() // ignore BOM at file beginning
		s.col = 1
	}

	return s
}

const bom = 0xFeff // byte order mark, only permitted as very first character

// Read the next Unicode char into s.ch.
// s.ch < 0 means end-of-file.
func (s *Scanner) next() {
	if s.rdOffset < len(s.src) {
		s.offset = s.rdOffset
		if s.ch == '\n' {
			s.line++
			s.col = 1
		} else {
			s.col++
		}
		r, w := rune(s.src[s.rdOffset]), 1
		switch {
		case r == 0:
			s.error(s.line, s.col, "illegal character NUL")
		case r >= 0x80:
			// not ASCII
			r, w = utf8.DecodeRune(s.src[s.rdOffset:])
			if r == utf8.RuneError && w == 1 {
				s.error(s.line, s.col, "illegal UTF-8 encoding")
			} else if r == bom && s.offset > 0 {
				s.error(s.line, s.col, "illegal byte order mark")
			}
		}
		s.rdOffset += w
		s.ch = r
	} else {
		s.offset = len(s.src)
		if s.ch == '\n' {
			s.line++
			s.col = 1
		} else if s.ch != -1 {
			s.col++
		}
		s.ch = -1 // eof
	}
}

// peek returns the byte following the current character without
// advancing the scanner. Returns 0 at end of source.
func (s *Scanner) peek() byte {
	if s.rdOffset < len(s.src) {
		return s.src[s.rdOffset]
	}
	return 0
}

func (s *Scanner) error(line, col int, msg string) {
	s.Errs = errors.Append(s.Errs, PosError{
		Line:    line,
		Column:  col,
		Msg:     msg,
		Snippet: s.lineText(line),
	})
}

func (s *Scanner) errorSuggest(line, col int, msg, suggestion string) {
	s.Errs = errors.Append(s.Errs, PosError{
		Line:       line,
		Column:     col,
		Msg:        msg,
		Snippet:    s.lineText(line),
		Suggestion: suggestion,
	})
}

// hasErrorForLine reports whether msg was already recorded for line.
// Indentation diagnostics are deduplicated per line so that a single
// badly indented line does not report once per measurement.
func (s *Scanner) hasErrorForLine(line int, msg string) bool {
	if s.Errs == nil {
		return false
	}
	for _, err := range s.Errs.Slice() {
		if pe, ok := err.(PosError); ok && pe.Line == line && pe.Msg == msg {
			return true
		}
	}
	return false
}

// lineText returns the text of the 1-based line, for error snippets.
func (s *Scanner) lineText(line int) string {
	cur, start := 1, 0
	for i := 0; i <= len(s.src); i++ {
		if i == len(s.src) || s.src[i] == '\n' {
			if cur == line {
				text := s.src[start:i]
				if len(text) > 0 && text[len(text)-1] == '\r' {
					text = text[:len(text)-1]
				}
				return string(text)
			}
			cur++
			start = i + 1
		}
	}
	return ""
}

// IsLetter checks if the given rune may start an identifier.
func IsLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch >= 0x80 && unicode.IsLetter(ch)
}

// IsDigit checks if the given rune may continue an identifier.
func IsDigit(ch rune) bool {
	return '0' <= ch && ch <= '9' || ch >= 0x80 && unicode.IsDigit(ch)
}

func isDecimal(ch rune) bool { return '0' <= ch && ch <= '9' }

func isHexDigit(ch rune) bool {
	return '0' <= ch && ch <= '9' || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}

func isOctalDigit(ch rune) bool { return '0' <= ch && ch <= '7' }

func stripCr(b []byte) []byte {
	c := make([]byte, len(b))
	i := 0
	for _, ch := range b {
		if ch != '\r' {
			c[i] = ch
			i++
		}
	}
	return c[:i]
}

func (s *Scanner) scanIdentifier() string {
	offs := s.offset
	for IsLetter(s.ch) || IsDigit(s.ch) {
		s.next()
	}
	identBuf := s.src[offs:s.offset]
	// unsafe code taken from Go stdlib strings.Builder.String()
	return *(*string)(unsafe.Pointer(&identBuf))
}

func (s *Scanner) scanWhitespace() {
	for s.ch == ' ' || s.ch == '\t' || s.ch == '\r' {
		s.next()
	}
}

func (s *Scanner) scanComment() string {
	// initial '#' already consumed
	offs := s.offset - 1 // position of initial '#'
	hasCr := false

	for s.ch != '\n' && s.ch >= 0 {
		if s.ch == '\r' {
			hasCr = true
		}
		s.next()
	}

	lit := s.src[offs:s.offset]
	if hasCr {
		lit = stripCr(lit)
	}

	return string(lit)
}

// stringPrefix maps a just-scanned identifier to a string flavor when
// it is one of the single-character literal prefixes.
func stringPrefix(lit string) (Token, bool) {
	if len(lit) != 1 {
		return Illegal, false
	}
	switch lit[0] {
	case 'r', 'R':
		return RawString, true
	case 'f', 'F':
		return FString, true
	case 'b', 'B':
		return Bytes, true
	}
	return Illegal, false
}

// Helper functions for scanning multi-byte tokens such as >> += >>= .
// Different routines recognize different length tokens based on
// matches of s.ch. If s.ch is '=', the result is tok1 or tok3
// respectively. Otherwise, the result is tok0 if there was no other
// matching character, or tok2 if the matching character was ch2.

func (s *Scanner) switch2(tok0, tok1 Token) Token {
	if s.ch == '=' {
		s.next()
		return tok1
	}
	return tok0
}

func (s *Scanner) switch4(tok0, tok1 Token, ch2 rune, tok2, tok3 Token) Token {
	if s.ch == '=' {
		s.next()
		return tok1
	}
	if s.ch == ch2 {
		s.next()
		if s.ch == '=' {
			s.next()
			return tok3
		}
		return tok2
	}
	return tok0
}

// Scan scans the next word. The end of the source is indicated by an
// EOF word.
//
// For more tolerant parsing, Scan returns a valid word if possible
// even if a syntax error was encountered. Thus, even if the resulting
// word sequence contains no Illegal tokens, a client may not assume
// that no error occurred. Instead it must check the Errs field.
func (s *Scanner) Scan() Word {
rescan:
	s.scanWhitespace()

	line, col := s.line, s.col
	word := Word{Line: line, Column: col}

	switch ch := s.ch; {
	case IsLetter(ch):
		lit := s.scanIdentifier()
		if flavor, ok := stringPrefix(lit); ok && (s.ch == '"' || s.ch == '\'') {
			quote := s.ch
			s.next()
			return s.scanStringLiteral(flavor, quote, line, col, s.offset-2)
		}
		word.Token = Lookup(lit)
		word.Literal = lit
	case isDecimal(ch):
		return s.scanNumber(line, col, s.offset, false)
	default:
		s.next() // always make progress
		switch ch {
		case -1:
			word.Token = EOF
		case '\n':
			// consume the newline run and the upcoming indentation;
			// the stream lexer recovers the indent from the literal
			for s.ch == '\n' || s.ch == '\r' {
				s.next()
			}
			indentOffs := s.offset
			for s.ch == ' ' || s.ch == '\t' {
				s.next()
			}
			word.Token = NewLine
			word.Literal = "\n" + string(s.src[indentOffs:s.offset])
			if !s.opts.ScanNewLines {
				goto rescan
			}
		case '\\':
			if s.ch == '\n' || s.ch == '\r' {
				for s.ch == '\n' || s.ch == '\r' {
					s.next()
				}
				word.Token = LineContinuation
				if !s.opts.ScanNewLines {
					goto rescan
				}
			} else {
				word.Token = Backslash
				word.Literal = "\\"
			}
		case '"', '\'':
			return s.scanStringLiteral(String, ch, line, col, s.offset-1)
		case '#':
			lit := s.scanComment()
			if !s.opts.ScanComments {
				goto rescan
			}
			word.Token = Comment
			word.Literal = lit
		case '.':
			if isDecimal(s.ch) {
				return s.scanNumber(line, col, s.offset-1, true)
			}
			if s.ch == '.' && s.peek() == '.' {
				s.next()
				s.next()
				word.Token = Ellipsis
			} else {
				word.Token = Period
			}
		case ',':
			word.Token = Comma
		case ';':
			word.Token = Semicolon
			if !s.opts.AllowTrailingSemicolon {
				s.errorSuggest(line, col, "Semicolons are not used in Python-like syntax", "Remove the semicolon")
			}
		case '(':
			word.Token = Lparen
		case ')':
			word.Token = Rparen
		case '[':
			word.Token = Lbrack
		case ']':
			word.Token = Rbrack
		case '{':
			word.Token = Lbrace
		case '}':
			word.Token = Rbrace
		case ':':
			if s.ch == '=' {
				s.next()
				word.Token = Walrus
			} else {
				word.Token = Colon
			}
		case '+':
			word.Token = s.switch2(Add, AddAssign)
		case '-':
			if s.ch == '>' {
				s.next()
				word.Token = Arrow
			} else {
				word.Token = s.switch2(Sub, SubAssign)
			}
		case '*':
			word.Token = s.switch4(Mul, MulAssign, '*', Pow, PowAssign)
		case '/':
			word.Token = s.switch4(Div, DivAssign, '/', FloorDiv, FloorDivAssign)
		case '%':
			word.Token = s.switch2(Mod, ModAssign)
		case '@':
			word.Token = s.switch2(At, AtAssign)
		case '<':
			word.Token = s.switch4(Lt, LtEq, '<', Shl, ShlAssign)
		case '>':
			word.Token = s.switch4(Gt, GtEq, '>', Shr, ShrAssign)
		case '=':
			word.Token = s.switch2(Assign, Eq)
		case '&':
			word.Token = s.switch2(BitAnd, BitAndAssign)
		case '|':
			word.Token = s.switch2(BitOr, BitOrAssign)
		case '^':
			word.Token = s.switch2(BitXor, BitXorAssign)
		case '~':
			word.Token = BitNot
		case '!':
			if s.ch == '=' {
				s.next()
				word.Token = NotEq
			} else {
				s.errorSuggest(line, col, "Unexpected character: !", "Use 'not' instead of ! for boolean negation")
				word.Token = Illegal
				word.Literal = "!"
				word.Msg = "Unexpected character: !"
			}
		default:
			msg := fmt.Sprintf("Unexpected character: %c", ch)
			// next reports broken encodings already - don't repeat
			if ch != bom && ch != utf8.RuneError {
				s.error(line, col, msg)
			}
			word.Token = Illegal
			word.Literal = string(ch)
			word.Msg = msg
		}
	}

	if word.Literal == "" && (word.Token.IsOperator() || word.Token.IsKeyword()) {
		word.Literal = word.Token.String()
	}
	return word
}

// invalid builds an Illegal word spanning src[offs:s.offset].
func (s *Scanner) invalid(msg string, line, col, offs int) Word {
	return Word{
		Token:   Illegal,
		Literal: string(s.src[offs:s.offset]),
		Line:    line,
		Column:  col,
		Msg:     msg,
	}
}

// ----------------------------------------------------------------------------
// Numbers

// scanNumber scans a numeric literal in any base. seenDot indicates
// that the literal started with '.' followed by a digit, which the
// dispatcher has already consumed.
func (s *Scanner) scanNumber(line, col, offs int, seenDot bool) Word {
	if !seenDot && s.ch == '0' {
		switch s.peek() {
		case 'b', 'B':
			s.next()
			s.next()
			return s.scanBinary(line, col, offs)
		case 'o', 'O':
			s.next()
			s.next()
			return s.scanOctal(line, col, offs)
		case 'x', 'X':
			s.next()
			s.next()
			return s.scanHex(line, col, offs)
		}
	}

	isFloat := seenDot
	if seenDot {
		// fractional part; the leading '.' is at offs
		s.scanDigits()
	} else {
		s.scanDigits()
		if s.ch == '.' && isDecimal(rune(s.peek())) {
			isFloat = true
			s.next()
			s.scanDigits()
		}
	}

	if s.ch == 'e' || s.ch == 'E' {
		isFloat = true
		s.next()
		if s.ch == '+' || s.ch == '-' {
			s.next()
		}
		if !isDecimal(s.ch) {
			s.error(s.line, s.col, "Invalid exponent: must start with a digit")
			return s.invalid("Invalid exponent", line, col, offs)
		}
		for isDecimal(s.ch) || s.ch == '_' {
			if s.ch == '_' {
				s.next()
				if !isDecimal(s.ch) {
					s.error(s.line, s.col, "Invalid underscore in exponent")
					return s.invalid("Invalid underscore in exponent", line, col, offs)
				}
				continue
			}
			s.next()
		}
	}

	lit := string(s.src[offs:s.offset])
	value := strings.ReplaceAll(lit, "_", "")

	if isFloat {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			msg := fmt.Sprintf("Invalid float literal: %s", value)
			s.error(line, col, msg)
			return s.invalid(msg, line, col, offs)
		}
		return Word{Token: Float, Literal: lit, Line: line, Column: col, FloatValue: f}
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		msg := fmt.Sprintf("Invalid integer literal: %s", value)
		s.error(line, col, msg)
		return s.invalid(msg, line, col, offs)
	}
	return Word{Token: Int, Literal: lit, Line: line, Column: col, IntValue: n}
}

func (s *Scanner) scanDigits() {
	for isDecimal(s.ch) || s.ch == '_' {
		s.next()
	}
}

func (s *Scanner) scanBinary(line, col, offs int) Word {
	// the erroneous digits are consumed too so the whole run becomes
	// one Illegal word instead of a cascade
	s.scanDigits()
	lit := string(s.src[offs:s.offset])
	value := strings.ReplaceAll(lit, "_", "")

	digits := value[2:]
	n, err := strconv.ParseInt(digits, 2, 64)
	if digits == "" || err != nil {
		msg := fmt.Sprintf("Invalid binary literal: %s", value)
		s.error(line, col, msg)
		return s.invalid(msg, line, col, offs)
	}
	return Word{Token: Binary, Literal: lit, Line: line, Column: col, IntValue: n}
}

func (s *Scanner) scanOctal(line, col, offs int) Word {
	s.scanDigits()
	lit := string(s.src[offs:s.offset])
	value := strings.ReplaceAll(lit, "_", "")

	digits := value[2:]
	if digits == "" {
		msg := "Invalid octal literal: no digits after '0o'"
		s.error(line, col, msg)
		return s.invalid(msg, line, col, offs)
	}
	n, err := strconv.ParseInt(digits, 8, 64)
	if err != nil {
		msg := fmt.Sprintf("Invalid octal literal: 0o%s", digits)
		s.error(line, col, msg)
		return s.invalid(msg, line, col, offs)
	}
	return Word{Token: Octal, Literal: lit, Line: line, Column: col, IntValue: n}
}

func (s *Scanner) scanHex(line, col, offs int) Word {
	for IsLetter(s.ch) || IsDigit(s.ch) || s.ch == '_' {
		s.next()
	}
	lit := string(s.src[offs:s.offset])
	value := strings.ReplaceAll(lit, "_", "")

	digits := value[2:]
	n, err := strconv.ParseInt(digits, 16, 64)
	if digits == "" || err != nil {
		msg := fmt.Sprintf("Invalid hex literal: %s", value)
		s.error(line, col, msg)
		return s.invalid(msg, line, col, offs)
	}
	return Word{Token: Hex, Literal: lit, Line: line, Column: col, IntValue: n}
}

// ----------------------------------------------------------------------------
// Strings

// scanStringLiteral scans a string literal of the given flavor. The
// opening quote has been consumed; offs is the byte offset of the
// prefix character (or of the quote for plain strings).
func (s *Scanner) scanStringLiteral(flavor Token, quote rune, line, col, offs int) Word {
	if s.ch == quote {
		s.next()
		if s.ch != quote {
			// empty single-quoted string
			return Word{Token: flavor, Literal: string(s.src[offs:s.offset]), Line: line, Column: col, BytesValue: emptyBytes(flavor)}
		}
		s.next()
		switch flavor {
		case RawString:
			return s.scanRawTriple(quote, line, col, offs)
		case FString:
			return s.scanFStringTriple(quote, line, col, offs)
		case Bytes:
			return s.scanBytesTriple(quote, line, col, offs)
		default:
			return s.scanPlainTriple(quote, line, col, offs)
		}
	}

	switch flavor {
	case RawString:
		return s.scanRawString(quote, line, col, offs)
	case FString:
		return s.scanFString(quote, line, col, offs)
	case Bytes:
		return s.scanBytesString(quote, line, col, offs)
	default:
		return s.scanPlainString(quote, line, col, offs)
	}
}

func emptyBytes(flavor Token) []byte {
	if flavor == Bytes {
		return []byte{}
	}
	return nil
}

func (s *Scanner) scanPlainString(quote rune, line, col, offs int) Word {
	var buf strings.Builder
	for {
		switch {
		case s.ch < 0:
			s.errorSuggest(s.line, s.col, "Unterminated string literal", "Add closing quote")
			return s.invalid("Unterminated string literal", line, col, offs)
		case s.ch == '\n' || s.ch == '\r':
			s.errorSuggest(s.line, s.col, "Unterminated string literal: newline in string", "Add closing quote or use triple quotes for multi-line strings")
			return s.invalid("Unterminated string literal: newline in string", line, col, offs)
		case s.ch == '\\':
			s.next()
			s.scanEscape(&buf)
		case s.ch == quote:
			s.next()
			return Word{Token: String, Literal: string(s.src[offs:s.offset]), Line: line, Column: col, StrValue: buf.String()}
		default:
			buf.WriteRune(s.ch)
			s.next()
		}
	}
}

func (s *Scanner) scanPlainTriple(quote rune, line, col, offs int) Word {
	var buf strings.Builder
	var quotes int
	for s.ch >= 0 {
		switch {
		case s.ch == '\\':
			flushQuotes(&buf, quote, &quotes)
			s.next()
			s.scanTripleEscape(&buf)
		case s.ch == quote:
			quotes++
			s.next()
			if quotes == 3 {
				return Word{Token: String, Literal: string(s.src[offs:s.offset]), Line: line, Column: col, StrValue: buf.String()}
			}
		default:
			flushQuotes(&buf, quote, &quotes)
			buf.WriteRune(s.ch)
			s.next()
		}
	}
	s.error(s.line, s.col, "Unterminated triple-quoted string")
	return s.invalid("Unterminated triple-quoted string", line, col, offs)
}

func flushQuotes(buf *strings.Builder, quote rune, quotes *int) {
	for i := 0; i < *quotes; i++ {
		buf.WriteRune(quote)
	}
	*quotes = 0
}

func (s *Scanner) scanRawString(quote rune, line, col, offs int) Word {
	var buf strings.Builder
	for {
		switch {
		case s.ch < 0:
			s.error(s.line, s.col, "Unterminated raw string literal")
			return s.invalid("Unterminated raw string literal", line, col, offs)
		case s.ch == '\n':
			s.errorSuggest(s.line, s.col, "Unterminated raw string literal: newline in string", "Add closing quote or use triple quotes for multi-line strings")
			return s.invalid("Unterminated raw string literal", line, col, offs)
		case s.ch == '\\':
			// backslash escapes nothing in a raw string, but it does
			// keep the following character, quote or newline included,
			// from terminating the literal
			buf.WriteRune('\\')
			s.next()
			if s.ch >= 0 {
				buf.WriteRune(s.ch)
				s.next()
			}
		case s.ch == quote:
			s.next()
			return Word{Token: RawString, Literal: string(s.src[offs:s.offset]), Line: line, Column: col, StrValue: buf.String()}
		default:
			buf.WriteRune(s.ch)
			s.next()
		}
	}
}

func (s *Scanner) scanRawTriple(quote rune, line, col, offs int) Word {
	var buf strings.Builder
	var quotes int
	for s.ch >= 0 {
		if s.ch == quote {
			quotes++
			s.next()
			if quotes == 3 {
				return Word{Token: RawString, Literal: string(s.src[offs:s.offset]), Line: line, Column: col, StrValue: buf.String()}
			}
			continue
		}
		flushQuotes(&buf, quote, &quotes)
		buf.WriteRune(s.ch)
		s.next()
	}
	s.error(s.line, s.col, "Unterminated raw triple-quoted string")
	return s.invalid("Unterminated raw triple-quoted string", line, col, offs)
}

// scanFString scans a single-quoted f-string. The scanner keeps the
// raw content: escape decoding and sub-expression parsing happen in
// the parser, which re-lexes each {...} range. The brace tracking here
// exists only so that quotes and newlines inside a sub-expression do
// not terminate the literal.
func (s *Scanner) scanFString(quote rune, line, col, offs int) Word {
	var buf strings.Builder
	var inExpr bool
	var depth int
	for s.ch >= 0 {
		switch {
		case !inExpr && (s.ch == '{' || s.ch == '}') && rune(s.peek()) == s.ch:
			// {{ and }} denote literal braces
			buf.WriteRune(s.ch)
			buf.WriteRune(s.ch)
			s.next()
			s.next()
		case !inExpr && s.ch == '{':
			inExpr = true
			depth = 1
			buf.WriteRune(s.ch)
			s.next()
		case inExpr && s.ch == '{':
			depth++
			buf.WriteRune(s.ch)
			s.next()
		case inExpr && s.ch == '}':
			depth--
			buf.WriteRune(s.ch)
			s.next()
			if depth == 0 {
				inExpr = false
			}
		case !inExpr && s.ch == '\\':
			s.next()
			if s.ch < 0 {
				s.error(s.line, s.col, "Incomplete escape sequence in f-string")
				break
			}
			buf.WriteRune('\\')
			buf.WriteRune(s.ch)
			s.next()
		case !inExpr && s.ch == quote:
			s.next()
			return Word{Token: FString, Literal: string(s.src[offs:s.offset]), Line: line, Column: col, StrValue: buf.String()}
		case !inExpr && s.ch == '\n':
			s.error(s.line, s.col, "Unterminated f-string literal: newline in string")
			return s.invalid("Unterminated f-string literal", line, col, offs)
		default:
			buf.WriteRune(s.ch)
			s.next()
		}
	}
	if inExpr {
		s.error(s.line, s.col, "Unterminated expression in f-string: missing '}'")
	}
	s.error(s.line, s.col, "Unterminated f-string literal")
	return s.invalid("Unterminated f-string literal", line, col, offs)
}

func (s *Scanner) scanFStringTriple(quote rune, line, col, offs int) Word {
	var buf strings.Builder
	var quotes int
	var inExpr bool
	var depth int
	for s.ch >= 0 {
		switch {
		case !inExpr && s.ch == quote:
			quotes++
			s.next()
			if quotes == 3 {
				return Word{Token: FString, Literal: string(s.src[offs:s.offset]), Line: line, Column: col, StrValue: buf.String()}
			}
		case !inExpr && (s.ch == '{' || s.ch == '}') && rune(s.peek()) == s.ch:
			flushQuotes(&buf, quote, &quotes)
			buf.WriteRune(s.ch)
			buf.WriteRune(s.ch)
			s.next()
			s.next()
		case !inExpr && s.ch == '{':
			flushQuotes(&buf, quote, &quotes)
			inExpr = true
			depth = 1
			buf.WriteRune(s.ch)
			s.next()
		case inExpr && s.ch == '{':
			depth++
			buf.WriteRune(s.ch)
			s.next()
		case inExpr && s.ch == '}':
			depth--
			buf.WriteRune(s.ch)
			s.next()
			if depth == 0 {
				inExpr = false
			}
		default:
			if !inExpr {
				flushQuotes(&buf, quote, &quotes)
			}
			buf.WriteRune(s.ch)
			s.next()
		}
	}
	if inExpr {
		s.error(s.line, s.col, "Unterminated expression in f-string: missing '}'")
	}
	s.error(s.line, s.col, "Unterminated formatted triple-quoted string")
	return s.invalid("Unterminated formatted triple-quoted string", line, col, offs)
}

func (s *Scanner) scanBytesString(quote rune, line, col, offs int) Word {
	var bytes []byte
	for {
		switch {
		case s.ch < 0:
			s.error(s.line, s.col, "Unterminated bytes literal")
			return s.invalid("Unterminated bytes literal", line, col, offs)
		case s.ch == '\n':
			s.error(s.line, s.col, "Unterminated bytes literal: newline in string")
			return s.invalid("Unterminated bytes literal", line, col, offs)
		case s.ch == '\\':
			s.next()
			bytes = s.scanBytesEscape(bytes, false)
		case s.ch == quote:
			s.next()
			return Word{Token: Bytes, Literal: string(s.src[offs:s.offset]), Line: line, Column: col, BytesValue: bytes}
		case s.ch > 127:
			s.error(s.line, s.col, "Non-ASCII character in bytes literal")
			s.next()
		default:
			bytes = append(bytes, byte(s.ch))
			s.next()
		}
	}
}

func (s *Scanner) scanBytesTriple(quote rune, line, col, offs int) Word {
	var bytes []byte
	var quotes int
	for s.ch >= 0 {
		switch {
		case s.ch == '\\':
			bytes = flushQuoteBytes(bytes, quote, &quotes)
			s.next()
			bytes = s.scanBytesEscape(bytes, true)
		case s.ch == quote:
			quotes++
			s.next()
			if quotes == 3 {
				return Word{Token: Bytes, Literal: string(s.src[offs:s.offset]), Line: line, Column: col, BytesValue: bytes}
			}
		case s.ch > 127:
			bytes = flushQuoteBytes(bytes, quote, &quotes)
			s.error(s.line, s.col, "Non-ASCII character in bytes literal")
			s.next()
		default:
			bytes = flushQuoteBytes(bytes, quote, &quotes)
			bytes = append(bytes, byte(s.ch))
			s.next()
		}
	}
	s.error(s.line, s.col, "Unterminated bytes triple-quoted string")
	return s.invalid("Unterminated bytes triple-quoted string", line, col, offs)
}

func flushQuoteBytes(bytes []byte, quote rune, quotes *int) []byte {
	for i := 0; i < *quotes; i++ {
		bytes = append(bytes, byte(quote))
	}
	*quotes = 0
	return bytes
}

// ----------------------------------------------------------------------------
// Escape sequences

// scanEscape decodes one escape sequence in a single-quoted plain
// string. The backslash has been consumed; s.ch is the escape
// character.
func (s *Scanner) scanEscape(buf *strings.Builder) {
	if s.ch < 0 {
		// caller reports the unterminated literal
		return
	}
	switch ch := s.ch; ch {
	case 'n':
		buf.WriteByte('\n')
		s.next()
	case 't':
		buf.WriteByte('\t')
		s.next()
	case 'r':
		buf.WriteByte('\r')
		s.next()
	case 'b':
		buf.WriteByte('\b')
		s.next()
	case 'f':
		buf.WriteByte('\f')
		s.next()
	case 'a':
		buf.WriteByte('\a')
		s.next()
	case '\\':
		buf.WriteByte('\\')
		s.next()
	case '\'':
		buf.WriteByte('\'')
		s.next()
	case '"':
		buf.WriteByte('"')
		s.next()
	case 'x':
		s.scanHexEscape(buf)
	case 'u':
		s.scanUnicodeEscape(buf)
	case 'U':
		s.scanExtendedUnicodeEscape(buf)
	case '\n':
		// escaped newline joins physical lines inside the literal;
		// the following indentation is dropped too
		s.next()
		s.scanWhitespace()
	case '\r':
		s.next()
		if s.ch == '\n' {
			s.next()
		}
		s.scanWhitespace()
	default:
		if isOctalDigit(ch) {
			s.scanOctalEscape(buf)
			return
		}
		s.error(s.line, s.col, fmt.Sprintf("Unknown escape sequence: \\%c", ch))
		buf.WriteRune(ch)
		s.next()
	}
}

// scanTripleEscape decodes one escape sequence in a triple-quoted
// plain string. Triple-quoted strings support a smaller escape set:
// no \a, no octal and no \U form.
func (s *Scanner) scanTripleEscape(buf *strings.Builder) {
	if s.ch < 0 {
		return
	}
	switch ch := s.ch; ch {
	case 'n':
		buf.WriteByte('\n')
		s.next()
	case 't':
		buf.WriteByte('\t')
		s.next()
	case 'r':
		buf.WriteByte('\r')
		s.next()
	case 'b':
		buf.WriteByte('\b')
		s.next()
	case 'f':
		buf.WriteByte('\f')
		s.next()
	case '\\':
		buf.WriteByte('\\')
		s.next()
	case '\'':
		buf.WriteByte('\'')
		s.next()
	case '"':
		buf.WriteByte('"')
		s.next()
	case 'x':
		s.scanHexEscape(buf)
	case 'u':
		s.scanUnicodeEscape(buf)
	case '\n':
		s.next()
		s.scanWhitespace()
	default:
		s.error(s.line, s.col, fmt.Sprintf("Unknown escape sequence: \\%c", ch))
		buf.WriteRune(ch)
		s.next()
	}
}

// scanBytesEscape decodes one escape sequence in a bytes literal.
// Triple-quoted bytes literals additionally support \b and \f.
func (s *Scanner) scanBytesEscape(bytes []byte, triple bool) []byte {
	switch ch := s.ch; ch {
	case 'n':
		s.next()
		return append(bytes, '\n')
	case 't':
		s.next()
		return append(bytes, '\t')
	case 'r':
		s.next()
		return append(bytes, '\r')
	case '\\':
		s.next()
		return append(bytes, '\\')
	case '\'':
		s.next()
		return append(bytes, '\'')
	case '"':
		s.next()
		return append(bytes, '"')
	case 'b':
		if triple {
			s.next()
			return append(bytes, '\x08')
		}
	case 'f':
		if triple {
			s.next()
			return append(bytes, '\x0C')
		}
	case 'x':
		s.next()
		var hex [2]byte
		for i := 0; i < 2; i++ {
			if s.ch < 0 || !isHexDigit(s.ch) {
				s.error(s.line, s.col, "Invalid hex escape in bytes literal")
				return bytes
			}
			hex[i] = byte(s.ch)
			s.next()
		}
		v, _ := strconv.ParseUint(string(hex[:]), 16, 8)
		return append(bytes, byte(v))
	}

	if s.ch < 0 {
		return bytes
	}
	s.error(s.line, s.col, fmt.Sprintf("Invalid escape sequence in bytes literal: \\%c", s.ch))
	bytes = append(bytes, byte(s.ch))
	s.next()
	return bytes
}

// scanOctalEscape decodes \ooo with 1 to 3 octal digits; s.ch is the
// first digit.
func (s *Scanner) scanOctalEscape(buf *strings.Builder) {
	var digits strings.Builder
	digits.WriteRune(s.ch)
	s.next()
	for digits.Len() < 3 && isOctalDigit(s.ch) {
		digits.WriteRune(s.ch)
		s.next()
	}
	v, err := strconv.ParseUint(digits.String(), 8, 8)
	if err != nil {
		s.error(s.line, s.col, fmt.Sprintf("Invalid octal escape sequence: \\%s", digits.String()))
		return
	}
	buf.WriteRune(rune(v))
}

// scanHexEscape decodes \xHH; s.ch is the 'x'.
func (s *Scanner) scanHexEscape(buf *strings.Builder) {
	s.next()
	var hex [2]byte
	for i := 0; i < 2; i++ {
		if s.ch < 0 || !isHexDigit(s.ch) {
			s.error(s.line, s.col, "Invalid hex escape sequence: expected 2 hex digits")
			return
		}
		hex[i] = byte(s.ch)
		s.next()
	}
	v, _ := strconv.ParseUint(string(hex[:]), 16, 8)
	buf.WriteRune(rune(v))
}

// scanUnicodeEscape decodes \uHHHH or \u{H...H}; s.ch is the 'u'.
func (s *Scanner) scanUnicodeEscape(buf *strings.Builder) {
	s.next()

	if s.ch == '{' {
		s.next()
		var digits strings.Builder
		for digits.Len() < 6 && s.ch >= 0 && isHexDigit(s.ch) {
			digits.WriteRune(s.ch)
			s.next()
		}
		if s.ch != '}' {
			s.error(s.line, s.col, "Unclosed Unicode escape sequence: missing closing brace")
			return
		}
		s.next()
		if digits.Len() == 0 {
			s.error(s.line, s.col, "Empty Unicode escape sequence: \\u{}")
			return
		}
		cp, _ := strconv.ParseUint(digits.String(), 16, 32)
		s.writeCodePoint(buf, uint32(cp))
		return
	}

	var hex [4]byte
	for i := 0; i < 4; i++ {
		if s.ch < 0 || !isHexDigit(s.ch) {
			s.error(s.line, s.col, "Invalid Unicode escape sequence: expected 4 hex digits")
			return
		}
		hex[i] = byte(s.ch)
		s.next()
	}
	cp, _ := strconv.ParseUint(string(hex[:]), 16, 32)
	s.writeCodePoint(buf, uint32(cp))
}

// scanExtendedUnicodeEscape decodes \UHHHHHHHH; s.ch is the 'U'.
func (s *Scanner) scanExtendedUnicodeEscape(buf *strings.Builder) {
	s.next()
	var hex [8]byte
	for i := 0; i < 8; i++ {
		if s.ch < 0 || !isHexDigit(s.ch) {
			s.error(s.line, s.col, "Invalid extended Unicode escape sequence: expected 8 hex digits")
			return
		}
		hex[i] = byte(s.ch)
		s.next()
	}
	cp, _ := strconv.ParseUint(string(hex[:]), 16, 32)
	s.writeCodePoint(buf, uint32(cp))
}

func (s *Scanner) writeCodePoint(buf *strings.Builder, cp uint32) {
	r := rune(cp)
	if cp > unicode.MaxRune || !utf8.ValidRune(r) {
		s.error(s.line, s.col, fmt.Sprintf("Invalid Unicode code point: U+%X", cp))
		return
	}
	buf.WriteRune(r)
}
