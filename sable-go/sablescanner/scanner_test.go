package sablescanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lexOne lexes src, requires no errors, and returns the first word.
func lexOne(t *testing.T, src string) Word {
	words, err := Lex([]byte(src), DefaultOptions())
	require.NoError(t, err, "src %q", src)
	require.True(t, len(words) > 0)
	return words[0]
}

// lexBad lexes src, requires an error containing msg, and returns the
// first word, which is expected to be Illegal.
func lexBad(t *testing.T, src, msg string) Word {
	words, err := Lex([]byte(src), DefaultOptions())
	require.Error(t, err, "src %q", src)
	assert.Contains(t, err.Error(), msg)
	require.True(t, len(words) > 0)
	word := words[0]
	assert.Equal(t, Illegal, word.Token, "src %q", src)
	assert.False(t, word.Valid())
	return word
}

func TestScanner_Integers(t *testing.T) {
	word := lexOne(t, "42")
	assert.Equal(t, Int, word.Token)
	assert.Equal(t, "42", word.Literal)
	assert.Equal(t, int64(42), word.IntValue)

	word = lexOne(t, "1_000_000")
	assert.Equal(t, Int, word.Token)
	assert.Equal(t, "1_000_000", word.Literal)
	assert.Equal(t, int64(1000000), word.IntValue)

	word = lexOne(t, "0")
	assert.Equal(t, Int, word.Token)
	assert.Equal(t, int64(0), word.IntValue)
}

func TestScanner_Floats(t *testing.T) {
	word := lexOne(t, "3.14")
	assert.Equal(t, Float, word.Token)
	assert.Equal(t, "3.14", word.Literal)
	assert.Equal(t, 3.14, word.FloatValue)

	word = lexOne(t, ".5")
	assert.Equal(t, Float, word.Token)
	assert.Equal(t, ".5", word.Literal)
	assert.Equal(t, 0.5, word.FloatValue)

	word = lexOne(t, "1e10")
	assert.Equal(t, Float, word.Token)
	assert.Equal(t, 1e10, word.FloatValue)

	word = lexOne(t, "2.5e-3")
	assert.Equal(t, Float, word.Token)
	assert.Equal(t, 2.5e-3, word.FloatValue)

	word = lexOne(t, "1_0.2_5e+1_0")
	assert.Equal(t, Float, word.Token)
	assert.Equal(t, 10.25e10, word.FloatValue)

	// a dot with no digit after it is not part of the number
	words, err := Lex([]byte("10."), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, words, 3)
	assert.Equal(t, Int, words[0].Token)
	assert.Equal(t, Period, words[1].Token)
}

func TestScanner_FloatErrors(t *testing.T) {
	word := lexBad(t, "1e", "Invalid exponent: must start with a digit")
	assert.Equal(t, "1e", word.Literal)

	lexBad(t, "1e+", "Invalid exponent: must start with a digit")
	lexBad(t, "1e5_", "Invalid underscore in exponent")
}

func TestScanner_Binary(t *testing.T) {
	word := lexOne(t, "0b1010")
	assert.Equal(t, Binary, word.Token)
	assert.Equal(t, "0b1010", word.Literal)
	assert.Equal(t, int64(10), word.IntValue)

	word = lexOne(t, "0B1111_0000")
	assert.Equal(t, Binary, word.Token)
	assert.Equal(t, int64(240), word.IntValue)

	word = lexBad(t, "0b102", "Invalid binary literal: 0b102")
	assert.Equal(t, "0b102", word.Literal)
	lexBad(t, "0b", "Invalid binary literal: 0b")
}

func TestScanner_Octal(t *testing.T) {
	word := lexOne(t, "0o755")
	assert.Equal(t, Octal, word.Token)
	assert.Equal(t, "0o755", word.Literal)
	assert.Equal(t, int64(493), word.IntValue)

	word = lexOne(t, "0O17")
	assert.Equal(t, Octal, word.Token)
	assert.Equal(t, int64(15), word.IntValue)

	lexBad(t, "0o8", "Invalid octal literal: 0o8")
	lexBad(t, "0o", "Invalid octal literal: no digits after '0o'")
}

func TestScanner_Hex(t *testing.T) {
	word := lexOne(t, "0xFF")
	assert.Equal(t, Hex, word.Token)
	assert.Equal(t, "0xFF", word.Literal)
	assert.Equal(t, int64(255), word.IntValue)

	word = lexOne(t, "0xDEAD_beef")
	assert.Equal(t, Hex, word.Token)
	assert.Equal(t, int64(0xDEADBEEF), word.IntValue)

	// trailing junk is folded into one Illegal word
	word = lexBad(t, "0x1f2g", "Invalid hex literal: 0x1f2g")
	assert.Equal(t, "0x1f2g", word.Literal)
	lexBad(t, "0x", "Invalid hex literal: 0x")
}

func TestScanner_Strings(t *testing.T) {
	word := lexOne(t, `"hello"`)
	assert.Equal(t, String, word.Token)
	assert.Equal(t, `"hello"`, word.Literal)
	assert.Equal(t, "hello", word.StrValue)

	word = lexOne(t, `'world'`)
	assert.Equal(t, String, word.Token)
	assert.Equal(t, "world", word.StrValue)

	word = lexOne(t, `""`)
	assert.Equal(t, String, word.Token)
	assert.Equal(t, "", word.StrValue)
}

func TestScanner_StringEscapes(t *testing.T) {
	word := lexOne(t, `"a\nb\tc\\d\'e\"f"`)
	assert.Equal(t, "a\nb\tc\\d'e\"f", word.StrValue)

	word = lexOne(t, `"\b\f\a\r"`)
	assert.Equal(t, "\b\f\a\r", word.StrValue)

	word = lexOne(t, `"\x41é"`)
	assert.Equal(t, "Aé", word.StrValue)

	word = lexOne(t, `"\u{1F600}\U0001F600"`)
	assert.Equal(t, "😀😀", word.StrValue)

	word = lexOne(t, `"\101\60"`)
	assert.Equal(t, "A0", word.StrValue)

	// escaped newline joins lines and swallows the indentation
	word = lexOne(t, "\"one \\\n    two\"")
	assert.Equal(t, "one two", word.StrValue)
}

func TestScanner_StringEscapeErrors(t *testing.T) {
	// an unknown escape keeps the escaped character
	words, err := Lex([]byte(`"\q"`), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Unknown escape sequence: \q`)
	assert.Equal(t, "q", words[0].StrValue)

	_, err = Lex([]byte(`"\777"`), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Invalid octal escape sequence: \777`)

	_, err = Lex([]byte(`"\xZZ"`), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid hex escape sequence: expected 2 hex digits")

	_, err = Lex([]byte(`"\u12"`), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid Unicode escape sequence: expected 4 hex digits")

	_, err = Lex([]byte(`"\u{110000}"`), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid Unicode code point: U+110000")

	_, err = Lex([]byte(`"\u{12"`), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unclosed Unicode escape sequence: missing closing brace")

	_, err = Lex([]byte(`"\u{}"`), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Empty Unicode escape sequence: \u{}`)
}

func TestScanner_UnterminatedStrings(t *testing.T) {
	word := lexBad(t, `"abc`, "Unterminated string literal")
	assert.Equal(t, `"abc`, word.Literal)

	_, err := Lex([]byte("\"abc\ndef\""), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unterminated string literal: newline in string")
	assert.Contains(t, err.Error(), "Suggestion: Add closing quote or use triple quotes for multi-line strings")
}

func TestScanner_TripleStrings(t *testing.T) {
	word := lexOne(t, `"""line1
line2"""`)
	assert.Equal(t, String, word.Token)
	assert.Equal(t, "line1\nline2", word.StrValue)
	assert.Equal(t, 1, word.Line)
	assert.Equal(t, 1, word.Column)

	word = lexOne(t, `"""a"b""c"""`)
	assert.Equal(t, `a"b""c`, word.StrValue)

	word = lexOne(t, "'''a'''")
	assert.Equal(t, "a", word.StrValue)

	word = lexOne(t, `"""a\tb"""`)
	assert.Equal(t, "a\tb", word.StrValue)

	// \a decodes in single-quoted strings only
	words, err := Lex([]byte(`"""\a"""`), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Unknown escape sequence: \a`)
	assert.Equal(t, "a", words[0].StrValue)

	lexBad(t, `"""abc`, "Unterminated triple-quoted string")
}

func TestScanner_RawStrings(t *testing.T) {
	word := lexOne(t, `r"a\nb"`)
	assert.Equal(t, RawString, word.Token)
	assert.Equal(t, `r"a\nb"`, word.Literal)
	assert.Equal(t, `a\nb`, word.StrValue)

	// the backslash keeps the quote from terminating the literal
	word = lexOne(t, `r"a\"b"`)
	assert.Equal(t, `a\"b`, word.StrValue)

	word = lexOne(t, `R"\\"`)
	assert.Equal(t, RawString, word.Token)
	assert.Equal(t, `\\`, word.StrValue)

	word = lexOne(t, `r"""a\nb"""`)
	assert.Equal(t, RawString, word.Token)
	assert.Equal(t, `a\nb`, word.StrValue)

	lexBad(t, `r"abc`, "Unterminated raw string literal")
	lexBad(t, `r"""abc`, "Unterminated raw triple-quoted string")

	_, err := Lex([]byte("r\"abc\ndef\""), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unterminated raw string literal: newline in string")
}

func TestScanner_FStrings(t *testing.T) {
	// f-string content stays raw; the parser decodes it
	word := lexOne(t, `f"x={x}"`)
	assert.Equal(t, FString, word.Token)
	assert.Equal(t, `f"x={x}"`, word.Literal)
	assert.Equal(t, `x={x}`, word.StrValue)

	word = lexOne(t, `f"a\nb"`)
	assert.Equal(t, `a\nb`, word.StrValue)

	// quotes inside a sub-expression do not terminate the literal
	word = lexOne(t, `f"{d['k']}"`)
	assert.Equal(t, `{d['k']}`, word.StrValue)

	word = lexOne(t, `f"{a + {1: 2}[1]}"`)
	assert.Equal(t, `{a + {1: 2}[1]}`, word.StrValue)

	// doubled braces are literal text, not expressions
	word = lexOne(t, `f"{{not_an_expr}}"`)
	assert.Equal(t, `{{not_an_expr}}`, word.StrValue)

	word = lexOne(t, `F"""{x}
{y}"""`)
	assert.Equal(t, FString, word.Token)
	assert.Equal(t, "{x}\n{y}", word.StrValue)
}

func TestScanner_FStringErrors(t *testing.T) {
	_, err := Lex([]byte(`f"{x"`), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unterminated expression in f-string: missing '}'")
	assert.Contains(t, err.Error(), "Unterminated f-string literal")

	_, err = Lex([]byte("f\"ab\ncd\""), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unterminated f-string literal: newline in string")

	lexBad(t, `f"""{x}`, "Unterminated formatted triple-quoted string")
}

func TestScanner_BytesStrings(t *testing.T) {
	word := lexOne(t, `b"abc"`)
	assert.Equal(t, Bytes, word.Token)
	assert.Equal(t, `b"abc"`, word.Literal)
	assert.Equal(t, []byte("abc"), word.BytesValue)

	word = lexOne(t, `b""`)
	assert.Equal(t, Bytes, word.Token)
	assert.Equal(t, []byte{}, word.BytesValue)

	word = lexOne(t, `b"\x00\xff\n\t\r\\"`)
	assert.Equal(t, []byte{0x00, 0xff, '\n', '\t', '\r', '\\'}, word.BytesValue)

	// \b and \f decode in triple-quoted bytes literals only
	word = lexOne(t, `B"""\b\f"""`)
	assert.Equal(t, []byte{0x08, 0x0C}, word.BytesValue)

	words, err := Lex([]byte(`b"\b"`), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Invalid escape sequence in bytes literal: \b`)
	assert.Equal(t, []byte{'b'}, words[0].BytesValue)
}

func TestScanner_BytesErrors(t *testing.T) {
	// the non-ASCII character is reported and skipped
	words, err := Lex([]byte(`b"aéb"`), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Non-ASCII character in bytes literal")
	assert.Equal(t, []byte("ab"), words[0].BytesValue)

	_, err = Lex([]byte(`b"\xZ1"`), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid hex escape in bytes literal")

	lexBad(t, `b"abc`, "Unterminated bytes literal")
	lexBad(t, `b"""abc`, "Unterminated bytes triple-quoted string")

	_, err = Lex([]byte("b\"abc\ndef\""), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unterminated bytes literal: newline in string")
}

func TestScanner_Operators(t *testing.T) {
	src := "a += b -= c *= d /= e //= f %= g **= h @= i &= j |= k ^= l <<= m >>= n"
	words, err := Lex([]byte(src), DefaultOptions())
	require.NoError(t, err)

	var augs []Token
	for _, word := range words {
		if word.Token.IsAugAssign() {
			augs = append(augs, word.Token)
		}
	}
	assert.Equal(t, []Token{
		AddAssign, SubAssign, MulAssign, DivAssign, FloorDivAssign,
		ModAssign, PowAssign, AtAssign, BitAndAssign, BitOrAssign,
		BitXorAssign, ShlAssign, ShrAssign,
	}, augs)

	expected := []Token{
		Name, Walrus, Int, NewLine,
		Name, Arrow, Name, NewLine,
		Name, Assign, Ellipsis, NewLine,
		Name, Eq, Name, NotEq, Name, NewLine,
		Name, Lt, Name, LtEq, Name, Gt, Name, GtEq, Name, NewLine,
		Name, Shl, Int, Shr, Int, NewLine,
		BitNot, Name, NewLine,
		Name, Period, Name, NewLine,
		EOF,
	}
	src = "n := 1\nf -> g\nx = ...\na == b != c\na < b <= c > d >= e\nx << 2 >> 1\n~y\nm.n\n"
	words, err = Lex([]byte(src), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, words, len(expected))
	for i, word := range words {
		assert.Equal(t, expected[i].String(), word.Token.String(), "word %d", i)
	}
}

func TestScanner_Keywords(t *testing.T) {
	for name, tok := range Keywords {
		words, err := Lex([]byte(name), DefaultOptions())
		require.NoError(t, err)
		require.Len(t, words, 2, "keyword %q", name)
		assert.Equal(t, tok, words[0].Token)
		assert.Equal(t, name, words[0].Literal)
	}

	// prefixed identifiers are not keywords
	word := lexOne(t, "iffy")
	assert.Equal(t, Name, word.Token)
	assert.Equal(t, "iffy", word.Literal)
}

func TestScanner_UnicodeIdentifiers(t *testing.T) {
	words, err := Lex([]byte("café = 1\n"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, Name, words[0].Token)
	assert.Equal(t, "café", words[0].Literal)

	// columns count runes, not bytes
	assert.Equal(t, 1, words[0].Column)
	assert.Equal(t, 6, words[1].Column)
}

func TestScanner_ByteOrderMark(t *testing.T) {
	src := "\uFEFFx = 1\n"
	words, err := Lex([]byte(src), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, Name, words[0].Token)
	assert.Equal(t, 1, words[0].Line)
	assert.Equal(t, 1, words[0].Column)
}

func TestScanner_StringPrefixCases(t *testing.T) {
	// a prefix character not followed by a quote is an identifier
	words, err := Lex([]byte("r = f(b)"), DefaultOptions())
	require.NoError(t, err)
	expected := []Token{Name, Assign, Name, Lparen, Name, Rparen, EOF}
	require.Len(t, words, len(expected))
	for i, word := range words {
		assert.Equal(t, expected[i].String(), word.Token.String(), "word %d", i)
	}
}

func TestScanner_ErrorSnippets(t *testing.T) {
	src := "x = 1\ny = $\n"
	_, err := Lex([]byte(src), DefaultOptions())
	require.Error(t, err)

	scanner := NewScanner([]byte(src), DefaultOptions())
	for {
		if w := scanner.Scan(); w.Token == EOF {
			break
		}
	}
	require.NotNil(t, scanner.Errs)
	require.Equal(t, 1, scanner.Errs.Len())
	pe, ok := scanner.Errs.Slice()[0].(PosError)
	require.True(t, ok)
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, 5, pe.Column)
	assert.Equal(t, "Unexpected character: $", pe.Msg)
	assert.Equal(t, "y = $", pe.Snippet)
	assert.Equal(t, "Line 2, column 5: Unexpected character: $", pe.Error())
}

func TestPosError_Suggestion(t *testing.T) {
	err := PosError{Line: 3, Column: 7, Msg: "bad", Suggestion: "fix it"}
	assert.Equal(t, "Line 3, column 7: bad - Suggestion: fix it", err.Error())
}
