package sablescanner

import (
	"testing"

	"github.com/sable-lang/sable/sable-golib/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Name makes the expected token sequences below read like the source.
var Name = Ident

// AssertTokens lexes src with the default options and compares the token
// kinds against expected, returning the words for further inspection.
func AssertTokens(t *testing.T, src string, expected []Token) []Word {
	words, err := Lex([]byte(src), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, words, len(expected), "words: %v", words)
	for i, word := range words {
		assert.Equal(t, expected[i].String(), word.Token.String(), "word %d in %q", i, src)
	}
	return words
}

func TestLexer_SingleLine(t *testing.T) {
	AssertTokens(t, `x = 1`, []Token{Name, Assign, Int, EOF})
}

func TestLexer_SingleLineWithNewline(t *testing.T) {
	AssertTokens(t, "x = 1\n", []Token{Name, Assign, Int, NewLine, EOF})
}

func TestLexer_Indents(t *testing.T) {
	src := "if True:\n    x = 1\n    y = 2\nz = 3\n"
	t.Log(src)
	words := AssertTokens(t, src, []Token{
		If, True, Colon, NewLine,
		Indent, Name, Assign, Int, NewLine,
		Name, Assign, Int, NewLine,
		Dedent, Name, Assign, Int, NewLine,
		EOF,
	})

	var indents, dedents int
	for _, word := range words {
		switch word.Token {
		case Indent:
			indents++
			assert.Equal(t, "    ", word.Literal)
			assert.Equal(t, 2, word.Line)
			assert.Equal(t, 1, word.Column)
		case Dedent:
			dedents++
			assert.Equal(t, "", word.Literal)
		}
	}
	assert.Equal(t, 1, indents)
	assert.Equal(t, 1, dedents)
}

func TestLexer_Indents_NoFinalNewline(t *testing.T) {
	src := "if x:\n    y = 1"
	AssertTokens(t, src, []Token{
		If, Name, Colon, NewLine,
		Indent, Name, Assign, Int,
		Dedent, EOF,
	})
}

func TestLexer_Dedents(t *testing.T) {
	src := "if a:\n    if b:\n        x = 1\ny = 2\n"
	t.Log(src)
	AssertTokens(t, src, []Token{
		If, Name, Colon, NewLine,
		Indent, If, Name, Colon, NewLine,
		Indent, Name, Assign, Int, NewLine,
		Dedent, Dedent, Name, Assign, Int, NewLine,
		EOF,
	})
}

func TestLexer_DedentsAtEOF(t *testing.T) {
	src := "if a:\n    if b:\n        x = 1\n"
	words := AssertTokens(t, src, []Token{
		If, Name, Colon, NewLine,
		Indent, If, Name, Colon, NewLine,
		Indent, Name, Assign, Int, NewLine,
		Dedent, Dedent, EOF,
	})

	// both dedents and the EOF itself sit at the end of the source
	for _, word := range words[len(words)-3:] {
		assert.Equal(t, 4, word.Line)
		assert.Equal(t, 1, word.Column)
	}
}

func TestLexer_EmptyLine(t *testing.T) {
	src := "x = 1\n\n\ny = 2\n"
	words := AssertTokens(t, src, []Token{
		Name, Assign, Int, NewLine,
		Name, Assign, Int, NewLine,
		EOF,
	})

	// the collapsed newline is positioned at the first newline of the run
	assert.Equal(t, 1, words[3].Line)
	assert.Equal(t, 6, words[3].Column)
	assert.Equal(t, "\n", words[3].Literal)
}

func TestLexer_BlankLineInsideBlock(t *testing.T) {
	// the whitespace on the blank line does not participate in
	// indentation handling, even though it does not match the block
	src := "if x:\n    y = 1\n  \n    z = 2\n"
	AssertTokens(t, src, []Token{
		If, Name, Colon, NewLine,
		Indent, Name, Assign, Int, NewLine,
		Name, Assign, Int, NewLine,
		Dedent, EOF,
	})
}

func TestLexer_EmptyLineWithComment(t *testing.T) {
	src := "x = 1\n# comment\ny = 2\n"
	AssertTokens(t, src, []Token{
		Name, Assign, Int, NewLine,
		Name, Assign, Int, NewLine,
		EOF,
	})
}

func TestLexer_ScanComments(t *testing.T) {
	opts := DefaultOptions()
	opts.ScanComments = true

	src := "x = 1  # trailing\ny = 2\n"
	words, err := Lex([]byte(src), opts)
	require.NoError(t, err)

	var comments []Word
	for _, word := range words {
		if word.Token == Comment {
			comments = append(comments, word)
		}
	}
	require.Len(t, comments, 1)
	assert.Equal(t, "# trailing", comments[0].Literal)
	assert.Equal(t, 1, comments[0].Line)
	assert.Equal(t, 8, comments[0].Column)
}

func TestLexer_CommentBeforeEOF(t *testing.T) {
	// a comment with no newline after it does not produce a NEWLINE
	AssertTokens(t, "x = 1\n# comment", []Token{Name, Assign, Int, NewLine, EOF})
	AssertTokens(t, "# only a comment", []Token{EOF})
}

func TestLexer_Parens(t *testing.T) {
	src := "x = (1 +\n     2)\ny = 3\n"
	t.Log(src)
	AssertTokens(t, src, []Token{
		Name, Assign, Lparen, Int, Add, Int, Rparen, NewLine,
		Name, Assign, Int, NewLine,
		EOF,
	})
}

func TestLexer_BracketJoining(t *testing.T) {
	src := "func(\n    a,\n    b,\n)\n"
	words := AssertTokens(t, src, []Token{
		Name, Lparen, Name, Comma, Name, Comma, Rparen, NewLine,
		EOF,
	})

	// no layout tokens between the bracket pair
	var open bool
	for _, word := range words {
		switch word.Token {
		case Lparen:
			open = true
		case Rparen:
			open = false
		case NewLine, Indent, Dedent:
			assert.False(t, open, "layout token inside brackets at %d:%d", word.Line, word.Column)
		}
	}

	src = "a = [1,\n     2]\nb = {1: 2,\n     3: 4}\n"
	AssertTokens(t, src, []Token{
		Name, Assign, Lbrack, Int, Comma, Int, Rbrack, NewLine,
		Name, Assign, Lbrace, Int, Colon, Int, Comma, Int, Colon, Int, Rbrace, NewLine,
		EOF,
	})
}

func TestLexer_LineContinuations(t *testing.T) {
	src := "x = 1 + \\\n    2\ny = 3\n"
	t.Log(src)
	AssertTokens(t, src, []Token{
		Name, Assign, Int, Add, Int, NewLine,
		Name, Assign, Int, NewLine,
		EOF,
	})
}

func TestLexer_KeywordInBrackets(t *testing.T) {
	src := "x = (1 +\ndef f():\n    pass\n"
	t.Log(src)
	words, err := Lex([]byte(src), DefaultOptions())
	require.Error(t, err)
	require.Equal(t, 1, err.(errors.Errors).Len())
	assert.Contains(t, err.Error(),
		"Line 2, column 1: Unexpected keyword 'def' inside brackets")
	assert.Contains(t, err.Error(),
		"Suggestion: Check for a missing closing bracket on a previous line")

	// bracket depth resets so the def suite lexes normally
	expected := []Token{
		Name, Assign, Lparen, Int, Add,
		Def, Name, Lparen, Rparen, Colon, NewLine,
		Indent, Pass, NewLine,
		Dedent, EOF,
	}
	require.Len(t, words, len(expected))
	for i, word := range words {
		assert.Equal(t, expected[i].String(), word.Token.String(), "word %d", i)
	}
}

func TestLexer_InconsistentIndent(t *testing.T) {
	src := "if a:\n    x = 1\n  y = 2\n"
	t.Log(src)
	words, err := Lex([]byte(src), DefaultOptions())
	require.Error(t, err)
	require.Equal(t, 2, err.(errors.Errors).Len())
	assert.Contains(t, err.Error(),
		"Line 3, column 1: Inconsistent indentation. Current indent level 2 doesn't match any previous level.")
	assert.Contains(t, err.Error(), "Suggestion: Ensure indentation matches a previous level")
	assert.Contains(t, err.Error(),
		"Inconsistent indentation. Expected multiple of 4 spaces but got 2.")

	// the bad line still dedents back to column zero
	expected := []Token{
		If, Name, Colon, NewLine,
		Indent, Name, Assign, Int, NewLine,
		Dedent, Name, Assign, Int, NewLine,
		EOF,
	}
	require.Len(t, words, len(expected))
	for i, word := range words {
		assert.Equal(t, expected[i].String(), word.Token.String(), "word %d", i)
	}
}

func TestLexer_TabsInIndentation(t *testing.T) {
	src := "if x:\n\ty = 1\n"

	words, err := Lex([]byte(src), DefaultOptions())
	require.Error(t, err)
	require.Equal(t, 1, err.(errors.Errors).Len())
	assert.Contains(t, err.Error(), "Line 2, column 1: Tabs are not allowed in indentation")
	assert.Contains(t, err.Error(), "Suggestion: Use spaces only for indentation")

	// the tab still counts as a full indent level
	expected := []Token{If, Name, Colon, NewLine, Indent, Name, Assign, Int, NewLine, Dedent, EOF}
	require.Len(t, words, len(expected))
	for i, word := range words {
		assert.Equal(t, expected[i].String(), word.Token.String(), "word %d", i)
	}

	opts := DefaultOptions()
	opts.AllowTabsInIndentation = true
	words, err = Lex([]byte(src), opts)
	require.NoError(t, err)
	require.Len(t, words, len(expected))
	for _, word := range words {
		if word.Token == Indent {
			assert.Equal(t, "\t", word.Literal)
		}
	}
}

func TestLexer_StandardIndentSize(t *testing.T) {
	src := "if x:\n  y = 1\n"

	_, err := Lex([]byte(src), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(),
		"Line 2, column 1: Inconsistent indentation. Expected multiple of 4 spaces but got 2.")
	assert.Contains(t, err.Error(), "Suggestion: Use 4 spaces for indentation")

	opts := DefaultOptions()
	opts.StandardIndentSize = 2
	_, err = Lex([]byte(src), opts)
	require.NoError(t, err)

	opts = DefaultOptions()
	opts.EnforceIndentConsistency = false
	_, err = Lex([]byte(src), opts)
	require.NoError(t, err)
}

func TestLexer_Semicolon(t *testing.T) {
	src := "x = 1;\n"

	words, err := Lex([]byte(src), DefaultOptions())
	require.NoError(t, err)
	expected := []Token{Name, Assign, Int, Semicolon, NewLine, EOF}
	require.Len(t, words, len(expected))
	for i, word := range words {
		assert.Equal(t, expected[i].String(), word.Token.String(), "word %d", i)
	}

	opts := DefaultOptions()
	opts.AllowTrailingSemicolon = false
	_, err = Lex([]byte(src), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Line 1, column 6: Semicolons are not used in Python-like syntax")
	assert.Contains(t, err.Error(), "Suggestion: Remove the semicolon")
}

func TestLexer_CarriageReturnLinefeed(t *testing.T) {
	src := "if x:\r\n    y = 1\r\nz = 2\r\n"
	AssertTokens(t, src, []Token{
		If, Name, Colon, NewLine,
		Indent, Name, Assign, Int, NewLine,
		Dedent, Name, Assign, Int, NewLine,
		EOF,
	})
}

func TestLexer_FirstLineIndented(t *testing.T) {
	// indentation before the first logical line opens no block
	AssertTokens(t, "    x = 1\n", []Token{Name, Assign, Int, NewLine, EOF})
}

func TestLexer_LeadingBlankLines(t *testing.T) {
	AssertTokens(t, "\n\nx = 1\n", []Token{Name, Assign, Int, NewLine, EOF})
}

func TestLexer_Empty(t *testing.T) {
	words := AssertTokens(t, "", []Token{EOF})
	assert.Equal(t, 1, words[0].Line)
	assert.Equal(t, 1, words[0].Column)
}

func TestLexer_Positions(t *testing.T) {
	src := "foo = bar(1, \"two\")\n"
	words, err := Lex([]byte(src), DefaultOptions())
	require.NoError(t, err)

	expected := []Word{
		{Token: Name, Literal: "foo", Line: 1, Column: 1},
		{Token: Assign, Literal: "=", Line: 1, Column: 5},
		{Token: Name, Literal: "bar", Line: 1, Column: 7},
		{Token: Lparen, Literal: "(", Line: 1, Column: 10},
		{Token: Int, Literal: "1", Line: 1, Column: 11},
		{Token: Comma, Literal: ",", Line: 1, Column: 12},
		{Token: String, Literal: `"two"`, Line: 1, Column: 14},
		{Token: Rparen, Literal: ")", Line: 1, Column: 19},
		{Token: NewLine, Literal: "\n", Line: 1, Column: 20},
		{Token: EOF, Literal: "", Line: 2, Column: 1},
	}
	require.Len(t, words, len(expected))
	for i, word := range words {
		assert.Equal(t, expected[i].Token.String(), word.Token.String(), "word %d", i)
		assert.Equal(t, expected[i].Literal, word.Literal, "word %d", i)
		assert.Equal(t, expected[i].Line, word.Line, "word %d", i)
		assert.Equal(t, expected[i].Column, word.Column, "word %d", i)
	}
}

func TestLexer_RoundTripLexemes(t *testing.T) {
	src := "def fib(n):\n    if n < 2:\n        return n\n    return fib(n - 1) + fib(n - 2)\n"
	words, err := Lex([]byte(src), DefaultOptions())
	require.NoError(t, err)

	offset := func(line, col int) int {
		cur, off := 1, 0
		for cur < line {
			for src[off] != '\n' {
				off++
			}
			off++
			cur++
		}
		return off + col - 1
	}

	for _, word := range words {
		switch word.Token {
		case Dedent, EOF:
			assert.Empty(t, word.Literal)
		default:
			start := offset(word.Line, word.Column)
			require.True(t, start+len(word.Literal) <= len(src), "word %v out of range", word)
			assert.Equal(t, src[start:start+len(word.Literal)], word.Literal, "word %v", word)
		}
	}
}

func TestLexer_IndentBalance(t *testing.T) {
	srcs := []string{
		"if a:\n    b\n",
		"if a:\n    if b:\n        c\n    d\ne\n",
		"while a:\n    b\nwhile c:\n    d\n",
		"def f():\n    def g():\n        pass\n    return g\n",
		"class A:\n    def m(self):\n        pass",
	}
	for _, src := range srcs {
		words, err := Lex([]byte(src), DefaultOptions())
		require.NoError(t, err, "src %q", src)

		var depth int
		for _, word := range words {
			switch word.Token {
			case Indent:
				depth++
			case Dedent:
				depth--
			}
			assert.True(t, depth >= 0, "dedent below zero in %q", src)
		}
		assert.Equal(t, 0, depth, "unbalanced indents in %q", src)
	}
}

func TestLexer_IllegalCharacters(t *testing.T) {
	words, err := Lex([]byte("x = $\n"), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Line 1, column 5: Unexpected character: $")
	require.True(t, len(words) > 2)
	assert.Equal(t, Illegal, words[2].Token)
	assert.Equal(t, "$", words[2].Literal)
	assert.Equal(t, "Unexpected character: $", words[2].Msg)

	words, err = Lex([]byte("if !x:\n    pass\n"), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Line 1, column 4: Unexpected character: !")
	assert.Contains(t, err.Error(), "Suggestion: Use 'not' instead of ! for boolean negation")
	assert.Equal(t, Illegal, words[1].Token)
}

func TestLexer_Count(t *testing.T) {
	src := "if a:\n    b = 1\nc = 2\n"
	count, err := Count([]byte(src), DefaultOptions())
	require.NoError(t, err)

	words, err := Lex([]byte(src), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, len(words), count)
}

func TestListLexer_Empty(t *testing.T) {
	lexer := NewListLexer(nil)
	word := lexer.Next()
	assert.Equal(t, EOF, word.Token)
	assert.Equal(t, 1, word.Line)
	assert.Equal(t, 1, word.Column)
}

func TestListLexer_End(t *testing.T) {
	words, err := Lex([]byte("x = 1"), DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, EOF, words[len(words)-1].Token)

	// drop the scanned EOF; the list lexer synthesizes its own
	lexer := NewListLexer(words[:len(words)-1])
	for range words[:len(words)-1] {
		lexer.Next()
	}
	for i := 0; i < 3; i++ {
		word := lexer.Next()
		assert.Equal(t, EOF, word.Token)
		assert.Equal(t, 1, word.Line)
		assert.Equal(t, 6, word.Column)
	}
}

func TestStreamLexer(t *testing.T) {
	src := "if a:\n    b = 1\nc = 2\n"
	expected, err := Lex([]byte(src), DefaultOptions())
	require.NoError(t, err)

	lexer := NewStreamLexer([]byte(src), DefaultOptions())
	for _, want := range expected {
		word := lexer.Next()
		assert.Equal(t, want.String(), word.String())
	}
	assert.NoError(t, lexer.Errs())
}

func TestIndentStack(t *testing.T) {
	stack := newIndentStack(2)
	assert.Equal(t, 0, stack.peek())

	for i, lvl := range []int{4, 8, 12, 16} {
		stack.push(lvl)
		assert.Equal(t, i+1, stack.length)
		assert.Equal(t, lvl, stack.peek())
	}

	assert.Equal(t, 16, stack.pop())
	assert.Equal(t, 12, stack.pop())
	assert.Equal(t, 8, stack.peek())
	assert.Equal(t, 2, stack.length)
}

func TestWordQueue(t *testing.T) {
	queue := newWordQueue(2)
	for i := 0; i < 5; i++ {
		queue.add(Word{Token: Int, Line: i + 1})
	}
	assert.Equal(t, 5, queue.length)
	for i := 0; i < 5; i++ {
		word := queue.remove()
		assert.Equal(t, i+1, word.Line)
	}
	assert.Equal(t, 0, queue.length)
}
