package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters"
	"github.com/alecthomas/chroma/styles"
	"github.com/sable-lang/sable/sable-go/sablescanner"
	"github.com/sable-lang/sable/sable-golib/errors"
)

func printWord(w sablescanner.Word) {
	text := wordText(w)
	if !colorize {
		fmt.Println(text)
		return
	}
	tok := chroma.Token{Type: tokenColor(w.Token), Value: text}
	if err := formatters.TTY8.Format(os.Stdout, highlightStyle(), chroma.Literator(tok)); err != nil {
		fmt.Print(text)
	}
	fmt.Println()
}

func wordText(w sablescanner.Word) string {
	lit := w.Literal
	if len(lit) > 50 {
		lit = lit[:47] + "..."
	}
	if !verbose {
		if w.Token.IsLiteral() || w.Token == sablescanner.Comment || w.Token == sablescanner.Illegal {
			return fmt.Sprintf("%s %q", w.Token, lit)
		}
		return w.Token.String()
	}
	text := fmt.Sprintf("%3d:%-4d %-16s", w.Line, w.Column, w.Token)
	if lit != "" {
		text += fmt.Sprintf(" %q", lit)
	}
	return text + payloadText(w)
}

// payloadText renders the decoded value a literal word carries alongside
// its surface text.
func payloadText(w sablescanner.Word) string {
	switch {
	case w.Token == sablescanner.Float:
		return fmt.Sprintf(" = %v", w.FloatValue)
	case w.Token.IsNumberLiteral():
		return fmt.Sprintf(" = %d", w.IntValue)
	case w.Token == sablescanner.Bytes:
		return fmt.Sprintf(" = %q", w.BytesValue)
	case w.Token.IsStringLiteral():
		return fmt.Sprintf(" = %q", w.StrValue)
	case w.Token == sablescanner.Illegal && w.Msg != "":
		return " (" + w.Msg + ")"
	}
	return ""
}

func highlightStyle() *chroma.Style {
	s := styles.Get("monokai")
	if s == nil {
		s = styles.Fallback
	}
	return s
}

func tokenColor(tok sablescanner.Token) chroma.TokenType {
	switch {
	case tok.IsKeyword():
		return chroma.Keyword
	case tok == sablescanner.Ident:
		return chroma.Name
	case tok.IsNumberLiteral():
		return chroma.LiteralNumber
	case tok.IsStringLiteral():
		return chroma.LiteralString
	case tok == sablescanner.Comment:
		return chroma.CommentSingle
	case tok == sablescanner.Illegal:
		return chroma.Error
	}
	switch tok {
	case sablescanner.Lparen, sablescanner.Lbrack, sablescanner.Lbrace,
		sablescanner.Rparen, sablescanner.Rbrack, sablescanner.Rbrace,
		sablescanner.Comma, sablescanner.Period, sablescanner.Colon, sablescanner.Semicolon:
		return chroma.Punctuation
	}
	if tok.IsOperator() {
		return chroma.Operator
	}
	return chroma.Text
}

func printDiagnostics(src []byte, err error) {
	for _, e := range diagnosticList(err) {
		fmt.Println(e.Error())
		if !verbose {
			continue
		}
		if line, col, ok := errPos(e); ok {
			printSnippet(src, line, col)
		}
	}
}

func diagnosticList(err error) []error {
	if errs, ok := err.(errors.Errors); ok {
		return errs.Slice()
	}
	return []error{err}
}

func errPos(e error) (int, int, bool) {
	switch d := e.(type) {
	case sablescanner.PosError:
		return d.Line, d.Column, true
	case interface{ Pos() (line, column int) }:
		line, col := d.Pos()
		return line, col, true
	}
	return 0, 0, false
}

// printSnippet shows the offending line with up to two lines of context
// on each side and a caret under the error column.
func printSnippet(src []byte, line, col int) {
	lines := strings.Split(string(src), "\n")
	if line < 1 || line > len(lines) {
		return
	}
	if col < 1 {
		col = 1
	}
	first := line - 2
	if first < 1 {
		first = 1
	}
	last := line + 2
	if last > len(lines) {
		last = len(lines)
	}
	gutter := len(fmt.Sprint(last))
	for n := first; n <= last; n++ {
		fmt.Printf("  %*d | ", gutter, n)
		printSourceLine(lines[n-1])
		if n == line {
			fmt.Printf("  %*s | %s^\n", gutter, "", strings.Repeat(" ", col-1))
		}
	}
	fmt.Println()
}

func printSourceLine(text string) {
	if !colorize {
		fmt.Println(text)
		return
	}
	toks := lineTokens(text)
	if err := formatters.TTY8.Format(os.Stdout, highlightStyle(), chroma.Literator(toks...)); err != nil {
		fmt.Print(text)
	}
	fmt.Println()
}

// lineTokens colors a single source line by lexing it in isolation and
// mapping each word back onto the span of text it came from. Words whose
// spans cannot be reconciled with the line, such as the tail of an
// unterminated string, fall back to plain text.
func lineTokens(text string) []chroma.Token {
	opts := sablescanner.DefaultOptions()
	opts.ScanComments = true
	words, _ := sablescanner.Lex([]byte(text), opts)

	runes := []rune(text)
	var toks []chroma.Token
	cursor := 0
	for _, w := range words {
		switch w.Token {
		case sablescanner.NewLine, sablescanner.Indent, sablescanner.Dedent, sablescanner.EOF:
			continue
		}
		lit := w.Literal
		if lit == "" {
			lit = w.Token.String()
		}
		start := w.Column - 1
		if start < cursor || start > len(runes) {
			continue
		}
		end := start + len([]rune(lit))
		if end > len(runes) {
			end = len(runes)
		}
		if start > cursor {
			toks = append(toks, chroma.Token{Type: chroma.Text, Value: string(runes[cursor:start])})
		}
		toks = append(toks, chroma.Token{Type: tokenColor(w.Token), Value: string(runes[start:end])})
		cursor = end
	}
	if cursor < len(runes) {
		toks = append(toks, chroma.Token{Type: chroma.Text, Value: string(runes[cursor:])})
	}
	return toks
}
