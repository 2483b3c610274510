package sableparser

import (
	"strings"

	"github.com/sable-lang/sable/sable-go/sableast"
	"github.com/sable-lang/sable/sable-go/sablescanner"
	"github.com/sable-lang/sable/sable-golib/errors"
)

// fstringOpenLen returns the number of bytes before the content of an
// f-string literal: the prefix plus the opening quote run.
func fstringOpenLen(lit string) int {
	for i := 0; i < len(lit); i++ {
		c := lit[i]
		if c != '\'' && c != '"' {
			continue
		}
		if i+2 < len(lit) && lit[i+1] == c && lit[i+2] == c {
			return i + 3
		}
		return i + 1
	}
	return len(lit)
}

// parseFString splits the body of an f-string word into literal runs
// and replacement fields. Each field's expression is parsed by a
// sub-parse of just that text, and every resulting position is rebased
// so that nodes and errors point into the original source. An f-string
// with no replacement fields collapses to a plain Str.
func (p *parser) parseFString(w *sablescanner.Word) sableast.Expr {
	src := w.StrValue
	line := w.Line
	col := w.Column + fstringOpenLen(w.Literal)

	var parts []sableast.Expr
	var raw, cooked strings.Builder
	var runLine, runCol int
	mark := func() {
		if raw.Len() == 0 {
			runLine, runCol = line, col
		}
	}
	flush := func() {
		if raw.Len() == 0 {
			return
		}
		parts = append(parts, &sableast.Str{Word: sablescanner.Word{
			Token:    sablescanner.String,
			Literal:  raw.String(),
			Line:     runLine,
			Column:   runCol,
			StrValue: cooked.String(),
		}})
		raw.Reset()
		cooked.Reset()
	}

	found := false
	for i := 0; i < len(src); {
		switch c := src[i]; c {
		case '{':
			if i+1 < len(src) && src[i+1] == '{' {
				mark()
				raw.WriteString("{{")
				cooked.WriteByte('{')
				col += 2
				i += 2
				continue
			}
			flush()
			parts = append(parts, p.parseFStringExpr(src, &i, &line, &col))
			found = true
		case '}':
			if i+1 < len(src) && src[i+1] == '}' {
				mark()
				raw.WriteString("}}")
				cooked.WriteByte('}')
				col += 2
				i += 2
				continue
			}
			p.syntaxError(line, col, "Single '}' is not allowed in f-string")
		default:
			mark()
			raw.WriteByte(c)
			cooked.WriteByte(c)
			if c == '\n' {
				line++
				col = 1
			} else {
				col++
			}
			i++
		}
	}
	flush()

	if !found {
		return &sableast.Str{Word: *w}
	}
	return &sableast.JoinedStr{Pos: wordPos(w), Values: parts}
}

// parseFStringExpr parses one {...} replacement field. src is the
// f-string body; ip, lp and cp point at the opening brace and are
// advanced past the closing one. The field's nesting is tracked
// textually: parentheses, brackets and braces all raise the depth, and
// '!' and ':' are only special at depth one, so "{a[1:2]}" keeps its
// slice and "{x:>8}" gets its format spec.
func (p *parser) parseFStringExpr(src string, ip, lp, cp *int) *sableast.FormattedValue {
	i, line, col := *ip, *lp, *cp
	bracePos := sableast.Position{Line: line, Column: col}
	step := func() {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		i++
	}
	step() // opening brace

	exprLine, exprCol := line, col
	exprStart := i
	exprEnd := -1
	depth := 1
	inSpec := false
	specStart := -1
	var specPos sableast.Position
	var conv rune
	closed := false
	closeIdx := -1

	for i < len(src) && !closed {
		c := src[i]
		if inSpec {
			// the format spec is kept as raw text, but nested braces
			// still have to balance to find the closing one
			switch c {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					closed = true
					closeIdx = i
				}
			}
			step()
			continue
		}
		switch c {
		case '\'', '"':
			q := c
			step()
			for i < len(src) && src[i] != q {
				if src[i] == '\\' {
					step()
					if i >= len(src) {
						break
					}
				}
				step()
			}
			if i < len(src) {
				step()
			}
		case '(', '[', '{':
			depth++
			step()
		case ')', ']':
			depth--
			step()
		case '}':
			depth--
			if depth == 0 {
				if exprEnd < 0 {
					exprEnd = i
				}
				closed = true
				closeIdx = i
			}
			step()
		case '!':
			if depth == 1 && i+2 < len(src) && src[i+1] != '=' &&
				(src[i+2] == '}' || src[i+2] == ':') {
				switch src[i+1] {
				case 's', 'r', 'a':
				default:
					p.syntaxError(line, col+1, "Invalid conversion character: expected 's', 'r' or 'a'")
				}
				conv = rune(src[i+1])
				exprEnd = i
				step()
				step()
				continue
			}
			step()
		case ':':
			if depth == 1 {
				if exprEnd < 0 {
					exprEnd = i
				}
				inSpec = true
				specStart = i + 1
				specPos = sableast.Position{Line: line, Column: col + 1}
			}
			step()
		default:
			step()
		}
	}
	if !closed {
		p.syntaxError(bracePos.Line, bracePos.Column, "Unterminated expression in f-string: missing '}'")
	}

	exprText := src[exprStart:exprEnd]
	if strings.TrimSpace(exprText) == "" {
		p.syntaxError(bracePos.Line, bracePos.Column, "Empty expression in f-string")
	}

	subOpts := p.opts
	subOpts.ErrorMode = FailFast
	subOpts.Trace = false
	value, err := ParseExpression([]byte(exprText), subOpts)
	if err != nil {
		for _, e := range splitErrors(err) {
			p.errs = errors.Append(p.errs, rebaseError(e, exprLine, exprCol))
		}
		panic(errWrongToken)
	}
	rebaseNode(value, exprLine, exprCol)

	var spec *sableast.Str
	if specStart >= 0 {
		specText := src[specStart:closeIdx]
		spec = &sableast.Str{Word: sablescanner.Word{
			Token:    sablescanner.String,
			Literal:  specText,
			Line:     specPos.Line,
			Column:   specPos.Column,
			StrValue: specText,
		}}
	}

	*ip, *lp, *cp = i, line, col
	return &sableast.FormattedValue{Pos: bracePos, Value: value, Conversion: conv, FormatSpec: spec}
}

// rebaseLineCol maps a position inside a sub-parsed expression onto
// the enclosing source. Columns shift only on the first line.
func rebaseLineCol(line, col, baseLine, baseCol int) (int, int) {
	if line == 1 {
		return baseLine, baseCol + col - 1
	}
	return baseLine + line - 1, col
}

func splitErrors(err error) []error {
	if errs, ok := err.(errors.Errors); ok {
		return errs.Slice()
	}
	return []error{err}
}

// rebaseError shifts the position carried by a sub-parse error into
// the enclosing source.
func rebaseError(err error, baseLine, baseCol int) error {
	switch e := err.(type) {
	case UnexpectedTokenError:
		e.Found.Line, e.Found.Column = rebaseLineCol(e.Found.Line, e.Found.Column, baseLine, baseCol)
		return e
	case InvalidSyntaxError:
		e.Line, e.Column = rebaseLineCol(e.Line, e.Column, baseLine, baseCol)
		return e
	case EOFError:
		e.Line, e.Column = rebaseLineCol(e.Line, e.Column, baseLine, baseCol)
		return e
	case sablescanner.PosError:
		e.Line, e.Column = rebaseLineCol(e.Line, e.Column, baseLine, baseCol)
		return e
	}
	return err
}

func rebasePos(pos *sableast.Position, baseLine, baseCol int) {
	pos.Line, pos.Column = rebaseLineCol(pos.Line, pos.Column, baseLine, baseCol)
}

func rebaseWord(w *sablescanner.Word, baseLine, baseCol int) {
	w.Line, w.Column = rebaseLineCol(w.Line, w.Column, baseLine, baseCol)
}

// rebaseNode shifts every position in a sub-parsed expression tree
// into the enclosing source.
func rebaseNode(n sableast.Node, baseLine, baseCol int) {
	sableast.Inspect(n, func(node sableast.Node) bool {
		switch v := node.(type) {
		case *sableast.Num:
			rebaseWord(&v.Word, baseLine, baseCol)
		case *sableast.Str:
			rebaseWord(&v.Word, baseLine, baseCol)
		case *sableast.Bytes:
			rebaseWord(&v.Word, baseLine, baseCol)
		case *sableast.NameConstant:
			rebaseWord(&v.Word, baseLine, baseCol)
		case *sableast.Name:
			rebasePos(&v.Pos, baseLine, baseCol)
		case *sableast.Tuple:
			rebasePos(&v.Pos, baseLine, baseCol)
		case *sableast.List:
			rebasePos(&v.Pos, baseLine, baseCol)
		case *sableast.Dict:
			rebasePos(&v.Pos, baseLine, baseCol)
		case *sableast.Set:
			rebasePos(&v.Pos, baseLine, baseCol)
		case *sableast.Starred:
			rebasePos(&v.Pos, baseLine, baseCol)
		case *sableast.UnaryOp:
			rebasePos(&v.Pos, baseLine, baseCol)
		case *sableast.Lambda:
			rebasePos(&v.Pos, baseLine, baseCol)
		case *sableast.ListComp:
			rebasePos(&v.Pos, baseLine, baseCol)
		case *sableast.SetComp:
			rebasePos(&v.Pos, baseLine, baseCol)
		case *sableast.DictComp:
			rebasePos(&v.Pos, baseLine, baseCol)
		case *sableast.GeneratorExp:
			rebasePos(&v.Pos, baseLine, baseCol)
		case *sableast.Await:
			rebasePos(&v.Pos, baseLine, baseCol)
		case *sableast.Yield:
			rebasePos(&v.Pos, baseLine, baseCol)
		case *sableast.YieldFrom:
			rebasePos(&v.Pos, baseLine, baseCol)
		case *sableast.FormattedValue:
			rebasePos(&v.Pos, baseLine, baseCol)
		case *sableast.JoinedStr:
			rebasePos(&v.Pos, baseLine, baseCol)
		case *sableast.Ellipsis:
			rebasePos(&v.Pos, baseLine, baseCol)
		case *sableast.Slice:
			rebasePos(&v.Pos, baseLine, baseCol)
		case *sableast.Parameter:
			rebasePos(&v.Pos, baseLine, baseCol)
		case *sableast.Comprehension:
			rebasePos(&v.Pos, baseLine, baseCol)
		case *sableast.Keyword:
			rebasePos(&v.Pos, baseLine, baseCol)
		}
		return true
	})
}
