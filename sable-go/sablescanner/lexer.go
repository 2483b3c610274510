package sablescanner

import (
	"fmt"
	"strings"
)

// Count counts the number of words, without allocating space for them.
// It counts EOF, so the output might be one greater than what you expect.
// NOTE: the lexer expects `buf` to be UTF8 encoded
func Count(buf []byte, opts Options) (int, error) {
	var count int

	lexer := newStreamLexer(buf, opts)
	var prev Word
	for prev.Token != EOF {
		prev = lexer.Next()
		count++
	}

	return count, lexer.errs()
}

// Lex converts a byte array to an array of lexical elements.
// Comments are discarded unless opts.ScanComments is set.
// NOTE: the lexer expects `buf` to be UTF8 encoded
func Lex(buf []byte, opts Options) ([]Word, error) {
	// preallocate the word slice
	count, _ := Count(buf, opts)
	words := make([]Word, 0, count)

	lexer := newStreamLexer(buf, opts)
	for len(words) == 0 || words[len(words)-1].Token != EOF {
		words = append(words, lexer.Next())
	}
	return words, lexer.errs()
}

// Lexer extracts words from sable source
type Lexer interface {
	Next() *Word
}

// ListLexer reads words from a provided list of words
type ListLexer struct {
	Words []Word
	Curr  int
	eof   Word
}

// NewListLexer returns a pointer to a ListLexer that
// reads words from the provided slice of words.
func NewListLexer(words []Word) *ListLexer {
	eof := Word{
		Token: EOF,
		Line:  1,
		Column: 1,
	}
	if len(words) > 0 {
		last := words[len(words)-1]
		eof.Line = last.Line
		eof.Column = last.Column + len(last.Literal)
	}
	return &ListLexer{
		Words: words,
		eof:   eof,
	}
}

// Next satisfies the Lexer interface
func (l *ListLexer) Next() *Word {
	if l.Curr < len(l.Words) {
		w := &l.Words[l.Curr]
		l.Curr++
		return w
	}
	return &l.eof
}

// StreamLexer extracts words from sable source
type StreamLexer streamLexer

// NewStreamLexer constructs a lexer that will return words from the provided buffer
// NOTE: the lexer expects `buf` to be UTF8 encoded
func NewStreamLexer(src []byte, opts Options) *StreamLexer {
	return (*StreamLexer)(newStreamLexer(src, opts))
}

// Next gets the next lexical word
func (s *StreamLexer) Next() *Word {
	w := (*streamLexer)(s).Next()
	return &w
}

// Errs returns the errors accumulated so far.
func (s *StreamLexer) Errs() error {
	return (*streamLexer)(s).errs()
}

// -

type wordQueue struct {
	ring          []Word
	start, length int
}

func newWordQueue(sz int) *wordQueue {
	var ring []Word
	if sz > 0 {
		ring = make([]Word, sz)
	}
	return &wordQueue{
		ring: ring,
	}
}

func (q *wordQueue) resize() {
	newCapacity := q.length << 1
	if newCapacity == 0 {
		newCapacity = 8 // arbitrary
	}
	newBuf := make([]Word, newCapacity)

	if q.start+q.length <= len(q.ring) {
		copy(newBuf, q.ring[q.start:q.start+q.length])
	} else {
		n := copy(newBuf, q.ring[q.start:])
		copy(newBuf[n:], q.ring[:q.start+q.length-len(q.ring)])
	}

	q.start = 0
	q.ring = newBuf
}

func (q *wordQueue) add(w Word) {
	if q.length == len(q.ring) {
		q.resize()
	}

	idx := q.start + q.length
	if idx >= len(q.ring) {
		idx -= len(q.ring)
	}

	q.ring[idx] = w
	q.length++
}

func (q *wordQueue) remove() Word {
	if q.length == 0 {
		panic("wordQueue: remove called on empty queue")
	}
	w := q.ring[q.start]
	q.length--
	q.start++
	if q.start == len(q.ring) {
		q.start = 0
	}
	return w
}

type indentStack struct {
	levels []int
	length int
}

func newIndentStack(sz int) *indentStack {
	var levels []int
	if sz > 0 {
		levels = make([]int, sz)
	}
	return &indentStack{
		levels: levels,
	}
}

func (s *indentStack) peek() int {
	if s.length == 0 {
		return 0 // top-level indent level is 0 by definition
	}
	return s.levels[s.length-1]
}

func (s *indentStack) push(lvl int) {
	if s.length == len(s.levels) {
		s.levels = append(s.levels, lvl)
	} else { // s.length < len(s.levels)
		s.levels[s.length] = lvl
	}
	s.length++
}

func (s *indentStack) pop() int {
	// s.length should be greater than 0; panics otherwise
	lvl := s.levels[s.length-1]
	s.length--
	return lvl
}

// streamLexer layers block structure over the raw scanner: it tracks
// bracket depth for implicit line joining, collapses newline runs into
// single NEWLINE words, and synthesizes INDENT/DEDENT words from the
// measured indentation of each logical line.
type streamLexer struct {
	scanner *Scanner
	opts    Options

	parens  int
	bracks  int
	braces  int
	indents *indentStack
	queue   *wordQueue

	curIndent    string
	needsNewline bool
	hasFirst     bool
	nlLine       int
	nlCol        int
}

func newStreamLexer(src []byte, opts Options) *streamLexer {
	opts.ScanNewLines = true
	lexer := &streamLexer{
		opts:    opts,
		scanner: NewScanner(src, opts),
		indents: newIndentStack(16),
		queue:   newWordQueue(16),
	}
	return lexer
}

func (l *streamLexer) errs() error {
	return l.scanner.Errs
}

func (l *streamLexer) depth() int {
	return l.parens + l.bracks + l.braces
}

// measureIndent computes the width of an indentation string: a space
// counts 1 and a tab counts TabWidth. Configuration diagnostics about
// tabs and indent-step consistency are reported here, once per line.
func (l *streamLexer) measureIndent(indent string, line int) int {
	var width int
	var hasTabs bool
	for _, c := range indent {
		if c == '\t' {
			hasTabs = true
			width += l.opts.TabWidth
		} else {
			width++
		}
	}

	if hasTabs && !l.opts.AllowTabsInIndentation {
		msg := "Tabs are not allowed in indentation"
		if !l.scanner.hasErrorForLine(line, msg) {
			l.scanner.errorSuggest(line, 1, msg, "Use spaces only for indentation")
		}
	}

	if l.opts.EnforceIndentConsistency && l.opts.StandardIndentSize > 0 &&
		width%l.opts.StandardIndentSize != 0 &&
		(!hasTabs || !l.opts.AllowTabsInIndentation) {
		msg := fmt.Sprintf("Inconsistent indentation. Expected multiple of %d spaces but got %d.",
			l.opts.StandardIndentSize, width)
		if !l.scanner.hasErrorForLine(line, msg) {
			l.scanner.errorSuggest(line, 1, msg,
				fmt.Sprintf("Use %d spaces for indentation", l.opts.StandardIndentSize))
		}
	}

	return width
}

// processIndent compares the indentation of the logical line starting
// at line against the indent stack and queues INDENT/DEDENT words.
func (l *streamLexer) processIndent(indent string, line int) {
	width := l.measureIndent(indent, line)

	switch top := l.indents.peek(); {
	// Case 1: indentation is unchanged
	case width == top:
		return

	// Case 2: indentation has increased; queue an indent
	case width > top:
		l.indents.push(width)
		l.queue.add(Word{
			Token:   Indent,
			Literal: indent,
			Line:    line,
			Column:  1,
		})

	// Case 3: indentation has decreased; queue dedents
	default:
		for l.indents.peek() > width {
			l.indents.pop()
			l.queue.add(Word{
				Token:  Dedent,
				Line:   line,
				Column: 1,
			})
		}

		// the top of the stack should equal the new width now; if not,
		// the line does not line up with any open block
		if l.indents.peek() != width {
			msg := fmt.Sprintf("Inconsistent indentation. Current indent level %d doesn't match any previous level.", width)
			if !l.scanner.hasErrorForLine(line, msg) {
				l.scanner.errorSuggest(line, 1, msg, "Ensure indentation matches a previous level")
			}
		}
	}
}

// Next produces the next word of the logical stream.
func (l *streamLexer) Next() Word {
	if l.queue.length > 0 {
		return l.queue.remove()
	}

	for {
		word := l.scanner.Scan()
		tok := word.Token

		// Track bracket depth for implicit line joining. A keyword that
		// cannot appear within a bracketed region means an unclosed
		// bracket on some previous line: report it and drop back to
		// depth zero so the statement machinery recovers.
		switch tok {
		case Lparen:
			l.parens++
		case Lbrack:
			l.bracks++
		case Lbrace:
			l.braces++
		case Rparen:
			if l.parens > 0 {
				l.parens--
			}
		case Rbrack:
			if l.bracks > 0 {
				l.bracks--
			}
		case Rbrace:
			if l.braces > 0 {
				l.braces--
			}
		case Class, Def, Del, Pass, With, Raise, Import,
			Break, Continue, Assert, Except, Finally,
			Global, Try, While, NonLocal:
			if l.depth() != 0 {
				l.scanner.errorSuggest(word.Line, word.Column,
					fmt.Sprintf("Unexpected keyword '%s' inside brackets", tok),
					"Check for a missing closing bracket on a previous line")
				l.parens, l.bracks, l.braces = 0, 0, 0
			}
		}

		switch tok {
		case Comment:
			// surfaced only when ScanComments is set; comments do not
			// end the logical line
			return word

		case LineContinuation:
			// do not surface this word at all
			continue

		case NewLine:
			lit := word.Literal
			for strings.HasPrefix(lit, "\n") || strings.HasPrefix(lit, "\r") {
				lit = lit[1:]
			}
			l.curIndent = lit
			if l.depth() == 0 {
				// we cannot emit the newline word here because multiple
				// consecutive newlines must collapse into one
				if !l.needsNewline {
					l.nlLine, l.nlCol = word.Line, word.Column
				}
				l.needsNewline = true
			}
			continue

		case EOF:
			// a pending newline is emitted first, then one dedent per
			// open indent level, then EOF itself
			emitNewline := l.needsNewline && l.hasFirst
			for l.indents.length > 0 {
				l.indents.pop()
				l.queue.add(Word{
					Token:  Dedent,
					Line:   word.Line,
					Column: word.Column,
				})
			}
			l.queue.add(word)
			l.needsNewline = false
			if emitNewline {
				return Word{Token: NewLine, Literal: "\n", Line: l.nlLine, Column: l.nlCol}
			}
			return l.queue.remove()

		default:
			// if we have a newline pending then we need to emit one of:
			//    NEWLINE <CURTOKEN>                       if the indentation level has not changed
			//    NEWLINE INDENT <CURTOKEN>                if the indentation level has increased
			//    NEWLINE DEDENT ... DEDENT <CURTOKEN>     if the indentation level has decreased
			if l.needsNewline && l.hasFirst {
				l.processIndent(l.curIndent, word.Line)
				l.queue.add(word)
				word = Word{Token: NewLine, Literal: "\n", Line: l.nlLine, Column: l.nlCol}
			}

			l.needsNewline = false
			l.hasFirst = true
			return word
		}
	}
}
