// Package sableparser implements a recursive descent parser for sable
// source code. It consumes the words produced by sablescanner and builds
// a sableast syntax tree. In Recover mode the parser resynchronizes at
// statement boundaries after a syntax error, so a single parse reports
// as many independent errors as possible while still returning the tree
// for everything that did parse.
package sableparser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sable-lang/sable/sable-go/sableast"
	"github.com/sable-lang/sable/sable-go/sablescanner"
	"github.com/sable-lang/sable/sable-golib/errors"
)

// maxRecoverCount bounds how many times recovery may restart from the
// same word before the parse is abandoned.
const maxRecoverCount = 10

var (
	errMaxRecover = errors.New("max num recoveries")
	errWrongToken = errors.New("unexpected token")
)

// ErrorMode determines how the parser behaves when a syntax error is
// encountered.
type ErrorMode int

const (
	// FailFast causes the parser to return on the first error.
	FailFast ErrorMode = iota

	// Recover causes the parser to record the error, sync to the next
	// statement, and continue parsing. The statement containing the
	// error is dropped from the tree.
	Recover
)

// Options represents configuration for parsing
type Options struct {
	Trace          bool                 // Trace prints the parser's progress as it runs
	TraceWriter    io.Writer            // TraceWriter receives tracing output, default os.Stdout
	MaxDepth       int                  // MaxDepth bounds expression nesting, zero means no limit
	ErrorMode      ErrorMode            // ErrorMode determines what happens on a parse error
	WarningHandler func(Warning)        // WarningHandler receives advisory diagnostics, may be nil
	ScanOptions    sablescanner.Options // ScanOptions contains options for the lexer
}

// DefaultOptions returns the parsing defaults: recover from syntax
// errors, default scanner options.
func DefaultOptions() Options {
	return Options{
		ErrorMode:   Recover,
		ScanOptions: sablescanner.DefaultOptions(),
	}
}

// parseContext records what construct the parser is inside, so that
// words that are only legal in certain places (return, break, yield,
// await, a comprehension "if") can be checked without threading flags
// through every production.
type parseContext int

const (
	contextNormal parseContext = iota
	contextFunction
	contextLoop
	contextComprehension
	contextMatch
)

// A parser processes a word stream into a syntax tree
type parser struct {
	lexer sablescanner.Lexer
	opts  Options

	word   *sablescanner.Word // current word
	prev   *sablescanner.Word // most recently consumed word
	peeked *sablescanner.Word // lookahead buffered by peek

	contexts    []parseContext
	indentLevel int // net INDENT minus DEDENT seen so far

	depth int // expression nesting, bounded by Options.MaxDepth

	recoverCount int
	recoverLine  int
	recoverCol   int

	indent int // trace indentation
	errs   errors.Errors
}

func newParser(lexer sablescanner.Lexer, opts Options) *parser {
	if opts.TraceWriter == nil {
		opts.TraceWriter = os.Stdout
	}
	p := &parser{
		lexer:    lexer,
		opts:     opts,
		contexts: []parseContext{contextNormal},
	}
	p.next()
	return p
}

// Parse scans and parses a complete source file. In Recover mode both
// the partial tree and the accumulated errors are returned.
func Parse(src []byte, opts Options) (*sableast.Module, error) {
	opts.ScanOptions.ScanComments = false
	words, lexErr := sablescanner.Lex(src, opts.ScanOptions)
	mod, parseErr := ParseWords(words, opts)
	return mod, errors.Combine(lexErr, parseErr)
}

// ParseWords parses an already scanned word stream.
func ParseWords(words []sablescanner.Word, opts Options) (mod *sableast.Module, err error) {
	p := newParser(sablescanner.NewListLexer(words), opts)
	defer p.recoverParse(&err)
	mod = p.parseModule()
	return
}

// ParseExpression scans and parses a single expression, as found on an
// interactive prompt line or inside an f-string.
func ParseExpression(src []byte, opts Options) (sableast.Expr, error) {
	opts.ScanOptions.ScanComments = false
	words, lexErr := sablescanner.Lex(src, opts.ScanOptions)
	expr, parseErr := parseExpressionWords(words, opts)
	return expr, errors.Combine(lexErr, parseErr)
}

func parseExpressionWords(words []sablescanner.Word, opts Options) (expr sableast.Expr, err error) {
	p := newParser(sablescanner.NewListLexer(words), opts)
	defer p.recoverParse(&err)
	e := p.parseExpression()
	for p.has(sablescanner.NewLine) {
	}
	if !p.at(sablescanner.EOF) {
		p.unexpected("end of expression")
	}
	expr = e
	return
}

// recoverParse converts the panics the parser uses for error control
// flow into the accumulated error value. Other panics propagate.
func (p *parser) recoverParse(err *error) {
	if ex := recover(); ex != nil {
		switch ex {
		case errMaxRecover, errWrongToken:
		default:
			panic(ex)
		}
	}
	*err = p.errs
}

// recoverStmt catches the panic raised by error and discards words up
// to the next statement boundary. The failed statement is dropped. In
// FailFast mode the panic keeps unwinding to recoverParse.
func (p *parser) recoverStmt() {
	switch ex := recover(); ex {
	case nil:
	case errWrongToken:
		if p.opts.ErrorMode == FailFast {
			panic(ex)
		}
		p.contexts = p.contexts[:1]
		p.depth = 0
		p.syncStmt()
	default:
		panic(ex)
	}
}

// syncStmt advances to the next statement boundary. If recovery keeps
// restarting from the same word the parse is making no progress and is
// abandoned.
func (p *parser) syncStmt() {
	if p.opts.Trace {
		p.printTrace("<syncstmt>")
	}
	if p.word.Line == p.recoverLine && p.word.Column == p.recoverCol {
		p.recoverCount++
		if p.recoverCount >= maxRecoverCount {
			panic(errMaxRecover)
		}
	} else {
		p.recoverCount = 0
		p.recoverLine = p.word.Line
		p.recoverCol = p.word.Column
	}
	for !p.at(sablescanner.NewLine, sablescanner.EOF) {
		p.next()
	}
}

func (p *parser) printTrace(a ...interface{}) {
	p.printTraceSymbol("  ", a...)
}

func (p *parser) printTraceSymbol(symbol string, a ...interface{}) {
	const dots = ". . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . "
	const n = len(dots)
	w := p.opts.TraceWriter
	fmt.Fprintf(w, "%s%5d:%3d: ", symbol, p.word.Line, p.word.Column)
	i := 2 * p.indent
	for i > n {
		fmt.Fprint(w, dots)
		i -= n
	}
	// i <= n
	fmt.Fprint(w, dots[0:i])
	fmt.Fprintln(w, a...)
}

func trace(p *parser, msg string) *parser {
	p.printTrace(msg, "(")
	p.indent++
	return p
}

// Usage pattern: defer un(trace(p, "..."))
func un(p *parser) {
	p.indent--
	p.printTrace(")")
}

// advance moves to the next word unconditionally.
func (p *parser) advance() {
	if p.opts.Trace && p.word != nil {
		s := p.word.Token.String()
		switch {
		case p.word.Token.IsLiteral():
			lit := p.word.Literal
			if len(lit) > 50 || strings.ContainsRune(lit, '\n') {
				lit = fmt.Sprintf("<%d chars not shown>", len(lit))
			}
			p.printTraceSymbol(" -", s, lit)
		case p.word.Token.IsOperator(), p.word.Token.IsKeyword():
			p.printTraceSymbol(" -", "\""+s+"\"")
		default:
			p.printTraceSymbol(" -", s)
		}
	}

	p.prev = p.word
	if p.peeked != nil {
		p.word = p.peeked
		p.peeked = nil
	} else {
		p.word = p.lexer.Next()
	}

	switch p.word.Token {
	case sablescanner.Indent:
		p.indentLevel++
	case sablescanner.Dedent:
		if p.indentLevel > 0 {
			p.indentLevel--
		}
	}
}

// next advances to the next word, skipping comments.
func (p *parser) next() {
	p.advance()
	for p.word.Token == sablescanner.Comment {
		p.advance()
	}
}

// peek returns the word after the current one without consuming it.
func (p *parser) peek() *sablescanner.Word {
	if p.peeked == nil {
		w := p.lexer.Next()
		for w.Token == sablescanner.Comment {
			w = p.lexer.Next()
		}
		p.peeked = w
	}
	return p.peeked
}

// at reports whether the current word is one of toks.
func (p *parser) at(toks ...sablescanner.Token) bool {
	for _, tok := range toks {
		if p.word.Token == tok {
			return true
		}
	}
	return false
}

// has consumes the current word if it matches tok.
func (p *parser) has(tok sablescanner.Token) bool {
	if p.word.Token != tok {
		return false
	}
	p.next()
	return true
}

// error records err and aborts the current statement by panicking with
// errWrongToken. recoverStmt turns the panic into resynchronization
// when the parser runs in Recover mode.
func (p *parser) error(err error) {
	if p.opts.Trace {
		p.printTraceSymbol("**", "ERROR:", err)
	}
	p.errs = errors.Append(p.errs, err)
	panic(errWrongToken)
}

// warn emits an advisory diagnostic. Warnings never abort the parse.
func (p *parser) warn(line, col int, msg string) {
	if p.opts.Trace {
		p.printTraceSymbol("**", "WARNING:", msg)
	}
	if p.opts.WarningHandler != nil {
		p.opts.WarningHandler(Warning{Msg: msg, Line: line, Column: col})
	}
}

func (p *parser) syntaxError(line, col int, msg string) {
	p.error(InvalidSyntaxError{Msg: msg, Line: line, Column: col})
}

func (p *parser) syntaxErrorSuggest(line, col int, msg, suggestion string) {
	p.error(InvalidSyntaxError{Msg: msg, Line: line, Column: col, Suggestion: suggestion})
}

// unexpected reports the current word as unexpected. expected describes
// what the grammar wanted: a token's surface form or a short phrase
// such as "parameter name".
func (p *parser) unexpected(expected string) {
	if p.at(sablescanner.EOF) {
		p.eofError(expected)
	}
	p.error(UnexpectedTokenError{Expected: expected, Found: *p.word})
}

// eofError reports an unexpected end of file, positioned at the last
// consumed word rather than at the zero width EOF word.
func (p *parser) eofError(expected string) {
	line, col := p.word.Line, p.word.Column
	if p.prev != nil {
		line, col = p.prev.Line, p.prev.Column
	}
	p.error(EOFError{Expected: expected, Line: line, Column: col})
}

// expect consumes and returns the current word if it matches tok, and
// reports an error described by expected otherwise.
func (p *parser) expect(tok sablescanner.Token, expected string) *sablescanner.Word {
	if p.word.Token != tok {
		p.unexpected(expected)
	}
	w := p.word
	p.next()
	return w
}

// expectClose consumes a closing delimiter, describing a mismatch in
// terms of the unclosed pair.
func (p *parser) expectClose(tok sablescanner.Token) {
	if p.word.Token != tok {
		if p.at(sablescanner.EOF) {
			p.eofError(tok.String())
		}
		var msg string
		switch tok {
		case sablescanner.Rparen:
			msg = "Unclosed parenthesis"
		case sablescanner.Rbrack:
			msg = "Unclosed bracket"
		default:
			msg = "Unclosed brace"
		}
		p.syntaxError(p.word.Line, p.word.Column, msg)
	}
	p.next()
}

// attributeName consumes the name after a '.'. Keywords are allowed so
// that attributes like obj.class parse.
func (p *parser) attributeName() string {
	if p.word.Token != sablescanner.Ident && !p.word.Token.IsKeyword() {
		p.unexpected("attribute name")
	}
	name := p.word.Literal
	if name == "" {
		name = p.word.Token.String()
	}
	p.next()
	return name
}

// consumeNewline terminates a simple statement. A semicolon may stand
// in for the newline; stray separators after it are drained so that
// "a = 1;" and "a = 1;\n" both end cleanly.
func (p *parser) consumeNewline() {
	if p.has(sablescanner.Semicolon) {
		for p.has(sablescanner.Semicolon) {
		}
		for p.has(sablescanner.NewLine) {
		}
		return
	}
	if !p.at(sablescanner.NewLine, sablescanner.EOF, sablescanner.Dedent) {
		if p.at(sablescanner.Rparen, sablescanner.Rbrack, sablescanner.Rbrace) {
			p.error(UnexpectedTokenError{Expected: "newline", Found: *p.word})
		}
		p.syntaxError(p.word.Line, p.word.Column, "Expected newline after statement")
	}
	for p.has(sablescanner.NewLine) {
	}
}

// enter bounds expression nesting. Paired with leave via defer.
func (p *parser) enter() *parser {
	p.depth++
	if p.opts.MaxDepth > 0 && p.depth > p.opts.MaxDepth {
		p.syntaxError(p.word.Line, p.word.Column, "Maximum nesting depth exceeded")
	}
	return p
}

func leave(p *parser) {
	p.depth--
}

// withContext runs fn with ctx pushed onto the context stack.
func (p *parser) withContext(ctx parseContext, fn func()) {
	p.contexts = append(p.contexts, ctx)
	defer func() {
		p.contexts = p.contexts[:len(p.contexts)-1]
	}()
	fn()
}

// inContext reports whether ctx appears anywhere on the context stack.
func (p *parser) inContext(ctx parseContext) bool {
	for _, c := range p.contexts {
		if c == ctx {
			return true
		}
	}
	return false
}

func wordPos(w *sablescanner.Word) sableast.Position {
	return sableast.Position{Line: w.Line, Column: w.Column}
}

// storeContext stamps expr and its elements as assignment targets.
func (p *parser) storeContext(expr sableast.Expr) sableast.Expr {
	switch v := expr.(type) {
	case *sableast.Name:
		v.Ctx = sableast.Store
	case *sableast.Attribute:
		v.Ctx = sableast.Store
	case *sableast.Subscript:
		v.Ctx = sableast.Store
	case *sableast.Starred:
		v.Ctx = sableast.Store
		p.storeContext(v.Value)
	case *sableast.Tuple:
		v.Ctx = sableast.Store
		for _, elt := range v.Elts {
			p.storeContext(elt)
		}
	case *sableast.List:
		v.Ctx = sableast.Store
		for _, elt := range v.Elts {
			p.storeContext(elt)
		}
	default:
		pos := expr.Begin()
		p.syntaxError(pos.Line, pos.Column, "Invalid target for assignment")
	}
	return expr
}

// loadContext restamps a speculatively parsed target list back to
// plain expression usage.
func (p *parser) loadContext(expr sableast.Expr) {
	switch v := expr.(type) {
	case *sableast.Name:
		v.Ctx = sableast.Load
	case *sableast.Attribute:
		v.Ctx = sableast.Load
	case *sableast.Subscript:
		v.Ctx = sableast.Load
	case *sableast.Starred:
		v.Ctx = sableast.Load
		p.loadContext(v.Value)
	case *sableast.Tuple:
		v.Ctx = sableast.Load
		for _, elt := range v.Elts {
			p.loadContext(elt)
		}
	case *sableast.List:
		v.Ctx = sableast.Load
		for _, elt := range v.Elts {
			p.loadContext(elt)
		}
	}
}

// delContext stamps the targets of a del statement. Unlike assignment
// targets, expressions of other kinds are left untouched.
func (p *parser) delContext(expr sableast.Expr) {
	switch v := expr.(type) {
	case *sableast.Name:
		v.Ctx = sableast.Del
	case *sableast.Attribute:
		v.Ctx = sableast.Del
	case *sableast.Subscript:
		v.Ctx = sableast.Del
	case *sableast.Starred:
		v.Ctx = sableast.Del
		p.delContext(v.Value)
	case *sableast.Tuple:
		v.Ctx = sableast.Del
		for _, elt := range v.Elts {
			p.delContext(elt)
		}
	case *sableast.List:
		v.Ctx = sableast.Del
		for _, elt := range v.Elts {
			p.delContext(elt)
		}
	}
}

// validateTarget rejects expressions that can never be assigned to,
// naming what the offending expression actually is.
func (p *parser) validateTarget(expr sableast.Expr) {
	pos := expr.Begin()
	switch v := expr.(type) {
	case *sableast.Name, *sableast.Attribute, *sableast.Subscript:
	case *sableast.Num, *sableast.Str, *sableast.Bytes, *sableast.NameConstant, *sableast.JoinedStr:
		p.syntaxError(pos.Line, pos.Column, "Cannot assign to literal")
	case *sableast.BoolOp, *sableast.BinOp, *sableast.UnaryOp:
		p.syntaxError(pos.Line, pos.Column, "Cannot assign to expression")
	case *sableast.Call:
		p.syntaxError(pos.Line, pos.Column, "Cannot assign to function call")
	case *sableast.Starred:
		p.validateTarget(v.Value)
	case *sableast.Tuple:
		for _, elt := range v.Elts {
			p.validateTarget(elt)
		}
	case *sableast.List:
		for _, elt := range v.Elts {
			p.validateTarget(elt)
		}
	default:
		p.syntaxError(pos.Line, pos.Column, "Invalid assignment target")
	}
}

var augOps = map[sablescanner.Token]sableast.OpType{
	sablescanner.AddAssign:      sableast.Add,
	sablescanner.SubAssign:      sableast.Sub,
	sablescanner.MulAssign:      sableast.Mult,
	sablescanner.DivAssign:      sableast.Div,
	sablescanner.FloorDivAssign: sableast.FloorDiv,
	sablescanner.ModAssign:      sableast.Mod,
	sablescanner.PowAssign:      sableast.Pow,
	sablescanner.AtAssign:       sableast.MatMult,
	sablescanner.BitAndAssign:   sableast.BitAnd,
	sablescanner.BitOrAssign:    sableast.BitOr,
	sablescanner.BitXorAssign:   sableast.BitXor,
	sablescanner.ShlAssign:      sableast.LShift,
	sablescanner.ShrAssign:      sableast.RShift,
}

var termOps = map[sablescanner.Token]sableast.OpType{
	sablescanner.Mul:      sableast.Mult,
	sablescanner.Div:      sableast.Div,
	sablescanner.FloorDiv: sableast.FloorDiv,
	sablescanner.Mod:      sableast.Mod,
	sablescanner.At:       sableast.MatMult,
}

// parseModule is the top level parse loop. Stray NEWLINE, INDENT and
// DEDENT words are skipped here so one bad statement cannot cascade
// into indentation errors for everything after it.
func (p *parser) parseModule() *sableast.Module {
	if p.opts.Trace {
		defer un(trace(p, "Module"))
	}
	mod := &sableast.Module{}
	for !p.at(sablescanner.EOF) {
		if p.has(sablescanner.NewLine) || p.has(sablescanner.Indent) || p.has(sablescanner.Dedent) {
			continue
		}
		if stmt := p.parseTopStmt(); stmt != nil {
			mod.Body = append(mod.Body, stmt)
		}
	}
	return mod
}

// parseTopStmt parses one top level statement, converting a syntax
// error panic into a dropped statement when recovery is enabled.
func (p *parser) parseTopStmt() (stmt sableast.Stmt) {
	defer p.recoverStmt()
	return p.parseStatement()
}

func (p *parser) parseStatement() sableast.Stmt {
	if p.opts.Trace {
		defer un(trace(p, "Statement"))
	}

	switch p.word.Token {
	case sablescanner.EOF:
		p.eofError("statement")
	case sablescanner.Semicolon:
		pos := wordPos(p.word)
		p.next()
		return &sableast.Pass{Pos: pos}
	case sablescanner.Add, sablescanner.Sub, sablescanner.Mul,
		sablescanner.Div, sablescanner.Mod, sablescanner.Pow:
		if pk := p.peek(); pk.Token == sablescanner.NewLine || pk.Token == sablescanner.EOF {
			p.syntaxError(p.word.Line, p.word.Column, "Incomplete expression")
		}
		return p.parseExprStatement()
	case sablescanner.Int, sablescanner.Binary, sablescanner.Octal, sablescanner.Hex,
		sablescanner.Float, sablescanner.String, sablescanner.True, sablescanner.False,
		sablescanner.None:
		expr := p.parseExpression()
		if p.at(sablescanner.Assign) {
			pos := expr.Begin()
			p.syntaxError(pos.Line, pos.Column, "Cannot assign to literal")
		}
		p.consumeNewline()
		return &sableast.ExprStmt{Value: expr}
	case sablescanner.Yield:
		expr := p.parseYieldExpr()
		p.consumeNewline()
		return &sableast.ExprStmt{Value: expr}
	case sablescanner.At:
		return p.parseDecorated()
	case sablescanner.Async:
		return p.parseAsyncStatement()
	case sablescanner.Def:
		return p.parseFunctionDef(false)
	case sablescanner.Class:
		return p.parseClassDef()
	case sablescanner.Return:
		return p.parseReturn()
	case sablescanner.Del:
		return p.parseDelete()
	case sablescanner.If:
		return p.parseIf()
	case sablescanner.For:
		return p.parseFor(false)
	case sablescanner.While:
		return p.parseWhile()
	case sablescanner.With:
		return p.parseWith(false)
	case sablescanner.Try:
		return p.parseTry()
	case sablescanner.Except:
		p.syntaxError(p.word.Line, p.word.Column, "'except' statement outside of try block")
	case sablescanner.Raise:
		return p.parseRaise()
	case sablescanner.Assert:
		return p.parseAssert()
	case sablescanner.Import:
		return p.parseImport()
	case sablescanner.From:
		return p.parseImportFrom()
	case sablescanner.Global:
		return p.parseGlobal()
	case sablescanner.NonLocal:
		return p.parseNonlocal()
	case sablescanner.Pass:
		pos := wordPos(p.word)
		p.next()
		p.consumeNewline()
		return &sableast.Pass{Pos: pos}
	case sablescanner.Break:
		return p.parseBreak()
	case sablescanner.Continue:
		return p.parseContinue()
	case sablescanner.Match:
		return p.parseMatch()
	}
	return p.parseExprStatement()
}

// parseSuite parses the body of a compound statement: either a single
// statement on the same line, or an indented block.
func (p *parser) parseSuite() []sableast.Stmt {
	if p.opts.Trace {
		defer un(trace(p, "Suite"))
	}
	if !p.has(sablescanner.NewLine) {
		return []sableast.Stmt{p.parseStatement()}
	}
	if !p.at(sablescanner.Indent) {
		p.syntaxError(p.word.Line, p.word.Column, "Expected an indented block")
	}
	p.next()
	level := p.indentLevel
	var body []sableast.Stmt
	for !p.at(sablescanner.Dedent, sablescanner.EOF) {
		if p.has(sablescanner.NewLine) {
			continue
		}
		if p.indentLevel != level {
			p.syntaxError(p.word.Line, p.word.Column,
				fmt.Sprintf("Inconsistent indentation: expected level %d but got %d", level, p.indentLevel))
		}
		body = append(body, p.parseStatement())
	}
	if !p.at(sablescanner.EOF) {
		p.next()
	}
	return body
}

func (p *parser) parseFunctionDef(isAsync bool) *sableast.FunctionDef {
	if p.opts.Trace {
		defer un(trace(p, "FunctionDef"))
	}
	fn := &sableast.FunctionDef{Pos: wordPos(p.word), IsAsync: isAsync}
	p.next()
	fn.Name = p.expect(sablescanner.Ident, "function name").Literal
	p.expect(sablescanner.Lparen, "(")
	fn.Params = p.parseParameters()
	p.expect(sablescanner.Rparen, ")")
	if p.has(sablescanner.Arrow) {
		fn.Returns = p.parseExpression()
	}
	p.withContext(contextFunction, func() {
		p.expect(sablescanner.Colon, ":")
		fn.Body = p.parseSuite()
	})
	return fn
}

// parseParameters parses a def parameter list up to, but not
// including, the closing parenthesis.
func (p *parser) parseParameters() []*sableast.Parameter {
	var params []*sableast.Parameter
	hasKwarg := false
	seenDefault := false
	for {
		if p.at(sablescanner.Rparen, sablescanner.EOF) {
			break
		}
		switch {
		case p.has(sablescanner.Div):
			// positional-only marker, no node of its own
			if !p.at(sablescanner.Comma, sablescanner.Rparen) {
				p.syntaxError(p.word.Line, p.word.Column, "Expected comma or closing parenthesis after '/'")
			}
		case hasKwarg:
			p.syntaxError(p.word.Line, p.word.Column, "Parameter after **kwargs is not allowed")
		case p.at(sablescanner.Mul):
			star := wordPos(p.word)
			p.next()
			seenDefault = false
			if p.at(sablescanner.Comma, sablescanner.Rparen) {
				// bare * starts the keyword-only section
				params = append(params, &sableast.Parameter{Pos: star, IsVararg: true})
				break
			}
			name := p.expect(sablescanner.Ident, "parameter name after *")
			param := &sableast.Parameter{Pos: star, Name: name.Literal, IsVararg: true}
			if p.has(sablescanner.Colon) {
				param.Annotation = p.parseTypeAnnotation()
			}
			if p.at(sablescanner.Assign) {
				p.syntaxError(p.word.Line, p.word.Column, "Variadic argument cannot have default value")
			}
			params = append(params, param)
		case p.at(sablescanner.Pow):
			pow := wordPos(p.word)
			p.next()
			seenDefault = false
			name := p.expect(sablescanner.Ident, "parameter name after **")
			param := &sableast.Parameter{Pos: pow, Name: name.Literal, IsKwarg: true}
			if p.has(sablescanner.Colon) {
				param.Annotation = p.parseTypeAnnotation()
			}
			if p.at(sablescanner.Assign) {
				p.syntaxError(p.word.Line, p.word.Column, "Keyword argument cannot have default value")
			}
			hasKwarg = true
			params = append(params, param)
		case p.at(sablescanner.Ident):
			name := p.word
			p.next()
			if p.at(sablescanner.Ident) {
				p.syntaxError(name.Line, name.Column+len(name.Literal), "Expected comma between parameters")
			}
			param := &sableast.Parameter{Pos: wordPos(name), Name: name.Literal}
			if p.has(sablescanner.Colon) {
				param.Annotation = p.parseTypeAnnotation()
			}
			if p.has(sablescanner.Assign) {
				param.Default = p.parseOrTest()
			}
			if param.Default != nil {
				seenDefault = true
			} else if seenDefault {
				p.warn(name.Line, name.Column, "Non-default parameter follows default parameter")
			}
			params = append(params, param)
		default:
			p.syntaxError(p.word.Line, p.word.Column, "Expected parameter name, * or **")
		}

		if p.at(sablescanner.Comma) {
			comma := p.word
			p.next()
			if p.at(sablescanner.Rparen) {
				p.syntaxError(comma.Line, comma.Column, "Trailing comma in parameter list")
			}
			continue
		}
		if !p.at(sablescanner.Rparen) {
			p.syntaxError(p.word.Line, p.word.Column, "Expected comma or closing parenthesis")
		}
		break
	}
	return params
}

func (p *parser) parseDecorated() sableast.Stmt {
	pos := wordPos(p.word)
	decorators := p.parseDecorators()
	switch p.word.Token {
	case sablescanner.Def:
		fn := p.parseFunctionDef(false)
		fn.Decorators = decorators
		return fn
	case sablescanner.Class:
		cls := p.parseClassDef()
		cls.Decorators = decorators
		return cls
	}
	p.syntaxError(pos.Line, pos.Column, "Expected function or class definition after decorators")
	return nil
}

func (p *parser) parseDecorators() []sableast.Expr {
	var decorators []sableast.Expr
	for p.has(sablescanner.At) {
		expr := p.parseExpression()
		switch expr.(type) {
		case *sableast.Name, *sableast.Attribute, *sableast.Call:
		default:
			pos := expr.Begin()
			p.syntaxError(pos.Line, pos.Column, "Invalid decorator expression")
		}
		decorators = append(decorators, expr)
		p.consumeNewline()
	}
	return decorators
}

func (p *parser) parseClassDef() *sableast.ClassDef {
	if p.opts.Trace {
		defer un(trace(p, "ClassDef"))
	}
	cls := &sableast.ClassDef{Pos: wordPos(p.word)}
	p.next()
	cls.Name = p.expect(sablescanner.Ident, "class name").Literal
	if p.has(sablescanner.Lparen) {
		if !p.at(sablescanner.Rparen) {
			p.parseClassArgument(cls)
			if !p.at(sablescanner.Comma) && !p.at(sablescanner.Rparen) {
				p.syntaxError(p.word.Line, p.word.Column, "Expected comma between base classes")
			}
			for p.has(sablescanner.Comma) {
				if p.at(sablescanner.Rparen) {
					break
				}
				p.parseClassArgument(cls)
			}
		}
		p.expectClose(sablescanner.Rparen)
	}
	p.expect(sablescanner.Colon, ":")
	cls.Body = p.parseSuite()
	return cls
}

// parseClassArgument parses one entry of a class argument list: a base
// class, a metaclass keyword, or a *args / **kwargs form.
func (p *parser) parseClassArgument(cls *sableast.ClassDef) {
	switch p.word.Token {
	case sablescanner.Mul:
		star := wordPos(p.word)
		p.next()
		if !p.at(sablescanner.Ident) {
			p.syntaxError(p.word.Line, p.word.Column, "Expected identifier after *")
		}
		name := &sableast.Name{Pos: wordPos(p.word), Id: p.word.Literal, Ctx: sableast.Load}
		p.next()
		cls.Bases = append(cls.Bases, &sableast.Starred{Pos: star, Value: name, Ctx: sableast.Load})
	case sablescanner.Pow:
		pow := wordPos(p.word)
		p.next()
		if !p.at(sablescanner.Ident) {
			p.syntaxError(p.word.Line, p.word.Column, "Expected identifier after **")
		}
		value := &sableast.Name{Pos: wordPos(p.word), Id: p.word.Literal, Ctx: sableast.Load}
		p.next()
		cls.Keywords = append(cls.Keywords, &sableast.Keyword{Pos: pow, Value: value})
	case sablescanner.Comma:
		p.error(UnexpectedTokenError{Expected: "expression", Found: *p.word})
	case sablescanner.Ident:
		name := p.word
		switch p.peek().Token {
		case sablescanner.Assign:
			p.next()
			p.next()
			cls.Keywords = append(cls.Keywords, &sableast.Keyword{
				Pos: wordPos(name), Arg: name.Literal, Value: p.parseOrTest(),
			})
		case sablescanner.Lparen:
			// only a no-argument call is accepted as a base here
			p.next()
			p.next()
			if !p.at(sablescanner.Rparen) {
				p.syntaxError(p.word.Line, p.word.Column, "Unclosed parenthesis")
			}
			p.next()
			cls.Bases = append(cls.Bases, &sableast.Call{
				Func: &sableast.Name{Pos: wordPos(name), Id: name.Literal, Ctx: sableast.Load},
			})
		default:
			p.next()
			cls.Bases = append(cls.Bases, &sableast.Name{Pos: wordPos(name), Id: name.Literal, Ctx: sableast.Load})
		}
	default:
		cls.Bases = append(cls.Bases, p.parseAtomExpr())
	}
}

func (p *parser) parseReturn() *sableast.Return {
	if !p.inContext(contextFunction) {
		p.syntaxError(p.word.Line, p.word.Column, "Return statement outside of function")
	}
	ret := &sableast.Return{Pos: wordPos(p.word)}
	p.next()
	if !p.at(sablescanner.NewLine, sablescanner.EOF, sablescanner.Dedent, sablescanner.Semicolon) {
		ret.Value = p.parseExpression()
	}
	p.consumeNewline()
	return ret
}

func (p *parser) parseDelete() *sableast.Delete {
	del := &sableast.Delete{Pos: wordPos(p.word)}
	p.next()
	del.Targets = p.parseExprList()
	for _, target := range del.Targets {
		p.delContext(target)
	}
	p.consumeNewline()
	return del
}

// parseIf parses an if statement; elif chains recurse so each elif
// becomes a nested If in the OrElse slot.
func (p *parser) parseIf() *sableast.If {
	stmt := &sableast.If{Pos: wordPos(p.word)}
	p.next()
	if p.at(sablescanner.Colon) {
		p.error(UnexpectedTokenError{Expected: "expression", Found: *p.word})
	}
	if p.at(sablescanner.Ident) && p.peek().Token == sablescanner.Assign {
		p.syntaxError(p.word.Line, p.word.Column, "Cannot use assignment in a condition")
	}
	stmt.Test = p.parseExpression()
	if !p.at(sablescanner.Colon) {
		p.syntaxError(p.word.Line, p.word.Column, "Expected ':' after if condition")
	}
	p.next()
	stmt.Body = p.parseSuite()
	switch {
	case p.at(sablescanner.Elif):
		stmt.OrElse = []sableast.Stmt{p.parseIf()}
	case p.has(sablescanner.Else):
		p.expect(sablescanner.Colon, ":")
		stmt.OrElse = p.parseSuite()
	}
	return stmt
}

func (p *parser) parseFor(isAsync bool) *sableast.For {
	stmt := &sableast.For{Pos: wordPos(p.word), IsAsync: isAsync}
	p.next()
	if p.at(sablescanner.In) {
		p.syntaxError(stmt.Pos.Line, stmt.Pos.Column, "Expected target after 'for'")
	}
	p.withContext(contextLoop, func() {
		stmt.Target = p.parseTargetList()
	})
	p.expect(sablescanner.In, "in")
	stmt.Iter = p.parseExpression()
	p.expect(sablescanner.Colon, ":")
	p.withContext(contextLoop, func() {
		stmt.Body = p.parseSuite()
	})
	if p.has(sablescanner.Else) {
		p.expect(sablescanner.Colon, ":")
		stmt.OrElse = p.parseSuite()
	}
	return stmt
}

func (p *parser) parseWhile() *sableast.While {
	stmt := &sableast.While{Pos: wordPos(p.word)}
	p.next()
	stmt.Test = p.parseExpression()
	p.expect(sablescanner.Colon, ":")
	p.withContext(contextLoop, func() {
		stmt.Body = p.parseSuite()
	})
	if p.has(sablescanner.Else) {
		p.expect(sablescanner.Colon, ":")
		stmt.OrElse = p.parseSuite()
	}
	return stmt
}

func (p *parser) parseWith(isAsync bool) *sableast.With {
	stmt := &sableast.With{Pos: wordPos(p.word), IsAsync: isAsync}
	p.next()
	for {
		item := &sableast.WithItem{ContextExpr: p.parseExpression()}
		if p.has(sablescanner.As) {
			item.OptionalVars = p.storeContext(p.parseAtomExpr())
		}
		stmt.Items = append(stmt.Items, item)
		if !p.has(sablescanner.Comma) {
			break
		}
		if p.at(sablescanner.Colon) {
			p.syntaxError(p.word.Line, p.word.Column, "Expected context manager after comma")
		}
	}
	p.expect(sablescanner.Colon, ":")
	stmt.Body = p.parseSuite()
	return stmt
}

func (p *parser) parseTry() *sableast.Try {
	stmt := &sableast.Try{Pos: wordPos(p.word)}
	p.next()
	p.expect(sablescanner.Colon, ":")
	stmt.Body = p.parseSuite()
	for p.at(sablescanner.Except) {
		handler := &sableast.ExceptHandler{Pos: wordPos(p.word)}
		p.next()
		if !p.at(sablescanner.Colon, sablescanner.As) {
			handler.Type = p.parseExpression()
		}
		if p.has(sablescanner.As) {
			handler.Name = p.expect(sablescanner.Ident, "exception name").Literal
		}
		p.expect(sablescanner.Colon, ":")
		handler.Body = p.parseSuite()
		stmt.Handlers = append(stmt.Handlers, handler)
	}
	if p.has(sablescanner.Else) {
		p.expect(sablescanner.Colon, ":")
		stmt.OrElse = p.parseSuite()
	}
	if p.has(sablescanner.Finally) {
		p.expect(sablescanner.Colon, ":")
		stmt.FinalBody = p.parseSuite()
	}
	return stmt
}

func (p *parser) parseRaise() *sableast.Raise {
	stmt := &sableast.Raise{Pos: wordPos(p.word)}
	p.next()
	if !p.at(sablescanner.NewLine, sablescanner.EOF, sablescanner.Dedent, sablescanner.Semicolon) {
		stmt.Exc = p.parseExpression()
		if p.has(sablescanner.From) {
			stmt.Cause = p.parseExpression()
		}
	}
	p.consumeNewline()
	return stmt
}

func (p *parser) parseAssert() *sableast.Assert {
	stmt := &sableast.Assert{Pos: wordPos(p.word)}
	p.next()
	stmt.Test = p.parseTest()
	if p.has(sablescanner.Comma) {
		stmt.Msg = p.parseTest()
	}
	p.consumeNewline()
	return stmt
}

func (p *parser) parseImport() *sableast.Import {
	stmt := &sableast.Import{Pos: wordPos(p.word)}
	p.next()
	if p.at(sablescanner.NewLine, sablescanner.EOF, sablescanner.Semicolon) {
		p.syntaxError(stmt.Pos.Line, stmt.Pos.Column+len("import"), "Expected module name after 'import'")
	}
	for {
		alias := &sableast.Alias{Pos: wordPos(p.word), Name: p.parseDottedName()}
		if p.has(sablescanner.As) {
			alias.AsName = p.expect(sablescanner.Ident, "import alias").Literal
		}
		stmt.Names = append(stmt.Names, alias)
		if !p.has(sablescanner.Comma) {
			break
		}
		if p.at(sablescanner.NewLine, sablescanner.EOF) {
			break
		}
	}
	p.consumeNewline()
	return stmt
}

func (p *parser) parseDottedName() string {
	name := p.expect(sablescanner.Ident, "module name").Literal
	for p.has(sablescanner.Period) {
		name += "." + p.expect(sablescanner.Ident, "module name").Literal
	}
	return name
}

func (p *parser) parseImportFrom() *sableast.ImportFrom {
	stmt := &sableast.ImportFrom{Pos: wordPos(p.word)}
	p.next()
	for {
		// the scanner folds "..." into a single word
		if p.has(sablescanner.Period) {
			stmt.Level++
			continue
		}
		if p.has(sablescanner.Ellipsis) {
			stmt.Level += 3
			continue
		}
		break
	}
	if p.at(sablescanner.Import) && stmt.Level == 0 {
		p.syntaxError(p.word.Line, p.word.Column, "Expected module name after 'from'")
	}
	if !p.at(sablescanner.Import) {
		stmt.Module = p.parseDottedName()
	}
	p.expect(sablescanner.Import, "import")
	if p.at(sablescanner.Mul) {
		star := wordPos(p.word)
		p.next()
		stmt.Names = []*sableast.Alias{{Pos: star, Name: "*"}}
		p.consumeNewline()
		return stmt
	}
	if p.at(sablescanner.NewLine, sablescanner.EOF, sablescanner.Semicolon) {
		p.syntaxError(p.word.Line, p.word.Column, "Expected import item after 'import'")
	}
	stmt.Names = p.parseImportAsNames()
	p.consumeNewline()
	return stmt
}

func (p *parser) parseImportAsNames() []*sableast.Alias {
	hasParens := p.has(sablescanner.Lparen)
	var names []*sableast.Alias
	for {
		name := p.expect(sablescanner.Ident, "import name")
		alias := &sableast.Alias{Pos: wordPos(name), Name: name.Literal}
		if p.has(sablescanner.As) {
			alias.AsName = p.expect(sablescanner.Ident, "import alias").Literal
		}
		names = append(names, alias)
		if !p.has(sablescanner.Comma) {
			break
		}
		if hasParens && p.at(sablescanner.Rparen) {
			break
		}
		if !hasParens && p.at(sablescanner.NewLine, sablescanner.EOF) {
			break
		}
	}
	if hasParens {
		p.expect(sablescanner.Rparen, ")")
	}
	return names
}

func (p *parser) parseGlobal() *sableast.Global {
	stmt := &sableast.Global{Pos: wordPos(p.word)}
	p.next()
	stmt.Names = p.parseNameList()
	p.consumeNewline()
	return stmt
}

func (p *parser) parseNonlocal() *sableast.Nonlocal {
	stmt := &sableast.Nonlocal{Pos: wordPos(p.word)}
	p.next()
	stmt.Names = p.parseNameList()
	p.consumeNewline()
	return stmt
}

func (p *parser) parseNameList() []string {
	names := []string{p.expect(sablescanner.Ident, "name").Literal}
	for p.has(sablescanner.Comma) {
		if p.at(sablescanner.NewLine, sablescanner.EOF) {
			break
		}
		names = append(names, p.expect(sablescanner.Ident, "name").Literal)
	}
	return names
}

func (p *parser) parseBreak() *sableast.Break {
	if !p.inContext(contextLoop) {
		p.syntaxError(p.word.Line, p.word.Column, "'break' outside loop")
	}
	stmt := &sableast.Break{Pos: wordPos(p.word)}
	p.next()
	p.consumeNewline()
	return stmt
}

func (p *parser) parseContinue() *sableast.Continue {
	if !p.inContext(contextLoop) {
		p.syntaxError(p.word.Line, p.word.Column, "'continue' outside loop")
	}
	stmt := &sableast.Continue{Pos: wordPos(p.word)}
	p.next()
	p.consumeNewline()
	return stmt
}

// parseMatch parses a match statement. Patterns reuse the expression
// grammar; the match context suppresses the conditional expression so
// a case guard's "if" is never folded into the pattern.
func (p *parser) parseMatch() *sableast.Match {
	stmt := &sableast.Match{Pos: wordPos(p.word)}
	p.next()
	stmt.Subject = p.parseExpression()
	p.expect(sablescanner.Colon, ":")
	p.consumeNewline()
	if !p.has(sablescanner.Indent) {
		p.syntaxError(stmt.Pos.Line, stmt.Pos.Column, "Expected indented block after 'match' statement")
	}
	for p.at(sablescanner.Case) {
		c := &sableast.MatchCase{Pos: wordPos(p.word)}
		p.next()
		p.withContext(contextMatch, func() {
			c.Pattern = p.parseExpression()
			if p.has(sablescanner.If) {
				c.Guard = p.parseExpression()
			}
		})
		p.expect(sablescanner.Colon, ":")
		c.Body = p.parseSuite()
		stmt.Cases = append(stmt.Cases, c)
	}
	p.expect(sablescanner.Dedent, "dedent")
	return stmt
}

func (p *parser) parseAsyncStatement() sableast.Stmt {
	pos := wordPos(p.word)
	p.next()
	switch p.word.Token {
	case sablescanner.Def:
		return p.parseFunctionDef(true)
	case sablescanner.For:
		return p.parseFor(true)
	case sablescanner.With:
		return p.parseWith(true)
	}
	p.syntaxError(pos.Line, pos.Column, "Expected 'def', 'for', or 'with' after 'async'")
	return nil
}

// parseExprStatement parses a statement that begins with an
// expression: a plain expression, an assignment, an augmented or
// annotated assignment, or an unparenthesized target tuple.
func (p *parser) parseExprStatement() sableast.Stmt {
	if p.opts.Trace {
		defer un(trace(p, "ExprStatement"))
	}

	if p.at(sablescanner.Mul) {
		star := wordPos(p.word)
		p.next()
		name := p.expect(sablescanner.Ident, "identifier after *")
		var target sableast.Expr = &sableast.Starred{
			Pos:   star,
			Value: &sableast.Name{Pos: wordPos(name), Id: name.Literal, Ctx: sableast.Store},
			Ctx:   sableast.Store,
		}
		if p.has(sablescanner.Comma) {
			target = &sableast.Tuple{Pos: star, Elts: []sableast.Expr{target}, Ctx: sableast.Store}
		}
		p.expect(sablescanner.Assign, "=")
		return p.parseAssignRest(target)
	}

	// An unparenthesized target tuple ("a, b = v") needs a lookahead:
	// a lone identifier followed by a comma begins a target list, not
	// an expression.
	if p.at(sablescanner.Ident) && p.peek().Token == sablescanner.Comma {
		first := p.word
		p.next()
		p.next()
		tuple := &sableast.Tuple{
			Pos:  wordPos(first),
			Elts: []sableast.Expr{&sableast.Name{Pos: wordPos(first), Id: first.Literal, Ctx: sableast.Store}},
			Ctx:  sableast.Store,
		}
		for !p.at(sablescanner.Assign, sablescanner.NewLine, sablescanner.EOF) {
			switch {
			case p.at(sablescanner.Comma):
				p.syntaxError(p.word.Line, p.word.Column, "Expected expression after comma")
			case p.at(sablescanner.Mul):
				star := wordPos(p.word)
				p.next()
				if !p.at(sablescanner.Ident) {
					p.syntaxError(p.word.Line, p.word.Column, "Expected identifier after *")
				}
				tuple.Elts = append(tuple.Elts, &sableast.Starred{
					Pos:   star,
					Value: &sableast.Name{Pos: wordPos(p.word), Id: p.word.Literal, Ctx: sableast.Store},
					Ctx:   sableast.Store,
				})
				p.next()
			case p.at(sablescanner.Ident):
				tuple.Elts = append(tuple.Elts, &sableast.Name{
					Pos: wordPos(p.word), Id: p.word.Literal, Ctx: sableast.Store,
				})
				p.next()
			default:
				tuple.Elts = append(tuple.Elts, p.storeContext(p.parseAtomExpr()))
			}
			if !p.has(sablescanner.Comma) {
				break
			}
		}
		// no '=' after all: the line was a plain tuple expression
		if p.at(sablescanner.NewLine, sablescanner.EOF, sablescanner.Dedent, sablescanner.Semicolon) {
			p.loadContext(tuple)
			p.consumeNewline()
			return &sableast.ExprStmt{Value: tuple}
		}
		p.expect(sablescanner.Assign, "=")
		return p.parseAssignRest(tuple)
	}

	expr := p.parseExpression()
	switch {
	case p.at(sablescanner.Assign):
		p.validateTarget(expr)
		p.storeContext(expr)
		p.next()
		return p.parseAssignRest(expr)
	case p.word.Token.IsAugAssign():
		switch expr.(type) {
		case *sableast.Name, *sableast.Attribute, *sableast.Subscript:
		default:
			pos := expr.Begin()
			p.syntaxError(pos.Line, pos.Column, "Invalid augmented assignment target")
		}
		p.storeContext(expr)
		op := augOps[p.word.Token]
		p.next()
		stmt := &sableast.AugAssign{Target: expr, Op: op, Value: p.parseExpression()}
		p.consumeNewline()
		return stmt
	case p.has(sablescanner.Colon):
		switch expr.(type) {
		case *sableast.Name, *sableast.Attribute, *sableast.Subscript:
		default:
			pos := expr.Begin()
			p.syntaxError(pos.Line, pos.Column, "Invalid annotated assignment target")
		}
		p.storeContext(expr)
		stmt := &sableast.AnnAssign{Target: expr, Annotation: p.parseTypeAnnotation()}
		if p.has(sablescanner.Assign) {
			stmt.Value = p.parseExpression()
		}
		p.consumeNewline()
		return stmt
	}

	// A name left dangling before an unexpected word is usually a
	// misspelled keyword.
	if name, ok := expr.(*sableast.Name); ok &&
		!p.at(sablescanner.NewLine, sablescanner.EOF, sablescanner.Dedent, sablescanner.Semicolon,
			sablescanner.Rparen, sablescanner.Rbrack, sablescanner.Rbrace) {
		if kw := suggestKeyword(name.Id); kw != "" {
			p.syntaxErrorSuggest(p.word.Line, p.word.Column,
				"Expected newline after statement", fmt.Sprintf("did you mean '%s'?", kw))
		}
	}
	p.consumeNewline()
	return &sableast.ExprStmt{Value: expr}
}

// parseAssignRest parses the remainder of an assignment once the first
// target and its '=' have been consumed. Chained middles ("a = b = v")
// are validated and restamped as targets.
func (p *parser) parseAssignRest(first sableast.Expr) *sableast.Assign {
	stmt := &sableast.Assign{Targets: []sableast.Expr{first}}
	value := p.parseExpression()
	for p.has(sablescanner.Assign) {
		p.validateTarget(value)
		p.storeContext(value)
		stmt.Targets = append(stmt.Targets, value)
		value = p.parseExpression()
	}
	stmt.Value = value
	p.consumeNewline()
	return stmt
}

// parseExpression parses a full expression, including conditional
// expressions and tuples written without parentheses.
func (p *parser) parseExpression() sableast.Expr {
	if p.opts.Trace {
		defer un(trace(p, "Expression"))
	}
	if p.at(sablescanner.Mul) {
		star := wordPos(p.word)
		p.next()
		starred := &sableast.Starred{Pos: star, Value: p.parseAtomExpr(), Ctx: sableast.Load}
		if p.at(sablescanner.Comma) {
			return p.finishTuple(starred)
		}
		return starred
	}
	expr := p.parseOrTest()
	if p.at(sablescanner.If) && !p.inContext(contextComprehension) && !p.inContext(contextMatch) {
		p.next()
		test := p.parseOrTest()
		p.expect(sablescanner.Else, "else")
		return &sableast.IfExp{Test: test, Body: expr, OrElse: p.parseExpression()}
	}
	if p.at(sablescanner.Comma) {
		return p.finishTuple(expr)
	}
	return expr
}

// parseTest parses a single element expression: a conditional or
// anything tighter. Commas are left to the caller.
func (p *parser) parseTest() sableast.Expr {
	defer leave(p.enter())
	expr := p.parseOrTest()
	if p.at(sablescanner.If) && !p.inContext(contextComprehension) && !p.inContext(contextMatch) {
		p.next()
		test := p.parseOrTest()
		p.expect(sablescanner.Else, "else")
		return &sableast.IfExp{Test: test, Body: expr, OrElse: p.parseExpression()}
	}
	return expr
}

// finishTuple collects the remaining elements of an unparenthesized
// tuple after its first element.
func (p *parser) finishTuple(first sableast.Expr) *sableast.Tuple {
	tuple := &sableast.Tuple{Pos: first.Begin(), Elts: []sableast.Expr{first}, Ctx: sableast.Load}
	for p.has(sablescanner.Comma) {
		if p.at(sablescanner.NewLine, sablescanner.EOF, sablescanner.Rparen,
			sablescanner.Rbrack, sablescanner.Dedent) {
			break
		}
		if p.at(sablescanner.Comma) {
			p.syntaxError(p.word.Line, p.word.Column, "Expected expression after comma")
		}
		tuple.Elts = append(tuple.Elts, p.parseOrTest())
	}
	return tuple
}

func (p *parser) parseOrTest() sableast.Expr {
	if p.at(sablescanner.Mul) {
		star := wordPos(p.word)
		p.next()
		return &sableast.Starred{Pos: star, Value: p.parseOrTest(), Ctx: sableast.Load}
	}
	expr := p.parseAndTest()
	if p.at(sablescanner.Walrus) {
		name, ok := expr.(*sableast.Name)
		if !ok {
			pos := expr.Begin()
			p.syntaxError(pos.Line, pos.Column, "Invalid target for walrus operator")
		}
		name.Ctx = sableast.Store
		p.next()
		return &sableast.NamedExpr{Target: name, Value: p.parseOrTest()}
	}
	if !p.at(sablescanner.Or) {
		return expr
	}
	op := &sableast.BoolOp{Op: sableast.Or, Values: []sableast.Expr{expr}}
	for p.has(sablescanner.Or) {
		op.Values = append(op.Values, p.parseAndTest())
	}
	return op
}

func (p *parser) parseAndTest() sableast.Expr {
	expr := p.parseNotTest()
	if !p.at(sablescanner.And) {
		return expr
	}
	op := &sableast.BoolOp{Op: sableast.And, Values: []sableast.Expr{expr}}
	for p.has(sablescanner.And) {
		op.Values = append(op.Values, p.parseNotTest())
	}
	return op
}

func (p *parser) parseNotTest() sableast.Expr {
	defer leave(p.enter())
	if p.at(sablescanner.Not) {
		pos := wordPos(p.word)
		p.next()
		return &sableast.UnaryOp{Pos: pos, Op: sableast.Not, Operand: p.parseNotTest()}
	}
	return p.parseComparison()
}

// parseComparison parses chained comparisons ("a < b <= c") into a
// single Compare node.
func (p *parser) parseComparison() sableast.Expr {
	expr := p.parseBitOr()
	op, ok := p.comparisonOp()
	if !ok {
		return expr
	}
	cmp := &sableast.Compare{Left: expr}
	for ok {
		cmp.Ops = append(cmp.Ops, op)
		cmp.Comparators = append(cmp.Comparators, p.parseBitOr())
		op, ok = p.comparisonOp()
	}
	return cmp
}

// comparisonOp consumes a comparison operator if one is next,
// including the two word forms "is not" and "not in".
func (p *parser) comparisonOp() (sableast.CmpOpType, bool) {
	switch p.word.Token {
	case sablescanner.Eq:
		p.next()
		return sableast.Eq, true
	case sablescanner.NotEq:
		p.next()
		return sableast.NotEq, true
	case sablescanner.Lt:
		p.next()
		return sableast.Lt, true
	case sablescanner.LtEq:
		p.next()
		return sableast.LtE, true
	case sablescanner.Gt:
		p.next()
		return sableast.Gt, true
	case sablescanner.GtEq:
		p.next()
		return sableast.GtE, true
	case sablescanner.In:
		p.next()
		return sableast.In, true
	case sablescanner.Is:
		p.next()
		if p.has(sablescanner.Not) {
			return sableast.IsNot, true
		}
		return sableast.Is, true
	case sablescanner.Not:
		not := p.word
		p.next()
		if !p.has(sablescanner.In) {
			p.syntaxError(not.Line, not.Column, "Expected 'in' after 'not' in comparison")
		}
		return sableast.NotIn, true
	}
	return 0, false
}

func (p *parser) parseBitOr() sableast.Expr {
	expr := p.parseBitXor()
	for p.has(sablescanner.BitOr) {
		expr = &sableast.BinOp{Left: expr, Op: sableast.BitOr, Right: p.parseBitXor()}
	}
	return expr
}

func (p *parser) parseBitXor() sableast.Expr {
	expr := p.parseBitAnd()
	for p.has(sablescanner.BitXor) {
		expr = &sableast.BinOp{Left: expr, Op: sableast.BitXor, Right: p.parseBitAnd()}
	}
	return expr
}

func (p *parser) parseBitAnd() sableast.Expr {
	expr := p.parseShift()
	for p.has(sablescanner.BitAnd) {
		expr = &sableast.BinOp{Left: expr, Op: sableast.BitAnd, Right: p.parseShift()}
	}
	return expr
}

func (p *parser) parseShift() sableast.Expr {
	expr := p.parseArith()
	for p.at(sablescanner.Shl, sablescanner.Shr) {
		op := sableast.LShift
		if p.word.Token == sablescanner.Shr {
			op = sableast.RShift
		}
		p.next()
		expr = &sableast.BinOp{Left: expr, Op: op, Right: p.parseArith()}
	}
	return expr
}

func (p *parser) parseArith() sableast.Expr {
	expr := p.parseTerm()
	for p.at(sablescanner.Add, sablescanner.Sub) {
		opWord := p.word
		op := sableast.Add
		if opWord.Token == sablescanner.Sub {
			op = sableast.Sub
		}
		p.next()
		// "1 - -2" is a doubled operator; "1 + -2" is a unary minus
		if p.word.Token == opWord.Token {
			p.syntaxError(opWord.Line, opWord.Column, "Invalid syntax: consecutive operators")
		}
		expr = &sableast.BinOp{Left: expr, Op: op, Right: p.parseTerm()}
	}
	return expr
}

func (p *parser) parseTerm() sableast.Expr {
	expr := p.parseFactor()
	for p.at(sablescanner.Mul, sablescanner.Div, sablescanner.FloorDiv, sablescanner.Mod, sablescanner.At) {
		opWord := p.word
		p.next()
		switch p.word.Token {
		case sablescanner.Mul, sablescanner.Div, sablescanner.FloorDiv, sablescanner.Mod,
			sablescanner.Add, sablescanner.Sub, sablescanner.At:
			p.syntaxError(opWord.Line, opWord.Column+len(opWord.Token.String()),
				"Invalid syntax: consecutive operators")
		case sablescanner.EOF, sablescanner.NewLine:
			p.syntaxError(opWord.Line, opWord.Column+1, "Incomplete expression")
		}
		expr = &sableast.BinOp{Left: expr, Op: termOps[opWord.Token], Right: p.parseFactor()}
	}
	return expr
}

func (p *parser) parseFactor() sableast.Expr {
	defer leave(p.enter())
	switch p.word.Token {
	case sablescanner.Add:
		pos := wordPos(p.word)
		p.next()
		return &sableast.UnaryOp{Pos: pos, Op: sableast.UAdd, Operand: p.parseFactor()}
	case sablescanner.Sub:
		pos := wordPos(p.word)
		p.next()
		return &sableast.UnaryOp{Pos: pos, Op: sableast.USub, Operand: p.parseFactor()}
	case sablescanner.BitNot:
		pos := wordPos(p.word)
		p.next()
		return &sableast.UnaryOp{Pos: pos, Op: sableast.Invert, Operand: p.parseFactor()}
	}
	return p.parsePower()
}

// parsePower parses **, which binds right to left and admits a unary
// operator on its right but not its left: 2**-3 parses, -2**3 is the
// negation of 2**3.
func (p *parser) parsePower() sableast.Expr {
	expr := p.parseAwait()
	if p.has(sablescanner.Pow) {
		return &sableast.BinOp{Left: expr, Op: sableast.Pow, Right: p.parseFactor()}
	}
	return expr
}

func (p *parser) parseAwait() sableast.Expr {
	if p.at(sablescanner.Await) {
		pos := wordPos(p.word)
		if !p.inContext(contextFunction) {
			p.syntaxError(pos.Line, pos.Column, "Await statement outside of function")
		}
		p.next()
		return &sableast.Await{Pos: pos, Value: p.parseAtomExpr()}
	}
	return p.parseAtomExpr()
}

// parseYieldExpr parses a yield or yield from expression. The caller
// guarantees the current word is "yield".
func (p *parser) parseYieldExpr() sableast.Expr {
	pos := wordPos(p.word)
	p.next()
	if !p.inContext(contextFunction) {
		p.syntaxError(pos.Line, pos.Column, "Yield statement outside of function")
	}
	if p.has(sablescanner.From) {
		return &sableast.YieldFrom{Pos: pos, Value: p.parseExpression()}
	}
	if p.at(sablescanner.NewLine, sablescanner.Rparen, sablescanner.Comma,
		sablescanner.Colon, sablescanner.EOF, sablescanner.Dedent) {
		return &sableast.Yield{Pos: pos}
	}
	return &sableast.Yield{Pos: pos, Value: p.parseExpression()}
}

// parseAtomExpr parses an atom and any trailers: calls, attribute
// access, and subscription.
func (p *parser) parseAtomExpr() sableast.Expr {
	if p.opts.Trace {
		defer un(trace(p, "AtomExpr"))
	}
	expr := p.parseAtom()
	for {
		switch p.word.Token {
		case sablescanner.Lparen:
			expr = p.parseCall(expr)
		case sablescanner.Period:
			p.next()
			expr = &sableast.Attribute{Value: expr, Attr: p.attributeName(), Ctx: sableast.Load}
		case sablescanner.Lbrack:
			p.next()
			index := p.parseSubscript()
			p.expectClose(sablescanner.Rbrack)
			expr = &sableast.Subscript{Value: expr, Index: index, Ctx: sableast.Load}
		default:
			return expr
		}
	}
}

func (p *parser) parseCall(fn sableast.Expr) *sableast.Call {
	if p.opts.Trace {
		defer un(trace(p, "Call"))
	}
	call := &sableast.Call{Func: fn}
	p.next()
	if p.has(sablescanner.Rparen) {
		return call
	}
	switch {
	case p.at(sablescanner.Mul):
		star := wordPos(p.word)
		p.next()
		call.Args = append(call.Args, &sableast.Starred{Pos: star, Value: p.parseOrTest(), Ctx: sableast.Load})
		if p.has(sablescanner.Comma) {
			p.parseMoreArguments(call, true)
		}
	case p.at(sablescanner.Pow):
		pow := wordPos(p.word)
		p.next()
		call.Keywords = append(call.Keywords, &sableast.Keyword{Pos: pow, Value: p.parseOrTest()})
		if p.has(sablescanner.Comma) {
			p.parseMoreArguments(call, true)
		}
	case p.at(sablescanner.Ident) && p.peek().Token == sablescanner.Assign:
		name := p.word
		p.next()
		p.next()
		call.Keywords = append(call.Keywords, &sableast.Keyword{
			Pos: wordPos(name), Arg: name.Literal, Value: p.parseOrTest(),
		})
		if p.has(sablescanner.Comma) {
			p.parseMoreArguments(call, true)
		}
	default:
		first := p.parseOrTest()
		if p.atComprehension() {
			// a generator expression is the sole argument
			gen := &sableast.GeneratorExp{Pos: first.Begin(), Elt: first}
			pos, isAsync := p.startComprehension()
			gen.Generators = p.parseGenerators(pos, isAsync)
			call.Args = append(call.Args, gen)
		} else {
			call.Args = append(call.Args, first)
			if p.has(sablescanner.Comma) {
				p.parseMoreArguments(call, false)
			}
		}
	}
	p.expectClose(sablescanner.Rparen)
	return call
}

// parseMoreArguments parses the call arguments after the first. Once a
// keyword-like argument (name=value, *args or **kwargs) has appeared,
// a plain positional argument is an error.
func (p *parser) parseMoreArguments(call *sableast.Call, sawKeyword bool) {
	for {
		switch {
		case p.at(sablescanner.Rparen):
			return
		case p.at(sablescanner.Comma):
			p.syntaxError(p.word.Line, p.word.Column, "Expected expression between commas")
		case p.at(sablescanner.Mul):
			star := wordPos(p.word)
			p.next()
			call.Args = append(call.Args, &sableast.Starred{Pos: star, Value: p.parseOrTest(), Ctx: sableast.Load})
			sawKeyword = true
		case p.at(sablescanner.Pow):
			pow := wordPos(p.word)
			p.next()
			call.Keywords = append(call.Keywords, &sableast.Keyword{Pos: pow, Value: p.parseOrTest()})
			sawKeyword = true
		case p.at(sablescanner.Ident) && p.peek().Token == sablescanner.Assign:
			name := p.word
			p.next()
			p.next()
			call.Keywords = append(call.Keywords, &sableast.Keyword{
				Pos: wordPos(name), Arg: name.Literal, Value: p.parseOrTest(),
			})
			sawKeyword = true
		case sawKeyword:
			p.syntaxError(p.word.Line, p.word.Column, "Positional argument after keyword argument")
		default:
			call.Args = append(call.Args, p.parseOrTest())
		}
		if !p.has(sablescanner.Comma) {
			return
		}
	}
}

// parseSubscript parses the inside of a subscription: one slice item
// or a tuple of them.
func (p *parser) parseSubscript() sableast.Expr {
	if p.at(sablescanner.Rbrack) {
		p.syntaxError(p.word.Line, p.word.Column, "Expected expression in subscription")
	}
	first := p.parseSliceItem()
	if !p.at(sablescanner.Comma) {
		return first
	}
	tuple := &sableast.Tuple{Pos: first.Begin(), Elts: []sableast.Expr{first}, Ctx: sableast.Load}
	for p.has(sablescanner.Comma) {
		if p.at(sablescanner.Rbrack) {
			break
		}
		tuple.Elts = append(tuple.Elts, p.parseSliceItem())
	}
	return tuple
}

func (p *parser) parseSliceItem() sableast.Expr {
	pos := wordPos(p.word)
	var lower sableast.Expr
	if !p.at(sablescanner.Colon) {
		lower = p.parseTest()
		if !p.at(sablescanner.Colon) {
			return lower
		}
	}
	p.next()
	slice := &sableast.Slice{Pos: pos, Lower: lower}
	if !p.at(sablescanner.Colon, sablescanner.Rbrack, sablescanner.Comma) {
		slice.Upper = p.parseTest()
	}
	if p.has(sablescanner.Colon) {
		if !p.at(sablescanner.Rbrack, sablescanner.Comma) {
			slice.Step = p.parseTest()
		}
	}
	return slice
}

// parseTypeAnnotation parses the annotation after ':' in a parameter
// list or annotated assignment. Annotations are trailer expressions:
// names, attributes, subscriptions like List[int].
func (p *parser) parseTypeAnnotation() sableast.Expr {
	return p.parseAtomExpr()
}

func (p *parser) parseAtom() sableast.Expr {
	if p.opts.Trace {
		defer un(trace(p, "Atom"))
	}
	switch p.word.Token {
	case sablescanner.Ident:
		name := &sableast.Name{Pos: wordPos(p.word), Id: p.word.Literal, Ctx: sableast.Load}
		p.next()
		return name
	case sablescanner.Yield:
		return p.parseYieldExpr()
	case sablescanner.Lparen:
		return p.parseParenAtom()
	case sablescanner.Lbrack:
		return p.parseListAtom()
	case sablescanner.Lbrace:
		pos := wordPos(p.word)
		p.next()
		if p.at(sablescanner.EOF, sablescanner.NewLine) {
			p.syntaxError(pos.Line, pos.Column, "Unclosed brace")
		}
		return p.parseDictLiteral(pos)
	case sablescanner.Int, sablescanner.Float, sablescanner.Binary, sablescanner.Octal, sablescanner.Hex:
		num := &sableast.Num{Word: *p.word}
		p.next()
		return num
	case sablescanner.String, sablescanner.RawString:
		str := &sableast.Str{Word: *p.word}
		p.next()
		return str
	case sablescanner.FString:
		w := p.word
		p.next()
		return p.parseFString(w)
	case sablescanner.Bytes:
		b := &sableast.Bytes{Word: *p.word}
		p.next()
		return b
	case sablescanner.True, sablescanner.False, sablescanner.None:
		c := &sableast.NameConstant{Word: *p.word}
		p.next()
		return c
	case sablescanner.Ellipsis:
		e := &sableast.Ellipsis{Pos: wordPos(p.word)}
		p.next()
		return e
	case sablescanner.Lambda:
		return p.parseLambda()
	}
	p.unexpected("expression")
	return nil
}

func (p *parser) parseLambda() *sableast.Lambda {
	lam := &sableast.Lambda{Pos: wordPos(p.word)}
	p.next()
	lam.Params = p.parseLambdaParams()
	p.expect(sablescanner.Colon, ":")
	lam.Body = p.parseExpression()
	return lam
}

// parseLambdaParams parses lambda parameters, which take no
// annotations and end at the ':'.
func (p *parser) parseLambdaParams() []*sableast.Parameter {
	var params []*sableast.Parameter
	if p.at(sablescanner.Colon) {
		return params
	}
	for {
		switch {
		case p.at(sablescanner.Mul):
			star := wordPos(p.word)
			p.next()
			name := p.expect(sablescanner.Ident, "parameter name after *")
			params = append(params, &sableast.Parameter{Pos: star, Name: name.Literal, IsVararg: true})
		case p.at(sablescanner.Pow):
			pow := wordPos(p.word)
			p.next()
			name := p.expect(sablescanner.Ident, "parameter name after **")
			params = append(params, &sableast.Parameter{Pos: pow, Name: name.Literal, IsKwarg: true})
		case p.at(sablescanner.Ident):
			param := &sableast.Parameter{Pos: wordPos(p.word), Name: p.word.Literal}
			p.next()
			if p.has(sablescanner.Assign) {
				param.Default = p.parseOrTest()
			}
			params = append(params, param)
		default:
			p.unexpected("parameter name")
		}
		if !p.has(sablescanner.Comma) {
			return params
		}
		if p.at(sablescanner.Colon) {
			p.syntaxError(p.word.Line, p.word.Column, "Expected parameter after comma")
		}
	}
}

// parseParenAtom parses a parenthesized expression, the empty tuple,
// or a generator expression.
func (p *parser) parseParenAtom() sableast.Expr {
	pos := wordPos(p.word)
	p.next()
	if p.has(sablescanner.Rparen) {
		return &sableast.Tuple{Pos: pos, Ctx: sableast.Load}
	}
	expr := p.parseExpression()
	if p.atComprehension() {
		cpos, isAsync := p.startComprehension()
		gen := &sableast.GeneratorExp{Pos: pos, Elt: expr, Generators: p.parseGenerators(cpos, isAsync)}
		p.expectClose(sablescanner.Rparen)
		return gen
	}
	p.expectClose(sablescanner.Rparen)
	return expr
}

func (p *parser) parseListAtom() sableast.Expr {
	pos := wordPos(p.word)
	p.next()
	if p.at(sablescanner.EOF, sablescanner.NewLine) {
		p.syntaxError(pos.Line, pos.Column, "Unclosed bracket")
	}
	ctx := sableast.Load
	if p.inContext(contextMatch) {
		ctx = sableast.Store
	}
	list := &sableast.List{Pos: pos, Ctx: ctx}
	if p.has(sablescanner.Rbrack) {
		return list
	}
	first := p.parseListElement()
	if _, starred := first.(*sableast.Starred); !starred && p.atComprehension() {
		cpos, isAsync := p.startComprehension()
		comp := &sableast.ListComp{Pos: pos, Elt: first, Generators: p.parseGenerators(cpos, isAsync)}
		p.expectClose(sablescanner.Rbrack)
		return comp
	}
	list.Elts = append(list.Elts, first)
	for p.has(sablescanner.Comma) {
		if p.at(sablescanner.Rbrack) {
			break
		}
		list.Elts = append(list.Elts, p.parseListElement())
	}
	p.expectClose(sablescanner.Rbrack)
	return list
}

func (p *parser) parseListElement() sableast.Expr {
	if p.at(sablescanner.Mul) {
		star := wordPos(p.word)
		p.next()
		ctx := sableast.Load
		if p.inContext(contextMatch) {
			ctx = sableast.Store
		}
		return &sableast.Starred{Pos: star, Value: p.parseOrTest(), Ctx: ctx}
	}
	return p.parseTest()
}

// parseDictLiteral parses the contents of braces: a dict, a set, or a
// dict or set comprehension. pos is the position of the opening brace,
// which has already been consumed.
func (p *parser) parseDictLiteral(pos sableast.Position) sableast.Expr {
	if p.has(sablescanner.Rbrace) {
		return &sableast.Dict{Pos: pos}
	}
	if p.has(sablescanner.Pow) {
		dict := &sableast.Dict{Pos: pos}
		dict.Keys = append(dict.Keys, nil)
		dict.Values = append(dict.Values, p.parseTest())
		return p.parseDictTail(dict)
	}
	first := p.parseTest()
	if p.has(sablescanner.Colon) {
		value := p.parseTest()
		if p.atComprehension() {
			cpos, isAsync := p.startComprehension()
			comp := &sableast.DictComp{Pos: pos, Key: first, Value: value, Generators: p.parseGenerators(cpos, isAsync)}
			p.expectClose(sablescanner.Rbrace)
			return comp
		}
		dict := &sableast.Dict{Pos: pos}
		dict.Keys = append(dict.Keys, first)
		dict.Values = append(dict.Values, value)
		return p.parseDictTail(dict)
	}
	if p.atComprehension() {
		cpos, isAsync := p.startComprehension()
		comp := &sableast.SetComp{Pos: pos, Elt: first, Generators: p.parseGenerators(cpos, isAsync)}
		p.expectClose(sablescanner.Rbrace)
		return comp
	}
	set := &sableast.Set{Pos: pos, Elts: []sableast.Expr{first}}
	for p.has(sablescanner.Comma) {
		if p.at(sablescanner.Rbrace) {
			break
		}
		if p.at(sablescanner.Pow) {
			p.syntaxError(p.word.Line, p.word.Column, "Expected ':' after dictionary key")
		}
		set.Elts = append(set.Elts, p.parseTest())
	}
	p.expectClose(sablescanner.Rbrace)
	return set
}

// parseDictTail parses the remaining key: value and **mapping entries
// of a dict literal. A nil key marks a ** expansion.
func (p *parser) parseDictTail(dict *sableast.Dict) *sableast.Dict {
	for p.has(sablescanner.Comma) {
		if p.at(sablescanner.Rbrace) {
			break
		}
		if p.has(sablescanner.Pow) {
			dict.Keys = append(dict.Keys, nil)
			dict.Values = append(dict.Values, p.parseTest())
			continue
		}
		dict.Keys = append(dict.Keys, p.parseTest())
		p.expect(sablescanner.Colon, ":")
		dict.Values = append(dict.Values, p.parseTest())
	}
	p.expectClose(sablescanner.Rbrace)
	return dict
}

func (p *parser) atComprehension() bool {
	if p.at(sablescanner.For) {
		return true
	}
	return p.at(sablescanner.Async) && p.peek().Token == sablescanner.For
}

// startComprehension consumes the "for" or "async for" that begins a
// comprehension clause and returns its position.
func (p *parser) startComprehension() (sableast.Position, bool) {
	pos := wordPos(p.word)
	if p.has(sablescanner.Async) {
		p.expect(sablescanner.For, "for")
		return pos, true
	}
	p.next()
	return pos, false
}

func (p *parser) parseGenerators(pos sableast.Position, isAsync bool) []*sableast.Comprehension {
	var gens []*sableast.Comprehension
	p.withContext(contextComprehension, func() {
		for {
			gen := &sableast.Comprehension{Pos: pos, IsAsync: isAsync}
			gen.Target = p.parseTargetList()
			p.expect(sablescanner.In, "in")
			gen.Iter = p.parseExpression()
			for p.has(sablescanner.If) {
				gen.Ifs = append(gen.Ifs, p.parseOrTest())
			}
			gens = append(gens, gen)
			if p.at(sablescanner.For) {
				pos = wordPos(p.word)
				p.next()
				isAsync = false
				continue
			}
			if p.at(sablescanner.Async) && p.peek().Token == sablescanner.For {
				pos = wordPos(p.word)
				p.next()
				p.next()
				isAsync = true
				continue
			}
			return
		}
	})
	return gens
}

func (p *parser) parseTarget() sableast.Expr {
	if !p.at(sablescanner.Ident, sablescanner.Mul, sablescanner.Lparen, sablescanner.Lbrack) {
		p.syntaxError(p.word.Line, p.word.Column, "Expected identifier or tuple in for loop target")
	}
	if p.at(sablescanner.Mul) {
		star := wordPos(p.word)
		p.next()
		return &sableast.Starred{Pos: star, Value: p.parseTarget(), Ctx: sableast.Store}
	}
	return p.storeContext(p.parseAtomExpr())
}

// parseTargetList parses the assignment target of a for loop or a
// comprehension clause. It never consumes the following "in".
func (p *parser) parseTargetList() sableast.Expr {
	first := p.parseTarget()
	if !p.at(sablescanner.Comma) {
		return first
	}
	tuple := &sableast.Tuple{Pos: first.Begin(), Elts: []sableast.Expr{first}, Ctx: sableast.Store}
	for p.has(sablescanner.Comma) {
		if p.at(sablescanner.In) {
			break
		}
		tuple.Elts = append(tuple.Elts, p.parseTarget())
	}
	return tuple
}

// parseExprList parses the comma separated targets of a del statement.
func (p *parser) parseExprList() []sableast.Expr {
	var exprs []sableast.Expr
	for {
		if p.at(sablescanner.Rparen, sablescanner.Rbrack, sablescanner.Rbrace, sablescanner.Assign,
			sablescanner.NewLine, sablescanner.EOF, sablescanner.Dedent) {
			return exprs
		}
		if p.at(sablescanner.Mul) {
			star := wordPos(p.word)
			p.next()
			exprs = append(exprs, &sableast.Starred{Pos: star, Value: p.parseOrTest(), Ctx: sableast.Load})
		} else {
			exprs = append(exprs, p.parseTest())
		}
		if !p.has(sablescanner.Comma) {
			return exprs
		}
		if p.at(sablescanner.Comma) {
			p.syntaxError(p.word.Line, p.word.Column, "Expected expression after comma")
		}
	}
}
