package sableparser

import (
	"fmt"

	"github.com/sable-lang/sable/sable-go/sablescanner"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// UnexpectedTokenError reports a token that does not fit the grammar at the
// point it appeared. Expected is a human-readable description of what the
// parser was looking for ("expression", ":", "function name", ...); Found is
// the offending word. Suggestion is an optional remediation hint.
type UnexpectedTokenError struct {
	Expected   string
	Found      sablescanner.Word
	Suggestion string
}

// Error satisfies the error interface.
func (e UnexpectedTokenError) Error() string {
	msg := fmt.Sprintf("Line %d, column %d: Expected '%s', but found '%s'",
		e.Found.Line, e.Found.Column, e.Expected, foundString(e.Found))
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" - Suggestion: %s", e.Suggestion)
	}
	return msg
}

// Pos returns the 1-based source position of the offending token.
func (e UnexpectedTokenError) Pos() (line, col int) {
	return e.Found.Line, e.Found.Column
}

// InvalidSyntaxError reports a construct that is recognizable but ill-formed,
// such as an assignment to a literal or a variadic parameter with a default.
type InvalidSyntaxError struct {
	Msg        string
	Line       int
	Column     int
	Suggestion string
}

// Error satisfies the error interface.
func (e InvalidSyntaxError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("Line %d, column %d: %s - Suggestion: %s", e.Line, e.Column, e.Msg, e.Suggestion)
	}
	return fmt.Sprintf("Line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Pos returns the 1-based source position of the fault.
func (e InvalidSyntaxError) Pos() (line, col int) {
	return e.Line, e.Column
}

// EOFError reports that the source ended while the parser still required
// input, e.g. an unterminated parenthesis or a suite header with no body.
type EOFError struct {
	Expected string
	Line     int
	Column   int
}

// Error satisfies the error interface.
func (e EOFError) Error() string {
	return fmt.Sprintf("Line %d, column %d: Unexpected end of file, expected '%s'", e.Line, e.Column, e.Expected)
}

// Pos returns the 1-based source position at which input ran out.
func (e EOFError) Pos() (line, col int) {
	return e.Line, e.Column
}

// A Warning describes source that parses but is suspect, such as a
// non-default parameter after one with a default. Warnings never fail a
// parse; Options.WarningHandler receives them as they are found.
type Warning struct {
	Msg    string
	Line   int
	Column int
}

func (w Warning) String() string {
	return fmt.Sprintf("Line %d, column %d: warning: %s", w.Line, w.Column, w.Msg)
}

// foundString renders a word for inclusion in an error message: identifiers
// show their name, everything else its token class or surface text.
func foundString(w sablescanner.Word) string {
	if w.Token == sablescanner.Ident {
		return w.Literal
	}
	return w.Token.String()
}

// suggestKeyword returns the keyword closest to ident by edit distance, or
// the empty string when nothing is near enough to be a plausible typo. Short
// identifiers only match at distance one so that common names do not trip
// spurious hints.
func suggestKeyword(ident string) string {
	if len(ident) < 3 {
		return ""
	}
	best, bestDist := "", -1
	for kw := range sablescanner.Keywords {
		if len(kw) < 3 {
			continue
		}
		d := levenshtein.DistanceForStrings([]rune(ident), []rune(kw), levenshtein.DefaultOptions)
		if bestDist == -1 || d < bestDist || (d == bestDist && kw < best) {
			best, bestDist = kw, d
		}
	}
	max := 2
	if len(ident) <= 4 {
		max = 1
	}
	if bestDist == -1 || bestDist > max {
		return ""
	}
	return best
}
