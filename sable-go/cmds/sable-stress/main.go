package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"math/rand"
	"os"
	"time"

	arg "github.com/alexflint/go-arg"
	"github.com/kr/pretty"
	"github.com/sable-lang/sable/sable-go/sableparser"
	"github.com/sable-lang/sable/sable-go/sablescanner"
	"github.com/sable-lang/sable/sable-golib/errors"
)

func fail(err error) {
	if err != nil {
		log.Fatalln(err)
	}
}

func main() {
	args := struct {
		File    string `arg:"positional" help:"source file to stress (stdin when omitted)"`
		Slices  int    `help:"number of random slices to cut in addition to every prefix"`
		Seed    int64  `help:"random seed (defaults to the current time)"`
		Parse   bool   `help:"also parse each cut with recovery enabled"`
		Verbose bool   `arg:"-v" help:"dump words for failing cuts and the final module"`
	}{
		Slices: 200,
	}
	arg.MustParse(&args)

	var src []byte
	if args.File == "" {
		buf, err := ioutil.ReadAll(os.Stdin)
		fail(err)
		src = buf
	} else {
		buf, err := ioutil.ReadFile(args.File)
		fail(errors.WrapfOrNil(err, "reading %s", args.File))
		src = buf
	}

	if args.Seed == 0 {
		args.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(args.Seed))
	fmt.Printf("stressing %d bytes, seed %d\n", len(src), args.Seed)

	var cuts, failures int
	stress := func(label string, buf []byte) {
		cuts++
		errs := stressCut(buf, args.Parse, args.Verbose)
		if len(errs) == 0 {
			return
		}
		failures++
		fmt.Printf("FAIL %s:\n", label)
		for _, e := range errs {
			fmt.Println("  ", e)
		}
	}

	// Every prefix exercises cuts that land mid-token, mid-rune, and
	// mid-suite; the random slices add cuts with mangled left edges.
	for i := 0; i <= len(src); i++ {
		stress(fmt.Sprintf("prefix [0:%d]", i), src[:i])
	}
	for i := 0; i < args.Slices; i++ {
		a := rng.Intn(len(src) + 1)
		b := rng.Intn(len(src) + 1)
		if a > b {
			a, b = b, a
		}
		stress(fmt.Sprintf("slice [%d:%d]", a, b), src[a:b])
	}

	if args.Verbose {
		mod, _ := sableparser.Parse(src, sableparser.DefaultOptions())
		fmt.Print(pretty.Sprintf("%# v\n", mod))
	}

	fmt.Printf("%d cuts, %d failures\n", cuts, failures)
	if failures > 0 {
		os.Exit(1)
	}
}

// stressCut lexes one cut of the input and checks the invariants the
// stream lexer promises no matter how mangled the input is. With parse
// set it then runs the parser with recovery enabled, which must return
// a module for any input.
func stressCut(src []byte, parse, verbose bool) []error {
	words, _ := sablescanner.Lex(src, sablescanner.DefaultOptions())
	errs := checkStream(words)
	if parse && len(errs) == 0 {
		mod, _ := sableparser.Parse(src, sableparser.DefaultOptions())
		if mod == nil {
			errs = append(errs, errors.Errorf("recovery parse returned no module"))
		}
	}
	if len(errs) > 0 && verbose {
		fmt.Print(pretty.Sprintf("%# v\n", words))
	}
	return errs
}

// checkStream verifies the word stream contract: the stream is non-empty
// and ends with its only EOF, positions never move backwards, indents
// and dedents balance, newlines are suppressed inside brackets, and
// line continuations never surface.
func checkStream(words []sablescanner.Word) []error {
	if len(words) == 0 {
		return []error{errors.Errorf("empty word stream")}
	}

	var errs []error
	if last := words[len(words)-1]; last.Token != sablescanner.EOF {
		errs = append(errs, errors.Errorf("stream ends with %s, not EOF", last.Token))
	}

	var eofs, indents, brackets int
	line, col := 0, 0
	for i, w := range words {
		if w.Line < line || (w.Line == line && w.Column < col) {
			errs = append(errs, errors.Errorf("position moved backwards at word %d: %s after %d:%d", i, w.String(), line, col))
		}
		line, col = w.Line, w.Column

		switch w.Token {
		case sablescanner.EOF:
			eofs++
			if i != len(words)-1 {
				errs = append(errs, errors.Errorf("EOF at word %d is not final", i))
			}
		case sablescanner.Indent:
			indents++
			if brackets > 0 {
				errs = append(errs, errors.Errorf("indent inside brackets at %d:%d", w.Line, w.Column))
			}
		case sablescanner.Dedent:
			indents--
			if indents < 0 {
				errs = append(errs, errors.Errorf("dedent without matching indent at %d:%d", w.Line, w.Column))
			}
			if brackets > 0 {
				errs = append(errs, errors.Errorf("dedent inside brackets at %d:%d", w.Line, w.Column))
			}
		case sablescanner.Lparen, sablescanner.Lbrack, sablescanner.Lbrace:
			brackets++
		case sablescanner.Rparen, sablescanner.Rbrack, sablescanner.Rbrace:
			// stray closers clamp at zero, matching the lexer
			if brackets > 0 {
				brackets--
			}
		case sablescanner.Class, sablescanner.Def, sablescanner.Del, sablescanner.Pass,
			sablescanner.With, sablescanner.Raise, sablescanner.Import, sablescanner.Break,
			sablescanner.Continue, sablescanner.Assert, sablescanner.Except, sablescanner.Finally,
			sablescanner.Global, sablescanner.Try, sablescanner.While, sablescanner.NonLocal:
			// the lexer treats these keywords as proof of an unclosed
			// bracket and drops back to depth zero
			brackets = 0
		case sablescanner.NewLine:
			if brackets > 0 {
				errs = append(errs, errors.Errorf("newline inside brackets at %d:%d", w.Line, w.Column))
			}
		case sablescanner.LineContinuation:
			errs = append(errs, errors.Errorf("line continuation surfaced at %d:%d", w.Line, w.Column))
		}
	}
	if eofs != 1 {
		errs = append(errs, errors.Errorf("stream holds %d EOF words", eofs))
	}
	if indents != 0 {
		errs = append(errs, errors.Errorf("stream ends %d indents deep", indents))
	}
	return errs
}
