/*
File   : lox-go/diagnostics/diagnostics.go
Package: diagnostics

Package diagnostics formats the five error categories spec.md §7 names
(LexError, ParseError, ResolutionError, RuntimeError, and an internal
catch-all) for terminal output, colored the way the teacher's main package
colors REPL/file-execution output (see main/main.go's redColor/yellowColor/
cyanColor) but driven by github.com/mattn/go-isatty instead of always-on,
so piped output (CI logs, `prog file.lox > out.txt`) degrades to plain text
automatically.
*/
package diagnostics

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/akashmaji946/lox-go/interpreter"
	"github.com/akashmaji946/lox-go/parser"
	"github.com/akashmaji946/lox-go/resolver"
	"github.com/akashmaji946/lox-go/scanner"
)

// Printer writes categorized, optionally colored diagnostics to an error
// stream.
type Printer struct {
	out  io.Writer
	err  *color.Color
	warn *color.Color
}

// New builds a Printer writing to out. enableColor, when nil, is decided by
// auto-detecting whether out is a terminal; pass a non-nil bool to force
// color on or off (the `color` config key in SPEC_FULL.md §2).
func New(out io.Writer, enableColor *bool) *Printer {
	useColor := autoDetectColor(out)
	if enableColor != nil {
		useColor = *enableColor
	}

	errColor := color.New(color.FgRed, color.Bold)
	warnColor := color.New(color.FgYellow)
	if !useColor {
		errColor.DisableColor()
		warnColor.DisableColor()
	}
	return &Printer{out: out, err: errColor, warn: warnColor}
}

func autoDetectColor(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Report prints err in the category-prefixed form a developer reading
// terminal output expects, and returns the process exit code spec.md §6
// assigns to that category: 0 only ever for a nil error, non-zero for every
// error kind alike (the spec draws no distinction between exit codes per
// phase — only "zero on success, non-zero otherwise").
func (p *Printer) Report(err error) int {
	if err == nil {
		return 0
	}

	switch e := err.(type) {
	case *scanner.Error:
		p.err.Fprintf(p.out, "[line %d] LexError: %s\n", e.Line, e.Message)
	case *parser.Error:
		p.err.Fprintf(p.out, "[line %d] ParseError: %s\n", e.Line, e.Message)
	case *resolver.Error:
		p.err.Fprintf(p.out, "[line %d] ResolutionError: %s\n", e.Line, e.Message)
	case *interpreter.RuntimeError:
		p.err.Fprintf(p.out, "[line %d] RuntimeError (%s): %s\n", e.Line, e.Kind, e.Message)
	default:
		// A *multierror.Error from the resolver, or anything else that
		// doesn't match a single known phase type, is printed as-is: its
		// own Error() already lines up one diagnostic per line.
		p.err.Fprintln(p.out, err.Error())
	}
	return 1
}

// Trace prints a one-line diagnostic note, used by the trace_resolver
// config toggle (SPEC_FULL.md §2) to report which variables left scope as
// each block or function body resolves. Never affects exit code.
func (p *Printer) Trace(format string, args ...any) {
	p.warn.Fprintf(p.out, format+"\n", args...)
}
