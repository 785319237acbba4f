/*
File   : lox-go/cmd/loxgo/main.go
Package: main

The interpreter's command-line front end. Adapted from the teacher's
main/main.go file-execution path: read a single source file, run it
through the scan -> parse -> resolve -> interpret pipeline, and report
whatever failed through diagnostics. Unlike the teacher, this dialect has
no REPL and no server mode (spec.md §1 rules both out) — `prog <path>` is
the entire surface, per spec.md §6.
*/
package main

import (
	"fmt"
	"os"

	"github.com/akashmaji946/lox-go/config"
	"github.com/akashmaji946/lox-go/diagnostics"
	"github.com/akashmaji946/lox-go/interpreter"
	"github.com/akashmaji946/lox-go/parser"
	"github.com/akashmaji946/lox-go/resolver"
	"github.com/akashmaji946/lox-go/scanner"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "usage: loxgo <path>")
		return 1
	}

	cfg, err := config.Load()
	printer := diagnostics.New(stderr, cfg.Color)
	if err != nil {
		return printer.Report(err)
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "could not read %q: %v\n", args[0], err)
		return 1
	}

	return printer.Report(execute(string(source), stdout, printer, cfg.TraceResolver))
}

// execute runs the full pipeline over one source file. It returns the
// first phase's error, or nil if every phase and the program itself
// succeeded.
func execute(source string, stdout *os.File, printer *diagnostics.Printer, traceResolver bool) error {
	tokens, err := scanner.ScanTokens(source)
	if err != nil {
		return err
	}

	stmts, err := parser.Parse(tokens)
	if err != nil {
		return err
	}

	r := resolver.New()
	if traceResolver {
		r.SetTrace(func(closedScopeVars []string) {
			printer.Trace("resolver: scope closed, vars=%v", closedScopeVars)
		})
	}
	depths, err := r.ResolveProgram(stmts)
	if err != nil {
		return err
	}

	interp := interpreter.New(stdout, depths)
	return interp.Interpret(stmts)
}
