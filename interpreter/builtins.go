/*
File   : lox-go/interpreter/builtins.go
Package: interpreter

registerBuiltins seeds the globals frame with the single native function
spec.md §3 names: clock. This plays the same role the teacher's
std.Register (std/std.go) plays for go-mix's builtin table, scaled down to
the one function this dialect actually exposes.
*/
package interpreter

import (
	"time"

	"github.com/akashmaji946/lox-go/environment"
)

func registerBuiltins(globals *environment.Env) {
	globals.Define("clock", &NativeFunction{
		Name: "clock",
		Ar:   0,
		Fn: func(i *Interpreter, args []Value) (Value, error) {
			return Number(time.Now().UnixNano()) / Number(time.Second), nil
		},
	})
}
