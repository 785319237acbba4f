/*
File   : lox-go/interpreter/function.go
Package: interpreter

Function is the Language's closure representation, adapted from the
teacher's function.Function (function/function.go): it captures its
parameter list, body, and the environment frame active at its definition
site, so a function returned from an enclosing call still sees that call's
locals after the call has returned — spec.md §8's lexical-scoping property.
*/
package interpreter

import (
	"fmt"

	"github.com/akashmaji946/lox-go/ast"
	"github.com/akashmaji946/lox-go/environment"
	"github.com/akashmaji946/lox-go/token"
)

// Function is a user-defined closure, named (FuncStmt) or anonymous
// (FuncExpr). Name is empty for an anonymous function.
type Function struct {
	Name    string
	Params  []token.Token
	Body    []ast.Stmt
	Closure *environment.Env
}

func (f *Function) Kind() Kind { return KindCallable }

// Display matches spec.md §4.5's three display forms for callables; clock
// and other native functions use NativeFunction.Display instead.
func (f *Function) Display() string {
	if f.Name == "" {
		return "<anonymous fun>"
	}
	return fmt.Sprintf("<fun %s>", f.Name)
}

func (f *Function) Arity() int { return len(f.Params) }

// Call creates a fresh frame enclosed by the closure environment, binds
// each parameter, and executes the body via ExecuteBlock so the
// save/restore-env discipline is identical to a plain block's. A
// *returnSignal unwind from the body becomes this call's result; falling off the end of
// the body yields Nil, per spec.md §4.5.
func (f *Function) Call(i *Interpreter, args []Value) (Value, error) {
	callEnv := environment.New(f.Closure)
	for idx, param := range f.Params {
		callEnv.Define(param.Lexeme, args[idx])
	}

	err := i.ExecuteBlock(f.Body, callEnv)
	if err != nil {
		if rs, ok := err.(*returnSignal); ok {
			return rs.value, nil
		}
		return nil, err
	}
	return Nil{}, nil
}

// NativeFunction wraps a host-provided Go function (e.g. clock) as a
// Callable, the same role the teacher's std.Builtin plays for go-mix's
// builtin table (objects/builtins.go).
type NativeFunction struct {
	Name string
	Ar   int
	Fn   func(i *Interpreter, args []Value) (Value, error)
}

func (n *NativeFunction) Kind() Kind { return KindCallable }
func (n *NativeFunction) Display() string {
	return fmt.Sprintf("<native fun %s>", n.Name)
}
func (n *NativeFunction) Arity() int { return n.Ar }
func (n *NativeFunction) Call(i *Interpreter, args []Value) (Value, error) {
	return n.Fn(i, args)
}

// returnSignal is the control-flow value threaded through statement
// execution to implement `return` (spec.md §9, design note "Return as
// control flow", option (a) — a dedicated unwinding result type). It is
// never surfaced to a caller outside Function.Call; ExecuteBlock propagates
// it like any other error specifically so that its own defer-based env
// restore runs on the way out, matching the "restore on every exit path"
// contract.
type returnSignal struct {
	value Value
}

func (r *returnSignal) Error() string {
	return "internal: uncaught function return"
}
