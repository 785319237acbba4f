/*
File   : lox-go/interpreter/interpreter.go
Package: interpreter

Interpreter is the tree-walking evaluator: it implements both
ast.ExprVisitor and ast.StmtVisitor, the same double-dispatch shape the
teacher's eval.Evaluator uses over parser's Pratt AST (see eval/eval.go),
generalized here to the recursive-descent grammar in the ast package and
to a depth map produced by a prior resolver pass instead of re-deriving
scope at every lookup.
*/
package interpreter

import (
	"fmt"
	"io"

	"github.com/akashmaji946/lox-go/ast"
	"github.com/akashmaji946/lox-go/environment"
	"github.com/akashmaji946/lox-go/resolver"
	"github.com/akashmaji946/lox-go/token"
)

// ErrorKind tags the category of a RuntimeError, per spec.md §7.
type ErrorKind string

const (
	UndefinedVariable ErrorKind = "UndefinedVariable"
	TypeMismatch      ErrorKind = "TypeMismatch"
	NotCallable       ErrorKind = "NotCallable"
	Arity             ErrorKind = "Arity"
)

// RuntimeError is the fatal error surfaced to a caller of Interpret. It
// carries the failing operation's source line so diagnostics can report it
// the way scanner.Error/parser.Error do for their own phases.
type RuntimeError struct {
	Kind    ErrorKind
	Line    int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] RuntimeError: %s", e.Line, e.Message)
}

func runtimeErr(line int, kind ErrorKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Line: line, Message: fmt.Sprintf(format, args...)}
}

// Interpreter holds the two environment references spec.md §4.5 calls for:
// globals, a fixed frame that outlives any call, and env, the frame active
// at the current point of execution. Depths is the resolver's static
// variable-depth map, consulted before falling back to a global lookup.
type Interpreter struct {
	globals *environment.Env
	env     *environment.Env
	depths  resolver.Depths
	out     io.Writer
}

// New builds an Interpreter whose `print` statements write to out and whose
// globals frame is pre-populated with the native functions from
// builtins.go.
func New(out io.Writer, depths resolver.Depths) *Interpreter {
	globals := environment.New(nil)
	i := &Interpreter{globals: globals, env: globals, depths: depths, out: out}
	registerBuiltins(globals)
	return i
}

// Interpret runs every top-level statement in program order, stopping at
// the first RuntimeError (spec.md §7: unlike resolution errors, runtime
// errors are not batched — execution has side effects that a "keep going"
// policy could not undo).
func (i *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := i.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execute(s ast.Stmt) error {
	return s.Accept(i)
}

func (i *Interpreter) evaluate(e ast.Expr) (Value, error) {
	v, err := e.Accept(i)
	if err != nil {
		return nil, err
	}
	return v.(Value), nil
}

// ExecuteBlock runs stmts against env, restoring the interpreter's previous
// environment on every exit path — normal completion, a RuntimeError, or a
// *returnSignal unwind alike. This mirrors plox's executeBlock try/finally
// exactly (spec.md §4.5, "Environment save/restore").
func (i *Interpreter) ExecuteBlock(stmts []ast.Stmt, env *environment.Env) (err error) {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, s := range stmts {
		if err = i.execute(s); err != nil {
			return err
		}
	}
	return nil
}

// --- ast.StmtVisitor ---

func (i *Interpreter) VisitExprStmt(s *ast.ExprStmt) error {
	_, err := i.evaluate(s.Expr)
	return err
}

func (i *Interpreter) VisitPrint(s *ast.Print) error {
	v, err := i.evaluate(s.Expr)
	if err != nil {
		return err
	}
	fmt.Fprintln(i.out, v.Display())
	return nil
}

func (i *Interpreter) VisitVar(s *ast.Var) error {
	var value Value = Nil{}
	if s.Init != nil {
		v, err := i.evaluate(s.Init)
		if err != nil {
			return err
		}
		value = v
	}
	i.env.Define(s.Name.Lexeme, value)
	return nil
}

func (i *Interpreter) VisitBlock(s *ast.Block) error {
	return i.ExecuteBlock(s.Stmts, environment.New(i.env))
}

func (i *Interpreter) VisitIf(s *ast.If) error {
	cond, err := i.evaluate(s.Cond)
	if err != nil {
		return err
	}
	if isTruthy(cond) {
		return i.execute(s.Then)
	}
	if s.Else != nil {
		return i.execute(s.Else)
	}
	return nil
}

func (i *Interpreter) VisitWhile(s *ast.While) error {
	for {
		cond, err := i.evaluate(s.Cond)
		if err != nil {
			return err
		}
		if !isTruthy(cond) {
			return nil
		}
		if err := i.execute(s.Body); err != nil {
			return err
		}
	}
}

func (i *Interpreter) VisitFuncStmt(s *ast.FuncStmt) error {
	fn := &Function{Name: s.Name.Lexeme, Params: s.Params, Body: s.Body, Closure: i.env}
	i.env.Define(s.Name.Lexeme, fn)
	return nil
}

func (i *Interpreter) VisitReturn(s *ast.Return) error {
	var value Value = Nil{}
	if s.Value != nil {
		v, err := i.evaluate(s.Value)
		if err != nil {
			return err
		}
		value = v
	}
	return &returnSignal{value: value}
}

// --- ast.ExprVisitor ---

func (i *Interpreter) VisitAssign(e *ast.Assign) (any, error) {
	value, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if depth, ok := i.depths[e.ID()]; ok {
		i.env.AssignAt(depth, e.Name.Lexeme, value)
		return value, nil
	}
	if err := i.globals.Assign(e.Name.Lexeme, value); err != nil {
		return nil, runtimeErr(e.Name.Line, UndefinedVariable, "%s", err.Error())
	}
	return value, nil
}

func (i *Interpreter) VisitLogical(e *ast.Logical) (any, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	// Short-circuit on the operand's own value, not a coerced boolean
	// (spec.md §4.5: `1 or 2` evaluates to 1, not true).
	if e.Op.Kind == token.OR {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}
	return i.evaluate(e.Right)
}

func (i *Interpreter) VisitBinary(e *ast.Binary) (any, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	line := e.Op.Line

	switch e.Op.Kind {
	case token.MINUS:
		l, r, err := numberOperands(line, left, right)
		if err != nil {
			return nil, err
		}
		return l - r, nil
	case token.SLASH:
		l, r, err := numberOperands(line, left, right)
		if err != nil {
			return nil, err
		}
		return l / r, nil
	case token.STAR:
		l, r, err := numberOperands(line, left, right)
		if err != nil {
			return nil, err
		}
		return l * r, nil
	case token.PLUS:
		return i.evaluatePlus(line, left, right)
	case token.GREATER:
		l, r, err := numberOperands(line, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(l > r), nil
	case token.GREATER_EQUAL:
		l, r, err := numberOperands(line, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(l >= r), nil
	case token.LESS:
		l, r, err := numberOperands(line, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(l < r), nil
	case token.LESS_EQUAL:
		l, r, err := numberOperands(line, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(l <= r), nil
	case token.BANG_EQUAL:
		return Bool(!valuesEqual(left, right)), nil
	case token.EQUAL_EQUAL:
		return Bool(valuesEqual(left, right)), nil
	}
	return nil, runtimeErr(line, TypeMismatch, "unknown binary operator %q", e.Op.Lexeme)
}

// evaluatePlus implements the dual meaning of `+`: numeric addition when
// both operands are numbers, concatenation when both are strings. Mixed
// operand kinds are a TypeMismatch (spec.md §4.5).
func (i *Interpreter) evaluatePlus(line int, left, right Value) (Value, error) {
	if l, ok := left.(Number); ok {
		if r, ok := right.(Number); ok {
			return l + r, nil
		}
	}
	if l, ok := left.(Str); ok {
		if r, ok := right.(Str); ok {
			return l + r, nil
		}
	}
	return nil, runtimeErr(line, TypeMismatch, "operands must be two numbers or two strings")
}

func numberOperands(line int, left, right Value) (Number, Number, error) {
	l, ok := left.(Number)
	if !ok {
		return 0, 0, runtimeErr(line, TypeMismatch, "operand must be a number")
	}
	r, ok := right.(Number)
	if !ok {
		return 0, 0, runtimeErr(line, TypeMismatch, "operand must be a number")
	}
	return l, r, nil
}

func (i *Interpreter) VisitUnary(e *ast.Unary) (any, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Op.Kind {
	case token.MINUS:
		n, ok := right.(Number)
		if !ok {
			return nil, runtimeErr(e.Op.Line, TypeMismatch, "operand must be a number")
		}
		return -n, nil
	case token.BANG:
		return Bool(!isTruthy(right)), nil
	}
	return nil, runtimeErr(e.Op.Line, TypeMismatch, "unknown unary operator %q", e.Op.Lexeme)
}

func (i *Interpreter) VisitCall(e *ast.Call) (any, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}
	args := make([]Value, len(e.Args))
	for idx, a := range e.Args {
		v, err := i.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, runtimeErr(e.Paren.Line, NotCallable, "can only call functions")
	}
	if len(args) != callable.Arity() {
		return nil, runtimeErr(e.Paren.Line, Arity, "expected %d arguments but got %d", callable.Arity(), len(args))
	}
	return callable.Call(i, args)
}

func (i *Interpreter) VisitGrouping(e *ast.Grouping) (any, error) {
	return i.evaluate(e.Inner)
}

func (i *Interpreter) VisitFuncExpr(e *ast.FuncExpr) (any, error) {
	return &Function{Params: e.Params, Body: e.Body, Closure: i.env}, nil
}

func (i *Interpreter) VisitLiteral(e *ast.Literal) (any, error) {
	switch e.Value.Kind {
	case ast.NilLiteral:
		return Nil{}, nil
	case ast.BoolLiteral:
		return Bool(e.Value.Bool), nil
	case ast.NumberLiteral:
		return Number(e.Value.Number), nil
	case ast.StringLiteral:
		return Str(e.Value.Str), nil
	}
	return Nil{}, nil
}

func (i *Interpreter) VisitVariable(e *ast.Variable) (any, error) {
	if depth, ok := i.depths[e.ID()]; ok {
		v, err := i.env.GetAt(depth, e.Name.Lexeme)
		if err != nil {
			return nil, runtimeErr(e.Name.Line, UndefinedVariable, "%s", err.Error())
		}
		return v, nil
	}
	v, err := i.globals.Get(e.Name.Lexeme)
	if err != nil {
		return nil, runtimeErr(e.Name.Line, UndefinedVariable, "%s", err.Error())
	}
	return v, nil
}
