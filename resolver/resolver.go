/*
File   : lox-go/resolver/resolver.go
Package: resolver

Package resolver is the static pass between parsing and interpretation. It
walks the AST produced by parser.Parse and, for every Variable and Assign
node, records how many enclosing lexical scopes to skip to find that name's
binding (spec.md §4.4). The interpreter consumes this depth map at variable
lookup/assignment time instead of re-deriving scope from the runtime
Environment chain.

This is a direct structural port of plox/src/resolver.py, which the spec was
distilled from: the scope stack, the declare/define split (a name mapped to
false means "declared but its initializer hasn't finished resolving yet"),
and resolveLocal's innermost-to-outermost walk are all unchanged in meaning.
Go has no exceptions, so where the original `raise`s on the first problem,
this port appends a *Error to a github.com/hashicorp/go-multierror.Error and
keeps walking the rest of the program — see SPEC_FULL.md §2 for why: a
single batch of diagnostics is more useful than stopping at the first
declare-time mistake, while the run as a whole still fails exactly when
spec.md §7 says a ResolutionError is fatal.
*/
package resolver

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/akashmaji946/lox-go/ast"
	"github.com/akashmaji946/lox-go/token"
)

// Error is a ResolutionError: `return` outside a function, a variable read
// in its own initializer, or a duplicate declaration in a local scope.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] ResolutionError: %s", e.Line, e.Message)
}

type funcType int

const (
	funcNone funcType = iota
	funcFunction
)

// Depths is the resolver's output: for every Variable/Assign node ID that
// was found in an enclosing scope, the number of hops out from the
// innermost scope active at that use. Absence of an entry means "resolve in
// globals" (spec.md §3, "Resolver depth map").
type Depths map[ast.ID]int

// Resolver performs the single static pass. It is used once per program: a
// fresh Resolver should be constructed for each Resolve call.
type Resolver struct {
	scopes          []map[string]bool
	currentFunction funcType
	depths          Depths
	errs            *multierror.Error

	// traceScopes, when set by the driver (SPEC_FULL.md §2's
	// trace_resolver config toggle), makes endScope log a one-line note
	// naming the scope it closed. Diagnostic-only: it never changes
	// resolution results.
	traceScopes func(closedScopeVars []string)
}

// New constructs a Resolver ready to resolve one program.
func New() *Resolver {
	return &Resolver{depths: make(Depths)}
}

// SetTrace installs an optional diagnostic callback invoked each time a
// block or function scope closes, naming the variables declared in it.
func (r *Resolver) SetTrace(fn func(closedScopeVars []string)) {
	r.traceScopes = fn
}

// Resolve walks every top-level statement and returns the accumulated depth
// map. If any ResolutionError was recorded, it is returned as a non-nil
// error (a *multierror.Error when more than one occurred); the depth map is
// still returned for every node that was resolved, but callers must
// treat a non-nil error as fatal per spec.md §7 and not interpret.
func Resolve(stmts []ast.Stmt) (Depths, error) {
	r := New()
	return r.ResolveProgram(stmts)
}

// ResolveProgram is the instance form of Resolve, letting callers install a
// trace hook first via SetTrace.
func (r *Resolver) ResolveProgram(stmts []ast.Stmt) (Depths, error) {
	r.resolveStmts(stmts)
	if r.errs != nil && len(r.errs.Errors) == 1 {
		return r.depths, r.errs.Errors[0]
	}
	return r.depths, r.errs.ErrorOrNil()
}

func (r *Resolver) fail(line int, format string, args ...any) {
	r.errs = multierror.Append(r.errs, &Error{Line: line, Message: fmt.Sprintf(format, args...)})
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	// Accept returns an error only to satisfy ast.StmtVisitor's signature;
	// the resolver never fails a visit outright, it records into r.errs and
	// keeps going, so the return value here is always nil.
	_ = s.Accept(r)
}

func (r *Resolver) resolveExpr(e ast.Expr) {
	_, _ = e.Accept(r)
}

// --- scope stack ---

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	top := r.scopes[len(r.scopes)-1]
	if r.traceScopes != nil {
		names := make([]string, 0, len(top))
		for name := range top {
			names = append(names, name)
		}
		r.traceScopes(names)
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare marks name as present but not yet initialized in the innermost
// scope. Redeclaring a name already present in that same scope is an error
// — shadowing an outer scope's binding is not.
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.fail(name.Line, "Already a variable named '%s' in this scope.", name.Lexeme)
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal walks scopes from innermost outward and records the hop
// distance on expr's node ID the first time name is found. No entry is
// recorded if name is never found locally — the interpreter resolves it in
// globals instead.
func (r *Resolver) resolveLocal(id ast.ID, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.depths[id] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) resolveFunction(params []token.Token, body []ast.Stmt, typ funcType) {
	enclosing := r.currentFunction
	r.currentFunction = typ

	r.beginScope()
	for _, p := range params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(body)
	r.endScope()

	r.currentFunction = enclosing
}

// --- ast.StmtVisitor ---

func (r *Resolver) VisitExprStmt(s *ast.ExprStmt) error {
	r.resolveExpr(s.Expr)
	return nil
}

func (r *Resolver) VisitPrint(s *ast.Print) error {
	r.resolveExpr(s.Expr)
	return nil
}

func (r *Resolver) VisitVar(s *ast.Var) error {
	r.declare(s.Name)
	if s.Init != nil {
		r.resolveExpr(s.Init)
	}
	r.define(s.Name)
	return nil
}

func (r *Resolver) VisitBlock(s *ast.Block) error {
	r.beginScope()
	r.resolveStmts(s.Stmts)
	r.endScope()
	return nil
}

func (r *Resolver) VisitIf(s *ast.If) error {
	r.resolveExpr(s.Cond)
	r.resolveStmt(s.Then)
	if s.Else != nil {
		r.resolveStmt(s.Else)
	}
	return nil
}

func (r *Resolver) VisitWhile(s *ast.While) error {
	r.resolveExpr(s.Cond)
	r.resolveStmt(s.Body)
	return nil
}

func (r *Resolver) VisitFuncStmt(s *ast.FuncStmt) error {
	// Declared and defined before the body is resolved so the function can
	// recurse through its own name.
	r.declare(s.Name)
	r.define(s.Name)
	r.resolveFunction(s.Params, s.Body, funcFunction)
	return nil
}

func (r *Resolver) VisitReturn(s *ast.Return) error {
	if r.currentFunction == funcNone {
		r.fail(s.Keyword.Line, "Can't return from top-level code.")
	}
	if s.Value != nil {
		r.resolveExpr(s.Value)
	}
	return nil
}

// --- ast.ExprVisitor ---

func (r *Resolver) VisitAssign(e *ast.Assign) (any, error) {
	r.resolveExpr(e.Value)
	r.resolveLocal(e.ID(), e.Name.Lexeme)
	return nil, nil
}

func (r *Resolver) VisitLogical(e *ast.Logical) (any, error) {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil, nil
}

func (r *Resolver) VisitBinary(e *ast.Binary) (any, error) {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil, nil
}

func (r *Resolver) VisitUnary(e *ast.Unary) (any, error) {
	r.resolveExpr(e.Right)
	return nil, nil
}

func (r *Resolver) VisitCall(e *ast.Call) (any, error) {
	r.resolveExpr(e.Callee)
	for _, arg := range e.Args {
		r.resolveExpr(arg)
	}
	return nil, nil
}

func (r *Resolver) VisitGrouping(e *ast.Grouping) (any, error) {
	r.resolveExpr(e.Inner)
	return nil, nil
}

func (r *Resolver) VisitFuncExpr(e *ast.FuncExpr) (any, error) {
	r.resolveFunction(e.Params, e.Body, funcFunction)
	return nil, nil
}

func (r *Resolver) VisitLiteral(e *ast.Literal) (any, error) {
	return nil, nil
}

func (r *Resolver) VisitVariable(e *ast.Variable) (any, error) {
	if len(r.scopes) != 0 {
		if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
			r.fail(e.Name.Line, "Can't read local variable '%s' in its own initializer.", e.Name.Lexeme)
		}
	}
	r.resolveLocal(e.ID(), e.Name.Lexeme)
	return nil, nil
}
