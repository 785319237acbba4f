package parser

import (
	"testing"

	"github.com/akashmaji946/lox-go/ast"
	"github.com/akashmaji946/lox-go/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	toks, err := scanner.ScanTokens(src)
	require.NoError(t, err)
	stmts, err := Parse(toks)
	require.NoError(t, err)
	return stmts
}

func TestParse_VarDeclWithInitializer(t *testing.T) {
	stmts := parseSource(t, `var a = 1;`)
	require.Len(t, stmts, 1)
	v, ok := stmts[0].(*ast.Var)
	require.True(t, ok)
	assert.Equal(t, "a", v.Name.Lexeme)
	require.NotNil(t, v.Init)
	lit, ok := v.Init.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, 1.0, lit.Value.Number)
}

func TestParse_VarDeclWithoutInitializer(t *testing.T) {
	stmts := parseSource(t, `var a;`)
	require.Len(t, stmts, 1)
	v := stmts[0].(*ast.Var)
	assert.Nil(t, v.Init)
}

func TestParse_PrintAndExprStmt(t *testing.T) {
	stmts := parseSource(t, `print 1 + 2; 3 * 4;`)
	require.Len(t, stmts, 2)
	_, ok := stmts[0].(*ast.Print)
	assert.True(t, ok)
	_, ok = stmts[1].(*ast.ExprStmt)
	assert.True(t, ok)
}

func TestParse_ArithmeticPrecedence(t *testing.T) {
	// "1 + 2 * 3" per spec.md §9's preserved precedence-table swap: the
	// *, / tier still binds tighter than +, - regardless of rule naming.
	stmts := parseSource(t, `print 1 + 2 * 3;`)
	printStmt := stmts[0].(*ast.Print)
	bin, ok := printStmt.Expr.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, 1.0, bin.Left.(*ast.Literal).Value.Number)
	rightBin := bin.Right.(*ast.Binary)
	assert.Equal(t, 2.0, rightBin.Left.(*ast.Literal).Value.Number)
	assert.Equal(t, 3.0, rightBin.Right.(*ast.Literal).Value.Number)
}

func TestParse_BlockAndIfElse(t *testing.T) {
	stmts := parseSource(t, `if (true) { print 1; } else { print 2; }`)
	ifStmt := stmts[0].(*ast.If)
	_, ok := ifStmt.Then.(*ast.Block)
	assert.True(t, ok)
	require.NotNil(t, ifStmt.Else)
	_, ok = ifStmt.Else.(*ast.Block)
	assert.True(t, ok)
}

func TestParse_WhileLoop(t *testing.T) {
	stmts := parseSource(t, `while (x < 3) print x;`)
	w := stmts[0].(*ast.While)
	require.NotNil(t, w.Cond)
	require.NotNil(t, w.Body)
}

func TestParse_ForDesugarsToBlockWhile(t *testing.T) {
	stmts := parseSource(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	require.Len(t, stmts, 1)
	outer, ok := stmts[0].(*ast.Block)
	require.True(t, ok)
	require.Len(t, outer.Stmts, 2)
	_, ok = outer.Stmts[0].(*ast.Var)
	assert.True(t, ok)
	whileStmt, ok := outer.Stmts[1].(*ast.While)
	require.True(t, ok)
	body, ok := whileStmt.Body.(*ast.Block)
	require.True(t, ok)
	require.Len(t, body.Stmts, 2)
	_, ok = body.Stmts[1].(*ast.ExprStmt)
	assert.True(t, ok)
}

func TestParse_ForWithoutClausesDefaultsToTrueCondition(t *testing.T) {
	stmts := parseSource(t, `for (;;) print 1;`)
	whileStmt := stmts[0].(*ast.While)
	lit, ok := whileStmt.Cond.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, ast.BoolLiteral, lit.Value.Kind)
	assert.True(t, lit.Value.Bool)
}

func TestParse_FunDeclAndReturn(t *testing.T) {
	stmts := parseSource(t, `fun add(a, b) { return a + b; }`)
	fn := stmts[0].(*ast.FuncStmt)
	assert.Equal(t, "add", fn.Name.Lexeme)
	require.Len(t, fn.Params, 2)
	require.Len(t, fn.Body, 1)
	_, ok := fn.Body[0].(*ast.Return)
	assert.True(t, ok)
}

func TestParse_AnonymousFuncExprAsValue(t *testing.T) {
	stmts := parseSource(t, `var f = fun (x) { return x; };`)
	v := stmts[0].(*ast.Var)
	_, ok := v.Init.(*ast.FuncExpr)
	assert.True(t, ok)
}

func TestParse_CallExpression(t *testing.T) {
	stmts := parseSource(t, `foo(1, 2, 3);`)
	es := stmts[0].(*ast.ExprStmt)
	call, ok := es.Expr.(*ast.Call)
	require.True(t, ok)
	assert.Len(t, call.Args, 3)
}

func TestParse_AssignmentToVariableIsLegal(t *testing.T) {
	stmts := parseSource(t, `a = 5;`)
	es := stmts[0].(*ast.ExprStmt)
	assign, ok := es.Expr.(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "a", assign.Name.Lexeme)
}

func TestParse_InvalidAssignmentTargetFails(t *testing.T) {
	toks, err := scanner.ScanTokens(`1 = 2;`)
	require.NoError(t, err)
	_, err = Parse(toks)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid assignment target")
}

func TestParse_LogicalOrSingleLevel(t *testing.T) {
	stmts := parseSource(t, `print a or b;`)
	printStmt := stmts[0].(*ast.Print)
	logical, ok := printStmt.Expr.(*ast.Logical)
	require.True(t, ok)
	_, ok = logical.Left.(*ast.Variable)
	assert.True(t, ok)
	_, ok = logical.Right.(*ast.Variable)
	assert.True(t, ok)
}

// TestParse_ChainedLogicalOrIsOnlyParsedOnce documents the deliberately
// preserved grammar quirk in spec.md §9: logic_or/logic_and dispatch with a
// single "if", not a loop, so a second "or" in a chain is never consumed as
// part of the expression and instead trips the statement terminator check.
func TestParse_ChainedLogicalOrIsOnlyParsedOnce(t *testing.T) {
	toks, err := scanner.ScanTokens(`print a or b or c;`)
	require.NoError(t, err)
	_, err = Parse(toks)
	require.Error(t, err)
}

func TestParse_MissingSemicolonIsParseError(t *testing.T) {
	toks, err := scanner.ScanTokens(`var a = 1`)
	require.NoError(t, err)
	_, err = Parse(toks)
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
}

func TestParse_TooManyArgumentsIsParseError(t *testing.T) {
	src := "foo("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ", "
		}
		src += "1"
	}
	src += ");"
	toks, err := scanner.ScanTokens(src)
	require.NoError(t, err)
	_, err = Parse(toks)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "255")
}

func TestParse_NodeIdentityDistinctForStructurallyEqualSiblings(t *testing.T) {
	stmts := parseSource(t, `1; 1;`)
	a := stmts[0].(*ast.ExprStmt).Expr.(*ast.Literal)
	b := stmts[1].(*ast.ExprStmt).Expr.(*ast.Literal)
	assert.NotEqual(t, a.ID(), b.ID())
}
