/*
File   : lox-go/parser/parser.go
Package: parser

Package parser implements the recursive-descent grammar in spec.md §4.2 over
a token sequence produced by scanner.ScanTokens. It is Pratt-free: each
precedence tier is its own method, the way the teacher's parser package
splits concerns across files and plox/src/parser.py is itself structured.

Error recovery / synchronization is explicitly a non-goal (spec.md §4.2): the
first malformed construct aborts the parse and Parse returns (nil, error).
*/
package parser

import (
	"fmt"

	"github.com/akashmaji946/lox-go/ast"
	"github.com/akashmaji946/lox-go/token"
)

// Error is a ParseError: an unexpected token, a missing delimiter, an
// invalid assignment target, or an argument/parameter count over 255.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] ParseError: %s", e.Line, e.Message)
}

const maxArgs = 255

// Parser consumes a fixed token slice and produces statements. It panics
// internally with *Error to unwind to Parse's boundary, then recovers that
// panic there — mirroring the teacher's and plox's "raise on first bad
// construct, no recovery" policy without threading an error return through
// every single production.
type Parser struct {
	tokens  []token.Token
	current int
	ids     ast.IDGen
}

// New constructs a Parser over an already-scanned token sequence.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the entire token stream into a statement list. On the
// first malformed construct it returns a nil slice and the *Error
// describing the failure.
func Parse(tokens []token.Token) (stmts []ast.Stmt, err error) {
	p := New(tokens)
	defer func() {
		if r := recover(); r != nil {
			if perr, ok := r.(*Error); ok {
				stmts, err = nil, perr
				return
			}
			panic(r)
		}
	}()
	for !p.isAtEnd() {
		stmts = append(stmts, p.declaration())
	}
	return stmts, nil
}

func (p *Parser) nextID() ast.ID { return p.ids.Next() }

// --- token stream primitives ---

func (p *Parser) peek() token.Token { return p.tokens[p.current] }

func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }

func (p *Parser) isAtEnd() bool { return p.peek().Kind == token.EOF }

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.Kind, message string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.fail(message)
	panic("unreachable")
}

func (p *Parser) fail(message string) {
	panic(&Error{Line: p.peek().Line, Message: message})
}

// --- declarations ---

func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.match(token.FUN):
		return p.funDecl()
	case p.match(token.VAR):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) funDecl() ast.Stmt {
	id := p.nextID()
	name := p.consume(token.IDENTIFIER, "Expect function name.")
	p.consume(token.PAREN_OPEN, "Expect '(' after function name.")
	params := p.params()
	p.consume(token.BRACE_OPEN, "Expect '{' before function body.")
	body := p.block()
	return &ast.FuncStmt{NodeID: id, Name: name, Params: params, Body: body}
}

// params parses zero or more comma-separated identifiers up to the closing
// ')', enforcing the 255-parameter limit from spec.md §4.2.
func (p *Parser) params() []token.Token {
	var params []token.Token
	if !p.check(token.PAREN_CLOSE) {
		for {
			if len(params) >= maxArgs {
				p.fail(fmt.Sprintf("Can't have more than %d parameters.", maxArgs))
			}
			params = append(params, p.consume(token.IDENTIFIER, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.PAREN_CLOSE, "Expect ')' after parameters.")
	return params
}

func (p *Parser) varDecl() ast.Stmt {
	id := p.nextID()
	name := p.consume(token.IDENTIFIER, "Expect variable name.")
	var init ast.Expr
	if p.match(token.EQUAL) {
		init = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.Var{NodeID: id, Name: name, Init: init}
}

// --- statements ---

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.RETURN):
		return p.returnStmt()
	case p.match(token.FOR):
		return p.forStmt()
	case p.match(token.WHILE):
		return p.whileStmt()
	case p.match(token.IF):
		return p.ifStmt()
	case p.match(token.PRINT):
		return p.printStmt()
	case p.match(token.BRACE_OPEN):
		id := p.nextID()
		return &ast.Block{NodeID: id, Stmts: p.block()}
	default:
		return p.exprStmt()
	}
}

func (p *Parser) returnStmt() ast.Stmt {
	id := p.nextID()
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after return value.")
	return &ast.Return{NodeID: id, Keyword: keyword, Value: value}
}

// forStmt desugars `for(init; cond; incr) body` per spec.md §4.2 into
// `Block{ init?, While{ cond ?? true, Block{ body, ExprStmt(incr)? } } }`.
func (p *Parser) forStmt() ast.Stmt {
	p.consume(token.PAREN_OPEN, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		// no initializer
	case p.match(token.VAR):
		initializer = p.varDecl()
	default:
		initializer = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.PAREN_CLOSE) {
		increment = p.expression()
	}
	p.consume(token.PAREN_CLOSE, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = &ast.Block{NodeID: p.nextID(), Stmts: []ast.Stmt{
			body,
			&ast.ExprStmt{NodeID: p.nextID(), Expr: increment},
		}}
	}

	if cond == nil {
		cond = &ast.Literal{NodeID: p.nextID(), Value: ast.LiteralValue{Kind: ast.BoolLiteral, Bool: true}}
	}
	body = &ast.While{NodeID: p.nextID(), Cond: cond, Body: body}

	if initializer != nil {
		body = &ast.Block{NodeID: p.nextID(), Stmts: []ast.Stmt{initializer, body}}
	}

	return body
}

func (p *Parser) whileStmt() ast.Stmt {
	id := p.nextID()
	p.consume(token.PAREN_OPEN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.PAREN_CLOSE, "Expect ')' after condition.")
	body := p.statement()
	return &ast.While{NodeID: id, Cond: cond, Body: body}
}

func (p *Parser) ifStmt() ast.Stmt {
	id := p.nextID()
	p.consume(token.PAREN_OPEN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.PAREN_CLOSE, "Expect ')' after if condition.")
	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return &ast.If{NodeID: id, Cond: cond, Then: thenBranch, Else: elseBranch}
}

func (p *Parser) printStmt() ast.Stmt {
	id := p.nextID()
	value := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	return &ast.Print{NodeID: id, Expr: value}
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.BRACE_CLOSE) && !p.isAtEnd() {
		stmts = append(stmts, p.declaration())
	}
	p.consume(token.BRACE_CLOSE, "Expect '}' after block.")
	return stmts
}

func (p *Parser) exprStmt() ast.Stmt {
	id := p.nextID()
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	return &ast.ExprStmt{NodeID: id, Expr: expr}
}

// --- expressions, precedence low to high ---

func (p *Parser) expression() ast.Expr { return p.assignment() }

// assignment re-interprets a parsed left-hand expression as an assignment
// target when followed by '='. Only Variable is a legal target.
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		if v, ok := expr.(*ast.Variable); ok {
			return &ast.Assign{NodeID: p.nextID(), Name: v.Name, Value: value}
		}
		panic(&Error{Line: equals.Line, Message: "Invalid assignment target."})
	}

	return expr
}

// or implements logic_or -> logic_and ("or" logic_and)?  — single level, not
// a loop: chained `a or b or c` is parsed left-associatively only once per
// spec.md §9, matching plox's non-looping `if`.
func (p *Parser) or() ast.Expr {
	expr := p.and()
	if p.match(token.OR) {
		op := p.previous()
		right := p.and()
		expr = &ast.Logical{NodeID: p.nextID(), Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	if p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{NodeID: p.nextID(), Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{NodeID: p.nextID(), Left: expr, Op: op, Right: right}
	}
	return expr
}

// comparison and term deliberately preserve the precedence-table swap noted
// in spec.md §9 and SPEC_FULL.md §6: this rule, named for relational
// operators in the book grammar, is where `+`/`-` bind in this dialect.
func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.MINUS, token.PLUS) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{NodeID: p.nextID(), Left: expr, Op: op, Right: right}
	}
	return expr
}

// term is where relational operators bind, per the same preserved swap.
func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{NodeID: p.nextID(), Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{NodeID: p.nextID(), Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{NodeID: p.nextID(), Op: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for p.match(token.PAREN_OPEN) {
		expr = p.finishCall(expr)
	}
	return expr
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	id := p.nextID()
	var args []ast.Expr
	if !p.check(token.PAREN_CLOSE) {
		for {
			if len(args) >= maxArgs {
				p.fail(fmt.Sprintf("Can't have more than %d arguments.", maxArgs))
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.PAREN_CLOSE, "Expect ')' after arguments.")
	return &ast.Call{NodeID: id, Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	id := p.nextID()
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{NodeID: id, Value: ast.LiteralValue{Kind: ast.BoolLiteral, Bool: false}}
	case p.match(token.TRUE):
		return &ast.Literal{NodeID: id, Value: ast.LiteralValue{Kind: ast.BoolLiteral, Bool: true}}
	case p.match(token.NIL):
		return &ast.Literal{NodeID: id, Value: ast.LiteralValue{Kind: ast.NilLiteral}}
	case p.match(token.NUMBER):
		return &ast.Literal{NodeID: id, Value: ast.LiteralValue{Kind: ast.NumberLiteral, Number: parseFloat(p.previous().Lexeme)}}
	case p.match(token.STRING):
		return &ast.Literal{NodeID: id, Value: ast.LiteralValue{Kind: ast.StringLiteral, Str: p.previous().Lexeme}}
	case p.match(token.IDENTIFIER):
		return &ast.Variable{NodeID: id, Name: p.previous()}
	case p.match(token.PAREN_OPEN):
		inner := p.expression()
		p.consume(token.PAREN_CLOSE, "Expect ')' after expression.")
		return &ast.Grouping{NodeID: id, Inner: inner}
	case p.match(token.FUN):
		return p.funcExpr(id)
	default:
		p.fail(fmt.Sprintf("Expect expression, got %s.", p.peek().Kind))
		panic("unreachable")
	}
}

func (p *Parser) funcExpr(id ast.ID) ast.Expr {
	p.consume(token.PAREN_OPEN, "Expect '(' after 'fun'.")
	params := p.params()
	p.consume(token.BRACE_OPEN, "Expect '{' before function body.")
	body := p.block()
	return &ast.FuncExpr{NodeID: id, Params: params, Body: body}
}
