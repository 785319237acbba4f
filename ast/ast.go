/*
File   : lox-go/ast/ast.go
Package: ast

Package ast defines the expression and statement node variants produced by
the parser and walked by the resolver and interpreter. Both families use the
Visitor pattern (the same shape the teacher's parser/node.go NodeVisitor
uses): each node Accepts a visitor and the visitor dispatches per concrete
type, which plays the role a `match` on a sum type would in a language that
has one.

Every node carries a monotonically increasing node ID, assigned at
construction. The resolver keys its depth map by this ID rather than by Go
pointer identity, per spec.md §9 — it makes the AST portable and avoids any
reliance on heap-address semantics. Nodes are never shared: each parse
produces fresh node values, so two structurally identical expressions always
carry distinct IDs.
*/
package ast

// ID is a node identity, unique within one parse.
type ID int

// IDGen hands out monotonically increasing node IDs for one parse. The
// parser owns one instance and threads it through every node it builds.
type IDGen struct{ next ID }

// Next returns the next unused ID.
func (g *IDGen) Next() ID {
	id := g.next
	g.next++
	return id
}
