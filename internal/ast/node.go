/*
Package ast defines the zk abstract syntax tree.

Every node is a single tagged variant: one Node struct carrying a Kind, a
1-based source Line, and a payload of fields that is populated according to
Kind (fields irrelevant to a given Kind are left zero). Evaluator and
type-checker code dispatch on Kind with an exhaustive switch rather than
walking a visitor hierarchy.

Every subtree is reachable from exactly one owning collection — a program
body, or a named child field of another node — so ownership forms a tree,
never a DAG.
*/
package ast

import "github.com/zk-lang/zk/internal/values"

// Kind identifies which variant of Node is populated.
type Kind int

const (
	Program Kind = iota
	FunctionDecl
	FunctionCall
	VarDecl
	VarAssign
	Print
	ReadInput
	If
	While
	Break
	Return
	Value
	Variable
	FString
	TypeCast
	BinaryOp
	Comparison
	And
	Or
)

// Param is a single typed function parameter (name, declared type).
type Param struct {
	Name string
	Type values.Type
}

// Node is the universal AST payload. Line is 1-based and always set by the
// parser (or, for f-string sub-expressions, stamped with the enclosing
// f-string's line).
type Node struct {
	Kind Kind
	Line int

	// Program
	Statements []*Node

	// FunctionDecl
	Name       string // also used by FunctionCall, VarDecl, VarAssign, Variable
	Params     []Param
	ReturnType values.Type
	Body       []*Node // also used by If (then-body), While

	// FunctionCall
	Args []*Node

	// VarDecl
	DeclaredType values.Type // also used by TypeCast (target type)
	Init         *Node       // optional initializer

	// VarAssign
	NewValue *Node

	// Print / ReadInput / TypeCast / Return
	Expr          *Node // print's operand; readInput's optional prompt; typeCast's inner expr; return's optional value
	AppendNewline bool  // Print only

	// If
	Condition *Node // also While condition
	ElseBody  []*Node

	// Value
	Text      string // literal textual form; also FString raw template text
	ValueType values.Type

	// BinaryOp / Comparison / And / Or
	Left     *Node
	Right    *Node
	Operator string
}
