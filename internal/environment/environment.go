/*
Package environment implements the zk runtime's block stack: nested
lexical scopes holding variable and function bindings, plus the
call-depth counter used to bound recursion.

Crucially, scoping here is dynamic, not lexical-with-closures: a new
block's parent is always whatever block is current at the moment it is
entered, never a block captured at function-declaration time. zk has no
closures, so there is no declaration-time parent to thread through.
*/
package environment

import (
	"github.com/zk-lang/zk/internal/ast"
	"github.com/zk-lang/zk/internal/values"
)

// MaxDepth is the recursion ceiling: once callDepth has reached this
// value, any further function call is refused before it happens.
const MaxDepth = 1000

// Binding is a declared variable's current state: its declared type and
// the rendered text of its current value.
type Binding struct {
	Type values.Type
	Text string
}

// Function is a declared function: its parameter list, declared return
// type, and body — shared, never cloned, across every call. The body
// is the declaration's own statement slice; a call traverses it
// directly rather than copying it.
type Function struct {
	Name       string
	Params     []ast.Param
	ReturnType values.Type
	Body       []*ast.Node
	Line       int
}

// block is one lexical scope: two independent name tables plus a
// parent pointer.
type block struct {
	variables map[string]*Binding
	functions map[string]*Function
	parent    *block
}

func newBlock(parent *block) *block {
	return &block{
		variables: make(map[string]*Binding),
		functions: make(map[string]*Function),
		parent:    parent,
	}
}

// Environment is the block stack plus the call-depth counter.
type Environment struct {
	top       *block
	callDepth int
}

// New returns an empty Environment with no blocks pushed.
func New() *Environment {
	return &Environment{}
}

// EnterBlock pushes a fresh block parented to the current top. When
// increaseDepth is true (function-body entry) the call-depth counter is
// incremented.
func (e *Environment) EnterBlock(increaseDepth bool) {
	e.top = newBlock(e.top)
	if increaseDepth {
		e.callDepth++
	}
}

// ExitBlock pops the current block. When decreaseDepth is true the
// call-depth counter is decremented. A no-op on an empty stack.
func (e *Environment) ExitBlock(decreaseDepth bool) {
	if e.top == nil {
		return
	}
	e.top = e.top.parent
	if decreaseDepth {
		e.callDepth--
	}
}

// RecursionExceeded reports whether callDepth has already reached
// MaxDepth, i.e. whether the next function-body entry must be refused.
func (e *Environment) RecursionExceeded() bool {
	return e.callDepth >= MaxDepth
}

// DeclareVariable binds name in the current block. Raises
// DuplicateDeclarationError-shaped information (via the bool return) if
// name is already bound in the current block only — a shallow check.
func (e *Environment) DeclareVariable(name string, binding *Binding) bool {
	if _, exists := e.top.variables[name]; exists {
		return false
	}
	e.top.variables[name] = binding
	return true
}

// GetVariable performs a deep lookup, walking parents from the current
// block outward. The second return is false if no block defines name.
func (e *Environment) GetVariable(name string) (*Binding, bool) {
	for b := e.top; b != nil; b = b.parent {
		if v, ok := b.variables[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// DeclareFunction binds fn.Name in the current block. Unlike variables,
// the duplicate check is deep: a function already visible anywhere on
// the current block chain blocks redeclaration.
func (e *Environment) DeclareFunction(fn *Function) bool {
	if _, exists := e.GetFunction(fn.Name); exists {
		return false
	}
	e.top.functions[fn.Name] = fn
	return true
}

// GetFunction performs a deep lookup for a declared function.
func (e *Environment) GetFunction(name string) (*Function, bool) {
	for b := e.top; b != nil; b = b.parent {
		if f, ok := b.functions[name]; ok {
			return f, true
		}
	}
	return nil, false
}

// VariableCount reports how many variables are bound in the current
// block only — used by callers that report "N variables defined" for a
// top-level program.
func (e *Environment) VariableCount() int {
	if e.top == nil {
		return 0
	}
	return len(e.top.variables)
}
