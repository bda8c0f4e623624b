/*
Package eval implements the zk tree-walking evaluator: statement
execution, expression evaluation, and the type checker that both
consult.

Values flow through the evaluator as rendered text; a companion
values.Type is produced alongside whenever a caller needs it (variable
declarations, return-type checks, numeric widening) — a much smaller
text-plus-tag representation than a polymorphic object model, built
around one Evaluator type holding the live Environment and walking the
AST node by node.
*/
package eval

import (
	"bufio"
	"fmt"
	"io"

	"github.com/zk-lang/zk/internal/ast"
	"github.com/zk-lang/zk/internal/environment"
	"github.com/zk-lang/zk/internal/values"
	"github.com/zk-lang/zk/internal/zkerror"
)

// OutcomeKind is the three-way sum type used to propagate break/return
// out of nested statement bodies without exceptions.
type OutcomeKind int

const (
	Normal OutcomeKind = iota
	BreakOutcome
	ReturnOutcome
)

// Outcome is the result of executing one statement: either Normal (keep
// going), BreakOutcome (unwind to the nearest loop), or ReturnOutcome
// (unwind to the nearest function call), carrying the returned value's
// rendered text and type.
type Outcome struct {
	Kind OutcomeKind
	Text string
	Type values.Type
}

func normal() Outcome { return Outcome{Kind: Normal} }

// Evaluator holds the live environment and the program's I/O streams.
// It carries no GC bookkeeping of its own: the block stack in package
// environment is the sole owner of bindings, and popping a block is the
// entire reclamation step.
type Evaluator struct {
	Env *environment.Environment
	Out io.Writer
	in  *bufio.Reader
}

// New creates an Evaluator writing to out and reading readInput() lines
// from in.
func New(out io.Writer, in io.Reader) *Evaluator {
	return &Evaluator{
		Env: environment.New(),
		Out: out,
		in:  bufio.NewReader(in),
	}
}

// RunProgram executes a Program node: push the initial block, run each
// top-level statement in order, then pop the block. It returns the
// number of variables bound directly in that top-level block just
// before it is popped.
func (e *Evaluator) RunProgram(prog *ast.Node) (int, *zkerror.Error) {
	e.Env.EnterBlock(false)
	for _, stmt := range prog.Statements {
		outcome, err := e.evalStatement(stmt)
		if err != nil {
			e.Env.ExitBlock(false)
			return 0, err
		}
		if outcome.Kind != Normal {
			break
		}
	}
	count := e.Env.VariableCount()
	e.Env.ExitBlock(false)
	return count, nil
}

// RunStatements executes a sequence of top-level statements directly
// against whatever block is already current, without pushing one of
// its own. zk-repl uses this to give successive input lines a shared,
// persistent top-level block — unlike RunProgram, which is scoped to a
// single complete script.
func (e *Evaluator) RunStatements(stmts []*ast.Node) (Outcome, *zkerror.Error) {
	return e.evalBlock(stmts)
}

// evalBlock runs a statement sequence, stopping at the first non-Normal
// outcome and propagating it to the caller.
func (e *Evaluator) evalBlock(stmts []*ast.Node) (Outcome, *zkerror.Error) {
	for _, stmt := range stmts {
		outcome, err := e.evalStatement(stmt)
		if err != nil {
			return Outcome{}, err
		}
		if outcome.Kind != Normal {
			return outcome, nil
		}
	}
	return normal(), nil
}

func (e *Evaluator) evalStatement(n *ast.Node) (Outcome, *zkerror.Error) {
	switch n.Kind {
	case ast.FunctionDecl:
		return e.evalFunctionDecl(n)
	case ast.VarDecl:
		return e.evalVarDecl(n)
	case ast.VarAssign:
		return e.evalVarAssign(n)
	case ast.Print:
		return e.evalPrint(n)
	case ast.If:
		return e.evalIf(n)
	case ast.While:
		return e.evalWhile(n)
	case ast.Break:
		return Outcome{Kind: BreakOutcome}, nil
	case ast.Return:
		return e.evalReturn(n)
	case ast.FunctionCall:
		_, _, err := e.evalFunctionCall(n)
		if err != nil {
			return Outcome{}, err
		}
		return normal(), nil
	default:
		return Outcome{}, zkerror.Newf(zkerror.UnknownError, n.Line, "unsupported statement node kind %d", n.Kind)
	}
}

func (e *Evaluator) evalFunctionDecl(n *ast.Node) (Outcome, *zkerror.Error) {
	fn := &environment.Function{
		Name:       n.Name,
		Params:     n.Params,
		ReturnType: n.ReturnType,
		Body:       n.Body,
		Line:       n.Line,
	}
	if !e.Env.DeclareFunction(fn) {
		return Outcome{}, zkerror.Newf(zkerror.DuplicateDeclarationError, n.Line, "function %q is already declared", n.Name)
	}
	return normal(), nil
}

func (e *Evaluator) evalVarDecl(n *ast.Node) (Outcome, *zkerror.Error) {
	text := "null"
	if n.Init != nil {
		if err := e.check(n.Init, n.DeclaredType); err != nil {
			return Outcome{}, err
		}
		t, _, err := e.evalExpr(n.Init)
		if err != nil {
			return Outcome{}, err
		}
		text = t
	}
	if !e.Env.DeclareVariable(n.Name, &environment.Binding{Type: n.DeclaredType, Text: text}) {
		return Outcome{}, zkerror.Newf(zkerror.DuplicateDeclarationError, n.Line, "variable %q is already declared", n.Name)
	}
	return normal(), nil
}

func (e *Evaluator) evalVarAssign(n *ast.Node) (Outcome, *zkerror.Error) {
	binding, ok := e.Env.GetVariable(n.Name)
	if !ok {
		return Outcome{}, zkerror.Newf(zkerror.NotDefinedError, n.Line, "variable %q is not defined", n.Name)
	}
	if err := e.check(n.NewValue, binding.Type); err != nil {
		return Outcome{}, err
	}
	text, _, err := e.evalExpr(n.NewValue)
	if err != nil {
		return Outcome{}, err
	}
	binding.Text = text
	return normal(), nil
}

func (e *Evaluator) evalPrint(n *ast.Node) (Outcome, *zkerror.Error) {
	text, _, err := e.evalExpr(n.Expr)
	if err != nil {
		return Outcome{}, err
	}
	fmt.Fprint(e.Out, text)
	if n.AppendNewline {
		fmt.Fprintln(e.Out)
	}
	return normal(), nil
}

func (e *Evaluator) evalIf(n *ast.Node) (Outcome, *zkerror.Error) {
	condText, _, err := e.evalExpr(n.Condition)
	if err != nil {
		return Outcome{}, err
	}
	e.Env.EnterBlock(false)
	defer e.Env.ExitBlock(false)

	if values.Truthy(condText) {
		return e.evalBlock(n.Body)
	}
	if n.ElseBody != nil {
		return e.evalBlock(n.ElseBody)
	}
	return normal(), nil
}

func (e *Evaluator) evalWhile(n *ast.Node) (Outcome, *zkerror.Error) {
	e.Env.EnterBlock(false)
	defer e.Env.ExitBlock(false)

	for {
		condText, _, err := e.evalExpr(n.Condition)
		if err != nil {
			return Outcome{}, err
		}
		if !values.Truthy(condText) {
			return normal(), nil
		}

		outcome, err := e.evalBlock(n.Body)
		if err != nil {
			return Outcome{}, err
		}
		switch outcome.Kind {
		case BreakOutcome:
			return normal(), nil
		case ReturnOutcome:
			return outcome, nil
		}
	}
}

func (e *Evaluator) evalReturn(n *ast.Node) (Outcome, *zkerror.Error) {
	if n.Expr == nil {
		return Outcome{Kind: ReturnOutcome, Text: "null", Type: values.None}, nil
	}
	text, typ, err := e.evalExpr(n.Expr)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: ReturnOutcome, Text: text, Type: typ}, nil
}

// evalFunctionCall resolves, arity- and recursion-checks, binds
// arguments for, and executes a function call, shared by statement and
// expression position.
func (e *Evaluator) evalFunctionCall(n *ast.Node) (string, values.Type, *zkerror.Error) {
	fn, ok := e.Env.GetFunction(n.Name)
	if !ok {
		return "", values.None, zkerror.Newf(zkerror.NotDefinedError, n.Line, "function %q is not defined", n.Name)
	}
	if len(n.Args) != len(fn.Params) {
		return "", values.None, zkerror.Newf(zkerror.RuntimeError, n.Line, "function %q expects %d argument(s), got %d", n.Name, len(fn.Params), len(n.Args))
	}
	if e.Env.RecursionExceeded() {
		return "", values.None, zkerror.Newf(zkerror.RecursionError, n.Line, "maximum recursion depth (%d) exceeded calling %q", environment.MaxDepth, n.Name)
	}

	argTexts := make([]string, len(n.Args))
	for i, argExpr := range n.Args {
		if err := e.check(argExpr, fn.Params[i].Type); err != nil {
			return "", values.None, err
		}
		text, _, err := e.evalExpr(argExpr)
		if err != nil {
			return "", values.None, err
		}
		argTexts[i] = text
	}

	e.Env.EnterBlock(true)
	for i, p := range fn.Params {
		e.Env.DeclareVariable(p.Name, &environment.Binding{Type: p.Type, Text: argTexts[i]})
	}
	outcome, err := e.evalBlock(fn.Body)
	e.Env.ExitBlock(true)
	if err != nil {
		return "", values.None, err
	}

	if outcome.Kind == ReturnOutcome {
		if err := e.checkReturn(fn.ReturnType, outcome.Type, n.Line); err != nil {
			return "", values.None, err
		}
		return outcome.Text, outcome.Type, nil
	}
	if fn.ReturnType != values.None {
		return "", values.None, zkerror.Newf(zkerror.TypeError, n.Line, "function %q does not return a value of type %s in all control paths", n.Name, fn.ReturnType)
	}
	return "null", values.None, nil
}

// relabelLine overwrites the line of every node in a sub-AST, used
// after re-parsing an f-string hole so diagnostics report the
// enclosing f-string's line rather than line 1 of the re-lexed
// fragment.
func relabelLine(n *ast.Node, line int) {
	if n == nil {
		return
	}
	n.Line = line
	relabelLine(n.Left, line)
	relabelLine(n.Right, line)
	relabelLine(n.Expr, line)
	relabelLine(n.Init, line)
	relabelLine(n.NewValue, line)
	relabelLine(n.Condition, line)
	for _, c := range n.Args {
		relabelLine(c, line)
	}
	for _, c := range n.Statements {
		relabelLine(c, line)
	}
	for _, c := range n.Body {
		relabelLine(c, line)
	}
	for _, c := range n.ElseBody {
		relabelLine(c, line)
	}
}
