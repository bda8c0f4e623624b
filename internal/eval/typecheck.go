package eval

import (
	"github.com/zk-lang/zk/internal/ast"
	"github.com/zk-lang/zk/internal/values"
	"github.com/zk-lang/zk/internal/zkerror"
)

// typeOf is the type checker's sole recursive operation: a pure
// function of an expression node and the current environment that
// determines its static value-type without evaluating it.
func (e *Evaluator) typeOf(n *ast.Node) (values.Type, *zkerror.Error) {
	switch n.Kind {
	case ast.Value:
		return n.ValueType, nil

	case ast.Variable:
		binding, ok := e.Env.GetVariable(n.Name)
		if !ok {
			return values.None, zkerror.Newf(zkerror.NotDefinedError, n.Line, "variable %q is not defined", n.Name)
		}
		return binding.Type, nil

	case ast.FunctionCall:
		fn, ok := e.Env.GetFunction(n.Name)
		if !ok {
			return values.None, zkerror.Newf(zkerror.NotDefinedError, n.Line, "function %q is not defined", n.Name)
		}
		return fn.ReturnType, nil

	case ast.BinaryOp:
		lt, err := e.typeOf(n.Left)
		if err != nil {
			return values.None, err
		}
		rt, err := e.typeOf(n.Right)
		if err != nil {
			return values.None, err
		}
		if !lt.IsNumeric() {
			return lt, nil
		}
		if !rt.IsNumeric() {
			return rt, nil
		}
		return values.Widen(lt, rt), nil

	case ast.Comparison:
		return values.Bool, nil

	case ast.FString, ast.ReadInput:
		return values.String, nil

	case ast.TypeCast:
		return n.DeclaredType, nil

	case ast.And, ast.Or:
		lt, err := e.typeOf(n.Left)
		if err != nil {
			return values.None, err
		}
		rt, err := e.typeOf(n.Right)
		if err != nil {
			return values.None, err
		}
		if lt != rt {
			return values.None, zkerror.New(zkerror.TypeError, n.Line, "Operands of the 'or'/'and' operation must be of the same type")
		}
		return lt, nil

	default:
		return values.None, zkerror.Newf(zkerror.UnknownError, n.Line, "cannot determine the type of this expression")
	}
}

// check raises TypeError unless typeOf(expr) equals declared.
func (e *Evaluator) check(expr *ast.Node, declared values.Type) *zkerror.Error {
	actual, err := e.typeOf(expr)
	if err != nil {
		return err
	}
	if actual != declared {
		return zkerror.Newf(zkerror.TypeError, expr.Line, "expected type %s, got %s", declared, actual)
	}
	return nil
}

// checkReturn raises TypeError unless a function's declared return type
// matches the type its body actually produced.
func (e *Evaluator) checkReturn(declared, actual values.Type, line int) *zkerror.Error {
	if actual != declared {
		return zkerror.Newf(zkerror.TypeError, line, "expected return type %s, got %s", declared, actual)
	}
	return nil
}
