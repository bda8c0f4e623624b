package eval

import (
	"fmt"
	"strings"

	"github.com/zk-lang/zk/internal/ast"
	"github.com/zk-lang/zk/internal/lexer"
	"github.com/zk-lang/zk/internal/parser"
	"github.com/zk-lang/zk/internal/values"
	"github.com/zk-lang/zk/internal/zkerror"
)

// evalExpr evaluates an expression node to its rendered text and the
// companion type the caller needs for typed writes.
func (e *Evaluator) evalExpr(n *ast.Node) (string, values.Type, *zkerror.Error) {
	switch n.Kind {
	case ast.Value:
		return n.Text, n.ValueType, nil

	case ast.Variable:
		binding, ok := e.Env.GetVariable(n.Name)
		if !ok {
			return "", values.None, zkerror.Newf(zkerror.NotDefinedError, n.Line, "variable %q is not defined", n.Name)
		}
		return binding.Text, binding.Type, nil

	case ast.ReadInput:
		return e.evalReadInput(n)

	case ast.TypeCast:
		return e.evalTypeCast(n)

	case ast.FString:
		text, err := e.evalFString(n)
		if err != nil {
			return "", values.None, err
		}
		return text, values.String, nil

	case ast.BinaryOp:
		return e.evalBinaryOp(n)

	case ast.Comparison:
		return e.evalComparison(n)

	case ast.Or:
		return e.evalOr(n)

	case ast.And:
		return e.evalAnd(n)

	case ast.FunctionCall:
		return e.evalFunctionCall(n)

	case ast.Return:
		if n.Expr == nil {
			return "null", values.None, nil
		}
		return e.evalExpr(n.Expr)

	default:
		return "", values.None, zkerror.Newf(zkerror.UnknownError, n.Line, "unsupported expression node kind %d", n.Kind)
	}
}

func (e *Evaluator) evalReadInput(n *ast.Node) (string, values.Type, *zkerror.Error) {
	if n.Expr != nil {
		prompt, _, err := e.evalExpr(n.Expr)
		if err != nil {
			return "", values.None, err
		}
		fmt.Fprint(e.Out, prompt)
	}
	line, readErr := e.in.ReadString('\n')
	if readErr != nil && line == "" {
		return "", values.String, nil
	}
	line = strings.TrimRight(line, "\r\n")
	return line, values.String, nil
}

func (e *Evaluator) evalTypeCast(n *ast.Node) (string, values.Type, *zkerror.Error) {
	innerText, _, err := e.evalExpr(n.Expr)
	if err != nil {
		return "", values.None, err
	}
	switch n.DeclaredType {
	case values.Integer:
		f, ok := values.ParseNumeric(innerText)
		if !ok {
			return "", values.None, zkerror.Newf(zkerror.TypeCastError, n.Line, "cannot cast %q to int", innerText)
		}
		return values.FormatInt(f), values.Integer, nil
	case values.Float:
		f, ok := values.ParseNumeric(innerText)
		if !ok {
			return "", values.None, zkerror.Newf(zkerror.TypeCastError, n.Line, "cannot cast %q to float", innerText)
		}
		return values.FormatFloat(f), values.Float, nil
	case values.String:
		return innerText, values.String, nil
	case values.Bool:
		if values.Truthy(innerText) {
			return "true", values.Bool, nil
		}
		return "false", values.Bool, nil
	default:
		return "", values.None, zkerror.Newf(zkerror.UnknownError, n.Line, "unsupported cast target type")
	}
}

// evalFString scans the f-string's raw template left to right, copying
// literal text until a '{', then re-lexing and re-parsing the span up
// to the matching '}' as an independent expression.
func (e *Evaluator) evalFString(n *ast.Node) (string, *zkerror.Error) {
	src := n.Text
	var b strings.Builder
	i := 0
	for i < len(src) {
		c := src[i]
		if c != '{' {
			b.WriteByte(c)
			i++
			continue
		}
		rest := src[i+1:]
		closeIdx := strings.IndexByte(rest, '}')
		if closeIdx < 0 {
			return "", zkerror.New(zkerror.RuntimeError, n.Line, "unmatched '{' in f-string")
		}
		exprSrc := rest[:closeIdx]
		exprAst, err := parser.ParseExpression(lexer.Tokenize(exprSrc))
		if err != nil {
			return "", zkerror.New(err.Kind, n.Line, err.Message)
		}
		relabelLine(exprAst, n.Line)
		text, _, err2 := e.evalExpr(exprAst)
		if err2 != nil {
			return "", zkerror.New(err2.Kind, n.Line, err2.Message)
		}
		b.WriteString(text)
		i += 1 + closeIdx + 1
	}
	return b.String(), nil
}

func (e *Evaluator) evalBinaryOp(n *ast.Node) (string, values.Type, *zkerror.Error) {
	lt, err := e.typeOf(n.Left)
	if err != nil {
		return "", values.None, err
	}
	rt, err := e.typeOf(n.Right)
	if err != nil {
		return "", values.None, err
	}
	if !lt.IsNumeric() || !rt.IsNumeric() {
		return "", values.None, zkerror.Newf(zkerror.ExpressionError, n.Line, "operands of '%s' must be numeric", n.Operator)
	}

	leftText, _, err := e.evalExpr(n.Left)
	if err != nil {
		return "", values.None, err
	}
	rightText, _, err := e.evalExpr(n.Right)
	if err != nil {
		return "", values.None, err
	}
	lf, _ := values.ParseNumeric(leftText)
	rf, _ := values.ParseNumeric(rightText)

	var result float64
	switch n.Operator {
	case "+":
		result = lf + rf
	case "-":
		result = lf - rf
	case "*":
		result = lf * rf
	case "/":
		if rf == 0 {
			return "", values.None, zkerror.New(zkerror.RuntimeError, n.Line, "division by zero")
		}
		result = lf / rf
	default:
		return "", values.None, zkerror.Newf(zkerror.UnknownError, n.Line, "unsupported binary operator %q", n.Operator)
	}

	if values.HasDecimalPoint(leftText) || values.HasDecimalPoint(rightText) {
		return values.FormatFloat(result), values.Float, nil
	}
	return values.FormatInt(result), values.Integer, nil
}

func (e *Evaluator) evalComparison(n *ast.Node) (string, values.Type, *zkerror.Error) {
	leftText, _, err := e.evalExpr(n.Left)
	if err != nil {
		return "", values.None, err
	}
	rightText, _, err := e.evalExpr(n.Right)
	if err != nil {
		return "", values.None, err
	}

	lf, lok := values.ParseNumeric(leftText)
	rf, rok := values.ParseNumeric(rightText)

	var result bool
	if lok && rok {
		switch n.Operator {
		case "==":
			result = lf == rf
		case "!=":
			result = lf != rf
		case "<":
			result = lf < rf
		case "<=":
			result = lf <= rf
		case ">":
			result = lf > rf
		case ">=":
			result = lf >= rf
		}
	} else {
		switch n.Operator {
		case "==":
			result = leftText == rightText
		case "!=":
			result = leftText != rightText
		case "<":
			result = leftText < rightText
		case "<=":
			result = leftText <= rightText
		case ">":
			result = leftText > rightText
		case ">=":
			result = leftText >= rightText
		}
	}

	if result {
		return "true", values.Bool, nil
	}
	return "false", values.Bool, nil
}

// evalOr implements short-circuit '||': the right side is only
// evaluated when the left side is not truthy.
func (e *Evaluator) evalOr(n *ast.Node) (string, values.Type, *zkerror.Error) {
	if _, err := e.typeOf(n); err != nil {
		return "", values.None, err
	}
	leftText, leftType, err := e.evalExpr(n.Left)
	if err != nil {
		return "", values.None, err
	}
	if values.Truthy(leftText) {
		return leftText, leftType, nil
	}
	return e.evalExpr(n.Right)
}

// evalAnd implements short-circuit '&&': the right side is only
// evaluated when the left side is truthy.
func (e *Evaluator) evalAnd(n *ast.Node) (string, values.Type, *zkerror.Error) {
	if _, err := e.typeOf(n); err != nil {
		return "", values.None, err
	}
	leftText, leftType, err := e.evalExpr(n.Left)
	if err != nil {
		return "", values.None, err
	}
	if !values.Truthy(leftText) {
		return leftText, leftType, nil
	}
	return e.evalExpr(n.Right)
}
