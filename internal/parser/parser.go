/*
Package parser implements the zk recursive-descent parser. It consumes
the flat token stream the lexer produces and emits a Program AST built
from the tagged-variant Node type in package ast.

The precedence chain is a descending method chain over the flat token
slice: logicOr < logicAnd < equality < comparison < additive <
multiplicative < unary < primary.
*/
package parser

import (
	"strings"

	"github.com/zk-lang/zk/internal/ast"
	"github.com/zk-lang/zk/internal/token"
	"github.com/zk-lang/zk/internal/values"
	"github.com/zk-lang/zk/internal/zkerror"
)

// Parser holds the token stream and a cursor into it.
type Parser struct {
	tokens []token.Token
	pos    int
}

// New creates a Parser over an already-lexed token stream.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse lexes nothing itself; it parses an already-tokenized source
// into a Program node.
func Parse(tokens []token.Token) (*ast.Node, *zkerror.Error) {
	return New(tokens).ParseProgram()
}

// ParseExpression parses a standalone expression — used by the
// evaluator's f-string re-entry, where each {...} hole is re-lexed and
// parsed as its own compilation unit rather than a full program.
func ParseExpression(tokens []token.Token) (*ast.Node, *zkerror.Error) {
	p := New(tokens)
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.check(token.EOF) {
		return nil, zkerror.Newf(zkerror.SyntaxError, p.cur().Line, "unexpected trailing token %q", p.cur().Text)
	}
	return expr, nil
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekNext() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) check(k token.Kind) bool {
	return p.cur().Kind == k
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(k token.Kind, message string) (token.Token, *zkerror.Error) {
	if !p.check(k) {
		return token.Token{}, zkerror.Newf(zkerror.SyntaxError, p.cur().Line, "%s, got %q", message, p.cur().Text)
	}
	return p.advance(), nil
}

// parseType consumes one of the four type keywords or the null
// keyword (used in "-> null" return-type position), returning the
// corresponding values.Type.
func (p *Parser) parseType() (values.Type, *zkerror.Error) {
	tok := p.cur()
	switch tok.Kind {
	case token.TYPE_INT:
		p.advance()
		return values.Integer, nil
	case token.TYPE_FLOAT:
		p.advance()
		return values.Float, nil
	case token.TYPE_STRING:
		p.advance()
		return values.String, nil
	case token.TYPE_BOOL:
		p.advance()
		return values.Bool, nil
	case token.NULL:
		p.advance()
		return values.None, nil
	default:
		return values.None, zkerror.Newf(zkerror.TypeError, tok.Line, "expected a type, got %q", tok.Text)
	}
}

// ParseProgram parses the full token stream into a Program node.
func (p *Parser) ParseProgram() (*ast.Node, *zkerror.Error) {
	line := p.cur().Line
	prog := &ast.Node{Kind: ast.Program, Line: line}
	for !p.check(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

func (p *Parser) parseStatement() (*ast.Node, *zkerror.Error) {
	switch p.cur().Kind {
	case token.DEF:
		return p.parseFuncDecl()
	case token.VAR:
		return p.parseVarDecl()
	case token.PRINT, token.PRINTLN:
		return p.parsePrint()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.BREAK:
		return p.parseBreak()
	case token.RETURN:
		return p.parseReturn()
	case token.IDENT:
		return p.parseIdentStatement()
	default:
		tok := p.cur()
		return nil, zkerror.Newf(zkerror.SyntaxError, tok.Line, "unexpected token %q at statement position", tok.Text)
	}
}

// parseIdentStatement implements the statement-position IDENT lookahead
// rule: '(' starts a function-call statement, '=' starts an
// assignment, anything else is a SyntaxError.
func (p *Parser) parseIdentStatement() (*ast.Node, *zkerror.Error) {
	name := p.advance()
	switch p.cur().Kind {
	case token.LPAREN:
		call, err := p.parseCallExpr(name)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMICOLON, "expected ';' after function call"); err != nil {
			return nil, err
		}
		return call, nil
	case token.ASSIGN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMICOLON, "expected ';' after assignment"); err != nil {
			return nil, err
		}
		return &ast.Node{Kind: ast.VarAssign, Name: name.Text, NewValue: expr, Line: name.Line}, nil
	default:
		return nil, zkerror.Newf(zkerror.SyntaxError, name.Line, "expected '(' or '=' after identifier %q", name.Text)
	}
}

func (p *Parser) parseFuncDecl() (*ast.Node, *zkerror.Error) {
	line := p.advance().Line // 'def'
	nameTok, err := p.expect(token.IDENT, "expected function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "expected '(' after function name"); err != nil {
		return nil, err
	}

	var params []ast.Param
	if !p.check(token.RPAREN) {
		for {
			pname, err := p.expect(token.IDENT, "expected parameter name")
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.COLON, "expected ':' after parameter name"); err != nil {
				return nil, err
			}
			ptype, err := p.parseType()
			if err != nil {
				return nil, err
			}
			params = append(params, ast.Param{Name: pname.Text, Type: ptype})
			if p.check(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(token.RPAREN, "expected ')' after parameter list"); err != nil {
		return nil, err
	}

	returnType := values.None
	if p.check(token.MINUS) && p.peekNext().Kind == token.GT {
		p.advance()
		p.advance()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		returnType = t
	}

	body, err := p.parseBraceBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.FunctionDecl, Name: nameTok.Text, Params: params, ReturnType: returnType, Body: body, Line: line}, nil
}

// parseBraceBlock parses a mandatory '{' statement* '}' block, used by
// function bodies (which, unlike if/while, never accept a bare single
// statement in place of braces).
func (p *Parser) parseBraceBlock() ([]*ast.Node, *zkerror.Error) {
	if _, err := p.expect(token.LBRACE, "expected '{'"); err != nil {
		return nil, err
	}
	var stmts []*ast.Node
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(token.RBRACE, "expected '}'"); err != nil {
		return nil, err
	}
	return stmts, nil
}

// parseBlock implements `block := '{' statement* '}' | statement`, the
// form if/while bodies accept.
func (p *Parser) parseBlock() ([]*ast.Node, *zkerror.Error) {
	if p.check(token.LBRACE) {
		return p.parseBraceBlock()
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return []*ast.Node{stmt}, nil
}

func (p *Parser) parseVarDecl() (*ast.Node, *zkerror.Error) {
	line := p.advance().Line // 'var'
	nameTok, err := p.expect(token.IDENT, "expected variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON, "expected ':' after variable name"); err != nil {
		return nil, err
	}
	declType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	var init *ast.Node
	if p.check(token.ASSIGN) {
		p.advance()
		init, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.SEMICOLON, "expected ';' after variable declaration"); err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.VarDecl, Name: nameTok.Text, DeclaredType: declType, Init: init, Line: line}, nil
}

func (p *Parser) parsePrint() (*ast.Node, *zkerror.Error) {
	tok := p.advance() // 'print' or 'println'
	appendNewline := tok.Kind == token.PRINTLN
	if _, err := p.expect(token.LPAREN, "expected '(' after print"); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, "expected ')' after print argument"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "expected ';' after print statement"); err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.Print, Expr: expr, AppendNewline: appendNewline, Line: tok.Line}, nil
}

func (p *Parser) parseIf() (*ast.Node, *zkerror.Error) {
	line := p.advance().Line // 'if'
	if _, err := p.expect(token.LPAREN, "expected '(' after if"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, "expected ')' after if condition"); err != nil {
		return nil, err
	}
	thenBody, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseBody []*ast.Node
	if p.check(token.ELSE) {
		p.advance()
		elseBody, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return &ast.Node{Kind: ast.If, Condition: cond, Body: thenBody, ElseBody: elseBody, Line: line}, nil
}

func (p *Parser) parseWhile() (*ast.Node, *zkerror.Error) {
	line := p.advance().Line // 'while'
	if _, err := p.expect(token.LPAREN, "expected '(' after while"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, "expected ')' after while condition"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.While, Condition: cond, Body: body, Line: line}, nil
}

func (p *Parser) parseBreak() (*ast.Node, *zkerror.Error) {
	tok := p.advance()
	if _, err := p.expect(token.SEMICOLON, "expected ';' after break"); err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.Break, Line: tok.Line}, nil
}

func (p *Parser) parseReturn() (*ast.Node, *zkerror.Error) {
	tok := p.advance()
	var expr *ast.Node
	if !p.check(token.SEMICOLON) {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		expr = e
	}
	if _, err := p.expect(token.SEMICOLON, "expected ';' after return"); err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.Return, Expr: expr, Line: tok.Line}, nil
}

// parseExpression is the entry point of the precedence chain.
func (p *Parser) parseExpression() (*ast.Node, *zkerror.Error) {
	return p.parseLogicOr()
}

func (p *Parser) parseLogicOr() (*ast.Node, *zkerror.Error) {
	left, err := p.parseLogicAnd()
	if err != nil {
		return nil, err
	}
	for p.check(token.OR_OP) {
		opTok := p.advance()
		right, err := p.parseLogicAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Node{Kind: ast.Or, Left: left, Right: right, Line: opTok.Line}
	}
	return left, nil
}

func (p *Parser) parseLogicAnd() (*ast.Node, *zkerror.Error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.check(token.AND_OP) {
		opTok := p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.Node{Kind: ast.And, Left: left, Right: right, Line: opTok.Line}
	}
	return left, nil
}

func (p *Parser) parseEquality() (*ast.Node, *zkerror.Error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.check(token.EQ) || p.check(token.NOT_EQ) {
		opTok := p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.Node{Kind: ast.Comparison, Left: left, Right: right, Operator: opTok.Text, Line: opTok.Line}
	}
	return left, nil
}

func (p *Parser) parseComparison() (*ast.Node, *zkerror.Error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.check(token.LT) || p.check(token.LT_EQ) || p.check(token.GT) || p.check(token.GT_EQ) {
		opTok := p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.Node{Kind: ast.Comparison, Left: left, Right: right, Operator: opTok.Text, Line: opTok.Line}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (*ast.Node, *zkerror.Error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.check(token.PLUS) || p.check(token.MINUS) {
		opTok := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.Node{Kind: ast.BinaryOp, Left: left, Right: right, Operator: opTok.Text, Line: opTok.Line}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (*ast.Node, *zkerror.Error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.check(token.STAR) || p.check(token.SLASH) {
		opTok := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.Node{Kind: ast.BinaryOp, Left: left, Right: right, Operator: opTok.Text, Line: opTok.Line}
	}
	return left, nil
}

// parseUnary implements `unary := '-'? primary` plus the key rule that
// a leading '-' only ever attaches to an int/float literal's textual
// form; anything else after a '-' is a SyntaxError.
func (p *Parser) parseUnary() (*ast.Node, *zkerror.Error) {
	if p.check(token.MINUS) {
		minusTok := p.advance()
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		if operand.Kind == ast.Value && (operand.ValueType == values.Integer || operand.ValueType == values.Float) {
			operand.Text = "-" + operand.Text
			return operand, nil
		}
		return nil, zkerror.Newf(zkerror.SyntaxError, minusTok.Line, "unary '-' may only negate an int or float literal")
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (*ast.Node, *zkerror.Error) {
	tok := p.cur()
	switch tok.Kind {
	case token.INT:
		p.advance()
		return &ast.Node{Kind: ast.Value, Text: tok.Text, ValueType: values.Integer, Line: tok.Line}, nil
	case token.FLOAT:
		p.advance()
		return &ast.Node{Kind: ast.Value, Text: tok.Text, ValueType: values.Float, Line: tok.Line}, nil
	case token.BOOL:
		p.advance()
		return &ast.Node{Kind: ast.Value, Text: tok.Text, ValueType: values.Bool, Line: tok.Line}, nil
	case token.NULL:
		p.advance()
		return &ast.Node{Kind: ast.Value, Text: "null", ValueType: values.None, Line: tok.Line}, nil
	case token.STRING:
		p.advance()
		if strings.ContainsRune(tok.Text, '{') {
			return &ast.Node{Kind: ast.FString, Text: tok.Text, Line: tok.Line}, nil
		}
		return &ast.Node{Kind: ast.Value, Text: tok.Text, ValueType: values.String, Line: tok.Line}, nil
	case token.READ_INPUT:
		p.advance()
		if _, err := p.expect(token.LPAREN, "expected '(' after readInput"); err != nil {
			return nil, err
		}
		var prompt *ast.Node
		if !p.check(token.RPAREN) {
			pr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			prompt = pr
		}
		if _, err := p.expect(token.RPAREN, "expected ')' after readInput argument"); err != nil {
			return nil, err
		}
		return &ast.Node{Kind: ast.ReadInput, Expr: prompt, Line: tok.Line}, nil
	case token.LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "expected ')' to close expression"); err != nil {
			return nil, err
		}
		return expr, nil
	case token.IDENT:
		name := p.advance()
		if p.check(token.LPAREN) {
			return p.parseCallExpr(name)
		}
		return &ast.Node{Kind: ast.Variable, Name: name.Text, Line: name.Line}, nil
	case token.TYPE_INT, token.TYPE_FLOAT, token.TYPE_STRING, token.TYPE_BOOL:
		if p.peekNext().Kind != token.LPAREN {
			return nil, zkerror.Newf(zkerror.SyntaxError, tok.Line, "unexpected type keyword %q in expression", tok.Text)
		}
		target, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.LPAREN, "expected '(' after type cast"); err != nil {
			return nil, err
		}
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "expected ')' after type cast argument"); err != nil {
			return nil, err
		}
		return &ast.Node{Kind: ast.TypeCast, Expr: inner, DeclaredType: target, Line: tok.Line}, nil
	default:
		return nil, zkerror.Newf(zkerror.ExpressionError, tok.Line, "expected an expression, got %q", tok.Text)
	}
}

// parseCallExpr parses the '(' argList? ')' suffix of a call whose name
// token has already been consumed, used both by function-call
// statements and function calls in expression position.
func (p *Parser) parseCallExpr(name token.Token) (*ast.Node, *zkerror.Error) {
	p.advance() // '('
	var args []*ast.Node
	if !p.check(token.RPAREN) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.check(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(token.RPAREN, "expected ')' after argument list"); err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.FunctionCall, Name: name.Text, Args: args, Line: name.Line}, nil
}
