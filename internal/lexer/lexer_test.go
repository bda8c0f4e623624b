package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zk-lang/zk/internal/token"
)

func TestEmptySourceYieldsOnlyEOF(t *testing.T) {
	tokens := Tokenize("")
	assert.Len(t, tokens, 1)
	assert.Equal(t, token.EOF, tokens[0].Kind)
	assert.Equal(t, 1, tokens[0].Line)
}

func TestLineNumbersAreNonDecreasing(t *testing.T) {
	tokens := Tokenize("var a: int = 1;\nvar b: int = 2;\n\nprintln(a);")
	prev := 0
	for _, tok := range tokens {
		assert.GreaterOrEqual(t, tok.Line, 1)
		assert.GreaterOrEqual(t, tok.Line, prev)
		prev = tok.Line
	}
}

func TestCommentsProduceNoTokensForTheLine(t *testing.T) {
	tokens := Tokenize("// a full line comment\nvar a: int = 1;")
	assert.Equal(t, token.VAR, tokens[0].Kind)
	assert.Equal(t, 2, tokens[0].Line)
}

func TestTrailingCommentAfterCode(t *testing.T) {
	tokens := Tokenize("var a: int = 1; // trailing\nvar b: int = 2;")
	var kinds []token.Kind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.NotContains(t, kinds, token.SLASH)
}

func TestUnterminatedString(t *testing.T) {
	tokens := Tokenize(`"unterminated`)
	assert.Len(t, tokens, 2)
	assert.Equal(t, token.UNKNOWN, tokens[0].Kind)
	assert.Equal(t, "Unterminated string", tokens[0].Text)
	assert.Equal(t, token.EOF, tokens[1].Kind)
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	tokens := Tokenize("def if else while break return print println readInput or and null myVar")
	wantKinds := []token.Kind{
		token.DEF, token.IF, token.ELSE, token.WHILE, token.BREAK, token.RETURN,
		token.PRINT, token.PRINTLN, token.READ_INPUT, token.OR, token.AND, token.NULL, token.IDENT,
	}
	for i, want := range wantKinds {
		assert.Equal(t, want, tokens[i].Kind, "token %d", i)
	}
}

func TestBooleanLiterals(t *testing.T) {
	tokens := Tokenize("true false")
	assert.Equal(t, token.BOOL, tokens[0].Kind)
	assert.Equal(t, "true", tokens[0].Text)
	assert.Equal(t, token.BOOL, tokens[1].Kind)
	assert.Equal(t, "false", tokens[1].Text)
}

func TestNumberLiterals(t *testing.T) {
	tokens := Tokenize("42 3.14 0")
	assert.Equal(t, token.INT, tokens[0].Kind)
	assert.Equal(t, token.FLOAT, tokens[1].Kind)
	assert.Equal(t, token.INT, tokens[2].Kind)
}

func TestTwoCharOperators(t *testing.T) {
	tokens := Tokenize("== != <= >= || &&")
	want := []token.Kind{token.EQ, token.NOT_EQ, token.LT_EQ, token.GT_EQ, token.OR_OP, token.AND_OP}
	for i, w := range want {
		assert.Equal(t, w, tokens[i].Kind)
	}
}

func TestLoneBangPipeAmpAreUnknown(t *testing.T) {
	tokens := Tokenize("! | &")
	for i := 0; i < 3; i++ {
		assert.Equal(t, token.UNKNOWN, tokens[i].Kind)
	}
}

func TestStringLiteralNoEscapeProcessing(t *testing.T) {
	tokens := Tokenize(`"hello {name}"`)
	assert.Equal(t, token.STRING, tokens[0].Kind)
	assert.Equal(t, "hello {name}", tokens[0].Text)
}

func TestMultiLineStringReportsLineAtClosingQuote(t *testing.T) {
	tokens := Tokenize("\"line one\nline two\nline three\"\nvar a: int = 1;")
	assert.Equal(t, token.STRING, tokens[0].Kind)
	assert.Equal(t, 3, tokens[0].Line)
	assert.Equal(t, token.VAR, tokens[1].Kind)
	assert.Equal(t, 4, tokens[1].Line)
}

func TestPunctuationAndTypeKeywords(t *testing.T) {
	tokens := Tokenize("(a: int, b: float) { }")
	wantKinds := []token.Kind{
		token.LPAREN, token.IDENT, token.COLON, token.TYPE_INT, token.COMMA,
		token.IDENT, token.COLON, token.TYPE_FLOAT, token.RPAREN, token.LBRACE, token.RBRACE,
	}
	for i, want := range wantKinds {
		assert.Equal(t, want, tokens[i].Kind, "token %d", i)
	}
}
