package eval

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zk-lang/zk/internal/lexer"
	"github.com/zk-lang/zk/internal/parser"
	"github.com/zk-lang/zk/internal/values"
	"github.com/zk-lang/zk/internal/zkerror"
)

func run(t *testing.T, src string) (string, int, *zkerror.Error) {
	t.Helper()
	prog, perr := parser.Parse(lexer.Tokenize(src))
	require.Nil(t, perr)

	var out bytes.Buffer
	ev := New(&out, strings.NewReader(""))
	count, err := ev.RunProgram(prog)
	return out.String(), count, err
}

func TestScenarioVariableDeclarationAndArithmetic(t *testing.T) {
	_, count, err := run(t, "var a: int = 10;\nvar b: int = a * 100;")
	require.Nil(t, err)
	assert.Equal(t, 2, count)
}

func TestScenarioFStringInterpolation(t *testing.T) {
	out, _, err := run(t, `var name: string = "World";
println("Hello, {name}!");`)
	require.Nil(t, err)
	assert.Equal(t, "Hello, World!\n", out)
}

func TestScenarioFunctionCallReturningSum(t *testing.T) {
	out, _, err := run(t, `def add(x: int, y: int) -> int { return x + y; }
println(add(2, 3));`)
	require.Nil(t, err)
	assert.Equal(t, "5\n", out)
}

func TestScenarioWhileLoop(t *testing.T) {
	out, _, err := run(t, `var x: int = 0;
while (x < 3) { println(x); x = x + 1; }`)
	require.Nil(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestScenarioTypeCastFailureRaisesTypeCastError(t *testing.T) {
	_, _, err := run(t, `var a: int = int("xyz");`)
	require.NotNil(t, err)
	assert.Equal(t, zkerror.TypeCastError, err.Kind)
	assert.Equal(t, 1, err.Line)
}

func TestScenarioIfElse(t *testing.T) {
	out, _, err := run(t, `if (1 == 1) { println("yes"); } else { println("no"); }`)
	require.Nil(t, err)
	assert.Equal(t, "yes\n", out)
}

func TestIntegerDivisionTruncatesTowardZero(t *testing.T) {
	out, _, err := run(t, `println(7 / 2);`)
	require.Nil(t, err)
	assert.Equal(t, "3\n", out)
}

func TestShortCircuitAndOr(t *testing.T) {
	out, _, err := run(t, `println(true && false);
println(false || true);`)
	require.Nil(t, err)
	assert.Equal(t, "false\ntrue\n", out)
}

func TestShortCircuitDoesNotEvaluateRightSide(t *testing.T) {
	// A right-hand function call that would itself error must never run
	// when the left side already determines the && / || result.
	out, _, err := run(t, `def boom() -> bool { return int("nope") == 1; }
println(false && boom());
println(true || boom());`)
	require.Nil(t, err)
	assert.Equal(t, "false\ntrue\n", out)
}

func TestShadowingAcrossBlocks(t *testing.T) {
	out, _, err := run(t, `var x: int = 1;
if (true) {
    var x: int = 2;
    println(x);
}
println(x);`)
	require.Nil(t, err)
	assert.Equal(t, "2\n1\n", out)
}

func TestDuplicateDeclarationInSameBlock(t *testing.T) {
	_, _, err := run(t, `var x: int = 1;
var x: int = 2;`)
	require.NotNil(t, err)
	assert.Equal(t, zkerror.DuplicateDeclarationError, err.Kind)
}

func TestWhileLoopReusesOneBlockAcrossIterations(t *testing.T) {
	_, _, err := run(t, `var i: int = 0;
while (i < 2) {
    var y: int = 1;
    i = i + 1;
}`)
	require.NotNil(t, err)
	assert.Equal(t, zkerror.DuplicateDeclarationError, err.Kind)
}

func TestFunctionCallArityMismatchIsRuntimeError(t *testing.T) {
	_, _, err := run(t, `def add(x: int, y: int) -> int { return x + y; }
add(1);`)
	require.NotNil(t, err)
	assert.Equal(t, zkerror.RuntimeError, err.Kind)
}

func TestRecursionExceedsMaxDepth(t *testing.T) {
	_, _, err := run(t, `def loop() -> null { loop(); }
loop();`)
	require.NotNil(t, err)
	assert.Equal(t, zkerror.RecursionError, err.Kind)
}

func TestFunctionMissingReturnInAllPathsIsTypeError(t *testing.T) {
	_, _, err := run(t, `def f() -> int { var x: int = 1; }
f();`)
	require.NotNil(t, err)
	assert.Equal(t, zkerror.TypeError, err.Kind)
}

func TestValueTypeConsistency(t *testing.T) {
	assert.Equal(t, values.Integer, values.Widen(values.Integer, values.Integer))
	assert.Equal(t, values.Float, values.Widen(values.Integer, values.Float))
}
