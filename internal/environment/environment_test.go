package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zk-lang/zk/internal/values"
)

func TestShadowingAcrossBlocks(t *testing.T) {
	env := New()
	env.EnterBlock(false)
	assert.True(t, env.DeclareVariable("x", &Binding{Type: values.Integer, Text: "1"}))

	env.EnterBlock(false)
	assert.True(t, env.DeclareVariable("x", &Binding{Type: values.Integer, Text: "2"}))
	b, ok := env.GetVariable("x")
	assert.True(t, ok)
	assert.Equal(t, "2", b.Text)
	env.ExitBlock(false)

	b, ok = env.GetVariable("x")
	assert.True(t, ok)
	assert.Equal(t, "1", b.Text)
}

func TestDuplicateDeclarationInSameBlockIsRejected(t *testing.T) {
	env := New()
	env.EnterBlock(false)
	assert.True(t, env.DeclareVariable("x", &Binding{Type: values.Integer, Text: "1"}))
	assert.False(t, env.DeclareVariable("x", &Binding{Type: values.Integer, Text: "2"}))
}

func TestDuplicateDeclarationAcrossBlocksIsAllowedForVariables(t *testing.T) {
	env := New()
	env.EnterBlock(false)
	assert.True(t, env.DeclareVariable("x", &Binding{Type: values.Integer, Text: "1"}))
	env.EnterBlock(false)
	assert.True(t, env.DeclareVariable("x", &Binding{Type: values.Integer, Text: "2"}))
}

func TestDeepLookupWalksParents(t *testing.T) {
	env := New()
	env.EnterBlock(false)
	env.DeclareVariable("a", &Binding{Type: values.Integer, Text: "10"})
	env.EnterBlock(false)
	env.EnterBlock(false)
	b, ok := env.GetVariable("a")
	assert.True(t, ok)
	assert.Equal(t, "10", b.Text)
}

func TestGetVariableNotFound(t *testing.T) {
	env := New()
	env.EnterBlock(false)
	_, ok := env.GetVariable("missing")
	assert.False(t, ok)
}

func TestFunctionDeclarationIsDeepChecked(t *testing.T) {
	env := New()
	env.EnterBlock(false)
	assert.True(t, env.DeclareFunction(&Function{Name: "add"}))

	env.EnterBlock(false)
	assert.False(t, env.DeclareFunction(&Function{Name: "add"}))
}

func TestGetFunctionDeepLookup(t *testing.T) {
	env := New()
	env.EnterBlock(false)
	env.DeclareFunction(&Function{Name: "f", ReturnType: values.None})
	env.EnterBlock(true)
	fn, ok := env.GetFunction("f")
	assert.True(t, ok)
	assert.Equal(t, "f", fn.Name)
}

func TestExitBlockOnEmptyStackIsNoop(t *testing.T) {
	env := New()
	assert.NotPanics(t, func() { env.ExitBlock(false) })
}

func TestRecursionExceeded(t *testing.T) {
	env := New()
	env.EnterBlock(false)
	for i := 0; i < MaxDepth; i++ {
		assert.False(t, env.RecursionExceeded())
		env.EnterBlock(true)
	}
	assert.True(t, env.RecursionExceeded())
}

func TestVariableCountReflectsCurrentBlockOnly(t *testing.T) {
	env := New()
	env.EnterBlock(false)
	env.DeclareVariable("a", &Binding{Type: values.Integer, Text: "10"})
	env.DeclareVariable("b", &Binding{Type: values.Integer, Text: "1000"})
	assert.Equal(t, 2, env.VariableCount())
}
