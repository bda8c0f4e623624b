package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zk-lang/zk/internal/zkerror"
)

func TestClassifyNoArguments(t *testing.T) {
	_, err := classify(nil)
	require.NotNil(t, err)
	assert.Equal(t, zkerror.CLIError, err.Kind)
	assert.Equal(t, "No argument was given.", err.Message)
}

func TestClassifyTooManyArguments(t *testing.T) {
	_, err := classify([]string{"a.zk", "--help"})
	require.NotNil(t, err)
	assert.Equal(t, zkerror.CLIError, err.Kind)
	assert.Equal(t, "Too many arguments.", err.Message)
}

func TestClassifyScriptPath(t *testing.T) {
	c, err := classify([]string{"main.zk"})
	require.Nil(t, err)
	assert.Equal(t, "main.zk", c.arg)
	assert.False(t, c.help)
	assert.False(t, c.version)
	assert.False(t, c.init)
}

func TestClassifyHelpVersionInit(t *testing.T) {
	c, err := classify([]string{"help"})
	require.Nil(t, err)
	assert.True(t, c.help)

	c, err = classify([]string{"version"})
	require.Nil(t, err)
	assert.True(t, c.version)

	c, err = classify([]string{"init"})
	require.Nil(t, err)
	assert.True(t, c.init)
}

func TestClassifyHelpZkQuirk(t *testing.T) {
	c, err := classify([]string{"help.zk"})
	require.Nil(t, err)
	assert.Equal(t, "help.zk", c.arg)
	assert.True(t, c.help)
}
