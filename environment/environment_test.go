package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnv_DefineAndGet(t *testing.T) {
	e := New(nil)
	e.Define("a", 1.0)
	v, err := e.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestEnv_GetUndefinedFails(t *testing.T) {
	e := New(nil)
	_, err := e.Get("missing")
	require.Error(t, err)
	var undef *UndefinedVariableError
	require.ErrorAs(t, err, &undef)
}

func TestEnv_GetWalksToEnclosing(t *testing.T) {
	outer := New(nil)
	outer.Define("a", "outer-value")
	inner := New(outer)
	v, err := inner.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "outer-value", v)
}

func TestEnv_DefineShadowsWithoutMutatingEnclosing(t *testing.T) {
	outer := New(nil)
	outer.Define("a", 1.0)
	inner := New(outer)
	inner.Define("a", 2.0)

	innerVal, err := inner.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 2.0, innerVal)

	outerVal, err := outer.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1.0, outerVal)
}

func TestEnv_AssignUpdatesNearestDefiningFrame(t *testing.T) {
	outer := New(nil)
	outer.Define("a", 1.0)
	inner := New(outer)

	require.NoError(t, inner.Assign("a", 2.0))

	v, err := outer.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}

func TestEnv_AssignUndefinedFails(t *testing.T) {
	e := New(nil)
	err := e.Assign("missing", 1.0)
	require.Error(t, err)
}

func TestEnv_GetAtAndAssignAtSkipStraightToFrame(t *testing.T) {
	global := New(nil)
	block1 := New(global)
	block2 := New(block1)
	block1.Define("a", "block1-value")

	v, err := block2.GetAt(1, "a")
	require.NoError(t, err)
	assert.Equal(t, "block1-value", v)

	block2.AssignAt(1, "a", "updated")
	v, err = block1.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "updated", v)
}

func TestEnv_AncestorFollowsEnclosingChain(t *testing.T) {
	global := New(nil)
	block1 := New(global)
	block2 := New(block1)

	assert.Same(t, block2, block2.Ancestor(0))
	assert.Same(t, block1, block2.Ancestor(1))
	assert.Same(t, global, block2.Ancestor(2))
}
