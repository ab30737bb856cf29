package c14n

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentifierIssuer(t *testing.T) {
	i := NewIdentifierIssuer("_:b")
	require.Equal(t, "_:b0", i.Issue("_:x"))
	require.Equal(t, "_:b1", i.Issue("_:y"))
	require.Equal(t, "_:b0", i.Issue("_:x"))
	require.Equal(t, 2, i.Len())
	require.Equal(t, []string{"_:x", "_:y"}, i.Keys())

	id, ok := i.Get("_:y")
	require.True(t, ok)
	require.Equal(t, "_:b1", id)

	_, ok = i.Get("_:z")
	require.False(t, ok)
	require.False(t, i.Exists("_:z"))
}

func TestIdentifierIssuerClone(t *testing.T) {
	i := NewIdentifierIssuer("_:c14n")
	i.Issue("_:a")

	c := i.Clone()
	require.Equal(t, "_:c14n1", c.Issue("_:b"))
	require.False(t, i.Exists("_:b"))
	require.Equal(t, 1, i.Len())

	// the cloned-from issuer keeps its own counter
	require.Equal(t, "_:c14n1", i.Issue("_:c"))
	require.Equal(t, []string{"_:a", "_:b"}, c.Keys())
	require.Equal(t, "_:c14n", c.Prefix())
}

func TestIdentifierIssuerKeysIsCopy(t *testing.T) {
	i := NewIdentifierIssuer("_:b")
	i.Issue("_:x")
	keys := i.Keys()
	keys[0] = "_:changed"
	require.Equal(t, []string{"_:x"}, i.Keys())
}
