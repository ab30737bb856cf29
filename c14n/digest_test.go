package c14n

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestParseHashAlgorithm(t *testing.T) {
	for in, want := range map[string]HashAlgorithm{
		"SHA256":  SHA256,
		"sha-256": SHA256,
		"Sha384":  SHA384,
		"SHA-384": SHA384,
	} {
		got, err := ParseHashAlgorithm(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got)
	}

	_, err := ParseHashAlgorithm("sha1")
	require.True(t, errors.Is(err, ErrUnsupportedAlgorithm), err)
}

func TestHashAlgorithmSum(t *testing.T) {
	got, err := SHA256.Sum("a", "bc")
	require.NoError(t, err)
	require.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		got)

	got, err = SHA384.Sum("abc")
	require.NoError(t, err)
	require.Equal(t,
		"cb00753f45a35e8bb5a03d699ac65007272c32ab0eded1631a8b605a43ff5bed"+
			"8086072ba1e7cc2358baeca134c825a7", got)

	h, err := SHA384.New()
	require.NoError(t, err)
	require.Equal(t, 48, h.Size())

	_, err = HashAlgorithm("MD5").Sum("abc")
	require.True(t, errors.Is(err, ErrUnsupportedAlgorithm), err)
}

func TestHashFirstDegreeQuads(t *testing.T) {
	newHash, err := SHA256.constructor()
	require.NoError(t, err)

	s := newState(context.Background(), newHash, DefaultMaxWork)
	require.NoError(t, s.index(uniqueHashesDataset()))
	require.Equal(t,
		"21d1dd5ba21f3dee9d76c0c00c260fa6f5d5d65315099e553026f4828d0dc77a",
		s.hashFirstDegreeQuads("_:e0"))
}
