package c14n

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/require"

	"github.com/iden3/go-rdf-canon/rdf"
)

func twoCycles() *rdf.Dataset {
	return mkDataset(
		quad(bn("_:a"), iri("urn:p"), bn("_:b")),
		quad(bn("_:b"), iri("urn:p"), bn("_:a")),
		quad(bn("_:c"), iri("urn:p"), bn("_:d")),
		quad(bn("_:d"), iri("urn:p"), bn("_:c")),
	)
}

func TestIsomorphic(t *testing.T) {
	ctx := context.Background()

	ok, err := Isomorphic(ctx, cycleDataset(4), twoCycles())
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = Isomorphic(ctx, cycleDataset(3), cycleDataset(4))
	require.NoError(t, err)
	require.False(t, ok)

	renamedCycle := mkDataset(
		quad(bn("_:w"), iri("urn:p"), bn("_:x")),
		quad(bn("_:y"), iri("urn:p"), bn("_:z")),
		quad(bn("_:x"), iri("urn:p"), bn("_:y")),
		quad(bn("_:z"), iri("urn:p"), bn("_:w")),
	)
	ok, err = Isomorphic(ctx, cycleDataset(4), renamedCycle)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestIsomorphicPropagatesErrors(t *testing.T) {
	_, err := Isomorphic(context.Background(), cliqueDataset(8),
		cliqueDataset(8), WithMaxWork(10))
	require.ErrorIs(t, err, ErrComplexityExceeded)
}

func TestCanonicalizerHash(t *testing.T) {
	ds := mkDataset(quad(bn("_:x"), iri("urn:p"), lit("1")))

	h, err := New().Hash(context.Background(), ds)
	require.NoError(t, err)
	require.Equal(t,
		"691b94a89fc3f5f88127df6e3676820c6ced068eaf708eee1ebaec060d4d7870", h)

	h, err = New(WithHashAlgorithm(SHA384)).Hash(context.Background(), ds)
	require.NoError(t, err)
	require.Equal(t,
		"bd46859feb38416acd6890a11f7571fc3c5a57e6514435a710e3db8f"+
			"c6dea0b37e2da8c53d3200b5e9baa87c58f79ec2", h)
}

func TestCanonicalizerCID(t *testing.T) {
	ds := mkDataset(quad(bn("_:x"), iri("urn:p"), lit("1")))

	c, err := New().CID(context.Background(), ds)
	require.NoError(t, err)
	require.Equal(t, uint64(1), c.Version())
	require.Equal(t, uint64(cid.Raw), c.Type())

	decoded, err := multihash.Decode(c.Hash())
	require.NoError(t, err)
	require.Equal(t, uint64(multihash.SHA2_256), decoded.Code)
	require.Equal(t,
		"691b94a89fc3f5f88127df6e3676820c6ced068eaf708eee1ebaec060d4d7870",
		hex.EncodeToString(decoded.Digest))

	// renaming blank nodes keeps the address
	other := mkDataset(quad(bn("_:other"), iri("urn:p"), lit("1")))
	c2, err := New().CID(context.Background(), other)
	require.NoError(t, err)
	require.True(t, c.Equals(c2))

	parsed, err := cid.Decode(c.String())
	require.NoError(t, err)
	require.True(t, c.Equals(parsed))
}

func TestHashAndCIDHelpers(t *testing.T) {
	ctx := context.Background()
	ds := mkDataset(quad(bn("_:x"), iri("urn:p"), lit("1")))

	h, err := Hash(ctx, ds)
	require.NoError(t, err)
	want, err := New().Hash(ctx, ds)
	require.NoError(t, err)
	require.Equal(t, want, h)

	h, err = Hash(ctx, ds, WithHashAlgorithm(SHA384))
	require.NoError(t, err)
	require.Len(t, h, 96)

	c, err := CID(ctx, ds)
	require.NoError(t, err)
	wantCID, err := New().CID(ctx, ds)
	require.NoError(t, err)
	require.True(t, c.Equals(wantCID))

	_, err = Hash(ctx, cliqueDataset(8), WithMaxWork(10))
	require.ErrorIs(t, err, ErrComplexityExceeded)
	c, err = CID(ctx, cliqueDataset(8), WithMaxWork(10))
	require.ErrorIs(t, err, ErrComplexityExceeded)
	require.Equal(t, cid.Undef, c)
}
