package merklize

import (
	"context"
	"fmt"
	"math/big"
	"testing"

	"github.com/iden3/go-merkletree-sql/v2"
	"github.com/iden3/go-merkletree-sql/v2/db/memory"
	sha256 "github.com/minio/sha256-simd"
	"github.com/stretchr/testify/require"

	"github.com/iden3/go-rdf-canon/c14n"
	"github.com/iden3/go-rdf-canon/rdf"
)

func testDataset(subject string) *rdf.Dataset {
	ds := rdf.NewDataset()
	ds.AddQuad(rdf.NewQuad(rdf.NewBlankNode(subject),
		rdf.NewIRI("http://schema.org/name"), rdf.NewLiteral("Alice", "", ""),
		rdf.Node{}))
	ds.AddQuad(rdf.NewQuad(rdf.NewBlankNode(subject),
		rdf.NewIRI("http://schema.org/birthDate"),
		rdf.NewLiteral("2000-01-01",
			"http://www.w3.org/2001/XMLSchema#date", ""),
		rdf.Node{}))
	ds.AddQuad(rdf.NewQuad(rdf.NewIRI("urn:issuer"),
		rdf.NewIRI("urn:issued"), rdf.NewBlankNode(subject), rdf.Node{}))
	return ds
}

func TestMerklize(t *testing.T) {
	ctx := context.Background()
	mz, err := Merklize(ctx, testDataset("_:x"))
	require.NoError(t, err)

	require.Equal(t, []string{
		"<urn:issuer> <urn:issued> _:c14n0 .",
		"_:c14n0 <http://schema.org/birthDate> " +
			"\"2000-01-01\"^^<http://www.w3.org/2001/XMLSchema#date> .",
		"_:c14n0 <http://schema.org/name> \"Alice\" .",
	}, mz.Statements())

	for i, st := range mz.Statements() {
		proof, value, err := mz.Proof(ctx, st)
		require.NoError(t, err)
		require.True(t, proof.Existence)
		require.Equal(t, int64(i), value.Int64())

		ok, err := VerifyStatement(mz.Root(), proof, st, i)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = mz.Verify(proof, st, i+1)
		require.NoError(t, err)
		require.False(t, ok)
	}
}

func TestMerklizeRootIgnoresBlankNodeLabels(t *testing.T) {
	ctx := context.Background()
	a, err := Merklize(ctx, testDataset("_:x"))
	require.NoError(t, err)
	b, err := Merklize(ctx, testDataset("_:other"))
	require.NoError(t, err)
	require.Equal(t, a.Root().String(), b.Root().String())
}

func TestMerklizeProofOfAbsentStatement(t *testing.T) {
	ctx := context.Background()
	mz, err := Merklize(ctx, testDataset("_:x"))
	require.NoError(t, err)

	st := "_:c14n0 <http://schema.org/name> \"Bob\" ."
	proof, _, err := mz.Proof(ctx, st)
	require.NoError(t, err)
	require.False(t, proof.Existence)

	ok, err := VerifyStatement(mz.Root(), proof, st, 2)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMerklizeWithMerkleTree(t *testing.T) {
	ctx := context.Background()
	mt, err := merkletree.NewMerkleTree(ctx, memory.NewMemoryStorage(), 40)
	require.NoError(t, err)

	mz, err := Merklize(ctx, testDataset("_:x"),
		WithMerkleTree(MerkleTreeSQLAdapter(mt)))
	require.NoError(t, err)
	require.Equal(t, mt.Root().String(), mz.Root().String())

	key, err := PoseidonHasher{}.HashBytes(
		[]byte("<urn:issuer> <urn:issued> _:c14n0 ."))
	require.NoError(t, err)
	_, value, _, err := mt.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, int64(0), value.Int64())
}

type sha256Hasher struct{}

func (sha256Hasher) HashBytes(msg []byte) (*big.Int, error) {
	sum := sha256.Sum256(msg)
	k := new(big.Int).SetBytes(sum[:])
	return k.Mod(k, PoseidonHasher{}.Prime()), nil
}

func (sha256Hasher) Prime() *big.Int { return PoseidonHasher{}.Prime() }

type outOfFieldHasher struct{ sha256Hasher }

func (outOfFieldHasher) HashBytes([]byte) (*big.Int, error) {
	return PoseidonHasher{}.Prime(), nil
}

func TestMerklizeWithHasher(t *testing.T) {
	ctx := context.Background()
	poseidonMz, err := Merklize(ctx, testDataset("_:x"))
	require.NoError(t, err)

	mz, err := Merklize(ctx, testDataset("_:x"), WithHasher(sha256Hasher{}))
	require.NoError(t, err)
	require.NotEqual(t, poseidonMz.Root().String(), mz.Root().String())

	st := mz.Statements()[1]
	proof, _, err := mz.Proof(ctx, st)
	require.NoError(t, err)

	ok, err := mz.Verify(proof, st, 1)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = Merklize(ctx, testDataset("_:x"),
		WithHasher(outOfFieldHasher{}))
	require.ErrorIs(t, err, ErrKeyOutOfField)
}

func TestMerklizeCanonicalizerOptions(t *testing.T) {
	ds := rdf.NewDataset()
	for i := 0; i < 4; i++ {
		ds.AddQuad(rdf.NewQuad(rdf.NewBlankNode(fmt.Sprintf("_:n%d", i)),
			rdf.NewIRI("urn:p"),
			rdf.NewBlankNode(fmt.Sprintf("_:n%d", (i+1)%4)), rdf.Node{}))
	}
	_, err := Merklize(context.Background(), ds,
		WithCanonicalizerOptions(c14n.WithMaxWork(1)))
	require.ErrorIs(t, err, c14n.ErrComplexityExceeded)
}

func TestMerklizerBinaryEncoding(t *testing.T) {
	ctx := context.Background()
	mz, err := Merklize(ctx, testDataset("_:x"))
	require.NoError(t, err)

	b, err := mz.MarshalBinary()
	require.NoError(t, err)

	mz2, err := MerklizerFromBytes(b)
	require.NoError(t, err)
	require.Equal(t, mz.Root().String(), mz2.Root().String())
	require.Equal(t, mz.Statements(), mz2.Statements())

	// a different hasher cannot reproduce the encoded root
	_, err = MerklizerFromBytes(b, WithHasher(sha256Hasher{}))
	require.ErrorIs(t, err, ErrRootMismatch)

	_, err = MerklizerFromBytes([]byte("garbage"))
	require.Error(t, err)
}
