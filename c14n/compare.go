package c14n

import (
	"context"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/pkg/errors"

	"github.com/iden3/go-rdf-canon/rdf"
)

// Isomorphic reports whether a and b are equal up to blank node renaming.
func Isomorphic(ctx context.Context, a, b *rdf.Dataset,
	opts ...Opt) (bool, error) {

	return New(opts...).Isomorphic(ctx, a, b)
}

func (c *Canonicalizer) Isomorphic(ctx context.Context,
	a, b *rdf.Dataset) (bool, error) {

	if a.Len() != b.Len() {
		return false, nil
	}
	ca, err := c.Canonicalize(ctx, a)
	if err != nil {
		return false, err
	}
	cb, err := c.Canonicalize(ctx, b)
	if err != nil {
		return false, err
	}
	return ca == cb, nil
}

// Hash returns the hex digest of the canonical serialization of ds.
func Hash(ctx context.Context, ds *rdf.Dataset, opts ...Opt) (string,
	error) {

	return New(opts...).Hash(ctx, ds)
}

// CID addresses the canonical serialization of ds, see Canonicalizer.CID.
func CID(ctx context.Context, ds *rdf.Dataset, opts ...Opt) (cid.Cid,
	error) {

	return New(opts...).CID(ctx, ds)
}

// Hash returns the hex digest of the canonical serialization of ds, using
// the configured hash algorithm.
func (c *Canonicalizer) Hash(ctx context.Context,
	ds *rdf.Dataset) (string, error) {

	nquads, err := c.Canonicalize(ctx, ds)
	if err != nil {
		return "", err
	}
	return c.algorithm.Sum(nquads)
}

// CID returns a CIDv1 (raw codec, sha2-256 multihash) addressing the
// canonical serialization of ds.
func (c *Canonicalizer) CID(ctx context.Context,
	ds *rdf.Dataset) (cid.Cid, error) {

	nquads, err := c.Canonicalize(ctx, ds)
	if err != nil {
		return cid.Undef, err
	}
	return CIDv1(nquads)
}

// CIDv1 returns the CIDv1 (raw codec, sha2-256 multihash) of canonical
// N-Quads text.
func CIDv1(nquads string) (cid.Cid, error) {
	sum, err := multihash.Sum([]byte(nquads), multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, errors.Wrap(err, "can't compute multihash")
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}
