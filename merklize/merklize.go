// Package merklize commits to the canonical statements of a dataset with a
// sparse merkle tree, so single statements can be disclosed with an
// inclusion proof against the root.
package merklize

import (
	"context"
	"math/big"
	"strings"

	"github.com/iden3/go-iden3-crypto/constants"
	"github.com/iden3/go-iden3-crypto/poseidon"
	"github.com/iden3/go-merkletree-sql/v2"
	"github.com/iden3/go-merkletree-sql/v2/db/memory"
	"github.com/pkg/errors"

	"github.com/iden3/go-rdf-canon/c14n"
	"github.com/iden3/go-rdf-canon/rdf"
)

const mtLevels = 40

var ErrKeyOutOfField = errors.New("statement key is not in the field")

// Hasher maps statements to merkle tree keys.
type Hasher interface {
	HashBytes(msg []byte) (*big.Int, error)
	Prime() *big.Int
}

type PoseidonHasher struct{}

func (PoseidonHasher) HashBytes(msg []byte) (*big.Int, error) {
	return poseidon.HashBytes(msg)
}

func (PoseidonHasher) Prime() *big.Int {
	return new(big.Int).Set(constants.Q)
}

var defaultHasher Hasher = PoseidonHasher{}

type MerkleTree interface {
	Add(ctx context.Context, key, value *big.Int) error
	GenerateProof(ctx context.Context,
		key *big.Int) (*merkletree.Proof, *big.Int, error)
	Root() *merkletree.Hash
}

type mtSQLAdapter merkletree.MerkleTree

func (a *mtSQLAdapter) Add(ctx context.Context, key, value *big.Int) error {
	return (*merkletree.MerkleTree)(a).Add(ctx, key, value)
}

func (a *mtSQLAdapter) GenerateProof(ctx context.Context,
	key *big.Int) (*merkletree.Proof, *big.Int, error) {

	return (*merkletree.MerkleTree)(a).GenerateProof(ctx, key, nil)
}

func (a *mtSQLAdapter) Root() *merkletree.Hash {
	return (*merkletree.MerkleTree)(a).Root()
}

// MerkleTreeSQLAdapter lets a go-merkletree-sql tree with any storage
// back a Merklizer.
func MerkleTreeSQLAdapter(mt *merkletree.MerkleTree) MerkleTree {
	return (*mtSQLAdapter)(mt)
}

func newMemoryTree(ctx context.Context) (MerkleTree, error) {
	mt, err := merkletree.NewMerkleTree(ctx, memory.NewMemoryStorage(),
		mtLevels)
	if err != nil {
		return nil, err
	}
	return MerkleTreeSQLAdapter(mt), nil
}

// Merklizer holds the canonical statements of a dataset and the tree built
// over them.
type Merklizer struct {
	statements []string
	mt         MerkleTree
	hasher     Hasher
	c14nOpts   []c14n.Opt
}

type MerklizeOption func(m *Merklizer)

func WithHasher(h Hasher) MerklizeOption {
	return func(m *Merklizer) {
		m.hasher = h
	}
}

// WithMerkleTree sets the tree statements are added to. The tree is
// expected to be empty.
func WithMerkleTree(mt MerkleTree) MerklizeOption {
	return func(m *Merklizer) {
		m.mt = mt
	}
}

func WithCanonicalizerOptions(opts ...c14n.Opt) MerklizeOption {
	return func(m *Merklizer) {
		m.c14nOpts = append(m.c14nOpts, opts...)
	}
}

func newMerklizer(ctx context.Context,
	opts []MerklizeOption) (*Merklizer, error) {

	mz := &Merklizer{}
	for _, o := range opts {
		o(mz)
	}
	if mz.hasher == nil {
		mz.hasher = defaultHasher
	}
	if mz.mt == nil {
		var err error
		mz.mt, err = newMemoryTree(ctx)
		if err != nil {
			return nil, err
		}
	}
	return mz, nil
}

// Merklize canonicalizes ds and adds every canonical statement to the
// tree. The key of a statement is the hash of its text without the line
// terminator, the value is its position in canonical order.
func Merklize(ctx context.Context, ds *rdf.Dataset,
	opts ...MerklizeOption) (*Merklizer, error) {

	mz, err := newMerklizer(ctx, opts)
	if err != nil {
		return nil, err
	}

	nquads, err := c14n.Canonicalize(ctx, ds, mz.c14nOpts...)
	if err != nil {
		return nil, err
	}

	if err = mz.addStatements(ctx, splitStatements(nquads)); err != nil {
		return nil, err
	}
	return mz, nil
}

func splitStatements(nquads string) []string {
	if nquads == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(nquads, "\n"), "\n")
}

func (m *Merklizer) addStatements(ctx context.Context,
	statements []string) error {

	for i, st := range statements {
		key, err := statementKey(m.hasher, st)
		if err != nil {
			return err
		}
		err = m.mt.Add(ctx, key, big.NewInt(int64(i)))
		if err != nil {
			return errors.Wrapf(err, "can't add statement %d", i)
		}
	}
	m.statements = statements
	return nil
}

func statementKey(h Hasher, statement string) (*big.Int, error) {
	key, err := h.HashBytes([]byte(statement))
	if err != nil {
		return nil, errors.Wrap(err, "can't hash statement")
	}
	if key.Sign() < 0 || key.Cmp(h.Prime()) >= 0 {
		return nil, ErrKeyOutOfField
	}
	return key, nil
}

func (m *Merklizer) Root() *merkletree.Hash {
	return m.mt.Root()
}

// Statements returns the canonical statements in tree value order.
func (m *Merklizer) Statements() []string {
	return append([]string(nil), m.statements...)
}

// Proof returns the proof for statement and the value stored under its
// key. For a statement that is not in the tree the proof is a proof of
// non-existence.
func (m *Merklizer) Proof(ctx context.Context,
	statement string) (*merkletree.Proof, *big.Int, error) {

	key, err := statementKey(m.hasher, statement)
	if err != nil {
		return nil, nil, err
	}
	return m.mt.GenerateProof(ctx, key)
}

// VerifyStatement checks a Poseidon keyed inclusion proof of statement at
// position index against root.
func VerifyStatement(root *merkletree.Hash, proof *merkletree.Proof,
	statement string, index int) (bool, error) {

	return verifyStatement(defaultHasher, root, proof, statement, index)
}

// Verify is VerifyStatement with the hasher and root of m.
func (m *Merklizer) Verify(proof *merkletree.Proof, statement string,
	index int) (bool, error) {

	return verifyStatement(m.hasher, m.Root(), proof, statement, index)
}

func verifyStatement(h Hasher, root *merkletree.Hash,
	proof *merkletree.Proof, statement string, index int) (bool, error) {

	if proof == nil || root == nil {
		return false, errors.New("proof and root are required")
	}
	key, err := statementKey(h, statement)
	if err != nil {
		return false, err
	}
	if !proof.Existence {
		return false, nil
	}
	return merkletree.VerifyProof(root, proof, key,
		big.NewInt(int64(index))), nil
}
