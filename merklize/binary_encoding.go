package merklize

import (
	"bytes"
	"context"
	"encoding/gob"
	"math/big"

	"github.com/pkg/errors"
)

const mzEncodingVersion = 1

var ErrRootMismatch = errors.New("root hash mismatch")

// MerklizerFromBytes restores a Merklizer written by MarshalBinary,
// rebuilding its tree from the stored statements.
func MerklizerFromBytes(in []byte, opts ...MerklizeOption) (*Merklizer,
	error) {

	mz, err := newMerklizer(context.Background(), opts)
	if err != nil {
		return nil, err
	}
	if err = mz.UnmarshalBinary(in); err != nil {
		return nil, err
	}
	return mz, nil
}

func (m *Merklizer) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	if err := enc.Encode(mzEncodingVersion); err != nil {
		return nil, err
	}
	if err := enc.Encode(m.Root().BigInt()); err != nil {
		return nil, err
	}
	if err := enc.Encode(m.statements); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary adds the encoded statements to the tree of m, which must
// be empty, and checks the resulting root against the encoded one.
func (m *Merklizer) UnmarshalBinary(in []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(in))

	var version int
	if err := dec.Decode(&version); err != nil {
		return err
	}
	if version != mzEncodingVersion {
		return errors.Errorf("wrong encoding version: %v", version)
	}

	var root *big.Int
	if err := dec.Decode(&root); err != nil {
		return err
	}

	var statements []string
	if err := dec.Decode(&statements); err != nil {
		return err
	}

	if m.hasher == nil {
		m.hasher = defaultHasher
	}
	if m.mt == nil {
		var err error
		m.mt, err = newMemoryTree(context.Background())
		if err != nil {
			return err
		}
	}

	err := m.addStatements(context.Background(), statements)
	if err != nil {
		return err
	}
	if m.Root().BigInt().Cmp(root) != 0 {
		return ErrRootMismatch
	}
	return nil
}
