package c14n

import (
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"strings"

	sha256 "github.com/minio/sha256-simd"
	"github.com/pkg/errors"
)

// HashAlgorithm selects the digest used by the hashing algorithms.
type HashAlgorithm string

const (
	SHA256 HashAlgorithm = "SHA256"
	SHA384 HashAlgorithm = "SHA384"

	DefaultHashAlgorithm = SHA256
)

var ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")

// ParseHashAlgorithm accepts algorithm names case-insensitively, with or
// without the dash: "sha256", "SHA-256", "sha-384".
func ParseHashAlgorithm(name string) (HashAlgorithm, error) {
	n := strings.ToUpper(strings.ReplaceAll(name, "-", ""))
	switch HashAlgorithm(n) {
	case SHA256:
		return SHA256, nil
	case SHA384:
		return SHA384, nil
	}
	return "", errors.Wrapf(ErrUnsupportedAlgorithm, "%q", name)
}

func (a HashAlgorithm) New() (hash.Hash, error) {
	f, err := a.constructor()
	if err != nil {
		return nil, err
	}
	return f(), nil
}

// Sum returns the hex encoded digest of the concatenation of data.
func (a HashAlgorithm) Sum(data ...string) (string, error) {
	f, err := a.constructor()
	if err != nil {
		return "", err
	}
	return digest(f, data...), nil
}

func (a HashAlgorithm) constructor() (func() hash.Hash, error) {
	switch a {
	case SHA256, "":
		return sha256.New, nil
	case SHA384:
		return sha512.New384, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "%q", string(a))
	}
}

func digest(newHash func() hash.Hash, data ...string) string {
	h := newHash()
	for _, d := range data {
		// hash.Hash writes never fail
		_, _ = h.Write([]byte(d))
	}
	return hex.EncodeToString(h.Sum(nil))
}
