package c14n

import "time"

// DefaultMaxWork bounds the number of permutation candidates and N-degree
// hash computations a single run may evaluate.
const DefaultMaxWork = 1 << 18

// Canonicalizer holds the configuration of canonicalization runs. It is
// immutable after New and safe for concurrent use.
type Canonicalizer struct {
	algorithm HashAlgorithm
	maxWork   int
	timeout   time.Duration
}

// Opt configures a Canonicalizer.
type Opt func(c *Canonicalizer)

// WithHashAlgorithm selects the digest used for hashing blank nodes.
func WithHashAlgorithm(a HashAlgorithm) Opt {
	return func(c *Canonicalizer) {
		c.algorithm = a
	}
}

// WithMaxWork sets the work budget of a run. n <= 0 removes the bound.
func WithMaxWork(n int) Opt {
	return func(c *Canonicalizer) {
		c.maxWork = n
	}
}

// WithTimeout bounds the wall-clock time of a run. Zero disables it.
func WithTimeout(d time.Duration) Opt {
	return func(c *Canonicalizer) {
		c.timeout = d
	}
}

func New(opts ...Opt) *Canonicalizer {
	c := &Canonicalizer{
		algorithm: DefaultHashAlgorithm,
		maxWork:   DefaultMaxWork,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Canonicalizer) HashAlgorithm() HashAlgorithm { return c.algorithm }
