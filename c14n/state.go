package c14n

import (
	"context"
	"hash"
	"sort"

	"github.com/iden3/go-rdf-canon/rdf"
)

// state is the working set of a single canonicalization run.
type state struct {
	ctx     context.Context
	newHash func() hash.Hash

	// quads mentioning each blank node, keys kept in first-seen order
	bnodeToQuads map[string][]rdf.Quad
	bnodeOrder   []string

	hashToBnodes    map[string][]string
	canonicalIssuer *IdentifierIssuer

	// first degree hashes never change during a run
	firstDegree map[string]string

	maxWork int
	work    int
}

func newState(ctx context.Context, newHash func() hash.Hash,
	maxWork int) *state {

	return &state{
		ctx:             ctx,
		newHash:         newHash,
		bnodeToQuads:    make(map[string][]rdf.Quad),
		hashToBnodes:    make(map[string][]string),
		canonicalIssuer: NewIdentifierIssuer(canonicalPrefix),
		firstDegree:     make(map[string]string),
		maxWork:         maxWork,
	}
}

// index validates ds and records, for every blank node, the quads it
// occurs in. A quad is recorded once per position the node occupies, so a
// quad linking a node to itself appears twice in its list.
func (s *state) index(ds *rdf.Dataset) error {
	for _, q := range ds.Quads() {
		if err := q.Validate(); err != nil {
			return err
		}
		if !q.HasBlankNode() {
			continue
		}
		for _, n := range [...]rdf.Node{q.Subject, q.Object, q.Graph} {
			if !n.IsBlankNode() {
				continue
			}
			quads, ok := s.bnodeToQuads[n.Value]
			if !ok {
				s.bnodeOrder = append(s.bnodeOrder, n.Value)
			}
			s.bnodeToQuads[n.Value] = append(quads, q)
		}
	}
	return nil
}

// charge spends one unit of work and reports budget or context exhaustion.
func (s *state) charge() error {
	s.work++
	if s.maxWork > 0 && s.work > s.maxWork {
		return &ComplexityError{Limit: s.maxWork, Work: s.work}
	}
	if err := s.ctx.Err(); err != nil {
		return &ComplexityError{Limit: s.maxWork, Work: s.work, Err: err}
	}
	return nil
}

func (s *state) sum(data ...string) string {
	return digest(s.newHash, data...)
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
