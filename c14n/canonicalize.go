package c14n

import (
	"context"
	"sort"
	"strings"

	"github.com/iden3/go-rdf-canon/rdf"
)

// Canonicalize returns the canonical N-Quads serialization of ds using a
// Canonicalizer configured with opts.
func Canonicalize(ctx context.Context, ds *rdf.Dataset,
	opts ...Opt) (string, error) {

	return New(opts...).Canonicalize(ctx, ds)
}

// CanonicalizeDataset returns a copy of ds with every blank node relabeled
// with its canonical identifier.
func CanonicalizeDataset(ctx context.Context, ds *rdf.Dataset,
	opts ...Opt) (*rdf.Dataset, error) {

	return New(opts...).CanonicalizeDataset(ctx, ds)
}

// Canonicalize returns the canonical N-Quads serialization of ds: one
// statement per line, lines sorted, each terminated by "\n".
func (c *Canonicalizer) Canonicalize(ctx context.Context,
	ds *rdf.Dataset) (string, error) {

	out, err := c.CanonicalizeDataset(ctx, ds)
	if err != nil {
		return "", err
	}
	return Serialize(out), nil
}

// CanonicalizeDataset returns a new dataset where every blank node is
// replaced by its canonical identifier. ds is not modified.
func (c *Canonicalizer) CanonicalizeDataset(ctx context.Context,
	ds *rdf.Dataset) (*rdf.Dataset, error) {

	s, err := c.run(ctx, ds)
	if err != nil {
		return nil, err
	}

	relabel := func(n rdf.Node) rdf.Node {
		if !n.IsBlankNode() {
			return n
		}
		return rdf.NewBlankNode(s.canonicalIssuer.Issue(n.Value))
	}

	out := rdf.NewDataset()
	for _, q := range ds.Quads() {
		out.AddQuad(rdf.NewQuad(relabel(q.Subject), q.Predicate,
			relabel(q.Object), relabel(q.Graph)))
	}
	return out, nil
}

// IssuedIdentifiers returns the mapping from the blank node identifiers of
// ds to their canonical identifiers.
func (c *Canonicalizer) IssuedIdentifiers(ctx context.Context,
	ds *rdf.Dataset) (map[string]string, error) {

	s, err := c.run(ctx, ds)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, s.canonicalIssuer.Len())
	for _, k := range s.canonicalIssuer.Keys() {
		m[k], _ = s.canonicalIssuer.Get(k)
	}
	return m, nil
}

// Serialize renders every quad of ds as a canonical statement and returns
// the sorted concatenation. Blank node labels are written as they are.
func Serialize(ds *rdf.Dataset) string {
	quads := ds.Quads()
	lines := make([]string, 0, len(quads))
	for _, q := range quads {
		lines = append(lines, rdf.Serialize(q))
	}
	sort.Strings(lines)
	return strings.Join(lines, "")
}

// run issues a canonical identifier to every blank node of ds.
func (c *Canonicalizer) run(ctx context.Context, ds *rdf.Dataset) (*state,
	error) {

	newHash, err := c.algorithm.constructor()
	if err != nil {
		return nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	s := newState(ctx, newHash, c.maxWork)
	if err = s.index(ds); err != nil {
		return nil, err
	}

	s.issueSimple()

	if err = s.issueComplex(); err != nil {
		return nil, err
	}
	return s, nil
}

// issueSimple issues canonical identifiers to blank nodes whose first
// degree hash is unique, until no more such nodes are found.
func (s *state) issueSimple() {
	nonNormalized := make(map[string]struct{}, len(s.bnodeOrder))
	for _, id := range s.bnodeOrder {
		nonNormalized[id] = struct{}{}
	}

	for simple := true; simple; {
		simple = false

		s.hashToBnodes = make(map[string][]string)
		for _, id := range s.bnodeOrder {
			if _, ok := nonNormalized[id]; !ok {
				continue
			}
			h := s.hashFirstDegreeQuads(id)
			s.hashToBnodes[h] = append(s.hashToBnodes[h], id)
		}

		for _, h := range sortedKeys(s.hashToBnodes) {
			ids := s.hashToBnodes[h]
			if len(ids) > 1 {
				continue
			}
			s.canonicalIssuer.Issue(ids[0])
			delete(nonNormalized, ids[0])
			delete(s.hashToBnodes, h)
			simple = true
		}
	}
}

// issueComplex breaks the ties left by issueSimple using N-degree hashes.
func (s *state) issueComplex() error {
	for _, h := range sortedKeys(s.hashToBnodes) {
		var results []ndegreeResult
		for _, id := range s.hashToBnodes[h] {
			if s.canonicalIssuer.Exists(id) {
				continue
			}
			issuer := NewIdentifierIssuer(temporaryPrefix)
			issuer.Issue(id)
			result, err := s.hashNDegreeQuads(id, issuer)
			if err != nil {
				return err
			}
			results = append(results, result)
		}

		sort.SliceStable(results, func(i, j int) bool {
			return results[i].hash < results[j].hash
		})
		for _, result := range results {
			for _, id := range result.issuer.Keys() {
				s.canonicalIssuer.Issue(id)
			}
		}
	}
	return nil
}
