package c14n

import (
	"strings"
)

type ndegreeResult struct {
	hash   string
	issuer *IdentifierIssuer
}

// hashNDegreeQuads hashes the neighbourhood of id reachable through other
// blank nodes. The issuer passed in is never modified; the returned issuer
// extends it with the temporary identifiers chosen along the way.
func (s *state) hashNDegreeQuads(id string,
	issuer *IdentifierIssuer) (ndegreeResult, error) {

	if err := s.charge(); err != nil {
		return ndegreeResult{}, err
	}

	hashToRelated := make(map[string][]string)
	for _, q := range s.bnodeToQuads[id] {
		for _, r := range relatedNodes(q, id) {
			h := s.hashRelatedBlankNode(r.id, q, issuer, r.position)
			hashToRelated[h] = append(hashToRelated[h], r.id)
		}
	}

	var dataToHash strings.Builder
	for _, h := range sortedKeys(hashToRelated) {
		dataToHash.WriteString(h)

		path, chosenIssuer, err := s.choosePath(hashToRelated[h], issuer)
		if err != nil {
			return ndegreeResult{}, err
		}
		dataToHash.WriteString(path)
		issuer = chosenIssuer
	}

	return ndegreeResult{hash: s.sum(dataToHash.String()), issuer: issuer},
		nil
}

// choosePath returns the lexicographically smallest path over all
// permutations of related, together with the issuer that produced it.
func (s *state) choosePath(related []string,
	issuer *IdentifierIssuer) (string, *IdentifierIssuer, error) {

	var (
		chosen       bool
		chosenPath   string
		chosenIssuer *IdentifierIssuer
	)

	// a partial path that already sorts after the chosen one cannot win
	worse := func(path string) bool {
		return chosen && len(path) >= len(chosenPath) && path > chosenPath
	}

	p := newPermuter(related)
nextPermutation:
	for p.Next() {
		if err := s.charge(); err != nil {
			return "", nil, err
		}

		issuerCopy := issuer.Clone()
		var path string
		var recursion []string

		for _, r := range p.Permutation() {
			if id, ok := s.canonicalIssuer.Get(r); ok {
				path += id
			} else {
				if !issuerCopy.Exists(r) {
					recursion = append(recursion, r)
				}
				path += issuerCopy.Issue(r)
			}
			if worse(path) {
				continue nextPermutation
			}
		}

		for _, r := range recursion {
			result, err := s.hashNDegreeQuads(r, issuerCopy)
			if err != nil {
				return "", nil, err
			}
			path += issuerCopy.Issue(r) + "<" + result.hash + ">"
			issuerCopy = result.issuer
			if worse(path) {
				continue nextPermutation
			}
		}

		if !chosen || path < chosenPath {
			chosen = true
			chosenPath = path
			chosenIssuer = issuerCopy
		}
	}

	return chosenPath, chosenIssuer, nil
}
