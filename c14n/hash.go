package c14n

import (
	"sort"

	"github.com/iden3/go-rdf-canon/rdf"
)

// positions of a related blank node within a quad
const (
	positionSubject = "s"
	positionObject  = "o"
	positionGraph   = "g"
)

// hashFirstDegreeQuads hashes the quads mentioning id, with id rendered
// as _:a and every other blank node as _:z.
func (s *state) hashFirstDegreeQuads(id string) string {
	if h, ok := s.firstDegree[id]; ok {
		return h
	}

	quads := s.bnodeToQuads[id]
	nquads := make([]string, 0, len(quads))
	for _, q := range quads {
		nquads = append(nquads, rdf.SerializeReference(q, id))
	}
	sort.Strings(nquads)

	h := s.sum(nquads...)
	s.firstDegree[id] = h
	return h
}

// hashRelatedBlankNode hashes the relation between the blank node under
// consideration and related, which occurs at position in q.
func (s *state) hashRelatedBlankNode(related string, q rdf.Quad,
	issuer *IdentifierIssuer, position string) string {

	id, ok := s.canonicalIssuer.Get(related)
	if !ok {
		id, ok = issuer.Get(related)
	}
	if !ok {
		id = s.hashFirstDegreeQuads(related)
	}

	input := position
	if position != positionGraph {
		input += "<" + q.Predicate.Value + ">"
	}
	return s.sum(input, id)
}

type relatedNode struct {
	id       string
	position string
}

// relatedNodes lists the blank nodes of q other than id, in subject,
// object, graph order.
func relatedNodes(q rdf.Quad, id string) []relatedNode {
	var related []relatedNode
	add := func(n rdf.Node, position string) {
		if n.IsBlankNode() && n.Value != id {
			related = append(related, relatedNode{id: n.Value, position: position})
		}
	}
	add(q.Subject, positionSubject)
	add(q.Object, positionObject)
	add(q.Graph, positionGraph)
	return related
}
