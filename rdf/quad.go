package rdf

import "strings"

type Triple struct {
	Subject   Node
	Predicate Node
	Object    Node
}

// Quad is a triple with the name of the graph it belongs to. The zero Graph
// is the default graph.
type Quad struct {
	Subject   Node
	Predicate Node
	Object    Node
	Graph     Node
}

func NewQuad(subject, predicate, object, graph Node) Quad {
	return Quad{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
		Graph:     graph,
	}
}

func (q Quad) Triple() Triple {
	return Triple{Subject: q.Subject, Predicate: q.Predicate, Object: q.Object}
}

// GraphName returns the graph name as used by Dataset: the graph node value
// or DefaultGraph.
func (q Quad) GraphName() string {
	if q.Graph.IsZero() {
		return DefaultGraph
	}
	return q.Graph.Value
}

// HasBlankNode reports whether any component of q is a blank node.
func (q Quad) HasBlankNode() bool {
	return q.Subject.IsBlankNode() || q.Object.IsBlankNode() ||
		q.Graph.IsBlankNode()
}

// Validate checks the structural invariants a quad must hold to be
// canonicalized.
func (q Quad) Validate() error {
	for _, n := range [...]Node{q.Subject, q.Predicate, q.Object, q.Graph} {
		if n.Kind > KindIRI || (n.Kind == 0 && !n.IsZero()) {
			return &MalformedError{Quad: q, Reason: "unknown node kind"}
		}
	}
	switch {
	case q.Subject.IsZero() || q.Predicate.IsZero() || q.Object.IsZero():
		return &MalformedError{Quad: q, Reason: "missing component"}
	case q.Subject.IsLiteral():
		return &MalformedError{Quad: q, Reason: "literal used as subject"}
	case q.Predicate.IsBlankNode():
		return &MalformedError{Quad: q, Reason: "blank node used as predicate"}
	case !q.Predicate.IsIRI():
		return &MalformedError{Quad: q, Reason: "predicate is not an IRI"}
	case q.Graph.IsLiteral():
		return &MalformedError{Quad: q, Reason: "literal used as graph name"}
	}
	for _, n := range [...]Node{q.Subject, q.Object, q.Graph} {
		if n.IsBlankNode() && (len(n.Value) <= len(BlankNodePrefix) ||
			!strings.HasPrefix(n.Value, BlankNodePrefix)) {
			return &MalformedError{Quad: q,
				Reason: "invalid blank node identifier " + n.Value}
		}
	}
	return nil
}

// graphNode converts a Dataset graph name back to the graph component of a
// quad.
func graphNode(name string) Node {
	switch {
	case name == DefaultGraph || name == "":
		return Node{}
	case strings.HasPrefix(name, BlankNodePrefix):
		return NewBlankNode(name)
	default:
		return NewIRI(name)
	}
}
