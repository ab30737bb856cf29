// Package jsonld converts between json-gold datasets and rdf.Dataset.
package jsonld

import (
	"sort"
	"strings"

	"github.com/piprate/json-gold/ld"
	"github.com/pkg/errors"

	"github.com/iden3/go-rdf-canon/rdf"
)

// FromLD converts a json-gold dataset. The default graph comes first, named
// graphs follow in name order.
func FromLD(in *ld.RDFDataset) (*rdf.Dataset, error) {
	ds := rdf.NewDataset()
	if in == nil {
		return ds, nil
	}

	for _, name := range graphNames(in) {
		for _, q := range in.Graphs[name] {
			quad, err := fromLDQuad(q, name)
			if err != nil {
				return nil, errors.WithMessagef(err, "graph %q", name)
			}
			ds.AddQuad(quad)
		}
	}
	return ds, nil
}

func graphNames(in *ld.RDFDataset) []string {
	names := make([]string, 0, len(in.Graphs))
	for name := range in.Graphs {
		if name != rdf.DefaultGraph {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := in.Graphs[rdf.DefaultGraph]; ok {
		names = append([]string{rdf.DefaultGraph}, names...)
	}
	return names
}

// fromLDQuad converts q. The graph is taken from the dataset key name.
func fromLDQuad(q *ld.Quad, name string) (rdf.Quad, error) {
	if q == nil {
		return rdf.Quad{}, errors.New("nil quad")
	}
	s, err := fromLDNode(q.Subject)
	if err != nil {
		return rdf.Quad{}, errors.WithMessage(err, "subject")
	}
	p, err := fromLDNode(q.Predicate)
	if err != nil {
		return rdf.Quad{}, errors.WithMessage(err, "predicate")
	}
	o, err := fromLDNode(q.Object)
	if err != nil {
		return rdf.Quad{}, errors.WithMessage(err, "object")
	}
	var g rdf.Node
	switch {
	case name == rdf.DefaultGraph || name == "":
	case strings.HasPrefix(name, rdf.BlankNodePrefix):
		g = rdf.NewBlankNode(name)
	default:
		g = rdf.NewIRI(name)
	}
	return rdf.NewQuad(s, p, o, g), nil
}

func fromLDNode(n ld.Node) (rdf.Node, error) {
	switch v := n.(type) {
	case *ld.IRI:
		return rdf.NewIRI(v.Value), nil
	case *ld.BlankNode:
		return rdf.NewBlankNode(v.Attribute), nil
	case *ld.Literal:
		return rdf.NewLiteral(v.Value, v.Datatype, v.Language), nil
	case nil:
		return rdf.Node{}, errors.New("missing node")
	default:
		return rdf.Node{}, errors.Errorf("unexpected node type %T", n)
	}
}

// ToLD converts ds into a json-gold dataset.
func ToLD(ds *rdf.Dataset) *ld.RDFDataset {
	out := ld.NewRDFDataset()
	for _, q := range ds.Quads() {
		name := q.GraphName()
		out.Graphs[name] = append(out.Graphs[name],
			ld.NewQuad(toLDNode(q.Subject), toLDNode(q.Predicate),
				toLDNode(q.Object), name))
	}
	return out
}

func toLDNode(n rdf.Node) ld.Node {
	switch n.Kind {
	case rdf.KindBlankNode:
		return ld.NewBlankNode(n.Value)
	case rdf.KindLiteral:
		return ld.NewLiteral(n.Value, n.Datatype, n.Language)
	default:
		return ld.NewIRI(n.Value)
	}
}

// ParseNQuads parses N-Quads text.
func ParseNQuads(input string) (*rdf.Dataset, error) {
	parsed, err := ld.ParseNQuads(input)
	if err != nil {
		return nil, errors.Wrap(err, "can't parse N-Quads")
	}
	return FromLD(parsed)
}
