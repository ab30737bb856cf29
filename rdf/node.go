package rdf

import "strings"

const (
	// XSDString is the datatype of plain literals.
	XSDString = "http://www.w3.org/2001/XMLSchema#string"
	// RDFLangString is the datatype of language-tagged literals.
	RDFLangString = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"

	// BlankNodePrefix starts every blank node identifier.
	BlankNodePrefix = "_:"
	// DefaultGraph is the name of the default graph in a Dataset.
	DefaultGraph = "@default"
)

// Kind identifies the variant held by a Node. Kinds are declared in the
// order nodes sort in: literals first, then blank nodes, then IRIs.
type Kind uint8

const (
	KindLiteral Kind = iota + 1
	KindBlankNode
	KindIRI
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindBlankNode:
		return "blank node"
	case KindIRI:
		return "IRI"
	default:
		return "invalid"
	}
}

// Node is an RDF term: an IRI, a blank node or a literal. Nodes are plain
// comparable values.
type Node struct {
	Kind Kind
	// Value is the IRI, the blank node identifier (with the "_:" prefix) or
	// the lexical form of a literal.
	Value string
	// Datatype and Language are set for literals only.
	Datatype string
	Language string
}

func NewIRI(iri string) Node {
	return Node{Kind: KindIRI, Value: iri}
}

// NewBlankNode creates a blank node. The "_:" prefix is added when id
// does not carry it already.
func NewBlankNode(id string) Node {
	if !strings.HasPrefix(id, BlankNodePrefix) {
		id = BlankNodePrefix + id
	}
	return Node{Kind: KindBlankNode, Value: id}
}

// NewLiteral creates a literal. An empty datatype means xsd:string. When
// language is not empty the datatype is always rdf:langString.
func NewLiteral(lexical, datatype, language string) Node {
	switch {
	case language != "":
		datatype = RDFLangString
	case datatype == "":
		datatype = XSDString
	}
	return Node{
		Kind:     KindLiteral,
		Value:    lexical,
		Datatype: datatype,
		Language: language,
	}
}

func (n Node) IsIRI() bool       { return n.Kind == KindIRI }
func (n Node) IsBlankNode() bool { return n.Kind == KindBlankNode }
func (n Node) IsLiteral() bool   { return n.Kind == KindLiteral }

// IsZero reports whether n is the zero Node. A zero graph component of a
// Quad stands for the default graph.
func (n Node) IsZero() bool { return n == (Node{}) }

// Compare orders nodes: literals before blank nodes before IRIs. Literals
// are compared by lexical value, then language, then datatype. Other nodes
// are compared by value. The result is -1, 0 or +1.
func (n Node) Compare(o Node) int {
	if n.Kind != o.Kind {
		if n.Kind < o.Kind {
			return -1
		}
		return 1
	}
	if c := strings.Compare(n.Value, o.Value); c != 0 || n.Kind != KindLiteral {
		return c
	}
	if c := strings.Compare(n.Language, o.Language); c != 0 {
		return c
	}
	return strings.Compare(n.Datatype, o.Datatype)
}

// String renders the node the way it appears in a canonical statement.
func (n Node) String() string {
	var b strings.Builder
	writeNode(&b, n, nil)
	return b.String()
}
