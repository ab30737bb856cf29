package rdf

import (
	"strings"
)

const (
	referenceBlankNode = "_:a"
	otherBlankNode     = "_:z"
)

const hexDigits = "0123456789ABCDEF"

// Serialize renders q as one canonical N-Quads statement terminated by a
// newline. The default graph is not written.
func Serialize(q Quad) string {
	return serialize(q, nil)
}

// SerializeReference renders q like Serialize but replaces blank nodes:
// the blank node identified by ref becomes _:a and any other blank node
// becomes _:z. The output is used as hash input, never as final output.
func SerializeReference(q Quad, ref string) string {
	return serialize(q, &ref)
}

func serialize(q Quad, ref *string) string {
	var b strings.Builder
	writeNode(&b, q.Subject, ref)
	b.WriteByte(' ')
	writeNode(&b, q.Predicate, ref)
	b.WriteByte(' ')
	writeNode(&b, q.Object, ref)
	b.WriteByte(' ')
	if !q.Graph.IsZero() {
		writeNode(&b, q.Graph, ref)
		b.WriteByte(' ')
	}
	b.WriteString(".\n")
	return b.String()
}

func writeNode(b *strings.Builder, n Node, ref *string) {
	switch n.Kind {
	case KindIRI:
		b.WriteByte('<')
		writeEscaped(b, n.Value)
		b.WriteByte('>')
	case KindBlankNode:
		switch {
		case ref == nil:
			b.WriteString(n.Value)
		case n.Value == *ref:
			b.WriteString(referenceBlankNode)
		default:
			b.WriteString(otherBlankNode)
		}
	case KindLiteral:
		b.WriteByte('"')
		writeEscaped(b, n.Value)
		b.WriteByte('"')
		if n.Language != "" {
			b.WriteByte('@')
			b.WriteString(n.Language)
		} else if n.Datatype != "" && n.Datatype != XSDString {
			b.WriteString("^^<")
			writeEscaped(b, n.Datatype)
			b.WriteByte('>')
		}
	}
}

// Escape applies the canonical N-Quads string escaping to s.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	writeEscaped(&b, s)
	return b.String()
}

func writeEscaped(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\v':
			b.WriteString(`\v`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			if c < 0x20 {
				b.WriteString(`\u00`)
				b.WriteByte(hexDigits[c>>4])
				b.WriteByte(hexDigits[c&0x0F])
				continue
			}
			b.WriteByte(c)
		}
	}
}
