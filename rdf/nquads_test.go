package rdf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerialize(t *testing.T) {
	testCases := []struct {
		name string
		quad Quad
		want string
	}{
		{
			name: "iri triple in default graph",
			quad: NewQuad(NewIRI("urn:s"), NewIRI("urn:p"),
				NewLiteral("1", "", ""), Node{}),
			want: "<urn:s> <urn:p> \"1\" .\n",
		},
		{
			name: "typed literal",
			quad: NewQuad(NewIRI("urn:s"), NewIRI("urn:p"),
				NewLiteral("5", "http://www.w3.org/2001/XMLSchema#integer", ""),
				Node{}),
			want: "<urn:s> <urn:p> \"5\"^^<http://www.w3.org/2001/XMLSchema#integer> .\n",
		},
		{
			name: "language tagged literal",
			quad: NewQuad(NewIRI("urn:s"), NewIRI("urn:p"),
				NewLiteral("chat", "", "fr"), Node{}),
			want: "<urn:s> <urn:p> \"chat\"@fr .\n",
		},
		{
			name: "named graph",
			quad: NewQuad(NewBlankNode("_:x"), NewIRI("urn:p"),
				NewIRI("urn:o"), NewIRI("urn:g")),
			want: "_:x <urn:p> <urn:o> <urn:g> .\n",
		},
		{
			name: "blank node graph",
			quad: NewQuad(NewIRI("urn:s"), NewIRI("urn:p"),
				NewIRI("urn:o"), NewBlankNode("g1")),
			want: "<urn:s> <urn:p> <urn:o> _:g1 .\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Serialize(tc.quad))
		})
	}
}

func TestSerializeReference(t *testing.T) {
	q := NewQuad(NewBlankNode("_:x"), NewIRI("urn:p"), NewBlankNode("_:y"),
		NewBlankNode("_:g"))

	require.Equal(t, "_:a <urn:p> _:z _:z .\n", SerializeReference(q, "_:x"))
	require.Equal(t, "_:z <urn:p> _:a _:z .\n", SerializeReference(q, "_:y"))
	require.Equal(t, "_:z <urn:p> _:z _:a .\n", SerializeReference(q, "_:g"))
	require.Equal(t, "_:x <urn:p> _:y _:g .\n", Serialize(q))
}

func TestEscape(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "a\"b", want: `a\"b`},
		{in: `back\slash`, want: `back\\slash`},
		{in: "tab\there", want: `tab\there`},
		{in: "line\nbreak\r", want: `line\nbreak\r`},
		{in: "\b\v\f", want: `\b\v\f`},
		{in: "\x00\x01\x1f", want: `\u0000\u0001\u001F`},
		{in: "\x0e", want: `\u000E`},
		{in: "ünïcödé ✓", want: "ünïcödé ✓"},
		{in: "\x7f", want: "\x7f"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			require.Equal(t, tc.want, Escape(tc.in))
		})
	}
}

func TestSerializeEscapesLiteralAndDatatype(t *testing.T) {
	q := NewQuad(NewIRI("urn:s"), NewIRI("urn:p"),
		NewLiteral("say \"hi\"\n", "urn:dt\\x", ""), Node{})
	require.Equal(t,
		"<urn:s> <urn:p> \"say \\\"hi\\\"\\n\"^^<urn:dt\\\\x> .\n",
		Serialize(q))
}
