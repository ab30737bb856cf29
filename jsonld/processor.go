package jsonld

import (
	"context"
	"io"

	"github.com/piprate/json-gold/ld"
	"github.com/pkg/errors"

	"github.com/iden3/go-rdf-canon/c14n"
	"github.com/iden3/go-rdf-canon/loaders"
	"github.com/iden3/go-rdf-canon/rdf"
)

type options struct {
	loader   ld.DocumentLoader
	base     string
	c14nOpts []c14n.Opt
}

// Opt configures JSON-LD processing.
type Opt func(o *options)

// WithDocumentLoader sets the loader used to resolve remote contexts and
// documents.
func WithDocumentLoader(l ld.DocumentLoader) Opt {
	return func(o *options) {
		o.loader = l
	}
}

// WithBase sets the base IRI relative IRIs are resolved against.
func WithBase(base string) Opt {
	return func(o *options) {
		o.base = base
	}
}

// WithCanonicalizerOptions configures the canonicalization step of
// Canonicalize.
func WithCanonicalizerOptions(opts ...c14n.Opt) Opt {
	return func(o *options) {
		o.c14nOpts = append(o.c14nOpts, opts...)
	}
}

func newOptions(opts []Opt) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.loader == nil {
		o.loader = loaders.NewDocumentLoader()
	}
	return o
}

// ToRDF expands the JSON-LD document doc and converts it into a dataset.
// doc is a decoded JSON value, or a URL string fetched with the document
// loader.
func ToRDF(ctx context.Context, doc any, opts ...Opt) (*rdf.Dataset,
	error) {

	return toRDF(ctx, doc, newOptions(opts))
}

func toRDF(ctx context.Context, doc any, o *options) (*rdf.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ldOpts := ld.NewJsonLdOptions(o.base)
	ldOpts.DocumentLoader = o.loader

	out, err := ld.NewJsonLdProcessor().ToRDF(doc, ldOpts)
	if err != nil {
		return nil, errors.Wrap(err, "can't convert JSON-LD to RDF")
	}
	ds, ok := out.(*ld.RDFDataset)
	if !ok {
		return nil, errors.Errorf("[assertion] expected *ld.RDFDataset, got %T",
			out)
	}
	return FromLD(ds)
}

// Canonicalize reads a JSON-LD document from r and returns the canonical
// N-Quads of its dataset.
func Canonicalize(ctx context.Context, r io.Reader, opts ...Opt) (string,
	error) {

	o := newOptions(opts)

	doc, err := ld.DocumentFromReader(r)
	if err != nil {
		return "", errors.Wrap(err, "can't read JSON-LD document")
	}
	ds, err := toRDF(ctx, doc, o)
	if err != nil {
		return "", err
	}
	return c14n.Canonicalize(ctx, ds, o.c14nOpts...)
}
