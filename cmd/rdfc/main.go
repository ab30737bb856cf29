// Command rdfc canonicalizes RDF datasets read from N-Quads or JSON-LD.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/piprate/json-gold/ld"
	"github.com/pkg/errors"

	"github.com/iden3/go-rdf-canon/c14n"
	"github.com/iden3/go-rdf-canon/jsonld"
	"github.com/iden3/go-rdf-canon/loaders"
	"github.com/iden3/go-rdf-canon/merklize"
	"github.com/iden3/go-rdf-canon/rdf"
)

const (
	formatNQuads = "nquads"
	formatJSONLD = "jsonld"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	var action func(context.Context, *rdf.Dataset, []c14n.Opt,
		io.Writer) error
	switch args[0] {
	case "canonicalize":
		action = canonicalize
	case "hash":
		action = hash
	case "cid":
		action = cid
	case "merkle-root":
		action = merkleRoot
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	format := fs.String("format", formatNQuads, "input format: nquads or jsonld")
	alg := fs.String("alg", string(c14n.DefaultHashAlgorithm),
		"hash algorithm: SHA256 or SHA384")
	maxWork := fs.Int("max-work", c14n.DefaultMaxWork,
		"work budget of the blank node search, 0 for unbounded")
	timeout := fs.Duration("timeout", 0, "time limit, 0 for none")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if fs.NArg() > 1 || (*format != formatNQuads && *format != formatJSONLD) {
		fmt.Fprintf(errOut, "usage: rdfc %s [flags] [file|url]\n", args[0])
		fs.PrintDefaults()
		return 2
	}

	logger := log.New(errOut, "rdfc: ", 0)

	algorithm, err := c14n.ParseHashAlgorithm(*alg)
	if err != nil {
		logger.Print(err)
		return 2
	}
	opts := []c14n.Opt{c14n.WithHashAlgorithm(algorithm),
		c14n.WithMaxWork(*maxWork), c14n.WithTimeout(*timeout)}

	ctx := context.Background()
	ds, err := readDataset(ctx, fs.Arg(0), in, *format)
	if err != nil {
		logger.Print(err)
		return 1
	}

	if err = action(ctx, ds, opts, out); err != nil {
		logger.Print(err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "rdfc: RDF dataset canonicalization")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  rdfc canonicalize [flags] [file]   print canonical N-Quads")
	fmt.Fprintln(w, "  rdfc hash [flags] [file]           print the hex digest of the canonical N-Quads")
	fmt.Fprintln(w, "  rdfc cid [flags] [file]            print the CIDv1 of the canonical N-Quads")
	fmt.Fprintln(w, "  rdfc merkle-root [flags] [file]    print the merkle root of the canonical statements")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -format nquads|jsonld   input format (default nquads)")
	fmt.Fprintln(w, "  -alg SHA256|SHA384      hash algorithm (default SHA256)")
	fmt.Fprintln(w, "  -max-work N             work budget, 0 for unbounded")
	fmt.Fprintln(w, "  -timeout D              time limit, e.g. 10s")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input is read from stdin when no file is given. http and https URLs")
	fmt.Fprintln(w, "are fetched.")
}

func readDataset(ctx context.Context, path string, in io.Reader,
	format string) (*rdf.Dataset, error) {

	var (
		b   []byte
		err error
	)
	switch {
	case path == "":
		b, err = io.ReadAll(in)
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		b, _, err = loaders.HTTP{URL: path}.Load(ctx)
	default:
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "read input")
	}

	if format == formatJSONLD {
		doc, err := ld.DocumentFromReader(bytes.NewReader(b))
		if err != nil {
			return nil, errors.Wrap(err, "invalid JSON-LD document")
		}
		return jsonld.ToRDF(ctx, doc)
	}
	return jsonld.ParseNQuads(string(b))
}

func canonicalize(ctx context.Context, ds *rdf.Dataset, opts []c14n.Opt,
	out io.Writer) error {

	nquads, err := c14n.Canonicalize(ctx, ds, opts...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, nquads)
	return err
}

func hash(ctx context.Context, ds *rdf.Dataset, opts []c14n.Opt,
	out io.Writer) error {

	h, err := c14n.New(opts...).Hash(ctx, ds)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, h)
	return err
}

func cid(ctx context.Context, ds *rdf.Dataset, opts []c14n.Opt,
	out io.Writer) error {

	c, err := c14n.New(opts...).CID(ctx, ds)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, c)
	return err
}

func merkleRoot(ctx context.Context, ds *rdf.Dataset, opts []c14n.Opt,
	out io.Writer) error {

	mz, err := merklize.Merklize(ctx, ds,
		merklize.WithCanonicalizerOptions(opts...))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, mz.Root().String())
	return err
}
