package loaders_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iden3/go-rdf-canon/loaders"
	tst "github.com/iden3/go-rdf-canon/testing"
)

func TestHTTPLoad(t *testing.T) {
	const u = "https://example.com/cycle.nq"
	defer tst.MockHTTPClient(t, map[string]string{u: "testdata/cycle.nq"},
		tst.WithResponseHeader(u, "Content-Type", "application/n-quads"))()

	var l loaders.Loader = loaders.HTTP{URL: u}
	doc, contentType, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "application/n-quads", contentType)
	require.Equal(t, "_:a <urn:p> _:b .\n_:b <urn:p> _:a .\n", string(doc))
}

func TestHTTPLoadErrors(t *testing.T) {
	_, _, err := loaders.HTTP{}.Load(context.Background())
	require.ErrorIs(t, err, loaders.ErrorURLEmpty)

	_, _, err = loaders.HTTP{URL: "ftp://example.com/x.nq"}.
		Load(context.Background())
	require.ErrorIs(t, err, loaders.ErrUnsupportedScheme)

	client := &http.Client{Transport: roundTripFunc(
		func(r *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusInternalServerError,
				Body:       http.NoBody,
				Header:     make(http.Header),
				Request:    r,
			}, nil
		})}
	_, _, err = loaders.HTTP{URL: "https://example.com/x.nq",
		Client: client}.Load(context.Background())
	require.ErrorContains(t, err, "status code 500")
}
