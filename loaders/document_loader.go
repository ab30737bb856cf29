package loaders

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/ipfs/go-cid"
	shell "github.com/ipfs/go-ipfs-api"
	"github.com/piprate/json-gold/ld"
	"github.com/pkg/errors"
	"github.com/pquerna/cachecontrol"
)

const (
	// Accept header preferring JSON-LD over plain JSON.
	acceptHeader = "application/ld+json, application/json;q=0.9, " +
		"application/javascript;q=0.5, text/javascript;q=0.5, " +
		"text/plain;q=0.2, */*;q=0.1"

	contextLinkRel = "http://www.w3.org/ns/json-ld#context"

	ipfsPrefix = "ipfs://"
	// ipfs content never changes under its address
	ipfsCacheTTL = 24 * time.Hour
)

var reJSONContentType = regexp.MustCompile(`^application/(\w*\+)?json$`)

var (
	ErrCacheMiss         = errors.New("cache miss")
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
	ErrIPFSNotConfigured = errors.New("ipfs is not configured")
)

// CacheEngine stores remote documents together with the time they stop
// being fresh.
type CacheEngine interface {
	Get(key string) (doc *ld.RemoteDocument, expireTime time.Time, err error)
	Set(key string, doc *ld.RemoteDocument, expireTime time.Time) error
}

type documentLoader struct {
	httpClient  *http.Client
	ipfsCli     *shell.Shell
	ipfsGW      string
	cacheEngine CacheEngine
	noCache     bool
}

type DocumentLoaderOption func(*documentLoader)

// WithCacheEngine replaces the default in-memory cache. A nil engine
// disables caching.
func WithCacheEngine(cacheEngine CacheEngine) DocumentLoaderOption {
	return func(loader *documentLoader) {
		if cacheEngine == nil {
			loader.noCache = true
			return
		}
		loader.cacheEngine = cacheEngine
	}
}

func WithHTTPClient(c *http.Client) DocumentLoaderOption {
	return func(loader *documentLoader) {
		loader.httpClient = c
	}
}

// WithIPFSClient resolves ipfs:// URLs through the API of an IPFS node. It
// takes precedence over WithIPFSGW.
func WithIPFSClient(cli *shell.Shell) DocumentLoaderOption {
	return func(loader *documentLoader) {
		loader.ipfsCli = cli
	}
}

// WithIPFSGW resolves ipfs:// URLs through an HTTP gateway, e.g.
// https://ipfs.io.
func WithIPFSGW(gw string) DocumentLoaderOption {
	return func(loader *documentLoader) {
		loader.ipfsGW = gw
	}
}

// NewDocumentLoader returns a JSON-LD document loader fetching http and
// https URLs, and ipfs URLs when a node or gateway is configured. HTTP
// responses are cached according to their cache headers.
func NewDocumentLoader(opts ...DocumentLoaderOption) ld.DocumentLoader {
	loader := &documentLoader{}
	for _, opt := range opts {
		opt(loader)
	}

	if loader.httpClient == nil {
		loader.httpClient = http.DefaultClient
	}
	if loader.cacheEngine == nil && !loader.noCache {
		// cannot fail without options
		loader.cacheEngine, _ = NewMemoryCacheEngine()
	}
	return loader
}

func (d *documentLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	parsed, err := url.Parse(u)
	if err != nil {
		return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, err)
	}

	switch parsed.Scheme {
	case "http", "https":
		return d.loadHTTP(u)
	case "ipfs":
		return d.loadIPFS(u)
	default:
		return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed,
			errors.Wrapf(ErrUnsupportedScheme, "%q", u))
	}
}

// loadIPFS accepts ipfs://<cid> and ipfs://<cid>/path/to/doc.json.
func (d *documentLoader) loadIPFS(u string) (*ld.RemoteDocument, error) {
	ipfsPath := strings.TrimPrefix(u, ipfsPrefix)
	root := ipfsPath
	if i := strings.IndexByte(root, '/'); i >= 0 {
		root = root[:i]
	}
	if _, err := cid.Decode(root); err != nil {
		return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed,
			errors.Wrapf(err, "invalid ipfs URL %q", u))
	}

	doc, fresh, err := d.cached(u)
	if err != nil {
		return nil, err
	}
	if fresh {
		return doc, nil
	}

	doc = &ld.RemoteDocument{DocumentURL: u}
	switch {
	case d.ipfsCli != nil:
		doc.Document, err = d.loadIPFSNode(ipfsPath)
	case d.ipfsGW != "":
		doc.Document, err = d.loadIPFSGW(ipfsPath)
	default:
		err = ld.NewJsonLdError(ld.LoadingDocumentFailed,
			errors.Wrapf(ErrIPFSNotConfigured, "%q", u))
	}
	if err != nil {
		return nil, err
	}

	if d.cacheEngine != nil {
		err = d.cacheEngine.Set(u, doc, time.Now().Add(ipfsCacheTTL))
		if err != nil {
			return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, err)
		}
	}
	return doc, nil
}

func (d *documentLoader) loadIPFSNode(ipfsPath string) (document any,
	err error) {

	var r io.ReadCloser
	r, err = d.ipfsCli.Cat(ipfsPath)
	if err != nil {
		return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, err)
	}
	defer func() {
		if err2 := r.Close(); err == nil && err2 != nil {
			err = ld.NewJsonLdError(ld.LoadingDocumentFailed, err2)
		}
	}()

	document, err = ld.DocumentFromReader(r)
	if err != nil {
		return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, err)
	}
	return document, nil
}

func (d *documentLoader) loadIPFSGW(ipfsPath string) (any, error) {
	gwURL := strings.TrimRight(d.ipfsGW, "/") + "/ipfs/" +
		strings.TrimLeft(ipfsPath, "/")
	doc, err := d.loadHTTP(gwURL)
	if err != nil {
		return nil, err
	}
	return doc.Document, nil
}

func (d *documentLoader) cached(u string) (*ld.RemoteDocument, bool,
	error) {

	if d.cacheEngine == nil {
		return nil, false, nil
	}

	doc, expireTime, err := d.cacheEngine.Get(u)
	switch {
	case errors.Is(err, ErrCacheMiss):
		return nil, false, nil
	case err != nil:
		return nil, false, ld.NewJsonLdError(ld.LoadingDocumentFailed, err)
	}
	return doc, expireTime.After(time.Now()), nil
}

func (d *documentLoader) loadHTTP(u string) (*ld.RemoteDocument, error) {
	doc, fresh, err := d.cached(u)
	if err != nil {
		return nil, err
	}
	if fresh {
		return doc, nil
	}

	req, err := http.NewRequest(http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, err)
	}
	req.Header.Add("Accept", acceptHeader)

	res, err := d.httpClient.Do(req)
	if err != nil {
		return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed,
			fmt.Sprintf("bad response status code: %d", res.StatusCode))
	}

	doc = &ld.RemoteDocument{DocumentURL: res.Request.URL.String()}

	contentType := res.Header.Get("Content-Type")
	if linkHeader := res.Header.Get("Link"); linkHeader != "" {
		links := ld.ParseLinkHeader(linkHeader)

		contextLinks := links[contextLinkRel]
		if len(contextLinks) > 1 {
			return nil, ld.NewJsonLdError(ld.MultipleContextLinkHeaders, nil)
		}
		if len(contextLinks) == 1 && contentType != ld.ApplicationJSONLDType {
			doc.ContextURL = contextLinks[0]["target"]
		}

		// a non-JSON response may point to its JSON-LD representation
		alternate := links["alternate"]
		if len(alternate) > 0 &&
			alternate[0]["type"] == ld.ApplicationJSONLDType &&
			!reJSONContentType.MatchString(contentType) {

			return d.LoadDocument(ld.Resolve(u, alternate[0]["target"]))
		}
	}

	doc.Document, err = ld.DocumentFromReader(res.Body)
	if err != nil {
		return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, err)
	}

	if d.cacheEngine != nil {
		reasons, expireTime, err := cachecontrol.CachableResponse(req, res,
			cachecontrol.Options{})
		if err == nil && len(reasons) == 0 {
			err = d.cacheEngine.Set(u, doc, expireTime)
			if err != nil {
				return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, err)
			}
		}
	}

	return doc, nil
}
