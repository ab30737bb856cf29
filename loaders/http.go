package loaders

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

// ErrorURLEmpty is empty url error
var ErrorURLEmpty = errors.New("URL is empty")

const defaultHTTPTimeout = 30 * time.Second

// HTTP loads documents over http and https.
type HTTP struct {
	URL string
	// Client defaults to http.DefaultClient.
	Client *http.Client
	// Accept is sent as the Accept header when set.
	Accept string
}

// Load fetches the document and returns its body and media type.
func (l HTTP) Load(ctx context.Context) (doc []byte, contentType string,
	err error) {

	if l.URL == "" {
		return nil, "", ErrorURLEmpty
	}
	u, err := url.Parse(l.URL)
	if err != nil {
		return nil, "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, "", errors.Wrapf(ErrUnsupportedScheme, "%q", l.URL)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultHTTPTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(),
		http.NoBody)
	if err != nil {
		return nil, "", err
	}
	if l.Accept != "" {
		req.Header.Set("Accept", l.Accept)
	}

	c := l.Client
	if c == nil {
		c = http.DefaultClient
	}
	resp, err := c.Do(req)
	if err != nil {
		return nil, "", errors.WithMessage(err, "http request failed")
	}
	defer func() {
		if err2 := resp.Body.Close(); err == nil {
			err = err2
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", errors.Errorf("request failed with status code %v",
			resp.StatusCode)
	}

	doc, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return doc, resp.Header.Get("Content-Type"), nil
}
