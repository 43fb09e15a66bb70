package advice

import (
	"io"
	"net/http"

	"github.com/tartampluch/go-saju/internal/config"
)

// NewHTTPClient returns the client used for generator calls. It stamps the
// User-Agent and caps response bodies at config.MaxHTTPResponseSize. Deadlines
// come from the request context.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: &limitedTransport{base: http.DefaultTransport},
	}
}

type limitedTransport struct {
	base http.RoundTripper
}

func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	resp.Body = &limitedReadCloser{
		Reader: io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
		Closer: resp.Body,
	}
	return resp, nil
}

// limitedReadCloser limits reads while still closing the original body.
type limitedReadCloser struct {
	io.Reader
	io.Closer
}
