package httpclient

import (
	"context"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface. One
// instance holds one persistent session: connection pool plus the default
// headers applied to every request it issues.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a session with the specified timeout.
func NewRestyClient(timeout time.Duration) *RestyClient {
	return NewRestyClientWithHeaders(timeout, nil)
}

// NewRestyClientWithHeaders creates a session with the specified timeout and
// default headers (skips empty names/values).
func NewRestyClientWithHeaders(timeout time.Duration, headers map[string]string) *RestyClient {
	c := resty.New()
	c.SetTimeout(timeout)
	for name, value := range headers {
		if name == "" || value == "" {
			continue
		}
		c.SetHeader(name, value)
	}
	return &RestyClient{client: c}
}

// Get performs an HTTP GET request with the given context, URL, query values,
// and per-request headers.
func (r *RestyClient) Get(ctx context.Context, url string, query url.Values, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }
