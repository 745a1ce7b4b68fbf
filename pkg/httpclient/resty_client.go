package httpclient

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Options configures the base client. A zero Timeout means no timeout.
type Options struct {
	Timeout   time.Duration
	Accept    string
	UserAgent string
	Logger    resty.Logger
}

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a RestyClient that bypasses any system proxy and
// sends the fixed Accept and User-Agent headers on every request.
func NewRestyClient(opts Options) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(opts)}
}

func newRestyBaseClient(opts Options) *resty.Client {
	c := resty.New()
	c.SetTimeout(opts.Timeout)
	c.RemoveProxy()
	if opts.Logger != nil {
		c.SetLogger(opts.Logger)
	}
	if opts.Accept != "" {
		c.SetHeader("Accept", opts.Accept)
	}
	if opts.UserAgent != "" {
		c.SetHeader("User-Agent", opts.UserAgent)
	}
	return c
}

// Execute performs a single request. A non-nil body is sent as application/json.
// When the response head was received but its body could not be read, the
// response is still returned and the failure is reported through BodyErr.
func (r *RestyClient) Execute(ctx context.Context, method, url string, body []byte, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	resp, err := req.Execute(method, url)
	if err != nil {
		if resp != nil && resp.RawResponse != nil {
			return &restyResponseAdapter{resp: resp, bodyErr: err}, nil
		}
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp    *resty.Response
	bodyErr error
}

func (r *restyResponseAdapter) Proto() string       { return r.resp.Proto() }
func (r *restyResponseAdapter) StatusCode() int     { return r.resp.StatusCode() }
func (r *restyResponseAdapter) Status() string      { return r.resp.Status() }
func (r *restyResponseAdapter) Header() http.Header { return r.resp.Header() }
func (r *restyResponseAdapter) Body() []byte        { return r.resp.Body() }
func (r *restyResponseAdapter) BodyErr() error      { return r.bodyErr }
