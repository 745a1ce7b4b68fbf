package httpclient

import (
	"context"
	"net/http"
)

// Response is the part of an HTTP response the renderer needs.
type Response interface {
	Proto() string
	StatusCode() int
	Status() string
	Header() http.Header
	Body() []byte
	// BodyErr is set when the status and headers arrived but reading the
	// body failed part way.
	BodyErr() error
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Execute(ctx context.Context, method, url string, body []byte, headers map[string]string) (Response, error)
}
