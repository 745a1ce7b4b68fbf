package domain

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// Domain contains the request and response models shared across packages.

type Verb string

const (
	VerbGet  Verb = http.MethodGet
	VerbPost Verb = http.MethodPost
)

const (
	// SingleSource means "no file": the URL positional is the only request.
	SingleSource = "-"
	// StdinSource reads the batch URL list from standard input.
	StdinSource = "@-"
)

// KeyValue is one `key=value` token from the command line.
type KeyValue struct {
	Key   string
	Value string
}

// Command is the parsed invocation. It is not mutated after parsing.
type Command struct {
	Verb           Verb
	URL            string
	Source         string
	Pairs          []KeyValue
	ExpectedStatus int
}

// IsBatch reports whether the command reads its URLs from a file or stdin.
func (c Command) IsBatch() bool {
	return c.Verb == VerbGet && c.Source != "" && c.Source != SingleSource
}

// RequestSpec describes a single request to dispatch.
type RequestSpec struct {
	Method string
	URL    string
	Body   map[string]string
}

// NewGetSpec builds a body-less GET request.
func NewGetSpec(url string) RequestSpec {
	return RequestSpec{Method: http.MethodGet, URL: url}
}

// NewPostSpec collects pairs into a JSON object body. Later duplicate keys win.
func NewPostSpec(url string, pairs []KeyValue) RequestSpec {
	body := make(map[string]string, len(pairs))
	for _, kv := range pairs {
		body[kv.Key] = kv.Value
	}
	return RequestSpec{Method: http.MethodPost, URL: url, Body: body}
}

// JSONBody serializes the body map, or returns nil when the request has no body.
func (r RequestSpec) JSONBody() ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	return json.Marshal(r.Body)
}

// ResponseView is the rendered view of a received response.
type ResponseView struct {
	Proto      string
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
	// BodyErr is set when the body could not be read in full; Body is then
	// not rendered.
	BodyErr error
}

// StatusLine returns e.g. "HTTP/1.1 404 Not Found".
func (v ResponseView) StatusLine() string {
	status := strings.TrimSpace(v.Status)
	if status == "" {
		status = strconv.Itoa(v.StatusCode)
		if text := http.StatusText(v.StatusCode); text != "" {
			status += " " + text
		}
	}
	if v.Proto == "" {
		return status
	}
	return v.Proto + " " + status
}

func (v ResponseView) IsClientError() bool { return v.StatusCode >= 400 && v.StatusCode < 500 }
func (v ResponseView) IsServerError() bool { return v.StatusCode >= 500 && v.StatusCode < 600 }

// MediaType returns the lower-cased type/subtype of the Content-Type header,
// or "" when the header is absent or cannot be parsed.
func (v ResponseView) MediaType() string {
	mt, _ := v.contentType()
	return mt
}

// Charset returns the lower-cased charset parameter of the Content-Type
// header, or "" when none is declared.
func (v ResponseView) Charset() string {
	_, params := v.contentType()
	return strings.ToLower(strings.TrimSpace(params["charset"]))
}

func (v ResponseView) contentType() (string, map[string]string) {
	raw := strings.TrimSpace(v.Header.Get("Content-Type"))
	if raw == "" {
		return "", nil
	}
	mt, params, err := mime.ParseMediaType(raw)
	if err != nil {
		return "", nil
	}
	return mt, params
}
