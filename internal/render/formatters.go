package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/samvad-hq/httpie/internal/domain"
)

// BodyFormatter turns a response body into display text.
type BodyFormatter interface {
	Format(body []byte) (string, error)
}

// FormatterFunc adapts a function to BodyFormatter.
type FormatterFunc func(body []byte) (string, error)

func (f FormatterFunc) Format(body []byte) (string, error) { return f(body) }

const MediaTypeJSON = "application/json"

// FormatterRegistry selects a BodyFormatter by media type.
type FormatterRegistry struct {
	mu       sync.RWMutex
	byType   map[string]BodyFormatter
	fallback BodyFormatter
}

// NewFormatterRegistry builds a registry keyed by media type. A nil fallback prints bodies raw.
func NewFormatterRegistry(typeFormatters map[string]BodyFormatter, fallback BodyFormatter) *FormatterRegistry {
	if fallback == nil {
		fallback = RawFormatter
	}
	reg := &FormatterRegistry{
		byType:   make(map[string]BodyFormatter),
		fallback: fallback,
	}
	for typ, f := range typeFormatters {
		reg.Register(typ, f)
	}
	return reg
}

// Register associates a formatter with a media type.
func (r *FormatterRegistry) Register(mediaType string, f BodyFormatter) {
	key := strings.ToLower(strings.TrimSpace(mediaType))
	if key == "" || f == nil {
		return
	}
	r.mu.Lock()
	r.byType[key] = f
	r.mu.Unlock()
}

// FormatterFor returns the formatter registered for mediaType, or the fallback.
func (r *FormatterRegistry) FormatterFor(mediaType string) BodyFormatter {
	key := strings.ToLower(strings.TrimSpace(mediaType))
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.byType[key]; ok {
		return f
	}
	return r.fallback
}

// DefaultFormatterRegistry pretty-prints application/json and prints everything else raw.
func DefaultFormatterRegistry() *FormatterRegistry {
	return NewFormatterRegistry(map[string]BodyFormatter{
		MediaTypeJSON: JSONFormatter,
	}, RawFormatter)
}

// RawFormatter prints the body as-is.
var RawFormatter = FormatterFunc(func(body []byte) (string, error) {
	return string(body), nil
})

// JSONFormatter indents the body with two spaces. A body that does not parse
// is an error; there is no raw fallback. An empty body renders as nothing.
var JSONFormatter = FormatterFunc(func(body []byte) (string, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedJSON, err)
	}
	return buf.String(), nil
})
