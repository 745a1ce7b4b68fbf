package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/samvad-hq/httpie/internal/domain"
)

// Renderer writes responses in HTTP message layout: status line, headers,
// blank line, body.
type Renderer struct {
	out        io.Writer
	style      Styler
	formatters *FormatterRegistry
}

// New creates a Renderer. Nil style and formatters fall back to plain output
// and the default registry.
func New(out io.Writer, style Styler, formatters *FormatterRegistry) *Renderer {
	if style == nil {
		style = PlainStyler{}
	}
	if formatters == nil {
		formatters = DefaultFormatterRegistry()
	}
	return &Renderer{out: out, style: style, formatters: formatters}
}

// Render prints view. An error is returned only when the body cannot be
// formatted for its declared media type. A body that could not be read or
// decoded as text is reported inline and rendering stops without an error.
func (r *Renderer) Render(view domain.ResponseView) error {
	if view.IsClientError() {
		fmt.Fprintln(r.out, r.style.Notice(fmt.Sprintf("Error Client Status: %d", view.StatusCode)))
	}
	if view.IsServerError() {
		fmt.Fprintln(r.out, r.style.Notice(fmt.Sprintf("Error Server Status: %d", view.StatusCode)))
	}

	fmt.Fprintln(r.out, r.style.Status(view.StatusLine()))
	r.renderHeaders(view)

	if view.BodyErr != nil {
		r.bodyFailure(view.BodyErr)
		return nil
	}
	body, err := decodeText(view.Body, view.Charset())
	if err != nil {
		r.bodyFailure(err)
		return nil
	}

	text, err := r.formatters.FormatterFor(view.MediaType()).Format(body)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, r.style.Body(text))
	return nil
}

// renderHeaders prints headers sorted by name; values of a repeated header keep their order.
func (r *Renderer) renderHeaders(view domain.ResponseView) {
	names := make([]string, 0, len(view.Header))
	for name := range view.Header {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, value := range view.Header[name] {
			fmt.Fprintf(r.out, "%s: %s\n", r.style.HeaderName(name), r.style.HeaderValue(value))
		}
	}
	fmt.Fprintln(r.out)
}

func (r *Renderer) bodyFailure(err error) {
	fmt.Fprintf(r.out, "Failed to read response body: %v\n", err)
}
