package render

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/samvad-hq/httpie/internal/config"
	"github.com/samvad-hq/httpie/internal/domain"
)

func view(status int, contentType, body string) domain.ResponseView {
	h := http.Header{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return domain.ResponseView{
		Proto:      "HTTP/1.1",
		StatusCode: status,
		Header:     h,
		Body:       []byte(body),
	}
}

func TestRenderPrettyPrintsJSON(t *testing.T) {
	var out bytes.Buffer
	v := view(http.StatusOK, "application/json; charset=utf-8", `{"a":1}`)
	v.Status = "200 OK"
	if err := New(&out, nil, nil).Render(v); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := "HTTP/1.1 200 OK\n" +
		"Content-Type: application/json; charset=utf-8\n" +
		"\n" +
		"{\n  \"a\": 1\n}\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", out.String(), want)
	}
}

func TestRenderPlainTextVerbatim(t *testing.T) {
	var out bytes.Buffer
	if err := New(&out, PlainStyler{}, nil).Render(view(http.StatusOK, "text/plain", "hello")); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasSuffix(out.String(), "\n\nhello\n") {
		t.Fatalf("expected verbatim body after blank line, got %q", out.String())
	}
}

func TestRenderWithoutContentTypeIsRaw(t *testing.T) {
	var out bytes.Buffer
	if err := New(&out, nil, nil).Render(view(http.StatusOK, "", `{"a":1}`)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasSuffix(out.String(), "\n{\"a\":1}\n") {
		t.Fatalf("expected raw body, got %q", out.String())
	}
}

func TestRenderMalformedJSONIsFatal(t *testing.T) {
	var out bytes.Buffer
	err := New(&out, nil, nil).Render(view(http.StatusOK, "application/json", "{oops"))
	if !errors.Is(err, domain.ErrMalformedJSON) {
		t.Fatalf("expected ErrMalformedJSON, got %v", err)
	}
	if !strings.Contains(out.String(), "Content-Type: application/json") {
		t.Fatalf("headers should be printed before the body fails, got %q", out.String())
	}
}

func TestRenderErrorNotices(t *testing.T) {
	var out bytes.Buffer
	if err := New(&out, nil, nil).Render(view(http.StatusNotFound, "text/plain", "nope")); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Error Client Status: 404\nHTTP/1.1 404 Not Found\n") {
		t.Fatalf("unexpected client error output %q", out.String())
	}

	out.Reset()
	if err := New(&out, nil, nil).Render(view(http.StatusBadGateway, "text/plain", "")); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Error Server Status: 502\n") {
		t.Fatalf("unexpected server error output %q", out.String())
	}
}

func TestRenderInvalidUTF8StopsWithoutError(t *testing.T) {
	var out bytes.Buffer
	err := New(&out, nil, nil).Render(view(http.StatusOK, "application/json", "\xff\xfe"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasSuffix(out.String(), "\n\nFailed to read response body: not valid UTF-8 text\n") {
		t.Fatalf("expected body read failure line, got %q", out.String())
	}
	if n := strings.Count(strings.ToLower(out.String()), "failed to read response body"); n != 1 {
		t.Fatalf("failure prefix printed %d times in %q", n, out.String())
	}
}

func TestRenderDecodesDeclaredCharset(t *testing.T) {
	var out bytes.Buffer
	if err := New(&out, nil, nil).Render(view(http.StatusOK, "text/plain; charset=iso-8859-1", "caf\xe9")); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasSuffix(out.String(), "\n\ncaf\u00e9\n") {
		t.Fatalf("expected latin-1 body decoded to UTF-8, got %q", out.String())
	}

	out.Reset()
	if err := New(&out, nil, nil).Render(view(http.StatusOK, "application/json; charset=windows-1252", "{\"name\":\"caf\xe9\"}")); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out.String(), "\"name\": \"caf\u00e9\"") {
		t.Fatalf("expected decoded JSON, got %q", out.String())
	}
}

func TestRenderUnknownCharsetFallsBackToUTF8(t *testing.T) {
	var out bytes.Buffer
	if err := New(&out, nil, nil).Render(view(http.StatusOK, "text/plain; charset=x-made-up", "plain")); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasSuffix(out.String(), "\n\nplain\n") {
		t.Fatalf("expected body as UTF-8, got %q", out.String())
	}
}

func TestRenderBodyErrorAfterHead(t *testing.T) {
	var out bytes.Buffer
	v := view(http.StatusOK, "text/plain", "sho")
	v.BodyErr = io.ErrUnexpectedEOF
	if err := New(&out, nil, nil).Render(v); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := "HTTP/1.1 200 OK\n" +
		"Content-Type: text/plain\n" +
		"\n" +
		"Failed to read response body: unexpected EOF\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", out.String(), want)
	}
}

func TestRenderHeadersSortedWithRepeatedValues(t *testing.T) {
	var out bytes.Buffer
	v := view(http.StatusOK, "text/plain", "")
	v.Header.Add("X-B", "2")
	v.Header.Add("X-A", "first")
	v.Header.Add("X-A", "second")
	if err := New(&out, nil, nil).Render(v); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "Content-Type: text/plain\nX-A: first\nX-A: second\nX-B: 2\n\n"
	if !strings.Contains(out.String(), want) {
		t.Fatalf("unexpected header block in %q", out.String())
	}
}

func TestColorStylerWrapsText(t *testing.T) {
	s := NewColorStyler()
	got := s.Status("HTTP/1.1 200 OK")
	if got == "HTTP/1.1 200 OK" || !strings.Contains(got, "HTTP/1.1 200 OK") || !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected ANSI-wrapped status, got %q", got)
	}
}

func TestNewStylerModes(t *testing.T) {
	var buf bytes.Buffer
	if _, ok := NewStyler(config.ColorNever, &buf).(PlainStyler); !ok {
		t.Fatalf("never must be plain")
	}
	if _, ok := NewStyler(config.ColorAuto, &buf).(PlainStyler); !ok {
		t.Fatalf("auto on a non-terminal must be plain")
	}
	if _, ok := NewStyler(config.ColorAlways, &buf).(PlainStyler); ok {
		t.Fatalf("always must colour")
	}
}

func TestFormatterRegistry(t *testing.T) {
	upper := FormatterFunc(func(b []byte) (string, error) { return strings.ToUpper(string(b)), nil })
	reg := NewFormatterRegistry(map[string]BodyFormatter{"Text/X-Shout": upper}, nil)

	got, err := reg.FormatterFor("text/x-shout").Format([]byte("hi"))
	if err != nil || got != "HI" {
		t.Fatalf("registered formatter: got %q err=%v", got, err)
	}
	got, err = reg.FormatterFor("application/octet-stream").Format([]byte("hi"))
	if err != nil || got != "hi" {
		t.Fatalf("fallback formatter: got %q err=%v", got, err)
	}
	if _, err := DefaultFormatterRegistry().FormatterFor("application/problem+json").Format([]byte("{bad")); err != nil {
		t.Fatalf("+json suffix must not be treated as JSON: %v", err)
	}
}

func TestJSONFormatterEmptyBody(t *testing.T) {
	got, err := JSONFormatter.Format([]byte("  \n"))
	if err != nil || got != "" {
		t.Fatalf("expected empty output, got %q err=%v", got, err)
	}
}

func TestJSONFormatterDropsTrailingNewline(t *testing.T) {
	got, err := JSONFormatter.Format([]byte("{\"a\":1}\r\n"))
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != "{\n  \"a\": 1\n}" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRenderJSONWithTrailingNewlineHasNoExtraBlankLine(t *testing.T) {
	var out bytes.Buffer
	if err := New(&out, nil, nil).Render(view(http.StatusOK, "application/json", "{\"a\":1}\n")); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasSuffix(out.String(), "\n\n{\n  \"a\": 1\n}\n") || strings.HasSuffix(out.String(), "}\n\n") {
		t.Fatalf("unexpected trailing layout %q", out.String())
	}
}
