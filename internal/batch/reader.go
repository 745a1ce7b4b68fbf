package batch

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/samvad-hq/httpie/internal/domain"
	"github.com/samvad-hq/httpie/internal/logger"
	"github.com/samvad-hq/httpie/internal/validate"
)

// Reader turns a newline-delimited URL list into validated URLs.
type Reader struct {
	echo  io.Writer
	warn  io.Writer
	stdin io.Reader
	log   logger.Logger
}

// NewReader builds a Reader. Accepted URLs are echoed to echo, rejected lines
// are reported to warn, and the @- source reads from stdin.
func NewReader(echo, warn io.Writer, stdin io.Reader, log logger.Logger) *Reader {
	if echo == nil {
		echo = io.Discard
	}
	if warn == nil {
		warn = io.Discard
	}
	return &Reader{echo: echo, warn: warn, stdin: stdin, log: logger.Ensure(log)}
}

// Load reads source fully and returns its valid URLs in file order.
func (r *Reader) Load(source string) ([]string, error) {
	raw, err := r.readAll(source)
	if err != nil {
		return nil, err
	}
	return r.Parse(raw), nil
}

func (r *Reader) readAll(source string) ([]byte, error) {
	if strings.TrimSpace(source) == "" {
		return nil, errors.New("url list source is empty")
	}

	if source == domain.StdinSource {
		if r.stdin == nil {
			return nil, errors.New("stdin is not available")
		}
		raw, err := io.ReadAll(r.stdin)
		if err != nil {
			return nil, fmt.Errorf("read url list from stdin: %w", err)
		}
		return raw, nil
	}

	file, err := os.Open(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, source)
		}
		return nil, fmt.Errorf("open url list: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read url list %s: %w", source, err)
	}
	return raw, nil
}

// Parse skips blank and '#' lines, reports and skips invalid URLs, and keeps
// the rest in order. Duplicates are kept.
func (r *Reader) Parse(data []byte) []string {
	var urls []string
	lines := strings.Split(string(data), "\n")

	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		url, err := validate.URL(line)
		if err != nil {
			fmt.Fprintf(r.warn, "line %d: %v\n", lineNo, err)
			r.log.WarnObj("skipping invalid batch line", "batch_line", map[string]any{
				"line":  lineNo,
				"value": line,
			})
			continue
		}

		fmt.Fprintf(r.echo, "get url is: %s\n", url)
		urls = append(urls, url)
	}

	r.log.DebugObj("batch url list parsed", "batch_meta", map[string]any{
		"lines":    len(lines),
		"accepted": len(urls),
	})
	return urls
}
