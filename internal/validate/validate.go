package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/samvad-hq/httpie/internal/domain"
)

// Package validate checks command-line input before any network or file I/O.

// URL accepts only absolute http:// or https:// URLs.
func URL(s string) (string, error) {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s, nil
	}
	return "", fmt.Errorf("%w %q: must start with http:// or https://", domain.ErrInvalidURL, s)
}

// KeyValue parses a `key=value` token. Exactly one '=' with non-empty sides is required.
func KeyValue(s string) (domain.KeyValue, error) {
	if strings.Count(s, "=") != 1 {
		return domain.KeyValue{}, fmt.Errorf("%w %q: must be in the format key=value", domain.ErrInvalidKeyValue, s)
	}
	key, value, _ := strings.Cut(s, "=")
	if key == "" || value == "" {
		return domain.KeyValue{}, fmt.Errorf("%w %q: key and value must not be empty", domain.ErrInvalidKeyValue, s)
	}
	return domain.KeyValue{Key: key, Value: value}, nil
}

// KeyValues parses every token, stopping at the first invalid one.
func KeyValues(tokens []string) ([]domain.KeyValue, error) {
	out := make([]domain.KeyValue, 0, len(tokens))
	for _, tok := range tokens {
		kv, err := KeyValue(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, kv)
	}
	return out, nil
}

// Source accepts the single-URL and stdin sentinels, or a path that exists right now.
// The check is advisory; reading the file later can still fail.
func Source(path string) (string, error) {
	switch path {
	case "", domain.SingleSource:
		return domain.SingleSource, nil
	case domain.StdinSource:
		return path, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
		}
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	return path, nil
}
