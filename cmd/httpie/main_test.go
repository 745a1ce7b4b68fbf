package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/samvad-hq/httpie/internal/domain"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"status mismatch", &domain.ExitError{Code: 1, Expected: 200, Actual: 404}, 1},
		{"wrapped exit error keeps its code", fmt.Errorf("run: %w", &domain.ExitError{Code: 3}), 3},
		{"exit error without a code still fails", &domain.ExitError{Expected: 200, Actual: 500}, 1},
		{"transport failure", fmt.Errorf("%w: GET http://x.test: refused", domain.ErrTransport), 1},
		{"validation failure", domain.ErrInvalidURL, 1},
		{"joined batch failures", errors.Join(domain.ErrTransport, domain.ErrMalformedJSON), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := exitCode(tc.err); got != tc.want {
				t.Fatalf("exitCode(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}
