package render

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
)

var errNotUTF8 = errors.New("not valid UTF-8 text")

// decodeText returns body as UTF-8. A declared charset is resolved through the
// WHATWG encoding labels; an unknown label is treated as UTF-8.
func decodeText(body []byte, charset string) ([]byte, error) {
	if charset != "" {
		if enc, err := htmlindex.Get(charset); err == nil {
			if name, _ := htmlindex.Name(enc); name != "utf-8" {
				out, err := enc.NewDecoder().Bytes(body)
				if err != nil {
					return nil, fmt.Errorf("decode %s text: %v", name, err)
				}
				return out, nil
			}
		}
	}
	if !utf8.Valid(body) {
		return nil, errNotUTF8
	}
	return body, nil
}
