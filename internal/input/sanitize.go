// Package input cleans text typed or posted by users before it reaches a
// binder.
package input

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/cardmenu/pkg/domain"
)

// DefaultMaxSize is 4KB (conservative default).
const DefaultMaxSize = 4096

// Sanitize cleans user input by enforcing a size limit, validating UTF-8,
// and stripping dangerous control characters. A limit <= 0 uses
// DefaultMaxSize. Rejections are *domain.InvalidInputError.
func Sanitize(s string, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultMaxSize
	}
	// Reject rather than truncate so the dispatched value is what was sent.
	if len(s) > limit {
		return "", &domain.InvalidInputError{
			Value:  fmt.Sprintf("%d bytes", len(s)),
			Reason: fmt.Sprintf("input exceeds the limit of %d bytes", limit),
		}
	}

	if !utf8.ValidString(s) {
		return "", &domain.InvalidInputError{Value: s, Reason: "input contains invalid UTF-8 sequences"}
	}

	// Newline, tab and carriage return survive; ESC, NUL, BEL and the like
	// would poison logs and terminals.
	if strings.IndexFunc(s, unsafeControl) < 0 {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unsafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// Name sanitizes a handler name: the result must be a single non-empty
// token.
func Name(s string, limit int) (string, error) {
	clean, err := Sanitize(s, limit)
	if err != nil {
		return "", err
	}
	clean = strings.TrimSpace(clean)
	if clean == "" || strings.ContainsFunc(clean, unicode.IsSpace) {
		return "", &domain.InvalidInputError{Value: s, Reason: "handler names are single words"}
	}
	return clean, nil
}

func unsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}
