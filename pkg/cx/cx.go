// Package cx composes space-separated class-name strings from conditional
// chunks, for HTML views.
package cx

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/cardmenu/pkg/domain"
)

// Toggle is a class name switched on or off. A []Toggle keeps its order,
// unlike a map.
type Toggle struct {
	Name string
	On   bool
}

// If builds a Toggle.
func If(name string, on bool) Toggle {
	return Toggle{Name: name, On: on}
}

// Join concatenates chunks in order, separated by single spaces.
//
// Accepted chunks:
//   - string: kept when non-empty
//   - map[string]bool: keys whose value is true, in sorted order
//   - Toggle, []Toggle: names whose flag is on, in order
//   - nil: ignored
//
// Any other chunk fails with *domain.InvalidInputError.
func Join(chunks ...any) (string, error) {
	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		switch c := chunk.(type) {
		case nil:
		case string:
			if c != "" {
				parts = append(parts, c)
			}
		case map[string]bool:
			names := make([]string, 0, len(c))
			for name, on := range c {
				if on && name != "" {
					names = append(names, name)
				}
			}
			sort.Strings(names)
			parts = append(parts, names...)
		case Toggle:
			if c.On && c.Name != "" {
				parts = append(parts, c.Name)
			}
		case []Toggle:
			for _, t := range c {
				if t.On && t.Name != "" {
					parts = append(parts, t.Name)
				}
			}
		default:
			return "", &domain.InvalidInputError{
				Value:  chunk,
				Reason: fmt.Sprintf("class chunk %d must be a string, map[string]bool, Toggle or nil", i),
			}
		}
	}
	return strings.Join(parts, " "), nil
}

// MustJoin is Join for templates; it panics on invalid chunks.
func MustJoin(chunks ...any) string {
	s, err := Join(chunks...)
	if err != nil {
		panic(err)
	}
	return s
}
