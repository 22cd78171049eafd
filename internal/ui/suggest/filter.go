package suggest

import (
	"strings"

	"destpick/internal/domain"
)

// MaxSuggestions caps the dropdown length
const MaxSuggestions = 8

// Filter returns the first MaxSuggestions catalog entries whose name
// contains query, ignoring case. A query that is blank after trimming
// matches nothing. The untrimmed query is what gets matched, so a trailing
// space narrows the result like any other character.
func Filter(query string, catalog []domain.Destination) []domain.Destination {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	needle := strings.ToLower(query)
	var out []domain.Destination
	for _, d := range catalog {
		if !strings.Contains(strings.ToLower(d.Name), needle) {
			continue
		}
		out = append(out, d)
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}
