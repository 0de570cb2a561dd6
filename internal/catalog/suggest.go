package catalog

import "strings"

// MaxSuggestions caps the number of search suggestions returned.
const MaxSuggestions = 8

const (
	minNameWordLen = 3
	minDescWordLen = 4
)

// Suggestions scans the catalog for strings worth offering as search
// completions for query. Matching product names contribute themselves,
// as do names with a matching word; matching brand, category and
// subcategory values contribute the matched string. Results are
// deduplicated, kept in first-encountered order and capped at
// MaxSuggestions. A blank query yields nothing.
func (c *Catalog) Suggestions(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	for _, p := range c.products {
		name := strings.ToLower(p.Name)

		if strings.Contains(name, q) {
			add(p.Name)
		}
		if strings.Contains(strings.ToLower(p.Brand), q) {
			add(p.Brand)
		}
		if strings.Contains(strings.ToLower(p.Category), q) {
			add(p.Category)
		}
		if p.Subcategory != "" && strings.Contains(strings.ToLower(p.Subcategory), q) {
			add(p.Subcategory)
		}

		for _, word := range strings.Fields(name) {
			if len(word) >= minNameWordLen && strings.Contains(word, q) {
				add(p.Name)
			}
		}

		desc := strings.ToLower(p.Description)
		if strings.Contains(desc, q) {
			for _, word := range strings.Fields(desc) {
				if len(word) >= minDescWordLen && strings.Contains(word, q) {
					add(p.Name)
				}
			}
		}
	}

	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}
