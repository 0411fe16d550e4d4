package samples

import "github.com/sahilm/fuzzy"

// Filter returns the ids matching query, best match first. An empty query
// keeps every id in its original order.
func Filter(ids []string, query string) []string {
	if query == "" {
		return append([]string(nil), ids...)
	}
	matches := fuzzy.Find(query, ids)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}
