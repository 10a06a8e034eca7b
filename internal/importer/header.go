package importer

import "strings"

// headerMap resolves column names to cell indices, case-insensitively and
// ignoring surrounding whitespace.
type headerMap map[string]int

func resolveHeader(row []string) headerMap {
	m := make(headerMap, len(row))
	for i, name := range row {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, exists := m[key]; !exists {
			m[key] = i
		}
	}
	return m
}

// get returns the trimmed cell under the named column, or "" when the column
// is absent or the row is short.
func (h headerMap) get(cells []string, name string) string {
	idx, ok := h[name]
	if !ok || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}
