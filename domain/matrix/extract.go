package matrix

import (
	"regexp"
	"sort"
	"strings"
)

// Runs of anything outside letters, digits and underscore. Unicode-aware,
// so accented condition names (Sjögren, Ménière) survive tokenization.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// NormalizeHeader lowercases a header and replaces spaces with underscores
// so lookups survive the usual spreadsheet naming drift.
func NormalizeHeader(header string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(header)), " ", "_")
}

// MapColumns resolves each confusion category to the first input header
// whose normalized form contains the category name as a substring.
// Categories with no matching header land in Mapping.Missing.
func MapColumns(headers []string) ColumnMapping {
	mapping := ColumnMapping{Columns: make(map[Category]string, len(Categories))}

	for _, cat := range Categories {
		found := ""
		for _, header := range headers {
			if strings.Contains(NormalizeHeader(header), string(cat)) {
				found = header
				break
			}
		}
		if found == "" {
			mapping.Missing = append(mapping.Missing, cat)
		}
		mapping.Columns[cat] = found
	}

	return mapping
}

// CategoryValues collects the lowercased cell values of the mapped column
// for one category, one entry per input row. Unmapped categories yield a
// column of empty strings so downstream counts come out zero.
func CategoryValues(rows []map[string]string, mapping ColumnMapping, cat Category) []string {
	header := mapping.Columns[cat]
	values := make([]string, len(rows))
	if header == "" {
		return values
	}
	for i, row := range rows {
		values[i] = strings.ToLower(row[header])
	}
	return values
}

// ExtractLabels tokenizes every cell of the four mapped columns on runs of
// non-word characters and returns the deduplicated, sorted union.
func ExtractLabels(rows []map[string]string, mapping ColumnMapping) []string {
	seen := make(map[string]struct{})

	for _, cat := range Categories {
		if mapping.Columns[cat] == "" {
			continue
		}
		for _, value := range CategoryValues(rows, mapping, cat) {
			for _, token := range nonWord.Split(value, -1) {
				token = strings.TrimSpace(token)
				if token == "" {
					continue
				}
				seen[token] = struct{}{}
			}
		}
	}

	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
