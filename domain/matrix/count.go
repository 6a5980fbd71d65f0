package matrix

import "strings"

// countRows returns how many cells contain the label as a substring.
// Row counts, not token counts: a row with the label twice still counts once,
// and a label may match inside a longer value.
func countRows(values []string, label string) int {
	n := 0
	for _, value := range values {
		if strings.Contains(value, label) {
			n++
		}
	}
	return n
}

// BuildReport maps the four confusion columns, extracts the label set and
// tallies per-label counts across all input rows. Headers keep their input
// order so "first matching header wins" stays deterministic.
func BuildReport(headers []string, rows []map[string]string) Report {
	return BuildReportWithMapping(rows, MapColumns(headers))
}

// BuildReportWithMapping tallies counts against an already-resolved mapping.
// Labels and cell values are lowercased before comparison, so containment
// is case-insensitive.
func BuildReportWithMapping(rows []map[string]string, mapping ColumnMapping) Report {
	labels := ExtractLabels(rows, mapping)

	columns := make(map[Category][]string, len(Categories))
	for _, cat := range Categories {
		columns[cat] = CategoryValues(rows, mapping, cat)
	}

	results := make([]Result, 0, len(labels))
	for _, label := range labels {
		results = append(results, Result{
			Condition:     label,
			TruePositive:  countRows(columns[TruePositive], label),
			FalsePositive: countRows(columns[FalsePositive], label),
			TrueNegative:  countRows(columns[TrueNegative], label),
			FalseNegative: countRows(columns[FalseNegative], label),
		})
	}

	return Report{Labels: labels, Results: results, Mapping: mapping}
}
