package matrix

import (
	"reflect"
	"testing"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"already normalized", "true_positive", "true_positive"},
		{"spaces and case", "True Positive", "true_positive"},
		{"surrounding whitespace", "  True Positive  ", "true_positive"},
		{"mixed", " False NEGATIVE findings", "false_negative_findings"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeHeader(tt.header); got != tt.want {
				t.Errorf("NormalizeHeader(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestMapColumns(t *testing.T) {
	headers := []string{"Case ID", " True Positive ", "false positive notes", "True Negative", "False Negative"}

	mapping := MapColumns(headers)

	if len(mapping.Missing) != 0 {
		t.Fatalf("expected no missing categories, got %v", mapping.Missing)
	}
	if got := mapping.Columns[TruePositive]; got != " True Positive " {
		t.Errorf("true_positive mapped to %q", got)
	}
	if got := mapping.Columns[FalsePositive]; got != "false positive notes" {
		t.Errorf("false_positive mapped to %q", got)
	}
}

func TestMapColumns_FirstMatchWins(t *testing.T) {
	headers := []string{"true_positive_primary", "true_positive_secondary"}

	mapping := MapColumns(headers)

	if got := mapping.Columns[TruePositive]; got != "true_positive_primary" {
		t.Errorf("expected first matching header, got %q", got)
	}
}

func TestMapColumns_AllMissing(t *testing.T) {
	mapping := MapColumns([]string{"id", "notes"})

	if len(mapping.Missing) != 4 {
		t.Fatalf("expected 4 missing categories, got %d", len(mapping.Missing))
	}
	for _, cat := range Categories {
		if mapping.Columns[cat] != "" {
			t.Errorf("category %s should map to empty substitute, got %q", cat, mapping.Columns[cat])
		}
	}
}

func TestExtractLabels(t *testing.T) {
	headers := []string{"true_positive", "false_negative"}
	rows := []map[string]string{
		{"true_positive": "Asthma, COPD", "false_negative": "pneumonia"},
		{"true_positive": "copd; sepsis", "false_negative": ""},
	}

	labels := ExtractLabels(rows, MapColumns(headers))

	want := []string{"asthma", "copd", "pneumonia", "sepsis"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("ExtractLabels = %v, want %v", labels, want)
	}
}

func TestExtractLabels_Unicode(t *testing.T) {
	headers := []string{"true_positive"}
	rows := []map[string]string{
		{"true_positive": "Sjögren; Ménière, café-au-lait"},
	}

	labels := ExtractLabels(rows, MapColumns(headers))

	want := []string{"au", "café", "lait", "ménière", "sjögren"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("ExtractLabels = %v, want %v", labels, want)
	}
}

func TestExtractLabels_RowOrderInvariant(t *testing.T) {
	headers := []string{"true_positive"}
	forward := []map[string]string{
		{"true_positive": "flu"},
		{"true_positive": "measles mumps"},
		{"true_positive": "rubella"},
	}
	reversed := []map[string]string{forward[2], forward[1], forward[0]}

	a := ExtractLabels(forward, MapColumns(headers))
	b := ExtractLabels(reversed, MapColumns(headers))

	if !reflect.DeepEqual(a, b) {
		t.Errorf("label set depends on row order: %v vs %v", a, b)
	}
}

func TestExtractLabels_NoMappedColumns(t *testing.T) {
	rows := []map[string]string{{"notes": "asthma"}}

	labels := ExtractLabels(rows, MapColumns([]string{"notes"}))

	if len(labels) != 0 {
		t.Errorf("expected no labels without mapped columns, got %v", labels)
	}
}
