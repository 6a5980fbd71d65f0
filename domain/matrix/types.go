package matrix

// Category identifies one of the four confusion-matrix columns.
type Category string

const (
	TruePositive  Category = "true_positive"
	FalsePositive Category = "false_positive"
	TrueNegative  Category = "true_negative"
	FalseNegative Category = "false_negative"
)

// Categories lists the four semantic columns in output order.
var Categories = []Category{TruePositive, FalsePositive, TrueNegative, FalseNegative}

// OutputColumns is the header row of the "Confusion Matrix" sheet.
var OutputColumns = []string{
	"condition",
	"true_Positive",
	"false_Positive",
	"true_Negative",
	"false_Negative",
	"Sensitivity",
	"Specificity",
	"Check",
	"Positive Ground Truth",
	"Negative Ground Truth",
	"Ground Truth Check",
}

// ColumnMapping records which input header (normalized) serves each category.
// A missing category maps to the empty string and counts as zero everywhere.
type ColumnMapping struct {
	Columns map[Category]string
	Missing []Category
}

// Result holds the tallied counts for a single classifier label.
type Result struct {
	Condition     string `json:"condition"`
	TruePositive  int    `json:"true_positive"`
	FalsePositive int    `json:"false_positive"`
	TrueNegative  int    `json:"true_negative"`
	FalseNegative int    `json:"false_negative"`
}

// Count returns the tally for the given category.
func (r Result) Count(c Category) int {
	switch c {
	case TruePositive:
		return r.TruePositive
	case FalsePositive:
		return r.FalsePositive
	case TrueNegative:
		return r.TrueNegative
	case FalseNegative:
		return r.FalseNegative
	}
	return 0
}

// Report is the full outcome of a counting pass: one Result per label,
// sorted lexicographically, plus the mapping that produced it.
type Report struct {
	Labels  []string
	Results []Result
	Mapping ColumnMapping
}
