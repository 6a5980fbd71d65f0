package matrix

import "github.com/montanaflynn/stats"

// Sensitivity returns TP/(TP+FN), or 0 when the denominator is zero.
// Mirrors the IFERROR default in the workbook formulas.
func (r Result) Sensitivity() float64 {
	if r.TruePositive+r.FalseNegative == 0 {
		return 0
	}
	return float64(r.TruePositive) / float64(r.TruePositive+r.FalseNegative)
}

// Specificity returns TN/(TN+FP), or 0 when the denominator is zero.
func (r Result) Specificity() float64 {
	if r.TrueNegative+r.FalsePositive == 0 {
		return 0
	}
	return float64(r.TrueNegative) / float64(r.TrueNegative+r.FalsePositive)
}

// Summary aggregates the numeric ratios across all labels. It never lands
// in the workbook; it feeds logs, the run ledger and the serve API.
type Summary struct {
	LabelCount        int     `json:"label_count"`
	MeanSensitivity   float64 `json:"mean_sensitivity"`
	MedianSensitivity float64 `json:"median_sensitivity"`
	MeanSpecificity   float64 `json:"mean_specificity"`
	MedianSpecificity float64 `json:"median_specificity"`
	TotalTP           int     `json:"total_tp"`
	TotalFP           int     `json:"total_fp"`
	TotalTN           int     `json:"total_tn"`
	TotalFN           int     `json:"total_fn"`
}

// Summarize computes aggregate sensitivity/specificity over a report.
// An empty report yields the zero Summary.
func Summarize(report Report) Summary {
	summary := Summary{LabelCount: len(report.Results)}
	if len(report.Results) == 0 {
		return summary
	}

	sens := make([]float64, 0, len(report.Results))
	spec := make([]float64, 0, len(report.Results))
	for _, result := range report.Results {
		sens = append(sens, result.Sensitivity())
		spec = append(spec, result.Specificity())
		summary.TotalTP += result.TruePositive
		summary.TotalFP += result.FalsePositive
		summary.TotalTN += result.TrueNegative
		summary.TotalFN += result.FalseNegative
	}

	summary.MeanSensitivity, _ = stats.Mean(sens)
	summary.MedianSensitivity, _ = stats.Median(sens)
	summary.MeanSpecificity, _ = stats.Mean(spec)
	summary.MedianSpecificity, _ = stats.Median(spec)
	return summary
}
