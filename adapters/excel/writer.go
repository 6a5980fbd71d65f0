package excel

import (
	"fmt"

	"confmat/domain/matrix"
	"confmat/internal"

	"github.com/xuri/excelize/v2"
)

const (
	MatrixSheet = "Confusion Matrix"
	InputSheet  = "Input Data"

	percentFormat = 10 // built-in 0.00%
)

// ReportWriter writes the two-sheet output workbook: the confusion matrix
// with derived formulas, and a verbatim copy of the input table.
type ReportWriter struct {
	logger *internal.Logger
}

// NewReportWriter creates a new workbook writer
func NewReportWriter() *ReportWriter {
	return &ReportWriter{logger: internal.DefaultLogger}
}

// Write builds the workbook and saves it to outputPath.
func (w *ReportWriter) Write(report matrix.Report, input *TableData, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", MatrixSheet)
	if _, err := f.NewSheet(InputSheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", InputSheet, err)
	}

	if err := w.writeMatrixSheet(f, report); err != nil {
		return err
	}
	if err := w.writeInputSheet(f, input); err != nil {
		return err
	}
	if err := w.applyStyles(f, report, input); err != nil {
		return err
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	w.logger.Info("[ReportWriter] output file created: %s", outputPath)
	return nil
}

// writeMatrixSheet emits the header, counts and formula columns.
// Sheet rows are 1-indexed with row 1 as the header, so data row i lives
// on sheet row i+2.
func (w *ReportWriter) writeMatrixSheet(f *excelize.File, report matrix.Report) error {
	header := make([]interface{}, len(matrix.OutputColumns))
	for i, col := range matrix.OutputColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(MatrixSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write matrix header: %w", err)
	}

	for i, result := range report.Results {
		row := i + 2
		cells := []interface{}{
			result.Condition,
			result.TruePositive,
			result.FalsePositive,
			result.TrueNegative,
			result.FalseNegative,
		}
		if err := f.SetSheetRow(MatrixSheet, fmt.Sprintf("A%d", row), &cells); err != nil {
			return fmt.Errorf("failed to write result row %d: %w", row, err)
		}

		formulas := map[string]string{
			"F": fmt.Sprintf("IFERROR(B%d/(B%d+E%d), 0)", row, row, row), // Sensitivity
			"G": fmt.Sprintf("IFERROR(D%d/(D%d+C%d),0)", row, row, row),  // Specificity
			"H": fmt.Sprintf("SUM(B%d+C%d)", row, row),                   // Check = TP + FP
			"I": fmt.Sprintf("SUM(B%d+E%d)", row, row),                   // Positive Ground Truth
			"J": fmt.Sprintf("SUM(D%d+C%d)", row, row),                   // Negative Ground Truth
			"K": fmt.Sprintf("SUM(I%d+J%d)", row, row),                   // Ground Truth Check
		}
		for col, formula := range formulas {
			cell := fmt.Sprintf("%s%d", col, row)
			if err := f.SetCellFormula(MatrixSheet, cell, formula); err != nil {
				return fmt.Errorf("failed to set formula at %s: %w", cell, err)
			}
		}
	}

	return nil
}

// writeInputSheet copies the source table verbatim.
func (w *ReportWriter) writeInputSheet(f *excelize.File, input *TableData) error {
	header := make([]interface{}, len(input.Headers))
	for i, h := range input.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(InputSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write input header: %w", err)
	}

	for i := range input.Rows {
		cells := input.RowSlice(i)
		row := make([]interface{}, len(cells))
		for j, cell := range cells {
			row[j] = cell
		}
		if err := f.SetSheetRow(InputSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("failed to write input row %d: %w", i+2, err)
		}
	}

	return nil
}

// applyStyles center-aligns every cell on both sheets and puts the 0.00%
// format on the two ratio columns.
func (w *ReportWriter) applyStyles(f *excelize.File, report matrix.Report, input *TableData) error {
	center, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create center style: %w", err)
	}
	percent, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		NumFmt:    percentFormat,
	})
	if err != nil {
		return fmt.Errorf("failed to create percent style: %w", err)
	}

	matrixLast, err := excelize.CoordinatesToCellName(len(matrix.OutputColumns), len(report.Results)+1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(MatrixSheet, "A1", matrixLast, center); err != nil {
		return fmt.Errorf("failed to style matrix sheet: %w", err)
	}

	if len(report.Results) > 0 {
		lastRow := len(report.Results) + 1
		if err := f.SetCellStyle(MatrixSheet, "F2", fmt.Sprintf("G%d", lastRow), percent); err != nil {
			return fmt.Errorf("failed to style ratio columns: %w", err)
		}
	}

	if len(input.Headers) > 0 {
		inputLast, err := excelize.CoordinatesToCellName(len(input.Headers), len(input.Rows)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(InputSheet, "A1", inputLast, center); err != nil {
			return fmt.Errorf("failed to style input sheet: %w", err)
		}
	}

	return nil
}
