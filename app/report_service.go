package app

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"confmat/adapters/excel"
	"confmat/domain/core"
	"confmat/domain/matrix"
	"confmat/internal"
	"confmat/internal/config"
	"confmat/internal/errors"
	"confmat/ports"

	"github.com/google/uuid"
)

// TableReader reads the input spreadsheet into headers and rows.
type TableReader interface {
	ReadData() (*excel.TableData, error)
}

// WorkbookWriter writes the two-sheet output workbook.
type WorkbookWriter interface {
	Write(report matrix.Report, input *excel.TableData, outputPath string) error
}

// ReportService orchestrates the generation pipeline: read input, map
// columns, extract labels, tally counts, write the workbook, record the run.
type ReportService struct {
	writer WorkbookWriter
	ledger ports.RunLedgerPort // nil disables run recording
	config *config.Config
	logger *internal.Logger
}

// GenerateRequest defines inputs for one generation run
type GenerateRequest struct {
	InputPath string
	Reader    TableReader // defaults to the excel DataReader for InputPath
}

// GenerateResult contains the run outcome
type GenerateResult struct {
	RunID      uuid.UUID
	OutputPath string
	Report     matrix.Report
	Summary    matrix.Summary
	Warnings   []string
	RuntimeMs  int64
}

// NewReportService creates a report service
func NewReportService(writer WorkbookWriter, ledger ports.RunLedgerPort, cfg *config.Config) *ReportService {
	return &ReportService{
		writer: writer,
		ledger: ledger,
		config: cfg,
		logger: internal.DefaultLogger,
	}
}

// Generate runs the full pipeline for one input file.
// Input problems are fatal; missing confusion columns and ledger failures
// degrade to warnings.
func (s *ReportService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	startTime := time.Now()

	if req.InputPath != "" {
		if _, err := os.Stat(req.InputPath); os.IsNotExist(err) {
			return nil, errors.InputNotFound(req.InputPath)
		}
	}

	reader := req.Reader
	if reader == nil {
		reader = excel.NewDataReader(req.InputPath)
	}

	data, err := reader.ReadData()
	if err != nil {
		return nil, errors.ReadFailed(err)
	}
	s.logger.Info("successfully read input: %s", filepath.Base(req.InputPath))

	mapping := matrix.MapColumns(data.Headers)
	var warnings []string
	for _, cat := range mapping.Missing {
		warning := core.NewColumnError(string(cat)).Error()
		warnings = append(warnings, warning)
		s.logger.Warn(warning)
	}

	rows := make([]map[string]string, len(data.Rows))
	for i, row := range data.Rows {
		rows[i] = row
	}

	report := matrix.BuildReportWithMapping(rows, mapping)
	s.logger.Info("found %d unique classifiers", len(report.Labels))

	outputPath := filepath.Join(filepath.Dir(req.InputPath), s.config.Output.FileName)
	if err := s.writer.Write(report, data, outputPath); err != nil {
		return nil, errors.WriteFailed(err)
	}

	summary := matrix.Summarize(report)
	s.logger.Info("mean sensitivity %.4f, mean specificity %.4f across %d labels",
		summary.MeanSensitivity, summary.MeanSpecificity, summary.LabelCount)

	result := &GenerateResult{
		RunID:      uuid.New(),
		OutputPath: outputPath,
		Report:     report,
		Summary:    summary,
		Warnings:   warnings,
		RuntimeMs:  time.Since(startTime).Milliseconds(),
	}

	s.recordRun(ctx, req.InputPath, result)

	return result, nil
}

// recordRun appends the run to the ledger when one is configured.
func (s *ReportService) recordRun(ctx context.Context, inputPath string, result *GenerateResult) {
	if s.ledger == nil {
		return
	}

	record := ports.RunRecord{
		ID:                result.RunID,
		InputPath:         inputPath,
		OutputPath:        result.OutputPath,
		LabelCount:        result.Summary.LabelCount,
		TotalTP:           result.Summary.TotalTP,
		TotalFP:           result.Summary.TotalFP,
		TotalTN:           result.Summary.TotalTN,
		TotalFN:           result.Summary.TotalFN,
		MeanSensitivity:   result.Summary.MeanSensitivity,
		MedianSensitivity: result.Summary.MedianSensitivity,
		MeanSpecificity:   result.Summary.MeanSpecificity,
		MedianSpecificity: result.Summary.MedianSpecificity,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.ledger.SaveRun(ctx, record); err != nil {
		s.logger.Warn("run ledger save failed: %v", err)
	}
}
