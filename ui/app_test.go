package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"confmat/adapters/excel"
	"confmat/app"
	"confmat/internal/config"
	"confmat/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeLedger struct {
	runs []ports.RunRecord
}

func (l *fakeLedger) SaveRun(_ context.Context, record ports.RunRecord) error {
	l.runs = append(l.runs, record)
	return nil
}

func (l *fakeLedger) ListRuns(context.Context, int) ([]ports.RunRecord, error) {
	return l.runs, nil
}

func (l *fakeLedger) GetRun(context.Context, uuid.UUID) (*ports.RunRecord, error) {
	return nil, nil
}

func newTestApp(ledger ports.RunLedgerPort) *App {
	cfg := &config.Config{Output: config.OutputConfig{FileName: config.DefaultOutputName}}
	service := app.NewReportService(excel.NewReportWriter(), ledger, cfg)
	return NewApp(service, ledger)
}

func uploadBody(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	header := []interface{}{"id", "True Positive", "False Negative"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	row := []interface{}{"1", "asthma", "copd"}
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &row))

	var workbook bytes.Buffer
	require.NoError(t, f.Write(&workbook))

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "input.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbook.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return body, mw.FormDataContentType()
}

func TestHandleHealth(t *testing.T) {
	app := newTestApp(nil)
	rec := httptest.NewRecorder()

	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleGenerate(t *testing.T) {
	ledger := &fakeLedger{}
	app := newTestApp(ledger)

	body, contentType := uploadBody(t)
	req := httptest.NewRequest(http.MethodPost, "/api/generate", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	app.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Body.Bytes(), "workbook bytes expected")

	var meta generateResponse
	require.NoError(t, json.Unmarshal([]byte(rec.Header().Get("X-Confmat-Report")), &meta))
	assert.Equal(t, []string{"asthma", "copd"}, meta.Labels)
	assert.Len(t, meta.Warnings, 2, "FP and TN columns absent from upload")

	assert.Len(t, ledger.runs, 1)
}

func TestHandleGenerate_MissingFile(t *testing.T) {
	app := newTestApp(nil)
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodPost, "/api/generate", nil)
	app.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleListRuns(t *testing.T) {
	ledger := &fakeLedger{runs: []ports.RunRecord{{
		ID:         uuid.New(),
		LabelCount: 3,
		CreatedAt:  time.Now().UTC(),
	}}}
	app := newTestApp(ledger)
	rec := httptest.NewRecorder()

	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Runs []ports.RunRecord `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Len(t, payload.Runs, 1)
}

func TestHandleListRuns_Disabled(t *testing.T) {
	app := newTestApp(nil)
	rec := httptest.NewRecorder()

	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
