package ui

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"confmat/app"
)

type generateResponse struct {
	RunID      string      `json:"run_id"`
	Labels     []string    `json:"labels"`
	Warnings   []string    `json:"warnings,omitempty"`
	Summary    interface{} `json:"summary"`
	OutputName string      `json:"output_name"`
}

// handleHealth reports liveness
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGenerate accepts a multipart workbook upload, runs the pipeline
// and returns the generated workbook. Pipeline metadata travels in the
// X-Confmat-Report header as JSON.
func (a *App) handleGenerate(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	workDir, err := os.MkdirTemp("", "confmat-upload-")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to stage upload")
		return
	}
	defer os.RemoveAll(workDir)

	inputPath := filepath.Join(workDir, filepath.Base(header.Filename))
	dst, err := os.Create(inputPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to stage upload")
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		writeError(w, http.StatusInternalServerError, "failed to stage upload")
		return
	}
	dst.Close()

	result, err := a.service.Generate(r.Context(), app.GenerateRequest{InputPath: inputPath})
	if err != nil {
		a.logger.Error("generate failed: %v", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	meta, _ := json.Marshal(generateResponse{
		RunID:      result.RunID.String(),
		Labels:     result.Report.Labels,
		Warnings:   result.Warnings,
		Summary:    result.Summary,
		OutputName: filepath.Base(result.OutputPath),
	})

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(result.OutputPath)+`"`)
	w.Header().Set("X-Confmat-Report", string(meta))

	out, err := os.Open(result.OutputPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "generated workbook unavailable")
		return
	}
	defer out.Close()
	io.Copy(w, out)
}

// handleListRuns returns recent runs from the ledger
func (a *App) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if a.ledger == nil {
		writeError(w, http.StatusServiceUnavailable, "run ledger disabled (set CONFMAT_DB)")
		return
	}

	runs, err := a.ledger.ListRuns(r.Context(), 50)
	if err != nil {
		a.logger.Error("list runs failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"runs": runs})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
