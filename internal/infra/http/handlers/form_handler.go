package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rokfinancial/broker-portal/internal/entity"
	"github.com/rokfinancial/broker-portal/internal/logger"
	"github.com/rokfinancial/broker-portal/internal/usecase"
)

const (
	maxBodyBytes           = 1 << 20
	maxSubmissionListLimit = 500
)

type FormSubmitter interface {
	Execute(ctx context.Context, input entity.FormSubmission) (*usecase.SubmitFormOutput, error)
}

type SubmissionLister interface {
	ListByForm(ctx context.Context, formID string, limit int) ([]*entity.SubmissionRecord, error)
}

type FormHandler struct {
	Submitter   FormSubmitter
	Submissions SubmissionLister
	Logger      logger.Logger
}

func NewFormHandler(submitter FormSubmitter, submissions SubmissionLister, log logger.Logger) *FormHandler {
	return &FormHandler{Submitter: submitter, Submissions: submissions, Logger: log}
}

// Submit handles POST /forms/{formId}/submit. The body is either
// {"data": {...}} or the record itself.
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formId")

	var body map[string]interface{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}

	out, err := h.Submitter.Execute(r.Context(), entity.FormSubmission{
		FormID: formID,
		Data:   unwrapData(body),
	})
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	w.Header().Set("X-Submission-ID", out.SubmissionID)
	writeJSON(w, http.StatusOK, out.Response)
}

// ListSubmissions handles GET /forms/{formId}/submissions?limit=N, newest
// first. N is capped at maxSubmissionListLimit.
func (h *FormHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formId")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeErrorResponse(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a non-negative integer")
			return
		}
		limit = min(n, maxSubmissionListLimit)
	}

	records, err := h.Submissions.ListByForm(r.Context(), formID, limit)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	if records == nil {
		records = []*entity.SubmissionRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}

func unwrapData(body map[string]interface{}) map[string]interface{} {
	if len(body) != 1 {
		return body
	}
	if inner, ok := body["data"].(map[string]interface{}); ok {
		return inner
	}
	return body
}
