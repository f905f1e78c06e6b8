package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rokfinancial/broker-portal/internal/infra/integration/gohighlevel"
	"github.com/rokfinancial/broker-portal/internal/logger"
	"github.com/rokfinancial/broker-portal/internal/usecase"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeUseCaseError maps use case and partner errors to HTTP responses.
func writeUseCaseError(w http.ResponseWriter, log logger.Logger, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		status := http.StatusBadRequest
		switch de.Code {
		case usecase.CodeNoEligibleLender:
			status = http.StatusNotFound
		case usecase.CodeInvalidFormData:
			status = http.StatusUnprocessableEntity
		}
		writeErrorResponse(w, status, de.Code, de.Message)
		return
	}

	var se *gohighlevel.SubmissionError
	if errors.As(err, &se) {
		writeErrorResponse(w, http.StatusBadGateway, "SUBMISSION_FAILED", se.Message)
		return
	}

	log.Error("request failed", map[string]interface{}{"error": err})

	code := "INTERNAL_ERROR"
	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		code = te.Code
	}
	writeErrorResponse(w, http.StatusInternalServerError, code, "internal server error")
}
