package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rokfinancial/broker-portal/internal/logger"
	"github.com/rokfinancial/broker-portal/internal/usecase"
)

type LeadRouter interface {
	Execute(ctx context.Context, input usecase.RouteLeadInput) (*usecase.RouteLeadOutput, error)
}

type LeadHandler struct {
	Router  LeadRouter
	Limiter Limiter
	Logger  logger.Logger
}

func NewLeadHandler(router LeadRouter, limiter Limiter, log logger.Logger) *LeadHandler {
	return &LeadHandler{
		Router:  router,
		Limiter: limiter,
		Logger:  log,
	}
}

// CaptureLead handles POST /leads: the lead is stored and routed to the best
// eligible lender.
func (h *LeadHandler) CaptureLead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.Limiter != nil {
		clientIP := getClientIP(r)
		allowed, err := h.Limiter.Allow(ctx, clientIP)
		if err != nil {
			// Limiter outages must not block lead capture.
			h.Logger.Warn("rate limiter unavailable", map[string]interface{}{"error": err})
			allowed = true
		}
		if !allowed {
			writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests, please try again later")
			return
		}
	}

	var input usecase.RouteLeadInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}

	out, err := h.Router.Execute(ctx, input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, out)
}
