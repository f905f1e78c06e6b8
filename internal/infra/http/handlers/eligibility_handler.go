package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rokfinancial/broker-portal/internal/entity"
	"github.com/rokfinancial/broker-portal/internal/logger"
	"github.com/rokfinancial/broker-portal/internal/usecase"
)

type LenderMatcher interface {
	Execute(ctx context.Context, req entity.LoanRequest) (*usecase.MatchLenderOutput, error)
}

// LenderView is the public shape of a matched lender. Partner intake
// addresses stay server side; only link channels expose their URL.
type LenderView struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Channel entity.ChannelType `json:"channel"`
	URL     string             `json:"url,omitempty"`
}

type MatchResponse struct {
	Found      bool         `json:"found"`
	Lender     *LenderView  `json:"lender"`
	Alternates []LenderView `json:"alternates"`
}

func newLenderView(l entity.LenderProfile) LenderView {
	v := LenderView{ID: l.ID, Name: l.Name, Channel: l.Channel.Type}
	if l.Channel.Type == entity.ChannelLink {
		v.URL = l.Channel.URL
	}
	return v
}

type EligibilityHandler struct {
	Matcher LenderMatcher
	Logger  logger.Logger
}

func NewEligibilityHandler(matcher LenderMatcher, log logger.Logger) *EligibilityHandler {
	return &EligibilityHandler{Matcher: matcher, Logger: log}
}

// Match handles POST /lenders/match.
func (h *EligibilityHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req entity.LoanRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}

	out, err := h.Matcher.Execute(r.Context(), req)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	if !out.Found || out.Lender == nil {
		writeErrorResponse(w, http.StatusNotFound, usecase.CodeNoEligibleLender, "no lender is currently accepting this request")
		return
	}

	best := newLenderView(*out.Lender)
	resp := MatchResponse{Found: true, Lender: &best, Alternates: make([]LenderView, 0, len(out.Alternates))}
	for _, alt := range out.Alternates {
		resp.Alternates = append(resp.Alternates, newLenderView(alt))
	}
	writeJSON(w, http.StatusOK, resp)
}
