package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rokfinancial/broker-portal/internal/entity"
	"github.com/rokfinancial/broker-portal/internal/logger"
)

type ReferralFinder interface {
	FindByID(ctx context.Context, id string) (*entity.Referral, error)
}

// ReferralStatus is the public view of a referral. Lead contact details are
// not returned.
type ReferralStatus struct {
	ID          string             `json:"id"`
	LenderID    string             `json:"lender_id"`
	Channel     entity.ChannelType `json:"channel"`
	Status      string             `json:"status"`
	RedirectURL string             `json:"redirect_url,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type ReferralHandler struct {
	Referrals ReferralFinder
	Logger    logger.Logger
}

func NewReferralHandler(referrals ReferralFinder, log logger.Logger) *ReferralHandler {
	return &ReferralHandler{Referrals: referrals, Logger: log}
}

// GetReferral handles GET /referrals/{id}.
func (h *ReferralHandler) GetReferral(w http.ResponseWriter, r *http.Request) {
	ref, err := h.Referrals.FindByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, entity.ErrReferralNotFound) {
		writeErrorResponse(w, http.StatusNotFound, "REFERRAL_NOT_FOUND", "referral not found")
		return
	}
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, ReferralStatus{
		ID:          ref.ID,
		LenderID:    ref.LenderID,
		Channel:     ref.Channel,
		Status:      ref.Status,
		RedirectURL: ref.RedirectURL,
		CreatedAt:   ref.CreatedAt,
		UpdatedAt:   ref.UpdatedAt,
	})
}
