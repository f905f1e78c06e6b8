package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	ReferralPending    = "PENDING"
	ReferralDispatched = "DISPATCHED"
	ReferralFailed     = "FAILED"
	ReferralStale      = "STALE"
)

var ErrReferralNotFound = errors.New("referral not found")

// Referral is a lead handed to the lender chosen by the matcher.
type Referral struct {
	ID           string      `json:"id"`
	LeadEmail    string      `json:"lead_email"`
	LeadName     string      `json:"lead_name,omitempty"`
	LeadPhone    string      `json:"lead_phone,omitempty"`
	LenderID     string      `json:"lender_id"`
	Channel      ChannelType `json:"channel"`
	LoanAmount   float64     `json:"loan_amount"`
	State        string      `json:"state,omitempty"`
	PropertyType string      `json:"property_type,omitempty"`
	Status       string      `json:"status"`
	RedirectURL  string      `json:"redirect_url,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func NewReferral(lead Lead, lender LenderProfile, req LoanRequest) *Referral {
	now := time.Now()
	r := &Referral{
		ID:           uuid.New().String(),
		LeadEmail:    lead.Email,
		LeadName:     lead.Name,
		LeadPhone:    lead.Phone,
		LenderID:     lender.ID,
		Channel:      lender.Channel.Type,
		LoanAmount:   req.LoanAmount,
		State:        req.State,
		PropertyType: req.PropertyType,
		Status:       ReferralPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if lender.Channel.Type == ChannelLink {
		r.RedirectURL = lender.Channel.URL
	}
	return r
}

type ReferralRepositoryInterface interface {
	Create(ctx context.Context, r *Referral) error
	UpdateStatus(ctx context.Context, id, status string) error
	FindByID(ctx context.Context, id string) (*Referral, error)
}
