package usecase

import "github.com/rokfinancial/broker-portal/internal/entity"

type MatchLenderOutput struct {
	Found      bool                   `json:"found"`
	Lender     *entity.LenderProfile  `json:"lender,omitempty"`
	Alternates []entity.LenderProfile `json:"alternates,omitempty"`
}

type SubmitFormOutput struct {
	SubmissionID string                 `json:"submissionId"`
	Mapped       bool                   `json:"mapped"`
	Response     map[string]interface{} `json:"response"`
}

type RouteLeadInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	entity.LoanRequest
}

type RouteLeadOutput struct {
	ReferralID  string             `json:"referralId"`
	LenderID    string             `json:"lenderId"`
	LenderName  string             `json:"lenderName"`
	Channel     entity.ChannelType `json:"channel"`
	Status      string             `json:"status"`
	RedirectURL string             `json:"redirectUrl,omitempty"`
}
