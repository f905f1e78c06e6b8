package lenderapi

type LeadInput struct {
	ReferenceID  string  `json:"reference_id"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone,omitempty"`
	LoanAmount   float64 `json:"loan_amount"`
	State        string  `json:"state,omitempty"`
	PropertyType string  `json:"property_type,omitempty"`
	CreditScore  *int    `json:"credit_score,omitempty"`
	Source       string  `json:"source"`
}

type WebhookNotification struct {
	ReferenceID string `json:"reference_id"`
	LenderID    string `json:"lender_id"`
	Event       string `json:"event"`
	SentAt      string `json:"sent_at"`
}
