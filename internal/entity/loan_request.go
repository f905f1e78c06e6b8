package entity

import (
	"fmt"
	"regexp"
	"strings"
)

var stateCodePattern = regexp.MustCompile(`^[A-Za-z]{2}$`)

const (
	MinCreditScore = 300
	MaxCreditScore = 850
)

// LoanRequest is the input of an eligibility check. Only LoanAmount is
// required; the other dimensions are skipped by the matcher when empty.
type LoanRequest struct {
	LoanAmount   float64 `json:"loanAmount"`
	PropertyType string  `json:"propertyType,omitempty"`
	State        string  `json:"state,omitempty"`
	CreditScore  *int    `json:"creditScore,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (r LoanRequest) Validate() []ValidationError {
	var errs []ValidationError

	if r.LoanAmount <= 0 {
		errs = append(errs, ValidationError{"loanAmount", "must be a positive number"})
	}
	if s := strings.TrimSpace(r.State); s != "" && !stateCodePattern.MatchString(s) {
		errs = append(errs, ValidationError{"state", "must be a 2-letter code"})
	}
	if r.CreditScore != nil && (*r.CreditScore < MinCreditScore || *r.CreditScore > MaxCreditScore) {
		errs = append(errs, ValidationError{"creditScore", fmt.Sprintf("must be between %d and %d", MinCreditScore, MaxCreditScore)})
	}

	return errs
}
