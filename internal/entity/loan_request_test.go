package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoanRequest_Validate(t *testing.T) {
	score := func(v int) *int { return &v }

	tests := []struct {
		name   string
		req    LoanRequest
		fields []string
	}{
		{"amount only", LoanRequest{LoanAmount: 1}, nil},
		{"all dimensions", LoanRequest{LoanAmount: 50000, State: "ca", PropertyType: "retail", CreditScore: score(850)}, nil},
		{"zero amount", LoanRequest{}, []string{"loanAmount"}},
		{"negative amount", LoanRequest{LoanAmount: -5}, []string{"loanAmount"}},
		{"long state", LoanRequest{LoanAmount: 1, State: "Texas"}, []string{"state"}},
		{"score too low", LoanRequest{LoanAmount: 1, CreditScore: score(299)}, []string{"creditScore"}},
		{"score too high", LoanRequest{LoanAmount: 1, CreditScore: score(851)}, []string{"creditScore"}},
		{"several", LoanRequest{State: "1A", CreditScore: score(0)}, []string{"loanAmount", "state", "creditScore"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate()
			var got []string
			for _, e := range errs {
				got = append(got, e.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}
