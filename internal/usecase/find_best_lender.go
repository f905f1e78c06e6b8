package usecase

import (
	"sort"
	"strings"

	"github.com/rokfinancial/broker-portal/internal/entity"
)

// FindBestLender returns the eligible active lender with the lowest priority
// value, or false when none qualifies. Equal priorities keep registry order.
func FindBestLender(registry *entity.LenderRegistry, req entity.LoanRequest) (*entity.LenderProfile, bool) {
	eligible := EligibleLenders(registry, req)
	if len(eligible) == 0 {
		return nil, false
	}
	best := eligible[0]
	return &best, true
}

// EligibleLenders returns every eligible lender sorted by priority.
func EligibleLenders(registry *entity.LenderRegistry, req entity.LoanRequest) []entity.LenderProfile {
	if registry == nil {
		return nil
	}

	var eligible []entity.LenderProfile
	for _, p := range registry.All() {
		if isEligible(p, req) {
			eligible = append(eligible, p)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Priority < eligible[j].Priority
	})
	return eligible
}

func isEligible(p entity.LenderProfile, req entity.LoanRequest) bool {
	if !p.Active {
		return false
	}
	c := p.Criteria
	if c == nil {
		return true
	}

	if c.MinLoanAmount != nil && req.LoanAmount < *c.MinLoanAmount {
		return false
	}
	if c.MaxLoanAmount != nil && req.LoanAmount > *c.MaxLoanAmount {
		return false
	}

	// Dimensions the request leaves empty never disqualify.
	if pt := strings.TrimSpace(req.PropertyType); pt != "" && len(c.PropertyTypes) > 0 && !containsFold(c.PropertyTypes, pt) {
		return false
	}
	if st := strings.TrimSpace(req.State); st != "" && len(c.States) > 0 && !containsFold(c.States, st) {
		return false
	}
	if req.CreditScore != nil && c.CreditScoreMin != nil && *req.CreditScore < *c.CreditScoreMin {
		return false
	}

	return true
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return true
		}
	}
	return false
}
