package usecase

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/rokfinancial/broker-portal/internal/entity"
)

var nonDigits = regexp.MustCompile(`\D`)

func ValidateRouteLeadInput(input RouteLeadInput) []entity.ValidationError {
	var errs []entity.ValidationError

	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, entity.ValidationError{Field: "email", Message: "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errs = append(errs, entity.ValidationError{Field: "email", Message: "is invalid"})
	}

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, entity.ValidationError{Field: "name", Message: "is required"})
	} else if len(input.Name) > 200 {
		errs = append(errs, entity.ValidationError{Field: "name", Message: "must not exceed 200 characters"})
	}

	if input.Phone != "" && !isValidPhoneNumber(input.Phone) {
		errs = append(errs, entity.ValidationError{Field: "phone", Message: "must be a valid phone number"})
	}

	return append(errs, input.LoanRequest.Validate()...)
}

// US numbers, optionally prefixed with the country code.
func isValidPhoneNumber(phone string) bool {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	return len(cleaned) == 10 || (len(cleaned) == 11 && cleaned[0] == '1')
}
