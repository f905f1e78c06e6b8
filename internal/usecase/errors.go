package usecase

// DomainError is a rejection the caller can act on (bad input, no lender).
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// TechnicalError wraps infrastructure failures that are not the caller's fault.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidFormData  = "INVALID_FORM_DATA"
	CodeNoEligibleLender = "NO_ELIGIBLE_LENDER"
	CodeDatabase         = "DATABASE_ERROR"
	CodeRouting          = "ROUTING_FAILED"
)
