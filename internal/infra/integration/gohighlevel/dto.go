package gohighlevel

import (
	"errors"
	"fmt"
)

var ErrMissingCredential = errors.New("gohighlevel: api key is not configured")

type submitRequest struct {
	Data map[string]interface{} `json:"data"`
}

// partnerError lists the keys GoHighLevel uses for error text across its endpoints.
type partnerError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Msg     string `json:"msg"`
}

func (p partnerError) text() string {
	switch {
	case p.Message != "":
		return p.Message
	case p.Error != "":
		return p.Error
	default:
		return p.Msg
	}
}

// SubmissionError reports a failed form submission. StatusCode is zero for
// transport failures.
type SubmissionError struct {
	FormID     string
	StatusCode int
	Message    string
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("form %s submission failed (status %d): %s", e.FormID, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("form %s submission failed: %s", e.FormID, e.Message)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
