package mail

import "gopkg.in/gomail.v2"

type ReferralEmailData struct {
	LenderName   string
	ReferralID   string
	Name         string
	Email        string
	Phone        string
	LoanAmount   string
	State        string
	PropertyType string
	CreditScore  string
}

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	From   string
	dialer Dialer
}
