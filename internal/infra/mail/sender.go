package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/rokfinancial/broker-portal/internal/infra/queue"
)

var referralTemplate = template.Must(template.New("referral").Parse(`<p>Hello {{.LenderName}} team,</p>
<p>A new borrower has been matched to you (reference <strong>{{.ReferralID}}</strong>).</p>
<ul>
  <li>Name: {{.Name}}</li>
  <li>Email: {{.Email}}</li>
  {{if .Phone}}<li>Phone: {{.Phone}}</li>{{end}}
  <li>Requested amount: {{.LoanAmount}}</li>
  {{if .State}}<li>State: {{.State}}</li>{{end}}
  {{if .PropertyType}}<li>Property type: {{.PropertyType}}</li>{{end}}
  {{if .CreditScore}}<li>Credit score: {{.CreditScore}}</li>{{end}}
</ul>
<p>Please reply to the borrower directly.</p>`))

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		From:   from,
		dialer: gomail.NewDialer(host, port, user, password),
	}
}

// NewEmailSenderWithDialer is used when the SMTP transport is provided by the caller.
func NewEmailSenderWithDialer(d Dialer, from string) *EmailSender {
	return &EmailSender{From: from, dialer: d}
}

func (s *EmailSender) SendReferral(to, lenderName string, payload queue.ReferralPayload) error {
	data := ReferralEmailData{
		LenderName:   lenderName,
		ReferralID:   payload.ReferralID,
		Name:         payload.Name,
		Email:        payload.Email,
		Phone:        payload.Phone,
		LoanAmount:   "$" + strconv.FormatFloat(payload.LoanAmount, 'f', 2, 64),
		State:        payload.State,
		PropertyType: payload.PropertyType,
	}
	if payload.CreditScore != nil {
		data.CreditScore = strconv.Itoa(*payload.CreditScore)
	}

	var body bytes.Buffer
	if err := referralTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render referral email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	if payload.Email != "" {
		m.SetHeader("Reply-To", payload.Email)
	}
	m.SetHeader("Subject", fmt.Sprintf("New borrower referral: %s", payload.Name))
	m.SetBody("text/html", body.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send referral email: %w", err)
	}

	return nil
}
