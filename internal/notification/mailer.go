// Package notification delivers transactional email over SMTP.
package notification

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/eventhub/eventhub-api/internal/config"
	"github.com/eventhub/eventhub-api/internal/domain"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(conf *config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(conf.Host, conf.Port, conf.Username, conf.Password),
		from:   conf.From,
	}
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, "Campus Event Portal")
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("dialer.DialAndSend -> %w", err)
	}

	return nil
}

func (m *Mailer) SendRegistrationConfirmation(registration domain.Registration, event domain.Event) error {
	body := fmt.Sprintf(`<div style="font-family: Arial; padding: 20px;">
  <h2>Registration Successful</h2>
  <p>Hello <b>%s</b>,</p>
  <p>Thank you for registering for <b>%s</b>!</p>
  <table>
    <tr><td><b>Date:</b></td><td>%s</td></tr>
    <tr><td><b>Time:</b></td><td>%s</td></tr>
    <tr><td><b>Venue:</b></td><td>%s</td></tr>
  </table>
  <p>You will receive another email once your registration is approved by the admin.</p>
</div>`,
		registration.StudentName, event.Title, event.Date, event.Time, event.Venue)

	return m.send(registration.StudentEmail, "Event Registration Successful!", body)
}

func (m *Mailer) SendRegistrationDecision(registration domain.Registration) error {
	var subject, body string

	if registration.Status == domain.RegistrationStatusApproved {
		subject = fmt.Sprintf("Your registration for %s has been approved!", registration.Event.Title)
		body = fmt.Sprintf(`<div style="font-family: Arial; padding: 20px;">
  <h2>Registration Approved</h2>
  <p>Hello %s, your registration for <b>%s</b> has been approved!</p>
</div>`,
			registration.StudentName, registration.Event.Title)
	} else {
		subject = fmt.Sprintf("Your registration for %s was not approved", registration.Event.Title)
		body = fmt.Sprintf(`<div style="font-family: Arial; padding: 20px;">
  <h2>Registration Rejected</h2>
  <p>Hello %s, your registration for <b>%s</b> was not approved.</p>
</div>`,
			registration.StudentName, registration.Event.Title)
	}

	return m.send(registration.StudentEmail, subject, body)
}

func (m *Mailer) SendPasswordResetOTP(email, code string) error {
	body := fmt.Sprintf(`<h2>Password Reset</h2><p>Your OTP is: <b>%s</b>. Expires in 10 minutes.</p>`, code)

	return m.send(email, "Password Reset OTP", body)
}
