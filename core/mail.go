package core

import "net/mail"

type (
	// EmailMessage is a renderable email. Delivery here is simulated for the
	// most part: the console service prints it and tests record it; the
	// sendgrid service exists for deployments that want real delivery.
	EmailMessage struct {
		To      []mail.Address
		Subject string
		BodyStr string
	}

	// EmailService is any service that can send emails.
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return m.BodyStr != "" }
