package ports

import "context"

// EmailMessage is a rendered email
type EmailMessage struct {
	To      string
	Subject string
	HTML    string
}

// EmailSender delivers email. Callers treat failures as non-fatal.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// SMSSender delivers a text message. Callers treat failures as non-fatal.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}
