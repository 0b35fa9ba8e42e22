package notification

import (
	"bytes"
	"fmt"
	"html/template"

	"gem-auction.backend/internal/domain/ports"
)

var paymentConfirmationTmpl = template.Must(template.New("payment_confirmation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Payment confirmed</h2>
  <p>Hello {{.Name}},</p>
  <p>Your payment of <strong>{{.Currency}} {{printf "%.2f" .Amount}}</strong> for auction
  <code>{{.Reference}}</code> has been confirmed.</p>
  <p>Thank you for bidding with us.</p>
</body>
</html>`))

var auctionWonTmpl = template.Must(template.New("auction_won").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>You won {{.GemName}}</h2>
  <p>Hello {{.Name}},</p>
  <p>Your bid of <strong>{{printf "%.2f" .Amount}}</strong> won the auction. Please complete
  payment to receive your gemstone.</p>
</body>
</html>`))

// PaymentConfirmation is the data of the payment confirmation email
type PaymentConfirmation struct {
	To        string
	Name      string
	Amount    float64
	Currency  string
	Reference string
}

// AuctionWon is the data of the winner notification email
type AuctionWon struct {
	To      string
	Name    string
	GemName string
	Amount  float64
}

// RenderPaymentConfirmation builds the confirmation email
func RenderPaymentConfirmation(data PaymentConfirmation) (ports.EmailMessage, error) {
	if data.Currency == "" {
		data.Currency = "LKR"
	}
	html, err := render(paymentConfirmationTmpl, data)
	if err != nil {
		return ports.EmailMessage{}, err
	}
	return ports.EmailMessage{To: data.To, Subject: "Payment confirmed", HTML: html}, nil
}

// RenderAuctionWon builds the winner email
func RenderAuctionWon(data AuctionWon) (ports.EmailMessage, error) {
	html, err := render(auctionWonTmpl, data)
	if err != nil {
		return ports.EmailMessage{}, err
	}
	return ports.EmailMessage{
		To:      data.To,
		Subject: fmt.Sprintf("You won the auction for %s", data.GemName),
		HTML:    html,
	}, nil
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// OTPMessage is the SMS text carrying a one-time code
func OTPMessage(otp, transactionID string, validMinutes int) string {
	return fmt.Sprintf("Your payment OTP is %s for %s. It expires in %d minutes. Do not share this code.",
		otp, transactionID, validMinutes)
}
