package payments

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidSignature = errors.New("invalid notification signature")

// IntentRequest describes a charge for one booking. OrderID is the booking
// id, so the processor's notification can be matched back to it.
type IntentRequest struct {
	OrderID       string
	Amount        decimal.Decimal
	CustomerName  string
	CustomerEmail string
	Description   string
}

// Intent is what the client needs to complete the payment.
type Intent struct {
	OrderID      string `json:"order_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURL  string `json:"redirect_url"`
}

// Notification is the asynchronous status callback sent by the processor.
type Notification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
}

// TransactionStatus is the processor's authoritative view of a transaction.
type TransactionStatus struct {
	OrderID string
	Status  string
	Settled bool
}

type Processor interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
	VerifyNotification(ctx context.Context, n Notification) (*TransactionStatus, error)
}

// IsSettled reports whether a transaction status means the money arrived.
// Card captures count only when the fraud check accepted them.
func IsSettled(status, fraudStatus string) bool {
	switch status {
	case "settlement":
		return true
	case "capture":
		return fraudStatus == "" || fraudStatus == "accept"
	}
	return false
}
