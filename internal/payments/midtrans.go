package payments

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

// MidtransProcessor creates Snap transactions and double-checks
// notifications against the Core API before trusting them.
type MidtransProcessor struct {
	serverKey string
	snap      snap.Client
	core      coreapi.Client
}

func NewMidtransProcessor(serverKey string, production bool) *MidtransProcessor {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	p := &MidtransProcessor{serverKey: serverKey}
	p.snap.New(serverKey, env)
	p.core.New(serverKey, env)
	return p
}

func (p *MidtransProcessor) CreateIntent(_ context.Context, req IntentRequest) (*Intent, error) {
	if req.OrderID == "" {
		return nil, errors.New("order id is required")
	}
	gross := req.Amount.Round(0).IntPart()
	if gross <= 0 {
		return nil, fmt.Errorf("invalid amount %s", req.Amount.String())
	}

	name := req.Description
	if name == "" {
		name = "Training session"
	}
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.CustomerName,
			Email: req.CustomerEmail,
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    req.OrderID,
				Price: gross,
				Qty:   1,
				Name:  truncate(name, 50),
			},
		},
	}

	resp, merr := p.snap.CreateTransaction(snapReq)
	if merr != nil {
		return nil, fmt.Errorf("midtrans create transaction: %s", merr.Error())
	}
	return &Intent{OrderID: req.OrderID, ClientSecret: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

func (p *MidtransProcessor) VerifyNotification(_ context.Context, n Notification) (*TransactionStatus, error) {
	expected := Signature(n.OrderID, n.StatusCode, n.GrossAmount, p.serverKey)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(n.SignatureKey)) != 1 {
		return nil, ErrInvalidSignature
	}

	status, merr := p.core.CheckTransaction(n.OrderID)
	if merr != nil {
		return nil, fmt.Errorf("midtrans check transaction: %s", merr.Error())
	}
	return &TransactionStatus{
		OrderID: status.OrderID,
		Status:  status.TransactionStatus,
		Settled: IsSettled(status.TransactionStatus, status.FraudStatus),
	}, nil
}

// Signature computes the notification signature Midtrans sends:
// SHA512(order_id + status_code + gross_amount + server_key), hex encoded.
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
