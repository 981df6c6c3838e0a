package utils

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"edumart/config"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

var snapClient snap.Client

// InitPaymentGateway configures the Snap client. Call at bootstrap.
func InitPaymentGateway() {
	env := midtrans.Sandbox
	if config.AppConfig.MidtransEnv == "production" {
		env = midtrans.Production
	}
	snapClient.New(config.AppConfig.MidtransServerKey, env)
}

// PaymentSession is what checkout stores back on the payment row
type PaymentSession struct {
	Token       string
	RedirectURL string
}

// CreatePaymentSession creates a Snap checkout session for an order.
// Package-level variable so tests can stub the gateway round-trip.
var CreatePaymentSession = func(orderID string, amount float64, customerName, customerEmail string) (*PaymentSession, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: int64(amount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: customerName,
			Email: customerEmail,
		},
	}

	resp, err := snapClient.CreateTransaction(req)
	if err != nil {
		return nil, fmt.Errorf("create snap transaction: %v", err.GetMessage())
	}

	return &PaymentSession{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

// VerifyWebhookSignature checks the Midtrans notification signature:
// sha512(order_id + status_code + gross_amount + serverKey)
func VerifyWebhookSignature(orderID, statusCode, grossAmount, signatureKey string) bool {
	payload := orderID + statusCode + grossAmount + config.AppConfig.MidtransServerKey
	sum := sha512.Sum512([]byte(payload))
	return hex.EncodeToString(sum[:]) == signatureKey
}
