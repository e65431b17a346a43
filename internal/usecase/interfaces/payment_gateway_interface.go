package interfaces

import (
	"context"
	"encoding/json"
)

// IPaymentGateway abstracts the payment provider used at checkout.
//
// The gateway receives a provider-shaped JSON payload and returns the
// provider's payment ID, status and raw response body for audit.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}
