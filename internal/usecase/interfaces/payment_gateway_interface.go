package interfaces

import (
	"context"
	"encoding/json"
)

// IPaymentGateway abstracts external payment providers (e.g. Mercado Pago).
//
// The payment use case sends the enriched request payload and keeps the
// provider response for traceability in the order's payment history. Calls
// sharing an idempotencyKey create at most one provider payment.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, idempotencyKey string, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}
