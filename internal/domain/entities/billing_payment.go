package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const EntityPayment = "payment"

// PaymentStatus represents the payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDenied   PaymentStatus = "denied"
)

type PaymentProvider string

const (
	PaymentProviderManual      PaymentProvider = "manual"
	PaymentProviderMercadoPago PaymentProvider = "mercadopago"
)

// BillingPayment is one entry of an order's payment history.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (service_order_id-index): service_order_id
//
// Provider payload:
//   - ProviderPayloadRaw keeps the original body (JSON) for traceability.
//   - ProviderPayload is an optional parsed representation.
type BillingPayment struct {
	ID             string          `json:"id"`
	ServiceOrderID string          `json:"service_order_id"`
	QuotationID    string          `json:"quotation_id,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	// AmountPaidAfter is the order's amountPaid once this entry was applied.
	AmountPaidAfter   decimal.Decimal `json:"amount_paid_after"`
	Date              time.Time       `json:"date"`
	Status            PaymentStatus   `json:"status"`
	Provider          PaymentProvider `json:"provider"`
	ProviderPaymentID string          `json:"provider_payment_id,omitempty"`
	RecordedBy        string          `json:"recorded_by,omitempty"`

	ProviderPayloadRaw json.RawMessage        `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}
