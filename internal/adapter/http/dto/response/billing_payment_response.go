package response

import (
	"time"

	"servicedesk/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type BillingPaymentResponse struct {
	PaymentID         string          `json:"payment_id"`
	ID                string          `json:"id"`
	ServiceOrderID    string          `json:"service_order_id"`
	QuotationID       string          `json:"quotation_id,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	AmountPaidAfter   decimal.Decimal `json:"amount_paid_after"`
	PaymentDate       time.Time       `json:"payment_date"`
	Date              time.Time       `json:"date"`
	Status            string          `json:"status"`
	Provider          string          `json:"provider"`
	ProviderPaymentID string          `json:"provider_payment_id,omitempty"`
	RecordedBy        string          `json:"recorded_by,omitempty"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

func FromBillingPayment(p entities.BillingPayment) BillingPaymentResponse {
	return BillingPaymentResponse{
		PaymentID:         p.ID,
		ID:                p.ID,
		ServiceOrderID:    p.ServiceOrderID,
		QuotationID:       p.QuotationID,
		Amount:            p.Amount,
		AmountPaidAfter:   p.AmountPaidAfter,
		PaymentDate:       p.Date,
		Date:              p.Date,
		Status:            string(p.Status),
		Provider:          string(p.Provider),
		ProviderPaymentID: p.ProviderPaymentID,
		RecordedBy:        p.RecordedBy,
		MPPayloadRaw:      string(p.ProviderPayloadRaw),
		MPPayload:         p.ProviderPayload,
	}
}

func FromBillingPayments(ps []entities.BillingPayment) []BillingPaymentResponse {
	out := make([]BillingPaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromBillingPayment(p))
	}
	return out
}
