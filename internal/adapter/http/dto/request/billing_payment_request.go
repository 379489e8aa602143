package request

import "encoding/json"

// BillingPaymentCreateRequest is the payload for the charge-outstanding route.
//
// `mp_payload` is forwarded as-is (raw JSON) to support varying Mercado Pago
// schemas. transaction_amount is always overwritten with the outstanding
// balance.
type BillingPaymentCreateRequest struct {
	MPPayload json.RawMessage `json:"mp_payload"`
}
