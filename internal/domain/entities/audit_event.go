package entities

import "time"

// Audit transitions that are not state machine events.
const (
	TransitionCreate        = "create"
	TransitionUpdate        = "update"
	TransitionDelete        = "delete"
	TransitionDeliver       = "deliver"
	TransitionRecordPayment = "record_payment"
	TransitionCreditPayment = "credit_payment"
	TransitionStockReserve  = "stock.reserve"
	TransitionStockRelease  = "stock.release"
	TransitionStockLow      = "stock.low"
)

// AuditEvent is a structured record of one state transition or stock
// mutation. Delivery is best effort.
type AuditEvent struct {
	ID         string            `json:"id"`
	Actor      string            `json:"actor"`
	ActorRole  Role              `json:"actor_role"`
	Entity     string            `json:"entity"`
	EntityID   string            `json:"entity_id"`
	Transition string            `json:"transition"`
	From       string            `json:"from,omitempty"`
	To         string            `json:"to,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}
