package request

import (
	"servicedesk/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// ServiceOrderRequest creates or edits an order. Priority defaults to medium.
type ServiceOrderRequest struct {
	DeviceRef        string `json:"device_ref" binding:"required"`
	ServiceType      string `json:"service_type" binding:"required"`
	Priority         string `json:"priority"`
	InitialDiagnosis string `json:"initial_diagnosis"`
	Notes            string `json:"notes"`
}

func (r ServiceOrderRequest) ToDetails() entities.OrderDetails {
	return entities.OrderDetails{
		DeviceRef:        r.DeviceRef,
		ServiceType:      entities.ServiceType(r.ServiceType),
		Priority:         entities.Priority(r.Priority),
		InitialDiagnosis: r.InitialDiagnosis,
		Notes:            r.Notes,
	}
}

type FinalizeOrderRequest struct {
	WorkPerformed string `json:"work_performed"`
}

// RecordPaymentRequest sets the cumulative amount paid on an order.
type RecordPaymentRequest struct {
	AmountPaid *decimal.Decimal `json:"amount_paid"`
}
