package response

import (
	"time"

	"servicedesk/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type ServiceOrderResponse struct {
	ID                   string          `json:"id"`
	DeviceRef            string          `json:"device_ref"`
	ServiceType          string          `json:"service_type"`
	State                string          `json:"state"`
	AssignedTechnicianID string          `json:"assigned_technician_id,omitempty"`
	Priority             string          `json:"priority"`
	InitialDiagnosis     string          `json:"initial_diagnosis,omitempty"`
	Notes                string          `json:"notes,omitempty"`
	WorkPerformed        string          `json:"work_performed,omitempty"`
	CreatedBy            string          `json:"created_by"`
	CreatedAt            time.Time       `json:"created_at"`
	AssignedAt           *time.Time      `json:"assigned_at,omitempty"`
	StartedAt            *time.Time      `json:"started_at,omitempty"`
	FinishedAt           *time.Time      `json:"finished_at,omitempty"`
	DeliveredAt          *time.Time      `json:"delivered_at,omitempty"`
	AmountPaid           decimal.Decimal `json:"amount_paid"`
	PaymentState         string          `json:"payment_state"`
	LiveQuotationID      string          `json:"live_quotation_id,omitempty"`
	Active               bool            `json:"active"`
	Version              int64           `json:"version"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

func FromServiceOrder(o entities.ServiceOrder) ServiceOrderResponse {
	return ServiceOrderResponse{
		ID:                   o.ID,
		DeviceRef:            o.DeviceRef,
		ServiceType:          string(o.ServiceType),
		State:                string(o.State),
		AssignedTechnicianID: o.AssignedTechnicianID,
		Priority:             string(o.Priority),
		InitialDiagnosis:     o.InitialDiagnosis,
		Notes:                o.Notes,
		WorkPerformed:        o.WorkPerformed,
		CreatedBy:            o.CreatedBy,
		CreatedAt:            o.CreatedAt,
		AssignedAt:           o.AssignedAt,
		StartedAt:            o.StartedAt,
		FinishedAt:           o.FinishedAt,
		DeliveredAt:          o.DeliveredAt,
		AmountPaid:           o.AmountPaid,
		PaymentState:         string(o.PaymentState),
		LiveQuotationID:      o.LiveQuotationID,
		Active:               o.Active,
		Version:              o.Version,
		UpdatedAt:            o.UpdatedAt,
	}
}

func FromServiceOrders(os []entities.ServiceOrder) []ServiceOrderResponse {
	out := make([]ServiceOrderResponse, 0, len(os))
	for _, o := range os {
		out = append(out, FromServiceOrder(o))
	}
	return out
}
