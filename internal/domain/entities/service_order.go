package entities

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const EntityServiceOrder = "service_order"

type ServiceType string

const (
	ServiceTypeRepair       ServiceType = "repair"
	ServiceTypeMaintenance  ServiceType = "maintenance"
	ServiceTypeInstallation ServiceType = "installation"
)

func (t ServiceType) Valid() bool {
	switch t {
	case ServiceTypeRepair, ServiceTypeMaintenance, ServiceTypeInstallation:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// OrderState is the lifecycle state of a service order.
//
//	pending -> assigned -> quoted -> approved -> in_progress -> finished
//
// Rejecting a quoted order or cancelling an approved one returns it to
// assigned. Soft deletion (Active=false) is orthogonal to the state.
type OrderState string

const (
	OrderPending    OrderState = "pending"
	OrderAssigned   OrderState = "assigned"
	OrderQuoted     OrderState = "quoted"
	OrderApproved   OrderState = "approved"
	OrderInProgress OrderState = "in_progress"
	OrderFinished   OrderState = "finished"
)

func (s OrderState) Valid() bool {
	switch s {
	case OrderPending, OrderAssigned, OrderQuoted, OrderApproved, OrderInProgress, OrderFinished:
		return true
	}
	return false
}

// Open reports whether a technician is still working the order.
func (s OrderState) Open() bool {
	switch s {
	case OrderAssigned, OrderQuoted, OrderApproved, OrderInProgress:
		return true
	}
	return false
}

type OrderEvent string

const (
	OrderEventClaim            OrderEvent = "claim"
	OrderEventSubmitQuotation  OrderEvent = "submit_quotation"
	OrderEventApproveQuotation OrderEvent = "approve_quotation"
	OrderEventRejectQuotation  OrderEvent = "reject_quotation"
	OrderEventCancelQuotation  OrderEvent = "cancel_quotation"
	OrderEventStartWork        OrderEvent = "start_work"
	OrderEventFinalize         OrderEvent = "finalize"
)

var orderTransitions = map[OrderState]map[OrderEvent]OrderState{
	OrderPending: {
		OrderEventClaim: OrderAssigned,
	},
	OrderAssigned: {
		OrderEventSubmitQuotation: OrderQuoted,
	},
	OrderQuoted: {
		OrderEventApproveQuotation: OrderApproved,
		OrderEventRejectQuotation:  OrderAssigned,
	},
	OrderApproved: {
		OrderEventCancelQuotation: OrderAssigned,
		OrderEventStartWork:       OrderInProgress,
		OrderEventFinalize:        OrderFinished,
	},
	OrderInProgress: {
		OrderEventFinalize: OrderFinished,
	},
}

// Next returns the state reached from s on event e.
func (s OrderState) Next(e OrderEvent) (OrderState, error) {
	if to, ok := orderTransitions[s][e]; ok {
		return to, nil
	}
	return s, &TransitionError{Entity: EntityServiceOrder, State: string(s), Event: string(e)}
}

type PaymentState string

const (
	PaymentUnpaid  PaymentState = "unpaid"
	PaymentPartial PaymentState = "partial"
	PaymentPaid    PaymentState = "paid"
)

// DerivePaymentState computes the payment state of an order. approvedTotal
// is nil when the order has no approved quotation. Overpayment is reported
// as paid and never clamped.
func DerivePaymentState(amountPaid decimal.Decimal, approvedTotal *decimal.Decimal) PaymentState {
	switch {
	case approvedTotal == nil:
		return PaymentUnpaid
	case amountPaid.IsZero():
		return PaymentUnpaid
	case amountPaid.LessThan(*approvedTotal):
		return PaymentPartial
	default:
		return PaymentPaid
	}
}

const (
	MinWorkPerformedLength = 10
	MaxNotesLength         = 1000
)

type ServiceOrder struct {
	ID                   string
	DeviceRef            string
	ServiceType          ServiceType
	State                OrderState
	AssignedTechnicianID string
	Priority             Priority
	InitialDiagnosis     string
	Notes                string
	WorkPerformed        string
	CreatedBy            string
	CreatedAt            time.Time
	AssignedAt           *time.Time
	StartedAt            *time.Time
	FinishedAt           *time.Time
	DeliveredAt          *time.Time
	AmountPaid           decimal.Decimal
	PaymentState         PaymentState
	// LiveQuotationID references the quotation currently driving the quoted
	// or approved state. Empty otherwise.
	LiveQuotationID string
	Active          bool
	Version         int64
	UpdatedAt       time.Time
}

// OrderDetails are the reception-editable fields of an order.
type OrderDetails struct {
	DeviceRef        string
	ServiceType      ServiceType
	Priority         Priority
	InitialDiagnosis string
	Notes            string
}

func (d *OrderDetails) Normalize() error {
	d.DeviceRef = strings.TrimSpace(d.DeviceRef)
	d.InitialDiagnosis = strings.TrimSpace(d.InitialDiagnosis)
	d.Notes = strings.TrimSpace(d.Notes)
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}

	if d.DeviceRef == "" {
		return NewValidationError("device_ref", "is required")
	}
	if !d.ServiceType.Valid() {
		return NewValidationError("service_type", "must be repair, maintenance or installation")
	}
	if !d.Priority.Valid() {
		return NewValidationError("priority", "must be low, medium, high or urgent")
	}
	if utf8.RuneCountInString(d.InitialDiagnosis) > MaxNotesLength {
		return NewValidationError("initial_diagnosis", "must not exceed 1000 characters")
	}
	if utf8.RuneCountInString(d.Notes) > MaxNotesLength {
		return NewValidationError("notes", "must not exceed 1000 characters")
	}
	return nil
}

// NewServiceOrder builds an order in state pending, unassigned and unpaid.
func NewServiceOrder(id string, d OrderDetails, createdBy string, now time.Time) (ServiceOrder, error) {
	if err := d.Normalize(); err != nil {
		return ServiceOrder{}, err
	}
	return ServiceOrder{
		ID:               id,
		DeviceRef:        d.DeviceRef,
		ServiceType:      d.ServiceType,
		State:            OrderPending,
		Priority:         d.Priority,
		InitialDiagnosis: d.InitialDiagnosis,
		Notes:            d.Notes,
		CreatedBy:        createdBy,
		CreatedAt:        now,
		AmountPaid:       decimal.Zero,
		PaymentState:     PaymentUnpaid,
		Active:           true,
		UpdatedAt:        now,
	}, nil
}

func (o ServiceOrder) IsAssignedTo(technicianID string) bool {
	return technicianID != "" && o.AssignedTechnicianID == technicianID
}

// Exists reports whether o was loaded from storage. Repositories return the
// zero value for missing records.
func (o ServiceOrder) Exists() bool {
	return o.ID != ""
}

func (o *ServiceOrder) apply(e OrderEvent, at time.Time) error {
	if !o.Active {
		return &TransitionError{Entity: EntityServiceOrder, State: "inactive", Event: string(e)}
	}
	next, err := o.State.Next(e)
	if err != nil {
		return err
	}
	o.State = next
	o.UpdatedAt = at
	return nil
}

func (o *ServiceOrder) requireActive(op string) error {
	if !o.Active {
		return &TransitionError{Entity: EntityServiceOrder, State: "inactive", Event: op}
	}
	return nil
}

// Claim assigns the order to technicianID. It only succeeds on an unassigned
// pending order.
func (o *ServiceOrder) Claim(technicianID string, at time.Time) error {
	if err := o.requireActive(string(OrderEventClaim)); err != nil {
		return err
	}
	if o.AssignedTechnicianID != "" {
		return ErrAlreadyAssigned
	}
	if o.State != OrderPending {
		return ErrNotAvailable
	}
	if err := o.apply(OrderEventClaim, at); err != nil {
		return err
	}
	o.AssignedTechnicianID = technicianID
	o.AssignedAt = timePtr(at)
	return nil
}

// SubmitQuotation moves an assigned order to quoted and makes quotationID
// its live quotation.
func (o *ServiceOrder) SubmitQuotation(quotationID string, at time.Time) error {
	if o.LiveQuotationID != "" && o.LiveQuotationID != quotationID {
		return &TransitionError{Entity: EntityServiceOrder, State: string(o.State), Event: string(OrderEventSubmitQuotation)}
	}
	if err := o.apply(OrderEventSubmitQuotation, at); err != nil {
		return err
	}
	o.LiveQuotationID = quotationID
	return nil
}

// ApproveQuotation starts the approved phase. approvedTotal is the total of
// the quotation being approved.
func (o *ServiceOrder) ApproveQuotation(approvedTotal decimal.Decimal, at time.Time) error {
	if err := o.apply(OrderEventApproveQuotation, at); err != nil {
		return err
	}
	o.StartedAt = timePtr(at)
	o.RecomputePaymentState(&approvedTotal)
	return nil
}

func (o *ServiceOrder) RejectQuotation(at time.Time) error {
	if err := o.apply(OrderEventRejectQuotation, at); err != nil {
		return err
	}
	o.LiveQuotationID = ""
	return nil
}

func (o *ServiceOrder) CancelQuotation(at time.Time) error {
	if err := o.apply(OrderEventCancelQuotation, at); err != nil {
		return err
	}
	o.LiveQuotationID = ""
	o.RecomputePaymentState(nil)
	return nil
}

func (o *ServiceOrder) StartWork(at time.Time) error {
	return o.apply(OrderEventStartWork, at)
}

// Finalize closes the order. The work description is validated before the
// state so that a too-short description is reported as a validation error.
func (o *ServiceOrder) Finalize(workPerformed string, at time.Time) error {
	work := strings.TrimSpace(workPerformed)
	if utf8.RuneCountInString(work) < MinWorkPerformedLength {
		return NewValidationError("work_performed", "must describe the work performed (at least 10 characters)")
	}
	if err := o.apply(OrderEventFinalize, at); err != nil {
		return err
	}
	o.WorkPerformed = work
	o.FinishedAt = timePtr(at)
	return nil
}

// RecordPayment replaces the amount paid and re-derives the payment state.
func (o *ServiceOrder) RecordPayment(amount decimal.Decimal, approvedTotal *decimal.Decimal, at time.Time) error {
	if err := o.requireActive("record_payment"); err != nil {
		return err
	}
	if amount.IsNegative() {
		return NewValidationError("amount", "must not be negative")
	}
	o.AmountPaid = amount
	o.RecomputePaymentState(approvedTotal)
	o.UpdatedAt = at
	return nil
}

func (o *ServiceOrder) RecomputePaymentState(approvedTotal *decimal.Decimal) {
	o.PaymentState = DerivePaymentState(o.AmountPaid, approvedTotal)
}

// Deliver records the hand-over of a finished order to the customer.
func (o *ServiceOrder) Deliver(at time.Time) error {
	if err := o.requireActive("deliver"); err != nil {
		return err
	}
	if o.State != OrderFinished || o.DeliveredAt != nil {
		return &TransitionError{Entity: EntityServiceOrder, State: string(o.State), Event: "deliver"}
	}
	o.DeliveredAt = timePtr(at)
	o.UpdatedAt = at
	return nil
}

// Deactivate soft-deletes the order. Orders whose live quotation still holds
// reversible stock (quoted or approved) must be rejected or cancelled first.
func (o *ServiceOrder) Deactivate(at time.Time) error {
	if err := o.requireActive("delete"); err != nil {
		return err
	}
	if o.State == OrderQuoted || o.State == OrderApproved {
		return &TransitionError{Entity: EntityServiceOrder, State: string(o.State), Event: "delete"}
	}
	o.Active = false
	o.UpdatedAt = at
	return nil
}

func (o *ServiceOrder) Edit(d OrderDetails, at time.Time) error {
	if err := o.requireActive("edit"); err != nil {
		return err
	}
	if err := d.Normalize(); err != nil {
		return err
	}
	o.DeviceRef = d.DeviceRef
	o.ServiceType = d.ServiceType
	o.Priority = d.Priority
	o.InitialDiagnosis = d.InitialDiagnosis
	o.Notes = d.Notes
	o.UpdatedAt = at
	return nil
}

// OrderFilter narrows order listings. Zero values match everything except
// inactive orders.
type OrderFilter struct {
	State           OrderState
	TechnicianID    string
	DeviceRef       string
	IncludeInactive bool
}

func (f OrderFilter) Matches(o ServiceOrder) bool {
	if !f.IncludeInactive && !o.Active {
		return false
	}
	if f.State != "" && o.State != f.State {
		return false
	}
	if f.TechnicianID != "" && o.AssignedTechnicianID != f.TechnicianID {
		return false
	}
	if f.DeviceRef != "" && o.DeviceRef != f.DeviceRef {
		return false
	}
	return true
}

func timePtr(t time.Time) *time.Time {
	return &t
}
