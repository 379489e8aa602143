package usecase

import (
	"strconv"

	"servicedesk/internal/domain/entities"
)

func orderEvent(o entities.ServiceOrder, transition string, from entities.OrderState) entities.AuditEvent {
	return entities.AuditEvent{
		Entity:     entities.EntityServiceOrder,
		EntityID:   o.ID,
		Transition: transition,
		From:       string(from),
		To:         string(o.State),
	}
}

func quotationEvent(q entities.Quotation, transition string, from entities.QuotationState) entities.AuditEvent {
	return entities.AuditEvent{
		Entity:     entities.EntityQuotation,
		EntityID:   q.ID,
		Transition: transition,
		From:       string(from),
		To:         string(q.State),
		Metadata: map[string]string{
			"service_order_id": q.ServiceOrderID,
			"total":            q.Total.StringFixed(2),
			"revision":         strconv.Itoa(q.Revision),
		},
	}
}

func stockEvent(item entities.InventoryItem, transition string, before, after int) entities.AuditEvent {
	return entities.AuditEvent{
		Entity:     entities.EntityInventoryItem,
		EntityID:   item.ID,
		Transition: transition,
		From:       strconv.Itoa(before),
		To:         strconv.Itoa(after),
		Metadata: map[string]string{
			"name":              item.Name,
			"reorder_threshold": strconv.Itoa(item.ReorderThreshold),
		},
	}
}

func paymentEvent(o entities.ServiceOrder, p entities.BillingPayment, transition string, from entities.PaymentState) entities.AuditEvent {
	return entities.AuditEvent{
		Entity:     entities.EntityServiceOrder,
		EntityID:   o.ID,
		Transition: transition,
		From:       string(from),
		To:         string(o.PaymentState),
		Metadata: map[string]string{
			"payment_id":  p.ID,
			"provider":    string(p.Provider),
			"amount":      p.Amount.StringFixed(2),
			"amount_paid": o.AmountPaid.StringFixed(2),
		},
	}
}
