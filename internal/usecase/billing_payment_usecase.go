package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase/interfaces"
	"servicedesk/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrBillingPaymentNotFound         = errors.New("billing payment not found")
	ErrInvalidPaymentOrderID          = errors.New("invalid service_order_id")
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrOrderNotApproved               = errors.New("service order has no approved quotation")
	ErrNothingOutstanding             = errors.New("service order has no outstanding balance")
	ErrStaleCredit                    = errors.New("payment exceeds the outstanding balance")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// PaymentOptions configures the provider flow.
type PaymentOptions struct {
	// Mock skips the external gateway and approves every charge.
	Mock bool
	// AccessToken is only inspected for the TEST- sandbox prefix.
	AccessToken     string
	TestPayerEmail  string
	TestPayerUserID string
}

func (o PaymentOptions) sandbox() bool {
	return strings.HasPrefix(strings.TrimSpace(o.AccessToken), "TEST-")
}

// IBillingPaymentUseCase charges the outstanding balance of an order through
// the payment provider and exposes the payment history.
//
// Approved charges are credited to the order through the workflow, so the
// order's amountPaid and the history entry commit together.
type IBillingPaymentUseCase interface {
	ChargeOutstanding(ctx context.Context, actor entities.Actor, serviceOrderID string, mpPayload json.RawMessage) (entities.BillingPayment, error)
	GetByID(ctx context.Context, id string) (entities.BillingPayment, error)
	ListByServiceOrderID(ctx context.Context, serviceOrderID string) ([]entities.BillingPayment, error)
}

// PaymentCreditor credits an approved provider payment to an order.
type PaymentCreditor interface {
	CreditPayment(ctx context.Context, actor entities.Actor, orderID string, p entities.BillingPayment) (entities.ServiceOrder, error)
}

type BillingPaymentUseCase struct {
	repo       interfaces.IBillingPaymentRepository
	orders     interfaces.IServiceOrderRepository
	quotations interfaces.IQuotationRepository
	gateway    interfaces.IPaymentGateway
	creditor   PaymentCreditor
	opts       PaymentOptions
	now        func() time.Time
}

var _ IBillingPaymentUseCase = (*BillingPaymentUseCase)(nil)

func NewBillingPaymentUseCase(
	repo interfaces.IBillingPaymentRepository,
	orders interfaces.IServiceOrderRepository,
	quotations interfaces.IQuotationRepository,
	gateway interfaces.IPaymentGateway,
	creditor PaymentCreditor,
	opts PaymentOptions,
) *BillingPaymentUseCase {
	return &BillingPaymentUseCase{
		repo:       repo,
		orders:     orders,
		quotations: quotations,
		gateway:    gateway,
		creditor:   creditor,
		opts:       opts,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (u *BillingPaymentUseCase) ChargeOutstanding(ctx context.Context, actor entities.Actor, serviceOrderID string, mpPayload json.RawMessage) (entities.BillingPayment, error) {
	logger.Info(ctx).Str("order_id", serviceOrderID).Int("payload_len", len(mpPayload)).Msg("[payment][usecase] charge-outstanding start")
	mockMode := u.opts.Mock
	if err := requireRole(actor, entities.RoleReception, entities.RoleAdmin); err != nil {
		return entities.BillingPayment{}, err
	}
	serviceOrderID = strings.TrimSpace(serviceOrderID)
	if serviceOrderID == "" {
		logger.Warn(ctx).Msg("[payment][usecase] invalid service_order_id (empty)")
		return entities.BillingPayment{}, ErrInvalidPaymentOrderID
	}
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !mockMode {
			logger.Warn(ctx).Str("order_id", serviceOrderID).Msg("[payment][usecase] invalid payload (empty or not json)")
			return entities.BillingPayment{}, ErrInvalidMPPayload
		}
		mpPayload = json.RawMessage("{}")
	}
	if u.gateway == nil && !mockMode {
		return entities.BillingPayment{}, errors.New("payment gateway not configured")
	}
	if u.orders == nil || u.quotations == nil || u.creditor == nil {
		return entities.BillingPayment{}, errors.New("service order workflow not configured")
	}

	order, outstanding, err := u.outstanding(ctx, serviceOrderID)
	if err != nil {
		return entities.BillingPayment{}, err
	}
	logger.Info(ctx).Str("order_id", serviceOrderID).Str("outstanding", outstanding.StringFixed(2)).Msg("[payment][usecase] outstanding balance loaded")

	// Mercado Pago uses external_reference to reconcile events.
	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		return entities.BillingPayment{}, ErrInvalidMPPayload
	}
	if !mockMode {
		if !hasNonEmptyString(reqMap, "payment_method_id") {
			logger.Warn(ctx).Str("order_id", serviceOrderID).Msg("[payment][usecase] missing payment_method_id")
			return entities.BillingPayment{}, ErrInvalidMPPayload
		}
		u.normalizeSandboxPayerFromUserID(reqMap)
		u.ensurePayerDefaults(reqMap)
		if !hasPayer(reqMap) {
			logger.Warn(ctx).Str("order_id", serviceOrderID).Msg("[payment][usecase] missing/invalid payer")
			return entities.BillingPayment{}, ErrInvalidMPPayload
		}
	}
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = serviceOrderID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Service order %s", serviceOrderID)
	}
	// The amount always comes from the approved quotation and the payments
	// already recorded.
	reqMap["transaction_amount"] = outstanding.InexactFloat64()
	mpPayload, err = json.Marshal(reqMap)
	if err != nil {
		return entities.BillingPayment{}, err
	}

	var (
		providerPaymentID string
		providerStatus    string
		providerResp      json.RawMessage
	)
	if mockMode {
		logger.Info(ctx).Str("order_id", serviceOrderID).Msg("[payment][usecase] mock mode enabled; skipping external payment gateway")
		providerPaymentID, providerStatus, providerResp, err = mockProviderResponse(reqMap, u.now())
		if err != nil {
			return entities.BillingPayment{}, err
		}
	} else {
		providerPaymentID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, chargeKey(order), mpPayload)
		if err != nil {
			logger.Error(ctx).Err(err).Str("order_id", serviceOrderID).Msg("[payment][usecase] payment gateway failed")
			return entities.BillingPayment{}, mapGatewayError(err)
		}
	}
	logger.Info(ctx).Str("order_id", serviceOrderID).Str("provider_payment_id", providerPaymentID).
		Str("provider_status", providerStatus).Msg("[payment][usecase] payment gateway success")

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		logger.Warn(ctx).Err(err).Str("order_id", serviceOrderID).Msg("[payment][usecase] provider response unmarshal failed")
	}

	p := entities.BillingPayment{
		ID:                 uuid.NewString(),
		ServiceOrderID:     serviceOrderID,
		QuotationID:        order.LiveQuotationID,
		Amount:             outstanding,
		AmountPaidAfter:    order.AmountPaid,
		Date:               u.now(),
		Status:             paymentStatusFromProvider(providerStatus),
		Provider:           entities.PaymentProviderMercadoPago,
		ProviderPaymentID:  providerPaymentID,
		RecordedBy:         actor.ID,
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}

	if p.Status != entities.PaymentStatusApproved {
		created, err := u.repo.Create(ctx, p)
		if err != nil {
			logger.Error(ctx).Err(err).Str("order_id", serviceOrderID).Str("payment_id", p.ID).Msg("[payment][usecase] payment repository create failed")
			return entities.BillingPayment{}, err
		}
		return created, nil
	}

	credited, err := u.creditor.CreditPayment(ctx, actor, serviceOrderID, p)
	if err != nil {
		logger.Error(ctx).Err(err).Str("order_id", serviceOrderID).Str("provider_payment_id", providerPaymentID).
			Msg("[payment][usecase] approved provider payment could not be credited")
		return entities.BillingPayment{}, err
	}
	p.AmountPaidAfter = credited.AmountPaid
	p.QuotationID = credited.LiveQuotationID
	logger.Info(ctx).Str("order_id", serviceOrderID).Str("payment_id", p.ID).
		Str("payment_state", string(credited.PaymentState)).Msg("[payment][usecase] charge-outstanding success")
	return p, nil
}

// chargeKey is the provider idempotency key of a charge. Charges against the
// same order version share it.
func chargeKey(o entities.ServiceOrder) string {
	return o.ID + ":" + strconv.FormatInt(o.Version, 10)
}

func (u *BillingPaymentUseCase) outstanding(ctx context.Context, orderID string) (entities.ServiceOrder, decimal.Decimal, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return entities.ServiceOrder{}, decimal.Zero, err
	}
	if !order.Exists() {
		return entities.ServiceOrder{}, decimal.Zero, &entities.NotFoundError{Entity: entities.EntityServiceOrder, ID: orderID}
	}
	if order.LiveQuotationID == "" {
		return entities.ServiceOrder{}, decimal.Zero, ErrOrderNotApproved
	}
	q, err := u.quotations.GetByID(ctx, order.LiveQuotationID)
	if err != nil {
		return entities.ServiceOrder{}, decimal.Zero, err
	}
	if q.State != entities.QuotationApproved {
		return entities.ServiceOrder{}, decimal.Zero, ErrOrderNotApproved
	}
	outstanding := q.Total.Sub(order.AmountPaid)
	if !outstanding.IsPositive() {
		return entities.ServiceOrder{}, decimal.Zero, ErrNothingOutstanding
	}
	return order, outstanding, nil
}

func mockProviderResponse(req map[string]any, now time.Time) (string, string, json.RawMessage, error) {
	id := strconv.FormatInt(now.UnixNano(), 10)
	ts := now.Format(time.RFC3339Nano)
	resp := make(map[string]any, len(req)+5)
	for k, v := range req {
		resp[k] = v
	}
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	resp["date_created"] = ts
	resp["date_approved"] = ts
	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	return id, "approved", b, nil
}

func paymentStatusFromProvider(status string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved", "authorized":
		return entities.PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusDenied
	default:
		return entities.PaymentStatusPending
	}
}

func mapGatewayError(err error) error {
	switch {
	case isGatewayCustomerNotFound(err):
		return ErrPaymentGatewayCustomerNotFound
	case isGatewayInvalidUsers(err):
		return ErrPaymentGatewayInvalidUsers
	case isGatewayUnauthorized(err):
		return ErrPaymentGatewayUnauthorized
	case isGatewayBadRequest(err):
		return ErrPaymentGatewayBadRequest
	}
	return err
}

func hasNonEmptyString(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	v, ok := m["payer"]
	if !ok {
		return false
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func (u *BillingPaymentUseCase) ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}

	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}

	// In sandbox, either payer.id or payer.email may be used.
	// Fill email only when both are missing.
	if !hasPayerID(payer) && !hasNonEmptyString(payer, "email") {
		if email := strings.TrimSpace(u.opts.TestPayerEmail); email != "" {
			payer["email"] = email
		} else if u.opts.sandbox() {
			payer["email"] = "test_user_br@testuser.com"
		}
	}
}

func (u *BillingPaymentUseCase) normalizeSandboxPayerFromUserID(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		return
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}
	if !hasPayerID(payer) || hasNonEmptyString(payer, "email") || !u.opts.sandbox() {
		return
	}

	configuredUserID := strings.TrimSpace(u.opts.TestPayerUserID)
	configuredEmail := strings.TrimSpace(u.opts.TestPayerEmail)
	if configuredUserID == "" || configuredEmail == "" {
		return
	}
	rawID := strings.TrimSpace(fmt.Sprintf("%v", payer["id"]))
	if rawID != configuredUserID {
		return
	}

	payer["email"] = configuredEmail
	delete(payer, "id")
	logger.Debug(context.Background()).Msg("[payment][usecase] mapped sandbox payer user_id to payer.email")
}

func isGatewayBadRequest(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}

func isGatewayInvalidUsers(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034")
}

func isGatewayCustomerNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002")
}

func (u *BillingPaymentUseCase) GetByID(ctx context.Context, id string) (entities.BillingPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.BillingPayment{}, errors.New("invalid payment id")
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.BillingPayment{}, err
	}
	if p.ID == "" {
		return entities.BillingPayment{}, ErrBillingPaymentNotFound
	}
	return p, nil
}

func (u *BillingPaymentUseCase) ListByServiceOrderID(ctx context.Context, serviceOrderID string) ([]entities.BillingPayment, error) {
	serviceOrderID = strings.TrimSpace(serviceOrderID)
	if serviceOrderID == "" {
		return nil, ErrInvalidPaymentOrderID
	}
	return u.repo.ListByServiceOrderID(ctx, serviceOrderID)
}
