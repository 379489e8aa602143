package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"servicedesk/internal/usecase/interfaces"
	"servicedesk/pkg/logger"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

const idempotencyHeader = "X-Idempotency-Key"

type idempotencyKeyCtx struct{}

// idempotentRequester replaces the random idempotency key the SDK sets on
// every POST with the key carried by the request context.
type idempotentRequester struct {
	client *http.Client
}

func (r idempotentRequester) Do(req *http.Request) (*http.Response, error) {
	if key, ok := req.Context().Value(idempotencyKeyCtx{}).(string); ok && key != "" {
		req.Header.Set(idempotencyHeader, key)
	}
	return r.client.Do(req)
}

// paymentCreator is the subset of the SDK client the gateway calls.
type paymentCreator interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
}

type MercadoPagoGateway struct {
	client paymentCreator
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	ctx := context.Background()
	if accessToken == "" {
		logger.Warn(ctx).Msg("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken, config.WithHTTPClient(idempotentRequester{client: &http.Client{Timeout: 10 * time.Second}}))
	if err != nil {
		logger.Error(ctx).Err(err).Msg("[payment][gateway] failed creating sdk config")
		return nil, err
	}
	logger.Info(ctx).Msg("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(cfg)}, nil
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, idempotencyKey string, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error) {
	if g == nil || g.client == nil {
		logger.Error(ctx).Msg("[payment][gateway] gateway not configured")
		return "", "", nil, ErrMercadoPagoGatewayNotConfigured
	}
	logger.Info(ctx).Int("payload_len", len(requestPayload)).Str("idempotency_key", idempotencyKey).Msg("[payment][gateway] create start")

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		logger.Warn(ctx).Err(err).Msg("[payment][gateway] payload unmarshal failed")
		return "", "", nil, err
	}

	if idempotencyKey != "" {
		ctx = context.WithValue(ctx, idempotencyKeyCtx{}, idempotencyKey)
	}
	resp, err := g.client.Create(ctx, req)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("[payment][gateway] sdk create failed")
		return "", "", nil, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("[payment][gateway] response marshal failed")
		return "", "", nil, err
	}
	id := fmt.Sprintf("%d", resp.ID)
	logger.Info(ctx).Str("provider_payment_id", id).Str("provider_status", resp.Status).Msg("[payment][gateway] create success")

	return id, resp.Status, b, nil
}
