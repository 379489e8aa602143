package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mercadopago/sdk-go/pkg/payment"
)

type fakeCreator struct {
	got    payment.Request
	gotKey any
	resp   *payment.Response
	err    error
}

func (f *fakeCreator) Create(ctx context.Context, req payment.Request) (*payment.Response, error) {
	f.got = req
	f.gotKey = ctx.Value(idempotencyKeyCtx{})
	return f.resp, f.err
}

func TestNewMercadoPagoGateway_MissingToken(t *testing.T) {
	_, err := NewMercadoPagoGateway("")
	if !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
		t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
	}
}

func TestMercadoPagoGateway_CreatePayment(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		var g *MercadoPagoGateway
		_, _, _, err := g.CreatePayment(context.Background(), "so-1:1", json.RawMessage(`{}`))
		if !errors.Is(err, ErrMercadoPagoGatewayNotConfigured) {
			t.Fatalf("expected ErrMercadoPagoGatewayNotConfigured, got %v", err)
		}
	})

	t.Run("invalid payload", func(t *testing.T) {
		g := &MercadoPagoGateway{client: &fakeCreator{}}
		_, _, _, err := g.CreatePayment(context.Background(), "so-1:1", json.RawMessage(`{`))
		if err == nil {
			t.Fatalf("expected unmarshal error")
		}
	})

	t.Run("sdk error", func(t *testing.T) {
		g := &MercadoPagoGateway{client: &fakeCreator{err: errors.New(`{"status":400}`)}}
		_, _, _, err := g.CreatePayment(context.Background(), "so-1:1", json.RawMessage(`{"payment_method_id":"pix"}`))
		if err == nil || err.Error() != `{"status":400}` {
			t.Fatalf("expected sdk error, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		fake := &fakeCreator{resp: &payment.Response{ID: 42, Status: "approved"}}
		g := &MercadoPagoGateway{client: fake}

		id, status, raw, err := g.CreatePayment(context.Background(), "so-1:1", json.RawMessage(`{"payment_method_id":"pix","transaction_amount":60,"external_reference":"so-1"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != "42" || status != "approved" || len(raw) == 0 {
			t.Fatalf("unexpected result id=%s status=%s raw=%s", id, status, raw)
		}
		if fake.gotKey != "so-1:1" {
			t.Fatalf("expected idempotency key on context, got %v", fake.gotKey)
		}
		forwarded, _ := json.Marshal(fake.got)
		var body map[string]any
		if err := json.Unmarshal(forwarded, &body); err != nil {
			t.Fatalf("forwarded request should marshal: %v", err)
		}
		if body["payment_method_id"] != "pix" || body["external_reference"] != "so-1" || body["transaction_amount"] != float64(60) {
			t.Fatalf("request not forwarded: %s", forwarded)
		}
	})
}

func TestIdempotentRequester_SetsKeyFromContext(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get(idempotencyHeader))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	r := idempotentRequester{client: srv.Client()}

	for _, key := range []string{"so-1:4", ""} {
		ctx := context.Background()
		if key != "" {
			ctx = context.WithValue(ctx, idempotencyKeyCtx{}, key)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, srv.URL, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		req.Header.Set(idempotencyHeader, "random")
		resp, err := r.Do(req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		resp.Body.Close()
	}

	if len(got) != 2 || got[0] != "so-1:4" || got[1] != "random" {
		t.Fatalf("unexpected idempotency keys: %v", got)
	}
}
