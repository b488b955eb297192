package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"trove-storefront/internal/domain"
)

func testRequest() domain.OrderRequest {
	return domain.OrderRequest{
		Items: []domain.OrderItemRequest{{ProductID: "p1", Quantity: 1}},
		ShippingAddress: domain.ShippingAddress{
			FirstName: "Ada", LastName: "Obi", Email: "ada@example.com",
			Phone: "08012345678", Address: "12 Marina Rd", City: "Ikeja",
			State: "Lagos", Country: "Nigeria",
		},
		ShippingMethod: "standard",
		PaymentMethod:  domain.PaymentMethodCard,
	}
}

func newTestClient(url string) *Client {
	return NewClient(url, "test-key", 2*time.Second, zap.NewNop())
}

func TestCreateOrderSuccess(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		var req domain.OrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Items) != 1 || req.Items[0].ProductID != "p1" {
			t.Fatalf("unexpected items: %+v", req.Items)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"payment": map[string]interface{}{
					"authorizationUrl": "https://pay.example/abc",
					"reference":        "TROF-1",
					"amount":           27500,
					"currency":         "NGN",
					"paymentMethod":    "card",
				},
			},
		})
	}))
	defer srv.Close()

	auth, err := newTestClient(srv.URL).CreateOrder(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth.AuthorizationURL != "https://pay.example/abc" || auth.Reference != "TROF-1" {
		t.Fatalf("unexpected authorization: %+v", auth)
	}
	if !auth.Amount.Equal(decimal.NewFromInt(27500)) {
		t.Fatalf("unexpected amount: %s", auth.Amount)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("expected bearer auth header, got %q", gotAuth)
	}
}

func TestCreateOrderEmptyCart(t *testing.T) {
	client := newTestClient("http://unused.invalid")
	req := testRequest()
	req.Items = nil
	if _, err := client.CreateOrder(context.Background(), req); !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCreateOrderFailureEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "insufficient stock",
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateOrder(context.Background(), testRequest())
	var gerr *domain.GatewayError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if gerr.Message != "insufficient stock" {
		t.Fatalf("expected remote message surfaced, got %q", gerr.Message)
	}
}

func TestCreateOrderMissingAuthorizationURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"payment": map[string]interface{}{"reference": "TROF-9"}},
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateOrder(context.Background(), testRequest())
	var gerr *domain.GatewayError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected GatewayError for missing authorization url, got %v", err)
	}
}

func TestCreateOrderNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := newTestClient(srv.URL).CreateOrder(context.Background(), testRequest())
	var gerr *domain.GatewayError
	if !errors.As(err, &gerr) {
		t.Fatalf("network failures must normalize to GatewayError, got %v", err)
	}
}

func TestFetchOrderByNumberSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders/TROF-1" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"orderNumber":       "TROF-1",
				"paymentStatus":     "paid",
				"subtotal":          24000,
				"totalShippingCost": 2500,
				"totalTaxes":        1000,
				"totalAmount":       27500,
				"items": []map[string]interface{}{
					{"productId": "p1", "name": "Leather Tote", "unitPrice": 24000, "quantity": 1},
				},
				"shippingAddress": map[string]interface{}{"city": "Ikeja", "state": "Lagos"},
			},
		})
	}))
	defer srv.Close()

	order, err := newTestClient(srv.URL).FetchOrderByNumber(context.Background(), "TROF-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.OrderNumber != "TROF-1" || order.PaymentStatus != "paid" {
		t.Fatalf("unexpected order: %+v", order)
	}
	if !order.TotalAmount.Equal(decimal.NewFromInt(27500)) {
		t.Fatalf("unexpected total: %s", order.TotalAmount)
	}
	if len(order.Items) != 1 || order.Items[0].ProductID != "p1" {
		t.Fatalf("unexpected items: %+v", order.Items)
	}
}

func TestFetchOrderByNumberNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "no such order"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchOrderByNumber(context.Background(), "TROF-404")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchOrderByNumberEscapesPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"orderNumber": "TROF/2", "paymentStatus": "paid"},
		})
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).FetchOrderByNumber(context.Background(), "TROF/2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/orders/TROF%2F2" {
		t.Fatalf("order number must survive url encoding, got %s", gotPath)
	}
}
