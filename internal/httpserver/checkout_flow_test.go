package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"

	"trove-storefront/internal/domain"
)

const validDraftJSON = `{
	"firstName": "Adaeze",
	"lastName": "Okafor",
	"phoneNumber": "08031234567",
	"email": "adaeze@example.com",
	"state": "Lagos",
	"localGovernmentArea": "Ikeja",
	"streetAddress": "14 Allen Avenue",
	"paymentMethod": "card"
}`

func (e *testEnv) addItem(t *testing.T, productID string, quantity int) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]any{"productId": productID, "quantity": quantity})
	return e.do(t, http.MethodPost, "/api/cart/items", string(body), nil)
}

func TestCartAddMergesAndMirrorsCookie(t *testing.T) {
	env := newTestEnv(t)

	rec := env.addItem(t, "p1", 2)
	if rec.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = env.addItem(t, "p1", 3)
	if rec.Code != http.StatusOK {
		t.Fatalf("second add: expected 200, got %d", rec.Code)
	}

	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Quantity != 5 {
		t.Fatalf("expected one merged line with quantity 5, got %+v", resp.Items)
	}
	if resp.TotalItemCount != 5 {
		t.Fatalf("expected total item count 5, got %d", resp.TotalItemCount)
	}
	if want := decimal.NewFromInt(120000).String(); resp.TotalPrice != want {
		t.Fatalf("expected total %s, got %s", want, resp.TotalPrice)
	}

	mirror := env.cookie(cartCookieName)
	if mirror == nil {
		t.Fatalf("expected cart mirror cookie")
	}
	raw, err := url.QueryUnescape(mirror.Value)
	if err != nil {
		t.Fatalf("unescape mirror cookie: %v", err)
	}
	var payload cartCookiePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("decode mirror cookie: %v", err)
	}
	if payload.Count != 5 {
		t.Fatalf("mirror cookie count = %d, want 5", payload.Count)
	}
}

func TestCartQuantityAndRemoval(t *testing.T) {
	env := newTestEnv(t)
	env.addItem(t, "p1", 2)

	rec := env.do(t, http.MethodPatch, "/api/cart/items/p1", `{"quantity": 4}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPatch, "/api/cart/items/p1", `{"quantity": 0}`, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("quantity 0 must be rejected with 422, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/api/cart/items/p1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Fatalf("expected empty cart after removal, got %+v", resp.Items)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	rec := env.addItem(t, "ghost", 1)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", rec.Code)
	}
}

func TestFavoritesToggleRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/favorites/p1/toggle", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle on: expected 200, got %d", rec.Code)
	}
	var resp struct {
		Favorited bool `json:"favorited"`
		Count     int  `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Favorited || resp.Count != 1 {
		t.Fatalf("expected favorited=true count=1, got %+v", resp)
	}

	rec = env.do(t, http.MethodPost, "/api/favorites/p1/toggle", "", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Favorited || resp.Count != 0 {
		t.Fatalf("toggle must invert, got %+v", resp)
	}
}

func TestCheckoutFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.auth = &domain.PaymentAuthorization{
		AuthorizationURL: "https://pay.example/authorize/abc123",
		Reference:        "TROF-1",
		Amount:           decimal.NewFromInt(24500),
		Currency:         "NGN",
		PaymentMethod:    "card",
	}
	env.gateway.order = &domain.OrderResult{
		OrderNumber:   "TROF-1",
		PaymentStatus: "paid",
		TotalAmount:   decimal.NewFromInt(24500),
	}

	if rec := env.addItem(t, "p1", 1); rec.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d", rec.Code)
	}

	rec := env.do(t, http.MethodGet, "/api/checkout", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("checkout session: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var session struct {
		Step string `json:"step"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if session.Step != "review" {
		t.Fatalf("fresh checkout must start in review, got %q", session.Step)
	}

	rec = env.do(t, http.MethodPost, "/api/checkout/review", validDraftJSON, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("review: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if session.Step != "payment" {
		t.Fatalf("expected payment step after review, got %q", session.Step)
	}

	rec = env.do(t, http.MethodPost, "/api/checkout/pay", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("pay: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var pay struct {
		RedirectURL string `json:"redirectUrl"`
		Reference   string `json:"reference"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &pay); err != nil {
		t.Fatalf("decode pay: %v", err)
	}
	if pay.RedirectURL != "https://pay.example/authorize/abc123" || pay.Reference != "TROF-1" {
		t.Fatalf("unexpected payment response: %+v", pay)
	}
	if env.gateway.creates != 1 {
		t.Fatalf("expected exactly one order creation, got %d", env.gateway.creates)
	}

	rec = env.do(t, http.MethodGet, "/api/checkout/return?orderNumber=TROF-1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("return: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var confirmed struct {
		Step        string `json:"step"`
		OrderResult *struct {
			OrderNumber string `json:"orderNumber"`
		} `json:"orderResult"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &confirmed); err != nil {
		t.Fatalf("decode confirmation: %v", err)
	}
	if confirmed.Step != "confirmation" {
		t.Fatalf("expected confirmation step, got %q", confirmed.Step)
	}
	if confirmed.OrderResult == nil || confirmed.OrderResult.OrderNumber != "TROF-1" {
		t.Fatalf("expected order TROF-1 in confirmation, got %+v", confirmed.OrderResult)
	}

	sid := env.cookie(sessionCookieName).Value
	if items, err := env.cartRepo.Load(context.Background(), sid); err == nil && len(items) > 0 {
		t.Fatalf("cart must be cleared after confirmation, got %+v", items)
	}
	if env.cookie(cartCookieName) != nil {
		t.Fatalf("cart mirror cookie must be cleared after confirmation")
	}

	rec = env.do(t, http.MethodPost, "/api/checkout/reset", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset: expected 200, got %d", rec.Code)
	}
}

func TestReturnRequiresOrderNumber(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/checkout/return", "", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 without orderNumber, got %d", rec.Code)
	}
}

func TestPayWithoutReviewConflicts(t *testing.T) {
	env := newTestEnv(t)
	env.addItem(t, "p1", 1)
	rec := env.do(t, http.MethodPost, "/api/checkout/pay", "", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 without a reviewed draft, got %d", rec.Code)
	}
}

func TestGatewayFailureIsBadGateway(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.createErr = &domain.GatewayError{Message: "insufficient stock"}
	env.addItem(t, "p1", 1)
	env.do(t, http.MethodPost, "/api/checkout/review", validDraftJSON, nil)

	rec := env.do(t, http.MethodPost, "/api/checkout/pay", "", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 on gateway failure, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestInvalidDraftReturnsFieldErrors(t *testing.T) {
	env := newTestEnv(t)
	env.addItem(t, "p1", 1)

	rec := env.do(t, http.MethodPost, "/api/checkout/review", `{"firstName": "Adaeze"}`, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for invalid draft, got %d", rec.Code)
	}
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := resp.Fields["email"]; !ok {
		t.Fatalf("expected an email field error, got %+v", resp.Fields)
	}
}
