// Package gateway translates checkout submissions into calls against the
// remote commerce API and normalizes its response envelopes. It performs no
// payment logic and never mutates local state; callers decide what to do
// with the returned data.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"trove-storefront/internal/domain"
)

// Client is the order/payment gateway adapter.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a gateway client. timeout bounds every remote call so an
// abandoned request surfaces as a failure instead of hanging.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// envelope is the commerce API's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type createOrderData struct {
	Payment domain.PaymentAuthorization `json:"payment"`
}

// CreateOrder submits an order and returns the payment authorization the
// browser must be redirected to. Each call may create a new remote order;
// callers must invoke it at most once per user-initiated submission.
func (c *Client) CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.PaymentAuthorization, error) {
	if len(req.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	body, err := c.do(ctx, http.MethodPost, "/orders", req)
	if err != nil {
		return nil, err
	}

	var data createOrderData
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error("malformed order creation payload", zap.Error(err))
		return nil, &domain.GatewayError{Message: "order service returned an unexpected response"}
	}
	if strings.TrimSpace(data.Payment.AuthorizationURL) == "" {
		c.logger.Error("order created without authorization url")
		return nil, &domain.GatewayError{Message: "payment authorization unavailable, please try again"}
	}
	return &data.Payment, nil
}

// FetchOrderByNumber resolves a completed order after the payment provider
// redirects back. Unknown order numbers map to domain.ErrNotFound.
func (c *Client) FetchOrderByNumber(ctx context.Context, orderNumber string) (*domain.OrderResult, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, domain.ErrNotFound
	}

	body, err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderNumber), nil)
	if err != nil {
		return nil, err
	}

	var result domain.OrderResult
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.Error("malformed order lookup payload", zap.Error(err), zap.String("orderNumber", orderNumber))
		return nil, &domain.GatewayError{Message: "order service returned an unexpected response"}
	}
	if result.OrderNumber == "" {
		result.OrderNumber = orderNumber
	}
	return &result, nil
}

// do performs one round trip and unwraps the response envelope. Network
// failures and non-success envelopes come back as *domain.GatewayError;
// HTTP 404 maps to domain.ErrNotFound.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}) (json.RawMessage, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("commerce api unreachable", zap.String("path", path), zap.Error(err))
		return nil, &domain.GatewayError{Message: "order service is unreachable, please try again"}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.GatewayError{Message: "order service response could not be read"}
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.logger.Error("malformed commerce api envelope",
			zap.String("path", path), zap.Int("status", resp.StatusCode), zap.Error(err))
		return nil, &domain.GatewayError{Message: "order service returned an unexpected response"}
	}
	if !env.Success {
		msg := strings.TrimSpace(env.Message)
		if msg == "" {
			msg = fmt.Sprintf("order service request failed (status %d)", resp.StatusCode)
		}
		return nil, &domain.GatewayError{Message: msg}
	}
	return env.Data, nil
}
