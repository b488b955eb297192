// Package catalog reads the remote product catalog. The storefront core
// only consumes the subset of a product needed to build cart lines and
// order items.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"trove-storefront/internal/domain"
)

// Product is a catalog record.
type Product struct {
	ID       string          `json:"id"`
	Slug     string          `json:"slug,omitempty"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Images   []string        `json:"images"`
	Category string          `json:"category,omitempty"`
}

// ListFilter narrows a product listing.
type ListFilter struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

// Client talks to the commerce API's catalog endpoints.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Product looks up a single product by id or slug.
func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrNotFound
	}
	body, err := c.get(ctx, "/products/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	var product Product
	if err := json.Unmarshal(body, &product); err != nil {
		c.logger.Error("malformed product payload", zap.Error(err), zap.String("id", id))
		return nil, &domain.GatewayError{Message: "catalog returned an unexpected response"}
	}
	return &product, nil
}

// Products lists products matching the filter.
func (c *Client) Products(ctx context.Context, filter ListFilter) ([]Product, error) {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	path := "/products"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	var products []Product
	if err := json.Unmarshal(body, &products); err != nil {
		c.logger.Error("malformed product list payload", zap.Error(err))
		return nil, &domain.GatewayError{Message: "catalog returned an unexpected response"}
	}
	return products, nil
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog unreachable", zap.String("path", path), zap.Error(err))
		return nil, &domain.GatewayError{Message: "catalog is unreachable, please try again"}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.GatewayError{Message: "catalog response could not be read"}
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.logger.Error("malformed catalog envelope",
			zap.String("path", path), zap.Int("status", resp.StatusCode), zap.Error(err))
		return nil, &domain.GatewayError{Message: "catalog returned an unexpected response"}
	}
	if !env.Success {
		msg := strings.TrimSpace(env.Message)
		if msg == "" {
			msg = fmt.Sprintf("catalog request failed (status %d)", resp.StatusCode)
		}
		return nil, &domain.GatewayError{Message: msg}
	}
	return env.Data, nil
}
