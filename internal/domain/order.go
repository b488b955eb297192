package domain

import "github.com/shopspring/decimal"

// OrderItemRequest is one line of an order-creation request.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// ShippingAddress is the delivery destination sent with an order and
// echoed back on order lookups.
type ShippingAddress struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Country   string `json:"country"`
}

// OrderRequest is the payload submitted to the commerce API to create an
// order. It is derived from the checkout draft and the cart contents,
// built once per checkout attempt and never retried automatically.
type OrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress ShippingAddress    `json:"shippingAddress"`
	ShippingMethod  string             `json:"shippingMethod"`
	PaymentMethod   PaymentMethod      `json:"paymentMethod"`
}

// PaymentAuthorization is the payment hand-off returned by a successful
// order creation. The browser is redirected to AuthorizationURL; the
// storefront performs no payment logic itself.
type PaymentAuthorization struct {
	AuthorizationURL string          `json:"authorizationUrl"`
	Reference        string          `json:"reference"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	PaymentMethod    string          `json:"paymentMethod"`
}

// OrderLine is one line of a completed order as reported by the commerce API.
type OrderLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// OrderResult is a completed order fetched by order number after the
// payment provider redirects back. Read-only from the storefront's side.
type OrderResult struct {
	OrderNumber       string          `json:"orderNumber"`
	PaymentStatus     string          `json:"paymentStatus"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	TotalShippingCost decimal.Decimal `json:"totalShippingCost"`
	TotalTaxes        decimal.Decimal `json:"totalTaxes"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	Items             []OrderLine     `json:"items"`
	ShippingAddress   ShippingAddress `json:"shippingAddress"`
}
