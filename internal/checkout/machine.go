// Package checkout drives the three-step checkout flow: Review, Payment,
// Confirmation. One Machine exists per visitor session and owns the draft,
// the in-flight guard, and the transition rules.
package checkout

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"trove-storefront/internal/domain"
)

// Step is a checkout state.
type Step string

const (
	StepReview       Step = "review"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

var (
	// ErrReviewRequired signals a transition that needs the review step
	// to be the current one.
	ErrReviewRequired = errors.New("review step must be completed first")
	// ErrNotInPayment signals backward navigation attempted outside the
	// payment step.
	ErrNotInPayment = errors.New("not in payment step")
)

// Gateway is the slice of the order/payment adapter the machine uses.
type Gateway interface {
	CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.PaymentAuthorization, error)
	FetchOrderByNumber(ctx context.Context, orderNumber string) (*domain.OrderResult, error)
}

// Cart is the slice of the cart store the machine reads. The cart is
// cleared only when confirmation is reached, so an abandoned payment
// leaves it intact for retry.
type Cart interface {
	Items() []domain.CartItem
	IsEmpty() bool
	Clear(ctx context.Context) error
}

// Session is a read-only snapshot of the machine.
type Session struct {
	Step               Step                  `json:"step"`
	Draft              *domain.CheckoutDraft `json:"draft,omitempty"`
	OrderResult        *domain.OrderResult   `json:"orderResult,omitempty"`
	PendingOrderNumber string                `json:"pendingOrderNumber,omitempty"`
}

// Machine is the checkout state machine for one session.
type Machine struct {
	mu                 sync.Mutex
	step               Step
	draft              *domain.CheckoutDraft
	orderResult        *domain.OrderResult
	pendingOrderNumber string
	inFlight           bool

	gateway Gateway
	logger  *zap.Logger
}

func NewMachine(gw Gateway, logger *zap.Logger) *Machine {
	return &Machine{step: StepReview, gateway: gw, logger: logger}
}

// Snapshot returns the current session state.
func (m *Machine) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Session{Step: m.step, PendingOrderNumber: m.pendingOrderNumber}
	if m.draft != nil {
		draft := *m.draft
		s.Draft = &draft
	}
	if m.orderResult != nil {
		result := *m.orderResult
		s.OrderResult = &result
	}
	return s
}

// Step returns the current step.
func (m *Machine) Step() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step
}

// SubmitReview validates the draft and advances Review to Payment. A
// validation failure leaves the machine in Review with no draft stored and
// returns the field errors.
func (m *Machine) SubmitReview(draft domain.CheckoutDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.step != StepReview {
		return ErrReviewRequired
	}
	if errs := ValidateDraft(draft); len(errs) > 0 {
		return errs
	}
	stored := draft
	m.draft = &stored
	m.step = StepPayment
	return nil
}

// BackToReview lets the visitor edit shipping details before paying. Only
// valid from Payment with a draft present.
func (m *Machine) BackToReview() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.step != StepPayment || m.draft == nil {
		return ErrNotInPayment
	}
	m.step = StepReview
	return nil
}

// InitiatePayment builds the order request and asks the gateway to create
// the order. Only valid from the payment step. On success it returns the
// payment authorization for the caller to redirect to; the machine stays
// in Payment since the hand-off is external. Double submissions while a
// call is in flight fail with ErrCheckoutBusy; the flag clears on every
// exit path.
func (m *Machine) InitiatePayment(ctx context.Context, cart Cart) (*domain.PaymentAuthorization, error) {
	m.mu.Lock()
	if m.inFlight {
		m.mu.Unlock()
		return nil, domain.ErrCheckoutBusy
	}
	if m.step != StepPayment {
		m.mu.Unlock()
		return nil, ErrReviewRequired
	}
	if m.draft == nil {
		m.mu.Unlock()
		return nil, domain.ErrMissingDraft
	}
	if cart.IsEmpty() {
		m.mu.Unlock()
		return nil, domain.ErrEmptyCart
	}
	req := buildOrderRequest(*m.draft, cart.Items())
	m.inFlight = true
	m.mu.Unlock()

	auth, err := m.gateway.CreateOrder(ctx, req)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight = false
	if err != nil {
		m.logger.Warn("order creation failed", zap.Error(err))
		return nil, err
	}
	m.pendingOrderNumber = auth.Reference
	m.logger.Info("payment authorization issued",
		zap.String("reference", auth.Reference), zap.String("method", auth.PaymentMethod))
	return auth, nil
}

// ResolveReturn looks up the order the payment provider redirected back
// with. On success it jumps to Confirmation from any step, the one
// transition allowed to skip state, and clears the cart. On failure the
// session stays where it was so the visitor can restart checkout.
func (m *Machine) ResolveReturn(ctx context.Context, cart Cart, orderNumber string) (*domain.OrderResult, error) {
	m.mu.Lock()
	if m.inFlight {
		m.mu.Unlock()
		return nil, domain.ErrCheckoutBusy
	}
	m.inFlight = true
	m.mu.Unlock()

	result, err := m.gateway.FetchOrderByNumber(ctx, orderNumber)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight = false
	if err != nil {
		m.logger.Warn("order lookup failed", zap.String("orderNumber", orderNumber), zap.Error(err))
		return nil, err
	}
	m.orderResult = result
	m.pendingOrderNumber = ""
	m.step = StepConfirmation
	if err := cart.Clear(ctx); err != nil {
		// Confirmation already happened remotely; a stale cart snapshot
		// is recoverable, losing the confirmation is not.
		m.logger.Warn("cart clear after confirmation failed", zap.Error(err))
	}
	m.logger.Info("order confirmed", zap.String("orderNumber", result.OrderNumber))
	return result, nil
}

// Reset discards the session state and returns to Review.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = nil
	m.orderResult = nil
	m.pendingOrderNumber = ""
	m.step = StepReview
}

func buildOrderRequest(draft domain.CheckoutDraft, items []domain.CartItem) domain.OrderRequest {
	lines := make([]domain.OrderItemRequest, 0, len(items))
	for _, item := range items {
		lines = append(lines, domain.OrderItemRequest{ProductID: item.ID, Quantity: item.Quantity})
	}
	return domain.OrderRequest{
		Items: lines,
		ShippingAddress: domain.ShippingAddress{
			FirstName: draft.FirstName,
			LastName:  draft.LastName,
			Email:     draft.Email,
			Phone:     draft.PhoneNumber,
			Address:   draft.StreetAddress,
			City:      draft.LocalGovernmentArea,
			State:     draft.State,
			Country:   "Nigeria",
		},
		ShippingMethod: "standard",
		PaymentMethod:  draft.PaymentMethod,
	}
}
