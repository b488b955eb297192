package domain

// PaymentMethod selects how the visitor intends to pay.
type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// Valid reports whether the method is one the storefront accepts.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCard || m == PaymentMethodTransfer
}

// CheckoutDraft is the in-progress checkout form: contact and delivery
// details plus the chosen payment method. It lives in memory for the
// duration of a checkout session and is discarded on completion or
// abandonment.
type CheckoutDraft struct {
	FirstName           string        `json:"firstName"`
	LastName            string        `json:"lastName"`
	PhoneNumber         string        `json:"phoneNumber"`
	Email               string        `json:"email"`
	State               string        `json:"state"`
	LocalGovernmentArea string        `json:"localGovernmentArea"`
	StreetAddress       string        `json:"streetAddress"`
	UseSavedInfo        bool          `json:"useSavedInfo"`
	PaymentMethod       PaymentMethod `json:"paymentMethod"`
}

// NormalizeArea clears the local government area when it no longer belongs
// to the selected state, so a state change never leaves a stale area behind.
func (d *CheckoutDraft) NormalizeArea() {
	if d.LocalGovernmentArea == "" {
		return
	}
	if !ValidArea(d.State, d.LocalGovernmentArea) {
		d.LocalGovernmentArea = ""
	}
}
