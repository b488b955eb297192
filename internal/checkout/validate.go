package checkout

import (
	"net/mail"
	"strings"
	"unicode"

	"trove-storefront/internal/domain"
)

const minPhoneDigits = 10

// ValidateDraft checks the review form. A nil-length result means the
// draft is acceptable; otherwise every offending field carries a message.
func ValidateDraft(d domain.CheckoutDraft) domain.ValidationErrors {
	errs := domain.ValidationErrors{}

	if strings.TrimSpace(d.FirstName) == "" {
		errs["firstName"] = "first name is required"
	}
	if strings.TrimSpace(d.LastName) == "" {
		errs["lastName"] = "last name is required"
	}

	if phone := strings.TrimSpace(d.PhoneNumber); phone == "" {
		errs["phoneNumber"] = "phone number is required"
	} else if digitCount(phone) < minPhoneDigits {
		errs["phoneNumber"] = "phone number must have at least 10 digits"
	}

	if email := strings.TrimSpace(d.Email); email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "email address is not valid"
	}

	state := strings.TrimSpace(d.State)
	area := strings.TrimSpace(d.LocalGovernmentArea)
	if state == "" {
		errs["state"] = "state is required"
	} else if _, ok := domain.AreasForState(state); !ok {
		errs["state"] = "we do not deliver to this state yet"
	} else if area == "" {
		errs["localGovernmentArea"] = "local government area is required"
	} else if !domain.ValidArea(state, area) {
		errs["localGovernmentArea"] = "area does not belong to the selected state"
	}

	if strings.TrimSpace(d.StreetAddress) == "" {
		errs["streetAddress"] = "street address is required"
	}

	if !d.PaymentMethod.Valid() {
		errs["paymentMethod"] = "payment method must be card or transfer"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
