// Package checkout owns the checkout form state for a session, including the
// billing/shipping address synchronization the "same as billing" toggle
// drives.
package checkout

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Mode is the address synchronization mode.
type Mode int

const (
	// ModeIndependent means shipping fields are plain, freely editable
	// strings.
	ModeIndependent Mode = iota
	// ModeMirrored means shipping fields are derived from billing fields and
	// reject direct edits.
	ModeMirrored
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeMirrored {
		return "mirrored"
	}
	return "independent"
}

// Form field names, matching the storefront's input names.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
	FieldPhone     = "phone"

	FieldBillingStreet = "billingStreet"
	FieldBillingCity   = "billingCity"
	FieldBillingState  = "billingState"
	FieldBillingZip    = "billingZip"

	FieldShippingStreet = "shippingStreet"
	FieldShippingCity   = "shippingCity"
	FieldShippingState  = "shippingState"
	FieldShippingZip    = "shippingZip"
)

// Address is one four-field address section.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// Personal is the buyer contact section.
type Personal struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// View is a point-in-time snapshot of the form for rendering.
type View struct {
	Personal      Personal `json:"personal"`
	Billing       Address  `json:"billing"`
	Shipping      Address  `json:"shipping"`
	SameAsBilling bool     `json:"sameAsBilling"`
	AgreedToTerms bool     `json:"agreedToTerms"`
	Paid          bool     `json:"paid"`
}

// Form is the checkout form aggregate. It lives in memory for the lifetime
// of the checkout page and ends in a terminal paid state on successful
// submission.
//
// While mirrored, every billing edit lands in the matching shipping field in
// the same update, never on a later pass; shipping edits are rejected.
// Toggling the mirror on copies all four billing fields in one step;
// toggling it off clears shipping to empty strings rather than restoring any
// earlier values.
type Form struct {
	mu       sync.Mutex
	validate *validator.Validate

	personal Personal
	billing  Address
	shipping Address
	mode     Mode
	agreed   bool
	paid     bool
}

// NewForm creates an empty checkout form with independent addresses.
func NewForm() *Form {
	return &Form{
		validate: validator.New(),
	}
}

// SetField writes one named form field. Unknown names are rejected, as are
// shipping edits while the mirror is active and any edit after payment.
func (f *Form) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.paid {
		return ErrAlreadyPaid
	}

	switch name {
	case FieldFirstName:
		f.personal.FirstName = value
	case FieldLastName:
		f.personal.LastName = value
	case FieldEmail:
		f.personal.Email = value
	case FieldPhone:
		f.personal.Phone = value

	case FieldBillingStreet:
		f.billing.Street = value
		if f.mode == ModeMirrored {
			f.shipping.Street = value
		}
	case FieldBillingCity:
		f.billing.City = value
		if f.mode == ModeMirrored {
			f.shipping.City = value
		}
	case FieldBillingState:
		f.billing.State = value
		if f.mode == ModeMirrored {
			f.shipping.State = value
		}
	case FieldBillingZip:
		f.billing.Zip = value
		if f.mode == ModeMirrored {
			f.shipping.Zip = value
		}

	case FieldShippingStreet, FieldShippingCity, FieldShippingState, FieldShippingZip:
		if f.mode == ModeMirrored {
			return ErrShippingMirrored
		}
		switch name {
		case FieldShippingStreet:
			f.shipping.Street = value
		case FieldShippingCity:
			f.shipping.City = value
		case FieldShippingState:
			f.shipping.State = value
		case FieldShippingZip:
			f.shipping.Zip = value
		}

	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}

	return nil
}

// SetSameAsBilling drives the mirror toggle. Turning it on copies all four
// billing fields into shipping as one atomic update; turning it off clears
// the shipping fields. Setting the current mode again is a no-op.
func (f *Form) SetSameAsBilling(on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.paid {
		return ErrAlreadyPaid
	}

	if on && f.mode == ModeIndependent {
		f.shipping = f.billing
		f.mode = ModeMirrored
	} else if !on && f.mode == ModeMirrored {
		f.shipping = Address{}
		f.mode = ModeIndependent
	}
	return nil
}

// SetAgreedToTerms records the terms checkbox.
func (f *Form) SetAgreedToTerms(agreed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.paid {
		return ErrAlreadyPaid
	}
	f.agreed = agreed
	return nil
}

// submission is the shape validated on submit.
type submission struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required,email"`
	Phone     string `validate:"required"`

	BillingStreet string `validate:"required"`
	BillingCity   string `validate:"required"`
	BillingState  string `validate:"required"`
	BillingZip    string `validate:"required"`

	ShippingStreet string `validate:"required"`
	ShippingCity   string `validate:"required"`
	ShippingState  string `validate:"required"`
	ShippingZip    string `validate:"required"`
}

// Submit validates the form and moves it to the terminal paid state.
func (f *Form) Submit() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.paid {
		return ErrAlreadyPaid
	}
	if !f.agreed {
		return ErrTermsNotAgreed
	}

	sub := submission{
		FirstName: f.personal.FirstName,
		LastName:  f.personal.LastName,
		Email:     f.personal.Email,
		Phone:     f.personal.Phone,

		BillingStreet: f.billing.Street,
		BillingCity:   f.billing.City,
		BillingState:  f.billing.State,
		BillingZip:    f.billing.Zip,

		ShippingStreet: f.shipping.Street,
		ShippingCity:   f.shipping.City,
		ShippingState:  f.shipping.State,
		ShippingZip:    f.shipping.Zip,
	}
	if err := f.validate.Struct(sub); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}

	f.paid = true
	return nil
}

// Paid reports whether the form reached its terminal state.
func (f *Form) Paid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paid
}

// Snapshot returns the current form state for rendering.
func (f *Form) Snapshot() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	return View{
		Personal:      f.personal,
		Billing:       f.billing,
		Shipping:      f.shipping,
		SameAsBilling: f.mode == ModeMirrored,
		AgreedToTerms: f.agreed,
		Paid:          f.paid,
	}
}
