package checkout

import "errors"

// Checkout errors as sentinel values
var (
	ErrAlreadyPaid      = errors.New("checkout already completed")
	ErrTermsNotAgreed   = errors.New("terms must be agreed before submitting")
	ErrShippingMirrored = errors.New("shipping fields are mirrored from billing")
	ErrUnknownField     = errors.New("unknown checkout field")
	ErrInvalidForm      = errors.New("checkout form is invalid")
)
