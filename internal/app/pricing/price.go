// Package pricing normalizes the heterogeneous price values returned by the
// catalog collaborator. Upstream is inconsistent about whether a price arrives
// as a bare number (1699) or a pre-formatted currency string ("$1,699"); this
// package is the single place where that difference is resolved.
package pricing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidPrice indicates a price value with no parseable numeric content.
// Callers should render a placeholder instead of failing the whole view.
var ErrInvalidPrice = errors.New("price has no numeric value")

// CurrencySymbol is prepended when formatting bare numeric prices.
const CurrencySymbol = "$"

// Price is the union of the two upstream representations: a numeric amount or
// a pre-formatted currency string. The original form is preserved so that
// snapshots stored in the cart round-trip exactly as received.
type Price struct {
	numeric bool
	amount  decimal.Decimal
	text    string
}

// FromNumber creates a Price from a bare numeric amount.
func FromNumber(amount float64) Price {
	return Price{numeric: true, amount: decimal.NewFromFloat(amount)}
}

// FromDecimal creates a numeric Price from a decimal amount.
func FromDecimal(amount decimal.Decimal) Price {
	return Price{numeric: true, amount: amount}
}

// FromString creates a Price from a pre-formatted currency string such as
// "$1,699". The string is kept verbatim; parsing happens in Amount.
func FromString(text string) Price {
	return Price{text: text}
}

// IsZero reports whether the price is the zero value (no data received).
func (p Price) IsZero() bool {
	return !p.numeric && p.text == ""
}

// Amount returns the canonical numeric amount for arithmetic.
// String prices are reduced to their digits, decimal point, and sign before
// parsing. A price with no numeric content returns ErrInvalidPrice.
func (p Price) Amount() (decimal.Decimal, error) {
	if p.numeric {
		return p.amount, nil
	}

	stripped := stripNonNumeric(p.text)
	if stripped == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, p.text)
	}

	amount, err := decimal.NewFromString(stripped)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, p.text)
	}

	return amount, nil
}

// Display returns the string to render. Numeric prices get the currency
// symbol prepended; string prices pass through unchanged (assumed to be
// pre-formatted upstream).
func (p Price) Display() string {
	if p.numeric {
		return CurrencySymbol + p.amount.String()
	}
	return p.text
}

// MarshalJSON emits the price in its original representation.
func (p Price) MarshalJSON() ([]byte, error) {
	if p.numeric {
		return []byte(p.amount.String()), nil
	}
	return json.Marshal(p.text)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (p *Price) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*p = Price{}
		return nil
	}

	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("failed to parse price string: %w", err)
		}
		*p = FromString(text)
		return nil
	}

	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return fmt.Errorf("failed to parse price number: %w", err)
	}
	*p = FromDecimal(amount)
	return nil
}

// stripNonNumeric drops every character that is not a digit, a decimal point,
// or a minus sign. "$1,699" becomes "1699", "N/A" becomes "".
func stripNonNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
