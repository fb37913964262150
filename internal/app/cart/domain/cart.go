package domain

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/storefront-service/internal/app/pricing"
)

// SchemaVersion is stamped on every persisted cart so that future layout
// changes can be migrated instead of silently misread.
const SchemaVersion = 1

// Snapshot is the slice of product data captured at add-to-cart time.
// It is immune to later catalog changes: the price and image a customer saw
// when adding are the price and image the cart keeps showing.
type Snapshot struct {
	ProductID string        `json:"productId"`
	Price     pricing.Price `json:"price"`
	Image     string        `json:"image,omitempty"`
}

// Line is one persisted cart entry: a product snapshot plus the accumulated
// quantity. Quantity is always >= 1; a line that would drop to zero is
// removed from the cart instead.
type Line struct {
	ProductID string        `json:"productId"`
	Price     pricing.Price `json:"price"`
	Image     string        `json:"image,omitempty"`
	Quantity  int64         `json:"quantity"`
}

// Cart is the aggregate root for one session's shopping cart.
// It holds at most one line per product id.
type Cart struct {
	sessionID string
	lines     map[string]*Line
}

// NewCart creates an empty cart for a session.
func NewCart(sessionID string) *Cart {
	return &Cart{
		sessionID: sessionID,
		lines:     make(map[string]*Line),
	}
}

// ReconstructCart reconstitutes a cart from storage.
func ReconstructCart(sessionID string, lines map[string]Line) *Cart {
	c := NewCart(sessionID)
	for id, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		copied := line
		c.lines[id] = &copied
	}
	return c
}

// SessionID returns the owning session id.
func (c *Cart) SessionID() string {
	return c.sessionID
}

// AddItem adds one unit of the product to the cart. On the first add a new
// line is created from the snapshot; on repeat adds only the quantity grows,
// the original snapshot wins.
func (c *Cart) AddItem(snap Snapshot) error {
	if snap.ProductID == "" {
		return ErrEmptyProductID
	}

	if line, ok := c.lines[snap.ProductID]; ok {
		line.Quantity++
		return nil
	}

	c.lines[snap.ProductID] = &Line{
		ProductID: snap.ProductID,
		Price:     snap.Price,
		Image:     snap.Image,
		Quantity:  1,
	}
	return nil
}

// ChangeQuantity adjusts a line's quantity by delta. A line dropping to zero
// or below is removed entirely. Returns false when the product has no line,
// which callers treat as a no-op rather than an error.
func (c *Cart) ChangeQuantity(productID string, delta int64) bool {
	line, ok := c.lines[productID]
	if !ok {
		return false
	}

	newQuantity := line.Quantity + delta
	if newQuantity <= 0 {
		delete(c.lines, productID)
		return true
	}

	line.Quantity = newQuantity
	return true
}

// Line returns the line for a product id.
func (c *Cart) Line(productID string) (Line, bool) {
	line, ok := c.lines[productID]
	if !ok {
		return Line{}, false
	}
	return *line, true
}

// Lines returns all lines ordered by product id for stable rendering.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ProductID < out[j].ProductID
	})
	return out
}

// LineMap returns the productId -> line mapping for persistence.
func (c *Cart) LineMap() map[string]Line {
	out := make(map[string]Line, len(c.lines))
	for id, line := range c.lines {
		out[id] = *line
	}
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear removes every line.
func (c *Cart) Clear() {
	c.lines = make(map[string]*Line)
}

// Total sums price * quantity across all lines and rounds to a whole
// currency unit. Lines whose snapshot price cannot be parsed contribute
// nothing; bad upstream data must not take down the cart view.
func (c *Cart) Total() int64 {
	sum := decimal.Zero
	for _, line := range c.lines {
		amount, err := line.Price.Amount()
		if err != nil {
			continue
		}
		sum = sum.Add(amount.Mul(decimal.NewFromInt(line.Quantity)))
	}
	return sum.Round(0).IntPart()
}
