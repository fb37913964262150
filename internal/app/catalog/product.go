// Package catalog talks to the upstream catalog collaborator and tracks
// batch-based pagination state for a browsing session.
package catalog

import (
	"github.com/light-bringer/storefront-service/internal/app/pricing"
)

// Product is a read-only record from the catalog collaborator. Beyond the id
// and price, fields are opaque display data passed through untouched. The
// list view populates imageUrl; the detail view populates imageUrls.
type Product struct {
	ProductID        string        `json:"productId"`
	Price            pricing.Price `json:"price"`
	ImageURL         string        `json:"imageUrl,omitempty"`
	ImageURLs        []string      `json:"imageUrls,omitempty"`
	ShortDescription string        `json:"shortDescription,omitempty"`
	LongDescription  string        `json:"longDescription,omitempty"`
	ScreenSize       string        `json:"screenSize,omitempty"`
	Weight           string        `json:"weight,omitempty"`
	BatterySpec      string        `json:"batterySpec,omitempty"`
}

// CartImage picks the single image reference snapshotted into the cart:
// the list image when present, otherwise the first detail image.
func (p Product) CartImage() string {
	if p.ImageURL != "" {
		return p.ImageURL
	}
	if len(p.ImageURLs) > 0 {
		return p.ImageURLs[0]
	}
	return ""
}

// Batch is one page of catalog products identified by a sequential integer.
type Batch struct {
	Products     []Product `json:"products"`
	MoreProducts bool      `json:"moreProducts"`
}
