package picking

import "github.com/smartpick/picklist/internal/types"

// MultiItemSelector decides whether an order line belongs on the
// multiple-quantity list.
//
// Lines whose product SKU is on the allow-list are "selectable count"
// listings: one order unit already bundles several sellable units, so the
// unit count is what matters. Every other line is judged by the raw order
// quantity.
type MultiItemSelector struct {
	allow map[string]struct{}
}

// NewMultiItemSelector copies skus into a fixed allow-list. Matching is exact.
func NewMultiItemSelector(skus []string) *MultiItemSelector {
	allow := make(map[string]struct{}, len(skus))
	for _, s := range skus {
		if s != "" {
			allow[s] = struct{}{}
		}
	}
	return &MultiItemSelector{allow: allow}
}

// Allowed reports whether sku is on the allow-list.
func (s *MultiItemSelector) Allowed(sku string) bool {
	if sku == "" {
		return false
	}
	_, ok := s.allow[sku]
	return ok
}

// IsMultiQuantity classifies one line.
func (s *MultiItemSelector) IsMultiQuantity(item types.OrderLineItem, resolved ResolvedIdentity) bool {
	if s.Allowed(item.ProductSKU) {
		return resolved.SingleUnitCount >= 2
	}
	return ParseQuantity(item.OrderQuantity) >= 2
}
