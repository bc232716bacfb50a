// =============================================================================
// smartpick - Order Field Normalization
// =============================================================================
//
// Shop exports are typed in by hand more often than one would like: SKUs with
// full-width letters, trailing blanks, codes that were renamed in one shop but
// not in the others. Normalization rules fix such values per profile before
// the lines reach the picking engine.
//
// ACTION TYPES:
//   trim, uppercase, lowercase, narrow, replace, lookup, default
//
// =============================================================================

package orders

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"

	"github.com/smartpick/picklist/internal/config"
	"github.com/smartpick/picklist/internal/types"
)

// Normalizer applies a profile's normalization rules to order lines.
type Normalizer struct {
	rules []config.NormalizationRule
}

// NewNormalizer checks every rule and returns a normalizer for them.
//
// RETURNS:
//   - An error naming the first unknown field or action type.
func NewNormalizer(rules []config.NormalizationRule) (*Normalizer, error) {
	var probe types.OrderLineItem
	for _, rule := range rules {
		if fieldRef(&probe, rule.Field) == nil {
			return nil, fmt.Errorf("normalization rule: unknown field %q", rule.Field)
		}
		for _, action := range rule.Actions {
			if !knownAction(action.Type) {
				return nil, fmt.Errorf("normalization rule for %s: unknown action type %q", rule.Field, action.Type)
			}
		}
	}
	return &Normalizer{rules: rules}, nil
}

// Apply normalizes item in place.
func (n *Normalizer) Apply(item *types.OrderLineItem) {
	if n == nil {
		return
	}
	for _, rule := range n.rules {
		ref := fieldRef(item, rule.Field)
		if ref == nil {
			continue
		}
		value := *ref
		for _, action := range rule.Actions {
			value = applyAction(value, action)
		}
		*ref = value
	}
}

func knownAction(t string) bool {
	switch t {
	case "trim", "uppercase", "lowercase", "narrow", "replace", "lookup", "default":
		return true
	}
	return false
}

// applyAction applies a single action to a value.
func applyAction(value string, action config.NormalizationAction) string {
	switch action.Type {
	case "trim":
		return strings.TrimSpace(value)

	case "uppercase":
		return strings.ToUpper(value)

	case "lowercase":
		return strings.ToLower(value)

	case "narrow":
		// "ＳＫＵ－０１" → "SKU-01"; half-width katakana is widened.
		return width.Fold.String(value)

	case "replace":
		if action.Find == "" {
			return value
		}
		return strings.ReplaceAll(value, action.Find, action.Value)

	case "lookup":
		if replacement, ok := action.LookupTable[value]; ok {
			return replacement
		}
		return value

	case "default":
		if strings.TrimSpace(value) == "" {
			return action.Value
		}
		return value

	default:
		return value
	}
}

// fieldRef returns a pointer to the field of item named by its profile key,
// or nil for unknown keys.
func fieldRef(item *types.OrderLineItem, key string) *string {
	switch key {
	case "order_id":
		return &item.OrderID
	case "group_id":
		return &item.GroupID
	case "ordered_at":
		return &item.OrderedAt
	case "shipping_method":
		return &item.ShippingMethod
	case "check_note":
		return &item.CheckNote
	case "store":
		return &item.Store
	case "tracking_number":
		return &item.TrackingNumber
	case "postal_code":
		return &item.PostalCode
	case "address":
		return &item.Address
	case "recipient_name":
		return &item.RecipientName
	case "buyer_name":
		return &item.BuyerName
	case "total_amount":
		return &item.TotalAmount
	case "product_url":
		return &item.ProductURL
	case "product_name":
		return &item.ProductName
	case "order_quantity":
		return &item.OrderQuantity
	case "jan_code":
		return &item.JANCode
	case "product_code":
		return &item.ProductCode
	case "sku_management_number":
		return &item.SKUManagementNumber
	case "product_sku":
		return &item.ProductSKU
	default:
		return nil
	}
}
