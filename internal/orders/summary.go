package orders

import (
	"strings"

	"github.com/smartpick/picklist/internal/types"
)

// Summary is the header block printed above the picking list.
type Summary struct {
	// OrderCount is the number of distinct non-blank group IDs.
	OrderCount int

	// ShippingMethod is taken from the first line.
	ShippingMethod string

	// ShippingNotes are the distinct non-blank check notes, trimmed, in
	// first-seen order.
	ShippingNotes []string

	LineCount int
}

// Summarize computes the summary of one order file.
func Summarize(items []types.OrderLineItem) Summary {
	s := Summary{LineCount: len(items)}
	if len(items) > 0 {
		s.ShippingMethod = items[0].ShippingMethod
	}

	groups := make(map[string]struct{})
	notes := make(map[string]struct{})
	for _, item := range items {
		if strings.TrimSpace(item.GroupID) != "" {
			groups[item.GroupID] = struct{}{}
		}
		if note := strings.TrimSpace(item.CheckNote); note != "" {
			if _, seen := notes[note]; !seen {
				notes[note] = struct{}{}
				s.ShippingNotes = append(s.ShippingNotes, note)
			}
		}
	}
	s.OrderCount = len(groups)
	return s
}
