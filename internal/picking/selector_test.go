package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiItemSelector(t *testing.T) {
	s := NewMultiItemSelector([]string{"b00vgpkw10-3", ""})

	assert.True(t, s.Allowed("b00vgpkw10-3"))
	assert.False(t, s.Allowed("B00VGPKW10-3"))
	assert.False(t, s.Allowed(""))

	tests := []struct {
		name     string
		sku      string
		qty      string
		units    int
		expected bool
	}{
		{"allow-listed by units", "b00vgpkw10-3", "1", 3, true},
		{"allow-listed single unit", "b00vgpkw10-3", "1", 1, false},
		{"plain quantity two", "OTHER", "2", 2, true},
		{"plain quantity one with many units", "OTHER", "1", 6, false},
		{"plain unparseable", "OTHER", "x", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := orderLine(tt.sku, tt.qty)
			got := s.IsMultiQuantity(item, ResolvedIdentity{SingleUnitCount: tt.units})
			assert.Equal(t, tt.expected, got)
		})
	}
}
