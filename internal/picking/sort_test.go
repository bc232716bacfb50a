package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortByProductName(t *testing.T) {
	rows := []PickingAggregateRow{
		{JAN: "1", ProductName: "りんご"},
		{JAN: "2", ProductName: "あめ"},
		{JAN: "3", ProductName: "かき"},
		{JAN: "4", ProductName: "あめ"},
	}

	sorted := SortByProductName(rows)

	var jans []string
	for _, r := range sorted {
		jans = append(jans, r.JAN)
	}
	assert.Equal(t, []string{"2", "4", "3", "1"}, jans)

	// input order untouched
	assert.Equal(t, "りんご", rows[0].ProductName)
}
