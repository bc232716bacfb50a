package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregatorMerge(t *testing.T) {
	agg := NewAggregator()

	assert.True(t, agg.Add(ResolvedIdentity{JAN: "J1", ProductName: "first", OrderQuantity: 1, SingleUnitCount: 2}))
	assert.True(t, agg.Add(ResolvedIdentity{JAN: "J2", ProductName: "other", OrderQuantity: 1, SingleUnitCount: 1}))
	assert.True(t, agg.Add(ResolvedIdentity{JAN: "J1", ProductName: "second", OrderQuantity: 3, SingleUnitCount: 6}))

	rows := agg.Rows()
	require.Len(t, rows, 2)

	assert.Equal(t, "J1", rows[0].JAN)
	assert.Equal(t, "first", rows[0].ProductName)
	assert.Equal(t, 4, rows[0].OrderQuantity)
	assert.Equal(t, 8, rows[0].SingleUnitCount)
	assert.True(t, rows[0].HasParentQuantity)
	assert.Zero(t, rows[0].ParentQuantity)

	assert.Equal(t, "J2", rows[1].JAN)
	assert.False(t, rows[1].HasParentQuantity)
}

func TestAggregatorKeysByNameWithoutJAN(t *testing.T) {
	agg := NewAggregator()
	agg.Add(ResolvedIdentity{ProductName: "名無し", OrderQuantity: 1, SingleUnitCount: 1})
	agg.Add(ResolvedIdentity{ProductName: "名無し", OrderQuantity: 2, SingleUnitCount: 2})

	require.Equal(t, 1, agg.Len())
	assert.Equal(t, 3, agg.Rows()[0].OrderQuantity)
}

func TestAggregatorSkipsZeroQuantity(t *testing.T) {
	agg := NewAggregator()
	assert.False(t, agg.Add(ResolvedIdentity{JAN: "J1", ProductName: "x"}))
	assert.Zero(t, agg.Len())
}

func TestAggregatorSetRow(t *testing.T) {
	agg := NewAggregator()
	agg.Add(ResolvedIdentity{JAN: "J1", ParentJAN: "P1", HasParent: true, OrderQuantity: 2, SingleUnitCount: 2, ParentQuantity: 6})
	agg.Add(ResolvedIdentity{JAN: "J1", ParentJAN: "P1", HasParent: true, OrderQuantity: 1, SingleUnitCount: 1, ParentQuantity: 3})

	rows := agg.Rows()
	require.Len(t, rows, 1)
	assert.True(t, rows[0].IsSet())
	assert.Equal(t, 9, rows[0].ParentQuantity)
	assert.Equal(t, 3, agg.TotalSingleUnits())
}

func TestTotalSingleUnits(t *testing.T) {
	rows := []PickingAggregateRow{
		{JAN: "J1", OrderQuantity: 2, SingleUnitCount: 6},
		{JAN: "J2", ParentJAN: "P2", OrderQuantity: 3, SingleUnitCount: 9},
		{JAN: "J3", ParentJAN: "   ", OrderQuantity: 1, SingleUnitCount: 4},
	}

	// 6 + 3 + 4: a blank parent JAN is not a set
	assert.Equal(t, 13, TotalSingleUnits(rows))
	assert.Zero(t, TotalSingleUnits(nil))
}

func TestAggregatorRowsIsACopy(t *testing.T) {
	agg := NewAggregator()
	agg.Add(ResolvedIdentity{JAN: "J1", OrderQuantity: 1, SingleUnitCount: 1})

	rows := agg.Rows()
	rows[0].OrderQuantity = 100

	assert.Equal(t, 1, agg.Rows()[0].OrderQuantity)
}
