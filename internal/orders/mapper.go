package orders

import (
	"github.com/smartpick/picklist/internal/config"
	"github.com/smartpick/picklist/internal/csvparser"
	"github.com/smartpick/picklist/internal/types"
)

// FromCSV maps parsed export rows to order lines using the profile's header
// names. Headers missing from the export leave the field empty. A nil
// normalizer applies no rules.
func FromCSV(data *csvparser.CSVData, cols config.OrderColumns, norm *Normalizer) []types.OrderLineItem {
	items := make([]types.OrderLineItem, 0, len(data.Rows))
	for i, row := range data.Rows {
		item := types.OrderLineItem{
			OrderID:             row[cols.OrderID],
			GroupID:             row[cols.GroupID],
			OrderedAt:           row[cols.OrderedAt],
			ShippingMethod:      row[cols.ShippingMethod],
			CheckNote:           row[cols.CheckNote],
			Store:               row[cols.Store],
			TrackingNumber:      row[cols.TrackingNumber],
			PostalCode:          row[cols.PostalCode],
			Address:             row[cols.Address],
			RecipientName:       row[cols.RecipientName],
			BuyerName:           row[cols.BuyerName],
			TotalAmount:         row[cols.TotalAmount],
			ProductURL:          row[cols.ProductURL],
			ProductName:         row[cols.ProductName],
			OrderQuantity:       row[cols.OrderQuantity],
			JANCode:             row[cols.JANCode],
			ProductCode:         row[cols.ProductCode],
			SKUManagementNumber: row[cols.SKUManagementNumber],
			ProductSKU:          row[cols.ProductSKU],
		}
		if i < len(data.RowNumbers) {
			item.SourceRow = data.RowNumbers[i]
		}
		norm.Apply(&item)
		items = append(items, item)
	}
	return items
}

// RequiredColumns are the headers without which no line can be picked.
func RequiredColumns(cols config.OrderColumns) []string {
	return []string{cols.ProductSKU, cols.OrderQuantity}
}

// MissingColumns returns the required headers absent from data.
func MissingColumns(data *csvparser.CSVData, cols config.OrderColumns) []string {
	var missing []string
	for _, h := range RequiredColumns(cols) {
		if !data.HasHeader(h) {
			missing = append(missing, h)
		}
	}
	return missing
}
