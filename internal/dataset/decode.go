// backend-go/internal/dataset/decode.go
package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/domain"
)

// Required columns for the two input tables. The validator and the decoders
// share these so their idea of the schema cannot drift apart.
var (
	WarehouseColumns = []string{
		"Warehouse_ID", "Location", "Product_Category",
		"Current_Stock_Units", "Reorder_Level", "Storage_Cost_per_Unit",
	}
	OrderColumns = []string{
		"Order_ID", "Order_Date", "Origin", "Product_Category", "Order_Value_INR",
	}
)

// Order dates arrive in a handful of layouts depending on the export tool.
var orderDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	time.RFC3339,
}

// DecodeWarehouse converts a raw table into typed warehouse records. It fails
// on a missing required column rather than silently zero-filling, so callers
// that skip validation still fail loudly instead of computing on nulls.
func DecodeWarehouse(t *Table) ([]domain.WarehouseRecord, error) {
	if missing := t.MissingColumns(WarehouseColumns); len(missing) > 0 {
		return nil, fmt.Errorf("warehouse table missing columns: %s", strings.Join(missing, ", "))
	}

	idxID := t.ColumnIndex("Warehouse_ID")
	idxLocation := t.ColumnIndex("Location")
	idxCategory := t.ColumnIndex("Product_Category")
	idxStock := t.ColumnIndex("Current_Stock_Units")
	idxReorder := t.ColumnIndex("Reorder_Level")
	idxCost := t.ColumnIndex("Storage_Cost_per_Unit")

	records := make([]domain.WarehouseRecord, 0, len(t.Records))
	for i, raw := range t.Records {
		stock, err := parseInt(t.Field(raw, idxStock))
		if err != nil {
			return nil, fmt.Errorf("warehouse row %d: Current_Stock_Units: %w", i+1, err)
		}
		reorder, err := parseFloat(t.Field(raw, idxReorder))
		if err != nil {
			return nil, fmt.Errorf("warehouse row %d: Reorder_Level: %w", i+1, err)
		}
		cost, err := parseFloat(t.Field(raw, idxCost))
		if err != nil {
			return nil, fmt.Errorf("warehouse row %d: Storage_Cost_per_Unit: %w", i+1, err)
		}

		records = append(records, domain.WarehouseRecord{
			WarehouseID:        t.Field(raw, idxID),
			Location:           t.Field(raw, idxLocation),
			ProductCategory:    t.Field(raw, idxCategory),
			CurrentStockUnits:  stock,
			ReorderLevel:       reorder,
			StorageCostPerUnit: cost,
		})
	}

	return records, nil
}

// DecodeOrders converts a raw table into typed order records. Order_Date is
// parsed into a calendar date here, at ingestion; a malformed date is a
// decode error, not a deferred failure somewhere downstream.
func DecodeOrders(t *Table) ([]domain.OrderRecord, error) {
	if missing := t.MissingColumns(OrderColumns); len(missing) > 0 {
		return nil, fmt.Errorf("orders table missing columns: %s", strings.Join(missing, ", "))
	}

	idxID := t.ColumnIndex("Order_ID")
	idxDate := t.ColumnIndex("Order_Date")
	idxOrigin := t.ColumnIndex("Origin")
	idxCategory := t.ColumnIndex("Product_Category")
	idxValue := t.ColumnIndex("Order_Value_INR")

	records := make([]domain.OrderRecord, 0, len(t.Records))
	for i, raw := range t.Records {
		date, err := parseOrderDate(t.Field(raw, idxDate))
		if err != nil {
			return nil, fmt.Errorf("orders row %d: Order_Date: %w", i+1, err)
		}
		value, err := parseFloat(t.Field(raw, idxValue))
		if err != nil {
			return nil, fmt.Errorf("orders row %d: Order_Value_INR: %w", i+1, err)
		}

		records = append(records, domain.OrderRecord{
			OrderID:         t.Field(raw, idxID),
			OrderDate:       date,
			Origin:          t.Field(raw, idxOrigin),
			ProductCategory: t.Field(raw, idxCategory),
			OrderValueINR:   value,
		})
	}

	return records, nil
}

func parseOrderDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range orderDateLayouts {
		if d, err := time.Parse(layout, v); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", v)
}

func parseFloat(v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	// Exports sometimes carry thousands separators.
	v = strings.ReplaceAll(v, ",", "")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", v)
	}
	return f, nil
}

func parseInt(v string) (int, error) {
	f, err := parseFloat(v)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
