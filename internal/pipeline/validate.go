// backend-go/internal/pipeline/validate.go
package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/dataset"
)

// Validate checks the two raw input tables for required columns and basic
// value-domain constraints. All findings are accumulated and returned
// together; the call itself never fails. Callers must check valid before
// invoking any pipeline stage, since stages are undefined on invalid tables.
//
// Deliberately unchecked, matching the shipped behavior: Reorder_Level sign,
// Order_Value_INR sign, date parseability (the decoder owns that),
// Location/Origin referential integrity and duplicate warehouse rows.
func Validate(warehouse, orders *dataset.Table) (bool, []string) {
	var errs []string

	if missing := warehouse.MissingColumns(dataset.WarehouseColumns); len(missing) > 0 {
		errs = append(errs, fmt.Sprintf("Missing warehouse columns: %s", strings.Join(missing, ", ")))
	}
	if missing := orders.MissingColumns(dataset.OrderColumns); len(missing) > 0 {
		errs = append(errs, fmt.Sprintf("Missing orders columns: %s", strings.Join(missing, ", ")))
	}

	// Value checks only run when the column exists; its absence is already
	// reported above.
	if hasNegativeValues(warehouse, "Current_Stock_Units") {
		errs = append(errs, "Negative stock units found in warehouse data")
	}
	if hasNegativeValues(warehouse, "Storage_Cost_per_Unit") {
		errs = append(errs, "Negative storage costs found in warehouse data")
	}

	return len(errs) == 0, errs
}

func hasNegativeValues(t *dataset.Table, column string) bool {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return false
	}
	for _, record := range t.Records {
		raw := t.Field(record, idx)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			continue
		}
		if v < 0 {
			return true
		}
	}
	return false
}
