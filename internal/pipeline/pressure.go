// backend-go/internal/pipeline/pressure.go
package pipeline

import (
	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/domain"
)

// ComputePressure left-joins warehouse rows with demand on
// (Location=Origin, Product_Category) and computes the Stock Pressure Index:
//
//	SPI = (Current_Stock_Units - Reorder_Level) - Monthly_Demand
//
// The warehouse table drives the join, so the output has exactly one row per
// warehouse row. A (location, category) pair with no observed orders gets
// Monthly_Demand = 0 by policy; missing demand is not an error.
func ComputePressure(warehouse []domain.WarehouseRecord, demand []domain.DemandRow) []domain.PressureRow {
	lookup := make(map[demandKey]int, len(demand))
	for _, d := range demand {
		lookup[demandKey{Origin: d.Origin, Category: d.ProductCategory}] = d.MonthlyDemand
	}

	pressure := make([]domain.PressureRow, 0, len(warehouse))
	for _, w := range warehouse {
		monthly := lookup[demandKey{Origin: w.Location, Category: w.ProductCategory}]
		pressure = append(pressure, domain.PressureRow{
			WarehouseRecord: w,
			MonthlyDemand:   monthly,
			SPI:             (float64(w.CurrentStockUnits) - w.ReorderLevel) - float64(monthly),
		})
	}
	return pressure
}
