// backend-go/internal/pipeline/demand.go

// Package pipeline holds the analytical core: demand aggregation, stock
// pressure computation, transfer recommendation and metrics. Every stage is a
// pure function over in-memory tables; nothing is mutated in place and each
// run is independent of the last.
package pipeline

import (
	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/domain"
)

type demandKey struct {
	Origin   string
	Category string
}

// AggregateDemand counts orders per (Origin, Product_Category) pair. The
// count covers the whole input window; the order dates are parsed at
// ingestion but do not filter or bucket anything here. Empty input yields an
// empty set, not an error.
func AggregateDemand(orders []domain.OrderRecord) []domain.DemandRow {
	counts := make(map[demandKey]int, len(orders))
	// Preserve first-encounter order so output is deterministic for a fixed
	// input ordering.
	keys := make([]demandKey, 0, len(orders))

	for _, o := range orders {
		key := demandKey{Origin: o.Origin, Category: o.ProductCategory}
		if _, seen := counts[key]; !seen {
			keys = append(keys, key)
		}
		counts[key]++
	}

	demand := make([]domain.DemandRow, 0, len(keys))
	for _, key := range keys {
		demand = append(demand, domain.DemandRow{
			Origin:          key.Origin,
			ProductCategory: key.Category,
			MonthlyDemand:   counts[key],
		})
	}
	return demand
}
