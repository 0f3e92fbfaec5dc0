// backend-go/internal/pipeline/metrics.go
package pipeline

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/domain"
)

// ErrNoPressureRows is returned when the summarizer is handed an empty
// pressure table. The shortage percentage is undefined there; callers guard
// and surface the condition instead of getting a silent zero.
var ErrNoPressureRows = errors.New("no pressure rows to summarize")

const topRiskCategoryCount = 3

// SummarizeMetrics derives the aggregate KPIs from a pressure table. The
// potential cost saving re-runs the greedy recommender over the same rows, so
// it always reflects the recommendations a caller would get for this table.
func SummarizeMetrics(pressure []domain.PressureRow) (domain.MetricsSummary, error) {
	if len(pressure) == 0 {
		return domain.MetricsSummary{}, ErrNoPressureRows
	}

	warehouses := make(map[string]struct{})
	spis := make([]float64, 0, len(pressure))
	shortages := 0
	for _, row := range pressure {
		warehouses[row.WarehouseID] = struct{}{}
		spis = append(spis, row.SPI)
		if row.SPI < 0 {
			shortages++
		}
	}

	totalSKUs := len(pressure)
	shortagePct := round2(100 * float64(shortages) / float64(totalSKUs))

	saving := decimal.Zero
	for _, rec := range RecommendTransfers(pressure) {
		saving = saving.Add(decimal.NewFromFloat(rec.EstimatedSavingINR))
	}

	return domain.MetricsSummary{
		TotalWarehouses:     len(warehouses),
		TotalSKUs:           totalSKUs,
		ShortagePercentage:  shortagePct,
		AverageSPI:          round2(stat.Mean(spis, nil)),
		PotentialCostSaving: saving.Round(2).InexactFloat64(),
		TopRiskCategories:   topRiskCategories(pressure),
	}, nil
}

// topRiskCategories groups rows by category, keeps each category's worst SPI
// and returns the three most negative, worst first. The sort is stable so
// ties keep the category first-encounter order.
func topRiskCategories(pressure []domain.PressureRow) []domain.CategoryRisk {
	worst := make(map[string]float64)
	order := make([]string, 0)
	for _, row := range pressure {
		if cur, seen := worst[row.ProductCategory]; !seen || row.SPI < cur {
			if !seen {
				order = append(order, row.ProductCategory)
			}
			worst[row.ProductCategory] = row.SPI
		}
	}

	risks := make([]domain.CategoryRisk, 0, len(order))
	for _, category := range order {
		risks = append(risks, domain.CategoryRisk{ProductCategory: category, SPI: worst[category]})
	}
	sort.SliceStable(risks, func(i, j int) bool { return risks[i].SPI < risks[j].SPI })

	if len(risks) > topRiskCategoryCount {
		risks = risks[:topRiskCategoryCount]
	}
	return risks
}
