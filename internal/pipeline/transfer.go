// backend-go/internal/pipeline/transfer.go
package pipeline

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/domain"
)

// MatchingStrategy pairs shortage rows with surplus donors. Implementations
// must be deterministic for a fixed input order so repeated runs over the
// same tables produce identical recommendations.
type MatchingStrategy interface {
	Name() string
	Match(pressure []domain.PressureRow) []domain.TransferRecommendation
}

// GreedyMatcher is the shipped strategy: for each shortage row it picks the
// single donor with the highest surplus in the same category.
//
// Known approximation: a donor's surplus is NOT decremented once matched, so
// the same donor can be recommended to several receivers in one run and the
// combined recommended units can exceed what it actually holds. Downstream
// consumers compare rows, they do not execute the whole plan at once, so this
// is kept as-is; an exact allocation strategy can be swapped in through
// MatchingStrategy without changing the recommendation shape.
type GreedyMatcher struct{}

func NewGreedyMatcher() *GreedyMatcher {
	return &GreedyMatcher{}
}

func (m *GreedyMatcher) Name() string { return "greedy_best_donor" }

// Match emits at most one recommendation per shortage row, in the order the
// shortage rows appear in the pressure table. Shortage rows with no surplus
// donor in their category are skipped; partial coverage is expected.
func (m *GreedyMatcher) Match(pressure []domain.PressureRow) []domain.TransferRecommendation {
	var surplus []domain.PressureRow
	for _, row := range pressure {
		if row.SPI > 0 {
			surplus = append(surplus, row)
		}
	}

	var recs []domain.TransferRecommendation
	for _, receiver := range pressure {
		if receiver.SPI >= 0 {
			continue
		}

		donor, ok := bestDonor(surplus, receiver.ProductCategory)
		if !ok {
			continue
		}

		// Fractional SPI truncates to whole transferable units.
		units := int(math.Min(math.Abs(receiver.SPI), donor.SPI))

		saving := decimal.NewFromInt(int64(units)).
			Mul(decimal.NewFromFloat(donor.StorageCostPerUnit).
				Sub(decimal.NewFromFloat(receiver.StorageCostPerUnit))).
			Round(2)

		recs = append(recs, domain.TransferRecommendation{
			ProductCategory:    receiver.ProductCategory,
			FromWarehouse:      donor.WarehouseID,
			FromLocation:       donor.Location,
			ToWarehouse:        receiver.WarehouseID,
			ToLocation:         receiver.Location,
			Units:              units,
			EstimatedSavingINR: saving.InexactFloat64(),
			DonorSPI:           round2(donor.SPI),
			ReceiverSPI:        round2(receiver.SPI),
		})
	}
	return recs
}

// bestDonor picks the surplus row with the maximum SPI for the category.
// Ties go to the earlier row so the choice is stable.
func bestDonor(surplus []domain.PressureRow, category string) (domain.PressureRow, bool) {
	var best domain.PressureRow
	found := false
	for _, row := range surplus {
		if row.ProductCategory != category {
			continue
		}
		if !found || row.SPI > best.SPI {
			best = row
			found = true
		}
	}
	return best, found
}

// RecommendTransfers runs the default greedy strategy over a pressure table.
func RecommendTransfers(pressure []domain.PressureRow) []domain.TransferRecommendation {
	return NewGreedyMatcher().Match(pressure)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
