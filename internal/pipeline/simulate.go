// backend-go/internal/pipeline/simulate.go
package pipeline

import (
	"math"
	"math/rand"

	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/domain"
)

// Simulator produces perturbed copies of the input tables for what-if runs.
// It carries its own random source rather than touching the global generator,
// so fixing the seed makes scenario comparisons reproducible.
type Simulator struct {
	rng *rand.Rand
}

// NewSimulator builds a simulator around the given source.
func NewSimulator(src rand.Source) *Simulator {
	return &Simulator{rng: rand.New(src)}
}

// NewSeededSimulator is a convenience for the common fixed-seed case.
func NewSeededSimulator(seed int64) *Simulator {
	return NewSimulator(rand.NewSource(seed))
}

// PerturbDemand changes aggregate order volume by roughly pct. Growth
// duplicates randomly sampled orders (with replacement, capped at doubling);
// shrinkage keeps a random subset, never fewer than one order. The sampling
// is uniform over rows, not stratified by category, so only the aggregate
// volume shift is guaranteed. pct == 0 returns an unmodified copy.
func (s *Simulator) PerturbDemand(orders []domain.OrderRecord, pct float64) []domain.OrderRecord {
	out := make([]domain.OrderRecord, len(orders))
	copy(out, orders)

	if pct == 0 || len(orders) == 0 {
		return out
	}

	n := len(orders)
	change := int(math.Round(math.Abs(pct) * float64(n)))

	if pct > 0 {
		extra := change
		if extra > n {
			extra = n
		}
		for i := 0; i < extra; i++ {
			out = append(out, orders[s.rng.Intn(n)])
		}
		return out
	}

	keep := n - change
	if keep < 1 {
		keep = 1
	}
	s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out[:keep]
}

// PerturbCost scales every row's storage cost by (1 + pct). No floor is
// applied: a pct below -1 drives costs negative, which the validator flags if
// the result is fed back through validation. The shipped flow does not
// re-validate simulated tables automatically.
func (s *Simulator) PerturbCost(warehouse []domain.WarehouseRecord, pct float64) []domain.WarehouseRecord {
	out := make([]domain.WarehouseRecord, len(warehouse))
	copy(out, warehouse)

	if pct == 0 {
		return out
	}
	for i := range out {
		out[i].StorageCostPerUnit *= 1 + pct
	}
	return out
}
