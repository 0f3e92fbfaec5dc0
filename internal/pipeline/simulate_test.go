package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/domain"
)

func TestPerturbDemand_ZeroPctIsNoop(t *testing.T) {
	orders := makeOrders("Mumbai", "Electronics", 10)

	sim := NewSeededSimulator(1)
	got := sim.PerturbDemand(orders, 0)
	assert.Equal(t, orders, got)
}

func TestPerturbDemand_GrowthAppendsSampledOrders(t *testing.T) {
	orders := append(
		makeOrders("Mumbai", "Electronics", 80),
		makeOrders("Delhi", "Textiles", 20)...)

	sim := NewSeededSimulator(7)
	got := sim.PerturbDemand(orders, 0.25)

	assert.Len(t, got, 125)
	// The original rows survive untouched at the front.
	assert.Equal(t, orders, got[:100])
	// Appended rows are duplicates of existing ones.
	seen := make(map[string]bool)
	for _, o := range orders {
		seen[o.Origin+"|"+o.ProductCategory] = true
	}
	for _, o := range got[100:] {
		assert.True(t, seen[o.Origin+"|"+o.ProductCategory])
	}
}

func TestPerturbDemand_GrowthCapsAtDoubling(t *testing.T) {
	orders := makeOrders("Mumbai", "Electronics", 10)

	sim := NewSeededSimulator(3)
	got := sim.PerturbDemand(orders, 5.0)
	assert.Len(t, got, 20)
}

func TestPerturbDemand_ShrinkDiscardsOrders(t *testing.T) {
	orders := makeOrders("Mumbai", "Electronics", 100)

	sim := NewSeededSimulator(11)
	got := sim.PerturbDemand(orders, -0.3)
	assert.Len(t, got, 70)
}

func TestPerturbDemand_ShrinkKeepsAtLeastOneOrder(t *testing.T) {
	orders := makeOrders("Mumbai", "Electronics", 4)

	sim := NewSeededSimulator(5)
	got := sim.PerturbDemand(orders, -1.0)
	assert.Len(t, got, 1)
}

func TestPerturbDemand_DoesNotMutateInput(t *testing.T) {
	orders := makeOrders("Mumbai", "Electronics", 50)
	before := make([]domain.OrderRecord, len(orders))
	copy(before, orders)

	sim := NewSeededSimulator(9)
	sim.PerturbDemand(orders, -0.5)
	sim.PerturbDemand(orders, 0.5)
	assert.Equal(t, before, orders)
}

func TestPerturbDemand_SeededRunsAreReproducible(t *testing.T) {
	orders := append(
		makeOrders("Mumbai", "Electronics", 60),
		makeOrders("Delhi", "Textiles", 40)...)

	first := NewSeededSimulator(42).PerturbDemand(orders, 0.2)
	second := NewSeededSimulator(42).PerturbDemand(orders, 0.2)
	assert.Equal(t, first, second)
}

func TestPerturbCost(t *testing.T) {
	warehouse := []domain.WarehouseRecord{
		{WarehouseID: "W001", StorageCostPerUnit: 20},
		{WarehouseID: "W002", StorageCostPerUnit: 50},
	}

	tests := []struct {
		name string
		pct  float64
		want []float64
	}{
		{name: "zero pct is a no-op", pct: 0, want: []float64{20, 50}},
		{name: "increase", pct: 0.1, want: []float64{22, 55}},
		{name: "decrease", pct: -0.5, want: []float64{10, 25}},
		{name: "below -100% goes negative, no floor", pct: -1.5, want: []float64{-10, -25}},
	}

	sim := NewSeededSimulator(1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sim.PerturbCost(warehouse, tt.pct)
			require.Len(t, got, len(warehouse))
			for i, w := range got {
				assert.InDelta(t, tt.want[i], w.StorageCostPerUnit, 1e-9)
			}
			// Input untouched.
			assert.Equal(t, 20.0, warehouse[0].StorageCostPerUnit)
			assert.Equal(t, 50.0, warehouse[1].StorageCostPerUnit)
		})
	}
}
