package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/dataset"
	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/domain"
	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/pipeline"
)

func mustTable(t *testing.T, csv string) *dataset.Table {
	t.Helper()
	table, err := dataset.FromReader(strings.NewReader(csv))
	require.NoError(t, err)
	return table
}

func fixtureTables(t *testing.T) (*dataset.Table, *dataset.Table) {
	t.Helper()
	warehouse := mustTable(t, `Warehouse_ID,Location,Product_Category,Current_Stock_Units,Reorder_Level,Storage_Cost_per_Unit
W001,Mumbai,Electronics,150,50,25.5
W002,Delhi,Electronics,80,50,30.0
`)

	var sb strings.Builder
	sb.WriteString("Order_ID,Order_Date,Origin,Product_Category,Order_Value_INR\n")
	for i := 0; i < 200; i++ {
		sb.WriteString("OM,2024-03-01,Mumbai,Electronics,1000\n")
	}
	for i := 0; i < 10; i++ {
		sb.WriteString("OD,2024-03-01,Delhi,Electronics,1000\n")
	}
	return warehouse, mustTable(t, sb.String())
}

func TestAnalyzeTables_WorkedExample(t *testing.T) {
	warehouse, orders := fixtureTables(t)

	svc := NewAnalysisService(nil)
	result, err := svc.AnalyzeTables(context.Background(), warehouse, orders)
	require.NoError(t, err)

	require.Len(t, result.Pressure, 2)
	assert.Equal(t, -100.0, result.Pressure[0].SPI)
	assert.Equal(t, 20.0, result.Pressure[1].SPI)

	require.Len(t, result.Recommendations, 1)
	rec := result.Recommendations[0]
	assert.Equal(t, "W002", rec.FromWarehouse)
	assert.Equal(t, "W001", rec.ToWarehouse)
	assert.Equal(t, 20, rec.Units)
	assert.Equal(t, 90.00, rec.EstimatedSavingINR)

	assert.Equal(t, 2, result.Metrics.TotalWarehouses)
	assert.Equal(t, 2, result.Metrics.TotalSKUs)
	assert.Equal(t, 50.00, result.Metrics.ShortagePercentage)
	assert.Equal(t, 90.00, result.Metrics.PotentialCostSaving)
}

func TestAnalyzeTables_InvalidDataNeverRuns(t *testing.T) {
	warehouse := mustTable(t, `Warehouse_ID,Location,Product_Category,Current_Stock_Units,Storage_Cost_per_Unit
W001,Mumbai,Electronics,-5,25.5
`)
	_, orders := fixtureTables(t)

	svc := NewAnalysisService(nil)
	_, err := svc.AnalyzeTables(context.Background(), warehouse, orders)
	require.ErrorIs(t, err, ErrInvalidData)
	assert.ErrorContains(t, err, "Reorder_Level")
	assert.ErrorContains(t, err, "Negative stock units")
}

func TestAnalyzeTables_EmptyWarehouse(t *testing.T) {
	warehouse := mustTable(t, "Warehouse_ID,Location,Product_Category,Current_Stock_Units,Reorder_Level,Storage_Cost_per_Unit\n")
	_, orders := fixtureTables(t)

	svc := NewAnalysisService(nil)
	_, err := svc.AnalyzeTables(context.Background(), warehouse, orders)
	assert.ErrorIs(t, err, pipeline.ErrNoPressureRows)
}

// Running the pipeline twice over identical inputs yields identical results.
func TestAnalyze_Idempotent(t *testing.T) {
	warehouse, orders := fixtureTables(t)
	warehouseRecords, err := dataset.DecodeWarehouse(warehouse)
	require.NoError(t, err)
	orderRecords, err := dataset.DecodeOrders(orders)
	require.NoError(t, err)

	svc := NewAnalysisService(nil)
	first, err := svc.Analyze(context.Background(), warehouseRecords, orderRecords)
	require.NoError(t, err)
	second, err := svc.Analyze(context.Background(), warehouseRecords, orderRecords)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// A scenario with zero perturbation matches the unperturbed baseline.
func TestCompareScenario_ZeroPctMatchesBaseline(t *testing.T) {
	warehouse, orders := fixtureTables(t)
	warehouseRecords, err := dataset.DecodeWarehouse(warehouse)
	require.NoError(t, err)
	orderRecords, err := dataset.DecodeOrders(orders)
	require.NoError(t, err)

	svc := NewAnalysisService(nil)
	result, err := svc.CompareScenario(context.Background(), warehouseRecords, orderRecords, domain.ScenarioParams{Seed: 1})
	require.NoError(t, err)

	assert.Equal(t, result.Baseline.Metrics, result.Scenario.Metrics)
	assert.Equal(t, result.Baseline.Recommendations, result.Scenario.Recommendations)
}

func TestRunScenario_SeededReproducibility(t *testing.T) {
	warehouse, orders := fixtureTables(t)
	warehouseRecords, err := dataset.DecodeWarehouse(warehouse)
	require.NoError(t, err)
	orderRecords, err := dataset.DecodeOrders(orders)
	require.NoError(t, err)

	params := domain.ScenarioParams{DemandChangePct: 0.25, CostChangePct: -0.1, Seed: 99}

	svc := NewAnalysisService(nil)
	first, err := svc.RunScenario(context.Background(), warehouseRecords, orderRecords, params)
	require.NoError(t, err)
	second, err := svc.RunScenario(context.Background(), warehouseRecords, orderRecords, params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunScenario_CostPerturbationShiftsSavings(t *testing.T) {
	warehouse, orders := fixtureTables(t)
	warehouseRecords, err := dataset.DecodeWarehouse(warehouse)
	require.NoError(t, err)
	orderRecords, err := dataset.DecodeOrders(orders)
	require.NoError(t, err)

	svc := NewAnalysisService(nil)
	result, err := svc.RunScenario(context.Background(), warehouseRecords, orderRecords,
		domain.ScenarioParams{CostChangePct: 1.0, Seed: 1})
	require.NoError(t, err)

	// Doubling every storage cost doubles the per-unit spread, so the single
	// recommendation's saving doubles: 20 * (60.0 - 51.0).
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, 180.00, result.Recommendations[0].EstimatedSavingINR)
}
