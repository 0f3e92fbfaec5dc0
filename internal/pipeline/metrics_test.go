package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/domain"
)

func TestSummarizeMetrics_EmptyInput(t *testing.T) {
	_, err := SummarizeMetrics(nil)
	assert.ErrorIs(t, err, ErrNoPressureRows)
}

func TestSummarizeMetrics_ShortagePercentage(t *testing.T) {
	// One shortage out of four rows.
	pressure := []domain.PressureRow{
		pressureRow("W001", "Mumbai", "A", -10, 20),
		pressureRow("W002", "Delhi", "A", 5, 20),
		pressureRow("W003", "Pune", "B", 0, 20),
		pressureRow("W004", "Chennai", "B", 12, 20),
	}

	m, err := SummarizeMetrics(pressure)
	require.NoError(t, err)
	assert.Equal(t, 25.00, m.ShortagePercentage)
}

func TestSummarizeMetrics_Counts(t *testing.T) {
	// W001 appears twice (two categories): two SKU rows, one warehouse.
	pressure := []domain.PressureRow{
		pressureRow("W001", "Mumbai", "A", 3, 20),
		pressureRow("W001", "Mumbai", "B", -2, 20),
		pressureRow("W002", "Delhi", "A", 7, 20),
	}

	m, err := SummarizeMetrics(pressure)
	require.NoError(t, err)
	assert.Equal(t, 2, m.TotalWarehouses)
	assert.Equal(t, 3, m.TotalSKUs)
}

func TestSummarizeMetrics_AverageSPI(t *testing.T) {
	pressure := []domain.PressureRow{
		pressureRow("W001", "Mumbai", "A", -10, 20),
		pressureRow("W002", "Delhi", "A", 5, 20),
		pressureRow("W003", "Pune", "A", 7, 20),
	}

	m, err := SummarizeMetrics(pressure)
	require.NoError(t, err)
	// (-10 + 5 + 7) / 3 = 0.666... -> 0.67
	assert.Equal(t, 0.67, m.AverageSPI)
}

func TestSummarizeMetrics_PotentialSavingMatchesRecommendations(t *testing.T) {
	pressure := []domain.PressureRow{
		pressureRow("W001", "Mumbai", "Electronics", -100, 25.5),
		pressureRow("W002", "Delhi", "Electronics", 20, 30.0),
		pressureRow("W003", "Pune", "Textiles", -8, 15),
		pressureRow("W004", "Chennai", "Textiles", 12, 18),
	}

	m, err := SummarizeMetrics(pressure)
	require.NoError(t, err)
	// 20*(30.0-25.5) + 8*(18-15) = 90 + 24
	assert.Equal(t, 114.00, m.PotentialCostSaving)
}

func TestSummarizeMetrics_NoRecommendationsMeansZeroSaving(t *testing.T) {
	pressure := []domain.PressureRow{
		pressureRow("W001", "Mumbai", "A", 4, 20),
		pressureRow("W002", "Delhi", "A", 9, 20),
	}

	m, err := SummarizeMetrics(pressure)
	require.NoError(t, err)
	assert.Zero(t, m.PotentialCostSaving)
}

func TestTopRiskCategories(t *testing.T) {
	pressure := []domain.PressureRow{
		pressureRow("W001", "Mumbai", "Electronics", -100, 20),
		pressureRow("W002", "Delhi", "Electronics", 50, 20),
		pressureRow("W003", "Pune", "Textiles", -5, 20),
		pressureRow("W004", "Chennai", "Furniture", -40, 20),
		pressureRow("W005", "Kolkata", "Toys", 10, 20),
		pressureRow("W006", "Jaipur", "Groceries", -60, 20),
	}

	m, err := SummarizeMetrics(pressure)
	require.NoError(t, err)

	// Worst three categories, most negative first; Toys and Textiles drop out.
	assert.Equal(t, []domain.CategoryRisk{
		{ProductCategory: "Electronics", SPI: -100},
		{ProductCategory: "Groceries", SPI: -60},
		{ProductCategory: "Furniture", SPI: -40},
	}, m.TopRiskCategories)
}

func TestTopRiskCategories_FewerThanThree(t *testing.T) {
	pressure := []domain.PressureRow{
		pressureRow("W001", "Mumbai", "Electronics", -3, 20),
		pressureRow("W002", "Delhi", "Electronics", 40, 20),
	}

	m, err := SummarizeMetrics(pressure)
	require.NoError(t, err)
	assert.Equal(t, []domain.CategoryRisk{
		{ProductCategory: "Electronics", SPI: -3},
	}, m.TopRiskCategories)
}

func TestTopRiskCategories_TiesKeepEncounterOrder(t *testing.T) {
	pressure := []domain.PressureRow{
		pressureRow("W001", "Mumbai", "B", -10, 20),
		pressureRow("W002", "Delhi", "A", -10, 20),
		pressureRow("W003", "Pune", "C", -10, 20),
		pressureRow("W004", "Chennai", "D", -10, 20),
	}

	m, err := SummarizeMetrics(pressure)
	require.NoError(t, err)
	assert.Equal(t, []domain.CategoryRisk{
		{ProductCategory: "B", SPI: -10},
		{ProductCategory: "A", SPI: -10},
		{ProductCategory: "C", SPI: -10},
	}, m.TopRiskCategories)
}
