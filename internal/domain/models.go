// backend-go/internal/domain/models.go
package domain

import "time"

// WarehouseRecord is one inventory row: a (warehouse, product category) pair.
// Multiple rows per warehouse are expected, one per category carried there.
type WarehouseRecord struct {
	WarehouseID        string  `json:"warehouse_id"`
	Location           string  `json:"location"`
	ProductCategory    string  `json:"product_category"`
	CurrentStockUnits  int     `json:"current_stock_units"`
	ReorderLevel       float64 `json:"reorder_level"`
	StorageCostPerUnit float64 `json:"storage_cost_per_unit"`
}

// OrderRecord is a single order from the append-only orders table. Only its
// count per (Origin, ProductCategory) feeds the pipeline; OrderValueINR is
// carried through but unused by the pressure math.
type OrderRecord struct {
	OrderID         string    `json:"order_id"`
	OrderDate       time.Time `json:"order_date"`
	Origin          string    `json:"origin"`
	ProductCategory string    `json:"product_category"`
	OrderValueINR   float64   `json:"order_value_inr"`
}

// DemandRow is the observed demand for a (location, category) pair: the count
// of orders over the whole input window. The "monthly" in the name follows the
// source data; the value is not normalized to a calendar month.
type DemandRow struct {
	Origin          string `json:"origin"`
	ProductCategory string `json:"product_category"`
	MonthlyDemand   int    `json:"monthly_demand"`
}

// PressureRow is a WarehouseRecord joined with its demand plus the computed
// Stock Pressure Index. SPI < 0 is a shortage, SPI > 0 a surplus.
type PressureRow struct {
	WarehouseRecord
	MonthlyDemand int     `json:"monthly_demand"`
	SPI           float64 `json:"spi"`
}

// TransferRecommendation proposes moving Units of a category from a surplus
// warehouse to a shortage warehouse. EstimatedSavingINR can be negative when
// the donor stores at a higher unit cost; callers must not assume positivity.
type TransferRecommendation struct {
	ProductCategory    string  `json:"product_category"`
	FromWarehouse      string  `json:"from_warehouse"`
	FromLocation       string  `json:"from_location"`
	ToWarehouse        string  `json:"to_warehouse"`
	ToLocation         string  `json:"to_location"`
	Units              int     `json:"units"`
	EstimatedSavingINR float64 `json:"estimated_saving_inr"`
	DonorSPI           float64 `json:"donor_spi"`
	ReceiverSPI        float64 `json:"receiver_spi"`
}

// CategoryRisk is a product category with its worst (minimum) SPI. Summaries
// keep these ordered most negative first, hence a slice instead of a map.
type CategoryRisk struct {
	ProductCategory string  `json:"product_category"`
	SPI             float64 `json:"spi"`
}

// MetricsSummary holds the aggregate KPIs derived from a pressure table.
type MetricsSummary struct {
	TotalWarehouses     int            `json:"total_warehouses"`
	TotalSKUs           int            `json:"total_skus"`
	ShortagePercentage  float64        `json:"shortage_percentage"`
	AverageSPI          float64        `json:"average_spi"`
	PotentialCostSaving float64        `json:"potential_cost_saving"`
	TopRiskCategories   []CategoryRisk `json:"top_risk_categories"`
}

// AnalysisResult bundles the outputs of one full pipeline run.
type AnalysisResult struct {
	Demand          []DemandRow              `json:"demand"`
	Pressure        []PressureRow            `json:"pressure"`
	Recommendations []TransferRecommendation `json:"recommendations"`
	Metrics         MetricsSummary           `json:"metrics"`
}

// ScenarioParams describes a what-if perturbation of the inputs. Pcts are
// fractions (0.1 = +10%). Seed fixes the sampling source so repeated runs of
// the same scenario stay comparable.
type ScenarioParams struct {
	DemandChangePct float64 `json:"demand_change_pct"`
	CostChangePct   float64 `json:"cost_change_pct"`
	Seed            int64   `json:"seed"`
}

// ScenarioResult pairs a perturbed run with the unperturbed baseline.
type ScenarioResult struct {
	Params   ScenarioParams  `json:"params"`
	Baseline *AnalysisResult `json:"baseline"`
	Scenario *AnalysisResult `json:"scenario"`
}
