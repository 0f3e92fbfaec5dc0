// backend-go/cmd/analyze/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/dataset"
	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/domain"
	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/pipeline"
	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/service"
)

func newWarehouseFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "warehouse",
		Usage:   "Path to the warehouse inventory CSV",
		Value:   "./data/warehouse_inventory.csv",
		EnvVars: []string{"WAREHOUSE_CSV"},
	}
}

func newOrdersFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "orders",
		Usage:   "Path to the orders CSV",
		Value:   "./data/orders.csv",
		EnvVars: []string{"ORDERS_CSV"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "analyze",
		Usage: "Run the warehouse stock-pressure pipeline from the command line",
		Commands: []*cli.Command{
			{
				Name:  "validate",
				Usage: "Validate the two input CSVs without running the pipeline",
				Flags: []cli.Flag{
					newWarehouseFlag(),
					newOrdersFlag(),
				},
				Action: runValidate,
			},
			{
				Name:  "run",
				Usage: "Run the full pipeline and print the metrics summary",
				Flags: []cli.Flag{
					newWarehouseFlag(),
					newOrdersFlag(),
					&cli.StringFlag{
						Name:  "export",
						Usage: "Optional path to write the recommendations CSV",
					},
				},
				Action: runAnalysis,
			},
			{
				Name:  "simulate",
				Usage: "Run a what-if scenario and print baseline vs scenario metrics",
				Flags: []cli.Flag{
					newWarehouseFlag(),
					newOrdersFlag(),
					&cli.Float64Flag{
						Name:  "demand-pct",
						Usage: "Demand change as a fraction, e.g. 0.1 for +10%",
					},
					&cli.Float64Flag{
						Name:  "cost-pct",
						Usage: "Storage cost change as a fraction, e.g. -0.05 for -5%",
					},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "Seed for the scenario sampling source",
						Value: service.DefaultScenarioSeed,
					},
				},
				Action: runSimulation,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadTables(c *cli.Context) (*dataset.Table, *dataset.Table, error) {
	warehouse, err := dataset.Load(c.String("warehouse"))
	if err != nil {
		return nil, nil, fmt.Errorf("load warehouse table: %w", err)
	}
	orders, err := dataset.Load(c.String("orders"))
	if err != nil {
		return nil, nil, fmt.Errorf("load orders table: %w", err)
	}
	return warehouse, orders, nil
}

func runValidate(c *cli.Context) error {
	warehouse, orders, err := loadTables(c)
	if err != nil {
		return err
	}

	valid, messages := pipeline.Validate(warehouse, orders)
	if !valid {
		for _, msg := range messages {
			fmt.Printf("- %s\n", msg)
		}
		return fmt.Errorf("validation failed with %d error(s)", len(messages))
	}

	fmt.Println("Input data is valid.")
	return nil
}

func runAnalysis(c *cli.Context) error {
	warehouse, orders, err := loadTables(c)
	if err != nil {
		return err
	}

	svc := service.NewAnalysisService(nil)
	result, err := svc.AnalyzeTables(context.Background(), warehouse, orders)
	if err != nil {
		return err
	}

	printMetrics("Metrics", result.Metrics)
	fmt.Printf("\nRecommendations: %d\n", len(result.Recommendations))
	for _, rec := range result.Recommendations {
		fmt.Printf("- %s: %s (%s) -> %s (%s), %d units, saving %.2f INR\n",
			rec.ProductCategory, rec.FromWarehouse, rec.FromLocation,
			rec.ToWarehouse, rec.ToLocation, rec.Units, rec.EstimatedSavingINR)
	}

	if path := c.String("export"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		if err := dataset.WriteRecommendations(f, result.Recommendations); err != nil {
			return fmt.Errorf("export recommendations: %w", err)
		}
		fmt.Printf("\nRecommendations written to %s\n", path)
	}

	return nil
}

func runSimulation(c *cli.Context) error {
	warehouse, orders, err := loadTables(c)
	if err != nil {
		return err
	}

	valid, messages := pipeline.Validate(warehouse, orders)
	if !valid {
		return fmt.Errorf("validation failed: %v", messages)
	}

	warehouseRecords, err := dataset.DecodeWarehouse(warehouse)
	if err != nil {
		return err
	}
	orderRecords, err := dataset.DecodeOrders(orders)
	if err != nil {
		return err
	}

	params := domain.ScenarioParams{
		DemandChangePct: c.Float64("demand-pct"),
		CostChangePct:   c.Float64("cost-pct"),
		Seed:            c.Int64("seed"),
	}

	svc := service.NewAnalysisService(nil)
	result, err := svc.CompareScenario(context.Background(), warehouseRecords, orderRecords, params)
	if err != nil {
		return err
	}

	printMetrics("Baseline", result.Baseline.Metrics)
	fmt.Println()
	printMetrics(fmt.Sprintf("Scenario (demand %+.0f%%, cost %+.0f%%)",
		params.DemandChangePct*100, params.CostChangePct*100), result.Scenario.Metrics)
	return nil
}

func printMetrics(title string, m domain.MetricsSummary) {
	fmt.Printf("%s:\n", title)
	fmt.Printf("  Warehouses:           %d\n", m.TotalWarehouses)
	fmt.Printf("  SKU rows:             %d\n", m.TotalSKUs)
	fmt.Printf("  Shortage percentage:  %.2f%%\n", m.ShortagePercentage)
	fmt.Printf("  Average SPI:          %.2f\n", m.AverageSPI)
	fmt.Printf("  Potential saving:     %.2f INR\n", m.PotentialCostSaving)
	fmt.Printf("  Top risk categories:\n")
	for _, risk := range m.TopRiskCategories {
		fmt.Printf("    %-20s %.2f\n", risk.ProductCategory, risk.SPI)
	}
}
