// Package analytics derives summary statistics from the catalog store on
// demand. All operations are pure reads.
package analytics

import (
	"errors"
	"fmt"
	"math"

	"github.com/kalambet/scmkai/internal/storage"
)

// Catalog is the slice of the store the aggregator reads from.
type Catalog interface {
	CountInventoryItems() (total, lowStock int, err error)
	TotalInventoryValue() (float64, error)
	LatestKPIMetric(name string) (storage.KPIMetric, error)
	AverageSupplierPerformance() (float64, error)
	CountAlerts() (active, critical int, err error)
}

// Summary is the nested analytics payload served by the summary endpoint.
type Summary struct {
	Inventory   InventorySummary   `json:"inventory"`
	Performance PerformanceSummary `json:"performance"`
	Alerts      AlertSummary       `json:"alerts"`
}

type InventorySummary struct {
	TotalItems    int     `json:"total_items"`
	LowStockItems int     `json:"low_stock_items"`
	TotalValue    float64 `json:"total_value"`
	StockHealth   string  `json:"stock_health"`
}

type PerformanceSummary struct {
	FillRate            float64 `json:"fill_rate"`
	OrderAccuracy       float64 `json:"order_accuracy"`
	SupplierPerformance float64 `json:"supplier_performance"`
}

type AlertSummary struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
}

// Aggregator computes summaries over a Catalog.
type Aggregator struct {
	catalog Catalog
}

func New(catalog Catalog) *Aggregator {
	return &Aggregator{catalog: catalog}
}

// Summarize computes the current snapshot. Missing KPI metrics report as 0,
// and averages over empty tables are 0; neither is an error.
func (a *Aggregator) Summarize() (Summary, error) {
	total, lowStock, err := a.catalog.CountInventoryItems()
	if err != nil {
		return Summary{}, fmt.Errorf("counting inventory: %w", err)
	}

	totalValue, err := a.catalog.TotalInventoryValue()
	if err != nil {
		return Summary{}, fmt.Errorf("summing inventory value: %w", err)
	}

	// Healthy while low-stock items stay under 10% of the catalog;
	// exactly 10% already needs attention (strict less-than).
	health := "attention_needed"
	if float64(lowStock) < float64(total)*0.1 {
		health = "good"
	}

	fillRate, err := latestValue(a.catalog, "Fill Rate")
	if err != nil {
		return Summary{}, err
	}
	orderAccuracy, err := latestValue(a.catalog, "Order Accuracy")
	if err != nil {
		return Summary{}, err
	}

	avgPerformance, err := a.catalog.AverageSupplierPerformance()
	if err != nil {
		return Summary{}, fmt.Errorf("averaging supplier performance: %w", err)
	}

	active, critical, err := a.catalog.CountAlerts()
	if err != nil {
		return Summary{}, fmt.Errorf("counting alerts: %w", err)
	}

	return Summary{
		Inventory: InventorySummary{
			TotalItems:    total,
			LowStockItems: lowStock,
			TotalValue:    round(totalValue, 2),
			StockHealth:   health,
		},
		Performance: PerformanceSummary{
			FillRate:            fillRate,
			OrderAccuracy:       orderAccuracy,
			SupplierPerformance: round(avgPerformance, 1),
		},
		Alerts: AlertSummary{
			Total:    active,
			Critical: critical,
		},
	}, nil
}

func latestValue(c Catalog, name string) (float64, error) {
	m, err := c.LatestKPIMetric(name)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("looking up KPI %q: %w", name, err)
	}
	return m.Value, nil
}

// round rounds to the given number of decimal places for display. Internal
// computation stays full precision; only the final value is rounded.
func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
