package storage

import (
	"fmt"
	"time"
)

// SeedDemoData loads the demo catalog: three suppliers, four inventory items,
// five KPI metrics, and four alerts. Every row is written with an upsert
// keyed by its natural key (supplier name, sku, metric name, alert title),
// so the seed is idempotent and safe to run on every startup.
func (s *Store) SeedDemoData() error {
	now := time.Now().UTC()

	suppliers := []Supplier{
		{Name: "Global Supply Co.", ContactEmail: "contact@globalsupply.com",
			PerformanceScore: 94.2, OnTimeDelivery: 95.0, QualityScore: 98.0, LeadTimeDays: 7},
		{Name: "Regional Parts Ltd.", ContactEmail: "orders@regionalparts.com",
			PerformanceScore: 87.5, OnTimeDelivery: 87.0, QualityScore: 92.0, LeadTimeDays: 5},
		{Name: "Premium Components Inc.", ContactEmail: "sales@premiumcomp.com",
			PerformanceScore: 96.8, OnTimeDelivery: 98.0, QualityScore: 99.0, LeadTimeDays: 10},
	}

	supplierIDs := make(map[string]int64, len(suppliers))
	for _, sup := range suppliers {
		id, err := s.UpsertSupplier(sup)
		if err != nil {
			return fmt.Errorf("seeding supplier %q: %w", sup.Name, err)
		}
		supplierIDs[sup.Name] = id
	}

	items := []struct {
		item     InventoryItem
		supplier string
	}{
		{InventoryItem{SKU: "SKU-A401", Name: "Premium Widget A", Category: "Category A",
			CurrentStock: 150, MinStock: 50, MaxStock: 300, UnitCost: 25.50}, "Global Supply Co."},
		{InventoryItem{SKU: "SKU-B205", Name: "Standard Component B", Category: "Category B",
			CurrentStock: 75, MinStock: 100, MaxStock: 500, UnitCost: 12.75}, "Regional Parts Ltd."},
		{InventoryItem{SKU: "SKU-C108", Name: "Essential Part C", Category: "Category C",
			CurrentStock: 25, MinStock: 30, MaxStock: 200, UnitCost: 8.25}, "Premium Components Inc."},
		{InventoryItem{SKU: "SKU-D302", Name: "Advanced Module D", Category: "Category A",
			CurrentStock: 200, MinStock: 75, MaxStock: 400, UnitCost: 45.00}, "Global Supply Co."},
	}

	for _, entry := range items {
		item := entry.item
		if id, ok := supplierIDs[entry.supplier]; ok {
			item.SupplierID = &id
		}
		item.LastUpdated = now
		if err := s.UpsertInventoryItem(item); err != nil {
			return fmt.Errorf("seeding inventory item %q: %w", item.SKU, err)
		}
	}

	metrics := []KPIMetric{
		{Name: "Fill Rate", Value: 92.5, Target: ptr(95.0), Unit: "%", Category: "performance"},
		{Name: "Inventory Turnover", Value: 8.2, Target: ptr(10.0), Unit: "times/year", Category: "efficiency"},
		{Name: "Order Accuracy", Value: 98.7, Target: ptr(99.5), Unit: "%", Category: "quality"},
		{Name: "Lead Time", Value: 6.5, Target: ptr(5.0), Unit: "days", Category: "speed"},
		{Name: "Cost per Order", Value: 125.50, Target: ptr(120.00), Unit: "USD", Category: "cost"},
	}

	for _, m := range metrics {
		m.Timestamp = now
		if err := s.UpsertKPIMetric(m); err != nil {
			return fmt.Errorf("seeding KPI metric %q: %w", m.Name, err)
		}
	}

	alerts := []Alert{
		{Type: "warning", Title: "Low Stock Alert",
			Message: "SKU-B205 is below minimum stock level (75 < 100)", Priority: PriorityHigh},
		{Type: "warning", Title: "Critical Stock Alert",
			Message: "SKU-C108 is critically low (25 < 30)", Priority: PriorityCritical},
		{Type: "info", Title: "Supplier Delay",
			Message: "Regional Parts Ltd. has reported a 2-day delay on pending orders", Priority: PriorityMedium},
		{Type: "success", Title: "Target Achieved",
			Message: "Q3 cost reduction target of 5% has been achieved", Priority: PriorityLow},
	}

	for _, a := range alerts {
		a.CreatedAt = now
		if err := s.UpsertAlert(a); err != nil {
			return fmt.Errorf("seeding alert %q: %w", a.Title, err)
		}
	}

	return nil
}

func ptr(v float64) *float64 {
	return &v
}
