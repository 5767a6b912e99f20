package storage

import (
	"testing"
	"time"
)

func TestSeedDemoData(t *testing.T) {
	s := openTestStore(t)

	if err := s.SeedDemoData(); err != nil {
		t.Fatalf("SeedDemoData: %v", err)
	}

	items, err := s.ListInventoryItems()
	if err != nil {
		t.Fatalf("ListInventoryItems: %v", err)
	}
	if len(items) != 4 {
		t.Errorf("expected 4 inventory items, got %d", len(items))
	}

	suppliers, err := s.ListSuppliers()
	if err != nil {
		t.Fatalf("ListSuppliers: %v", err)
	}
	if len(suppliers) != 3 {
		t.Errorf("expected 3 suppliers, got %d", len(suppliers))
	}

	metrics, err := s.ListKPIMetrics()
	if err != nil {
		t.Fatalf("ListKPIMetrics: %v", err)
	}
	if len(metrics) != 5 {
		t.Errorf("expected 5 KPI metrics, got %d", len(metrics))
	}

	alerts, err := s.ListActiveAlerts()
	if err != nil {
		t.Fatalf("ListActiveAlerts: %v", err)
	}
	if len(alerts) != 4 {
		t.Errorf("expected 4 active alerts, got %d", len(alerts))
	}

	// Every seeded item links to a seeded supplier.
	for _, item := range items {
		if item.SupplierID == nil {
			t.Errorf("item %s has no supplier reference", item.SKU)
		}
	}
}

func TestSeedDemoDataIdempotent(t *testing.T) {
	s := openTestStore(t)

	if err := s.SeedDemoData(); err != nil {
		t.Fatalf("first SeedDemoData: %v", err)
	}
	if err := s.SeedDemoData(); err != nil {
		t.Fatalf("second SeedDemoData: %v", err)
	}

	items, err := s.ListInventoryItems()
	if err != nil {
		t.Fatalf("ListInventoryItems: %v", err)
	}
	if len(items) != 4 {
		t.Errorf("expected 4 inventory items after re-seed, got %d", len(items))
	}

	suppliers, err := s.ListSuppliers()
	if err != nil {
		t.Fatalf("ListSuppliers: %v", err)
	}
	if len(suppliers) != 3 {
		t.Errorf("expected 3 suppliers after re-seed, got %d", len(suppliers))
	}

	metrics, err := s.ListKPIMetrics()
	if err != nil {
		t.Fatalf("ListKPIMetrics: %v", err)
	}
	if len(metrics) != 5 {
		t.Errorf("expected 5 KPI metrics after re-seed, got %d", len(metrics))
	}
}

func TestSeedDoesNotReactivateResolvedAlerts(t *testing.T) {
	s := openTestStore(t)

	if err := s.SeedDemoData(); err != nil {
		t.Fatalf("SeedDemoData: %v", err)
	}

	alerts, err := s.ListActiveAlerts()
	if err != nil {
		t.Fatalf("ListActiveAlerts: %v", err)
	}
	if err := s.ResolveAlert(alerts[0].ID, time.Now().UTC()); err != nil {
		t.Fatalf("ResolveAlert: %v", err)
	}

	if err := s.SeedDemoData(); err != nil {
		t.Fatalf("re-seed: %v", err)
	}

	after, err := s.ListActiveAlerts()
	if err != nil {
		t.Fatalf("ListActiveAlerts after re-seed: %v", err)
	}
	if len(after) != len(alerts)-1 {
		t.Errorf("re-seed reactivated a resolved alert: %d active, want %d", len(after), len(alerts)-1)
	}
}
