package storage

import (
	"errors"
	"testing"
	"time"
)

func TestUpsertInventoryItemBySKU(t *testing.T) {
	s := openTestStore(t)

	item := InventoryItem{
		SKU: "SKU-T100", Name: "Test Widget", Category: "Category A",
		CurrentStock: 120, MinStock: 40, MaxStock: 250, UnitCost: 9.99,
		LastUpdated: time.Now().UTC(),
	}
	if err := s.UpsertInventoryItem(item); err != nil {
		t.Fatalf("UpsertInventoryItem: %v", err)
	}

	// Second upsert with the same sku must update in place, not duplicate.
	item.CurrentStock = 80
	item.Name = "Test Widget v2"
	if err := s.UpsertInventoryItem(item); err != nil {
		t.Fatalf("second UpsertInventoryItem: %v", err)
	}

	items, err := s.ListInventoryItems()
	if err != nil {
		t.Fatalf("ListInventoryItems: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item after upsert, got %d", len(items))
	}
	if items[0].CurrentStock != 80 || items[0].Name != "Test Widget v2" {
		t.Errorf("upsert did not update row: %+v", items[0])
	}
}

func TestStockStatus(t *testing.T) {
	tests := []struct {
		name    string
		current int
		want    string
	}{
		{"critical at half min", 15, "critical"},
		{"low at min", 30, "low"},
		{"low just above half min", 16, "low"},
		{"normal", 100, "normal"},
		{"overstock at max", 200, "overstock"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := InventoryItem{CurrentStock: tt.current, MinStock: 30, MaxStock: 200}
			if got := item.StockStatus(); got != tt.want {
				t.Errorf("StockStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInventoryAggregates(t *testing.T) {
	s := openTestStore(t)
	now := time.Now().UTC()

	items := []InventoryItem{
		{SKU: "SKU-1", Name: "One", Category: "A", CurrentStock: 10, MinStock: 20, MaxStock: 100, UnitCost: 2.5, LastUpdated: now},
		{SKU: "SKU-2", Name: "Two", Category: "B", CurrentStock: 50, MinStock: 20, MaxStock: 100, UnitCost: 1.0, LastUpdated: now},
	}
	for _, item := range items {
		if err := s.UpsertInventoryItem(item); err != nil {
			t.Fatalf("UpsertInventoryItem(%s): %v", item.SKU, err)
		}
	}

	total, low, err := s.CountInventoryItems()
	if err != nil {
		t.Fatalf("CountInventoryItems: %v", err)
	}
	if total != 2 || low != 1 {
		t.Errorf("counts = (%d, %d), want (2, 1)", total, low)
	}

	value, err := s.TotalInventoryValue()
	if err != nil {
		t.Fatalf("TotalInventoryValue: %v", err)
	}
	if want := 10*2.5 + 50*1.0; value != want {
		t.Errorf("TotalInventoryValue = %v, want %v", value, want)
	}
}

func TestSearchInventoryItemsCaseInsensitive(t *testing.T) {
	s := openTestStore(t)
	now := time.Now().UTC()

	item := InventoryItem{SKU: "SKU-A401", Name: "Premium Widget A", Category: "Category A",
		CurrentStock: 150, MinStock: 50, MaxStock: 300, UnitCost: 25.50, LastUpdated: now}
	if err := s.UpsertInventoryItem(item); err != nil {
		t.Fatalf("UpsertInventoryItem: %v", err)
	}

	for _, query := range []string{"SKU-A401", "sku-a401", "premium", "category a"} {
		matches, err := s.SearchInventoryItems(query, 5)
		if err != nil {
			t.Fatalf("SearchInventoryItems(%q): %v", query, err)
		}
		if len(matches) != 1 {
			t.Errorf("SearchInventoryItems(%q) = %d matches, want 1", query, len(matches))
		}
	}

	matches, err := s.SearchInventoryItems("no-such-thing", 5)
	if err != nil {
		t.Fatalf("SearchInventoryItems: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestUpsertSupplierReturnsStableID(t *testing.T) {
	s := openTestStore(t)

	id1, err := s.UpsertSupplier(Supplier{Name: "Acme Corp", PerformanceScore: 90})
	if err != nil {
		t.Fatalf("UpsertSupplier: %v", err)
	}
	id2, err := s.UpsertSupplier(Supplier{Name: "Acme Corp", PerformanceScore: 95})
	if err != nil {
		t.Fatalf("second UpsertSupplier: %v", err)
	}
	if id1 != id2 {
		t.Errorf("supplier id changed on upsert: %d -> %d", id1, id2)
	}

	suppliers, err := s.ListSuppliers()
	if err != nil {
		t.Fatalf("ListSuppliers: %v", err)
	}
	if len(suppliers) != 1 {
		t.Fatalf("expected 1 supplier, got %d", len(suppliers))
	}
	if suppliers[0].PerformanceScore != 95 {
		t.Errorf("PerformanceScore = %v, want 95", suppliers[0].PerformanceScore)
	}
	if suppliers[0].Status != "active" {
		t.Errorf("default status = %q, want active", suppliers[0].Status)
	}
}

func TestAverageSupplierPerformanceEmpty(t *testing.T) {
	s := openTestStore(t)

	avg, err := s.AverageSupplierPerformance()
	if err != nil {
		t.Fatalf("AverageSupplierPerformance: %v", err)
	}
	if avg != 0 {
		t.Errorf("average over empty table = %v, want 0", avg)
	}
}

func TestLatestKPIMetric(t *testing.T) {
	s := openTestStore(t)

	older := KPIMetric{Name: "Fill Rate", Value: 90.0, Category: "performance",
		Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	if err := s.UpsertKPIMetric(older); err != nil {
		t.Fatalf("UpsertKPIMetric: %v", err)
	}
	// Direct insert of a newer sample with the same name; LatestKPIMetric
	// must pick the most recent one.
	if _, err := s.db.Exec(`INSERT INTO kpi_metrics (name, value, unit, category, timestamp)
		VALUES ('Fill Rate', 92.5, '%', 'performance', '2025-06-01T00:00:00Z')`); err != nil {
		t.Fatalf("inserting newer metric: %v", err)
	}

	m, err := s.LatestKPIMetric("Fill Rate")
	if err != nil {
		t.Fatalf("LatestKPIMetric: %v", err)
	}
	if m.Value != 92.5 {
		t.Errorf("Value = %v, want 92.5", m.Value)
	}

	if _, err := s.LatestKPIMetric("Nonexistent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LatestKPIMetric(Nonexistent) error = %v, want ErrNotFound", err)
	}
}

func TestResolveAlert(t *testing.T) {
	s := openTestStore(t)

	if err := s.UpsertAlert(Alert{Type: "warning", Title: "Low Stock", Message: "stock low"}); err != nil {
		t.Fatalf("UpsertAlert: %v", err)
	}
	alerts, err := s.ListActiveAlerts()
	if err != nil {
		t.Fatalf("ListActiveAlerts: %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("expected 1 active alert, got %d", len(alerts))
	}
	id := alerts[0].ID
	if alerts[0].Priority != PriorityMedium {
		t.Errorf("default priority = %q, want medium", alerts[0].Priority)
	}

	first := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := s.ResolveAlert(id, first); err != nil {
		t.Fatalf("ResolveAlert: %v", err)
	}

	a, err := s.GetAlert(id)
	if err != nil {
		t.Fatalf("GetAlert: %v", err)
	}
	if a.Status != AlertResolved {
		t.Errorf("Status = %q, want resolved", a.Status)
	}
	if a.ResolvedAt == nil || !a.ResolvedAt.Equal(first) {
		t.Errorf("ResolvedAt = %v, want %v", a.ResolvedAt, first)
	}

	// Re-resolving succeeds and re-stamps resolved_at.
	second := first.Add(time.Hour)
	if err := s.ResolveAlert(id, second); err != nil {
		t.Fatalf("second ResolveAlert: %v", err)
	}
	a, err = s.GetAlert(id)
	if err != nil {
		t.Fatalf("GetAlert after re-resolve: %v", err)
	}
	if a.ResolvedAt == nil || !a.ResolvedAt.Equal(second) {
		t.Errorf("ResolvedAt after re-resolve = %v, want %v", a.ResolvedAt, second)
	}

	// Resolved alerts drop out of the active list.
	alerts, err = s.ListActiveAlerts()
	if err != nil {
		t.Fatalf("ListActiveAlerts after resolve: %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("expected no active alerts, got %d", len(alerts))
	}

	if err := s.ResolveAlert(9999, first); !errors.Is(err, ErrNotFound) {
		t.Errorf("ResolveAlert(9999) error = %v, want ErrNotFound", err)
	}
}

func TestCountAlerts(t *testing.T) {
	s := openTestStore(t)

	alerts := []Alert{
		{Type: "warning", Title: "A", Message: "m", Priority: PriorityCritical},
		{Type: "warning", Title: "B", Message: "m", Priority: PriorityHigh},
		{Type: "info", Title: "C", Message: "m", Priority: PriorityCritical},
	}
	for _, a := range alerts {
		if err := s.UpsertAlert(a); err != nil {
			t.Fatalf("UpsertAlert(%s): %v", a.Title, err)
		}
	}

	active, critical, err := s.CountAlerts()
	if err != nil {
		t.Fatalf("CountAlerts: %v", err)
	}
	if active != 3 || critical != 2 {
		t.Errorf("CountAlerts = (%d, %d), want (3, 2)", active, critical)
	}
}

func TestConversationRoundTrip(t *testing.T) {
	s := openTestStore(t)

	id, err := s.SaveConversation(Conversation{
		SessionID: "session-1",
		Message:   "how is inventory?",
		Response:  "inventory is fine",
	})
	if err != nil {
		t.Fatalf("SaveConversation: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero conversation id")
	}

	if _, err := s.SaveConversation(Conversation{SessionID: "session-2", Message: "hi", Response: "hello"}); err != nil {
		t.Fatalf("SaveConversation: %v", err)
	}

	all, err := s.ListConversations("", 10)
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(all))
	}

	only, err := s.ListConversations("session-1", 10)
	if err != nil {
		t.Fatalf("ListConversations(session-1): %v", err)
	}
	if len(only) != 1 || only[0].Message != "how is inventory?" {
		t.Errorf("session filter returned %+v", only)
	}
}

func TestDemandForecastRoundTrip(t *testing.T) {
	s := openTestStore(t)

	forecast := DemandForecast{
		SKU:              "SKU-A401",
		ForecastDate:     time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		ForecastedDemand: 1270,
	}
	if err := s.SaveDemandForecast(forecast); err != nil {
		t.Fatalf("SaveDemandForecast: %v", err)
	}

	forecasts, err := s.ListDemandForecasts()
	if err != nil {
		t.Fatalf("ListDemandForecasts: %v", err)
	}
	if len(forecasts) != 1 {
		t.Fatalf("expected 1 forecast, got %d", len(forecasts))
	}
	got := forecasts[0]
	if got.SKU != "SKU-A401" || got.ForecastedDemand != 1270 {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.ActualDemand != nil || got.Accuracy != nil {
		t.Errorf("expected nil optionals, got actual=%v accuracy=%v", got.ActualDemand, got.Accuracy)
	}
	if !got.ForecastDate.Equal(forecast.ForecastDate) {
		t.Errorf("ForecastDate = %v, want %v", got.ForecastDate, forecast.ForecastDate)
	}
}
