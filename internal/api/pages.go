package api

import (
	"log/slog"
	"net/http"
)

// PageData is the common payload handed to page templates.
type PageData struct {
	Title  string
	KPIs   DashboardKPIs
	Alerts []BannerAlert
}

// DashboardKPIs are the headline figures on the dashboard page. Static demo
// constants, same as the chat resolver's figures.
type DashboardKPIs struct {
	FillRate            float64
	InventoryValue      float64
	SupplierPerformance float64
	CostVariance        float64
}

// BannerAlert is a short notice shown at the top of the dashboard page.
type BannerAlert struct {
	Type    string
	Message string
}

func dashboardPageData() PageData {
	return PageData{
		Title: "Dashboard",
		KPIs: DashboardKPIs{
			FillRate:            92.5,
			InventoryValue:      2.3,
			SupplierPerformance: 94.2,
			CostVariance:        -7.3,
		},
		Alerts: []BannerAlert{
			{Type: "warning", Message: "Low stock alert for SKU-A401"},
			{Type: "info", Message: "Supplier ABC delivery delayed by 2 days"},
			{Type: "success", Message: "Q3 cost reduction target achieved"},
		},
	}
}

func handlePage(deps Deps, page, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, deps, page, PageData{Title: title})
	}
}

func handleDashboardPage(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, deps, "dashboard", dashboardPageData())
	}
}

func renderPage(w http.ResponseWriter, deps Deps, page string, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := deps.Pages.Render(w, page, data); err != nil {
		// Headers are already sent; log instead of rewriting the response.
		slog.Error("rendering page", "page", page, "error", err)
	}
}

// --- Static dashboard chart data ---

type inventoryLevel struct {
	Category string `json:"category"`
	Current  int    `json:"current"`
	Target   int    `json:"target"`
}

type weeklyForecast struct {
	Week     string `json:"week"`
	Forecast int    `json:"forecast"`
	Actual   *int   `json:"actual"`
}

type supplierPerformance struct {
	Supplier string `json:"supplier"`
	OnTime   int    `json:"on_time"`
	Quality  int    `json:"quality"`
}

type dashboardData struct {
	InventoryLevels     []inventoryLevel      `json:"inventory_levels"`
	DemandForecast      []weeklyForecast      `json:"demand_forecast"`
	SupplierPerformance []supplierPerformance `json:"supplier_performance"`
}

// handleDashboardData serves the fixed chart payload backing the dashboard
// page widgets.
func handleDashboardData(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, dashboardData{
		InventoryLevels: []inventoryLevel{
			{Category: "Category A", Current: 85, Target: 70},
			{Category: "Category B", Current: 92, Target: 85},
			{Category: "Category C", Current: 45, Target: 60},
		},
		DemandForecast: []weeklyForecast{
			{Week: "Week 1", Forecast: 1200, Actual: intPtr(1150)},
			{Week: "Week 2", Forecast: 1300, Actual: intPtr(1280)},
			{Week: "Week 3", Forecast: 1250, Actual: nil},
			{Week: "Week 4", Forecast: 1400, Actual: nil},
		},
		SupplierPerformance: []supplierPerformance{
			{Supplier: "Supplier A", OnTime: 95, Quality: 98},
			{Supplier: "Supplier B", OnTime: 87, Quality: 92},
			{Supplier: "Supplier C", OnTime: 92, Quality: 96},
		},
	})
}

func intPtr(v int) *int {
	return &v
}
