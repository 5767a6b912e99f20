package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Alert statuses.
const (
	AlertActive    = "active"
	AlertResolved  = "resolved"
	AlertDismissed = "dismissed"
)

// Alert priorities.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

type InventoryItem struct {
	ID           int64     `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	CurrentStock int       `json:"current_stock"`
	MinStock     int       `json:"min_stock"`
	MaxStock     int       `json:"max_stock"`
	UnitCost     float64   `json:"unit_cost"`
	SupplierID   *int64    `json:"supplier_id,omitempty"`
	LastUpdated  time.Time `json:"last_updated"`
}

// StockStatus derives the display status of an item from its stock levels.
// Critical takes precedence over low, overstock over normal.
func (i InventoryItem) StockStatus() string {
	switch {
	case float64(i.CurrentStock) <= float64(i.MinStock)*0.5:
		return "critical"
	case i.CurrentStock <= i.MinStock:
		return "low"
	case i.CurrentStock >= i.MaxStock:
		return "overstock"
	default:
		return "normal"
	}
}

// Value is the carrying value of the item at current stock.
func (i InventoryItem) Value() float64 {
	return float64(i.CurrentStock) * i.UnitCost
}

type Supplier struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	ContactEmail     string  `json:"contact_email,omitempty"`
	PerformanceScore float64 `json:"performance_score"`
	OnTimeDelivery   float64 `json:"on_time_delivery"`
	QualityScore     float64 `json:"quality_score"`
	LeadTimeDays     int     `json:"lead_time_days"`
	Status           string  `json:"status"`
}

type KPIMetric struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Value     float64   `json:"value"`
	Target    *float64  `json:"target,omitempty"`
	Unit      string    `json:"unit,omitempty"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

type DemandForecast struct {
	ID               int64     `json:"id"`
	SKU              string    `json:"sku"`
	ForecastDate     time.Time `json:"forecast_date"`
	ForecastedDemand int       `json:"forecasted_demand"`
	ActualDemand     *int      `json:"actual_demand,omitempty"`
	Accuracy         *float64  `json:"accuracy,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type Alert struct {
	ID         int64      `json:"id"`
	Type       string     `json:"type"` // warning, error, info, success
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Priority   string     `json:"priority"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// Conversation is a single chat exchange. Rows are write-once: they are
// never updated or deleted after insert.
type Conversation struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}
