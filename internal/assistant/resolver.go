// Package assistant implements the rule-based chat response resolver. A
// message is matched against an ordered list of topic categories by
// case-insensitive substring containment; the first category with any
// matching keyword wins, and its canned template is rendered with fixed
// demo figures. Messages matching nothing get a standard fallback.
package assistant

import (
	"fmt"
	"strings"
)

// Category tags, in declaration order. Order is load-bearing: a message
// containing keywords from two categories resolves to the earlier one.
const (
	CategoryFillRate       = "fill_rate"
	CategoryInventory      = "inventory"
	CategoryDemandForecast = "demand_forecast"
	CategorySupplier       = "supplier"
	CategoryCost           = "cost"
	CategoryFallback       = "fallback"
)

// Reply is a resolved response: the matched category tag and rendered text.
type Reply struct {
	Category string
	Text     string
}

type category struct {
	tag      string
	keywords []string
	template string
}

// figures holds the fixed demo constants substituted into every template.
// None are read from the catalog.
type figures struct {
	FillRate         float64
	InventoryValue   float64
	DaysOfInventory  int
	ForecastAccuracy int
	DemandChange     int
	SupplierScore    int
	CostTrend        string
	CostChange       int
}

var demoFigures = figures{
	FillRate:         92.5,
	InventoryValue:   2.3,
	DaysOfInventory:  45,
	ForecastAccuracy: 87,
	DemandChange:     15,
	SupplierScore:    94,
	CostTrend:        "increased",
	CostChange:       7,
}

const fallbackResponse = "I understand you're asking about supply chain operations. " +
	"Could you be more specific about what metrics or areas you'd like me to analyze? " +
	"I can help with inventory levels, demand forecasting, supplier performance, " +
	"fill rates, and cost analysis."

var categories = []category{
	{
		tag:      CategoryFillRate,
		keywords: []string{"fill rate", "fill", "stock out", "availability"},
		template: "Fill rate is currently at {fill_rate}%. The main factors affecting fill rate " +
			"this week are supplier delays affecting 3 key SKUs and increased demand in the " +
			"Northeast region. Recommend expediting orders for SKU-A401, SKU-B205, and SKU-C108.",
	},
	{
		tag:      CategoryInventory,
		keywords: []string{"inventory", "stock", "warehouse", "storage"},
		template: "Current inventory levels show {inventory_value}M in total value. We have " +
			"{days_of_inventory} days of inventory on hand. Key concerns: overstock in Category A " +
			"(15% above target) and potential stockouts in Category C within 5 days.",
	},
	{
		tag:      CategoryDemandForecast,
		keywords: []string{"demand", "forecast", "prediction", "future"},
		template: "Demand forecast for next 30 days shows {forecast_accuracy}% accuracy. Expected " +
			"demand increase of {demand_change}% in Q4. Key drivers: seasonal trends, promotional " +
			"activities, and market expansion in the West region.",
	},
	{
		tag:      CategorySupplier,
		keywords: []string{"supplier", "vendor", "delivery", "lead time"},
		template: "Supplier performance: {supplier_score}% on-time delivery rate. Current issues: " +
			"Supplier ABC has 3-day delay, Supplier XYZ quality concerns. Recommend diversifying " +
			"supplier base and implementing backup suppliers for critical SKUs.",
	},
	{
		tag:      CategoryCost,
		keywords: []string{"cost", "expense", "budget", "savings"},
		template: "Supply chain costs are {cost_trend} by {cost_change}% this quarter. Main cost " +
			"drivers: transportation (+12%), warehousing (+5%), inventory carrying costs (+8%). " +
			"Optimization opportunities identified in route planning and inventory turnover.",
	},
}

// Resolver maps free-text messages to canned responses. It is pure: no
// catalog reads, no side effects. The zero value is not usable; call New.
type Resolver struct {
	categories []category
	params     map[string]string
}

// New returns a Resolver with the built-in category table and demo figures.
func New() *Resolver {
	return &Resolver{
		categories: categories,
		params:     demoFigures.params(),
	}
}

func (f figures) params() map[string]string {
	return map[string]string{
		"fill_rate":         fmt.Sprintf("%g", f.FillRate),
		"inventory_value":   fmt.Sprintf("%g", f.InventoryValue),
		"days_of_inventory": fmt.Sprintf("%d", f.DaysOfInventory),
		"forecast_accuracy": fmt.Sprintf("%d", f.ForecastAccuracy),
		"demand_change":     fmt.Sprintf("%d", f.DemandChange),
		"supplier_score":    fmt.Sprintf("%d", f.SupplierScore),
		"cost_trend":        f.CostTrend,
		"cost_change":       fmt.Sprintf("%d", f.CostChange),
	}
}

// Respond resolves a message to a reply. Matching is first-match-wins over
// the declared category order; unmatched messages get the fixed fallback.
// An error here means a template references an unknown placeholder, which
// is a programming error in the category table, not a runtime condition.
func (r *Resolver) Respond(message string) (Reply, error) {
	normalized := strings.ToLower(message)

	for _, c := range r.categories {
		if !matchesAny(normalized, c.keywords) {
			continue
		}
		text, err := render(c.template, r.params)
		if err != nil {
			return Reply{}, fmt.Errorf("rendering %s template: %w", c.tag, err)
		}
		return Reply{Category: c.tag, Text: text}, nil
	}

	return Reply{Category: CategoryFallback, Text: fallbackResponse}, nil
}

func matchesAny(normalized string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(normalized, k) {
			return true
		}
	}
	return false
}

// render substitutes {name} placeholders from params. A placeholder with no
// corresponding param is a format error.
func render(template string, params map[string]string) (string, error) {
	var b strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		name := rest[open+1 : open+end]
		value, ok := params[name]
		if !ok {
			return "", fmt.Errorf("no value for placeholder %q", name)
		}
		b.WriteString(rest[:open])
		b.WriteString(value)
		rest = rest[open+end+1:]
	}
}
