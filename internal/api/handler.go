package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kalambet/scmkai/internal/analytics"
	"github.com/kalambet/scmkai/internal/assistant"
	"github.com/kalambet/scmkai/internal/forecast"
	"github.com/kalambet/scmkai/internal/storage"
	"github.com/kalambet/scmkai/internal/web"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Deps holds the collaborators the HTTP layer is built from. Handlers close
// over this struct; there is no package-level state.
type Deps struct {
	Store     *storage.Store
	Resolver  *assistant.Resolver
	Analytics *analytics.Aggregator
	Pages     *web.Renderer
}

// NewHandler returns the full HTTP surface: HTML pages, the JSON API, and
// the health probe.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)

	r.Get("/", handlePage(deps, "index", "SCM-KAI"))
	r.Get("/dashboard", handleDashboardPage(deps))
	r.Get("/chat", handlePage(deps, "chat", "Chat"))
	r.Get("/analytics", handlePage(deps, "analytics", "Analytics"))
	r.Get("/settings", handlePage(deps, "settings", "Settings"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard-data", handleDashboardData)
		r.Post("/chat", handleChat(deps))
		r.Get("/kpis", handleListKPIs(deps))
		r.Get("/inventory", handleListInventory(deps))
		r.Get("/suppliers", handleListSuppliers(deps))
		r.Get("/alerts", handleListAlerts(deps))
		r.Post("/alerts/{id}/resolve", handleResolveAlert(deps))
		r.Get("/forecast", handleForecast)
		r.Get("/analytics/summary", handleAnalyticsSummary(deps))
		r.Get("/search", handleSearch(deps))
		r.Get("/conversations", handleListConversations(deps))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// --- Chat ---

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type ChatResponse struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
	SessionID string `json:"session_id"`
}

func handleChat(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		message := strings.TrimSpace(req.Message)
		if message == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "message is required")
			return
		}

		reply, err := deps.Resolver.Respond(message)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "resolving response: %v", err)
			return
		}

		sessionID := req.SessionID
		if sessionID == "" {
			sessionID = uuid.New().String()
		}

		now := time.Now().UTC()
		if _, err := deps.Store.SaveConversation(storage.Conversation{
			SessionID: sessionID,
			Message:   message,
			Response:  reply.Text,
			Timestamp: now,
		}); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "saving conversation: %v", err)
			return
		}

		writeJSON(w, ChatResponse{
			Response:  reply.Text,
			Timestamp: now.Format(time.RFC3339),
			SessionID: sessionID,
		})
	}
}

func handleListConversations(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session_id")
		limit := parseIntParam(r, "limit", 20, 100)

		conversations, err := deps.Store.ListConversations(sessionID, limit)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "listing conversations: %v", err)
			return
		}
		if conversations == nil {
			conversations = []storage.Conversation{}
		}
		writeJSON(w, conversations)
	}
}

// --- Catalog reads ---

func handleListKPIs(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics, err := deps.Store.ListKPIMetrics()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "listing KPIs: %v", err)
			return
		}
		if metrics == nil {
			metrics = []storage.KPIMetric{}
		}
		writeJSON(w, metrics)
	}
}

// inventoryView is an InventoryItem plus the derived status and carrying value.
type inventoryView struct {
	storage.InventoryItem
	Status string  `json:"status"`
	Value  float64 `json:"value"`
}

func handleListInventory(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := deps.Store.ListInventoryItems()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "listing inventory: %v", err)
			return
		}

		views := make([]inventoryView, 0, len(items))
		for _, item := range items {
			views = append(views, inventoryView{
				InventoryItem: item,
				Status:        item.StockStatus(),
				Value:         item.Value(),
			})
		}
		writeJSON(w, views)
	}
}

func handleListSuppliers(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		suppliers, err := deps.Store.ListSuppliers()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "listing suppliers: %v", err)
			return
		}
		if suppliers == nil {
			suppliers = []storage.Supplier{}
		}
		writeJSON(w, suppliers)
	}
}

func handleListAlerts(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alerts, err := deps.Store.ListActiveAlerts()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "listing alerts: %v", err)
			return
		}
		if alerts == nil {
			alerts = []storage.Alert{}
		}
		writeJSON(w, alerts)
	}
}

func handleResolveAlert(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid alert id")
			return
		}

		err = deps.Store.ResolveAlert(id, time.Now().UTC())
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "alert not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "resolving alert: %v", err)
			return
		}

		writeJSON(w, map[string]string{"message": "Alert resolved successfully"})
	}
}

// --- Forecast & analytics ---

func handleForecast(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, forecast.Generate(time.Now().UTC()))
}

func handleAnalyticsSummary(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := deps.Analytics.Summarize()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "computing summary: %v", err)
			return
		}
		writeJSON(w, summary)
	}
}

// --- Search ---

const (
	searchInventoryLimit = 5
	searchSupplierLimit  = 3
)

// SearchResult is the generic record shape shared by all search hits.
type SearchResult struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

func handleSearch(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "search query is required")
			return
		}

		items, err := deps.Store.SearchInventoryItems(query, searchInventoryLimit)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "searching inventory: %v", err)
			return
		}
		suppliers, err := deps.Store.SearchSuppliers(query, searchSupplierLimit)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "searching suppliers: %v", err)
			return
		}

		results := make([]SearchResult, 0, len(items)+len(suppliers))
		for _, item := range items {
			results = append(results, SearchResult{
				Type:        "inventory",
				Title:       fmt.Sprintf("%s - %s", item.SKU, item.Name),
				Description: fmt.Sprintf("Current stock: %d, Category: %s", item.CurrentStock, item.Category),
				URL:         fmt.Sprintf("/inventory/%d", item.ID),
			})
		}
		for _, sup := range suppliers {
			results = append(results, SearchResult{
				Type:        "supplier",
				Title:       sup.Name,
				Description: fmt.Sprintf("Performance: %g%%, Lead time: %d days", sup.PerformanceScore, sup.LeadTimeDays),
				URL:         fmt.Sprintf("/suppliers/%d", sup.ID),
			})
		}
		writeJSON(w, results)
	}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func parseIntParam(r *http.Request, key string, defaultVal, maxVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	if maxVal > 0 && v > maxVal {
		return maxVal
	}
	return v
}
