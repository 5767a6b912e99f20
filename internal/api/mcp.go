package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kalambet/scmkai/internal/storage"
)

// NewMCPServer creates an MCP server exposing the dashboard's capabilities
// as tools: the chat assistant, catalog search, and the analytics summary.
func NewMCPServer(deps Deps) *server.MCPServer {
	s := server.NewMCPServer(
		"scmkai",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("scmkai — supply-chain dashboard: inventory, suppliers, KPIs, alerts, and a canned-response assistant."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("ask_scmkai",
			mcp.WithDescription("Ask the supply-chain assistant a question. Answers cover fill rates, inventory, demand forecasts, suppliers, and costs."),
			mcp.WithString("message", mcp.Description("The question to ask"), mcp.Required()),
			mcp.WithString("session_id", mcp.Description("Optional session identifier for conversation history")),
		),
		mcpAsk(deps),
	)

	s.AddTool(
		mcp.NewTool("search_catalog",
			mcp.WithDescription("Search inventory items and suppliers by keyword."),
			mcp.WithString("query", mcp.Description("Search query"), mcp.Required()),
		),
		mcpSearchCatalog(deps),
	)

	s.AddTool(
		mcp.NewTool("analytics_summary",
			mcp.WithDescription("Current analytics snapshot: inventory health, KPI performance, and alert counts."),
		),
		mcpAnalyticsSummary(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"scmkai://alerts",
			"Active Alerts",
			mcp.WithResourceDescription("Currently active alerts as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceAlerts(deps),
	)

	return s
}

func mcpAsk(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		message, err := req.RequireString("message")
		if err != nil {
			return mcpError("message is required"), nil
		}

		reply, err := deps.Resolver.Respond(message)
		if err != nil {
			return mcpError(fmt.Sprintf("resolving response: %v", err)), nil
		}

		sessionID := req.GetString("session_id", "")
		if sessionID == "" {
			sessionID = "mcp-" + uuid.New().String()
		}
		if _, err := deps.Store.SaveConversation(storage.Conversation{
			SessionID: sessionID,
			Message:   message,
			Response:  reply.Text,
			Timestamp: time.Now().UTC(),
		}); err != nil {
			return mcpError(fmt.Sprintf("saving conversation: %v", err)), nil
		}

		return mcpText(reply.Text), nil
	}
}

func mcpSearchCatalog(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcpError("query is required"), nil
		}

		items, err := deps.Store.SearchInventoryItems(query, searchInventoryLimit)
		if err != nil {
			return mcpError(fmt.Sprintf("searching inventory: %v", err)), nil
		}
		suppliers, err := deps.Store.SearchSuppliers(query, searchSupplierLimit)
		if err != nil {
			return mcpError(fmt.Sprintf("searching suppliers: %v", err)), nil
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

		b, err := json.Marshal(results)
		if err != nil {
			return mcpError(fmt.Sprintf("marshalling results: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpAnalyticsSummary(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summary, err := deps.Analytics.Summarize()
		if err != nil {
			return mcpError(fmt.Sprintf("computing summary: %v", err)), nil
		}

		b, err := json.Marshal(summary)
		if err != nil {
			return mcpError(fmt.Sprintf("marshalling summary: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpResourceAlerts(deps Deps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		alerts, err := deps.Store.ListActiveAlerts()
		if err != nil {
			return nil, fmt.Errorf("listing alerts: %w", err)
		}
		if alerts == nil {
			alerts = []storage.Alert{}
		}

		b, err := json.Marshal(alerts)
		if err != nil {
			return nil, fmt.Errorf("marshalling alerts: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
