package api

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func makeCallToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func makeReadResourceRequest(uri string) mcp.ReadResourceRequest {
	return mcp.ReadResourceRequest{Params: mcp.ReadResourceParams{URI: uri}}
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("expected 1 content block, got %d", len(result.Content))
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func TestMCPTool_Ask_ReturnsCannedAnswer(t *testing.T) {
	deps := newTestDeps(t)
	handler := mcpAsk(deps)

	result, err := handler(context.Background(), makeCallToolRequest("ask_scmkai", map[string]any{
		"message": "what is our fill rate?",
	}))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", toolText(t, result))
	}
	if !strings.Contains(toolText(t, result), "Fill rate is currently at 92.5%") {
		t.Errorf("answer = %q, want fill rate figures", toolText(t, result))
	}
}

func TestMCPTool_Ask_PersistsConversation(t *testing.T) {
	deps := newTestDeps(t)
	handler := mcpAsk(deps)

	result, err := handler(context.Background(), makeCallToolRequest("ask_scmkai", map[string]any{
		"message":    "inventory status",
		"session_id": "mcp-test-session",
	}))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", toolText(t, result))
	}

	conversations, err := deps.Store.ListConversations("mcp-test-session", 10)
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if len(conversations) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(conversations))
	}
	if conversations[0].Message != "inventory status" {
		t.Errorf("persisted message = %q", conversations[0].Message)
	}
}

func TestMCPTool_Ask_MissingMessage(t *testing.T) {
	deps := newTestDeps(t)
	handler := mcpAsk(deps)

	result, err := handler(context.Background(), makeCallToolRequest("ask_scmkai", map[string]any{}))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for missing message")
	}
}

func TestMCPTool_SearchCatalog(t *testing.T) {
	deps := newTestDeps(t)
	handler := mcpSearchCatalog(deps)

	result, err := handler(context.Background(), makeCallToolRequest("search_catalog", map[string]any{
		"query": "SKU-A401",
	}))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", toolText(t, result))
	}

	var results []SearchResult
	if err := json.Unmarshal([]byte(toolText(t, result)), &results); err != nil {
		t.Fatalf("unmarshalling results: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Type != "inventory" {
		t.Errorf("Type = %q, want inventory", results[0].Type)
	}
}

func TestMCPTool_AnalyticsSummary(t *testing.T) {
	deps := newTestDeps(t)
	handler := mcpAnalyticsSummary(deps)

	result, err := handler(context.Background(), makeCallToolRequest("analytics_summary", nil))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", toolText(t, result))
	}

	var summary map[string]any
	if err := json.Unmarshal([]byte(toolText(t, result)), &summary); err != nil {
		t.Fatalf("unmarshalling summary: %v", err)
	}
	for _, key := range []string{"inventory", "performance", "alerts"} {
		if _, ok := summary[key]; !ok {
			t.Errorf("summary missing %q section", key)
		}
	}
}

func TestMCPResource_Alerts(t *testing.T) {
	deps := newTestDeps(t)
	handler := mcpResourceAlerts(deps)

	contents, err := handler(context.Background(), makeReadResourceRequest("scmkai://alerts"))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("expected 1 content item, got %d", len(contents))
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents are %T, want TextResourceContents", contents[0])
	}
	if text.MIMEType != "application/json" {
		t.Errorf("MIMEType = %q", text.MIMEType)
	}

	var alerts []map[string]any
	if err := json.Unmarshal([]byte(text.Text), &alerts); err != nil {
		t.Fatalf("unmarshalling alerts: %v", err)
	}
	if len(alerts) != 4 {
		t.Errorf("expected 4 active alerts, got %d", len(alerts))
	}
}
