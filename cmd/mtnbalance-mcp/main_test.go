package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	default:
		t.Fatalf("unexpected content type %T", c)
		return ""
	}
}

func callTool(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Name = "check_data_balance"
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	return res
}

func TestCheckBalance_Success(t *testing.T) {
	var got balanceRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/scrape-mtn", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"phone_number":"0707070707","solde_data":"1234.5Mo","raw_value":1234.5,"unit":"Mo","extraction_method":"regex_full_text"}`))
	}))
	defer srv.Close()

	res := callTool(t, handleCheckBalance(srv.URL+"/", "secret"), map[string]any{
		"phone_number": "0707070707",
		"retries":      3,
	})

	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "Data balance: 1234.5Mo")
	assert.Equal(t, "0707070707", got.PhoneNumber)
	assert.Equal(t, 3, got.Retries)
}

func TestCheckBalance_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"data balance not found on the result page","code":"BALANCE_NOT_FOUND","attempts":1,"debug":{"page_content_preview":"Service indisponible"}}`))
	}))
	defer srv.Close()

	res := callTool(t, handleCheckBalance(srv.URL, ""), map[string]any{"phone_number": "0707070707"})

	assert.True(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "[BALANCE_NOT_FOUND]")
	assert.Contains(t, text, "Service indisponible")
}

func TestCheckBalance_MissingPhone(t *testing.T) {
	res := callTool(t, handleCheckBalance("http://127.0.0.1:0", ""), map[string]any{})

	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "phone_number is required")
}
