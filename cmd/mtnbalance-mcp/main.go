package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// balanceRequest mirrors the POST /scrape-mtn request body.
type balanceRequest struct {
	PhoneNumber    string `json:"phone_number"`
	Timeout        int    `json:"timeout,omitempty"`
	WaitAfterClick int    `json:"waitAfterClick,omitempty"`
	Retries        int    `json:"retries,omitempty"`
}

// balanceResponse mirrors both the success and the failure bodies of
// POST /scrape-mtn.
type balanceResponse struct {
	Success          bool    `json:"success"`
	PhoneNumber      string  `json:"phone_number"`
	SoldeData        string  `json:"solde_data"`
	RawValue         float64 `json:"raw_value"`
	Unit             string  `json:"unit"`
	ExtractionMethod string  `json:"extraction_method"`
	Timestamp        string  `json:"timestamp"`
	ExecutionTimeMs  int64   `json:"execution_time_ms"`
	Error            string  `json:"error"`
	Code             string  `json:"code"`
	Attempts         int     `json:"attempts"`
	Debug            *struct {
		PageContentPreview string   `json:"page_content_preview"`
		Trace              []string `json:"trace"`
	} `json:"debug"`
}

func main() {
	apiURL := os.Getenv("MTN_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:3003"
	}
	apiKey := os.Getenv("MTN_API_KEY")

	s := server.NewMCPServer(
		"mtnbalance",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	checkTool := mcp.NewTool("check_data_balance",
		mcp.WithDescription("Look up the remaining mobile data balance of an MTN Côte d'Ivoire subscriber on the operator's self-service portal. Takes 10 to 60 seconds."),
		mcp.WithString("phone_number",
			mcp.Required(),
			mcp.Description("Subscriber number, 8 to 15 digits; spaces are ignored"),
		),
		mcp.WithNumber("retries",
			mcp.Description("Total attempts (default: 2, max: 5)"),
		),
		mcp.WithNumber("timeout",
			mcp.Description("Portal navigation timeout in milliseconds (default: 30000)"),
		),
	)
	s.AddTool(checkTool, handleCheckBalance(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// apiPost sends a POST request to the balance API and returns the response body.
func apiPost(ctx context.Context, client *http.Client, apiURL, apiKey, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(apiURL, "/")+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func handleCheckBalance(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 300 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		phone, err := request.RequireString("phone_number")
		if err != nil {
			return mcp.NewToolResultError("phone_number is required"), nil
		}

		payload := balanceRequest{
			PhoneNumber: phone,
			Retries:     request.GetInt("retries", 0),
			Timeout:     request.GetInt("timeout", 0),
		}

		respBody, err := apiPost(ctx, client, apiURL, apiKey, "/scrape-mtn", payload)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var resp balanceResponse
		if err := json.Unmarshal(respBody, &resp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !resp.Success {
			return mcp.NewToolResultError(formatFailure(&resp)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf(
			"Phone: %s\nData balance: %s\nValue: %g %s\nMethod: %s\nChecked at: %s (%d ms)",
			resp.PhoneNumber, resp.SoldeData, resp.RawValue, resp.Unit,
			resp.ExtractionMethod, resp.Timestamp, resp.ExecutionTimeMs,
		)), nil
	}
}

func formatFailure(resp *balanceResponse) string {
	var b strings.Builder
	msg := resp.Error
	if msg == "" {
		msg = "balance lookup failed"
	}
	if resp.Code != "" {
		fmt.Fprintf(&b, "[%s] %s", resp.Code, msg)
	} else {
		b.WriteString(msg)
	}
	if resp.Attempts > 0 {
		fmt.Fprintf(&b, " after %d attempt(s)", resp.Attempts)
	}
	if resp.Debug != nil {
		for _, line := range resp.Debug.Trace {
			b.WriteString("\n- " + line)
		}
		if resp.Debug.PageContentPreview != "" {
			b.WriteString("\n\nPage preview:\n" + resp.Debug.PageContentPreview)
		}
	}
	return b.String()
}
