package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhoneNumber_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		body string
		want PhoneNumber
	}{
		{name: "string", body: `{"phone_number": "0707070707"}`, want: "0707070707"},
		{name: "number", body: `{"phone_number": 707070707}`, want: "707070707"},
		{name: "null", body: `{"phone_number": null}`, want: ""},
		{name: "absent", body: `{}`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req BalanceRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.PhoneNumber)
		})
	}
}

func TestPhoneNumber_UnmarshalRejectsObjects(t *testing.T) {
	var req BalanceRequest
	assert.Error(t, json.Unmarshal([]byte(`{"phone_number": {"n": 1}}`), &req))
}

func TestPhoneNumber_Normalize(t *testing.T) {
	assert.Equal(t, "0707070707", PhoneNumber(" 07 07\t07 07\n07 ").Normalize())
}

func TestValidPhoneNumber(t *testing.T) {
	for s, want := range map[string]bool{
		"12345678":         true,
		"123456789012345":  true,
		"1234567":          false,
		"1234567890123456": false,
		"+2250707070707":   false,
		"07070707ab":       false,
		"":                 false,
	} {
		assert.Equal(t, want, ValidPhoneNumber(s), s)
	}
}

func TestSessionConfig_WithOptions(t *testing.T) {
	base := SessionConfig{
		NavigationTimeout: 30 * time.Second,
		WaitAfterClick:    3 * time.Second,
		MaxAttempts:       2,
		InputSelectors:    []string{"input.a"},
	}

	got := base.WithOptions(BalanceRequest{Timeout: 10000, Retries: 3}.Options())

	assert.Equal(t, 10*time.Second, got.NavigationTimeout)
	assert.Equal(t, 3*time.Second, got.WaitAfterClick)
	assert.Equal(t, 3, got.MaxAttempts)

	got.InputSelectors[0] = "mutated"
	assert.Equal(t, "input.a", base.InputSelectors[0])
	assert.Equal(t, 30*time.Second, base.NavigationTimeout)
}

func TestBalanceRequest_OptionsClamps(t *testing.T) {
	tests := []struct {
		name string
		req  BalanceRequest
		want RunOptions
	}{
		{name: "zero keeps defaults", req: BalanceRequest{}, want: RunOptions{}},
		{name: "negative keeps defaults", req: BalanceRequest{Timeout: -1, WaitAfterClick: -1, Retries: -3}, want: RunOptions{}},
		{
			name: "in range",
			req:  BalanceRequest{Timeout: 5000, WaitAfterClick: 1500, Retries: 3},
			want: RunOptions{Timeout: 5 * time.Second, WaitAfterClick: 1500 * time.Millisecond, Retries: 3},
		},
		{
			name: "below floor",
			req:  BalanceRequest{Timeout: 500},
			want: RunOptions{Timeout: time.Second},
		},
		{
			name: "above ceiling",
			req:  BalanceRequest{Timeout: 600000, WaitAfterClick: 90000, Retries: 8},
			want: RunOptions{Timeout: 2 * time.Minute, WaitAfterClick: time.Minute, Retries: 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Options())
		})
	}
}

func TestSessionConfig_WithOptionsFloorsAttempts(t *testing.T) {
	assert.Equal(t, 1, SessionConfig{}.WithOptions(RunOptions{}).MaxAttempts)
}

func TestPipelineError(t *testing.T) {
	cause := errors.New("boom")
	err := NewPipelineError(ErrCodeNavigation, "acquiring", "portal could not be reached", cause)

	assert.Equal(t, "NAVIGATION_FAILED: portal could not be reached: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, &ErrorDetail{Code: ErrCodeNavigation, Message: "portal could not be reached"}, err.ToDetail())
}
