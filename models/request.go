package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// phonePattern is the accepted shape of a subscriber number after whitespace removal.
var phonePattern = regexp.MustCompile(`^[0-9]{8,15}$`)

// PhoneNumber accepts both JSON strings and JSON numbers.
type PhoneNumber string

// UnmarshalJSON implements json.Unmarshaler.
func (p *PhoneNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PhoneNumber(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("phone_number must be a string or a number")
	}
	*p = PhoneNumber(n.String())
	return nil
}

// Normalize strips every whitespace character from the number.
func (p PhoneNumber) Normalize() string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, string(p))
}

// ValidPhoneNumber reports whether a normalized number has 8 to 15 digits.
func ValidPhoneNumber(s string) bool {
	return phonePattern.MatchString(s)
}

// BalanceRequest is the payload for POST /scrape-mtn.
type BalanceRequest struct {
	// PhoneNumber is the subscriber number to look up. Required.
	PhoneNumber PhoneNumber `json:"phone_number"`

	// Timeout is the portal navigation timeout in milliseconds, clamped to
	// [1000, 120000]. Default: 30000.
	Timeout int `json:"timeout,omitempty"`

	// WaitAfterClick is the delay in milliseconds applied when the form
	// submission triggers no navigation, capped at 60000. Default: 3000.
	WaitAfterClick int `json:"waitAfterClick,omitempty"`

	// Retries is the total number of attempts, capped at 5. Default: 2.
	Retries int `json:"retries,omitempty"`
}

// Override bounds. Out-of-range values are clamped, never rejected; zero or
// negative values keep the configured default.
const (
	minTimeoutMs        = 1000
	maxTimeoutMs        = 120000
	maxWaitAfterClickMs = 60000
	maxRetries          = 5
)

// Options converts the millisecond fields into RunOptions.
func (r BalanceRequest) Options() RunOptions {
	var o RunOptions
	if r.Timeout > 0 {
		o.Timeout = time.Duration(min(max(r.Timeout, minTimeoutMs), maxTimeoutMs)) * time.Millisecond
	}
	if r.WaitAfterClick > 0 {
		o.WaitAfterClick = time.Duration(min(r.WaitAfterClick, maxWaitAfterClickMs)) * time.Millisecond
	}
	if r.Retries > 0 {
		o.Retries = min(r.Retries, maxRetries)
	}
	return o
}
