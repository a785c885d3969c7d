package dairyapi

import (
	"encoding/json"
	"fmt"
	"sort"
)

// SubscriptionOnlyItem identifies a product that blocked checkout because it
// may only be purchased through the subscription basket.
type SubscriptionOnlyItem struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
}

// APIError is a structured backend rejection. The backend reports failures in
// several shapes; Message always carries one flat human-readable string pulled
// from them in a fixed order.
type APIError struct {
	StatusCode            int
	Message               string
	Reason                string
	SubscriptionOnlyItems []SubscriptionOnlyItem
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("dairy api error (status %d)", e.StatusCode)
}

// IsSubscriptionOnlyRejection reports whether the error carries the structured
// list of subscription-only products that blocked a checkout.
func (e *APIError) IsSubscriptionOnlyRejection() bool {
	return len(e.SubscriptionOnlyItems) > 0
}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	apiErr, ok := err.(*APIError)
	return apiErr, ok
}

// parseAPIError reduces a non-2xx response body to an APIError. The message is
// resolved from the known shapes in order: detail, non_field_errors[0], error,
// then the first value of a field-error map. Unparseable bodies fall back to a
// generic message so a failed panel never crashes its caller.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Message: "Request failed"}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		var plain string
		if json.Unmarshal(body, &plain) == nil && plain != "" {
			apiErr.Message = plain
		}
		return apiErr
	}

	if raw, ok := payload["subscription_only_items"]; ok {
		var items []SubscriptionOnlyItem
		if json.Unmarshal(raw, &items) == nil {
			apiErr.SubscriptionOnlyItems = items
		}
	}
	if raw, ok := payload["reason"]; ok {
		var reason string
		if json.Unmarshal(raw, &reason) == nil {
			apiErr.Reason = reason
		}
	}

	if msg := firstErrorString(payload); msg != "" {
		apiErr.Message = msg
	}
	return apiErr
}

func firstErrorString(payload map[string]json.RawMessage) string {
	if raw, ok := payload["detail"]; ok {
		var s string
		if json.Unmarshal(raw, &s) == nil && s != "" {
			return s
		}
	}
	if raw, ok := payload["non_field_errors"]; ok {
		var list []string
		if json.Unmarshal(raw, &list) == nil && len(list) > 0 {
			return list[0]
		}
	}
	if raw, ok := payload["error"]; ok {
		var s string
		if json.Unmarshal(raw, &s) == nil && s != "" {
			return s
		}
	}

	// Field-error map: take the first value in key order so the surfaced
	// message is deterministic.
	keys := make([]string, 0, len(payload))
	for key := range payload {
		switch key {
		case "detail", "non_field_errors", "error", "reason", "subscription_only_items":
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		var list []string
		if json.Unmarshal(payload[key], &list) == nil && len(list) > 0 {
			return list[0]
		}
		var s string
		if json.Unmarshal(payload[key], &s) == nil && s != "" {
			return s
		}
	}
	return ""
}
