package dairyapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The backend returns collections in two shapes: a paginated envelope
// {"results": [...]} or a bare array. decodeCollection accepts both so no
// caller ever branches on shape again.
func decodeCollection[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to decode collection: %w", err)
		}
		return items, nil
	}

	var envelope struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode collection envelope: %w", err)
	}
	return envelope.Results, nil
}
