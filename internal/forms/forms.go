package forms

import (
	"encoding/json"
	"strings"

	"github.com/milkroute/storefront_api/internal/utils"
)

// ParseTags splits a comma-separated tag field, dropping blanks.
func ParseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ParseFeatures parses a plan feature list submitted either as a JSON array
// or as newline/comma separated text. A malformed JSON payload is a
// validation error, never a crash.
func ParseFeatures(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}
	if strings.HasPrefix(raw, "[") {
		var features []string
		if err := json.Unmarshal([]byte(raw), &features); err != nil {
			return nil, utils.ErrInvalidFeatureList
		}
		cleaned := make([]string, 0, len(features))
		for _, f := range features {
			if t := strings.TrimSpace(f); t != "" {
				cleaned = append(cleaned, t)
			}
		}
		return cleaned, nil
	}
	sep := ","
	if strings.Contains(raw, "\n") {
		sep = "\n"
	}
	parts := strings.Split(raw, sep)
	features := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			features = append(features, t)
		}
	}
	return features, nil
}
