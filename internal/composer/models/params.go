package models

import (
	"fmt"
	"strings"
)

// RawParam is one category/sku pair exactly as the caller supplied it.
type RawParam struct {
	Category string
	Sku      string
}

func (p RawParam) String() string {
	return p.Category + "/" + p.Sku
}

// ParseParams splits "category/sku,category/sku" into raw params. Tokens are
// trimmed and empty segments skipped; a segment that is not exactly one
// category and one sku fails with ErrInvalidCategory.
func ParseParams(s string) ([]RawParam, error) {
	var params []RawParam
	for _, segment := range strings.Split(s, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		parts := strings.Split(segment, "/")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: malformed parameter %q, expected category/sku", ErrInvalidCategory, segment)
		}
		category := strings.ToLower(strings.TrimSpace(parts[0]))
		sku := strings.TrimSpace(parts[1])
		if category == "" || sku == "" {
			return nil, fmt.Errorf("%w: malformed parameter %q, expected category/sku", ErrInvalidCategory, segment)
		}
		params = append(params, RawParam{Category: category, Sku: sku})
	}
	return params, nil
}

// FormatParams is the inverse of ParseParams.
func FormatParams(params []RawParam) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ",")
}
