package utils

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GIDResource returns the resource type of a global id,
// e.g. "Page" for "gid://shopify/Page/123".
func GIDResource(gid string) string {
	parts := strings.Split(gid, "/")
	if len(parts) < 5 || parts[0] != "gid:" {
		return ""
	}
	return parts[3]
}

// ParseIDList decodes a JSON-encoded list of ids. Empty input is an empty list.
func ParseIDList(value string) ([]string, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		return nil, fmt.Errorf("invalid id list %q: %w", value, err)
	}
	return ids, nil
}

// EncodeIDList encodes ids as a JSON list.
func EncodeIDList(ids []string) string {
	if ids == nil {
		ids = []string{}
	}
	data, _ := json.Marshal(ids)
	return string(data)
}
